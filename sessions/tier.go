package sessions

import (
	"context"
	"sync"
)

// Tier is one storage lifetime of the credential store. A tier holds at most
// one opaque value; Load reports false when it is empty.
type Tier interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, value string) error
	Erase(ctx context.Context) error
}

var _ Tier = (*MemoryTier)(nil)

// MemoryTier keeps the value in process memory. Dropping the tier is the
// equivalent of closing the browsing context that owned it.
type MemoryTier struct {
	mu    sync.RWMutex
	value string
	set   bool
}

func NewMemoryTier() *MemoryTier {
	return &MemoryTier{}
}

func (m *MemoryTier) Load(_ context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value, m.set, nil
}

func (m *MemoryTier) Save(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	m.set = true
	return nil
}

func (m *MemoryTier) Erase(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = ""
	m.set = false
	return nil
}
