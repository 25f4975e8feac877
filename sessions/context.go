package sessions

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying the browser context's store.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the store placed in ctx by NewContext.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(contextKey{}).(*Store)
	return s, ok && s != nil
}

// ContextSource resolves credentials from the store carried by the request
// context, so a single shared API client serves every browser.
type ContextSource struct{}

func (ContextSource) CurrentToken(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return s.CurrentToken(ctx)
}

func (ContextSource) Clear(ctx context.Context) error {
	s, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	return s.Clear(ctx)
}
