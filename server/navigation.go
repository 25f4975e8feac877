package server

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

type navigationKey struct{}

// navigation collects the navigation events raised while one request is
// being served. The API client may raise them from several goroutines.
type navigation struct {
	mu      sync.Mutex
	toLogin bool
}

func withNavigation(ctx context.Context) context.Context {
	return context.WithValue(ctx, navigationKey{}, &navigation{})
}

func navigationFrom(ctx context.Context) *navigation {
	n, _ := ctx.Value(navigationKey{}).(*navigation)
	return n
}

func (n *navigation) requestLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toLogin = true
}

func (n *navigation) loginRequested() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.toLogin
}

// loginRequested reports whether the API client asked for the login screen
// during this request.
func loginRequested(ctx context.Context) bool {
	n := navigationFrom(ctx)
	return n != nil && n.loginRequested()
}

// loginNavigator receives the API client's 401 event and records it on the
// request being served. The page shell turns it into a redirect.
type loginNavigator struct{}

func (loginNavigator) NavigateToLogin(ctx context.Context) {
	n := navigationFrom(ctx)
	if n == nil {
		log.Debug().Msg("login navigation requested outside a page request")
		return
	}
	n.requestLogin()
}
