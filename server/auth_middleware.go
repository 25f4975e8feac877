package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/wallet-admin-console/sessions"
)

// AuthChecker answers "is somebody logged in" for the current browser.
type AuthChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// Decision is the outcome of evaluating the route guard.
type Decision struct {
	Allow    bool
	Redirect string // set when Allow is false
}

// Evaluate lets the navigation through iff checker reports an authenticated
// session. A missing checker counts as logged out. The redirect carries no
// return-to destination.
func Evaluate(ctx context.Context, checker AuthChecker) Decision {
	if checker != nil && checker.IsAuthenticated(ctx) {
		return Decision{Allow: true}
	}
	return Decision{Redirect: RouteLogin}
}

// RequireSession guards the admin screens. It runs on every navigation, so a
// session cleared elsewhere takes effect on the next page load.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var checker AuthChecker
			if store, ok := sessions.FromContext(r.Context()); ok {
				checker = store
			}
			decision := Evaluate(r.Context(), checker)
			if !decision.Allow {
				redirectSuccess(w, r, decision.Redirect)
				return
			}
			next(w, r)
		}
	}
}
