package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/wallet-admin-console/sessions"
)

// SessionMiddleware gives the request a credential store backed by this
// browser's cookies, plus a place to record navigation events.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := s.newStore(w, r)
		ctx := sessions.NewContext(r.Context(), store)
		ctx = withNavigation(ctx)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) newStore(w http.ResponseWriter, r *http.Request) *sessions.Store {
	secure := s.config.GetSecureCookies() || getScheme(r) == "https"
	return sessions.NewStore(
		sessions.Ephemeral(w, r, s.sealer, secure),
		sessions.Remembered(w, r, s.sealer, secure, s.config.GetRememberMaxAge()),
	)
}

// storeFrom returns the request's store. Handlers behind SessionMiddleware
// always have one; anything else gets an empty in-memory store.
func storeFrom(r *http.Request) *sessions.Store {
	if store, ok := sessions.FromContext(r.Context()); ok {
		return store
	}
	return sessions.NewStore(sessions.NewMemoryTier(), sessions.NewMemoryTier())
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, withQuery(path, "error", errorMsg))
}

// redirectWithNotice carries a success message to the next page
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	redirectSuccess(w, r, withQuery(path, "notice", notice))
}

func withQuery(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
