package server

import (
	"net/http"
)

// IndexHandler sends the browser to the dashboard or the login screen.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if Evaluate(r.Context(), storeFrom(r)).Allow {
			redirectSuccess(w, r, RouteAdminDashboard)
			return
		}
		redirectSuccess(w, r, RouteLogin)
	}
}

// NotFoundHandler catches unknown /admin paths. They sit behind the guard like
// every other admin page and land on the dashboard.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectSuccess(w, r, RouteAdminDashboard)
	}
}
