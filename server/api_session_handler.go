package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/wallet-admin-console/sessions"
	"github.com/jrsteele09/wallet-admin-console/users"
	"github.com/rs/zerolog/log"
)

// SessionInfo is the JSON view of the browser's login state.
type SessionInfo struct {
	Authenticated bool           `json:"authenticated"`
	User          *users.Profile `json:"user,omitempty"`
	LoginTime     *time.Time     `json:"loginTime,omitempty"`
	Remembered    bool           `json:"remembered"`
}

// SessionInfoHandler answers GET /api/session. The token itself is never
// returned.
func (s *Server) SessionInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		var info SessionInfo
		if sess, ok := storeFrom(r).Current(r.Context()); ok {
			info.Authenticated = true
			info.User = &sess.User
			info.Remembered = sess.Tier == sessions.TierRemembered
			if !sess.IssuedAt.IsZero() {
				info.LoginTime = &sess.IssuedAt
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(info); err != nil {
			log.Err(err).Msg("Failed to encode session info")
		}
	}
}
