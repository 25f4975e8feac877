package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/wallet-admin-console/auth"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	Error    string
	Mobile   string // Preserve mobile on error
	Remember bool
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse login template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if Evaluate(r.Context(), storeFrom(r)).Allow {
			redirectSuccess(w, r, RouteAdminDashboard)
			return
		}
		if loginTmpl == nil {
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
			return
		}

		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			Error:    r.URL.Query().Get("error"),
			Mobile:   r.URL.Query().Get("mobile"),
			Remember: r.URL.Query().Get("remember") == "true",
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteLogin, "Invalid form data")
			return
		}

		mobile := strings.TrimSpace(r.FormValue("mobile"))
		mpin := r.FormValue("mpin")
		remember := r.FormValue("remember") == "on" || r.FormValue("remember") == "true"

		if _, err := s.auth.Login(r.Context(), storeFrom(r), mobile, mpin, remember); err != nil {
			if !errors.Is(err, auth.ErrInvalidMobile) && !errors.Is(err, auth.ErrInvalidMPIN) {
				log.Err(err).Msg("Login failed")
			}
			s.renderLoginError(w, r, loginErrorMessage(err), mobile, remember)
			return
		}

		redirectSuccess(w, r, RouteAdminDashboard)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.Logout(r.Context(), storeFrom(r)); err != nil {
			log.Err(err).Msg("Logout: failed to clear session")
		}
		redirectSuccess(w, r, RouteLogin)
	}
}

// renderLoginError redirects to login page with an error message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, mobile string, remember bool) {
	redirectURL := withQuery(RouteLogin, "error", errorMsg)
	if mobile != "" {
		redirectURL = withQuery(redirectURL, "mobile", mobile)
	}
	if remember {
		redirectURL = withQuery(redirectURL, "remember", "true")
	}
	redirectSuccess(w, r, redirectURL)
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidMobile), errors.Is(err, auth.ErrInvalidMPIN):
		return auth.FieldMessage(err)
	case errors.Is(err, auth.ErrLoginRejected):
		if msg := strings.TrimPrefix(err.Error(), auth.ErrLoginRejected.Error()+": "); msg != err.Error() && msg != "" {
			return msg
		}
		return "Invalid mobile number or MPIN"
	case errors.Is(err, auth.ErrInvalidLoginResponse):
		return "Invalid response from server"
	default:
		return "Login failed. Please try again."
	}
}
