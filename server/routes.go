package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageUIHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionInfoHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPISession, ChainMiddleware(s.SessionInfoHandler(), s.APIMiddleware()...))

	// Admin routes (every navigation re-checks the session)
	guarded := func(h http.HandlerFunc) http.HandlerFunc {
		return ChainMiddleware(h, s.HTMLMiddleWare(s.RequireSession())...)
	}
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, guarded(s.AdminDashboardHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminUsers, guarded(s.AdminUsersListHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminUser, guarded(s.AdminUserDetailHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminUserFreeze, guarded(s.AdminFreezeUserHandler(true)))
	s.RegisterRouteHandler("POST "+RouteAdminUserUnfreeze, guarded(s.AdminFreezeUserHandler(false)))
	s.RegisterRouteHandler("GET "+RouteAdminKYC, guarded(s.AdminKYCListHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminKYCApprove, guarded(s.AdminKYCReviewHandler(true)))
	s.RegisterRouteHandler("POST "+RouteAdminKYCReject, guarded(s.AdminKYCReviewHandler(false)))
	s.RegisterRouteHandler("GET "+RouteAdminTransactions, guarded(s.AdminTransactionsHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminTxExport, guarded(s.AdminTransactionsExportHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminWallet, guarded(s.AdminWalletHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminWalletAdjust, guarded(s.AdminWalletAdjustHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminWalletCredit, guarded(s.AdminWalletBulkCreditHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminWalletFreeze, guarded(s.AdminWalletBulkFreezeHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminReports, guarded(s.AdminReportsHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminReportsRun, guarded(s.AdminReportsGenerateHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminReportsExport, guarded(s.AdminReportsExportHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminProfile, guarded(s.AdminProfileHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminPrefix, guarded(s.NotFoundHandler()))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	errorString := Red + error + ResetColor
	log.Printf("[%-19s] %s %s", displayMethod, path, errorString)
}
