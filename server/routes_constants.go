package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Auth Routes - Login & Logout
	RouteLogin      = "/login"
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// API Routes
	RouteAPISession = "/api/session"

	// Admin Routes
	RouteAdminPrefix        = "/admin/"
	RouteAdminDashboard     = "/admin/dashboard"
	RouteAdminUsers         = "/admin/users"
	RouteAdminUser          = "/admin/users/{id}"
	RouteAdminUserFreeze    = "/admin/users/{id}/freeze"
	RouteAdminUserUnfreeze  = "/admin/users/{id}/unfreeze"
	RouteAdminKYC           = "/admin/kyc"
	RouteAdminKYCApprove    = "/admin/kyc/{id}/approve"
	RouteAdminKYCReject     = "/admin/kyc/{id}/reject"
	RouteAdminTransactions  = "/admin/transactions"
	RouteAdminTxExport      = "/admin/transactions/export"
	RouteAdminWallet        = "/admin/wallet"
	RouteAdminWalletAdjust  = "/admin/wallet/adjust"
	RouteAdminWalletCredit  = "/admin/wallet/bulk-credit"
	RouteAdminWalletFreeze  = "/admin/wallet/bulk-freeze"
	RouteAdminReports       = "/admin/reports"
	RouteAdminReportsRun    = "/admin/reports/generate"
	RouteAdminReportsExport = "/admin/reports/export"
	RouteAdminProfile       = "/admin/profile"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
