package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/wallet-admin-console/internal/utils"
	"github.com/jrsteele09/wallet-admin-console/sessions"
	"github.com/jrsteele09/wallet-admin-console/walletapi"
	"golang.org/x/sync/errgroup"
)

type dashboardData struct {
	Users        walletapi.UserStats
	KYC          walletapi.KYCStats
	Transactions walletapi.TransactionSummary
	Wallets      walletapi.WalletOverview
}

// AdminDashboardHandler renders the admin dashboard
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("dashboard.html")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var data dashboardData
		var g errgroup.Group
		g.Go(func() (err error) { data.Users, err = s.api.UserStats(ctx); return })
		g.Go(func() (err error) { data.KYC, err = s.api.KYCStats(ctx); return })
		g.Go(func() (err error) { data.Transactions, err = s.api.TransactionSummary(ctx); return })
		g.Go(func() (err error) { data.Wallets, err = s.api.WalletOverview(ctx); return })
		err := g.Wait()

		s.renderAdminPage(w, r, adminPage{Active: "dashboard", Title: "Dashboard", Template: tmpl, Data: data, Error: s.pageError(err)})
	}
}

type usersData struct {
	Page   walletapi.Page[walletapi.User]
	Search string
	Pager  pager
}

// AdminUsersListHandler lists wallet users
func (s *Server) AdminUsersListHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("users.html")
	return func(w http.ResponseWriter, r *http.Request) {
		search := strings.TrimSpace(r.URL.Query().Get("search"))
		page, err := s.api.ListUsers(r.Context(), walletapi.PageQuery{Page: queryPage(r), Search: search})
		data := usersData{Page: page, Search: search, Pager: newPager(r, page.Page, page.TotalPages)}
		s.renderAdminPage(w, r, adminPage{Active: "users", Title: "Users", Template: tmpl, Data: data, Error: s.pageError(err)})
	}
}

// AdminUserDetailHandler shows one user
func (s *Server) AdminUserDetailHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("user_detail.html")
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			redirectWithError(w, r, RouteAdminUsers, "Invalid user id")
			return
		}
		user, err := s.api.GetUser(r.Context(), id)
		s.renderAdminPage(w, r, adminPage{Active: "users", Title: "User details", Template: tmpl, Data: user, Error: s.pageError(err)})
	}
}

// AdminFreezeUserHandler freezes or unfreezes a user's wallet
func (s *Server) AdminFreezeUserHandler(freeze bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			redirectWithError(w, r, RouteAdminUsers, "Invalid user id")
			return
		}
		back := RouteAdminUsers + "/" + strconv.FormatInt(id, 10)
		if !freeze {
			_, err := s.api.UnfreezeUser(r.Context(), id)
			s.finishAction(w, r, back, err, "Wallet unfrozen")
			return
		}
		reason := strings.TrimSpace(r.FormValue("reason"))
		if reason == "" {
			redirectWithError(w, r, back, "A reason is required to freeze a wallet")
			return
		}
		_, err := s.api.FreezeUser(r.Context(), id, reason)
		s.finishAction(w, r, back, err, "Wallet frozen")
	}
}

type kycData struct {
	Page     walletapi.Page[walletapi.KYCRequest]
	Stats    walletapi.KYCStats
	Status   string
	Search   string
	Statuses []string
	Pager    pager
}

// AdminKYCListHandler shows the KYC review queue
func (s *Server) AdminKYCListHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("kyc.html")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()
		data := kycData{
			Status:   strings.ToUpper(q.Get("status")),
			Search:   strings.TrimSpace(q.Get("search")),
			Statuses: []string{"ALL", "PENDING", "APPROVED", "REJECTED"},
		}
		if data.Status == "" {
			data.Status = "ALL"
		}

		var g errgroup.Group
		g.Go(func() (err error) {
			data.Page, err = s.api.ListKYC(ctx, walletapi.PageQuery{Page: queryPage(r), Status: data.Status, Search: data.Search})
			return
		})
		g.Go(func() (err error) { data.Stats, err = s.api.KYCStats(ctx); return })
		err := g.Wait()
		data.Pager = newPager(r, data.Page.Page, data.Page.TotalPages)

		s.renderAdminPage(w, r, adminPage{Active: "kyc", Title: "KYC Verification", Template: tmpl, Data: data, Error: s.pageError(err)})
	}
}

// AdminKYCReviewHandler approves or rejects a KYC submission
func (s *Server) AdminKYCReviewHandler(approve bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			redirectWithError(w, r, RouteAdminKYC, "Invalid document id")
			return
		}
		if approve {
			_, err := s.api.ApproveKYC(r.Context(), id)
			s.finishAction(w, r, RouteAdminKYC, err, "KYC approved")
			return
		}
		reason := strings.TrimSpace(r.FormValue("reason"))
		if reason == "" {
			redirectWithError(w, r, RouteAdminKYC, "A reason is required to reject KYC")
			return
		}
		_, err := s.api.RejectKYC(r.Context(), id, reason)
		s.finishAction(w, r, RouteAdminKYC, err, "KYC rejected")
	}
}

type transactionsData struct {
	Page     walletapi.Page[walletapi.Transaction]
	Summary  walletapi.TransactionSummary
	Type     string
	Status   string
	Search   string
	Types    []string
	Statuses []string
	Columns  []string
	Pager    pager
}

var exportColumns = []string{"transactionId", "userName", "type", "amount", "status", "date", "paymentMethod"}

// AdminTransactionsHandler lists transactions with filters
func (s *Server) AdminTransactionsHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("transactions.html")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()
		data := transactionsData{
			Type:     strings.ToUpper(q.Get("type")),
			Status:   strings.ToUpper(q.Get("status")),
			Search:   strings.TrimSpace(q.Get("search")),
			Types:    []string{"ALL", "CREDIT", "DEBIT", "TRANSFER"},
			Statuses: []string{"ALL", "SUCCESS", "PENDING", "FAILED"},
			Columns:  exportColumns,
		}

		var g errgroup.Group
		g.Go(func() (err error) {
			data.Page, err = s.api.ListTransactions(ctx, walletapi.PageQuery{Page: queryPage(r), Type: data.Type, Status: data.Status, Search: data.Search})
			return
		})
		g.Go(func() (err error) { data.Summary, err = s.api.TransactionSummary(ctx); return })
		err := g.Wait()
		data.Pager = newPager(r, data.Page.Page, data.Page.TotalPages)

		s.renderAdminPage(w, r, adminPage{Active: "transactions", Title: "Transactions", Template: tmpl, Data: data, Error: s.pageError(err)})
	}
}

// AdminTransactionsExportHandler asks the API for an export file
func (s *Server) AdminTransactionsExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminTransactions, "Invalid form data")
			return
		}
		columns := r.Form["columns"]
		if len(columns) == 0 {
			columns = exportColumns
		}
		export, err := s.api.ExportTransactions(r.Context(), r.FormValue("format"), columns)
		s.finishAction(w, r, RouteAdminTransactions, err, "Export ready: "+export.URL)
	}
}

type walletData struct {
	Overview walletapi.WalletOverview
	Wallets  []walletapi.Wallet
	Recent   []walletapi.WalletTransaction
	Search   string
}

// AdminWalletHandler shows wallet balances and recent movements
func (s *Server) AdminWalletHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("wallet.html")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		data := walletData{Search: strings.TrimSpace(r.URL.Query().Get("search"))}

		var g errgroup.Group
		g.Go(func() (err error) { data.Overview, err = s.api.WalletOverview(ctx); return })
		g.Go(func() (err error) { data.Wallets, err = s.api.UserWallets(ctx, data.Search); return })
		g.Go(func() (err error) { data.Recent, err = s.api.RecentWalletTransactions(ctx, 5); return })
		err := g.Wait()

		s.renderAdminPage(w, r, adminPage{Active: "wallet", Title: "Wallet Management", Template: tmpl, Data: data, Error: s.pageError(err)})
	}
}

// AdminWalletAdjustHandler credits or debits one wallet
func (s *Server) AdminWalletAdjustHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminWallet, "Invalid form data")
			return
		}
		userID, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("userId")), 10, 64)
		amount, _ := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
		_, err := s.api.AdjustWallet(r.Context(), walletapi.AdjustRequest{
			UserID: userID,
			Amount: amount,
			Type:   r.FormValue("type"),
			Reason: strings.TrimSpace(r.FormValue("reason")),
		})
		s.finishAction(w, r, RouteAdminWallet, err, "Wallet adjusted")
	}
}

// AdminWalletBulkCreditHandler credits the same amount to several wallets
func (s *Server) AdminWalletBulkCreditHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminWallet, "Invalid form data")
			return
		}
		amount, _ := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
		_, err := s.api.BulkCredit(r.Context(), walletapi.BulkCreditRequest{
			UserIDs: formIDs(r),
			Amount:  amount,
			Reason:  strings.TrimSpace(r.FormValue("reason")),
		})
		s.finishAction(w, r, RouteAdminWallet, err, "Bulk credit submitted")
	}
}

// AdminWalletBulkFreezeHandler freezes the selected wallets
func (s *Server) AdminWalletBulkFreezeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminWallet, "Invalid form data")
			return
		}
		ids := formIDs(r)
		_, err := s.api.BulkFreeze(r.Context(), ids)
		s.finishAction(w, r, RouteAdminWallet, err, strconv.Itoa(len(ids))+" wallets frozen")
	}
}

type reportsData struct {
	Request walletapi.ReportRequest
	Charts  bool
	Tables  bool
	Report  walletapi.Report
	Types   []string
	Ranges  []string
	Formats []string
}

func newReportsData(req walletapi.ReportRequest) reportsData {
	return reportsData{
		Request: req,
		Charts:  utils.Value(req.IncludeCharts),
		Tables:  utils.Value(req.IncludeTables),
		Types:   []string{walletapi.ReportTransactions, walletapi.ReportUsers, walletapi.ReportKYC, walletapi.ReportWallet, walletapi.ReportRevenue},
		Ranges:  []string{"today", "yesterday", "week", "month", "quarter", "year", "custom"},
		Formats: []string{walletapi.FormatPDF, walletapi.FormatExcel, walletapi.FormatCSV},
	}
}

func reportRequestFromForm(r *http.Request) walletapi.ReportRequest {
	req := walletapi.ReportRequest{
		ReportType:      r.FormValue("reportType"),
		DateRange:       r.FormValue("dateRange"),
		Format:          r.FormValue("format"),
		IncludeCharts:   utils.Ptr(r.FormValue("includeCharts") == "on"),
		IncludeTables:   utils.Ptr(r.FormValue("includeTables") == "on"),
		SelectedColumns: r.Form["selectedColumns"],
	}
	if req.DateRange == "custom" {
		req.StartDate = parseDate(r.FormValue("startDate"))
		req.EndDate = parseDate(r.FormValue("endDate"))
	}
	return req
}

func parseDate(v string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(v))
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// AdminReportsHandler shows the report builder
func (s *Server) AdminReportsHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("reports.html")
	return func(w http.ResponseWriter, r *http.Request) {
		data := newReportsData(walletapi.ReportRequest{
			ReportType:    walletapi.ReportTransactions,
			DateRange:     "month",
			Format:        walletapi.FormatPDF,
			IncludeCharts: utils.Ptr(true),
			IncludeTables: utils.Ptr(true),
		})
		s.renderAdminPage(w, r, adminPage{Active: "reports", Title: "Reports", Template: tmpl, Data: data})
	}
}

// AdminReportsGenerateHandler builds a report and shows it under the form
func (s *Server) AdminReportsGenerateHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("reports.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminReports, "Invalid form data")
			return
		}
		req := reportRequestFromForm(r)
		data := newReportsData(req)
		report, err := s.api.GenerateReport(r.Context(), req)
		data.Report = report
		s.renderAdminPage(w, r, adminPage{Active: "reports", Title: "Reports", Template: tmpl, Data: data, Error: s.pageError(err)})
	}
}

// AdminReportsExportHandler asks the API to prepare a report file
func (s *Server) AdminReportsExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminReports, "Invalid form data")
			return
		}
		export, err := s.api.ExportReport(r.Context(), reportRequestFromForm(r))
		s.finishAction(w, r, RouteAdminReports, err, "Report ready: "+export.URL)
	}
}

type profileData struct {
	Session    sessions.Session
	Remembered bool
	Claims     sessions.Claims
	HasClaims  bool
	Expired    bool
}

// AdminProfileHandler shows the logged-in admin and their session
func (s *Server) AdminProfileHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("profile.html")
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := storeFrom(r).Current(r.Context())
		data := profileData{Session: sess, Remembered: sess.Tier == sessions.TierRemembered}
		data.Claims, data.HasClaims = sessions.TokenClaims(sess.Token)
		data.Expired = data.HasClaims && data.Claims.Expired(time.Now())
		s.renderAdminPage(w, r, adminPage{Active: "profile", Title: "Profile", Template: tmpl, Data: data})
	}
}
