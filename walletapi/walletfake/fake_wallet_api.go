// Package walletfake runs an in-memory stand-in for the wallet admin API.
package walletfake

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/wallet-admin-console/users"
	"github.com/jrsteele09/wallet-admin-console/walletapi"
)

const (
	Mobile = "9876543210"
	MPIN   = "1234"
	Token  = "abc123"
)

var Admin = users.Profile{ID: 1, Name: "Admin User", Mobile: Mobile, Email: "admin@wallet.test", Role: users.RoleSuperAdmin}

type Server struct {
	*httptest.Server

	mu           sync.Mutex
	token        string
	users        map[int64]*walletapi.User
	kyc          map[int64]*walletapi.KYCRequest
	transactions []walletapi.Transaction
	failures     map[string]int
	calls        []string
	lastAuth     string
}

// New starts the fake with a small seeded data set. Close it when done.
func New() *Server {
	s := &Server{
		token:    Token,
		users:    map[int64]*walletapi.User{},
		kyc:      map[int64]*walletapi.KYCRequest{},
		failures: map[string]int{},
	}
	s.seed()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/login", s.login)
	mux.HandleFunc("GET /admin/users/stats", s.authed(s.userStats))
	mux.HandleFunc("GET /admin/users", s.authed(s.listUsers))
	mux.HandleFunc("GET /admin/users/{id}", s.authed(s.getUser))
	mux.HandleFunc("POST /admin/users/{id}/freeze", s.authed(s.setFrozen(true)))
	mux.HandleFunc("POST /admin/users/{id}/unfreeze", s.authed(s.setFrozen(false)))
	mux.HandleFunc("GET /admin/kyc/stats", s.authed(s.kycStats))
	mux.HandleFunc("GET /admin/kyc", s.authed(s.listKYC))
	mux.HandleFunc("POST /admin/kyc/{id}/approve", s.authed(s.reviewKYC(string(users.KYCApproved))))
	mux.HandleFunc("POST /admin/kyc/{id}/reject", s.authed(s.reviewKYC(string(users.KYCRejected))))
	mux.HandleFunc("GET /admin/transactions/summary", s.authed(s.transactionSummary))
	mux.HandleFunc("GET /admin/transactions", s.authed(s.listTransactions))
	mux.HandleFunc("POST /admin/transactions/export", s.authed(s.exportTransactions))
	mux.HandleFunc("GET /admin/wallet-management/overview", s.authed(s.walletOverview))
	mux.HandleFunc("GET /admin/wallet-management/users", s.authed(s.userWallets))
	mux.HandleFunc("GET /admin/wallet-management/recent-transactions", s.authed(s.recentTransactions))
	mux.HandleFunc("POST /admin/wallet-management/adjust", s.authed(s.adjust))
	mux.HandleFunc("POST /admin/wallet-management/bulk-credit", s.authed(s.bulkCredit))
	mux.HandleFunc("POST /admin/wallet-management/bulk-freeze", s.authed(s.bulkFreeze))
	mux.HandleFunc("POST /admin/reports/generate", s.authed(s.generateReport))
	mux.HandleFunc("POST /admin/reports/export", s.authed(s.exportReport))

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

func (s *Server) seed() {
	created := time.Date(2025, 1, 10, 9, 30, 0, 0, time.Local)
	s.users[2] = &walletapi.User{ID: 2, Name: "Priya Sharma", Email: "priya@example.com", Mobile: "9123456780",
		Status: "ACTIVE", KYCStatus: string(users.KYCApproved), WalletBalance: 1500, WalletType: "BASIC",
		RiskLevel: "LOW", CreatedAt: walletapi.Timestamp{Time: created}, LastActive: walletapi.Timestamp{Time: created}}
	s.users[3] = &walletapi.User{ID: 3, Name: "Rahul Verma", Email: "rahul@example.com", Mobile: "9988776655",
		Status: "ACTIVE", KYCStatus: string(users.KYCPending), WalletBalance: 250.5, WalletType: "BASIC",
		RiskLevel: "MEDIUM", CreatedAt: walletapi.Timestamp{Time: created}}
	s.kyc[10] = &walletapi.KYCRequest{ID: 10, UserID: 3, UserName: "Rahul Verma", UserEmail: "rahul@example.com",
		SubmittedDate: walletapi.Timestamp{Time: created}, Status: string(users.KYCPending),
		Documents: []map[string]any{{"type": "AADHAAR", "url": "/docs/10.png"}}}
	s.transactions = []walletapi.Transaction{
		{ID: 100, TransactionID: "TXN100", UserName: "Priya Sharma", Type: "CREDIT", Amount: 500, Status: "SUCCESS", Date: walletapi.Timestamp{Time: created}, PaymentMethod: "UPI"},
		{ID: 101, TransactionID: "TXN101", UserName: "Rahul Verma", Type: "DEBIT", Amount: 120, Status: "FAILED", Date: walletapi.Timestamp{Time: created}, PaymentMethod: "WALLET"},
	}
}

// ExpireToken makes every authenticated endpoint answer 401 from now on.
func (s *Server) ExpireToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// FailWith forces status on every request to path. Status 0 removes it.
func (s *Server) FailWith(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

// Calls lists "METHOD /path" for every request received, in order.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// LastAuthorization is the Authorization header of the latest request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

func (s *Server) User(id int64) (walletapi.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return walletapi.User{}, false
	}
	return *u, true
}

func (s *Server) KYC(id int64) (walletapi.KYCRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.kyc[id]
	if !ok {
		return walletapi.KYCRequest{}, false
	}
	return *k, true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		s.lastAuth = r.Header.Get("Authorization")
		status, fail := s.failures[r.URL.Path]
		s.mu.Unlock()
		if fail {
			writeJSON(w, status, walletapi.ErrorResponse{Error: http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()
		if token == "" || r.Header.Get("Authorization") != "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, walletapi.ErrorResponse{Error: "Unauthorized"})
			return
		}
		next(w, r)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req walletapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, walletapi.ErrorResponse{Error: "invalid request"})
		return
	}
	if req.Mobile != Mobile || req.MPIN != MPIN {
		writeJSON(w, http.StatusOK, walletapi.LoginResponse{Error: "Invalid mobile number or MPIN"})
		return
	}
	admin := Admin
	writeJSON(w, http.StatusOK, walletapi.LoginResponse{Token: Token, User: &admin})
}

func (s *Server) userStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats walletapi.UserStats
	for _, u := range s.users {
		stats.TotalUsers++
		stats.TotalBalance += u.WalletBalance
		if u.KYCStatus == string(users.KYCPending) {
			stats.PendingKYC++
		}
		if !u.WalletFrozen {
			stats.ActiveWallets++
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	search := strings.ToLower(r.URL.Query().Get("search"))
	var rows []walletapi.User
	for _, id := range sortedIDs(s.users) {
		u := s.users[id]
		if search == "" || strings.Contains(strings.ToLower(u.Name+" "+u.Email+" "+u.Mobile), search) {
			rows = append(rows, *u)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, paginate(rows, r))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	u, found := s.users[id]
	var detail walletapi.UserDetail
	if found {
		detail = walletapi.UserDetail{ID: u.ID, Name: u.Name, Email: u.Email, Mobile: u.Mobile, Status: u.Status,
			RiskLevel: u.RiskLevel, JoinDate: u.CreatedAt, WalletBalance: u.WalletBalance, IsFrozen: u.WalletFrozen,
			KYCStatus: u.KYCStatus, Stats: map[string]any{"totalTransactions": 2}}
	}
	s.mu.Unlock()
	if !found {
		writeJSON(w, http.StatusNotFound, walletapi.ErrorResponse{Error: "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) setFrozen(frozen bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s.mu.Lock()
		u, found := s.users[id]
		if found {
			u.WalletFrozen = frozen
		}
		s.mu.Unlock()
		if !found {
			writeJSON(w, http.StatusNotFound, walletapi.ErrorResponse{Error: "User not found"})
			return
		}
		msg := "User unfrozen successfully"
		if frozen {
			msg = "User frozen successfully"
		}
		writeJSON(w, http.StatusOK, walletapi.MessageResponse{Message: msg})
	}
}

func (s *Server) kycStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats walletapi.KYCStats
	for _, k := range s.kyc {
		stats.Total++
		switch k.Status {
		case string(users.KYCPending):
			stats.Pending++
		case string(users.KYCApproved):
			stats.Approved++
		case string(users.KYCRejected):
			stats.Rejected++
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) listKYC(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	s.mu.Lock()
	var rows []walletapi.KYCRequest
	for _, id := range sortedIDs(s.kyc) {
		k := s.kyc[id]
		if status == "" || strings.EqualFold(k.Status, status) {
			rows = append(rows, *k)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, paginate(rows, r))
}

func (s *Server) reviewKYC(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s.mu.Lock()
		k, found := s.kyc[id]
		if found {
			k.Status = status
			if u, ok := s.users[k.UserID]; ok {
				u.KYCStatus = status
			}
		}
		s.mu.Unlock()
		if !found {
			writeJSON(w, http.StatusNotFound, walletapi.ErrorResponse{Error: "KYC document not found"})
			return
		}
		writeJSON(w, http.StatusOK, walletapi.MessageResponse{Message: "KYC " + strings.ToLower(status) + " successfully"})
	}
}

func (s *Server) transactionSummary(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := walletapi.TransactionSummary{TotalTransactions: int64(len(s.transactions)), YesterdayVolume: 400}
	for _, t := range s.transactions {
		sum.TodayVolume += t.Amount
		sum.TodayCount++
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	var rows []walletapi.Transaction
	for _, t := range s.transactions {
		if (q.Get("type") == "" || strings.EqualFold(t.Type, q.Get("type"))) &&
			(q.Get("status") == "" || strings.EqualFold(t.Status, q.Get("status"))) {
			rows = append(rows, t)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, paginate(rows, r))
}

func (s *Server) exportTransactions(w http.ResponseWriter, r *http.Request) {
	var columns []string
	_ = json.NewDecoder(r.Body).Decode(&columns)
	format := r.URL.Query().Get("format")
	writeJSON(w, http.StatusOK, walletapi.Export{Format: format, Columns: columns, URL: "/exports/transactions." + format})
}

func (s *Server) walletOverview(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := walletapi.WalletOverview{TodayVolume: 620, YesterdayVolume: 400}
	for _, u := range s.users {
		o.TotalUsers++
		o.TotalBalance += u.WalletBalance
		if u.WalletFrozen {
			o.FrozenWallets++
		} else {
			o.ActiveWallets++
		}
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) userWallets(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(r.URL.Query().Get("search"))
	s.mu.Lock()
	rows := []walletapi.Wallet{}
	for _, id := range sortedIDs(s.users) {
		u := s.users[id]
		if search != "" && !strings.Contains(strings.ToLower(u.Name), search) {
			continue
		}
		status := "ACTIVE"
		if u.WalletFrozen {
			status = "FROZEN"
		}
		rows = append(rows, walletapi.Wallet{ID: u.ID, Name: u.Name, Balance: u.WalletBalance, Status: status, Frozen: u.WalletFrozen, LastActive: u.LastActive})
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) recentTransactions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	s.mu.Lock()
	rows := []walletapi.WalletTransaction{}
	for _, t := range s.transactions {
		if limit > 0 && len(rows) == limit {
			break
		}
		rows = append(rows, walletapi.WalletTransaction{ID: t.ID, User: t.UserName, Type: t.Type, Amount: t.Amount, Date: t.Date})
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) adjust(w http.ResponseWriter, r *http.Request) {
	var req walletapi.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, walletapi.ErrorResponse{Error: "invalid request"})
		return
	}
	s.mu.Lock()
	u, found := s.users[req.UserID]
	insufficient := found && req.Type == walletapi.AdjustDebit && u.WalletBalance < req.Amount
	if found && !insufficient {
		if req.Type == walletapi.AdjustDebit {
			u.WalletBalance -= req.Amount
		} else {
			u.WalletBalance += req.Amount
		}
	}
	s.mu.Unlock()
	switch {
	case !found:
		writeJSON(w, http.StatusNotFound, walletapi.ErrorResponse{Error: "User not found"})
	case insufficient:
		writeJSON(w, http.StatusBadRequest, walletapi.ErrorResponse{Error: "Insufficient balance"})
	default:
		writeJSON(w, http.StatusOK, walletapi.MessageResponse{Message: "Wallet adjusted successfully"})
	}
}

func (s *Server) bulkCredit(w http.ResponseWriter, r *http.Request) {
	var req walletapi.BulkCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, walletapi.ErrorResponse{Error: "invalid request"})
		return
	}
	s.mu.Lock()
	for _, id := range req.UserIDs {
		if u, ok := s.users[id]; ok {
			u.WalletBalance += req.Amount
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, walletapi.MessageResponse{Message: "Bulk credit completed"})
}

func (s *Server) bulkFreeze(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		writeJSON(w, http.StatusBadRequest, walletapi.ErrorResponse{Error: "invalid request"})
		return
	}
	s.mu.Lock()
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			u.WalletFrozen = true
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, walletapi.MessageResponse{Message: fmt.Sprintf("%d wallets frozen", len(ids))})
}

func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	var req walletapi.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, walletapi.ErrorResponse{Error: "invalid request"})
		return
	}
	kind := req.ReportType
	if kind == "" {
		kind = walletapi.ReportTransactions
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reportType":        strings.ToUpper(kind[:1]) + kind[1:] + " Report",
		"dateRange":         req.DateRange,
		"format":            req.Format,
		"totalTransactions": 2,
		"totalVolume":       620.0,
	})
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	var req walletapi.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, walletapi.ErrorResponse{Error: "invalid request"})
		return
	}
	name := req.ReportType + "_report." + req.Format
	writeJSON(w, http.StatusOK, walletapi.Export{FileName: name, URL: "/exports/" + name, Message: "Report generated successfully"})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, walletapi.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func paginate[T any](rows []T, r *http.Request) walletapi.Page[T] {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	page = max(page, 0)
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = walletapi.DefaultPageSize
	}
	start := min(page*size, len(rows))
	end := min(start+size, len(rows))
	total := len(rows)
	return walletapi.Page[T]{
		Content:       rows[start:end],
		TotalElements: int64(total),
		Page:          page,
		Size:          size,
		TotalPages:    (total + size - 1) / size,
		Last:          end >= total,
	}
}

func sortedIDs[T any](m map[int64]T) []int64 {
	return slices.Sorted(maps.Keys(m))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
