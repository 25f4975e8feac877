package walletapi

import (
	"strings"

	"github.com/jrsteele09/wallet-admin-console/users"
)

// NotAvailable replaces missing text fields in API payloads.
const NotAvailable = "N/A"

// Page is the paged list envelope used by every list endpoint.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

func (p *Page[T]) normalize(each func(*T)) {
	if p.Content == nil {
		p.Content = []T{}
	}
	if each != nil {
		for i := range p.Content {
			each(&p.Content[i])
		}
	}
	if p.TotalPages == 0 && p.Size > 0 {
		p.TotalPages = int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
	}
}

func (p Page[T]) HasPrev() bool { return p.Page > 0 }
func (p Page[T]) HasNext() bool { return p.Page+1 < p.TotalPages }
func (p Page[T]) PrevPage() int { return max(p.Page-1, 0) }
func (p Page[T]) NextPage() int { return p.Page + 1 }

// ErrorResponse is the body the API returns alongside failures.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the acknowledgement returned by action endpoints.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

type LoginRequest struct {
	Mobile string `json:"mobile"`
	MPIN   string `json:"mpin"`
}

// LoginResponse carries either a token and profile or an error field.
type LoginResponse struct {
	Token   string         `json:"token,omitempty"`
	User    *users.Profile `json:"user,omitempty"`
	Step    string         `json:"step,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type UserStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	PendingKYC    int64   `json:"pendingKyc"`
	ActiveWallets int64   `json:"activeWallets"`
	TotalBalance  float64 `json:"totalBalance"`
}

type KYCStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

type TransactionSummary struct {
	TodayVolume       float64 `json:"todayVolume"`
	TodayCount        int64   `json:"todayCount"`
	YesterdayVolume   float64 `json:"yesterdayVolume"`
	TotalTransactions int64   `json:"totalTransactions"`
}

// VolumeChange is today's volume relative to yesterday's, in percent.
func (s TransactionSummary) VolumeChange() float64 {
	return percentChange(s.TodayVolume, s.YesterdayVolume)
}

type WalletOverview struct {
	TotalBalance    float64 `json:"totalBalance"`
	TotalUsers      int64   `json:"totalUsers"`
	ActiveWallets   int64   `json:"activeWallets"`
	FrozenWallets   int64   `json:"frozenWallets"`
	TodayVolume     float64 `json:"todayVolume"`
	YesterdayVolume float64 `json:"yesterdayVolume"`
}

func (o WalletOverview) VolumeChange() float64 {
	return percentChange(o.TodayVolume, o.YesterdayVolume)
}

func percentChange(today, yesterday float64) float64 {
	if yesterday == 0 {
		if today == 0 {
			return 0
		}
		return 100
	}
	return (today - yesterday) / yesterday * 100
}

// User is one row of the user management table.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Mobile         string    `json:"mobile"`
	Status         string    `json:"status"`
	KYCStatus      string    `json:"kycStatus"`
	WalletBalance  float64   `json:"walletBalance"`
	WalletType     string    `json:"walletType"`
	ProfilePicture string    `json:"profilePicture"`
	RiskLevel      string    `json:"riskLevel"`
	CreatedAt      Timestamp `json:"createdAt"`
	LastActive     Timestamp `json:"lastActive"`
	WalletFrozen   bool      `json:"walletFrozen"`
}

func (u *User) normalize() {
	u.Name = orNA(u.Name)
	u.Email = orNA(u.Email)
	u.Mobile = orNA(u.Mobile)
	u.Status = orNA(u.Status)
	u.KYCStatus = orNA(u.KYCStatus)
	u.RiskLevel = orNA(u.RiskLevel)
}

// UserDetail is the full record shown on the user detail screen.
type UserDetail struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Mobile           string           `json:"mobile"`
	Status           string           `json:"status"`
	RiskLevel        string           `json:"riskLevel"`
	DateOfBirth      string           `json:"dateOfBirth"`
	Nationality      string           `json:"nationality"`
	Address          string           `json:"address"`
	JoinDate         Timestamp        `json:"joinDate"`
	WalletBalance    float64          `json:"walletBalance"`
	FrozenFunds      float64          `json:"frozenFunds"`
	IsFrozen         bool             `json:"isFrozen"`
	PendingCredits   float64          `json:"pendingCredits"`
	KYCStatus        string           `json:"kycStatus"`
	KYCDocuments     []map[string]any `json:"kycDocuments"`
	RecentActivities []map[string]any `json:"recentActivities"`
	Stats            map[string]any   `json:"stats"`
}

func (u *UserDetail) normalize() {
	u.Name = orNA(u.Name)
	u.Email = orNA(u.Email)
	u.Mobile = orNA(u.Mobile)
	u.Status = orNA(u.Status)
	u.RiskLevel = orNA(u.RiskLevel)
	u.DateOfBirth = orNA(u.DateOfBirth)
	u.Nationality = orNA(u.Nationality)
	u.Address = orNA(u.Address)
	u.KYCStatus = orNA(u.KYCStatus)
	if u.KYCDocuments == nil {
		u.KYCDocuments = []map[string]any{}
	}
	if u.RecentActivities == nil {
		u.RecentActivities = []map[string]any{}
	}
	if u.Stats == nil {
		u.Stats = map[string]any{}
	}
}

// KYCRequest is one submission in the KYC review queue.
type KYCRequest struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"userId"`
	UserName      string           `json:"userName"`
	UserEmail     string           `json:"userEmail"`
	UserAvatar    string           `json:"userAvatar"`
	SubmittedDate Timestamp        `json:"submittedDate"`
	Status        string           `json:"status"`
	Documents     []map[string]any `json:"documents"`
}

func (k *KYCRequest) normalize() {
	k.UserName = orNA(k.UserName)
	k.UserEmail = orNA(k.UserEmail)
	k.Status = orNA(k.Status)
	if k.Documents == nil {
		k.Documents = []map[string]any{}
	}
}

func (k KYCRequest) IsPending() bool {
	return strings.EqualFold(k.Status, string(users.KYCPending))
}

type Transaction struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transactionId"`
	UserName      string    `json:"userName"`
	UserAvatar    string    `json:"userAvatar"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	Date          Timestamp `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
}

func (t *Transaction) normalize() {
	t.TransactionID = orNA(t.TransactionID)
	t.UserName = orNA(t.UserName)
	t.Type = orNA(t.Type)
	t.Status = orNA(t.Status)
	t.PaymentMethod = orNA(t.PaymentMethod)
}

// Wallet is one row of the wallet management table.
type Wallet struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Balance    float64   `json:"balance"`
	Status     string    `json:"status"`
	Frozen     bool      `json:"frozen"`
	LastActive Timestamp `json:"lastActive"`
}

func (w *Wallet) normalize() {
	w.Name = orNA(w.Name)
	w.Status = orNA(w.Status)
}

type WalletTransaction struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"userId"`
	User   string    `json:"user"`
	Type   string    `json:"type"`
	Amount float64   `json:"amount"`
	Date   Timestamp `json:"date"`
}

func (t *WalletTransaction) normalize() {
	t.User = orNA(t.User)
	t.Type = orNA(t.Type)
}

// Adjustment types accepted by the wallet adjust endpoint.
const (
	AdjustCredit = "CREDIT"
	AdjustDebit  = "DEBIT"
)

type AdjustRequest struct {
	UserID int64   `json:"userId"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Reason string  `json:"reason"`
}

type BulkCreditRequest struct {
	UserIDs []int64 `json:"userIds"`
	Amount  float64 `json:"amount"`
	Reason  string  `json:"reason"`
}

// ReportRequest asks the API to build or export a report.
type ReportRequest struct {
	ReportType      string   `json:"reportType"`
	DateRange       string   `json:"dateRange"`
	StartDate       string   `json:"startDate,omitempty"` // yyyy-mm-dd, custom range only
	EndDate         string   `json:"endDate,omitempty"`
	Format          string   `json:"format"`
	IncludeCharts   *bool    `json:"includeCharts,omitempty"`
	IncludeTables   *bool    `json:"includeTables,omitempty"`
	SelectedColumns []string `json:"selectedColumns,omitempty"`
}

// Report types and formats the API understands.
const (
	ReportTransactions = "transactions"
	ReportUsers        = "users"
	ReportKYC          = "kyc"
	ReportWallet       = "wallet"
	ReportRevenue      = "revenue"

	FormatPDF   = "pdf"
	FormatExcel = "excel"
	FormatCSV   = "csv"
)

func (r ReportRequest) withDefaults() ReportRequest {
	if r.ReportType == "" {
		r.ReportType = ReportTransactions
	}
	if r.DateRange == "" {
		r.DateRange = "month"
	}
	if r.Format == "" {
		r.Format = FormatPDF
	}
	on := true
	if r.IncludeCharts == nil {
		r.IncludeCharts = &on
	}
	if r.IncludeTables == nil {
		r.IncludeTables = &on
	}
	return r
}

// Report is the generated report body. Its fields vary by report type.
type Report map[string]any

func (r Report) Type() string {
	s, _ := r["reportType"].(string)
	return orNA(s)
}

func (r Report) Range() string {
	s, _ := r["dateRange"].(string)
	return orNA(s)
}

// Export points at a file the API prepared for download.
type Export struct {
	FileName string   `json:"fileName,omitempty"`
	URL      string   `json:"url"`
	Format   string   `json:"format,omitempty"`
	Columns  []string `json:"columns,omitempty"`
	Message  string   `json:"message,omitempty"`
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
