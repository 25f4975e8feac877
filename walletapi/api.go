package walletapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/wallet-admin-console/apiclient"
)

const (
	pathLogin        = "/admin/login"
	pathUsers        = "/admin/users"
	pathKYC          = "/admin/kyc"
	pathTransactions = "/admin/transactions"
	pathWallets      = "/admin/wallet-management"
	pathReports      = "/admin/reports"

	DefaultPageSize = 10
)

// Caller is the subset of the API client the endpoints need.
type Caller interface {
	Get(ctx context.Context, path string, query url.Values) (*apiclient.Response, error)
	Post(ctx context.Context, path string, body any) (*apiclient.Response, error)
	Do(ctx context.Context, r apiclient.Request) (*apiclient.Response, error)
}

// API exposes the wallet admin endpoints as typed calls.
type API struct {
	client Caller
}

func New(client Caller) *API {
	return &API{client: client}
}

// PageQuery selects one page of a list, optionally filtered.
type PageQuery struct {
	Page   int
	Size   int
	Search string
	Status string
	Type   string
}

func (q PageQuery) values() url.Values {
	size := q.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(max(q.Page, 0)))
	v.Set("size", strconv.Itoa(size))
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if q.Status != "" && !strings.EqualFold(q.Status, "all") {
		v.Set("status", q.Status)
	}
	if q.Type != "" && !strings.EqualFold(q.Type, "all") {
		v.Set("type", q.Type)
	}
	return v
}

func (a *API) get(ctx context.Context, op, path string, query url.Values, out any) error {
	resp, err := a.client.Get(ctx, path, query)
	if err != nil {
		return fmt.Errorf("[walletapi %s] %w", op, err)
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("[walletapi %s] %w", op, err)
	}
	return nil
}

func (a *API) post(ctx context.Context, op, path string, body, out any) error {
	resp, err := a.client.Post(ctx, path, body)
	if err != nil {
		return fmt.Errorf("[walletapi %s] %w", op, err)
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("[walletapi %s] %w", op, err)
	}
	return nil
}

// Login exchanges mobile and MPIN for a token. The payload is returned as
// received; callers decide whether it is acceptable.
func (a *API) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	if err := a.post(ctx, "Login", pathLogin, req, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

func idPath(base string, id int64, action string) string {
	p := base + "/" + strconv.FormatInt(id, 10)
	if action != "" {
		p += "/" + action
	}
	return p
}
