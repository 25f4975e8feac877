package walletapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/jrsteele09/wallet-admin-console/internal/errors"
)

func (a *API) WalletOverview(ctx context.Context) (WalletOverview, error) {
	var out WalletOverview
	err := a.get(ctx, "WalletOverview", pathWallets+"/overview", nil, &out)
	return out, err
}

func (a *API) UserWallets(ctx context.Context, search string) ([]Wallet, error) {
	var query url.Values
	if s := strings.TrimSpace(search); s != "" {
		query = url.Values{"search": {s}}
	}
	var out []Wallet
	if err := a.get(ctx, "UserWallets", pathWallets+"/users", query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Wallet{}
	}
	for i := range out {
		out[i].normalize()
	}
	return out, nil
}

func (a *API) RecentWalletTransactions(ctx context.Context, limit int) ([]WalletTransaction, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []WalletTransaction
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := a.get(ctx, "RecentWalletTransactions", pathWallets+"/recent-transactions", query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []WalletTransaction{}
	}
	for i := range out {
		out[i].normalize()
	}
	return out, nil
}

// AdjustWallet credits or debits a user's wallet.
func (a *API) AdjustWallet(ctx context.Context, req AdjustRequest) (MessageResponse, error) {
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	if req.UserID == 0 || req.Amount <= 0 || (req.Type != AdjustCredit && req.Type != AdjustDebit) {
		return MessageResponse{}, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[walletapi AdjustWallet] user %d amount %.2f type %q", req.UserID, req.Amount, req.Type)
	}
	var out MessageResponse
	err := a.post(ctx, "AdjustWallet", pathWallets+"/adjust", req, &out)
	return out, err
}

func (a *API) BulkCredit(ctx context.Context, req BulkCreditRequest) (MessageResponse, error) {
	if len(req.UserIDs) == 0 || req.Amount <= 0 {
		return MessageResponse{}, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[walletapi BulkCredit] %d users amount %.2f", len(req.UserIDs), req.Amount)
	}
	var out MessageResponse
	err := a.post(ctx, "BulkCredit", pathWallets+"/bulk-credit", req, &out)
	return out, err
}

func (a *API) BulkFreeze(ctx context.Context, userIDs []int64) (MessageResponse, error) {
	if len(userIDs) == 0 {
		return MessageResponse{}, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[walletapi BulkFreeze] no users")
	}
	var out MessageResponse
	err := a.post(ctx, "BulkFreeze", pathWallets+"/bulk-freeze", userIDs, &out)
	return out, err
}
