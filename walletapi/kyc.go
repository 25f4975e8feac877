package walletapi

import (
	"context"
	"strings"
)

func (a *API) KYCStats(ctx context.Context) (KYCStats, error) {
	var out KYCStats
	err := a.get(ctx, "KYCStats", pathKYC+"/stats", nil, &out)
	return out, err
}

func (a *API) ListKYC(ctx context.Context, q PageQuery) (Page[KYCRequest], error) {
	var out Page[KYCRequest]
	q.Type = ""
	if err := a.get(ctx, "ListKYC", pathKYC, q.values(), &out); err != nil {
		return Page[KYCRequest]{}, err
	}
	out.normalize((*KYCRequest).normalize)
	return out, nil
}

func (a *API) ApproveKYC(ctx context.Context, documentID int64) (MessageResponse, error) {
	var out MessageResponse
	err := a.post(ctx, "ApproveKYC", idPath(pathKYC, documentID, "approve"), nil, &out)
	return out, err
}

func (a *API) RejectKYC(ctx context.Context, documentID int64, reason string) (MessageResponse, error) {
	var out MessageResponse
	body := map[string]string{"reason": strings.TrimSpace(reason)}
	err := a.post(ctx, "RejectKYC", idPath(pathKYC, documentID, "reject"), body, &out)
	return out, err
}
