package walletapi

import (
	"context"
	"strings"
)

func (a *API) UserStats(ctx context.Context) (UserStats, error) {
	var out UserStats
	err := a.get(ctx, "UserStats", pathUsers+"/stats", nil, &out)
	return out, err
}

func (a *API) ListUsers(ctx context.Context, q PageQuery) (Page[User], error) {
	var out Page[User]
	q.Status, q.Type = "", ""
	if err := a.get(ctx, "ListUsers", pathUsers, q.values(), &out); err != nil {
		return Page[User]{}, err
	}
	out.normalize((*User).normalize)
	return out, nil
}

func (a *API) GetUser(ctx context.Context, id int64) (UserDetail, error) {
	var out UserDetail
	if err := a.get(ctx, "GetUser", idPath(pathUsers, id, ""), nil, &out); err != nil {
		return UserDetail{}, err
	}
	out.normalize()
	return out, nil
}

func (a *API) FreezeUser(ctx context.Context, id int64, reason string) (MessageResponse, error) {
	var out MessageResponse
	body := map[string]string{"reason": strings.TrimSpace(reason)}
	err := a.post(ctx, "FreezeUser", idPath(pathUsers, id, "freeze"), body, &out)
	return out, err
}

func (a *API) UnfreezeUser(ctx context.Context, id int64) (MessageResponse, error) {
	var out MessageResponse
	err := a.post(ctx, "UnfreezeUser", idPath(pathUsers, id, "unfreeze"), nil, &out)
	return out, err
}
