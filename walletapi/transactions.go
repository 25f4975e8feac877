package walletapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jrsteele09/wallet-admin-console/apiclient"
)

func (a *API) TransactionSummary(ctx context.Context) (TransactionSummary, error) {
	var out TransactionSummary
	err := a.get(ctx, "TransactionSummary", pathTransactions+"/summary", nil, &out)
	return out, err
}

func (a *API) ListTransactions(ctx context.Context, q PageQuery) (Page[Transaction], error) {
	var out Page[Transaction]
	if err := a.get(ctx, "ListTransactions", pathTransactions, q.values(), &out); err != nil {
		return Page[Transaction]{}, err
	}
	out.normalize((*Transaction).normalize)
	return out, nil
}

// ExportTransactions asks the API to prepare a file with the given columns.
func (a *API) ExportTransactions(ctx context.Context, format string, columns []string) (Export, error) {
	if format == "" {
		format = FormatCSV
	}
	if columns == nil {
		columns = []string{}
	}
	resp, err := a.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   pathTransactions + "/export",
		Query:  url.Values{"format": {format}},
		Body:   columns,
	})
	if err != nil {
		return Export{}, fmt.Errorf("[walletapi ExportTransactions] %w", err)
	}
	var out Export
	if err := resp.Decode(&out); err != nil {
		return Export{}, fmt.Errorf("[walletapi ExportTransactions] %w", err)
	}
	return out, nil
}
