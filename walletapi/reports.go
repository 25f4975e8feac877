package walletapi

import "context"

func (a *API) GenerateReport(ctx context.Context, req ReportRequest) (Report, error) {
	out := Report{}
	if err := a.post(ctx, "GenerateReport", pathReports+"/generate", req.withDefaults(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) ExportReport(ctx context.Context, req ReportRequest) (Export, error) {
	var out Export
	err := a.post(ctx, "ExportReport", pathReports+"/export", req.withDefaults(), &out)
	return out, err
}
