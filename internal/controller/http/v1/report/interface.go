package report

import (
	"context"

	"staffattendance/backend/internal/repository/postgres/report"
	service "staffattendance/backend/internal/service/report"
)

type Report interface {
	Dashboard(ctx context.Context, date *string) (report.DashboardResponse, error)
	Monthly(ctx context.Context, year, month int, filter report.Filter) (service.Monthly, error)
	Overview(ctx context.Context, from, to string, filter report.Filter) (report.OverviewResponse, error)
}
