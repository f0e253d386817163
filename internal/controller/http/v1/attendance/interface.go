package attendance

import (
	"context"

	"staffattendance/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	GetByDate(ctx context.Context, date string) (attendance.DayResponse, error)
	GetMonth(ctx context.Context, year, month int) (attendance.MonthResponse, error)
	Mark(ctx context.Context, request attendance.MarkRequest) (attendance.MarkResponse, error)
	Bulk(ctx context.Context, request attendance.BulkRequest) (attendance.BulkResponse, error)
	Delete(ctx context.Context, request attendance.DeleteRequest) error
	MyReport(ctx context.Context, year, month int) (attendance.MyReportResponse, error)
}
