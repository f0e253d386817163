package attendance

import (
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/service/report"
)

type MarkRequest struct {
	StaffID *string `json:"staffId" form:"staffId"`
	Date    *string `json:"date"    form:"date"`
	Status  *string `json:"status"  form:"status"`
}

type MarkResponse struct {
	StaffID string        `json:"staffId"`
	Date    string        `json:"date"`
	Status  entity.Status `json:"status"`
	// Removed is set when the request matched the stored status and the
	// mark was toggled off.
	Removed bool `json:"removed"`
	// Forced is set when a holiday or Sunday replaced the requested status.
	Forced bool `json:"forced"`
}

type BulkRequest struct {
	Date       *string `json:"date"       form:"date"`
	Status     *string `json:"status"     form:"status"`
	Department *string `json:"department" form:"department"`
}

type BulkResponse struct {
	Date   string        `json:"date"`
	Status entity.Status `json:"status"`
	Marked int64         `json:"marked"`
}

type DeleteRequest struct {
	StaffID *string `json:"staffId" form:"staffId"`
	Date    *string `json:"date"    form:"date"`
}

// DayResponse maps staff id to status for one day.
type DayResponse map[string]entity.Status

// MonthResponse maps YYYY-MM-DD to the statuses of that day.
type MonthResponse map[string]DayResponse

type DayStatus struct {
	Date   string        `json:"date"`
	Status entity.Status `json:"status"`
}

type MyReportResponse struct {
	Staff   entity.Staff   `json:"staff"`
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Days    []DayStatus    `json:"days"`
	Summary report.Summary `json:"summary"`
}
