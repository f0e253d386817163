package report

import "staffattendance/backend/internal/service/report"

type Filter struct {
	Department *string
}

type DashboardResponse struct {
	Date       string           `json:"date"`
	Holiday    string           `json:"holiday,omitempty"`
	Weekend    bool             `json:"weekend"`
	StaffCount int              `json:"staff_count"`
	Totals     report.Summary   `json:"totals"`
	Staff      []report.Summary `json:"staff"`
}

type OverviewResponse struct {
	From    string           `json:"from"`
	To      string           `json:"to"`
	Totals  report.Summary   `json:"totals"`
	Ranking []report.Summary `json:"ranking"`
}
