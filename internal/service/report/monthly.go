package report

import (
	"strconv"
	"time"

	"staffattendance/backend/internal/entity"
)

// Monthly is the month grid: one row per staff member, one code per day.
type Monthly struct {
	Year     int               `json:"year"`
	Month    int               `json:"month"`
	Title    string            `json:"title"`
	Days     []string          `json:"days"`
	Holidays map[string]string `json:"holidays"`
	Rows     []MonthlyRow      `json:"rows"`
	Totals   Summary           `json:"totals"`
}

type MonthlyRow struct {
	Staff   entity.Staff `json:"staff"`
	Codes   []string     `json:"codes"`
	Summary Summary      `json:"summary"`
}

// BuildMonthly lays out the grid for a zero based month.
func BuildMonthly(year, month int, staff []entity.Staff, days []string, r *Resolver) Monthly {
	m := Monthly{
		Year:     year,
		Month:    month,
		Title:    time.Month(month+1).String() + " " + strconv.Itoa(year),
		Days:     days,
		Holidays: make(map[string]string),
		Rows:     make([]MonthlyRow, 0, len(staff)),
	}

	for _, day := range days {
		if r.IsHoliday(day) {
			m.Holidays[day] = r.HolidayName(day)
		}
	}

	summaries := Aggregate(staff, days, r, MonthlyView)
	for i, st := range staff {
		row := MonthlyRow{Staff: st, Summary: summaries[i], Codes: make([]string, len(days))}
		for j, day := range days {
			row.Codes[j] = r.Status(st.ID, day).Code()
		}
		m.Rows = append(m.Rows, row)
	}
	m.Totals = Totals(summaries, MonthlyView)

	return m
}
