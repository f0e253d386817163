// Package report resolves effective day statuses and turns them into
// per-staff summaries, monthly grids and their xlsx/pdf renderings.
package report

import (
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/service/calendar"
)

// Resolve applies the precedence explicit record > holiday > weekend > unmarked.
// recorded is StatusUnmarked when no ledger row exists.
func Resolve(recorded entity.Status, isHoliday, isWeekend bool) entity.Status {
	switch {
	case recorded != entity.StatusUnmarked:
		return recorded
	case isHoliday:
		return entity.StatusHoliday
	case isWeekend:
		return entity.StatusWeekend
	}
	return entity.StatusUnmarked
}

// Resolver answers effective statuses from a snapshot of the ledger and the
// holiday calendar for some range.
type Resolver struct {
	records  map[string]map[string]entity.Status
	holidays map[string]string
}

func NewResolver(records []entity.Attendance, holidays []entity.Holiday) *Resolver {
	r := &Resolver{
		records:  make(map[string]map[string]entity.Status),
		holidays: make(map[string]string, len(holidays)),
	}

	for _, rec := range records {
		day, ok := r.records[rec.WorkDay]
		if !ok {
			day = make(map[string]entity.Status)
			r.records[rec.WorkDay] = day
		}
		day[rec.StaffID] = rec.Status
	}
	for _, h := range holidays {
		r.holidays[h.Date] = h.Name
	}

	return r
}

func (r *Resolver) IsHoliday(day string) bool {
	_, ok := r.holidays[day]
	return ok
}

// HolidayName returns the declared name, or "" when day is not a holiday.
func (r *Resolver) HolidayName(day string) string {
	return r.holidays[day]
}

func (r *Resolver) Status(staffID, day string) entity.Status {
	return Resolve(r.records[day][staffID], r.IsHoliday(day), calendar.IsWeekend(day))
}
