package report

import (
	"math"
	"sort"

	"staffattendance/backend/internal/entity"
)

// View selects the percentage denominator. Each screen counts differently.
type View int

const (
	// DashboardView divides by marked days (present, absent, halfday).
	DashboardView View = iota
	// MonthlyView divides by working days, i.e. days that are neither
	// holiday nor weekend.
	MonthlyView
	// OverviewView divides by every calendar day in the range.
	OverviewView
)

// Summary is the tally for one staff member, or for everyone in Totals.
type Summary struct {
	StaffID    string `json:"staff_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	HalfDay    int    `json:"halfday"`
	Holiday    int    `json:"holiday"`
	Weekend    int    `json:"weekend"`
	Unmarked   int    `json:"unmarked"`
	Days       int    `json:"days"`
	Percent    int    `json:"percent"`
}

func (s *Summary) add(st entity.Status) {
	s.Days++
	switch st {
	case entity.StatusPresent:
		s.Present++
	case entity.StatusAbsent:
		s.Absent++
	case entity.StatusHalfDay:
		s.HalfDay++
	case entity.StatusHoliday:
		s.Holiday++
	case entity.StatusWeekend:
		s.Weekend++
	default:
		s.Unmarked++
	}
}

// Denominator returns the day count a view divides by.
func (v View) Denominator(s Summary) int {
	switch v {
	case DashboardView:
		return s.Present + s.Absent + s.HalfDay
	case MonthlyView:
		return s.Days - s.Holiday - s.Weekend
	}
	return s.Days
}

// Percent computes round(100 * (present + halfday/2) / denominator), or 0
// when nothing counts.
func Percent(s Summary, view View) int {
	denom := view.Denominator(s)
	if denom <= 0 {
		return 0
	}
	return int(math.Round(100 * (float64(s.Present) + 0.5*float64(s.HalfDay)) / float64(denom)))
}

// Aggregate tallies every staff member over days.
func Aggregate(staff []entity.Staff, days []string, r *Resolver, view View) []Summary {
	list := make([]Summary, 0, len(staff))
	for _, st := range staff {
		s := Summary{StaffID: st.ID, Name: st.Name, Department: st.Department}
		for _, day := range days {
			s.add(r.Status(st.ID, day))
		}
		s.Percent = Percent(s, view)
		list = append(list, s)
	}
	return list
}

// Rank orders by present days descending, then absent days ascending, then
// staff id so the order is stable across calls.
func Rank(list []Summary) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Present != b.Present {
			return a.Present > b.Present
		}
		if a.Absent != b.Absent {
			return a.Absent < b.Absent
		}
		return a.StaffID < b.StaffID
	})
}

// Totals sums the summaries and recomputes the percentage for view.
func Totals(list []Summary, view View) Summary {
	var t Summary
	for _, s := range list {
		t.Present += s.Present
		t.Absent += s.Absent
		t.HalfDay += s.HalfDay
		t.Holiday += s.Holiday
		t.Weekend += s.Weekend
		t.Unmarked += s.Unmarked
		t.Days += s.Days
	}
	t.Percent = Percent(t, view)
	return t
}
