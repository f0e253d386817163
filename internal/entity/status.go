package entity

import "strings"

// Status is the attendance state of one staff member on one day.
// The zero value means the day is unmarked.
type Status string

const (
	StatusUnmarked Status = ""
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusHalfDay  Status = "halfday"
	StatusHoliday  Status = "holiday"
	StatusWeekend  Status = "weekend"
)

var statuses = []Status{StatusPresent, StatusAbsent, StatusHalfDay, StatusHoliday, StatusWeekend}

// ParseStatus accepts any casing of a known status.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range statuses {
		if v == st {
			return st, true
		}
	}
	return StatusUnmarked, false
}

// Statuses lists every stored status.
func Statuses() []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// Code is the short label used in report grids and exports.
func (s Status) Code() string {
	switch s {
	case StatusPresent:
		return "P"
	case StatusAbsent:
		return "A"
	case StatusHalfDay:
		return "H"
	case StatusHoliday:
		return "Ho"
	case StatusWeekend:
		return "W"
	}
	return ""
}

// Or returns fallback when s is unmarked.
func (s Status) Or(fallback Status) Status {
	if s == StatusUnmarked {
		return fallback
	}
	return s
}
