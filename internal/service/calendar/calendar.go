// Package calendar does the day arithmetic shared by the ledger and reports.
// Days travel as YYYY-MM-DD strings, which sort the same way they compare.
package calendar

import (
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

const Layout = "2006-01-02"

// Parse validates a calendar day and returns it in canonical form.
func Parse(s string) (string, error) {
	d, err := date.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return "", errors.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d.String(), nil
}

// Format renders t as a calendar day in t's location.
func Format(t time.Time) string {
	return date.Date{Time: t}.String()
}

// IsWeekend reports whether day is a Sunday. Saturday is a working day.
func IsWeekend(day string) bool {
	d, err := date.ParseDate(day)
	if err != nil {
		return false
	}
	return d.Weekday() == time.Sunday
}

// MonthRange returns the first and last day of a month. month is zero based
// (0 = January) to match what clients send.
func MonthRange(year, month int) (string, string, error) {
	if month < 0 || month > 11 {
		return "", "", errors.Errorf("month must be between 0 and 11, got %d", month)
	}
	if year < 1970 || year > 9999 {
		return "", "", errors.Errorf("invalid year %d", year)
	}

	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	return Format(first), Format(last), nil
}

// Days lists every day from..to inclusive. It returns nil when to is before from.
func Days(from, to string) ([]string, error) {
	start, err := date.ParseDate(from)
	if err != nil {
		return nil, errors.Errorf("invalid date %q", from)
	}
	end, err := date.ParseDate(to)
	if err != nil {
		return nil, errors.Errorf("invalid date %q", to)
	}

	var days []string
	for d := start.Time; !d.After(end.Time); d = d.AddDate(0, 0, 1) {
		days = append(days, Format(d))
	}
	return days, nil
}

// Sundays lists the Sundays in from..to inclusive.
func Sundays(from, to string) ([]string, error) {
	days, err := Days(from, to)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, d := range days {
		if IsWeekend(d) {
			out = append(out, d)
		}
	}
	return out, nil
}
