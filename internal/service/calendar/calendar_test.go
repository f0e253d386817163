package calendar

import "testing"

func TestParse(t *testing.T) {
	got, err := Parse(" 2024-01-07 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "2024-01-07" {
		t.Fatalf("expected 2024-01-07, got %s", got)
	}

	for _, bad := range []string{"", "2024-13-01", "07/01/2024", "2024-02-30"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	if !IsWeekend("2024-01-07") {
		t.Fatalf("2024-01-07 is a Sunday")
	}
	if IsWeekend("2024-01-06") {
		t.Fatalf("Saturday must be a working day")
	}
	if IsWeekend("not-a-date") {
		t.Fatalf("garbage is not a weekend")
	}
}

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange(2024, 1)
	if err != nil {
		t.Fatalf("month range: %v", err)
	}
	if from != "2024-02-01" || to != "2024-02-29" {
		t.Fatalf("expected leap February, got %s..%s", from, to)
	}

	from, to, err = MonthRange(2023, 11)
	if err != nil {
		t.Fatalf("month range: %v", err)
	}
	if from != "2023-12-01" || to != "2023-12-31" {
		t.Fatalf("expected December, got %s..%s", from, to)
	}

	if _, _, err := MonthRange(2024, 12); err == nil {
		t.Fatalf("month 12 must be rejected")
	}
}

func TestDaysAndSundays(t *testing.T) {
	days, err := Days("2024-01-30", "2024-02-02")
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	want := []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(days) != len(want) {
		t.Fatalf("expected %v, got %v", want, days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, days)
		}
	}

	if days, _ := Days("2024-02-02", "2024-01-30"); len(days) != 0 {
		t.Fatalf("reversed range must be empty, got %v", days)
	}

	sundays, err := Sundays("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("sundays: %v", err)
	}
	if len(sundays) != 4 || sundays[0] != "2024-01-07" || sundays[3] != "2024-01-28" {
		t.Fatalf("unexpected sundays %v", sundays)
	}
}
