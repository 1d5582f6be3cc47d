package core

import (
	"testing"
	"time"
)

func TestWindow(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)
	days := Window(today, 7)

	want := []string{
		"2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07",
		"2025-03-08", "2025-03-09", "2025-03-10",
	}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], days[i])
		}
	}
}

func TestWindowCrossesMonthBoundary(t *testing.T) {
	today := time.Date(2025, 3, 2, 0, 0, 0, 0, time.Local)
	days := Window(today, 7)
	if days[0] != "2025-02-24" {
		t.Errorf("expected window to start at 2025-02-24, got %s", days[0])
	}
	if days[6] != "2025-03-02" {
		t.Errorf("expected window to end at 2025-03-02, got %s", days[6])
	}
}

func TestParseDay(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-03-10", true},
		{"2024-02-29", true}, // leap day
		{"2025-13-01", false},
		{"10-03-2025", false},
		{"2025-3-1", false},
		{"", false},
		{"not a date", false},
	}
	for _, tc := range cases {
		_, err := ParseDay(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseDay(%q): unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseDay(%q): expected error", tc.in)
		}
	}
}

func TestWeekday(t *testing.T) {
	// 2025-03-09 is a Sunday.
	wd, err := Weekday("2025-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wd != time.Sunday {
		t.Errorf("expected Sunday, got %v", wd)
	}

	if _, err := Weekday("garbage"); err == nil {
		t.Error("expected error for malformed day")
	}
}
