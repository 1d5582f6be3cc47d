// Package core holds the domain records and calendar-day helpers shared by
// the store, the services and the dashboard engine.
//
// Dates are carried as plain YYYY-MM-DD strings everywhere, matching how
// they are persisted: a record's date is the local calendar day the user
// picked, never a timestamp. All comparisons are string equality.
package core

import (
	"errors"
	"time"
)

// DayFormat is the canonical layout for calendar-day strings.
const DayFormat = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date: want YYYY-MM-DD")

// FormatDay renders t as a calendar-day string in t's location.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ValidDay reports whether s is a well-formed calendar-day string.
func ValidDay(s string) bool {
	_, err := ParseDay(s)
	return err == nil
}

// Window returns the last n consecutive calendar days ending at today,
// oldest first, as formatted day strings.
func Window(today time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, FormatDay(today.AddDate(0, 0, -i)))
	}
	return days
}

// Weekday returns the day of week for a calendar-day string
// (Sunday = 0 .. Saturday = 6, time.Weekday numbering).
func Weekday(day string) (time.Weekday, error) {
	t, err := ParseDay(day)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}
