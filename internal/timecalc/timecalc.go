package timecalc

import (
	"fmt"
	"time"

	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
)

// Date is a calendar day without a time or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool {
	return d.midnight().Before(o.midnight())
}

// After reports whether d is a later day than o.
func (d Date) After(o Date) bool {
	return o.Before(d)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseTimestamp parses an entry timestamp as local time. Only the exact
// canonical form is accepted, so "2024-01-03 8:00:00" is rejected.
func ParseTimestamp(s string) (time.Time, error) {
	u, err := time.Parse(model.TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	if u.Format(model.TimestampLayout) != s {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: not in %s form", s, model.TimestampLayout)
	}
	return time.ParseInLocation(model.TimestampLayout, s, time.Local)
}

// FormatTimestamp formats t in the canonical entry layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(model.TimestampLayout)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOf(a) == DateOf(b)
}
