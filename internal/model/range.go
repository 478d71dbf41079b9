package model

import (
	"fmt"
	"time"
)

// Range bounds a query to an inclusive span of months. Empty fields leave
// that side open, the zero Range covers all history.
type Range struct {
	From string
	To   string
}

// IsZero reports whether the range is unbounded on both sides.
func (r Range) IsZero() bool {
	return r.From == "" && r.To == ""
}

// Contains reports whether a YYYY-MM month falls inside the range.
// Lexicographic comparison is exact for zero-padded months.
func (r Range) Contains(month string) bool {
	if r.From != "" && month < r.From {
		return false
	}
	if r.To != "" && month > r.To {
		return false
	}
	return true
}

// Validate checks both bounds and their ordering.
func (r Range) Validate() error {
	if r.From != "" {
		if _, err := ParseMonth(r.From); err != nil {
			return err
		}
	}
	if r.To != "" {
		if _, err := ParseMonth(r.To); err != nil {
			return err
		}
	}
	if r.From != "" && r.To != "" && r.From > r.To {
		return fmt.Errorf("range start %s is after end %s", r.From, r.To)
	}
	return nil
}

func (r Range) String() string {
	switch {
	case r.IsZero():
		return "all history"
	case r.From == "":
		return "up to " + r.To
	case r.To == "":
		return "since " + r.From
	default:
		return r.From + " to " + r.To
	}
}

// ParseMonth validates a YYYY-MM string and returns it normalized.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return t.Format("2006-01"), nil
}

// LastMonths builds a range covering the n most recent months including the
// current one. n <= 0 returns the zero range.
func LastMonths(n int, now time.Time) Range {
	if n <= 0 {
		return Range{}
	}
	// Anchor on the first of the month so AddDate cannot skip a short month.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{
		From: first.AddDate(0, -(n - 1), 0).Format("2006-01"),
		To:   first.Format("2006-01"),
	}
}
