package types

import (
	"fmt"
	"time"
)

// DateFormat is the canonical day format used across reports and storage.
const DateFormat = "2006-01-02"

// Trade tables exported from spreadsheets commonly use day-first dates, so
// both layouts are accepted.
var dateLayouts = []string{DateFormat, "02/01/2006", "2/1/2006"}

// ParseDate reads a calendar date in ISO or day-first form.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", InvalidTransactionErr, s)
}

// Midnight truncates a timestamp to its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
