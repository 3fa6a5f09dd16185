// Package dates holds the clinic's date conventions: ISO dates on wire
// input, DD/MM/YYYY on patient-facing output, and age derived from a birth
// date.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const (
	isoLayout      = "2006-01-02"
	frontendLayout = "02/01/2006"
)

// Parse accepts a date in either ISO (YYYY-MM-DD) or frontend (DD/MM/YYYY)
// form. Forms send ISO; historical data and user-typed values arrive in the
// frontend form.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("dates: empty date")
	}
	if t, err := time.Parse(isoLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(frontendLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("dates: unrecognized date %q", s)
}

// FormatFrontend renders a date as DD/MM/YYYY for display.
func FormatFrontend(t time.Time) string {
	return t.Format(frontendLayout)
}

// FormatISO renders a date as YYYY-MM-DD for date inputs and queries.
func FormatISO(t time.Time) string {
	return t.Format(isoLayout)
}

// Age returns the completed years between birth and now, or -1 when the
// birth date is in the future.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return -1
	}
	return years
}

// AgeToday is Age against the current date.
func AgeToday(birth time.Time) int {
	return Age(birth, time.Now())
}
