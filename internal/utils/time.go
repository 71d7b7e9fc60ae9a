package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/journeyline/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// FormatDate renders t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// HumanizeDays renders a day count as weeks and days, e.g. "3w 2d".
func HumanizeDays(days int) string {
	if days < 0 {
		days = 0
	}
	weeks, rest := days/7, days%7
	switch {
	case weeks == 0:
		return fmt.Sprintf("%dd", rest)
	case rest == 0:
		return fmt.Sprintf("%dw", weeks)
	default:
		return fmt.Sprintf("%dw %dd", weeks, rest)
	}
}
