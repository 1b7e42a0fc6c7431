package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DisplayDateLayout renders dates as "March 5, 2024".
const DisplayDateLayout = "January 2, 2006"

// daysPerMonth is the average month length used for internship durations.
const daysPerMonth = 30.44

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02-01-2006",
	"02/01/2006",
}

// ParseDate parses the date formats the backend is known to send.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatDate renders s for display. Empty and N/A yield N/A; unparseable
// values are returned unchanged.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" || s == NotAvailable {
		return NotAvailable
	}
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format(DisplayDateLayout)
}

// InternshipMonths returns the length of an internship in whole months,
// counting partial days up and rounding days/30.44 to the nearest month.
func InternshipMonths(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	if e.Before(s) {
		return 0, ErrEndBeforeStart
	}
	days := math.Ceil(e.Sub(s).Hours() / 24)
	return int(math.Round(days / daysPerMonth)), nil
}

// DurationText formats a month count the way durations are stored.
func DurationText(months int) string {
	return fmt.Sprintf("%d months", months)
}
