package wizard

import (
	"fmt"
	"time"
)

// ISODate is the calendar date layout used everywhere in the wizard and
// on stored plans.
const ISODate = "2006-01-02"

// TodayISO returns today's date in ISO form.
func TodayISO() string {
	return time.Now().Format(ISODate)
}

// EndDate computes the inclusive end date of a plan:
// startDate + (numDays - 1) days. Calendar arithmetic via time.AddDate,
// so month and year rollover behave correctly.
func EndDate(startDate string, numDays int) (string, error) {
	start, err := time.Parse(ISODate, startDate)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	return start.AddDate(0, 0, numDays-1).Format(ISODate), nil
}

// FormatDateRange renders a plan span for display, e.g.
// "Jun 1 - Jun 5, 2024". When the span crosses a year boundary the
// start carries its own year: "Dec 30, 2024 - Jan 1, 2025".
// Returns "" when startDate is missing or malformed.
func FormatDateRange(startDate string, numDays int) string {
	start, err := time.Parse(ISODate, startDate)
	if err != nil {
		return ""
	}
	end := start.AddDate(0, 0, numDays-1)

	startStr := start.Format("Jan 2")
	if start.Year() != end.Year() {
		return fmt.Sprintf("%s, %d - %s, %d", startStr, start.Year(), end.Format("Jan 2"), end.Year())
	}
	return fmt.Sprintf("%s - %s, %d", startStr, end.Format("Jan 2"), end.Year())
}
