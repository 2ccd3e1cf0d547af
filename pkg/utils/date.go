package utils

import (
	"strings"
	"time"
)

const dottedDateLayout = "02.01.2006"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParseFlexibleDate accepts the date spellings the marketplace APIs produce:
// ISO date, RFC3339 timestamp, or DD.MM.YYYY. The second return value is
// false when nothing matched; callers drop such records from date-bucket
// matching instead of failing.
func ParseFlexibleDate(dateStr string) (time.Time, bool) {
	normalized := strings.TrimSpace(dateStr)
	if normalized == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339, dottedDateLayout} {
		if date, err := time.Parse(layout, normalized); err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

// StartOfDay floors to 00:00:00; EndOfDay ceils to 23:59:59.999. A from/to
// pair normalized this way covers whole days inclusively.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthKey renders the month grouping key used by the finance report.
func MonthKey(t time.Time) string {
	return t.Format("01-2006")
}
