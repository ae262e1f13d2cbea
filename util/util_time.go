package util

import (
	"time"

	"github.com/jinzhu/now"
)

// Datetime related utility functions.
// All parsing and key derivation is UTC based; the export carries no timezone.
const (
	DATETIME_FORMAT_YYYYMMDD_HYPHEN string = "2006-01-02"
	DATETIME_FORMAT_YYYYMM_HYPHEN   string = "2006-01"
)

// Weeks run Monday through Sunday, matching the export's weekly file cut.
var weekConfig = &now.Config{WeekStartDay: time.Monday}

// ParseEventDate parses the export's EventDate column (YYYY-MM-DD, UTC).
func ParseEventDate(date string) (time.Time, error) {
	return time.ParseInLocation(DATETIME_FORMAT_YYYYMMDD_HYPHEN, date, time.UTC)
}

// TimeFromMillisZ converts a millisecond epoch timestamp to UTC time.
func TimeFromMillisZ(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).UTC()
}

// WeekEndingSunday returns the date of the Sunday that closes the
// Monday-Sunday week containing t.
func WeekEndingSunday(t time.Time) time.Time {
	end := weekConfig.With(t.UTC()).EndOfWeek()
	return time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekKey returns the week grouping key for t: the week-ending Sunday
// formatted as YYYY-MM-DD.
func WeekKey(t time.Time) string {
	return WeekEndingSunday(t).Format(DATETIME_FORMAT_YYYYMMDD_HYPHEN)
}

// MonthKey returns the month grouping key for t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.UTC().Format(DATETIME_FORMAT_YYYYMM_HYPHEN)
}
