// Package timeutil provides civil-date utilities for the college calendar.
// The college runs on a single institutional calendar, so dates are carried
// as midnight UTC values and compared by their year/month/day only.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Layouts used across the API.
const (
	FormatDate     = "2006-01-02"
	FormatDateTime = "2006-01-02T15:04:05"
	FormatClock    = "15:04"
)

// Date creates a civil date (midnight UTC).
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping the wall-clock calendar day.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DayKey returns a comparable key for the calendar day of t.
func DayKey(t time.Time) string {
	return t.Format(FormatDate)
}

// FormatDateStr formats t as YYYY-MM-DD.
func FormatDateStr(t time.Time) string {
	return t.Format(FormatDate)
}

// ParseDate parses a calendar date. Besides YYYY-MM-DD it accepts full
// timestamps (RFC 3339 or without offset); the clock part is dropped.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{FormatDate, time.RFC3339, FormatDateTime} {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
}

// Clock builds a time-of-day offset from midnight.
func Clock(hour, minute int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}

// FormatClockStr formats a time-of-day offset as HH:MM. Seconds are dropped.
func FormatClockStr(d time.Duration) string {
	d = d.Truncate(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// FormatClockRange formats a start/end pair as HH:MM-HH:MM.
func FormatClockRange(start, end time.Duration) string {
	return FormatClockStr(start) + "-" + FormatClockStr(end)
}

// WeekdayLabel returns the Russian display name for a day of the week.
// It is total over all seven values.
func WeekdayLabel(wd time.Weekday) string {
	switch wd {
	case time.Monday:
		return "Понедельник"
	case time.Tuesday:
		return "Вторник"
	case time.Wednesday:
		return "Среда"
	case time.Thursday:
		return "Четверг"
	case time.Friday:
		return "Пятница"
	case time.Saturday:
		return "Суббота"
	default:
		return "Воскресенье"
	}
}

// WeekdayNameRu returns the Russian name for the weekday of t.
func WeekdayNameRu(t time.Time) string {
	return WeekdayLabel(t.Weekday())
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of calendar days from t1 to t2 (inclusive
// of neither end, may be negative). Works in Unix seconds, so it does not
// saturate like time.Duration beyond ~292 years.
func DaysBetween(t1, t2 time.Time) int {
	return int((DateOf(t2).Unix() - DateOf(t1).Unix()) / secondsPerDay)
}
