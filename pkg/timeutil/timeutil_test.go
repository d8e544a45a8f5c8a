package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayLabel_AllDaysDistinct(t *testing.T) {
	want := map[time.Weekday]string{
		time.Monday:    "Понедельник",
		time.Tuesday:   "Вторник",
		time.Wednesday: "Среда",
		time.Thursday:  "Четверг",
		time.Friday:    "Пятница",
		time.Saturday:  "Суббота",
		time.Sunday:    "Воскресенье",
	}

	seen := make(map[string]bool)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		label := WeekdayLabel(wd)
		assert.Equal(t, want[wd], label, wd.String())
		assert.False(t, seen[label], "duplicate label %q", label)
		seen[label] = true
	}
	assert.Len(t, seen, 7)
}

func TestWeekdayNameRu(t *testing.T) {
	// 2024-01-01 is a Monday.
	assert.Equal(t, "Понедельник", WeekdayNameRu(Date(2024, 1, 1)))
	assert.Equal(t, "Воскресенье", WeekdayNameRu(Date(2024, 1, 7)))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01", Date(2024, 1, 1)},
		{" 2024-03-15 ", Date(2024, 3, 15)},
		{"2024-01-01T23:30:00", Date(2024, 1, 1)},
		{"2024-01-01T10:00:00+05:00", Date(2024, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "01.01.2024", "2024-13-01", "yesterday"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:30", FormatClockStr(Clock(8, 30)))
	assert.Equal(t, "00:00", FormatClockStr(0))
	assert.Equal(t, "13:05", FormatClockStr(Clock(13, 5)+42*time.Second))
	assert.Equal(t, "08:30-10:00", FormatClockRange(Clock(8, 30), Clock(10, 0)))
}

func TestDateHelpers(t *testing.T) {
	ts := time.Date(2024, 5, 9, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, Date(2024, 5, 9), DateOf(ts))
	assert.Equal(t, "2024-05-09", DayKey(ts))
	assert.Equal(t, 6, DaysBetween(Date(2024, 1, 1), Date(2024, 1, 7)))
	assert.Equal(t, -1, DaysBetween(Date(2024, 1, 2), Date(2024, 1, 1)))
}

func TestDaysBetween_WideRanges(t *testing.T) {
	assert.Equal(t, 3652058, DaysBetween(Date(1, 1, 1), Date(9999, 12, 31)))
	assert.Equal(t, -3652058, DaysBetween(Date(9999, 12, 31), Date(1, 1, 1)))
	assert.Equal(t, 365242, DaysBetween(Date(1000, 1, 1), Date(2000, 1, 1)))
	assert.Equal(t, 0, DaysBetween(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), Date(2024, 1, 1)))
}
