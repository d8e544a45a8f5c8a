package schedule

import (
	"fmt"
	"time"

	"github.com/college-hub/college-schedule/internal/domain/shared"
	"github.com/college-hub/college-schedule/pkg/timeutil"
)

// Domain name used in error context.
const domainName = "schedule"

// MaxRangeDays - наибольшая длина запрашиваемого диапазона в днях
// (включительно). Календарь материализует каждый день, поэтому длина
// ограничена годом.
const MaxRangeDays = 366

// DateRange - проверенный диапазон дат, включительно с обеих сторон.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ValidateRange проверяет диапазон до любого обращения к хранилищу.
// Если начало позже конца или диапазон длиннее MaxRangeDays, возвращает
// ValidationError; иначе тот же диапазон с отброшенным временем суток.
func ValidateRange(start, end time.Time) (DateRange, error) {
	start, end = timeutil.DateOf(start), timeutil.DateOf(end)
	if start.After(end) {
		return DateRange{}, shared.Validation(domainName, "ValidateRange", "Дата начала больше даты окончания.")
	}
	if timeutil.DaysBetween(start, end)+1 > MaxRangeDays {
		return DateRange{}, shared.Validation(domainName, "ValidateRange",
			fmt.Sprintf("Диапазон дат не должен превышать %d дней.", MaxRangeDays))
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains сообщает, попадает ли дата в диапазон.
func (r DateRange) Contains(t time.Time) bool {
	d := timeutil.DateOf(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days возвращает количество календарных дней в диапазоне.
func (r DateRange) Days() int {
	return timeutil.DaysBetween(r.Start, r.End) + 1
}

// String formats the range for logs.
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", timeutil.FormatDateStr(r.Start), timeutil.FormatDateStr(r.End))
}

// ErrGroupNotFound builds the NotFoundError for an unknown group name.
func ErrGroupNotFound(name string) error {
	return shared.NotFound(domainName, "FindGroup", fmt.Sprintf("Группа %s не найдена.", name))
}
