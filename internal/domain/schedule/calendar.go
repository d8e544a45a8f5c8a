package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/college-hub/college-schedule/internal/domain/shared"
	"github.com/college-hub/college-schedule/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// OUTPUT MODEL
// ══════════════════════════════════════════════════════════════════════════════

// LessonDetail - описание занятия для одной части группы.
type LessonDetail struct {
	Subject         string
	TeacherFullName string
	TeacherPosition string
	Classroom       string
	Building        string
	Address         string
}

// Parts - занятия пары по частям группы. nil означает явное отсутствие
// занятия для этой части.
type Parts struct {
	Full      *LessonDetail
	SubgroupA *LessonDetail
	SubgroupB *LessonDetail
}

// Set записывает занятие для части группы.
func (p *Parts) Set(part GroupPart, d *LessonDetail) error {
	switch part {
	case PartFull:
		p.Full = d
	case PartSubgroupA:
		p.SubgroupA = d
	case PartSubgroupB:
		p.SubgroupB = d
	default:
		return fmt.Errorf("unknown group part %q", part)
	}
	return nil
}

// IsSplit сообщает, разделена ли группа на подгруппы в этой паре.
func (p Parts) IsSplit() bool {
	return p.SubgroupA != nil || p.SubgroupB != nil
}

// LessonSlot - одна пара дня.
type LessonSlot struct {
	Number    int
	TimeRange string // HH:MM-HH:MM
	Parts     Parts
}

// CalendarDay - один учебный день.
type CalendarDay struct {
	Date    time.Time
	Weekday string
	Lessons []LessonSlot
}

// ══════════════════════════════════════════════════════════════════════════════
// DATE RANGE MATERIALIZER
// ══════════════════════════════════════════════════════════════════════════════

// IsStudyDay реализует шестидневную учебную неделю: воскресенье не учебный день.
func IsStudyDay(t time.Time) bool {
	return t.Weekday() != time.Sunday
}

// Materialize разворачивает диапазон в последовательность учебных дней.
// Каждая дата диапазона, кроме воскресений, встречается ровно один раз и
// по возрастанию; дни без занятий получают пустой список пар. Занятия,
// выпавшие на воскресенье, не попадают в результат.
func Materialize(r DateRange, entries []ScheduleEntry) ([]CalendarDay, error) {
	byDate := make(map[string][]ScheduleEntry)
	for _, e := range entries {
		key := timeutil.DayKey(e.Date)
		byDate[key] = append(byDate[key], e)
	}

	days := make([]CalendarDay, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		if !IsStudyDay(d) {
			continue
		}

		dayEntries, ok := byDate[timeutil.DayKey(d)]
		if !ok {
			days = append(days, CalendarDay{
				Date:    d,
				Weekday: timeutil.WeekdayNameRu(d),
				Lessons: []LessonSlot{},
			})
			continue
		}

		lessons, err := Aggregate(dayEntries)
		if err != nil {
			return nil, shared.WrapError(domainName, "Materialize", shared.ErrUnexpected,
				"inconsistent schedule data for "+timeutil.FormatDateStr(d), err)
		}

		days = append(days, CalendarDay{
			Date:    d,
			Weekday: recordedWeekday(dayEntries, d),
			Lessons: lessons,
		})
	}

	return days, nil
}

// recordedWeekday берёт название дня из самих строк расписания, а при его
// отсутствии вычисляет по дате.
func recordedWeekday(entries []ScheduleEntry, d time.Time) string {
	for _, e := range entries {
		if e.WeekdayName != "" {
			return e.WeekdayName
		}
	}
	return timeutil.WeekdayNameRu(d)
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSON AGGREGATOR
// ══════════════════════════════════════════════════════════════════════════════

// Aggregate группирует занятия одного дня по парам и сливает занятия
// подгрупп в одну запись. Ключ FULL присутствует всегда: если занятия для
// всей группы нет, значение - явный nil.
func Aggregate(entries []ScheduleEntry) ([]LessonSlot, error) {
	groups := make(map[TimeslotIdentity][]ScheduleEntry)
	order := make([]TimeslotIdentity, 0)
	for _, e := range entries {
		if _, seen := groups[e.Timeslot]; !seen {
			order = append(order, e.Timeslot)
		}
		groups[e.Timeslot] = append(groups[e.Timeslot], e)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Less(order[j])
	})

	lessons := make([]LessonSlot, 0, len(order))
	for _, slot := range order {
		lesson := LessonSlot{
			Number:    slot.Number,
			TimeRange: timeutil.FormatClockRange(slot.Start, slot.End),
		}
		for _, e := range groups[slot] {
			if err := lesson.Parts.Set(e.Part, buildDetail(e)); err != nil {
				return nil, err
			}
		}
		lessons = append(lessons, lesson)
	}

	return lessons, nil
}

func buildDetail(e ScheduleEntry) *LessonDetail {
	return &LessonDetail{
		Subject:         e.Subject,
		TeacherFullName: e.Teacher.FullName(),
		TeacherPosition: e.Teacher.Position,
		Classroom:       e.Classroom.RoomNumber,
		Building:        e.Classroom.Building.Name,
		Address:         e.Classroom.Building.Address,
	}
}
