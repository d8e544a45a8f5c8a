package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/college-hub/college-schedule/internal/domain/shared"
	"github.com/college-hub/college-schedule/pkg/timeutil"
)

func slot(n, startH, startM, endH, endM int) TimeslotIdentity {
	return TimeslotIdentity{
		Number: n,
		Start:  timeutil.Clock(startH, startM),
		End:    timeutil.Clock(endH, endM),
	}
}

func entry(date time.Time, ts TimeslotIdentity, part GroupPart, subject string) ScheduleEntry {
	return ScheduleEntry{
		Date:     date,
		Timeslot: ts,
		GroupID:  7,
		Part:     part,
		Subject:  subject,
		Teacher: Teacher{
			LastName:   "Иванов",
			FirstName:  "Пётр",
			MiddleName: "Сергеевич",
			Position:   "Преподаватель",
		},
		Classroom: Classroom{
			RoomNumber: "214",
			Building:   Building{Name: "Главный корпус", Address: "ул. Ленина, 1"},
		},
	}
}

func mustRange(t *testing.T, start, end time.Time) DateRange {
	t.Helper()
	r, err := ValidateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestMaterialize_SkipsSundayAndFillsGaps(t *testing.T) {
	r := mustRange(t, timeutil.Date(2024, 1, 1), timeutil.Date(2024, 1, 7))
	jan2 := timeutil.Date(2024, 1, 2)

	entries := []ScheduleEntry{
		entry(jan2, slot(1, 8, 30, 10, 0), PartSubgroupA, "Программирование"),
		entry(jan2, slot(1, 8, 30, 10, 0), PartSubgroupB, "Английский язык"),
	}

	days, err := Materialize(r, entries)
	require.NoError(t, err)
	require.Len(t, days, 6)

	for i, d := range days {
		assert.Equal(t, timeutil.Date(2024, 1, 1+i), d.Date)
		assert.NotEqual(t, time.Sunday, d.Date.Weekday())
	}

	assert.Equal(t, "Понедельник", days[0].Weekday)
	assert.Empty(t, days[0].Lessons)
	assert.NotNil(t, days[0].Lessons)

	require.Len(t, days[1].Lessons, 1)
	lesson := days[1].Lessons[0]
	assert.Equal(t, 1, lesson.Number)
	assert.Equal(t, "08:30-10:00", lesson.TimeRange)
	assert.Nil(t, lesson.Parts.Full)
	require.NotNil(t, lesson.Parts.SubgroupA)
	require.NotNil(t, lesson.Parts.SubgroupB)
	assert.Equal(t, "Программирование", lesson.Parts.SubgroupA.Subject)
	assert.Equal(t, "Английский язык", lesson.Parts.SubgroupB.Subject)
	assert.True(t, lesson.Parts.IsSplit())
}

func TestMaterialize_CoversEveryNonSundayDate(t *testing.T) {
	start := timeutil.Date(2024, 2, 20)
	end := timeutil.Date(2024, 3, 20)
	r := mustRange(t, start, end)

	days, err := Materialize(r, nil)
	require.NoError(t, err)

	var expected []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			expected = append(expected, d)
		}
	}

	require.Len(t, days, len(expected))
	for i := range days {
		assert.Equal(t, expected[i], days[i].Date)
		if i > 0 {
			assert.True(t, days[i].Date.After(days[i-1].Date))
		}
	}
}

func TestMaterialize_SundayRowsNeverAppear(t *testing.T) {
	sunday := timeutil.Date(2024, 1, 7)
	r := mustRange(t, sunday, sunday)

	days, err := Materialize(r, []ScheduleEntry{entry(sunday, slot(1, 8, 30, 10, 0), PartFull, "Физика")})
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestMaterialize_SingleDayRange(t *testing.T) {
	wed := timeutil.Date(2024, 1, 3)
	r := mustRange(t, wed, wed)

	days, err := Materialize(r, nil)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Среда", days[0].Weekday)
	assert.Empty(t, days[0].Lessons)
}

func TestMaterialize_PrefersRecordedWeekday(t *testing.T) {
	thu := timeutil.Date(2024, 1, 4)
	r := mustRange(t, thu, thu)

	e := entry(thu, slot(2, 10, 10, 11, 40), PartFull, "История")
	e.WeekdayName = "Четверг (чётная неделя)"

	days, err := Materialize(r, []ScheduleEntry{e})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Четверг (чётная неделя)", days[0].Weekday)
}

func TestMaterialize_FallsBackToLocalizedWeekday(t *testing.T) {
	fri := timeutil.Date(2024, 1, 5)
	r := mustRange(t, fri, fri)

	days, err := Materialize(r, []ScheduleEntry{entry(fri, slot(1, 8, 30, 10, 0), PartFull, "Химия")})
	require.NoError(t, err)
	assert.Equal(t, "Пятница", days[0].Weekday)
}

func TestMaterialize_UnknownPartIsUnexpected(t *testing.T) {
	mon := timeutil.Date(2024, 1, 1)
	r := mustRange(t, mon, mon)

	_, err := Materialize(r, []ScheduleEntry{entry(mon, slot(1, 8, 30, 10, 0), GroupPart("SUBGROUP_C"), "Химия")})
	require.Error(t, err)
	assert.True(t, shared.IsUnexpected(err))
}

func TestAggregate_OrdersSlotsAndKeepsFullKey(t *testing.T) {
	day := timeutil.Date(2024, 1, 2)
	entries := []ScheduleEntry{
		entry(day, slot(3, 12, 0, 13, 30), PartFull, "Математика"),
		entry(day, slot(1, 8, 30, 10, 0), PartFull, "Физика"),
		entry(day, slot(2, 10, 10, 11, 40), PartSubgroupB, "Информатика"),
	}

	lessons, err := Aggregate(entries)
	require.NoError(t, err)
	require.Len(t, lessons, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{lessons[0].Number, lessons[1].Number, lessons[2].Number})

	require.NotNil(t, lessons[0].Parts.Full)
	assert.Equal(t, "Физика", lessons[0].Parts.Full.Subject)
	assert.Nil(t, lessons[0].Parts.SubgroupA)

	assert.Nil(t, lessons[1].Parts.Full)
	assert.Nil(t, lessons[1].Parts.SubgroupA)
	require.NotNil(t, lessons[1].Parts.SubgroupB)
	assert.Equal(t, "10:10-11:40", lessons[1].TimeRange)
}

func TestAggregate_SameNumberDifferentTimesAreDistinct(t *testing.T) {
	day := timeutil.Date(2024, 1, 2)
	entries := []ScheduleEntry{
		entry(day, slot(1, 9, 0, 10, 30), PartSubgroupA, "Физкультура"),
		entry(day, slot(1, 8, 30, 10, 0), PartFull, "Физика"),
	}

	lessons, err := Aggregate(entries)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "08:30-10:00", lessons[0].TimeRange)
	assert.Equal(t, "09:00-10:30", lessons[1].TimeRange)
	assert.Nil(t, lessons[1].Parts.Full)
}

func TestAggregate_BuildsDetail(t *testing.T) {
	day := timeutil.Date(2024, 1, 2)
	lessons, err := Aggregate([]ScheduleEntry{entry(day, slot(1, 8, 30, 10, 0), PartFull, "Физика")})
	require.NoError(t, err)

	assert.Equal(t, &LessonDetail{
		Subject:         "Физика",
		TeacherFullName: "Иванов Пётр Сергеевич",
		TeacherPosition: "Преподаватель",
		Classroom:       "214",
		Building:        "Главный корпус",
		Address:         "ул. Ленина, 1",
	}, lessons[0].Parts.Full)
}

func TestTeacher_FullName(t *testing.T) {
	tests := []struct {
		name    string
		teacher Teacher
		want    string
	}{
		{"with middle name", Teacher{LastName: "Петрова", FirstName: "Анна", MiddleName: "Викторовна"}, "Петрова Анна Викторовна"},
		{"without middle name", Teacher{LastName: "Smith", FirstName: "John"}, "Smith John"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.teacher.FullName())
		})
	}
}
