package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/college-hub/college-schedule/internal/domain/schedule"
	"github.com/college-hub/college-schedule/internal/domain/schedule/scheduletest"
	"github.com/college-hub/college-schedule/internal/domain/shared"
	"github.com/college-hub/college-schedule/pkg/timeutil"
)

func seededStore() *scheduletest.Store {
	ts := schedule.TimeslotIdentity{Number: 1, Start: timeutil.Clock(8, 30), End: timeutil.Clock(10, 0)}
	jan2 := timeutil.Date(2024, 1, 2)

	row := func(part schedule.GroupPart, subject, room string) schedule.ScheduleEntry {
		return schedule.ScheduleEntry{
			Date:      jan2,
			Timeslot:  ts,
			GroupID:   21,
			Part:      part,
			Subject:   subject,
			Teacher:   schedule.Teacher{LastName: "Сидоров", FirstName: "Олег"},
			Classroom: schedule.Classroom{RoomNumber: room, Building: schedule.Building{Name: "Корпус 2"}},
		}
	}

	return scheduletest.New().
		AddGroup(schedule.GroupSummary{ID: 21, Name: "IT-21", Course: 2, Specialty: "Информационные системы"}).
		AddGroup(schedule.GroupSummary{ID: 11, Name: "EC-11", Course: 1, Specialty: "Экономика"}).
		AddEntries(
			row(schedule.PartSubgroupB, "Английский язык", "101"),
			row(schedule.PartSubgroupA, "Программирование", "305"),
		)
}

func TestGetGroupSchedule_WeekExample(t *testing.T) {
	store := seededStore()
	h := NewGetGroupScheduleHandler(store)

	days, err := h.Handle(context.Background(), GetGroupScheduleQuery{
		GroupName: "IT-21",
		Start:     timeutil.Date(2024, 1, 1),
		End:       timeutil.Date(2024, 1, 7),
	})
	require.NoError(t, err)
	require.Len(t, days, 6)
	assert.Equal(t, timeutil.Date(2024, 1, 6), days[5].Date)

	jan2 := days[1]
	require.Len(t, jan2.Lessons, 1)
	parts := jan2.Lessons[0].Parts
	assert.Nil(t, parts.Full)
	require.NotNil(t, parts.SubgroupA)
	require.NotNil(t, parts.SubgroupB)
	assert.Equal(t, "Программирование", parts.SubgroupA.Subject)
	assert.Equal(t, "Сидоров Олег", parts.SubgroupB.TeacherFullName)

	assert.Equal(t, int64(1), store.Opens())
	assert.Equal(t, int64(1), store.Releases())
}

func TestGetGroupSchedule_InvertedRangeTouchesNoStore(t *testing.T) {
	store := seededStore()
	h := NewGetGroupScheduleHandler(store)

	days, err := h.Handle(context.Background(), GetGroupScheduleQuery{
		GroupName: "IT-21",
		Start:     timeutil.Date(2024, 1, 7),
		End:       timeutil.Date(2024, 1, 1),
	})
	require.Error(t, err)
	assert.Nil(t, days)
	assert.True(t, shared.IsValidation(err))
	assert.Zero(t, store.Accesses())
}

func TestGetGroupSchedule_UnknownGroup(t *testing.T) {
	store := seededStore()
	h := NewGetGroupScheduleHandler(store)

	_, err := h.Handle(context.Background(), GetGroupScheduleQuery{
		GroupName: "XX-99",
		Start:     timeutil.Date(2024, 1, 1),
		End:       timeutil.Date(2024, 1, 2),
	})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
	assert.Equal(t, "Группа XX-99 не найдена.", shared.MessageOf(err, ""))
	assert.Equal(t, int64(1), store.Releases())
}

func TestGetGroupSchedule_StoreFailureIsUnexpected(t *testing.T) {
	cause := errors.New("connection refused")

	t.Run("open", func(t *testing.T) {
		store := seededStore()
		store.OpenErr = cause
		_, err := NewGetGroupScheduleHandler(store).Handle(context.Background(), GetGroupScheduleQuery{
			GroupName: "IT-21", Start: timeutil.Date(2024, 1, 1), End: timeutil.Date(2024, 1, 1),
		})
		assert.True(t, shared.IsUnexpected(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("query", func(t *testing.T) {
		store := seededStore()
		store.Err = cause
		_, err := NewGetGroupScheduleHandler(store).Handle(context.Background(), GetGroupScheduleQuery{
			GroupName: "IT-21", Start: timeutil.Date(2024, 1, 1), End: timeutil.Date(2024, 1, 1),
		})
		assert.True(t, shared.IsUnexpected(err))
		assert.Equal(t, int64(1), store.Releases())
	})
}

func TestGetGroupSchedule_CancelledReturnsNoPartialResult(t *testing.T) {
	store := seededStore()
	store.Block = true
	h := NewGetGroupScheduleHandler(store)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	days, err := h.Handle(ctx, GetGroupScheduleQuery{
		GroupName: "IT-21", Start: timeutil.Date(2024, 1, 1), End: timeutil.Date(2024, 1, 7),
	})
	require.Error(t, err)
	assert.Nil(t, days)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, shared.IsUnexpected(err))
	assert.Equal(t, int64(1), store.Releases())
}

func TestListGroups_SortedWithSpecialty(t *testing.T) {
	store := seededStore()

	groups, err := NewListGroupsHandler(store).Handle(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "EC-11", groups[0].Name)
	assert.Equal(t, "Экономика", groups[0].Specialty)
	assert.Equal(t, "IT-21", groups[1].Name)
	assert.Equal(t, "Информационные системы", groups[1].Specialty)
	assert.Equal(t, int64(1), store.Releases())
}

func TestListGroups_Failure(t *testing.T) {
	store := seededStore()
	store.Err = errors.New("boom")

	_, err := NewListGroupsHandler(store).Handle(context.Background())
	assert.True(t, shared.IsUnexpected(err))
}
