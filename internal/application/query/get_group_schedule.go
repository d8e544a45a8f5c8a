// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"time"

	"github.com/college-hub/college-schedule/internal/domain/schedule"
	"github.com/college-hub/college-schedule/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET GROUP SCHEDULE QUERY
// Возвращает календарь занятий группы за диапазон дат.
// Конвейер линейный: проверка диапазона → поиск группы → загрузка занятий →
// материализация. Любая ошибка прерывает конвейер, частичного результата нет.
// ══════════════════════════════════════════════════════════════════════════════

// GetGroupScheduleQuery содержит параметры запроса расписания.
type GetGroupScheduleQuery struct {
	// GroupName - название группы, точное совпадение.
	GroupName string

	// Start, End - границы диапазона, включительно.
	Start time.Time
	End   time.Time
}

// GetGroupScheduleHandler обрабатывает запросы расписания группы.
type GetGroupScheduleHandler struct {
	store schedule.Store
}

// NewGetGroupScheduleHandler создаёт новый обработчик запроса расписания.
func NewGetGroupScheduleHandler(store schedule.Store) *GetGroupScheduleHandler {
	return &GetGroupScheduleHandler{store: store}
}

// Handle выполняет запрос. Ошибка всегда одного из видов: ValidationError,
// NotFoundError или UnexpectedError.
func (h *GetGroupScheduleHandler) Handle(ctx context.Context, q GetGroupScheduleQuery) ([]schedule.CalendarDay, error) {
	// Проверка диапазона до любого обращения к хранилищу
	dateRange, err := schedule.ValidateRange(q.Start, q.End)
	if err != nil {
		return nil, err
	}

	session, err := h.store.Open(ctx)
	if err != nil {
		return nil, shared.Unexpected("query", "GetGroupSchedule", err)
	}
	defer session.Release()

	group, err := session.FindGroupByName(ctx, q.GroupName)
	if err != nil {
		return nil, shared.Unexpected("query", "GetGroupSchedule", err)
	}

	entries, err := session.LoadEntries(ctx, group.ID, dateRange)
	if err != nil {
		return nil, shared.Unexpected("query", "GetGroupSchedule", err)
	}

	// Запрос могли отменить, пока строки читались
	if err := ctx.Err(); err != nil {
		return nil, shared.Unexpected("query", "GetGroupSchedule", err)
	}

	return schedule.Materialize(dateRange, entries)
}
