package query

import (
	"context"

	"github.com/college-hub/college-schedule/internal/domain/schedule"
	"github.com/college-hub/college-schedule/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST GROUPS QUERY
// Возвращает все группы со специальностью, по возрастанию названия.
// ══════════════════════════════════════════════════════════════════════════════

// ListGroupsHandler обрабатывает запрос списка групп.
type ListGroupsHandler struct {
	store schedule.Store
}

// NewListGroupsHandler создаёт новый обработчик списка групп.
func NewListGroupsHandler(store schedule.Store) *ListGroupsHandler {
	return &ListGroupsHandler{store: store}
}

// Handle выполняет запрос списка групп.
func (h *ListGroupsHandler) Handle(ctx context.Context) ([]schedule.GroupSummary, error) {
	session, err := h.store.Open(ctx)
	if err != nil {
		return nil, shared.Unexpected("query", "ListGroups", err)
	}
	defer session.Release()

	groups, err := session.ListGroupsWithSpecialty(ctx)
	if err != nil {
		return nil, shared.Unexpected("query", "ListGroups", err)
	}

	return groups, nil
}
