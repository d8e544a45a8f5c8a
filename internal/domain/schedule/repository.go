package schedule

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository - набор операций чтения, доступных конвейеру одного запроса.
type Repository interface {
	// FindGroupByName ищет группу по точному совпадению названия.
	// Возвращает NotFoundError, если группа не найдена.
	FindGroupByName(ctx context.Context, name string) (*StudentGroup, error)

	// LoadEntries возвращает все занятия группы в диапазоне дат
	// (включительно), отсортированные по дате, номеру пары и части группы
	// (FULL < SUBGROUP_A < SUBGROUP_B). Фильтрации по части группы нет.
	LoadEntries(ctx context.Context, groupID GroupID, r DateRange) ([]ScheduleEntry, error)

	// ListGroupsWithSpecialty возвращает все группы с названием
	// специальности, отсортированные по названию группы.
	ListGroupsWithSpecialty(ctx context.Context) ([]GroupSummary, error)
}

// Session - репозиторий, привязанный к одному запросу. Release обязан быть
// вызван ровно один раз, в том числе при ошибке.
type Session interface {
	Repository
	Release()
}

// Store открывает сессии доступа к хранилищу. Реализация должна быть
// безопасной для одновременного использования; сессии - нет.
type Store interface {
	Open(ctx context.Context) (Session, error)
}
