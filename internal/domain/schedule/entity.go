// Package schedule содержит доменную модель расписания колледжа и алгоритм
// материализации: превращение плоских строк расписания в календарь по дням,
// парам и подгруппам. Здесь нет внешних зависимостей и нет ввода-вывода.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// GroupID - внутренний идентификатор учебной группы.
type GroupID int

// GroupPart указывает, для какой части группы проводится занятие.
type GroupPart string

const (
	// PartFull - вся группа на одном занятии.
	PartFull GroupPart = "FULL"
	// PartSubgroupA - первая подгруппа при делении группы.
	PartSubgroupA GroupPart = "SUBGROUP_A"
	// PartSubgroupB - вторая подгруппа при делении группы.
	PartSubgroupB GroupPart = "SUBGROUP_B"
)

// AllGroupParts перечисляет части группы в порядке сортировки.
var AllGroupParts = []GroupPart{PartFull, PartSubgroupA, PartSubgroupB}

// IsValid проверяет, что тег части группы известен.
func (p GroupPart) IsValid() bool {
	return p.Rank() >= 0
}

// Rank возвращает порядковый номер части: FULL < SUBGROUP_A < SUBGROUP_B.
// Для неизвестного тега возвращает -1.
func (p GroupPart) Rank() int {
	for i, known := range AllGroupParts {
		if p == known {
			return i
		}
	}
	return -1
}

// String возвращает строковое представление тега.
func (p GroupPart) String() string {
	return string(p)
}

// ParseGroupPart разбирает тег части группы в том виде, в каком он хранится в БД.
func ParseGroupPart(s string) (GroupPart, error) {
	p := GroupPart(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown group part %q", s)
	}
	return p, nil
}

// TimeslotIdentity идентифицирует пару в течение дня. Ключ - полная тройка
// (номер, начало, конец): пары с одинаковым номером, но разным временем
// считаются разными.
type TimeslotIdentity struct {
	Number int
	// Start и End - смещение от полуночи.
	Start time.Duration
	End   time.Duration
}

// Less задаёт порядок пар: по номеру, затем по времени начала и конца.
func (t TimeslotIdentity) Less(other TimeslotIdentity) bool {
	if t.Number != other.Number {
		return t.Number < other.Number
	}
	if t.Start != other.Start {
		return t.Start < other.Start
	}
	return t.End < other.End
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITIES
// ══════════════════════════════════════════════════════════════════════════════

// Teacher - преподаватель.
type Teacher struct {
	LastName   string
	FirstName  string
	MiddleName string // пустая строка, если отчества нет
	Position   string
}

// FullName собирает ФИО в формате "Фамилия Имя Отчество".
// Отсутствующее отчество просто опускается.
func (t Teacher) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", t.LastName, t.FirstName, t.MiddleName))
}

// Building - корпус колледжа.
type Building struct {
	Name    string
	Address string
}

// Classroom - аудитория.
type Classroom struct {
	RoomNumber string
	Building   Building
}

// ScheduleEntry - одно конкретное занятие из хранилища со всеми
// денормализованными полями. Только для чтения.
type ScheduleEntry struct {
	Date      time.Time
	Timeslot  TimeslotIdentity
	GroupID   GroupID
	Part      GroupPart
	Subject   string
	Teacher   Teacher
	Classroom Classroom
	// WeekdayName - название дня недели, записанное в самой строке
	// расписания; пустое, если ссылки на день недели нет.
	WeekdayName string
}

// StudentGroup - учебная группа.
type StudentGroup struct {
	ID     GroupID
	Name   string
	Course int
}

// GroupSummary - группа вместе с названием специальности.
type GroupSummary struct {
	ID        GroupID
	Name      string
	Course    int
	Specialty string
}
