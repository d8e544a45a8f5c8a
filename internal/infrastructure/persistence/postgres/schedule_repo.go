package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/college-hub/college-schedule/internal/domain/schedule"
	"github.com/college-hub/college-schedule/internal/domain/shared"
	"github.com/college-hub/college-schedule/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE STORE
// Каждый запрос открывает собственную сессию: соединение берётся из пула
// и возвращается в него в Release.
// ══════════════════════════════════════════════════════════════════════════════

// ScheduleStore implements schedule.Store over a pgx pool.
type ScheduleStore struct {
	conn *Connection
}

// NewScheduleStore creates a new ScheduleStore.
func NewScheduleStore(conn *Connection) *ScheduleStore {
	return &ScheduleStore{conn: conn}
}

// Open acquires a pooled connection for one request.
func (s *ScheduleStore) Open(ctx context.Context) (schedule.Session, error) {
	c, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return newScheduleSession(c, c.Release), nil
}

// Compile-time interface check.
var _ schedule.Store = (*ScheduleStore)(nil)

// querier is the part of *pgxpool.Conn a session reads through.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ querier = (*pgxpool.Conn)(nil)

type scheduleSession struct {
	q       querier
	release func()
	once    sync.Once
}

func newScheduleSession(q querier, release func()) *scheduleSession {
	return &scheduleSession{q: q, release: release}
}

func (s *scheduleSession) Release() {
	s.once.Do(s.release)
}

// ══════════════════════════════════════════════════════════════════════════════
// QUERIES
// ══════════════════════════════════════════════════════════════════════════════

const queryGroupByName = `
	SELECT group_id, group_name, course
	FROM student_groups
	WHERE group_name = $1
	LIMIT 1
`

const queryEntries = `
	SELECT
		s.lesson_date,
		lt.lesson_number, lt.time_start, lt.time_end,
		s.group_id, s.group_part,
		sub.name,
		t.last_name, t.first_name, t.middle_name, t.position,
		c.room_number, b.name, b.address,
		w.name
	FROM schedule s
	JOIN lesson_times lt ON lt.lesson_time_id = s.lesson_time_id
	JOIN subjects sub ON sub.subject_id = s.subject_id
	JOIN teachers t ON t.teacher_id = s.teacher_id
	JOIN classrooms c ON c.classroom_id = s.classroom_id
	JOIN buildings b ON b.building_id = c.building_id
	LEFT JOIN weekdays w ON w.weekday_id = s.weekday_id
	WHERE s.group_id = $1
		AND s.lesson_date BETWEEN $2 AND $3
	ORDER BY s.lesson_date, lt.lesson_number,
		CASE s.group_part WHEN 'FULL' THEN 0 WHEN 'SUBGROUP_A' THEN 1 ELSE 2 END
`

const queryGroupsWithSpecialty = `
	SELECT g.group_id, g.group_name, g.course, sp.name
	FROM student_groups g
	JOIN specialties sp ON sp.specialty_id = g.specialty_id
	ORDER BY g.group_name
`

func (s *scheduleSession) FindGroupByName(ctx context.Context, name string) (*schedule.StudentGroup, error) {
	var (
		id     int32
		group  schedule.StudentGroup
		course int32
	)
	err := s.q.QueryRow(ctx, queryGroupByName, name).Scan(&id, &group.Name, &course)
	if err != nil {
		if IsNoRows(err) {
			return nil, schedule.ErrGroupNotFound(name)
		}
		return nil, fmt.Errorf("find group %q: %w", name, err)
	}

	group.ID = schedule.GroupID(id)
	group.Course = int(course)
	return &group, nil
}

func (s *scheduleSession) LoadEntries(ctx context.Context, groupID schedule.GroupID, r schedule.DateRange) ([]schedule.ScheduleEntry, error) {
	rows, err := s.q.Query(ctx, queryEntries,
		int32(groupID),
		pgtype.Date{Time: r.Start, Valid: true},
		pgtype.Date{Time: r.End, Valid: true},
	)
	if err != nil {
		return nil, fmt.Errorf("load schedule for group %d: %w", groupID, err)
	}
	defer rows.Close()

	var entries []schedule.ScheduleEntry
	for rows.Next() {
		var row entryRow
		if err := rows.Scan(
			&row.LessonDate,
			&row.LessonNumber, &row.TimeStart, &row.TimeEnd,
			&row.GroupID, &row.GroupPart,
			&row.Subject,
			&row.LastName, &row.FirstName, &row.MiddleName, &row.Position,
			&row.RoomNumber, &row.BuildingName, &row.Address,
			&row.Weekday,
		); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}

		entry, err := row.toEntry()
		if err != nil {
			return nil, shared.Unexpected("postgres", "LoadEntries", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule rows: %w", err)
	}
	return entries, nil
}

func (s *scheduleSession) ListGroupsWithSpecialty(ctx context.Context) ([]schedule.GroupSummary, error) {
	rows, err := s.q.Query(ctx, queryGroupsWithSpecialty)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	groups := make([]schedule.GroupSummary, 0)
	for rows.Next() {
		var (
			id, course int32
			g          schedule.GroupSummary
		)
		if err := rows.Scan(&id, &g.Name, &course, &g.Specialty); err != nil {
			return nil, fmt.Errorf("scan group row: %w", err)
		}
		g.ID = schedule.GroupID(id)
		g.Course = int(course)
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group rows: %w", err)
	}
	return groups, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ROW MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// entryRow is one joined schedule row as scanned from the database.
type entryRow struct {
	LessonDate   time.Time
	LessonNumber int32
	TimeStart    pgtype.Time
	TimeEnd      pgtype.Time
	GroupID      int32
	GroupPart    string
	Subject      string
	LastName     string
	FirstName    string
	MiddleName   pgtype.Text
	Position     string
	RoomNumber   string
	BuildingName string
	Address      string
	Weekday      pgtype.Text
}

func (r entryRow) toEntry() (schedule.ScheduleEntry, error) {
	part, err := schedule.ParseGroupPart(r.GroupPart)
	if err != nil {
		return schedule.ScheduleEntry{}, fmt.Errorf("schedule row for %s: %w", timeutil.FormatDateStr(r.LessonDate), err)
	}

	return schedule.ScheduleEntry{
		Date: timeutil.DateOf(r.LessonDate),
		Timeslot: schedule.TimeslotIdentity{
			Number: int(r.LessonNumber),
			Start:  clockOf(r.TimeStart),
			End:    clockOf(r.TimeEnd),
		},
		GroupID: schedule.GroupID(r.GroupID),
		Part:    part,
		Subject: r.Subject,
		Teacher: schedule.Teacher{
			LastName:   r.LastName,
			FirstName:  r.FirstName,
			MiddleName: r.MiddleName.String,
			Position:   r.Position,
		},
		Classroom: schedule.Classroom{
			RoomNumber: r.RoomNumber,
			Building: schedule.Building{
				Name:    r.BuildingName,
				Address: r.Address,
			},
		},
		WeekdayName: r.Weekday.String,
	}, nil
}

// clockOf converts a TIME column into an offset from midnight.
func clockOf(t pgtype.Time) time.Duration {
	if !t.Valid {
		return 0
	}
	return time.Duration(t.Microseconds) * time.Microsecond
}
