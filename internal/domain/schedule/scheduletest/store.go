// Package scheduletest provides an in-memory schedule.Store for tests.
package scheduletest

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/college-hub/college-schedule/internal/domain/schedule"
)

// Store is an in-memory schedule.Store that counts every access.
type Store struct {
	mu      sync.Mutex
	groups  []schedule.GroupSummary
	entries []schedule.ScheduleEntry

	// Err, when set, is returned by every repository call.
	Err error
	// OpenErr, when set, is returned by Open.
	OpenErr error
	// Block makes LoadEntries wait for context cancellation.
	Block bool

	opens    atomic.Int64
	releases atomic.Int64
	calls    atomic.Int64
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// AddGroup registers a group.
func (s *Store) AddGroup(g schedule.GroupSummary) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append(s.groups, g)
	return s
}

// AddEntries registers schedule rows.
func (s *Store) AddEntries(entries ...schedule.ScheduleEntry) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return s
}

// Opens returns how many sessions were opened.
func (s *Store) Opens() int64 { return s.opens.Load() }

// Releases returns how many sessions were released.
func (s *Store) Releases() int64 { return s.releases.Load() }

// Calls returns how many repository operations were executed.
func (s *Store) Calls() int64 { return s.calls.Load() }

// Accesses returns every interaction with the store.
func (s *Store) Accesses() int64 { return s.Opens() + s.Calls() }

// Open implements schedule.Store.
func (s *Store) Open(ctx context.Context) (schedule.Session, error) {
	s.opens.Add(1)
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	return &session{store: s}, nil
}

type session struct {
	store    *Store
	released atomic.Bool
}

func (ss *session) Release() {
	if ss.released.CompareAndSwap(false, true) {
		ss.store.releases.Add(1)
	}
}

func (ss *session) FindGroupByName(ctx context.Context, name string) (*schedule.StudentGroup, error) {
	s := ss.store
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.Name == name {
			return &schedule.StudentGroup{ID: g.ID, Name: g.Name, Course: g.Course}, nil
		}
	}
	return nil, schedule.ErrGroupNotFound(name)
}

func (ss *session) LoadEntries(ctx context.Context, groupID schedule.GroupID, r schedule.DateRange) ([]schedule.ScheduleEntry, error) {
	s := ss.store
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	s.mu.Lock()
	var out []schedule.ScheduleEntry
	for _, e := range s.entries {
		if e.GroupID == groupID && r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Timeslot.Number != b.Timeslot.Number {
			return a.Timeslot.Number < b.Timeslot.Number
		}
		return a.Part.Rank() < b.Part.Rank()
	})
	return out, nil
}

func (ss *session) ListGroupsWithSpecialty(ctx context.Context) ([]schedule.GroupSummary, error) {
	s := ss.store
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	out := make([]schedule.GroupSummary, len(s.groups))
	copy(out, s.groups)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
