// Package store holds the mutable attendance and leftover state that feeds
// the planner. The planner itself never sees the store, only Snapshots.
package store

import (
	"sync"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// Snapshot is an immutable copy of everything a plan is computed from
type Snapshot struct {
	Attendance models.Attendance
	Leftovers  map[string]float64
	Source     models.SourceData
}

// Store keeps draft and committed attendance, leftovers keyed by ingredient,
// and the most recently applied source data.
type Store struct {
	mu sync.RWMutex

	draft     models.Attendance
	committed models.Attendance
	leftovers map[string]float64

	// sequence is bumped on every commit; applied is the newest sequence
	// whose source data has been accepted.
	sequence uint64
	applied  uint64
	source   models.SourceData
}

// New creates an empty store with the given initial attendance as both draft
// and committed value.
func New(initial models.Attendance) *Store {
	return &Store{
		draft:     initial,
		committed: initial,
		leftovers: make(map[string]float64),
		source:    models.SourceData{Mode: models.SourceModePending},
	}
}

// SetDraft replaces the draft attendance. It does not affect plans until
// Commit is called.
func (s *Store) SetDraft(att models.Attendance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = att
}

// Commit promotes the draft to the committed attendance and returns it with
// a new sequence number.
func (s *Store) Commit() (models.Attendance, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = s.draft
	s.sequence++
	return s.committed, s.sequence
}

// Restore sets draft and committed attendance without starting a new fetch
// sequence. Used when loading persisted state.
func (s *Store) Restore(att models.Attendance, leftovers map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = att
	s.committed = att
	s.leftovers = make(map[string]float64, len(leftovers))
	for k, v := range leftovers {
		s.leftovers[k] = v
	}
}

// AttendanceState returns draft, committed and the latest sequence
func (s *Store) AttendanceState() models.AttendanceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.AttendanceState{
		Draft:     s.draft,
		Committed: s.committed,
		Sequence:  s.sequence,
	}
}

// ApplySource records source data fetched for sequence seq. Responses older
// than one already applied are discarded and false is returned.
func (s *Store) ApplySource(seq uint64, source models.SourceData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		return false
	}
	s.applied = seq
	s.source = source
	return true
}

// IsLatest reports whether seq is the newest commit
func (s *Store) IsLatest(seq uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return seq == s.sequence
}

// SetLeftover stores a reported leftover. Zero is kept as an explicit value.
func (s *Store) SetLeftover(key string, qty float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leftovers[key] = qty
}

// ClearLeftover returns a leftover to the unset state
func (s *Store) ClearLeftover(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.leftovers, key)
}

// ClearLeftovers unsets every leftover
func (s *Store) ClearLeftovers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leftovers = make(map[string]float64)
}

// Leftover returns the reported value for key and whether it was set
func (s *Store) Leftover(key string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.leftovers[key]
	return v, ok
}

// Snapshot copies the state needed for a recomputation
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leftovers := make(map[string]float64, len(s.leftovers))
	for k, v := range s.leftovers {
		leftovers[k] = v
	}

	return Snapshot{
		Attendance: s.committed,
		Leftovers:  leftovers,
		Source:     s.source,
	}
}
