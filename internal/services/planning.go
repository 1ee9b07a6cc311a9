package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/foxxcyber/breakfast-club/internal/database"
	"github.com/foxxcyber/breakfast-club/internal/models"
	"github.com/foxxcyber/breakfast-club/internal/planner"
	"github.com/foxxcyber/breakfast-club/internal/store"
)

var (
	ErrUnknownIngredient = errors.New("unknown ingredient")
	ErrInvalidQuantity   = errors.New("invalid quantity")
)

// SourceFetcher supplies vendor data for an attendance commit
type SourceFetcher interface {
	FetchPlanInputs(ctx context.Context, att models.Attendance) models.SourceData
}

// StateRepository persists the current attendance and leftovers. It is
// implemented by *database.DB.
type StateRepository interface {
	GetAttendanceState(ctx context.Context) (*models.AttendanceState, error)
	SaveDraftAttendance(ctx context.Context, att models.Attendance) error
	SaveCommittedAttendance(ctx context.Context, att models.Attendance) error
	ListLeftovers(ctx context.Context) (map[string]float64, error)
	UpsertLeftover(ctx context.Context, key string, qty float64) error
	DeleteLeftover(ctx context.Context, key string) error
	DeleteAllLeftovers(ctx context.Context) error
}

// PlanningService wires the store, the price feed and the planner together.
// Attendance commits are the only operation that reaches the network.
type PlanningService struct {
	store *store.Store
	feed  SourceFetcher
	repo  StateRepository // nil runs in memory only

	mu          sync.Mutex
	cancelFetch context.CancelFunc
	fetchSeq    uint64
}

// NewPlanningService creates a new planning service. repo may be nil.
func NewPlanningService(st *store.Store, feed SourceFetcher, repo StateRepository) *PlanningService {
	return &PlanningService{
		store: st,
		feed:  feed,
		repo:  repo,
	}
}

// Restore loads persisted attendance and leftovers into the store
func (s *PlanningService) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	leftovers, err := s.repo.ListLeftovers(ctx)
	if err != nil {
		return fmt.Errorf("loading leftovers: %w", err)
	}

	state, err := s.repo.GetAttendanceState(ctx)
	if errors.Is(err, database.ErrAttendanceNotFound) {
		// Fresh database: keep the configured default attendance
		current := s.store.AttendanceState()
		state = &models.AttendanceState{Draft: current.Draft, Committed: current.Committed}
	} else if err != nil {
		return fmt.Errorf("loading attendance: %w", err)
	}

	s.store.Restore(state.Committed, leftovers)
	if state.Draft != state.Committed {
		s.store.SetDraft(state.Draft)
	}

	log.Printf("Restored attendance %d/%d and %d leftover(s)",
		state.Committed.Monday, state.Committed.Tuesday, len(leftovers))
	return nil
}

// AttendanceState returns draft and committed attendance
func (s *PlanningService) AttendanceState() models.AttendanceState {
	return s.store.AttendanceState()
}

// UpdateDraft normalizes and stores draft attendance. Invalid values become 0.
func (s *PlanningService) UpdateDraft(ctx context.Context, monday, tuesday interface{}) models.AttendanceState {
	att := planner.NormalizeAttendance(monday, tuesday)
	s.store.SetDraft(att)

	if s.repo != nil {
		if err := s.repo.SaveDraftAttendance(ctx, att); err != nil {
			log.Printf("Warning: failed to persist draft attendance: %v", err)
		}
	}

	return s.store.AttendanceState()
}

// CommitAttendance promotes the draft, fetches vendor data for it and
// returns the new plan. A commit made while an earlier fetch is running
// cancels that fetch, and a response for a superseded commit is dropped.
func (s *PlanningService) CommitAttendance(ctx context.Context) *models.Plan {
	att, seq := s.store.Commit()

	if s.repo != nil {
		if err := s.repo.SaveCommittedAttendance(ctx, att); err != nil {
			log.Printf("Warning: failed to persist committed attendance: %v", err)
		}
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	s.cancelFetch = cancel
	s.fetchSeq = seq
	s.mu.Unlock()

	source := s.feed.FetchPlanInputs(fetchCtx, att)

	s.mu.Lock()
	if s.fetchSeq == seq {
		s.cancelFetch = nil
	}
	s.mu.Unlock()
	cancel()

	if !s.store.IsLatest(seq) || !s.store.ApplySource(seq, source) {
		log.Printf("Discarding price data for superseded commit %d", seq)
	}

	return s.CurrentPlan()
}

// CurrentPlan computes a fresh plan from the current store contents
func (s *PlanningService) CurrentPlan() *models.Plan {
	snap := s.store.Snapshot()
	return planner.ComputePlan(snap.Attendance, snap.Leftovers, snap.Source)
}

// Leftovers returns one entry per planned ingredient in plan order
func (s *PlanningService) Leftovers() []models.LeftoverEntry {
	entries := make([]models.LeftoverEntry, 0, len(models.IngredientOrder))
	for _, key := range models.IngredientOrder {
		entry := models.LeftoverEntry{
			IngredientKey: key,
			Unit:          models.IngredientUnits[key],
		}
		if qty, ok := s.store.Leftover(key); ok {
			q := qty
			entry.ReportedQty = &q
		}
		entries = append(entries, entry)
	}
	return entries
}

// SetLeftover records a reported leftover. Negative values are stored as 0.
func (s *PlanningService) SetLeftover(ctx context.Context, key string, qty float64) (*models.Plan, error) {
	key, ok := MatchIngredient(key)
	if !ok {
		return nil, ErrUnknownIngredient
	}
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return nil, ErrInvalidQuantity
	}
	if qty < 0 {
		qty = 0
	}

	s.store.SetLeftover(key, qty)

	if s.repo != nil {
		if err := s.repo.UpsertLeftover(ctx, key, qty); err != nil {
			log.Printf("Warning: failed to persist leftover %s: %v", key, err)
		}
	}

	return s.CurrentPlan(), nil
}

// ClearLeftover returns a leftover to the unset state
func (s *PlanningService) ClearLeftover(ctx context.Context, key string) (*models.Plan, error) {
	key, ok := MatchIngredient(key)
	if !ok {
		return nil, ErrUnknownIngredient
	}

	s.store.ClearLeftover(key)

	if s.repo != nil {
		// An already unset leftover is not an error for the caller
		if err := s.repo.DeleteLeftover(ctx, key); err != nil && !errors.Is(err, database.ErrLeftoverNotFound) {
			log.Printf("Warning: failed to clear leftover %s: %v", key, err)
		}
	}

	return s.CurrentPlan(), nil
}

// ClearLeftovers unsets every leftover
func (s *PlanningService) ClearLeftovers(ctx context.Context) *models.Plan {
	s.store.ClearLeftovers()

	if s.repo != nil {
		if err := s.repo.DeleteAllLeftovers(ctx); err != nil {
			log.Printf("Warning: failed to clear leftovers: %v", err)
		}
	}

	return s.CurrentPlan()
}

// ApplyScannedLeftovers records every matched line from a stock-take sheet
func (s *PlanningService) ApplyScannedLeftovers(ctx context.Context, lines []models.ParsedLeftoverLine) (*models.Plan, error) {
	for _, line := range lines {
		if _, err := s.SetLeftover(ctx, line.IngredientKey, line.Quantity); err != nil {
			return nil, fmt.Errorf("applying %q: %w", line.RawText, err)
		}
	}
	return s.CurrentPlan(), nil
}
