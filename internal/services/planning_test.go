package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/foxxcyber/breakfast-club/internal/database"
	"github.com/foxxcyber/breakfast-club/internal/models"
	"github.com/foxxcyber/breakfast-club/internal/store"
)

type stubFetcher struct {
	calls int32
	data  models.SourceData
}

func (f *stubFetcher) FetchPlanInputs(ctx context.Context, att models.Attendance) models.SourceData {
	atomic.AddInt32(&f.calls, 1)
	return f.data
}

func (f *stubFetcher) count() int {
	return int(atomic.LoadInt32(&f.calls))
}

type memoryRepo struct {
	mu        sync.Mutex
	state     *models.AttendanceState
	leftovers map[string]float64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{leftovers: make(map[string]float64)}
}

func (r *memoryRepo) GetAttendanceState(ctx context.Context) (*models.AttendanceState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return nil, database.ErrAttendanceNotFound
	}
	s := *r.state
	return &s, nil
}

func (r *memoryRepo) SaveDraftAttendance(ctx context.Context, att models.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		r.state = &models.AttendanceState{}
	}
	r.state.Draft = att
	return nil
}

func (r *memoryRepo) SaveCommittedAttendance(ctx context.Context, att models.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		r.state = &models.AttendanceState{}
	}
	r.state.Committed = att
	r.state.Draft = att
	return nil
}

func (r *memoryRepo) ListLeftovers(ctx context.Context) (map[string]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]float64, len(r.leftovers))
	for k, v := range r.leftovers {
		out[k] = v
	}
	return out, nil
}

func (r *memoryRepo) UpsertLeftover(ctx context.Context, key string, qty float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leftovers[key] = qty
	return nil
}

func (r *memoryRepo) DeleteLeftover(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leftovers[key]; !ok {
		return database.ErrLeftoverNotFound
	}
	delete(r.leftovers, key)
	return nil
}

func (r *memoryRepo) DeleteAllLeftovers(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leftovers = make(map[string]float64)
	return nil
}

func liveSource() models.SourceData {
	return models.SourceData{
		Mode:         models.SourceModeLive,
		VendorTotals: map[string]float64{"Pak'nSave": 120, "Countdown": 100, "New World": 110},
	}
}

func findItem(t *testing.T, plan *models.Plan, key string) models.ShoppingPlanItem {
	t.Helper()
	for _, item := range plan.Items {
		if item.Ingredient == key {
			return item
		}
	}
	t.Fatalf("ingredient %s not in plan", key)
	return models.ShoppingPlanItem{}
}

func TestPlanningService_PendingBeforeCommit(t *testing.T) {
	feed := &stubFetcher{data: liveSource()}
	svc := NewPlanningService(store.New(models.Attendance{Monday: 25, Tuesday: 30}), feed, nil)

	plan := svc.CurrentPlan()
	if plan.Mode != models.SourceModePending {
		t.Errorf("expected pending mode, got %s", plan.Mode)
	}
	if plan.TotalChildren != 55 {
		t.Errorf("expected initial attendance to be planned, got %d", plan.TotalChildren)
	}
	if feed.count() != 0 {
		t.Errorf("no fetch expected before commit, got %d", feed.count())
	}
}

func TestPlanningService_DraftDoesNotReplan(t *testing.T) {
	ctx := context.Background()
	feed := &stubFetcher{data: liveSource()}
	svc := NewPlanningService(store.New(models.Attendance{Monday: 25, Tuesday: 30}), feed, nil)

	state := svc.UpdateDraft(ctx, "40", -3)
	if state.Draft != (models.Attendance{Monday: 40, Tuesday: 0}) {
		t.Errorf("unexpected draft %+v", state.Draft)
	}
	if state.Committed != (models.Attendance{Monday: 25, Tuesday: 30}) {
		t.Errorf("draft must not change committed attendance, got %+v", state.Committed)
	}
	if got := svc.CurrentPlan().TotalChildren; got != 55 {
		t.Errorf("plan changed before commit: %d children", got)
	}
	if feed.count() != 0 {
		t.Errorf("draft edits must not fetch, got %d calls", feed.count())
	}

	plan := svc.CommitAttendance(ctx)
	if plan.TotalChildren != 40 {
		t.Errorf("expected committed draft to be planned, got %d", plan.TotalChildren)
	}
	if plan.Mode != models.SourceModeLive {
		t.Errorf("expected live mode after commit, got %s", plan.Mode)
	}
	if plan.CheapestVendor != models.VendorCountdown {
		t.Errorf("expected countdown cheapest, got %s", plan.CheapestVendor)
	}
	if feed.count() != 1 {
		t.Errorf("expected one fetch per commit, got %d", feed.count())
	}
}

func TestPlanningService_LeftoversStayLocal(t *testing.T) {
	ctx := context.Background()
	feed := &stubFetcher{data: liveSource()}
	svc := NewPlanningService(store.New(models.Attendance{Monday: 10}), feed, nil)
	svc.CommitAttendance(ctx)

	plan, err := svc.SetLeftover(ctx, "Milk", 3)
	if err != nil {
		t.Fatalf("SetLeftover: %v", err)
	}
	milk := findItem(t, plan, models.IngredientMilk)
	if milk.LeftoverQty != 3 || milk.ToBuyQty != 0 {
		t.Errorf("unexpected milk line %+v", milk)
	}

	if _, err := svc.SetLeftover(ctx, "bread", -4); err != nil {
		t.Fatalf("SetLeftover: %v", err)
	}
	if qty, ok := svc.store.Leftover(models.IngredientBread); !ok || qty != 0 {
		t.Errorf("negative leftover should be stored as explicit 0, got %v (set=%v)", qty, ok)
	}

	if _, err := svc.ClearLeftover(ctx, "milk"); err != nil {
		t.Fatalf("ClearLeftover: %v", err)
	}
	plan = svc.ClearLeftovers(ctx)
	if plan.LeftoverRatio != 0 {
		t.Errorf("expected no leftovers after clearing, ratio %v", plan.LeftoverRatio)
	}

	if feed.count() != 1 {
		t.Errorf("leftover edits must not fetch, got %d calls", feed.count())
	}
	if plan.Mode != models.SourceModeLive {
		t.Errorf("leftover edits must keep the applied source, got %s", plan.Mode)
	}
}

func TestPlanningService_LeftoverErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewPlanningService(store.New(models.Attendance{}), &stubFetcher{}, nil)

	if _, err := svc.SetLeftover(ctx, "coffee", 1); !errors.Is(err, ErrUnknownIngredient) {
		t.Errorf("expected ErrUnknownIngredient, got %v", err)
	}
	if _, err := svc.ClearLeftover(ctx, "coffee"); !errors.Is(err, ErrUnknownIngredient) {
		t.Errorf("expected ErrUnknownIngredient, got %v", err)
	}

	if _, err := svc.SetLeftover(ctx, "milk", math.NaN()); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}

	lines := []models.ParsedLeftoverLine{
		{LineNumber: 1, RawText: "milk 2", IngredientKey: "milk", Quantity: 2},
		{LineNumber: 2, RawText: "cereal 1", IngredientKey: "cereal", Quantity: 1},
	}
	if _, err := svc.ApplyScannedLeftovers(ctx, lines); !errors.Is(err, ErrUnknownIngredient) {
		t.Errorf("expected wrapped ErrUnknownIngredient, got %v", err)
	}
}

func TestPlanningService_Leftovers(t *testing.T) {
	ctx := context.Background()
	svc := NewPlanningService(store.New(models.Attendance{}), &stubFetcher{}, nil)
	svc.SetLeftover(ctx, "eggs", 0)

	entries := svc.Leftovers()
	if len(entries) != len(models.IngredientOrder) {
		t.Fatalf("expected %d entries, got %d", len(models.IngredientOrder), len(entries))
	}
	for i, e := range entries {
		if e.IngredientKey != models.IngredientOrder[i] {
			t.Errorf("entry %d: got %s, want %s", i, e.IngredientKey, models.IngredientOrder[i])
		}
		switch e.IngredientKey {
		case models.IngredientEggs:
			if e.ReportedQty == nil || *e.ReportedQty != 0 {
				t.Errorf("eggs should be reported as explicit 0")
			}
		default:
			if e.ReportedQty != nil {
				t.Errorf("%s should be unset", e.IngredientKey)
			}
		}
	}
}

// blockingFetcher holds the first fetch open until its context is cancelled
type blockingFetcher struct {
	calls   int32
	started chan struct{}
}

func (f *blockingFetcher) FetchPlanInputs(ctx context.Context, att models.Attendance) models.SourceData {
	if atomic.AddInt32(&f.calls, 1) == 1 {
		close(f.started)
		<-ctx.Done()
		return FallbackData(att)
	}
	return liveSource()
}

func TestPlanningService_SupersededCommit(t *testing.T) {
	ctx := context.Background()
	feed := &blockingFetcher{started: make(chan struct{})}
	svc := NewPlanningService(store.New(models.Attendance{Monday: 5}), feed, nil)

	first := make(chan *models.Plan, 1)
	go func() {
		first <- svc.CommitAttendance(ctx)
	}()
	<-feed.started

	svc.UpdateDraft(ctx, 12, 8)
	second := svc.CommitAttendance(ctx)
	if second.Mode != models.SourceModeLive || second.TotalChildren != 20 {
		t.Fatalf("unexpected second plan: mode %s, %d children", second.Mode, second.TotalChildren)
	}

	<-first

	plan := svc.CurrentPlan()
	if plan.Mode != models.SourceModeLive {
		t.Errorf("stale fallback response replaced live data: mode %s", plan.Mode)
	}
	if plan.TotalChildren != 20 {
		t.Errorf("expected latest attendance, got %d", plan.TotalChildren)
	}
	if state := svc.AttendanceState(); state.Sequence != 2 {
		t.Errorf("expected sequence 2, got %d", state.Sequence)
	}
}

func TestPlanningService_Persistence(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	feed := &stubFetcher{data: liveSource()}

	svc := NewPlanningService(store.New(models.Attendance{Monday: 25, Tuesday: 30}), feed, repo)
	if err := svc.Restore(ctx); err != nil {
		t.Fatalf("Restore on empty repo: %v", err)
	}
	if got := svc.AttendanceState().Committed; got != (models.Attendance{Monday: 25, Tuesday: 30}) {
		t.Errorf("empty repo should keep defaults, got %+v", got)
	}

	svc.UpdateDraft(ctx, 7, 9)
	svc.CommitAttendance(ctx)
	svc.SetLeftover(ctx, "oats", 0.5)
	svc.SetLeftover(ctx, "fruit", 2)
	svc.ClearLeftover(ctx, "fruit")
	svc.ClearLeftover(ctx, "fruit")
	svc.UpdateDraft(ctx, 11, 9)

	restored := NewPlanningService(store.New(models.Attendance{}), feed, repo)
	if err := restored.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	state := restored.AttendanceState()
	if state.Committed != (models.Attendance{Monday: 7, Tuesday: 9}) {
		t.Errorf("unexpected committed attendance %+v", state.Committed)
	}
	if state.Draft != (models.Attendance{Monday: 11, Tuesday: 9}) {
		t.Errorf("unexpected draft attendance %+v", state.Draft)
	}
	if qty, ok := restored.store.Leftover(models.IngredientOats); !ok || qty != 0.5 {
		t.Errorf("expected oats leftover 0.5, got %v (set=%v)", qty, ok)
	}
	if _, ok := restored.store.Leftover(models.IngredientFruit); ok {
		t.Errorf("cleared leftover should stay unset")
	}
}
