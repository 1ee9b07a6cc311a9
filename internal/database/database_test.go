package database_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/foxxcyber/breakfast-club/internal/database"
	"github.com/foxxcyber/breakfast-club/internal/models"
	"github.com/foxxcyber/breakfast-club/internal/services"
)

var _ services.StateRepository = (*database.DB)(nil)

// connectTestDB connects to TEST_DATABASE_URL and starts from empty tables
func connectTestDB(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.Connect(url)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(db.Close)

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	// Running twice must be a no-op
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations (again): %v", err)
	}

	ctx := context.Background()
	if _, err := db.Pool.Exec(ctx, `DELETE FROM attendance_state`); err != nil {
		t.Fatalf("reset attendance: %v", err)
	}
	if err := db.DeleteAllLeftovers(ctx); err != nil {
		t.Fatalf("reset leftovers: %v", err)
	}

	return db
}

func TestAttendanceRepo(t *testing.T) {
	db := connectTestDB(t)
	ctx := context.Background()

	if _, err := db.GetAttendanceState(ctx); !errors.Is(err, database.ErrAttendanceNotFound) {
		t.Fatalf("expected ErrAttendanceNotFound on empty table, got %v", err)
	}

	if err := db.SaveCommittedAttendance(ctx, models.Attendance{Monday: 25, Tuesday: 30}); err != nil {
		t.Fatalf("SaveCommittedAttendance: %v", err)
	}
	if err := db.SaveDraftAttendance(ctx, models.Attendance{Monday: 40, Tuesday: 30}); err != nil {
		t.Fatalf("SaveDraftAttendance: %v", err)
	}

	state, err := db.GetAttendanceState(ctx)
	if err != nil {
		t.Fatalf("GetAttendanceState: %v", err)
	}
	if state.Committed != (models.Attendance{Monday: 25, Tuesday: 30}) {
		t.Errorf("committed = %+v", state.Committed)
	}
	if state.Draft != (models.Attendance{Monday: 40, Tuesday: 30}) {
		t.Errorf("draft = %+v", state.Draft)
	}
}

func TestLeftoverRepo(t *testing.T) {
	db := connectTestDB(t)
	ctx := context.Background()

	if err := db.UpsertLeftover(ctx, "milk", 2.5); err != nil {
		t.Fatalf("UpsertLeftover: %v", err)
	}
	if err := db.UpsertLeftover(ctx, "milk", 3); err != nil {
		t.Fatalf("UpsertLeftover (update): %v", err)
	}
	if err := db.UpsertLeftover(ctx, "eggs", 0); err != nil {
		t.Fatalf("UpsertLeftover: %v", err)
	}

	leftovers, err := db.ListLeftovers(ctx)
	if err != nil {
		t.Fatalf("ListLeftovers: %v", err)
	}
	if len(leftovers) != 2 || leftovers["milk"] != 3 {
		t.Errorf("unexpected leftovers %v", leftovers)
	}
	if qty, ok := leftovers["eggs"]; !ok || qty != 0 {
		t.Errorf("explicit zero must be stored, got %v (present=%v)", qty, ok)
	}

	if err := db.DeleteLeftover(ctx, "milk"); err != nil {
		t.Fatalf("DeleteLeftover: %v", err)
	}
	if err := db.DeleteLeftover(ctx, "milk"); !errors.Is(err, database.ErrLeftoverNotFound) {
		t.Errorf("expected ErrLeftoverNotFound, got %v", err)
	}

	if err := db.DeleteAllLeftovers(ctx); err != nil {
		t.Fatalf("DeleteAllLeftovers: %v", err)
	}
	leftovers, err = db.ListLeftovers(ctx)
	if err != nil {
		t.Fatalf("ListLeftovers: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("expected no leftovers, got %v", leftovers)
	}
}
