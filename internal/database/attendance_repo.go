package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

var (
	ErrAttendanceNotFound = errors.New("attendance state not found")
)

// GetAttendanceState loads draft and committed attendance
func (db *DB) GetAttendanceState(ctx context.Context) (*models.AttendanceState, error) {
	state := &models.AttendanceState{}

	err := db.Pool.QueryRow(ctx, `
		SELECT draft_monday, draft_tuesday, monday, tuesday
		FROM attendance_state
		WHERE id = 1
	`).Scan(
		&state.Draft.Monday, &state.Draft.Tuesday,
		&state.Committed.Monday, &state.Committed.Tuesday,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}

	return state, nil
}

// SaveDraftAttendance upserts the draft attendance
func (db *DB) SaveDraftAttendance(ctx context.Context, att models.Attendance) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO attendance_state (id, draft_monday, draft_tuesday, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET draft_monday = EXCLUDED.draft_monday,
		    draft_tuesday = EXCLUDED.draft_tuesday,
		    updated_at = NOW()
	`, att.Monday, att.Tuesday)
	return err
}

// SaveCommittedAttendance upserts the committed attendance; the draft is
// set to the same values since a commit promotes it.
func (db *DB) SaveCommittedAttendance(ctx context.Context, att models.Attendance) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO attendance_state (id, draft_monday, draft_tuesday, monday, tuesday, committed_at, updated_at)
		VALUES (1, $1, $2, $1, $2, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET draft_monday = EXCLUDED.draft_monday,
		    draft_tuesday = EXCLUDED.draft_tuesday,
		    monday = EXCLUDED.monday,
		    tuesday = EXCLUDED.tuesday,
		    committed_at = NOW(),
		    updated_at = NOW()
	`, att.Monday, att.Tuesday)
	return err
}
