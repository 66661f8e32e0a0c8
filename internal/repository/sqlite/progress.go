package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rajeshpillai/rust-katas/internal/apperror"
	"github.com/rajeshpillai/rust-katas/internal/model"
	"github.com/rajeshpillai/rust-katas/internal/repository"
)

var _ repository.ProgressRepository = (*DB)(nil)

// MarkCompleted records that userID finished kataID. Re-completing a kata
// just refreshes the timestamp — ON CONFLICT keeps it one row per pair.
func (db *DB) MarkCompleted(ctx context.Context, userID, kataID string) (*model.KataProgress, error) {
	completedAt := time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO kata_progress (user_id, kata_id, completed_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id, kata_id) DO UPDATE SET completed_at = excluded.completed_at`,
		userID, kataID, completedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: marking kata %s completed for user %s: %w", kataID, userID, err)
	}

	return &model.KataProgress{
		UserID:      userID,
		KataID:      kataID,
		CompletedAt: completedAt,
	}, nil
}

// Unmark removes a completion record, reporting NotFound if there was none.
func (db *DB) Unmark(ctx context.Context, userID, kataID string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM kata_progress WHERE user_id = ? AND kata_id = ?`,
		userID, kataID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: unmarking kata %s for user %s: %w", kataID, userID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("progress", kataID)
	}

	return nil
}

// ListByUser returns a user's completions, oldest first.
func (db *DB) ListByUser(ctx context.Context, userID string) ([]model.KataProgress, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, kata_id, completed_at
		 FROM kata_progress
		 WHERE user_id = ?
		 ORDER BY completed_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing progress for user %s: %w", userID, err)
	}
	defer rows.Close()

	progress := []model.KataProgress{}
	for rows.Next() {
		var p model.KataProgress
		if err := rows.Scan(&p.UserID, &p.KataID, &p.CompletedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning progress row: %w", err)
		}
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating progress: %w", err)
	}

	return progress, nil
}
