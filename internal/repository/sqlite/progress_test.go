package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rajeshpillai/rust-katas/internal/apperror"
	"github.com/rajeshpillai/rust-katas/internal/model"
)

func createTestUser(t *testing.T, db *DB, githubID int64, login string) *model.User {
	t.Helper()
	user := &model.User{GitHubID: githubID, Login: login}
	if err := db.Upsert(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestProgressMarkCompleted(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, 10, "learner")

	progress, err := db.MarkCompleted(ctx, user.ID, "ownership-01")
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	if progress.KataID != "ownership-01" || progress.UserID != user.ID {
		t.Errorf("MarkCompleted() = %+v, want kata ownership-01 for user %s", progress, user.ID)
	}
	if progress.CompletedAt.IsZero() {
		t.Error("MarkCompleted() did not set CompletedAt")
	}
}

func TestProgressReMarkUpdatesTimestamp(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, 11, "repeater")

	first, err := db.MarkCompleted(ctx, user.ID, "ownership-01")
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := db.MarkCompleted(ctx, user.ID, "ownership-01")
	if err != nil {
		t.Fatalf("second MarkCompleted() error = %v", err)
	}
	if second.CompletedAt.Before(first.CompletedAt) {
		t.Errorf("re-mark CompletedAt %v is before first %v", second.CompletedAt, first.CompletedAt)
	}

	list, err := db.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("ListByUser() returned %d rows after re-mark, want 1", len(list))
	}
}

func TestProgressUnmark(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, 12, "undoer")

	if _, err := db.MarkCompleted(ctx, user.ID, "borrowing-03"); err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	if err := db.Unmark(ctx, user.ID, "borrowing-03"); err != nil {
		t.Fatalf("Unmark() error = %v", err)
	}

	if err := db.Unmark(ctx, user.ID, "borrowing-03"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Unmark() error = %v, want ErrNotFound", err)
	}
}

func TestProgressListByUserOrdered(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, 13, "steady")
	other := createTestUser(t, db, 14, "bystander")

	for _, kataID := range []string{"ownership-01", "ownership-02", "borrowing-01"} {
		if _, err := db.MarkCompleted(ctx, user.ID, kataID); err != nil {
			t.Fatalf("MarkCompleted(%s) error = %v", kataID, err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	if _, err := db.MarkCompleted(ctx, other.ID, "ownership-01"); err != nil {
		t.Fatalf("MarkCompleted(other) error = %v", err)
	}

	list, err := db.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("ListByUser() returned %d rows, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CompletedAt.Before(list[i-1].CompletedAt) {
			t.Errorf("ListByUser() not ordered by completion time: %v before %v", list[i].CompletedAt, list[i-1].CompletedAt)
		}
	}
}
