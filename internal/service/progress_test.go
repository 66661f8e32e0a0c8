package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rajeshpillai/rust-katas/internal/apperror"
	"github.com/rajeshpillai/rust-katas/internal/model"
)

type mockProgressRepo struct {
	completed map[string]model.KataProgress // keyed by userID + "/" + kataID
}

func newMockProgressRepo() *mockProgressRepo {
	return &mockProgressRepo{completed: make(map[string]model.KataProgress)}
}

func (m *mockProgressRepo) MarkCompleted(_ context.Context, userID, kataID string) (*model.KataProgress, error) {
	p := model.KataProgress{UserID: userID, KataID: kataID, CompletedAt: time.Now().UTC()}
	m.completed[userID+"/"+kataID] = p
	return &p, nil
}

func (m *mockProgressRepo) Unmark(_ context.Context, userID, kataID string) error {
	key := userID + "/" + kataID
	if _, ok := m.completed[key]; !ok {
		return apperror.NotFound("progress", kataID)
	}
	delete(m.completed, key)
	return nil
}

func (m *mockProgressRepo) ListByUser(_ context.Context, userID string) ([]model.KataProgress, error) {
	result := []model.KataProgress{}
	for _, p := range m.completed {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

// mockKataFinder knows a fixed set of kata IDs.
type mockKataFinder map[string]bool

func (m mockKataFinder) Get(id string) (model.Kata, bool) {
	if !m[id] {
		return model.Kata{}, false
	}
	return model.Kata{ID: id}, true
}

func newTestProgressService(t *testing.T, kataIDs ...string) *ProgressService {
	t.Helper()
	finder := mockKataFinder{}
	for _, id := range kataIDs {
		finder[id] = true
	}
	return NewProgressService(newMockProgressRepo(), finder, testLogger())
}

func TestProgressMarkCompleted_Success(t *testing.T) {
	svc := newTestProgressService(t, "ownership-01")

	progress, err := svc.MarkCompleted(context.Background(), "user-1", "ownership-01")
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	if progress.KataID != "ownership-01" {
		t.Errorf("KataID = %q, want %q", progress.KataID, "ownership-01")
	}
}

func TestProgressMarkCompleted_UnknownKata(t *testing.T) {
	svc := newTestProgressService(t, "ownership-01")

	_, err := svc.MarkCompleted(context.Background(), "user-1", "no-such-kata")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("MarkCompleted() error = %v, want ErrNotFound", err)
	}
}

func TestProgressMarkCompleted_EmptyKataID(t *testing.T) {
	svc := newTestProgressService(t)

	_, err := svc.MarkCompleted(context.Background(), "user-1", "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("MarkCompleted() error = %v, want ErrValidation", err)
	}
}

func TestProgressUnmark(t *testing.T) {
	svc := newTestProgressService(t, "ownership-01")
	ctx := context.Background()

	if _, err := svc.MarkCompleted(ctx, "user-1", "ownership-01"); err != nil {
		t.Fatalf("setup: MarkCompleted() error = %v", err)
	}
	if err := svc.Unmark(ctx, "user-1", "ownership-01"); err != nil {
		t.Fatalf("Unmark() error = %v", err)
	}
	if err := svc.Unmark(ctx, "user-1", "ownership-01"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Unmark() error = %v, want ErrNotFound", err)
	}
}

func TestProgressListCompleted(t *testing.T) {
	svc := newTestProgressService(t, "ownership-01", "ownership-02")
	ctx := context.Background()

	if _, err := svc.MarkCompleted(ctx, "user-1", "ownership-01"); err != nil {
		t.Fatalf("setup: MarkCompleted() error = %v", err)
	}
	if _, err := svc.MarkCompleted(ctx, "user-2", "ownership-02"); err != nil {
		t.Fatalf("setup: MarkCompleted() error = %v", err)
	}

	list, err := svc.ListCompleted(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListCompleted() error = %v", err)
	}
	if len(list) != 1 || list[0].KataID != "ownership-01" {
		t.Errorf("ListCompleted() = %+v, want only user-1's completion", list)
	}
}
