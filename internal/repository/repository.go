// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the only implementation today;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/rajeshpillai/rust-katas/internal/model"
)

// ListOptions controls snippet listing. UserID, when set, restricts the list
// to one owner's snippets.
type ListOptions struct {
	Limit  int
	Offset int
	UserID string
}

type SnippetRepository interface {
	Create(ctx context.Context, snippet *model.Snippet) error
	GetByID(ctx context.Context, id string) (*model.Snippet, error)
	List(ctx context.Context, opts ListOptions) ([]model.Snippet, error)
	Update(ctx context.Context, snippet *model.Snippet) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// ProgressRepository tracks which katas a user has completed.
type ProgressRepository interface {
	MarkCompleted(ctx context.Context, userID, kataID string) (*model.KataProgress, error)
	Unmark(ctx context.Context, userID, kataID string) error
	ListByUser(ctx context.Context, userID string) ([]model.KataProgress, error)
}
