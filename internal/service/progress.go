package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rajeshpillai/rust-katas/internal/apperror"
	"github.com/rajeshpillai/rust-katas/internal/model"
	"github.com/rajeshpillai/rust-katas/internal/repository"
)

// KataFinder is the slice of the kata catalog the progress service needs.
type KataFinder interface {
	Get(id string) (model.Kata, bool)
}

// ProgressService tracks which katas a user has completed.
type ProgressService struct {
	repo   repository.ProgressRepository
	katas  KataFinder
	logger *slog.Logger
}

func NewProgressService(repo repository.ProgressRepository, katas KataFinder, logger *slog.Logger) *ProgressService {
	return &ProgressService{
		repo:   repo,
		katas:  katas,
		logger: logger,
	}
}

// MarkCompleted records that the user finished the kata. Marking an already
// completed kata refreshes the completion time. The kata must exist in the
// catalog.
func (s *ProgressService) MarkCompleted(ctx context.Context, userID, kataID string) (*model.KataProgress, error) {
	if kataID == "" {
		return nil, apperror.ValidationFailed("kataID", "kata ID is required")
	}
	if _, ok := s.katas.Get(kataID); !ok {
		return nil, apperror.NotFound("kata", kataID)
	}

	progress, err := s.repo.MarkCompleted(ctx, userID, kataID)
	if err != nil {
		s.logger.Error("failed to mark kata completed",
			slog.String("userID", userID),
			slog.String("kataID", kataID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("marking kata completed: %w", err)
	}

	s.logger.Info("kata completed",
		slog.String("userID", userID),
		slog.String("kataID", kataID),
	)

	return progress, nil
}

// Unmark removes a completion record. Returns apperror.ErrNotFound when the
// kata was never marked.
func (s *ProgressService) Unmark(ctx context.Context, userID, kataID string) error {
	if kataID == "" {
		return apperror.ValidationFailed("kataID", "kata ID is required")
	}

	if err := s.repo.Unmark(ctx, userID, kataID); err != nil {
		return err
	}

	s.logger.Info("kata completion removed",
		slog.String("userID", userID),
		slog.String("kataID", kataID),
	)
	return nil
}

// ListCompleted returns the user's completions ordered by completion time.
func (s *ProgressService) ListCompleted(ctx context.Context, userID string) ([]model.KataProgress, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list completed katas",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing completed katas: %w", err)
	}
	return list, nil
}
