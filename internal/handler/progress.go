package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rajeshpillai/rust-katas/internal/auth"
	"github.com/rajeshpillai/rust-katas/internal/service"
)

// ProgressHandler exposes per-user kata completion tracking. All routes here
// sit behind auth.RequireAuth, so the user ID is always in the context.
type ProgressHandler struct {
	progress *service.ProgressService
	logger   *slog.Logger
}

func NewProgressHandler(progress *service.ProgressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		progress: progress,
		logger:   logger,
	}
}

// HandleList returns the caller's completed katas in completion order.
//
// HTTP: GET /api/progress
func (h *ProgressHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	list, err := h.progress.ListCompleted(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// HandleMark records a kata as completed by the caller. Re-marking refreshes
// the completion time.
//
// HTTP: POST /api/progress/{kataID}
func (h *ProgressHandler) HandleMark(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	progress, err := h.progress.MarkCompleted(r.Context(), userID, chi.URLParam(r, "kataID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, progress)
}

// HandleUnmark removes a completion record.
//
// HTTP: DELETE /api/progress/{kataID}
func (h *ProgressHandler) HandleUnmark(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.progress.Unmark(r.Context(), userID, chi.URLParam(r, "kataID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
