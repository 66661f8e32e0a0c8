package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rajeshpillai/rust-katas/internal/apperror"
	"github.com/rajeshpillai/rust-katas/internal/kata"
)

// KataHandler serves the kata catalog.
type KataHandler struct {
	catalog *kata.Catalog
	logger  *slog.Logger
}

func NewKataHandler(catalog *kata.Catalog, logger *slog.Logger) *KataHandler {
	return &KataHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleList returns all katas grouped by phase, in curriculum order.
//
// HTTP: GET /api/katas
func (h *KataHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.List())
}

// HandleGet returns a single kata with its full content.
//
// HTTP: GET /api/katas/{id}
func (h *KataHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	k, ok := h.catalog.Get(id)
	if !ok {
		writeError(w, apperror.NotFound("kata", id))
		return
	}

	writeJSON(w, http.StatusOK, k)
}
