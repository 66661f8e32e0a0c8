package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajeshpillai/rust-katas/internal/apperror"
	"github.com/rajeshpillai/rust-katas/internal/auth"
	"github.com/rajeshpillai/rust-katas/internal/handler"
	"github.com/rajeshpillai/rust-katas/internal/kata"
	"github.com/rajeshpillai/rust-katas/internal/model"
	"github.com/rajeshpillai/rust-katas/internal/service"
)

type memProgressRepo struct {
	completed map[string]model.KataProgress
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{completed: make(map[string]model.KataProgress)}
}

func (m *memProgressRepo) MarkCompleted(_ context.Context, userID, kataID string) (*model.KataProgress, error) {
	p := model.KataProgress{UserID: userID, KataID: kataID, CompletedAt: time.Now().UTC()}
	m.completed[userID+"/"+kataID] = p
	return &p, nil
}

func (m *memProgressRepo) Unmark(_ context.Context, userID, kataID string) error {
	key := userID + "/" + kataID
	if _, ok := m.completed[key]; !ok {
		return apperror.NotFound("progress", kataID)
	}
	delete(m.completed, key)
	return nil
}

func (m *memProgressRepo) ListByUser(_ context.Context, userID string) ([]model.KataProgress, error) {
	result := []model.KataProgress{}
	for _, p := range m.completed {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

// newProgressRouter mounts the progress routes behind RequireAuth, the way
// server.go does.
func newProgressRouter(t *testing.T) (http.Handler, *auth.TokenService) {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	require.NoError(t, err)

	catalog := kata.NewCatalog([]model.Kata{{ID: "ownership-01", Phase: 1, Sequence: 1}})
	svc := service.NewProgressService(newMemProgressRepo(), catalog, testLogger())
	h := handler.NewProgressHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/api/progress", h.HandleList)
		r.Post("/api/progress/{kataID}", h.HandleMark)
		r.Delete("/api/progress/{kataID}", h.HandleUnmark)
	})
	return r, tokens
}

func TestProgressRoutes_RequireAuth(t *testing.T) {
	router, _ := newProgressRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/progress/ownership-01", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProgressRoutes_MarkAndList(t *testing.T) {
	router, tokens := newProgressRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/progress/ownership-01", nil)
	req = withSession(t, req, tokens, "user-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/progress", nil)
	req = withSession(t, req, tokens, "user-1")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var list []model.KataProgress
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "ownership-01", list[0].KataID)
}

func TestProgressRoutes_MarkUnknownKata(t *testing.T) {
	router, tokens := newProgressRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/progress/no-such-kata", nil)
	req = withSession(t, req, tokens, "user-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProgressRoutes_Unmark(t *testing.T) {
	router, tokens := newProgressRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/progress/ownership-01", nil)
	req = withSession(t, req, tokens, "user-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/progress/ownership-01", nil)
	req = withSession(t, req, tokens, "user-1")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/progress/ownership-01", nil)
	req = withSession(t, req, tokens, "user-1")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
