package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajeshpillai/rust-katas/internal/executor"
	"github.com/rajeshpillai/rust-katas/internal/handler"
)

// mockExecutor returns a canned result and records the request it received.
type mockExecutor struct {
	capturedReq executor.ExecutionRequest
	result      executor.ExecutionResult
}

func (m *mockExecutor) Execute(_ context.Context, req executor.ExecutionRequest) executor.ExecutionResult {
	m.capturedReq = req
	return m.result
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestPlaygroundHandler_HandleRun(t *testing.T) {
	t.Run("successful run", func(t *testing.T) {
		mock := &mockExecutor{
			result: executor.ExecutionResult{
				Stdout:          "Hello, world!\n",
				Success:         true,
				ExecutionTimeMs: 120,
			},
		}
		h := handler.NewPlaygroundHandler(mock, testLogger())

		body := `{"code":"fn main() { println!(\"Hello, world!\"); }"}`
		req := httptest.NewRequest(http.MethodPost, "/api/playground/run", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		h.HandleRun(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res executor.ExecutionResult
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "Hello, world!\n", res.Stdout)
		assert.True(t, res.Success)
		assert.Equal(t, `fn main() { println!("Hello, world!"); }`, mock.capturedReq.Code)
	})

	t.Run("compiler error is still 200", func(t *testing.T) {
		mock := &mockExecutor{
			result: executor.ExecutionResult{
				Stderr:          "error[E0425]: cannot find value `x` in this scope",
				Success:         false,
				ExecutionTimeMs: 85,
			},
		}
		h := handler.NewPlaygroundHandler(mock, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/playground/run", bytes.NewBufferString(`{"code":"fn main() { x; }"}`))
		rr := httptest.NewRecorder()

		h.HandleRun(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res executor.ExecutionResult
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.False(t, res.Success)
		assert.Contains(t, res.Stderr, "E0425")
	})

	t.Run("sandbox failure is still 200", func(t *testing.T) {
		mock := &mockExecutor{result: executor.Failure("could not invoke rustc: executable file not found")}
		h := handler.NewPlaygroundHandler(mock, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/playground/run", bytes.NewBufferString(`{"code":"fn main() {}"}`))
		rr := httptest.NewRecorder()

		h.HandleRun(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res executor.ExecutionResult
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "could not invoke rustc")
	})

	t.Run("empty code is passed through to the executor", func(t *testing.T) {
		mock := &mockExecutor{
			result: executor.ExecutionResult{
				Stderr:  "error: `main` function not found",
				Success: false,
			},
		}
		h := handler.NewPlaygroundHandler(mock, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/playground/run", bytes.NewBufferString(`{"code":""}`))
		rr := httptest.NewRecorder()

		h.HandleRun(rr, req)

		// The compiler is the judge of empty input, not the handler.
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "", mock.capturedReq.Code)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		h := handler.NewPlaygroundHandler(&mockExecutor{}, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/playground/run", bytes.NewBufferString(`{"code":`))
		rr := httptest.NewRecorder()

		h.HandleRun(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
