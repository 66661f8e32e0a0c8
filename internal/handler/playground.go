package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rajeshpillai/rust-katas/internal/executor"
)

// PlaygroundHandler handles code execution requests.
type PlaygroundHandler struct {
	exec   executor.Executor
	logger *slog.Logger
}

func NewPlaygroundHandler(exec executor.Executor, logger *slog.Logger) *PlaygroundHandler {
	return &PlaygroundHandler{
		exec:   exec,
		logger: logger,
	}
}

// HandleRun compiles and runs a submitted Rust program.
//
// Any outcome of the submission itself, including compiler errors, timeouts,
// and sandbox failures, is a 200 with the details in the result body. The
// frontend presents those as the result of the run, not as request failures.
// Only a body that is not valid JSON is a 400.
func (h *PlaygroundHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req executor.ExecutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid execution request body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "request body must be valid JSON",
		})
		return
	}

	h.logger.Info("executing rust submission", slog.Int("codeBytes", len(req.Code)))

	result := h.exec.Execute(r.Context(), req)

	h.logger.Info("execution finished",
		slog.Bool("success", result.Success),
		slog.Int64("durationMs", result.ExecutionTimeMs),
		slog.String("error", result.Error),
	)

	writeJSON(w, http.StatusOK, result)
}
