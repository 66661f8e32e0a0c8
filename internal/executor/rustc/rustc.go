// Package rustc implements executor.Executor by driving the real Rust
// compiler and the binary it produces as plain child processes.
//
// The pipeline for one request is:
//
//	acquire workspace → write main.rs → rustc (compile timeout)
//	                                  → ./main (run timeout)
//
// Each request owns a fresh temp directory and its own child processes, so
// concurrent submissions share nothing and need no coordination. Isolation
// is exactly that: an ephemeral working directory plus wall-clock timeouts.
// There is no namespace, cgroup, or filesystem confinement here — do not
// expose this to the open internet without an OS-level layer around it.
package rustc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rajeshpillai/rust-katas/internal/executor"
)

// compile-time check that *Executor satisfies the executor interface.
var _ executor.Executor = (*Executor)(nil)

// Executor runs Rust submissions through a compile-then-run pipeline.
type Executor struct {
	config Config
	logger *slog.Logger
}

// New creates an Executor. It does not verify that the compiler exists —
// a missing rustc surfaces per-request as an infrastructure error, which is
// what callers of the API see for any sandbox fault.
func New(cfg Config, logger *slog.Logger) *Executor {
	return &Executor{
		config: cfg,
		logger: logger,
	}
}

// Execute runs one submission end to end and always returns a fully-formed
// result: a normal compile/run outcome, or an infrastructure error when the
// sandbox itself broke. It never panics past this boundary and never blocks
// longer than the two stage timeouts plus a small kill/drain overhead.
func (e *Executor) Execute(ctx context.Context, req executor.ExecutionRequest) executor.ExecutionResult {
	start := time.Now()

	ws, err := newWorkspace()
	if err != nil {
		// Nothing was timed yet, so this is the one path that reports zero
		// elapsed time.
		e.logger.Error("workspace acquisition failed", slog.String("error", err.Error()))
		return executor.Failure("could not create workspace: " + err.Error())
	}
	defer ws.Close()

	if err := ws.writeSource(req.Code); err != nil {
		e.logger.Error("source write failed", slog.String("error", err.Error()))
		return executor.FailureAfter("could not write source file: "+err.Error(), elapsedMs(start))
	}

	compile := runStage(ctx, e.config.CompileTimeout, e.config.Rustc,
		"--edition", e.config.Edition, ws.sourcePath(), "-o", ws.binaryPath())

	switch compile.kind {
	case outcomeSpawnFailed:
		e.logger.Error("rustc spawn failed", slog.String("error", compile.spawnErr.Error()))
		return executor.FailureAfter("could not invoke rustc: "+compile.spawnErr.Error(), elapsedMs(start))
	case outcomeTimedOut:
		e.logger.Warn("compilation timed out", slog.Duration("limit", e.config.CompileTimeout))
		return executor.FailureAfter(
			fmt.Sprintf("compilation timed out (%s limit)", e.config.CompileTimeout), elapsedMs(start))
	}

	if !compile.success {
		// Compiler diagnostics are the expected, common-case output of a
		// learning playground — a normal result, not a sandbox fault.
		// Compiler stdout is deliberately discarded; diagnostics live on
		// stderr.
		return executor.ExecutionResult{
			Stderr:          compile.stderr,
			ExecutionTimeMs: elapsedMs(start),
		}
	}

	run := runStage(ctx, e.config.RunTimeout, ws.binaryPath())

	switch run.kind {
	case outcomeSpawnFailed:
		e.logger.Error("artifact spawn failed", slog.String("error", run.spawnErr.Error()))
		return executor.FailureAfter("could not run compiled binary: "+run.spawnErr.Error(), elapsedMs(start))
	case outcomeTimedOut:
		e.logger.Warn("execution timed out", slog.Duration("limit", e.config.RunTimeout))
		return executor.FailureAfter(
			fmt.Sprintf("execution timed out (%s limit)", e.config.RunTimeout), elapsedMs(start))
	}

	return executor.ExecutionResult{
		Stdout:          run.stdout,
		Stderr:          run.stderr,
		Success:         run.success,
		ExecutionTimeMs: elapsedMs(start),
	}
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
