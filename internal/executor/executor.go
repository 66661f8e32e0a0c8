// Package executor defines the contract for running untrusted playground
// code in an isolated environment, and the result shape every implementation
// must produce.
package executor

import "context"

// ExecutionRequest carries the raw source text submitted by a caller.
// No validation of content, size, or encoding happens before it reaches the
// pipeline — the compiler is the validator.
type ExecutionRequest struct {
	Code string `json:"code"`
}

// ExecutionResult is the outcome of one execution attempt.
//
// Exactly one of two things describes a result:
//
//   - a normal compile/run outcome: Stdout/Stderr/Success reflect what the
//     compiler or the compiled program did, and Error is empty. A compiler
//     failure is a normal outcome (Success=false, diagnostics in Stderr),
//     not a sandbox fault — callers render the two very differently.
//   - an infrastructure failure: the sandbox itself broke (workspace
//     creation, source write, process spawn, timeout). Error is set,
//     Success is false, and both output streams are empty.
//
// Stdout and Stderr are always present-but-possibly-empty strings, decoded
// lossily (invalid byte sequences become the replacement rune, never an
// error). ExecutionTimeMs is wall-clock time for the whole pipeline; it is
// zero only when the attempt failed before timing could start.
type ExecutionResult struct {
	Stdout          string `json:"stdout"`
	Stderr          string `json:"stderr"`
	Success         bool   `json:"success"`
	ExecutionTimeMs int64  `json:"execution_time_ms"`
	Error           string `json:"error,omitempty"`
}

// Failure builds an infrastructure-failure result with zero elapsed time.
// Use FailureAfter when the pipeline had already started timing.
func Failure(msg string) ExecutionResult {
	return ExecutionResult{Error: msg}
}

// FailureAfter builds an infrastructure-failure result carrying the elapsed
// wall-clock time measured so far.
func FailureAfter(msg string, elapsedMs int64) ExecutionResult {
	return ExecutionResult{Error: msg, ExecutionTimeMs: elapsedMs}
}

// Executor runs one submission and always produces a fully-formed result.
//
// Execute never returns a Go error: every failure mode, from a missing
// compiler to a timeout, is mapped onto the ExecutionResult shape. The
// serving process must never crash or hang because of a hostile submission,
// so nothing is allowed to propagate past this boundary.
type Executor interface {
	Execute(ctx context.Context, req ExecutionRequest) ExecutionResult
}
