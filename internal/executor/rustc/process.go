package rustc

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// outcomeKind is the three-way result of racing a child process against a
// stage deadline. Both pipeline stages (compile and run) share this shape.
type outcomeKind int

const (
	outcomeCompleted   outcomeKind = iota // process exited, status captured
	outcomeSpawnFailed                    // process never started
	outcomeTimedOut                       // deadline hit, process group killed
)

// stageOutcome captures what one stage of the pipeline did.
type stageOutcome struct {
	kind     outcomeKind
	success  bool   // exit status; meaningful only when kind == outcomeCompleted
	stdout   string // lossily decoded
	stderr   string // lossily decoded
	spawnErr error  // meaningful only when kind == outcomeSpawnFailed
}

// waitDelay bounds how long we wait for pipes to drain after the process
// group has been killed, so a stage can never hang on a wedged child.
const waitDelay = 2 * time.Second

// runStage spawns name with args and waits for it, bounded by timeout.
//
// The child is started in its own process group and the whole group gets
// SIGKILL when the deadline fires. Abandoning the wait alone would leave
// a looping artifact (or a pathological compile) running after the request
// has already been answered, so the kill happens before we return.
func runStage(ctx context.Context, timeout time.Duration, name string, args ...string) stageOutcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// Negative pid signals the whole process group, catching any
		// children the child itself spawned.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay

	err := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return stageOutcome{kind: outcomeTimedOut}
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return stageOutcome{
			kind:    outcomeCompleted,
			success: true,
			stdout:  lossyString(stdout.Bytes()),
			stderr:  lossyString(stderr.Bytes()),
		}
	case errors.As(err, &exitErr):
		return stageOutcome{
			kind:   outcomeCompleted,
			stdout: lossyString(stdout.Bytes()),
			stderr: lossyString(stderr.Bytes()),
		}
	default:
		// The process never started: binary missing, not executable, fork
		// failure. This is a sandbox fault, not a property of the code.
		return stageOutcome{kind: outcomeSpawnFailed, spawnErr: err}
	}
}

// lossyString decodes captured bytes as UTF-8, replacing invalid sequences
// with the replacement rune instead of rejecting them.
func lossyString(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
