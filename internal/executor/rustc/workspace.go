package rustc

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fixed filenames inside a workspace: the submitted source and the artifact
// rustc produces from it.
const (
	sourceFile = "main.rs"
	binaryFile = "main"
)

// workspace is an ephemeral directory exclusively owned by one execution
// attempt. It is never shared or reused: every request acquires a fresh one
// and removes it when the pipeline ends, on every path.
type workspace struct {
	dir string
}

// newWorkspace acquires a uniquely-named directory under the OS temp area.
// os.MkdirTemp guarantees the name is unique among concurrently-active
// workspaces and that the directory did not exist before creation.
func newWorkspace() (*workspace, error) {
	dir, err := os.MkdirTemp("", "playground-")
	if err != nil {
		return nil, fmt.Errorf("rustc: creating workspace: %w", err)
	}
	return &workspace{dir: dir}, nil
}

func (w *workspace) sourcePath() string { return filepath.Join(w.dir, sourceFile) }
func (w *workspace) binaryPath() string { return filepath.Join(w.dir, binaryFile) }

// writeSource writes the submitted code verbatim to the fixed source path.
func (w *workspace) writeSource(code string) error {
	if err := os.WriteFile(w.sourcePath(), []byte(code), 0o600); err != nil {
		return fmt.Errorf("rustc: writing source: %w", err)
	}
	return nil
}

// Close removes the workspace and everything written into it. Callers defer
// it immediately after acquisition, so removal happens on success, compile
// failure, timeout, and every other exit path alike.
func (w *workspace) Close() error {
	return os.RemoveAll(w.dir)
}
