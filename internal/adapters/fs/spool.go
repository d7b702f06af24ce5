// Package fs provides file-system adapters: the staging spool used
// during encoding and the size-guarded attachment encoder that writes
// into it.
package fs

import (
	"fmt"
	"os"
	"sync"

	"github.com/imgship/imgship/internal/ports"
)

// spoolPrefix marks staging directories so the cleanup plugin can
// recognize orphans left behind by crashed runs.
const spoolPrefix = "imgship-"

// TempDirSpooler implements ports.Spooler with disposable directories
// created under a fixed parent.
type TempDirSpooler struct {
	parent string
}

// NewTempDirSpooler creates a spooler rooted at parent. An empty parent
// uses the system temporary directory.
func NewTempDirSpooler(parent string) *TempDirSpooler {
	return &TempDirSpooler{parent: parent}
}

// Acquire creates a fresh staging directory, creating the parent first
// if needed.
func (s *TempDirSpooler) Acquire() (ports.Spool, error) {
	if s.parent != "" {
		if err := os.MkdirAll(s.parent, 0o700); err != nil {
			return nil, fmt.Errorf("create spool parent: %w", err)
		}
	}
	dir, err := os.MkdirTemp(s.parent, spoolPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}
	return &tempSpool{dir: dir}, nil
}

// tempSpool is one staging directory. Close removes it with everything
// inside; calling Close again is a no-op.
type tempSpool struct {
	mu     sync.Mutex
	dir    string
	closed bool
}

func (t *tempSpool) Dir() string { return t.dir }

func (t *tempSpool) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	return os.RemoveAll(t.dir)
}
