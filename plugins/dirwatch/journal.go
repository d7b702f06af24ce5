package dirwatch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// journalName is the file the watcher keeps its posted-file record in.
const journalName = "posted.json"

// journal remembers which files were already posted so restarts do not
// repost them. Entries are keyed by base name and carry the file's
// modification time; a rewritten file posts again.
type journal struct {
	mu      sync.Mutex
	path    string
	entries map[string]int64 // base name -> mod time, unix nanoseconds
}

func newJournal(path string) *journal {
	return &journal{path: path, entries: map[string]int64{}}
}

// load reads the journal from disk. A missing file leaves the journal
// empty and is not an error.
func (j *journal) load() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	entries := map[string]int64{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	j.entries = entries
	return nil
}

// posted reports whether the file was already posted with this
// modification time.
func (j *journal) posted(path string, modTime time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	ns, ok := j.entries[filepath.Base(path)]
	return ok && ns == modTime.UnixNano()
}

// record marks the file as posted and persists the journal.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (j *journal) record(path string, modTime time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries[filepath.Base(path)] = modTime.UnixNano()

	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(j.entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, j.path)
}
