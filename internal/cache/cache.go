// Package cache persists the most recent computed schedule so repeat
// invocations with unchanged input skip recomputation. Entries are
// keyed strictly on a content hash of (task list, start date, mode,
// hours per day); any input change produces a different key and the
// stale entry is never served.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mlindqvist/planline/internal/schedule"
	"github.com/mlindqvist/planline/internal/task"
)

const (
	// DefaultDir is the cache directory created in the project root.
	DefaultDir = ".planline"

	entryFile = "schedule.json"
)

// Entry is one cached schedule with the key it was computed under.
type Entry struct {
	Key        string           `json:"key"`
	Mode       string           `json:"mode"` // "auto" or "manual"
	ComputedAt time.Time        `json:"computed_at"`
	Result     *schedule.Result `json:"result"`
}

// Store reads and writes cache entries under a directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir (DefaultDir when empty).
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Key derives the cache key for one scheduling invocation. Tasks are
// canonicalised (sorted by id) before hashing so caller-side ordering
// does not affect the key.
func Key(tasks []task.Task, start time.Time, mode string, hoursPerDay float64) string {
	canonical := make([]task.Task, len(tasks))
	copy(canonical, tasks)
	sort.Slice(canonical, func(i, j int) bool {
		return canonical[i].ID < canonical[j].ID
	})

	payload := struct {
		Tasks       []task.Task `json:"tasks"`
		Start       string      `json:"start"`
		Mode        string      `json:"mode"`
		HoursPerDay float64     `json:"hours_per_day"`
	}{canonical, start.UTC().Format("2006-01-02"), mode, hoursPerDay}

	data, err := json.Marshal(payload)
	if err != nil {
		// Task is a plain data struct; this cannot fail in practice.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Save persists an entry, replacing any previous one.
func (s *Store) Save(e *Entry) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, entryFile), data, 0644)
}

// Load returns the cached entry only if its key matches; a miss or an
// unreadable file returns (nil, nil) so callers just recompute.
func (s *Store) Load(key string) (*Entry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, entryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, nil // corrupt cache is treated as a miss
	}
	if e.Key != key {
		return nil, nil
	}
	return &e, nil
}

// Clean removes the cache directory.
func (s *Store) Clean() error {
	return os.RemoveAll(s.dir)
}
