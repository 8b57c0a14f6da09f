package cache

import (
	"testing"
	"time"

	"github.com/mlindqvist/planline/internal/schedule"
	"github.com/mlindqvist/planline/internal/task"
)

var start = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

var sampleTasks = []task.Task{
	{ID: "a", Name: "A", EffortHours: 8, Phase: 1},
	{ID: "b", Name: "B", EffortHours: 16, Phase: 1, DependsOn: []string{"a"}},
}

func TestKey_StableAcrossOrdering(t *testing.T) {
	reordered := []task.Task{sampleTasks[1], sampleTasks[0]}

	k1 := Key(sampleTasks, start, "auto", 8)
	k2 := Key(reordered, start, "auto", 8)
	if k1 != k2 {
		t.Error("key must not depend on caller-side task ordering")
	}
	if len(k1) != 64 {
		t.Errorf("expected hex sha256 key, got %q", k1)
	}
}

func TestKey_ChangesWithInput(t *testing.T) {
	base := Key(sampleTasks, start, "auto", 8)

	if Key(sampleTasks, start.AddDate(0, 0, 1), "auto", 8) == base {
		t.Error("key must change with start date")
	}
	if Key(sampleTasks, start, "manual", 8) == base {
		t.Error("key must change with mode")
	}
	if Key(sampleTasks, start, "auto", 6) == base {
		t.Error("key must change with hours per day")
	}

	edited := []task.Task{sampleTasks[0], sampleTasks[1]}
	edited[1].EffortHours = 40
	if Key(edited, start, "auto", 8) == base {
		t.Error("key must change with task content")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	res, err := schedule.Project(sampleTasks, start, schedule.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := Key(sampleTasks, start, "auto", 8)
	entry := &Entry{Key: key, Mode: "auto", ComputedAt: time.Now(), Result: res}
	if err := store.Save(entry); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected cache hit")
	}
	if loaded.Result.TotalDays != res.TotalDays {
		t.Errorf("expected total %d, got %d", res.TotalDays, loaded.Result.TotalDays)
	}
	if len(loaded.Result.Tasks) != len(res.Tasks) {
		t.Errorf("expected %d tasks, got %d", len(res.Tasks), len(loaded.Result.Tasks))
	}
}

func TestStore_StaleKeyIsMiss(t *testing.T) {
	store := NewStore(t.TempDir())

	res, err := schedule.Project(sampleTasks, start, schedule.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save(&Entry{Key: "old-key", Mode: "auto", Result: res}); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(Key(sampleTasks, start, "auto", 8))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Error("a stale key must never be served")
	}
}

func TestStore_EmptyIsMiss(t *testing.T) {
	store := NewStore(t.TempDir())
	loaded, err := store.Load("anything")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Error("expected miss on empty store")
	}
}

func TestStore_Clean(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save(&Entry{Key: "k"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clean(); err != nil {
		t.Fatalf("clean: %v", err)
	}
	loaded, _ := store.Load("k")
	if loaded != nil {
		t.Error("expected miss after clean")
	}
}
