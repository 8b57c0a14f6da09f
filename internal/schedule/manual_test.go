package schedule

import (
	"errors"
	"testing"

	"github.com/mlindqvist/planline/internal/task"
)

func TestManualProject_PhaseOrderWinsOverDependencies(t *testing.T) {
	// 1.1 depends on 2.1, but manual mode places by phase order:
	// 1.1 first, then 2.1. Expected behaviour, not a bug.
	tasks := []task.Task{
		{ID: "2.1", Name: "Later phase", EffortHours: 8, Phase: 2},
		{ID: "1.1", Name: "Earlier phase", EffortHours: 8, Phase: 1, DependsOn: []string{"2.1"}},
	}

	res, err := ManualProject(tasks, day0, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Tasks[0].ID != "1.1" || res.Tasks[1].ID != "2.1" {
		t.Fatalf("expected placement [1.1 2.1], got [%s %s]", res.Tasks[0].ID, res.Tasks[1].ID)
	}
	assertDays(t, res.Tasks[0], 0, 1, 0, false)
	assertDays(t, res.Tasks[1], 1, 2, 0, false)

	// Dependency ids stay on the record for arrow drawing.
	if len(res.Tasks[0].DependsOn) != 1 || res.Tasks[0].DependsOn[0] != "2.1" {
		t.Errorf("dependencies must be preserved on output, got %v", res.Tasks[0].DependsOn)
	}
}

func TestManualProject_SequentialPlacement(t *testing.T) {
	tasks := []task.Task{
		{ID: "c", Name: "C", EffortHours: 8, Phase: 1, Section: "b"},
		{ID: "a", Name: "A", EffortHours: 16, Phase: 1, Section: "a"},
		{ID: "b", Name: "B", EffortHours: 24, Phase: 1, Section: "a"},
	}

	res, err := ManualProject(tasks, day0, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sorted (phase, section, id): a, b, c. Each starts where the
	// previous ends.
	assertDays(t, res.Tasks[0], 0, 2, 0, false)
	assertDays(t, res.Tasks[1], 2, 5, 0, false)
	assertDays(t, res.Tasks[2], 5, 6, 0, false)
	if res.TotalDays != 6 {
		t.Errorf("expected total 6 days, got %d", res.TotalDays)
	}
}

func TestManualProject_NeverCritical(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Name: "A", EffortHours: 8},
		{ID: "b", Name: "B", EffortHours: 8, DependsOn: []string{"a"}},
	}

	res, err := ManualProject(tasks, day0, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, st := range res.Tasks {
		if st.Critical {
			t.Errorf("task %s flagged critical in manual mode", st.ID)
		}
	}
	if len(res.CriticalPath) != 0 {
		t.Errorf("manual mode has no critical path, got %v", res.CriticalPath)
	}
}

func TestManualProject_CycleStillSchedulable(t *testing.T) {
	// Manual mode never consults the graph, so a cyclic set places fine.
	tasks := []task.Task{
		{ID: "a", Name: "A", EffortHours: 8, DependsOn: []string{"b"}},
		{ID: "b", Name: "B", EffortHours: 8, DependsOn: []string{"a"}},
	}

	res, err := ManualProject(tasks, day0, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Tasks) != 2 {
		t.Errorf("expected 2 placed tasks, got %d", len(res.Tasks))
	}
}

func TestManualProject_InvalidEffortRejected(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Name: "A", EffortHours: -4},
	}
	_, err := ManualProject(tasks, day0, Options{})
	if !errors.Is(err, task.ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask, got %v", err)
	}
}

func TestManualProject_DanglingWarning(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Name: "A", EffortHours: 8, DependsOn: []string{"nope"}},
	}

	res, err := ManualProject(tasks, day0, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("expected dangling reference warning, got %v", res.Warnings)
	}
}

func TestManualProject_DoesNotMutateInput(t *testing.T) {
	tasks := []task.Task{
		{ID: "b", Name: "B", EffortHours: 8, Phase: 2},
		{ID: "a", Name: "A", EffortHours: 8, Phase: 1},
	}

	if _, err := ManualProject(tasks, day0, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks[0].ID != "b" || tasks[1].ID != "a" {
		t.Error("manual scheduling must not reorder the caller's slice")
	}
}
