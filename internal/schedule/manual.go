package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/mlindqvist/planline/internal/task"
)

// ManualProject computes the manual, sequential schedule: tasks sorted
// by phase, section, then id, each starting where the previous one
// ends. Dependency edges are never consulted for placement: a task
// may be placed before its prerequisite, and that is the expected
// behaviour, not a fallback to automatic mode. Dependency ids remain
// on the output records for downstream arrow drawing.
//
// Because the graph plays no part in date math, a cyclic task set is
// still schedulable here.
func ManualProject(tasks []task.Task, start time.Time, opts Options) (*Result, error) {
	if err := task.Validate(tasks); err != nil {
		return nil, err
	}

	ordered := make([]task.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return task.Less(&ordered[i], &ordered[j])
	})

	known := make(map[string]bool, len(tasks))
	for i := range tasks {
		known[tasks[i].ID] = true
	}

	hpd := opts.hoursPerDay()
	res := &Result{
		Tasks: make([]ScheduledTask, 0, len(ordered)),
		Start: start,
	}

	cursor := 0
	for i := range ordered {
		t := ordered[i]
		for _, dep := range t.DependsOn {
			if !known[dep] {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("task %q depends on unknown task %q; constraint ignored", t.ID, dep))
			}
		}

		d := durationDays(t.EffortHours, hpd)
		res.Tasks = append(res.Tasks, ScheduledTask{
			Task:     t,
			Start:    start.AddDate(0, 0, cursor),
			End:      start.AddDate(0, 0, cursor+d),
			StartDay: cursor,
			EndDay:   cursor + d,
		})
		cursor += d
	}
	res.TotalDays = cursor

	return res, nil
}
