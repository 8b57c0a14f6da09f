// Package schedule converts a dependency graph of tasks into a dated,
// critical-path-annotated timeline.
//
// Project is the automatic mode: earliest-start forward pass over the
// topological order, then a classic backward pass to compute slack and
// flag the zero-slack chain. ManualProject places tasks sequentially in
// phase/section order without consulting dependency edges.
//
// Both are pure functions of (tasks, start, options): no clock reads,
// no mutation of the input, identical inputs give identical results.
package schedule

import (
	"time"

	"github.com/mlindqvist/planline/internal/graph"
	"github.com/mlindqvist/planline/internal/task"
)

// Project computes the automatic, dependency-driven schedule. A task
// with no prerequisites starts at the project start date; otherwise it
// starts at the latest earliest-finish among its prerequisites.
//
// The critical-path flags are always computed here. Whether they are
// shown is a display decision that belongs to the rendering layer and
// never changes a computed date.
func Project(tasks []task.Task, start time.Time, opts Options) (*Result, error) {
	g, err := graph.Build(tasks)
	if err != nil {
		return nil, err
	}

	hpd := opts.hoursPerDay()
	durations := make(map[string]int, g.TaskCount())
	for id, t := range g.Tasks {
		durations[id] = durationDays(t.EffortHours, hpd)
	}

	// Forward pass: earliest start = max earliest finish of prerequisites.
	es := make(map[string]int, g.TaskCount())
	ef := make(map[string]int, g.TaskCount())
	totalDays := 0
	for _, id := range g.Order {
		startDay := 0
		for _, pre := range g.RevAdj[id] {
			if ef[pre] > startDay {
				startDay = ef[pre]
			}
		}
		es[id] = startDay
		ef[id] = startDay + durations[id]
		if ef[id] > totalDays {
			totalDays = ef[id]
		}
	}

	// Backward pass: latest finish = min latest start of dependents,
	// or project completion for sinks.
	ls := make(map[string]int, g.TaskCount())
	lf := make(map[string]int, g.TaskCount())
	for i := len(g.Order) - 1; i >= 0; i-- {
		id := g.Order[i]
		finish := totalDays
		for _, succ := range g.Adj[id] {
			if ls[succ] < finish {
				finish = ls[succ]
			}
		}
		lf[id] = finish
		ls[id] = finish - durations[id]
	}

	res := &Result{
		Tasks:     make([]ScheduledTask, 0, g.TaskCount()),
		TotalDays: totalDays,
		Start:     start,
		Warnings:  g.Warnings,
	}

	for _, id := range g.Order {
		slack := ls[id] - es[id]
		st := ScheduledTask{
			Task:     *g.Tasks[id],
			Start:    start.AddDate(0, 0, es[id]),
			End:      start.AddDate(0, 0, ef[id]),
			StartDay: es[id],
			EndDay:   ef[id],
			Slack:    slack,
			Critical: slack == 0,
		}
		res.Tasks = append(res.Tasks, st)
		if st.Critical {
			res.CriticalPath = append(res.CriticalPath, id)
		}
	}

	return res, nil
}
