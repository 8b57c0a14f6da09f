package schedule

import (
	"time"

	"github.com/mlindqvist/planline/internal/task"
)

// DefaultHoursPerDay is the effort-to-calendar conversion divisor: one
// scheduled day absorbs this many effort hours, partial days round up.
// The tracker shows day-level granularity, so every task occupies at
// least one day.
const DefaultHoursPerDay = 8.0

// Options tunes a scheduling run. The zero value is usable.
type Options struct {
	// HoursPerDay overrides DefaultHoursPerDay when > 0.
	HoursPerDay float64
}

func (o Options) hoursPerDay() float64 {
	if o.HoursPerDay > 0 {
		return o.HoursPerDay
	}
	return DefaultHoursPerDay
}

// ScheduledTask is the dated output record for one task. Day offsets
// count whole days from the project start date; EndDay is exclusive,
// so a one-day task starting on day 0 has StartDay=0, EndDay=1.
type ScheduledTask struct {
	task.Task

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	StartDay int `json:"start_day"`
	EndDay   int `json:"end_day"`

	// Slack is how many days the task can slip without moving project
	// completion. Always 0 in manual mode, where it carries no meaning.
	Slack    int  `json:"slack"`
	Critical bool `json:"critical"`
}

// Result is a complete schedule for one invocation.
type Result struct {
	// Tasks are ordered deterministically: topological order in
	// automatic mode, placement order in manual mode.
	Tasks []ScheduledTask `json:"tasks"`

	// CriticalPath lists the zero-slack task ids in topological order.
	// Empty in manual mode.
	CriticalPath []string `json:"critical_path,omitempty"`

	// TotalDays is project completion in days from the start date.
	TotalDays int `json:"total_days"`

	Start    time.Time `json:"start"`
	Warnings []string  `json:"warnings,omitempty"`
}
