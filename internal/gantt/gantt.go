// Package gantt maps a computed schedule into the display-oriented
// records consumed by the rendering layer: a calendar week index
// relative to the project epoch, and a past/current/future status.
//
// Status is the single wall-clock-dependent field in the whole
// pipeline; everything upstream of this package is deterministic.
package gantt

import (
	"time"

	"github.com/mlindqvist/planline/internal/schedule"
)

// Status places a task relative to "now".
type Status string

const (
	StatusPast    Status = "past"
	StatusCurrent Status = "current"
	StatusFuture  Status = "future"
)

// Row is the final display record for one task.
type Row struct {
	schedule.ScheduledTask

	// WeekNumber is the index of the calendar week containing the task
	// start, counted from the week containing the project epoch.
	WeekNumber int    `json:"week_number"`
	Status     Status `json:"status"`
}

// Projector derives display rows from scheduled tasks.
type Projector struct {
	Epoch time.Time

	// Now supplies the clock; defaults to time.Now. Tests inject a
	// fixed instant here.
	Now func() time.Time
}

// NewProjector creates a Projector with the given week epoch.
func NewProjector(epoch time.Time) *Projector {
	return &Projector{Epoch: epoch, Now: time.Now}
}

// Project converts scheduled tasks into display rows, preserving order.
func (p *Projector) Project(tasks []schedule.ScheduledTask) []Row {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	rows := make([]Row, 0, len(tasks))
	for _, st := range tasks {
		rows = append(rows, Row{
			ScheduledTask: st,
			WeekNumber:    weekIndex(st.Start, p.Epoch),
			Status:        statusAt(st, now),
		})
	}
	return rows
}

func statusAt(st schedule.ScheduledTask, now time.Time) Status {
	switch {
	case st.End.Before(now):
		return StatusPast
	case st.Start.After(now):
		return StatusFuture
	default:
		return StatusCurrent
	}
}

// weekIndex counts whole calendar weeks between the week containing
// the epoch and the week containing d. Weeks start on Monday. Both
// instants are truncated to their week start first, so the difference
// is an exact multiple of seven days and the index is stable for any
// time of day.
func weekIndex(d, epoch time.Time) int {
	dw := weekStart(d)
	ew := weekStart(epoch)
	days := int(dw.Sub(ew).Hours() / 24)
	return days / 7
}

func weekStart(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
