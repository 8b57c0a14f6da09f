// Package render draws computed schedules for the terminal: a
// per-phase table, an ASCII Gantt chart, and Graphviz DOT output.
//
// The show-critical-path toggle lives here and nowhere else: it
// changes what is drawn, never what was computed.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mlindqvist/planline/internal/gantt"
	"github.com/mlindqvist/planline/internal/schedule"
	"github.com/mlindqvist/planline/internal/ui"
)

const dateFormat = "2006-01-02"

// Renderer writes human-readable schedule views.
type Renderer struct {
	Out io.Writer

	// ShowCriticalPath controls critical-path highlighting only.
	ShowCriticalPath bool
}

// New creates a Renderer writing to out.
func New(out io.Writer, showCriticalPath bool) *Renderer {
	return &Renderer{Out: out, ShowCriticalPath: showCriticalPath}
}

// PrintSchedule writes the schedule table grouped by phase.
func (r *Renderer) PrintSchedule(res *schedule.Result, rows []gantt.Row) {
	w := r.Out

	fmt.Fprintf(w, "📅 %s\n", ui.BoldCyan("Project Schedule"))
	fmt.Fprintln(w, ui.Cyan("═══════════════════════"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Tasks:      %s\n", ui.Bold(len(rows)))
	fmt.Fprintf(w, "Start:      %s\n", ui.Bold(res.Start.Format(dateFormat)))
	fmt.Fprintf(w, "Completion: %s (%s days)\n",
		ui.Bold(res.Start.AddDate(0, 0, res.TotalDays).Format(dateFormat)), ui.Bold(res.TotalDays))
	if r.ShowCriticalPath && len(res.CriticalPath) > 0 {
		fmt.Fprintf(w, "⚡ Critical path: %s\n", ui.BoldYellow(strings.Join(res.CriticalPath, " → ")))
	}
	fmt.Fprintln(w)

	lastPhase := -1
	for _, row := range rows {
		if row.Phase != lastPhase {
			fmt.Fprintf(w, "%s Phase %d %s\n", ui.Cyan("──"), row.Phase, ui.Cyan("──────────────────────────────"))
			lastPhase = row.Phase
		}
		r.printRow(w, row)
	}

	r.PrintWarnings(res.Warnings)
}

func (r *Renderer) printRow(w io.Writer, row gantt.Row) {
	crit := ""
	if r.ShowCriticalPath && row.Critical {
		crit = "  " + ui.BoldYellow("⚡")
	}
	slack := ""
	if row.Slack > 0 {
		slack = "  " + ui.Dim(fmt.Sprintf("slack %dd", row.Slack))
	}
	fmt.Fprintf(w, "  %s %s  %-30s %s → %s  w%d  %s%s%s\n",
		ui.StatusIcon(string(row.Status)),
		ui.BoldMagenta(row.ID),
		row.Name,
		row.Start.Format(dateFormat),
		row.End.Format(dateFormat),
		row.WeekNumber,
		ui.AssigneeTag(row.Assignee),
		slack,
		crit)
}

// PrintGantt writes an ASCII Gantt chart, one column per day with a
// week ruler on top.
func (r *Renderer) PrintGantt(rows []gantt.Row) {
	w := r.Out
	if len(rows) == 0 {
		fmt.Fprintln(w, ui.Dim("(empty schedule)"))
		return
	}

	totalDays := 0
	nameWidth := 0
	for _, row := range rows {
		if row.EndDay > totalDays {
			totalDays = row.EndDay
		}
		if n := len(row.ID); n > nameWidth {
			nameWidth = n
		}
	}

	fmt.Fprintf(w, "📊 %s\n", ui.BoldCyan("Gantt Timeline"))
	fmt.Fprintln(w, ui.Cyan("═══════════════════"))
	fmt.Fprintln(w)

	// Week ruler: a tick every 7 days.
	var ruler strings.Builder
	ruler.WriteString(strings.Repeat(" ", nameWidth+2))
	for d := 0; d < totalDays; d++ {
		if d%7 == 0 {
			ruler.WriteString(fmt.Sprintf("|w%-5d", d/7)[:min(7, totalDays-d)])
		}
	}
	fmt.Fprintln(w, ui.Dim(ruler.String()))

	for _, row := range rows {
		var bar strings.Builder
		for d := 0; d < totalDays; d++ {
			if d >= row.StartDay && d < row.EndDay {
				bar.WriteByte('#')
			} else {
				bar.WriteByte('.')
			}
		}

		line := bar.String()
		switch {
		case r.ShowCriticalPath && row.Critical:
			line = ui.BoldYellow(line)
		case row.Status == gantt.StatusPast:
			line = ui.Dim(line)
		case row.Status == gantt.StatusCurrent:
			line = ui.Cyan(line)
		}
		fmt.Fprintf(w, "%-*s  %s\n", nameWidth, row.ID, line)
	}
}

// PrintWarnings writes collected soft-condition warnings, if any.
func (r *Renderer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(r.Out)
	for _, warn := range warnings {
		fmt.Fprintf(r.Out, "%s %s\n", ui.Yellow("⚠"), warn)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
