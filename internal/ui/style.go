package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// PrintLogo renders the colored planline banner to stderr.
func PrintLogo() {
	w := os.Stderr
	frame := color.New(color.FgCyan)
	bars := color.New(color.FgYellow)
	brand := color.New(color.Bold, color.FgMagenta)
	tag := color.New(color.Faint)

	fmt.Fprintln(w)
	frame.Fprintln(w, "   +---------------------------+")
	bars.Fprintln(w, "   |  ▓▓▓▓▓░░░░                |")
	bars.Fprintln(w, "   |     ░░▓▓▓▓▓▓░░            |")
	bars.Fprintln(w, "   |         ░░░▓▓▓▓▓          |")
	brand.Fprintln(w, "   |  P L A N L I N E          |")
	frame.Fprintln(w, "   +---------------------------+")
	tag.Fprintln(w, "   Critical-path project timelines")
	fmt.Fprintln(w)
}

// assigneeColors is a palette of distinct bold colors for
// differentiating assignees in the timeline.
var assigneeColors = []func(a ...interface{}) string{
	BoldMagenta,
	BoldCyan,
	BoldYellow,
	BoldGreen,
	color.New(color.Bold, color.FgHiBlue).SprintFunc(),
	color.New(color.Bold, color.FgHiRed).SprintFunc(),
}

func assigneeColorIndex(name string) int {
	var h uint32
	for _, c := range name {
		h = h*31 + uint32(c)
	}
	return int(h % uint32(len(assigneeColors)))
}

// AssigneeTag returns a colored [assignee] tag. Each assignee gets a
// distinct color from the palette.
func AssigneeTag(name string) string {
	if name == "" {
		return Dim("[—]")
	}
	c := assigneeColors[assigneeColorIndex(name)]
	return Dim("[") + c(name) + Dim("]")
}

// StatusIcon returns a colored icon for a task's timeline status.
func StatusIcon(status string) string {
	switch status {
	case "past":
		return Green("✓")
	case "current":
		return Cyan("●")
	case "future":
		return Dim("◌")
	default:
		return Dim("?")
	}
}
