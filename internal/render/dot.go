package render

import (
	"fmt"
	"io"

	"github.com/mlindqvist/planline/internal/schedule"
)

// WriteDOT writes the schedule's dependency graph in Graphviz DOT
// format. Critical tasks and critical edges are drawn bold red when
// the display flag is on.
func (r *Renderer) WriteDOT(w io.Writer, res *schedule.Result) {
	critical := make(map[string]bool, len(res.CriticalPath))
	if r.ShowCriticalPath {
		for _, id := range res.CriticalPath {
			critical[id] = true
		}
	}
	known := make(map[string]bool, len(res.Tasks))
	for i := range res.Tasks {
		known[res.Tasks[i].ID] = true
	}

	fmt.Fprintln(w, "digraph planline {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=rounded];")
	fmt.Fprintln(w)

	for _, t := range res.Tasks {
		label := fmt.Sprintf("%s\\n%s\\n%s → %s", t.ID, t.Name,
			t.Start.Format(dateFormat), t.End.Format(dateFormat))
		attrs := fmt.Sprintf(`label="%s"`, label)
		if critical[t.ID] {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Fprintf(w, "  %q [%s];\n", t.ID, attrs)
	}

	fmt.Fprintln(w)

	for _, t := range res.Tasks {
		for _, dep := range t.DependsOn {
			if !known[dep] {
				continue
			}
			style := ""
			if critical[dep] && critical[t.ID] {
				style = ` [color=red, penwidth=2]`
			}
			fmt.Fprintf(w, "  %q -> %q%s;\n", dep, t.ID, style)
		}
	}

	fmt.Fprintln(w, "}")
}
