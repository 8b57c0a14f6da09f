package task

// Task is a single unit of project work as entered in the tracker.
// The scheduler never mutates a Task; every pass produces fresh
// derived records.
type Task struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Assignee    string   `json:"assignee,omitempty"`
	EffortHours float64  `json:"effort_hours"`
	Difficulty  int      `json:"difficulty,omitempty"` // ordinal 1..5
	Phase       int      `json:"phase"`
	Section     string   `json:"section,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
}

// Less orders tasks by phase, then section, then ID. This is the
// canonical placement order: it breaks ties in automatic scheduling
// and drives sequential placement in manual mode.
func Less(a, b *Task) bool {
	if a.Phase != b.Phase {
		return a.Phase < b.Phase
	}
	if a.Section != b.Section {
		return a.Section < b.Section
	}
	return a.ID < b.ID
}
