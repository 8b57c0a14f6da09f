package task

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTask marks validation failures in the input task set.
var ErrInvalidTask = errors.New("invalid task")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTask, fmt.Sprintf(format, args...))
}

// Validate checks the raw task set before any date math happens.
// Effort must be a positive finite number of hours, IDs must be
// non-empty and unique, and difficulty (when set) must be 1..5.
func Validate(tasks []Task) error {
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if t.ID == "" {
			return invalidf("task %d has an empty id", i)
		}
		if seen[t.ID] {
			return invalidf("duplicate task id %q", t.ID)
		}
		seen[t.ID] = true

		if math.IsNaN(t.EffortHours) || math.IsInf(t.EffortHours, 0) {
			return invalidf("task %q has non-finite effort", t.ID)
		}
		if t.EffortHours <= 0 {
			return invalidf("task %q has effort %.2fh, must be > 0", t.ID, t.EffortHours)
		}
		if t.Difficulty != 0 && (t.Difficulty < 1 || t.Difficulty > 5) {
			return invalidf("task %q has difficulty %d, must be 1..5", t.ID, t.Difficulty)
		}
	}
	return nil
}
