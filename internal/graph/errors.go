package graph

import (
	"errors"
	"strings"
)

// ErrCycle marks a dependency cycle in the input task set.
var ErrCycle = errors.New("dependency cycle")

// CycleError reports one offending cycle as an ordered task id path.
// The first and last element are the same task.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "dependency cycle detected"
	}
	return "dependency cycle detected: " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }
