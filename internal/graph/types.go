package graph

import "github.com/mlindqvist/planline/internal/task"

// Graph is the directed acyclic dependency graph over a task set.
// Edges point from a prerequisite to its dependents.
type Graph struct {
	Tasks  map[string]*task.Task
	Adj    map[string][]string // prerequisite -> dependents
	RevAdj map[string][]string // dependent -> prerequisites
	Roots  []string            // tasks with no prerequisites
	Leaves []string            // tasks nothing depends on
	Order  []string            // deterministic topological order

	// Warnings collects soft conditions found while building, currently
	// dependency references that do not resolve to any task in the set.
	// They are excluded from constraints but surfaced to the caller.
	Warnings []string
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.Tasks)
}
