package graph

import (
	"fmt"
	"sort"

	"github.com/mlindqvist/planline/internal/task"
)

// Build validates and indexes a task set into a dependency graph with
// a deterministic topological order. A dependency cycle is a hard
// error; a dependency reference that does not resolve to any task in
// the set is excluded from the constraints and recorded as a warning.
func Build(tasks []task.Task) (*Graph, error) {
	if err := task.Validate(tasks); err != nil {
		return nil, err
	}

	g := &Graph{
		Tasks:  make(map[string]*task.Task, len(tasks)),
		Adj:    make(map[string][]string),
		RevAdj: make(map[string][]string),
	}

	for i := range tasks {
		t := tasks[i] // copy; the graph never aliases caller memory
		g.Tasks[t.ID] = &t
	}

	// Deduplicate edges so a dependency listed twice adds one constraint.
	edgeSet := make(map[[2]string]bool)
	addEdge := func(from, to string) {
		key := [2]string{from, to}
		if edgeSet[key] {
			return
		}
		edgeSet[key] = true
		g.Adj[from] = append(g.Adj[from], to)
		g.RevAdj[to] = append(g.RevAdj[to], from)
	}

	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, dep := range g.Tasks[id].DependsOn {
			if _, ok := g.Tasks[dep]; !ok {
				g.Warnings = append(g.Warnings,
					fmt.Sprintf("task %q depends on unknown task %q; constraint ignored", id, dep))
				continue
			}
			addEdge(dep, id)
		}
	}

	for k := range g.Adj {
		sort.Strings(g.Adj[k])
	}
	for k := range g.RevAdj {
		sort.Strings(g.RevAdj[k])
	}

	for _, id := range ids {
		if len(g.RevAdj[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
		if len(g.Adj[id]) == 0 {
			g.Leaves = append(g.Leaves, id)
		}
	}

	order, ok := g.topoOrder()
	if !ok {
		return nil, &CycleError{Path: g.findCycle()}
	}
	g.Order = order

	return g, nil
}

// topoOrder runs Kahn's algorithm. Tasks that become ready together are
// ordered by phase, then section, then id, so identical input always
// yields an identical schedule. Returns ok=false when nodes remain
// unsorted, which means the graph has a cycle.
func (g *Graph) topoOrder() ([]string, bool) {
	inDegree := make(map[string]int, len(g.Tasks))
	for id := range g.Tasks {
		inDegree[id] = len(g.RevAdj[id])
	}

	var ready []string
	for id, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	g.sortReady(ready)

	order := make([]string, 0, len(g.Tasks))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var next []string
		for _, succ := range g.Adj[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				next = append(next, succ)
			}
		}
		if len(next) > 0 {
			ready = append(ready, next...)
			g.sortReady(ready)
		}
	}

	return order, len(order) == len(g.Tasks)
}

func (g *Graph) sortReady(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return task.Less(g.Tasks[ids[i]], g.Tasks[ids[j]])
	})
}

// findCycle extracts one cycle path using DFS with coloring: white
// (unvisited), gray (in progress), black (done). The returned path is
// closed, first and last element being the same task id.
func (g *Graph) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int)
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range g.Adj[node] {
			if color[next] == gray {
				// Back-edge node -> next. Walk parents back to next.
				cycle := []string{next, node}
				cur := node
				for cur != next {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
