// Package graph builds dependency graphs over task snapshots and derives
// the structural facts (cycles, depth layering, critical path, parallel
// groups) the other analyzers consume.
package graph

import (
	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
)

// Node is a task projected into the dependency graph.
type Node struct {
	ID       string                `json:"id"`
	Title    string                `json:"title"`
	Status   planning.TaskStatus   `json:"status,omitempty"`
	Priority planning.TaskPriority `json:"priority,omitempty"`
	// Depth is the longest dependency-chain distance from a dependency-free
	// task, or -1 when the node is unreachable through a valid topological
	// ordering because it sits in or behind a cycle.
	Depth     int `json:"depth"`
	InDegree  int `json:"in_degree"`
	OutDegree int `json:"out_degree"`
}

// Edge is an ordered pair: To depends on From. Edges are only materialized
// when both endpoints exist in the task set.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the derived dependency structure for one task snapshot. It is
// rebuilt fresh on every Build call and never mutated afterwards.
type Graph struct {
	Nodes               []Node     `json:"nodes"`
	Edges               []Edge     `json:"edges"`
	CriticalPath        []string   `json:"critical_path"`
	CriticalPathMinutes int        `json:"critical_path_minutes"`
	ParallelGroups      [][]string `json:"parallel_groups"`
	MaxDepth            int        `json:"max_depth"`
	HasCycles           bool       `json:"has_cycles"`
	CycleNodes          []string   `json:"cycle_nodes"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

const (
	white = iota
	gray
	black
)

// Build constructs the dependency graph for the given tasks. Dangling
// dependency references are dropped silently; Build never fails, it
// degrades to empty structures for empty input. All outputs preserve task
// input order, so repeated calls on the same snapshot yield identical
// results.
func Build(tasks []planning.Task) *Graph {
	n := len(tasks)
	index := make(map[string]int, n)
	for i, t := range tasks {
		index[t.ID] = i
	}

	// Forward adjacency runs dependency -> dependent, matching edge
	// direction. Reverse adjacency keeps each node's in-graph predecessors
	// in declared order.
	succ := make([][]int, n)
	pred := make([][]int, n)
	edges := make([]Edge, 0)
	for i, t := range tasks {
		for _, dep := range t.DependsOn {
			j, ok := index[dep]
			if !ok {
				continue
			}
			succ[j] = append(succ[j], i)
			pred[i] = append(pred[i], j)
			edges = append(edges, Edge{From: dep, To: t.ID})
		}
	}

	hasCycles, inCycle := detectCycles(succ)
	depth, maxDepth := layerDepths(succ, pred)
	criticalPath := criticalPath(tasks, pred, depth)
	parallelGroups := parallelGroups(tasks, pred, depth, maxDepth)

	pathMinutes := 0
	for _, id := range criticalPath {
		pathMinutes += taskMinutes(tasks[index[id]])
	}

	nodes := make([]Node, n)
	cycleNodes := make([]string, 0)
	for i, t := range tasks {
		nodes[i] = Node{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			Priority:  t.Priority,
			Depth:     depth[i],
			InDegree:  len(pred[i]),
			OutDegree: len(succ[i]),
		}
		if inCycle[i] {
			cycleNodes = append(cycleNodes, t.ID)
		}
	}

	return &Graph{
		Nodes:               nodes,
		Edges:               edges,
		CriticalPath:        criticalPath,
		CriticalPathMinutes: pathMinutes,
		ParallelGroups:      parallelGroups,
		MaxDepth:            maxDepth,
		HasCycles:           hasCycles,
		CycleNodes:          cycleNodes,
	}
}

// detectCycles runs a three-color depth-first traversal from every white
// node. Hitting a gray node marks it, the current node, and every ancestor
// on the active recursion path as cycle members.
func detectCycles(succ [][]int) (bool, []bool) {
	n := len(succ)
	color := make([]int, n)
	inCycle := make([]bool, n)
	hasCycles := false
	path := make([]int, 0, n)

	var dfs func(u int)
	dfs = func(u int) {
		color[u] = gray
		path = append(path, u)

		for _, v := range succ[u] {
			switch color[v] {
			case white:
				dfs(v)
			case gray:
				hasCycles = true
				inCycle[v] = true
				for _, a := range path {
					inCycle[a] = true
				}
			}
		}

		path = path[:len(path)-1]
		color[u] = black
	}

	for u := 0; u < n; u++ {
		if color[u] == white {
			dfs(u)
		}
	}
	return hasCycles, inCycle
}

// layerDepths assigns topological depths with Kahn's algorithm. Nodes the
// queue never reaches (in or strictly behind a cycle) keep depth -1.
func layerDepths(succ, pred [][]int) ([]int, int) {
	n := len(succ)
	depth := make([]int, n)
	indegree := make([]int, n)
	assigned := make([]int, n)
	reached := make([]bool, n)

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		depth[i] = -1
		indegree[i] = len(pred[i])
		if indegree[i] == 0 {
			reached[i] = true
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		depth[u] = assigned[u]

		for _, v := range succ[u] {
			if depth[u]+1 > assigned[v] {
				assigned[v] = depth[u] + 1
			}
			indegree[v]--
			if indegree[v] == 0 && !reached[v] {
				reached[v] = true
				queue = append(queue, v)
			}
		}
	}

	maxDepth := 0
	for i := 0; i < n; i++ {
		if !reached[i] {
			depth[i] = -1
		}
		if depth[i] > maxDepth {
			maxDepth = depth[i]
		}
	}
	return depth, maxDepth
}

// criticalPath follows the longest cumulative-duration chain through the
// acyclic portion, processing nodes in ascending depth order and keeping
// the first-encountered predecessor on ties.
func criticalPath(tasks []planning.Task, pred [][]int, depth []int) []string {
	n := len(tasks)
	order := make([]int, 0, n)
	for d := 0; ; d++ {
		found := false
		for i := 0; i < n; i++ {
			if depth[i] == d {
				order = append(order, i)
				found = true
			}
		}
		if !found {
			break
		}
	}

	cumulative := make([]int, n)
	previous := make([]int, n)
	for _, u := range order {
		best := -1
		bestDuration := -1
		for _, p := range pred[u] {
			if depth[p] < 0 {
				continue
			}
			if cumulative[p] > bestDuration {
				bestDuration = cumulative[p]
				best = p
			}
		}
		if best < 0 {
			cumulative[u] = taskMinutes(tasks[u])
			previous[u] = -1
		} else {
			cumulative[u] = bestDuration + taskMinutes(tasks[u])
			previous[u] = best
		}
	}

	end := -1
	endDuration := -1
	for _, u := range order {
		if cumulative[u] > endDuration {
			endDuration = cumulative[u]
			end = u
		}
	}
	if end < 0 {
		return []string{}
	}

	reversed := make([]int, 0)
	for u := end; u >= 0; u = previous[u] {
		reversed = append(reversed, u)
	}
	path := make([]string, len(reversed))
	for i, u := range reversed {
		path[len(reversed)-1-i] = tasks[u].ID
	}
	return path
}

// parallelGroups returns the depth layers of size >1, filtering out any
// node with a same-depth predecessor.
func parallelGroups(tasks []planning.Task, pred [][]int, depth []int, maxDepth int) [][]string {
	groups := make([][]string, 0)
	for d := 0; d <= maxDepth; d++ {
		layer := make([]int, 0)
		for i := range tasks {
			if depth[i] == d {
				layer = append(layer, i)
			}
		}
		if len(layer) <= 1 {
			continue
		}

		filtered := make([]string, 0, len(layer))
		for _, u := range layer {
			sameDepthPred := false
			for _, p := range pred[u] {
				if depth[p] == d {
					sameDepthPred = true
					break
				}
			}
			if !sameDepthPred {
				filtered = append(filtered, tasks[u].ID)
			}
		}
		if len(filtered) > 1 {
			groups = append(groups, filtered)
		}
	}
	return groups
}

func taskMinutes(t planning.Task) int {
	if t.EstimateMinutes < 0 {
		return 0
	}
	return t.EstimateMinutes
}
