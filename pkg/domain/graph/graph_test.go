package graph_test

import (
	"reflect"
	"testing"

	"github.com/felixgeelhaar/planalyze/pkg/domain/graph"
	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
)

func task(id string, minutes int, deps ...string) planning.Task {
	return planning.Task{ID: id, Title: id, EstimateMinutes: minutes, DependsOn: deps}
}

func TestBuild_EmptyInput(t *testing.T) {
	g := graph.Build(nil)

	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("expected empty graph, got %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	if g.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0", g.MaxDepth)
	}
	if g.HasCycles {
		t.Error("empty graph should not report cycles")
	}
	if len(g.CriticalPath) != 0 {
		t.Errorf("CriticalPath = %v, want empty", g.CriticalPath)
	}
}

func TestBuild_DanglingReferencesDropped(t *testing.T) {
	g := graph.Build([]planning.Task{task("a", 10, "x")})

	if len(g.Edges) != 0 {
		t.Errorf("expected 0 edges, got %d", len(g.Edges))
	}
	node := g.Node("a")
	if node == nil {
		t.Fatal("node a missing")
	}
	if node.InDegree != 0 {
		t.Errorf("InDegree = %d, want 0", node.InDegree)
	}
	if node.Depth != 0 {
		t.Errorf("Depth = %d, want 0", node.Depth)
	}
}

func TestBuild_Depths(t *testing.T) {
	tests := []struct {
		name  string
		tasks []planning.Task
		want  map[string]int
		max   int
	}{
		{
			name:  "no dependencies",
			tasks: []planning.Task{task("a", 0), task("b", 0)},
			want:  map[string]int{"a": 0, "b": 0},
			max:   0,
		},
		{
			name: "linear chain",
			tasks: []planning.Task{
				task("a", 0),
				task("b", 0, "a"),
				task("c", 0, "b"),
			},
			want: map[string]int{"a": 0, "b": 1, "c": 2},
			max:  2,
		},
		{
			name: "diamond",
			tasks: []planning.Task{
				task("a", 0),
				task("b", 0, "a"),
				task("c", 0, "a"),
				task("d", 0, "b", "c"),
			},
			want: map[string]int{"a": 0, "b": 1, "c": 1, "d": 2},
			max:  2,
		},
		{
			name: "depth follows the longest path",
			tasks: []planning.Task{
				task("a", 0),
				task("b", 0, "a"),
				task("c", 0, "a", "b"),
			},
			want: map[string]int{"a": 0, "b": 1, "c": 2},
			max:  2,
		},
		{
			name: "cycle members are unreachable",
			tasks: []planning.Task{
				task("a", 0, "b"),
				task("b", 0, "a"),
				task("c", 0),
			},
			want: map[string]int{"a": -1, "b": -1, "c": 0},
			max:  0,
		},
		{
			name: "downstream of a cycle is unreachable",
			tasks: []planning.Task{
				task("a", 0, "b"),
				task("b", 0, "a"),
				task("c", 0, "a"),
			},
			want: map[string]int{"a": -1, "b": -1, "c": -1},
			max:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.Build(tt.tasks)
			for id, want := range tt.want {
				node := g.Node(id)
				if node == nil {
					t.Fatalf("node %s missing", id)
				}
				if node.Depth != want {
					t.Errorf("depth(%s) = %d, want %d", id, node.Depth, want)
				}
			}
			if g.MaxDepth != tt.max {
				t.Errorf("MaxDepth = %d, want %d", g.MaxDepth, tt.max)
			}
		})
	}
}

func TestBuild_CycleDetection(t *testing.T) {
	tests := []struct {
		name       string
		tasks      []planning.Task
		hasCycles  bool
		cycleNodes []string // must at least contain these
	}{
		{
			name:      "acyclic",
			tasks:     []planning.Task{task("a", 0), task("b", 0, "a")},
			hasCycles: false,
		},
		{
			name:       "self reference",
			tasks:      []planning.Task{task("a", 0, "a")},
			hasCycles:  true,
			cycleNodes: []string{"a"},
		},
		{
			name: "two node cycle",
			tasks: []planning.Task{
				task("a", 0, "b"),
				task("b", 0, "a"),
			},
			hasCycles:  true,
			cycleNodes: []string{"a", "b"},
		},
		{
			name: "cycle not reachable from a root",
			tasks: []planning.Task{
				task("root", 0),
				task("a", 0, "b", "root"),
				task("b", 0, "c"),
				task("c", 0, "a"),
			},
			hasCycles:  true,
			cycleNodes: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.Build(tt.tasks)
			if g.HasCycles != tt.hasCycles {
				t.Errorf("HasCycles = %v, want %v", g.HasCycles, tt.hasCycles)
			}
			members := make(map[string]bool)
			for _, id := range g.CycleNodes {
				members[id] = true
			}
			for _, id := range tt.cycleNodes {
				if !members[id] {
					t.Errorf("CycleNodes missing %s (got %v)", id, g.CycleNodes)
				}
			}
		})
	}
}

func TestBuild_CriticalPath(t *testing.T) {
	tests := []struct {
		name  string
		tasks []planning.Task
		want  []string
	}{
		{
			name: "two task chain",
			tasks: []planning.Task{
				task("a", 10),
				task("b", 20, "a"),
			},
			want: []string{"a", "b"},
		},
		{
			name: "longest duration wins over shorter branch",
			tasks: []planning.Task{
				task("a", 10),
				task("b", 20, "a"),
				task("c", 5, "a"),
			},
			want: []string{"a", "b"},
		},
		{
			name: "path through the heavier middle",
			tasks: []planning.Task{
				task("a", 10),
				task("b", 30, "a"),
				task("c", 5, "a"),
				task("d", 10, "b", "c"),
			},
			want: []string{"a", "b", "d"},
		},
		{
			name:  "single task",
			tasks: []planning.Task{task("a", 10)},
			want:  []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.Build(tt.tasks)
			if !reflect.DeepEqual(g.CriticalPath, tt.want) {
				t.Errorf("CriticalPath = %v, want %v", g.CriticalPath, tt.want)
			}
		})
	}
}

func TestBuild_ParallelGroups(t *testing.T) {
	// Diamond: b and c share depth 1 with no dependency between them.
	g := graph.Build([]planning.Task{
		task("a", 0),
		task("b", 0, "a"),
		task("c", 0, "a"),
		task("d", 0, "b", "c"),
	})

	if len(g.ParallelGroups) != 1 {
		t.Fatalf("expected 1 parallel group, got %v", g.ParallelGroups)
	}
	if !reflect.DeepEqual(g.ParallelGroups[0], []string{"b", "c"}) {
		t.Errorf("ParallelGroups[0] = %v, want [b c]", g.ParallelGroups[0])
	}
}

func TestBuild_DegreeCounts(t *testing.T) {
	g := graph.Build([]planning.Task{
		task("a", 0),
		task("b", 0, "a"),
		task("c", 0, "a"),
	})

	a := g.Node("a")
	if a.OutDegree != 2 || a.InDegree != 0 {
		t.Errorf("a degrees = %d in / %d out, want 0/2", a.InDegree, a.OutDegree)
	}
	b := g.Node("b")
	if b.OutDegree != 0 || b.InDegree != 1 {
		t.Errorf("b degrees = %d in / %d out, want 1/0", b.InDegree, b.OutDegree)
	}
	if len(g.Edges) != 2 {
		t.Errorf("expected 2 edges, got %d", len(g.Edges))
	}
	if g.Edges[0] != (graph.Edge{From: "a", To: "b"}) {
		t.Errorf("first edge = %+v, want a->b", g.Edges[0])
	}
}

func TestBuild_Deterministic(t *testing.T) {
	tasks := []planning.Task{
		task("a", 10),
		task("b", 20, "a"),
		task("c", 5, "a"),
		task("d", 15, "b", "c"),
		task("e", 25),
	}

	first := graph.Build(tasks)
	for i := 0; i < 20; i++ {
		if got := graph.Build(tasks); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestGraph_CriticalPathMinutes(t *testing.T) {
	tasks := []planning.Task{
		task("a", 10),
		task("b", 20, "a"),
		task("c", 5),
	}
	g := graph.Build(tasks)

	if g.CriticalPathMinutes != 30 {
		t.Errorf("CriticalPathMinutes = %d, want 30", g.CriticalPathMinutes)
	}

	if empty := graph.Build(nil); empty.CriticalPathMinutes != 0 {
		t.Errorf("CriticalPathMinutes = %d, want 0 for empty input", empty.CriticalPathMinutes)
	}
}
