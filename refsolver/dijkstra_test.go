package refsolver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/GarsenJia/Single-Source-Shortest-Path/generator"
	"github.com/GarsenJia/Single-Source-Shortest-Path/graph"
)

func distancesOf(g *graph.Graph) []uint64 {
	out := make([]uint64, len(g.Vertices))
	for i, v := range g.Vertices {
		out[i] = v.Dist
	}
	return out
}

func TestSolveChain(t *testing.T) {
	g := graph.New([][2]int32{{0, 0}, {1, 0}, {2, 0}, {3, 0}})
	g.AddEdge(g.Vertices[0], g.Vertices[1], 1)
	g.AddEdge(g.Vertices[1], g.Vertices[2], 2)
	g.AddEdge(g.Vertices[2], g.Vertices[3], 3)

	if err := Solve(g, nil, nil); err != nil {
		t.Fatalf("Solve returned %v", err)
	}
	want := []uint64{0, 1, 3, 6}
	if got := distancesOf(g); !equalDist(got, want) {
		t.Fatalf("distances = %v, want %v", got, want)
	}
}

func TestSolveStar(t *testing.T) {
	g := graph.New([][2]int32{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}})
	weights := []uint64{2, 5, 7, 1}
	for i, w := range weights {
		g.AddEdge(g.Vertices[0], g.Vertices[i+1], w)
	}

	if err := Solve(g, nil, nil); err != nil {
		t.Fatalf("Solve returned %v", err)
	}
	want := []uint64{0, 2, 5, 7, 1}
	if got := distancesOf(g); !equalDist(got, want) {
		t.Fatalf("distances = %v, want %v", got, want)
	}
}

func TestSolveTriangle(t *testing.T) {
	g := graph.New([][2]int32{{0, 0}, {1, 0}, {2, 0}})
	g.AddEdge(g.Vertices[0], g.Vertices[1], 10)
	g.AddEdge(g.Vertices[1], g.Vertices[2], 1)
	g.AddEdge(g.Vertices[0], g.Vertices[2], 3)

	if err := Solve(g, nil, nil); err != nil {
		t.Fatalf("Solve returned %v", err)
	}
	want := []uint64{0, 4, 3}
	if got := distancesOf(g); !equalDist(got, want) {
		t.Fatalf("distances = %v, want %v", got, want)
	}
}

func TestSolveSingleVertex(t *testing.T) {
	g := graph.New([][2]int32{{0, 0}})
	if err := Solve(g, nil, nil); err != nil {
		t.Fatalf("Solve returned %v", err)
	}
	if got := distancesOf(g); !equalDist(got, []uint64{0}) {
		t.Fatalf("distances = %v, want [0]", got)
	}
}

func TestSolveDisconnected(t *testing.T) {
	g := graph.New([][2]int32{{0, 0}, {1, 0}, {2, 0}})
	g.AddEdge(g.Vertices[0], g.Vertices[1], 1)
	// vertex 2 left isolated

	if err := Solve(g, nil, nil); err != nil {
		t.Fatalf("Solve returned %v", err)
	}
	got := distancesOf(g)
	if got[2] != graph.Inf {
		t.Fatalf("unreachable vertex dist = %d, want Inf", got[2])
	}
}

// TestSolveAgainstGonumOracle cross-checks Solve against gonum's own
// Dijkstra implementation on generated graphs, grounded on the teacher's
// cmd/lp-sssp/rand-graph.go, which already builds a gonum weighted graph
// and calls path.DijkstraFrom as a correctness cross-check.
func TestSolveAgainstGonumOracle(t *testing.T) {
	for _, seed := range []uint64{0, 1, 2, 3, 42} {
		g := generator.Generate(generator.Params{N: 60, Seed: seed, D: 5, Gamma: 0.5})
		if err := Solve(g, nil, nil); err != nil {
			t.Fatalf("seed %d: Solve returned %v", seed, err)
		}

		og := simple.NewWeightedUndirectedGraph(0, 0)
		for _, v := range g.Vertices {
			og.AddNode(simple.Node(int64(v.ID)))
		}
		for _, e := range g.Edges {
			og.SetWeightedEdge(og.NewWeightedEdge(
				simple.Node(int64(e.A.ID)), simple.Node(int64(e.B.ID)), float64(e.Weight)))
		}

		shortest := path.DijkstraFrom(simple.Node(int64(g.Source().ID)), og)
		for _, v := range g.Vertices {
			oracle := shortest.WeightTo(int64(v.ID))
			got := float64(v.Dist)
			if v.Dist == graph.Inf {
				got = math.Inf(1)
			}
			if oracle != got {
				t.Fatalf("seed %d: vertex %d dist = %v, gonum oracle says %v", seed, v.ID, got, oracle)
			}
		}
	}
}

func equalDist(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
