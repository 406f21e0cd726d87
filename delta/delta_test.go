package delta

import (
	"testing"
	"time"

	"github.com/GarsenJia/Single-Source-Shortest-Path/coordination"
	"github.com/GarsenJia/Single-Source-Shortest-Path/generator"
	"github.com/GarsenJia/Single-Source-Shortest-Path/graph"
	"github.com/GarsenJia/Single-Source-Shortest-Path/refsolver"
)

func solveReference(t *testing.T, g *graph.Graph) []uint64 {
	t.Helper()
	g.Reset()
	if err := refsolver.Solve(g, nil, nil); err != nil {
		t.Fatalf("reference solve failed: %v", err)
	}
	return g.Distances()
}

// TestEquivalenceAcrossWorkerCounts is spec's equivalence property: for
// every seed and every W in {1,2,4,8}, the parallel solver's distance
// vector must equal the reference solver's.
func TestEquivalenceAcrossWorkerCounts(t *testing.T) {
	for _, seed := range []uint64{0, 1, 7, 42} {
		want := solveReference(t, generator.Generate(generator.Params{N: 100, Seed: seed, D: 4, Gamma: 0.5}))

		for _, w := range []int{1, 2, 4, 8} {
			g := generator.Generate(generator.Params{N: 100, Seed: seed, D: 4, Gamma: 0.5})
			if err := Solve(g, w, 4, nil, nil); err != nil {
				t.Fatalf("seed %d W=%d: Solve returned %v", seed, w, err)
			}
			got := g.Distances()
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("seed %d W=%d: vertex %d dist = %d, reference says %d", seed, w, i, got[i], want[i])
				}
			}
		}
	}
}

func TestEquivalenceGammaExtremes(t *testing.T) {
	for _, gamma := range []float64{0, 1} {
		want := solveReference(t, generator.Generate(generator.Params{N: 80, Seed: 3, D: 4, Gamma: gamma}))

		g := generator.Generate(generator.Params{N: 80, Seed: 3, D: 4, Gamma: gamma})
		if err := Solve(g, 4, 4, nil, nil); err != nil {
			t.Fatalf("gamma=%v: Solve returned %v", gamma, err)
		}
		got := g.Distances()
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("gamma=%v: vertex %d dist = %d, reference says %d", gamma, i, got[i], want[i])
			}
		}
	}
}

func TestSolveSingleVertex(t *testing.T) {
	g := graph.New([][2]int32{{0, 0}})
	if err := Solve(g, 4, 4, nil, nil); err != nil {
		t.Fatalf("Solve returned %v", err)
	}
	if g.Vertices[0].Dist != 0 {
		t.Fatalf("source dist = %d, want 0", g.Vertices[0].Dist)
	}
}

func TestSolveDisconnected(t *testing.T) {
	g := graph.New([][2]int32{{0, 0}, {1, 0}, {2, 0}})
	g.AddEdge(g.Vertices[0], g.Vertices[1], 1)

	if err := Solve(g, 2, 4, nil, nil); err != nil {
		t.Fatalf("Solve returned %v", err)
	}
	if g.Vertices[2].Dist != graph.Inf {
		t.Fatalf("unreachable vertex dist = %d, want Inf", g.Vertices[2].Dist)
	}
}

func TestSolveSingleWorkerDegeneratesCorrectly(t *testing.T) {
	g := generator.Generate(generator.Params{N: 40, Seed: 11, D: 4, Gamma: 0.7})
	want := solveReference(t, g)

	g2 := generator.Generate(generator.Params{N: 40, Seed: 11, D: 4, Gamma: 0.7})
	if err := Solve(g2, 1, 4, nil, nil); err != nil {
		t.Fatalf("Solve returned %v", err)
	}
	got := g2.Distances()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("vertex %d dist = %d, reference says %d", i, got[i], want[i])
		}
	}
}

// TestCancellationDuringSolve issues a cancel shortly after starting a
// large solve and requires Solve to return promptly, with ErrCancelled or
// (if the solve finished first) nil, rather than deadlocking.
func TestCancellationDuringSolve(t *testing.T) {
	g := generator.Generate(generator.Params{N: 2000, Seed: 9, D: 4, Gamma: 0.5})
	sig := coordination.New()

	go func() {
		time.Sleep(10 * time.Millisecond)
		sig.Cancel()
	}()

	done := make(chan error, 1)
	go func() {
		done <- Solve(g, 4, 4, nil, sig)
	}()

	select {
	case err := <-done:
		// A solve that happened to finish before the cancel fired is also
		// an acceptable outcome; what must never happen is a deadlock.
		if err != nil && err != coordination.ErrCancelled {
			t.Fatalf("Solve returned %v, want nil or ErrCancelled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Solve did not return after cancellation: deadlock")
	}
}
