// Package generator builds deterministic, reproducible geometric graphs: a
// grid-tiled rejection-sampled point set, connected by a 3x3-neighborhood
// random admission policy with a Euclidean/uniform weight blend.
package generator

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/GarsenJia/Single-Source-Shortest-Path/enforce"
	"github.com/GarsenJia/Single-Source-Shortest-Path/graph"
)

// Params are the four knobs that fully determine a generated graph.
type Params struct {
	N     uint32  // vertex count
	Seed  uint64  // PRNG seed
	D     uint32  // target mean degree
	Gamma float64 // geometric realism in [0, 1]: 1 = pure Euclidean weight, 0 = pure random
}

// Generate builds a new graph for the given parameters. Identical Params
// always yield bit-identical graphs: the PRNG draw order is fixed as
// rejection-sampled coordinates for all N vertices, in vertex order,
// followed by per-vertex neighborhood admission and weight draws in grid
// traversal order.
func Generate(p Params) *graph.Graph {
	enforce.ENFORCE(p.N > 0, "N must be positive")
	enforce.ENFORCE(p.D > 0, "D must be positive")
	log.Debug().Uint32("n", p.N).Uint64("seed", p.Seed).Uint32("d", p.D).Float64("gamma", p.Gamma).Msg("generating graph")

	prn := rand.New(rand.NewSource(int64(p.Seed)))

	k := int(math.Sqrt(float64(p.N)/float64(p.D)) * 3 / 2)
	if k < 1 {
		k = 1
	}
	sw := int(math.Ceil(float64(graph.MaxCoord) / float64(k)))

	cells := make([][]*graph.Vertex, k*k)
	seen := make(map[[2]int32]bool, p.N)

	g := &graph.Graph{Vertices: make([]*graph.Vertex, p.N)}
	for i := uint32(0); i < p.N; i++ {
		var x, y int32
		for {
			x = int32(uint32(prn.Int63()) % graph.MaxCoord)
			y = int32(uint32(prn.Int63()) % graph.MaxCoord)
			if !seen[[2]int32{x, y}] {
				break
			}
		}
		seen[[2]int32{x, y}] = true

		v := &graph.Vertex{ID: i, X: x, Y: y, Dist: graph.Inf}
		g.Vertices[i] = v

		cx, cy := int(x)/sw, int(y)/sw
		cells[cx*k+cy] = append(cells[cx*k+cy], v)
	}
	g.Source().Dist = 0

	for _, v := range g.Vertices {
		xb, yb := int(v.X)/sw, int(v.Y)/sw
		xl, xh, yl, yh := neighborhoodRange(xb, k), neighborhoodHigh(xb, k), neighborhoodRange(yb, k), neighborhoodHigh(yb, k)

		for i := xl; i <= xh; i++ {
			for j := yl; j <= yh; j++ {
				for _, u := range cells[i*k+j] {
					if v.Hash() >= u.Hash() {
						continue // generate each edge from exactly one endpoint
					}
					if prn.Int63()%4 != 0 {
						continue
					}
					dist := euclidean(u, v)
					randWeight := uint64(prn.Int63()) % (2 * graph.MaxCoord)
					weight := uint64(p.Gamma*float64(dist) + (1-p.Gamma)*float64(randWeight))
					if weight == 0 {
						weight = 1 // edges must have strictly positive weight
					}
					g.AddEdge(u, v, weight)
				}
			}
		}
	}

	log.Debug().Int("edges", len(g.Edges)).Msg("graph generated")
	return g
}

// neighborhoodRange returns the low bound of the 3x3 (or smaller, at small
// k) neighborhood band around grid coordinate b in [0, k).
func neighborhoodRange(b, k int) int {
	if k < 3 {
		return 0
	}
	switch {
	case b == 0:
		return 0
	case b == k-1:
		return k - 3
	default:
		return b - 1
	}
}

// neighborhoodHigh returns the high bound of the same band.
func neighborhoodHigh(b, k int) int {
	if k < 3 {
		return k - 1
	}
	switch {
	case b == 0:
		return 2
	case b == k-1:
		return k - 1
	default:
		return b + 1
	}
}

func euclidean(a, b *graph.Vertex) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
