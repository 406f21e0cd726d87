// Package graph defines the vertex/edge data model shared by both solvers:
// a weighted, undirected geometric graph with mutable tentative distances
// and predecessor edges.
package graph

import "math"

// MaxCoord bounds the coordinate plane both axes are drawn from: [0, MaxCoord).
const MaxCoord = 1 << 28

// Inf is the sentinel tentative distance representing "unreached".
const Inf uint64 = math.MaxUint64

// Vertex is identified by a stable index into Graph.Vertices.
type Vertex struct {
	ID   uint32
	X, Y int32

	Dist uint64 // Tentative distance to the source. Inf means unreached.
	Pred *Edge  // Predecessor edge on the current shortest path, nil if none.

	Edges []*Edge // Adjacency list, fixed after construction.
}

// Hash is X XOR Y. The generator breaks edge-admission ties on this value;
// its coordinate-uniqueness check compares the full (X, Y) pair, not Hash.
func (v *Vertex) Hash() int64 {
	return int64(v.X) ^ int64(v.Y)
}

// Edge joins two vertices with a positive weight. Selected is mutated only
// by observer hooks at relaxation commit points; it carries no algorithmic
// meaning.
type Edge struct {
	A, B     *Vertex
	Weight   uint64
	Selected bool
}

// Other returns the endpoint of e that is not v.
func (e *Edge) Other(v *Vertex) *Vertex {
	if e.A == v {
		return e.B
	}
	return e.A
}

// Graph is a fixed adjacency structure built once per seed. Adjacency and
// weights are read-only during a solve; only Dist, Pred and Edge.Selected
// are mutated.
type Graph struct {
	Vertices []*Vertex
	Edges    []*Edge

	MaxEdgeWeight uint64
}

// Source is the designated vertex 0 every solve measures distance from.
func (g *Graph) Source() *Vertex {
	return g.Vertices[0]
}

// Reset restores every vertex to its pre-solve state: Dist = Inf, Pred =
// nil, except the source vertex, which starts at distance 0. It also clears
// the Selected flag on every edge. Safe to call between repeated solves
// over the same constructed graph.
func (g *Graph) Reset() {
	for _, v := range g.Vertices {
		v.Dist = Inf
		v.Pred = nil
	}
	for _, e := range g.Edges {
		e.Selected = false
	}
	g.Source().Dist = 0
}

// Distances returns the current tentative distance of every vertex, indexed
// by Vertex.ID.
func (g *Graph) Distances() []uint64 {
	out := make([]uint64, len(g.Vertices))
	for _, v := range g.Vertices {
		out[v.ID] = v.Dist
	}
	return out
}
