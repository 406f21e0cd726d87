package graph

// New allocates a graph with n vertices at the given coordinates and no
// edges. Coordinates are caller-supplied; the generator enforces the
// uniqueness invariant itself, so New does not re-check it (tests that
// build small graphs by hand are free to reuse coordinates).
func New(coords [][2]int32) *Graph {
	g := &Graph{Vertices: make([]*Vertex, len(coords))}
	for i, c := range coords {
		g.Vertices[i] = &Vertex{ID: uint32(i), X: c[0], Y: c[1], Dist: Inf}
	}
	if len(g.Vertices) > 0 {
		g.Source().Dist = 0
	}
	return g
}

// AddEdge appends a new edge between a and b with the given weight to both
// endpoints' adjacency lists and to the graph's edge list. Callers are
// responsible for the no-self-loop, no-parallel-edge invariants; AddEdge
// does not check them (the generator enforces them at construction time via
// its own admission policy).
func (g *Graph) AddEdge(a, b *Vertex, weight uint64) *Edge {
	e := &Edge{A: a, B: b, Weight: weight}
	a.Edges = append(a.Edges, e)
	b.Edges = append(b.Edges, e)
	g.Edges = append(g.Edges, e)
	if weight > g.MaxEdgeWeight {
		g.MaxEdgeWeight = weight
	}
	return e
}
