package delta

import "github.com/GarsenJia/Single-Source-Shortest-Path/graph"

// cell is a duplicate-free, insertion-order-preserving vertex set: one
// bucket's worth of work for one worker's column. Grounded on the
// teacher's idxToBucket scheme (graph/graph-vertex.go) for the general
// shape of a bucketed index, simplified to a plain ordered slice plus a
// position index since NB and per-cell occupancy are small at this scale.
type cell struct {
	order []*graph.Vertex
	pos   map[uint32]int
}

func newCell() cell {
	return cell{pos: make(map[uint32]int)}
}

func (c *cell) insert(v *graph.Vertex) {
	if _, ok := c.pos[v.ID]; ok {
		return
	}
	c.pos[v.ID] = len(c.order)
	c.order = append(c.order, v)
}

func (c *cell) remove(v *graph.Vertex) {
	i, ok := c.pos[v.ID]
	if !ok {
		return
	}
	c.order = append(c.order[:i], c.order[i+1:]...)
	delete(c.pos, v.ID)
	for j := i; j < len(c.order); j++ {
		c.pos[c.order[j].ID] = j
	}
}

func (c *cell) size() int {
	return len(c.order)
}

// snapshot returns the cell's current vertices in insertion order. The
// returned slice is owned by the caller; the cell itself is unaffected.
func (c *cell) snapshot() []*graph.Vertex {
	out := make([]*graph.Vertex, len(c.order))
	copy(out, c.order)
	return out
}

// BucketGrid is the two-dimensional B[bucket][worker] structure from
// spec.md §4.3: each worker mutates only its own column except during the
// coordinator's commit phase. A vertex occupies at most one cell at a
// time (invariant a); membership tracks which bucket holds it, per
// worker column, so that re-relaxing an already-placed vertex relocates
// it instead of leaving a stale duplicate behind.
type BucketGrid struct {
	numBuckets int
	numWorkers int
	cells      [][]cell // [bucket][worker]
	membership []int32  // membership[id] = current bucket, or -1 if absent
}

// NewBucketGrid allocates an empty grid of the given shape, sized for up
// to n vertices.
func NewBucketGrid(numBuckets, numWorkers, n int) *BucketGrid {
	g := &BucketGrid{numBuckets: numBuckets, numWorkers: numWorkers}
	g.cells = make([][]cell, numBuckets)
	for b := range g.cells {
		g.cells[b] = make([]cell, numWorkers)
		for t := range g.cells[b] {
			g.cells[b][t] = newCell()
		}
	}
	g.membership = make([]int32, n)
	for i := range g.membership {
		g.membership[i] = -1
	}
	return g
}

// Insert adds v to B[b][t], first removing it from whatever bucket of
// column t it currently occupies, if any. A no-op if v is already at
// B[b][t].
func (g *BucketGrid) Insert(v *graph.Vertex, b, t int) {
	if old := g.membership[v.ID]; old != -1 && int(old) != b {
		g.cells[old][t].remove(v)
	}
	g.cells[b][t].insert(v)
	g.membership[v.ID] = int32(b)
}

// Remove deletes v from B[b][t]. A no-op if v is not present.
func (g *BucketGrid) Remove(v *graph.Vertex, b, t int) {
	g.cells[b][t].remove(v)
	if int(g.membership[v.ID]) == b {
		g.membership[v.ID] = -1
	}
}

// Snapshot returns the current contents of B[b][t] in insertion order.
func (g *BucketGrid) Snapshot(b, t int) []*graph.Vertex {
	return g.cells[b][t].snapshot()
}

// Size returns the number of vertices currently in B[b][t].
func (g *BucketGrid) Size(b, t int) int {
	return g.cells[b][t].size()
}

// BucketEmpty reports whether every worker's column of bucket b is empty.
func (g *BucketGrid) BucketEmpty(b int) bool {
	for t := 0; t < g.numWorkers; t++ {
		if g.cells[b][t].size() > 0 {
			return false
		}
	}
	return true
}

// NextNonEmptyFrom scans forward from b0 (inclusive) and returns the
// smallest bucket index with at least one nonempty column, or ok=false if
// none exists. The scan is monotone: once a solve has advanced past a
// bucket, it is never rescanned, because every live tentative distance is
// at or above the current bucket's lower bound.
func (g *BucketGrid) NextNonEmptyFrom(b0 int) (bucket int, ok bool) {
	for b := b0; b < g.numBuckets; b++ {
		if !g.BucketEmpty(b) {
			return b, true
		}
	}
	return 0, false
}
