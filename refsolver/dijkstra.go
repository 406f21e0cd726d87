// Package refsolver implements the sequential priority-queue reference
// solver used to certify the parallel delta-stepping solver's output. It
// exists purely as the correctness oracle called out in the spec's "THE
// CORE" note: the generator and this solver are inseparable from the
// parallel solver's correctness harness.
package refsolver

import (
	"github.com/GarsenJia/Single-Source-Shortest-Path/coordination"
	"github.com/GarsenJia/Single-Source-Shortest-Path/graph"
	"github.com/GarsenJia/Single-Source-Shortest-Path/observer"
	"github.com/GarsenJia/Single-Source-Shortest-Path/utils"
)

// entry is a queue element carrying the tentative distance observed at
// insertion time ("weight" in the original's terms). Decrease-key is
// implemented by reinsertion: a stale entry is detected and skipped when
// its snapshot no longer matches the vertex's current distance.
type entry struct {
	v        *graph.Vertex
	snapshot uint64
}

func (e entry) Less(o entry) bool {
	return e.snapshot < o.snapshot
}

// Solve runs the classical priority-queue shortest-path algorithm from
// g's source vertex, using hooks (may be nil) to observe predecessor-edge
// commits and sig (may be nil) to honor cooperative pause/cancel. g must
// already be reset (source at distance 0, everything else at Inf).
func Solve(g *graph.Graph, hooks observer.Hooks, sig *coordination.Signal) error {
	var pq utils.PQ[entry]
	pq.Push(entry{v: g.Source(), snapshot: 0})

	for len(pq) > 0 {
		if sig != nil {
			if err := sig.CheckPauseOrCancel(); err != nil {
				return err
			}
		}

		top := pq.Pop()
		v := top.v
		if top.snapshot != v.Dist {
			continue // stale entry left behind by a decrease-key reinsertion
		}

		for _, e := range v.Edges {
			o := e.Other(v)
			alt := v.Dist + e.Weight
			if alt < o.Dist {
				prev := o.Pred
				o.Dist = alt
				o.Pred = e
				observer.Commit(hooks, e, prev, alt)
				pq.Push(entry{v: o, snapshot: alt})
			}
		}
	}
	return nil
}
