package delta

import (
	"github.com/GarsenJia/Single-Source-Shortest-Path/enforce"
	"github.com/GarsenJia/Single-Source-Shortest-Path/graph"
	"github.com/GarsenJia/Single-Source-Shortest-Path/utils"
)

// worker is one of the W columns of the bucket grid. It owns its own
// inbox (a multi-producer, single-consumer ring buffer: every worker may
// post a relaxation into it, only this worker drains it) and mutates only
// its own column of the grid during the collection sub-steps; the
// coordinator is the sole mutator of the grid and of shadow during commit.
type worker struct {
	id int
	sh *shared

	inbox *utils.RingBuffMPSC[Message]

	localUpdates []Message
	removals     []*graph.Vertex

	frontier     []*graph.Vertex
	frontierSeen map[uint32]bool
}

func newWorker(id int, sh *shared) *worker {
	return &worker{
		id:           id,
		sh:           sh,
		inbox:        sh.inboxes[id],
		frontierSeen: make(map[uint32]bool),
	}
}

// run is the worker's entire lifetime: repeatedly wait to be released into
// a bucket, drive that bucket's light/heavy phases to completion, then wait
// for the next one, until the coordinator raises the terminate sentinel or
// the barrier breaks out from under it.
func (w *worker) run() {
	if w.sh.sig != nil {
		w.sh.sig.Register()
		defer w.sh.sig.Unregister()
	}

	for {
		if err := w.sh.barrier.Await(); err != nil { // outer-loop release (step 2)
			return
		}
		if w.sh.terminate {
			return
		}
		if w.sh.sig != nil {
			if err := w.sh.sig.CheckPauseOrCancel(); err != nil {
				w.sh.fail(err)
				w.sh.barrier.Break()
				return
			}
		}

		for {
			w.collectLight()
			if err := w.sh.barrier.Await(); err != nil {
				return
			}
			w.drain()
			if err := w.sh.barrier.Await(); err != nil {
				return
			}
			// coordinator commits here, between this Await's return and the next.
			if err := w.sh.barrier.Await(); err != nil {
				return
			}
			again := !w.sh.bucketEmptyAfterLight
			w.resetCollectionBuffers()
			if !again {
				break
			}
		}

		w.collectHeavy()
		if err := w.sh.barrier.Await(); err != nil {
			return
		}
		w.drain()
		if err := w.sh.barrier.Await(); err != nil {
			return
		}
		// coordinator commits heavy updates here.
		if err := w.sh.barrier.Await(); err != nil {
			return
		}
		w.resetCollectionBuffers()
		w.frontier = nil
		w.frontierSeen = make(map[uint32]bool)
	}
}

// collectLight removes every vertex currently in this worker's column of
// the active bucket, relaxes their light edges, and records the removed
// vertices in the frontier for the later heavy-edge pass. Step 3a.
func (w *worker) collectLight() {
	idx := w.sh.modIndex(w.sh.currentAbs)
	removed := w.sh.grid.Snapshot(idx, w.id)
	w.removals = removed

	for _, v := range removed {
		w.addFrontier(v)
		for _, e := range v.Edges {
			if e.Weight > w.sh.delta {
				continue // heavy, deferred to collectHeavy
			}
			w.relax(v, e)
		}
	}
}

// collectHeavy relaxes the heavy edges out of every vertex settled while
// the active bucket was being drained of light work. Step 4a.
func (w *worker) collectHeavy() {
	for _, v := range w.frontier {
		for _, e := range v.Edges {
			if e.Weight <= w.sh.delta {
				continue // light, already handled
			}
			w.relax(v, e)
		}
	}
}

// relax evaluates edge e out of v and, if it improves o's tentative
// distance, routes a Message at o's owning worker: straight onto this
// worker's own localUpdates if o belongs to this column, or into the
// target worker's inbox otherwise. The shadow read here is a best-effort
// filter, not authoritative; the coordinator's commit re-checks against
// shadow before applying anything.
func (w *worker) relax(v *graph.Vertex, e *graph.Edge) {
	o := e.Other(v)
	alt := v.Dist + e.Weight
	if alt >= w.sh.loadShadow(o.ID) {
		return
	}

	absTarget := alt / w.sh.delta
	enforce.ENFORCE(absTarget < w.sh.currentAbs+uint64(w.sh.numBuckets),
		"delta: bucket span exceeded, widen numBuckets relative to delta and max edge weight")

	msg := Message{
		Edge:         e,
		Target:       o,
		Dist:         alt,
		TargetWorker: int(o.ID) % w.sh.numWorkers,
		TargetBucket: w.sh.modIndex(absTarget),
	}

	if msg.TargetWorker == w.id {
		w.localUpdates = append(w.localUpdates, msg)
		return
	}

	peer := w.sh.inboxes[msg.TargetWorker]
	if pos, ok := peer.PutFastMP(msg); !ok {
		peer.PutSlowMP(msg, pos)
	}
}

// drain empties this worker's inbox into localUpdates. Step 3c / 4c.
func (w *worker) drain() {
	for {
		m, ok := w.inbox.Accept()
		if !ok {
			return
		}
		w.localUpdates = append(w.localUpdates, m)
	}
}

func (w *worker) addFrontier(v *graph.Vertex) {
	if w.frontierSeen[v.ID] {
		return
	}
	w.frontierSeen[v.ID] = true
	w.frontier = append(w.frontier, v)
}

func (w *worker) resetCollectionBuffers() {
	w.localUpdates = nil
	w.removals = nil
}
