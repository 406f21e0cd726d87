// Package delta implements the barrier-synchronized, bucket-based parallel
// shortest-path solver: W worker goroutines and one coordinator goroutine
// rendezvous at a cyclic barrier to process buckets of tentatively-close
// vertices in lockstep, light edges before heavy, committing every
// relaxation through a single-threaded coordinator step so that all
// mutation of shared state happens strictly between barrier phases.
package delta

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/GarsenJia/Single-Source-Shortest-Path/coordination"
	"github.com/GarsenJia/Single-Source-Shortest-Path/enforce"
	"github.com/GarsenJia/Single-Source-Shortest-Path/graph"
	"github.com/GarsenJia/Single-Source-Shortest-Path/observer"
	"github.com/GarsenJia/Single-Source-Shortest-Path/utils"
)

// shared is the state every worker and the coordinator touch. Fields the
// coordinator writes before a barrier release and workers only read after
// it (currentAbs, terminate, bucketEmptyAfterLight) are never touched by
// both sides at once: the barrier itself is the synchronization, not a
// mutex around these fields.
type shared struct {
	g          *graph.Graph
	grid       *BucketGrid
	shadow     []uint64
	delta      uint64
	numBuckets int
	numWorkers int

	barrier *CyclicBarrier
	inboxes []*utils.RingBuffMPSC[Message]

	hooks observer.Hooks
	sig   *coordination.Signal

	currentAbs            uint64
	terminate             bool
	bucketEmptyAfterLight bool

	mu   sync.Mutex
	err  error
}

func (sh *shared) modIndex(abs uint64) int {
	return int(abs % uint64(sh.numBuckets))
}

// loadShadow reads vertex id's tentative distance. Safe without
// synchronization because the coordinator only ever writes shadow between
// two barrier phases during which every worker is blocked inside Await.
func (sh *shared) loadShadow(id uint32) uint64 {
	return sh.shadow[id]
}

func (sh *shared) fail(err error) {
	sh.mu.Lock()
	if sh.err == nil {
		sh.err = err
	}
	sh.mu.Unlock()
}

// Solve runs the parallel delta-stepping algorithm from g's source vertex
// with numWorkers worker columns. d sizes the bucket width (Delta =
// MaxCoord/d) and sets the grid's minimum cyclic span: NumBuckets is the
// largest of 2*d, g.MaxEdgeWeight/Delta+2 and 4. hooks (may be nil)
// observes predecessor-edge commits;
// sig (may be nil) carries cooperative pause/cancel. g must already be
// reset.
func Solve(g *graph.Graph, numWorkers int, d uint32, hooks observer.Hooks, sig *coordination.Signal) error {
	enforce.ENFORCE(numWorkers >= 1, "numWorkers must be positive")
	enforce.ENFORCE(d > 0, "d must be positive")

	delta := uint64(graph.MaxCoord) / uint64(d)
	if delta == 0 {
		delta = 1
	}
	// The grid must span every bucket a single relax can reach ahead of
	// currentAbs, which is bounded by the graph's heaviest edge, not by d:
	// a γ=0 generator can hand out edge weights up to ~2*MaxCoord, so
	// g.MaxEdgeWeight/delta can run well past 2*d. Size NumBuckets from
	// the actual graph instead of asserting a fixed 2*d span and aborting
	// on legal input; nextNonEmptyAbsFrom's modular scan already handles
	// any NumBuckets, so a larger value is free.
	numBuckets := int(2 * d)
	if span := int(g.MaxEdgeWeight/delta) + 2; span > numBuckets {
		numBuckets = span
	}
	if numBuckets < 4 {
		numBuckets = 4
	}

	n := len(g.Vertices)
	sh := &shared{
		g:          g,
		grid:       NewBucketGrid(numBuckets, numWorkers, n),
		shadow:     make([]uint64, n),
		delta:      delta,
		numBuckets: numBuckets,
		numWorkers: numWorkers,
		barrier:    NewCyclicBarrier(numWorkers + 1),
		hooks:      hooks,
		sig:        sig,
	}
	for i := range sh.shadow {
		sh.shadow[i] = graph.Inf
	}

	// A worker's inbox must never fill during collectLight/collectHeavy:
	// nothing drains it until the next barrier phase, so a full buffer
	// would spin PutSlowMP forever with its only consumer still blocked
	// producing, deadlocking the whole barrier. Size for the true worst
	// case rather than an assumption about degree: every edge can produce
	// at most one message per endpoint in a single phase (one from each
	// direction, if both endpoints are being relaxed this round), so
	// 2*|E| bounds the total messages in flight across all inboxes
	// combined, and an adversarial id%numWorkers distribution could still
	// route all of them to a single inbox.
	queueCap := utils.RoundUpPow(uint64(utils.Max(64, 2*len(g.Edges)+1)))
	sh.inboxes = make([]*utils.RingBuffMPSC[Message], numWorkers)
	for t := range sh.inboxes {
		rb := &utils.RingBuffMPSC[Message]{}
		rb.Init(queueCap)
		sh.inboxes[t] = rb
	}

	workers := make([]*worker, numWorkers)
	for t := range workers {
		workers[t] = newWorker(t, sh)
	}

	src := g.Source()
	sh.grid.Insert(src, sh.modIndex(0), int(src.ID)%numWorkers)
	sh.shadow[src.ID] = 0

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for _, w := range workers {
		w := w
		go func() {
			defer wg.Done()
			w.run()
		}()
	}

	searchFrom := uint64(0)
	for {
		if sig != nil {
			if err := sig.CheckPauseOrCancel(); err != nil {
				sh.fail(err)
				sh.barrier.Break()
				break
			}
		}

		abs, ok := sh.nextNonEmptyAbsFrom(searchFrom)
		if !ok {
			sh.terminate = true
			_ = sh.barrier.Await() // final release: workers observe terminate and exit
			break
		}

		sh.currentAbs = abs
		sh.terminate = false
		log.Trace().Uint64("abs", abs).Msg("bucket opened")
		if err := sh.barrier.Await(); err != nil { // step 2
			break
		}

		for {
			if sig != nil {
				if err := sig.CheckPauseOrCancel(); err != nil {
					sh.fail(err)
					sh.barrier.Break()
					goto done
				}
			}
			if err := sh.barrier.Await(); err != nil { // 3b
				goto done
			}
			if err := sh.barrier.Await(); err != nil { // 3d
				goto done
			}
			sh.commit(workers)
			idx := sh.modIndex(sh.currentAbs)
			sh.bucketEmptyAfterLight = sh.grid.BucketEmpty(idx)
			again := !sh.bucketEmptyAfterLight
			log.Trace().Uint64("abs", abs).Bool("again", again).Msg("light phase committed")
			if err := sh.barrier.Await(); err != nil { // 3f
				goto done
			}
			if !again {
				break
			}
		}

		if sig != nil {
			if err := sig.CheckPauseOrCancel(); err != nil {
				sh.fail(err)
				sh.barrier.Break()
				break
			}
		}
		if err := sh.barrier.Await(); err != nil { // 4b
			break
		}
		if err := sh.barrier.Await(); err != nil { // 4d
			break
		}
		sh.commit(workers)
		log.Trace().Uint64("abs", abs).Msg("heavy phase committed, bucket closed")
		if err := sh.barrier.Await(); err != nil { // 4f
			break
		}

		searchFrom = abs + 1
	}
done:
	wg.Wait()

	sh.mu.Lock()
	err := sh.err
	sh.mu.Unlock()
	return err
}

// nextNonEmptyAbsFrom scans at most numBuckets consecutive absolute bucket
// indices starting at abs0 and returns the first nonempty one. A full
// cycle with nothing found means the grid is genuinely empty: the
// NB-span invariant (enforced in worker.relax) guarantees nothing beyond
// this window can be occupied yet.
func (sh *shared) nextNonEmptyAbsFrom(abs0 uint64) (abs uint64, ok bool) {
	for i := 0; i < sh.numBuckets; i++ {
		cand := abs0 + uint64(i)
		if !sh.grid.BucketEmpty(sh.modIndex(cand)) {
			return cand, true
		}
	}
	return 0, false
}

// commit is the single-threaded mutation point: it runs only between two
// barrier phases where every worker is either blocked on the barrier or
// has returned from it with nothing left to report, so it owns the grid,
// shadow, and every vertex's Dist/Pred exclusively.
func (sh *shared) commit(workers []*worker) {
	for _, w := range workers {
		idx := sh.modIndex(sh.currentAbs)
		for _, v := range w.removals {
			sh.grid.Remove(v, idx, w.id)
		}
		for _, m := range w.localUpdates {
			if m.Dist >= sh.shadow[m.Target.ID] {
				continue // superseded by a better update already committed this phase
			}
			prev := m.Target.Pred
			sh.grid.Insert(m.Target, m.TargetBucket, m.TargetWorker)
			sh.shadow[m.Target.ID] = m.Dist
			m.Target.Dist = m.Dist
			m.Target.Pred = m.Edge
			observer.Commit(sh.hooks, m.Edge, prev, m.Dist)
		}
	}
}
