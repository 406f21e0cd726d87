package delta

import "sync"

// CyclicBarrier is a reusable rendezvous point for a fixed number of
// goroutines, generalizing the teacher's channel-based thread rendezvous
// idiom (graph.GraphThread's per-thread Command/Response channel pair with
// ACK/RESUME tokens, see run-async.go's checkCommandsAsync) into a
// standalone primitive, since the spec calls for a literal cyclic barrier
// of arity W+1 rather than a command/response protocol tied to one
// algorithm.
//
// Await blocks until all n parties have called it, then releases all of
// them together and resets for the next cycle (hence "cyclic").
type CyclicBarrier struct {
	n       int
	mu      sync.Mutex
	cond    *sync.Cond
	waiting int
	cycle   int
	broken  bool
}

// NewCyclicBarrier returns a barrier of the given arity. n must be >= 1.
func NewCyclicBarrier(n int) *CyclicBarrier {
	b := &CyclicBarrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// ErrBroken is returned by Await to every party still waiting (or that
// arrives later) once the barrier has been broken, per spec.md §4.4's
// failure semantics: a dead participant must not deadlock its peers.
type errBroken struct{}

func (errBroken) Error() string { return "delta: barrier broken, a participant failed to arrive" }

// ErrBroken is the sentinel error value Await returns after Break.
var ErrBroken error = errBroken{}

// Await blocks until all parties have arrived, then returns nil to all of
// them simultaneously. If the barrier has been broken (Break), Await
// returns ErrBroken immediately to every caller, waiting or new.
func (b *CyclicBarrier) Await() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.broken {
		return ErrBroken
	}

	cycle := b.cycle
	b.waiting++
	if b.waiting == b.n {
		b.waiting = 0
		b.cycle++
		b.cond.Broadcast()
		return nil
	}

	for cycle == b.cycle && !b.broken {
		b.cond.Wait()
	}
	if b.broken {
		return ErrBroken
	}
	return nil
}

// Break permanently breaks the barrier, releasing every current and future
// waiter with ErrBroken. Solve and its workers call it when a solve is
// cancelled, so that barrier trips cannot deadlock the other participants.
func (b *CyclicBarrier) Break() {
	b.mu.Lock()
	b.broken = true
	b.mu.Unlock()
	b.cond.Broadcast()
}
