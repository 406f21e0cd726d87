package utils

import (
	"sync/atomic"
)

// Enqueuer : Producer
// Dequeuer : Consumer
// MP : Multiple Producers
// SC : Single Consumer

// ---------------------------- MPSC Ring Buffer ----------------------------

// Multiple producers enqueue with PutFastMP/PutSlowMP; a single consumer dequeues with Accept.
type RingBuffMPSC[T any] struct {
	_          [0]atomic.Int64
	enqueue    uint64
	enqMask    uint64
	enqEntries []PosElement[T]
	_          [3]uint64
	dequeue    uint64
	deqMask    uint64
	deqEntries []PosElement[T]
	status     uint64
	_          [2]uint64
}

type PosElement[T any] struct {
	position uint64
	element  T
}

// Will allocate and initialize the ring buffer with the specified size.
func (rb *RingBuffMPSC[T]) Init(size uint64) {
	size = RoundUpPow(size)
	rb.enqMask = (size - 1)
	rb.deqMask = rb.enqMask
	rb.deqEntries = make([]PosElement[T], size)
	for i := 0; i < int(size); i++ {
		rb.deqEntries[i].position = uint64(i)
	}
	rb.enqEntries = rb.deqEntries
}

// Dequeuer: Return the next item, or false if empty.
func (rb *RingBuffMPSC[T]) Accept() (item T, ok bool) {
	pos := rb.dequeue
	n := &rb.deqEntries[pos&rb.deqMask]
	if atomic.LoadUint64(&n.position) == (pos + 1) {
		item = n.element
		rb.dequeue++
		atomic.StoreUint64(&n.position, (pos + 1 + rb.deqMask))
		return item, true
	}
	return item, false
}

// (MultipleProducers) Enqueuer: Blocking add of the item part 1, MOVES FORWARD, must call PutSlowMP if !ok.
func (rb *RingBuffMPSC[T]) PutFastMP(item T) (myPos uint64, ok bool) {
	myPos = atomic.AddUint64(&rb.enqueue, 1) - 1
	n := &rb.enqEntries[myPos&rb.enqMask]
	if atomic.LoadUint64(&n.position) == myPos {
		n.element = item
		atomic.StoreUint64(&n.position, myPos+1)
		return myPos, true
	}
	return myPos, false
}

// (MultipleProducers) Enqueuer: Blocking add of the item part 2, to the position (from PutFastMP). Blocks until added.
func (rb *RingBuffMPSC[T]) PutSlowMP(item T, myPos uint64) (fails int) {
	n := &rb.enqEntries[myPos&rb.enqMask]
	for ; ; fails++ {
		if atomic.LoadUint64(&n.position) == myPos {
			n.element = item
			atomic.StoreUint64(&n.position, myPos+1)
			return
		}
		BackOff(fails) // Full
	}
}
