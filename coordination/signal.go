// Package coordination stands in for the external UI coordinator the core
// never talks to directly. It exposes the suspension/cancellation contract
// both solvers honor at observable hook points: register/unregister bracket
// a worker's lifetime, hesitate is a cooperative pause point, and Cancel
// raises a condition that unwinds cleanly to the solver entry point.
package coordination

import (
	"errors"
	"sync"
)

// ErrCancelled is returned up through a solver's entry point once a signal
// has been cancelled. It is never retried.
var ErrCancelled = errors.New("coordination: solve cancelled")

// Signal is the cooperative suspend/cancel hook every solver component
// consults at its observable points (the original's "Coordinator").
type Signal struct {
	mu        sync.Mutex
	cond      *sync.Cond
	paused    bool
	cancelled bool
	live      int // registered participants, for diagnostics only.
}

// New returns a ready-to-use Signal with no participants registered.
func New() *Signal {
	s := &Signal{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Register brackets the start of a worker's lifetime.
func (s *Signal) Register() {
	s.mu.Lock()
	s.live++
	s.mu.Unlock()
}

// Unregister brackets the end of a worker's lifetime.
func (s *Signal) Unregister() {
	s.mu.Lock()
	s.live--
	s.mu.Unlock()
}

// Pause puts the signal into the paused state; future and in-flight
// Hesitate calls block until Resume.
func (s *Signal) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume releases anything blocked in Hesitate.
func (s *Signal) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Cancel raises the cancellation condition. Anything currently blocked in
// Hesitate is released so it can observe the cancellation and unwind.
func (s *Signal) Cancel() {
	s.mu.Lock()
	s.cancelled = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Cancelled reports whether Cancel has been called.
func (s *Signal) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// CheckPauseOrCancel blocks while paused, then returns ErrCancelled if the
// signal has been cancelled. Call at every observable point a component
// is willing to suspend or abort at (barrier rendezvous, queue-drain
// boundaries, the start of a new outer-loop bucket).
func (s *Signal) CheckPauseOrCancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.paused && !s.cancelled {
		s.cond.Wait()
	}
	if s.cancelled {
		return ErrCancelled
	}
	return nil
}

// Hesitate is CheckPauseOrCancel under the name the original Coordinator
// uses: a single cooperative pause/cancel point invoked from inside a hot
// loop (e.g. immediately before an observer hook fires).
func (s *Signal) Hesitate() error {
	return s.CheckPauseOrCancel()
}
