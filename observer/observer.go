// Package observer defines the edge-select/unselect hooks that both solvers
// invoke synchronously at relaxation commit points. They exist to drive
// animation or logging in an external collaborator; neither solver assumes
// the hooks return quickly, but commit-phase bucket state is never exposed
// to them half-written.
package observer

import "github.com/GarsenJia/Single-Source-Shortest-Path/graph"

// Hooks is implemented by anything that wants to observe predecessor-edge
// selection as a solve progresses.
type Hooks interface {
	// EdgeSelected is called when e becomes the new predecessor edge of one
	// of its endpoints, with that endpoint's newly committed distance.
	EdgeSelected(e *graph.Edge, newDist uint64)
	// EdgeUnselected is called on the previous predecessor edge, if any,
	// immediately before EdgeSelected is called on its replacement.
	EdgeUnselected(e *graph.Edge)
}

// Nop is the default no-op implementation, used whenever a caller has no
// interest in observing relaxations.
type Nop struct{}

func (Nop) EdgeSelected(*graph.Edge, uint64) {}
func (Nop) EdgeUnselected(*graph.Edge)       {}

// Commit marks newEdge as the current predecessor edge under hooks,
// unselecting the previous predecessor (if any) first. Both solvers call
// this exact helper at their respective single-threaded commit points so
// the observer contract (unselect-then-select, synchronous, no partial
// state) holds identically for both.
func Commit(hooks Hooks, newEdge *graph.Edge, prev *graph.Edge, newDist uint64) {
	if hooks == nil {
		return
	}
	if prev != nil {
		prev.Selected = false
		hooks.EdgeUnselected(prev)
	}
	newEdge.Selected = true
	hooks.EdgeSelected(newEdge, newDist)
}
