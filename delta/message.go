package delta

import "github.com/GarsenJia/Single-Source-Shortest-Path/graph"

// Message is a single-use relaxation addressed to a specific worker, per
// spec.md §3.
type Message struct {
	Edge         *graph.Edge
	Target       *graph.Vertex
	Dist         uint64
	TargetWorker int
	TargetBucket int
}
