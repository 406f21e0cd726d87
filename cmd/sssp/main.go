// Command sssp generates a deterministic geometric graph and solves
// single-source shortest paths on it, either with the sequential
// reference solver or the parallel delta-stepping solver.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"github.com/GarsenJia/Single-Source-Shortest-Path/coordination"
	"github.com/GarsenJia/Single-Source-Shortest-Path/delta"
	"github.com/GarsenJia/Single-Source-Shortest-Path/generator"
	"github.com/GarsenJia/Single-Source-Shortest-Path/graph"
	"github.com/GarsenJia/Single-Source-Shortest-Path/observer"
	"github.com/GarsenJia/Single-Source-Shortest-Path/refsolver"
	"github.com/GarsenJia/Single-Source-Shortest-Path/utils"
)

// animationHooks reports every predecessor-edge commit at debug level. It
// is the only animation mode this command actually drives; a richer
// consumer (an external UI) would implement observer.Hooks itself.
type animationHooks struct{}

func (animationHooks) EdgeSelected(e *graph.Edge, newDist uint64) {
	log.Debug().Uint32("a", e.A.ID).Uint32("b", e.B.ID).Uint64("dist", newDist).Msg("edge selected")
}

func (animationHooks) EdgeUnselected(e *graph.Edge) {
	log.Debug().Uint32("a", e.A.ID).Uint32("b", e.B.ID).Msg("edge unselected")
}

func main() {
	nptr := flag.Uint("n", 100, "Vertex count")
	dptr := flag.Uint("d", 4, "Target mean degree")
	gptr := flag.Float64("g", 0.5, "Geometric realism in [0,1]: 1 pure Euclidean weight, 0 pure random")
	sptr := flag.Uint64("s", 0, "PRNG seed")
	tptr := flag.Int("t", 0, "Worker count; 0 runs the sequential reference solver")
	aptr := flag.Int("a", 0, "Animation mode: 0 timing only, 1 log edge commits, 2/3 graphical (not supported)")
	vptr := flag.Int("v", 0, "Verbosity: 0 info, 1 debug, 2+ trace")
	flag.Parse()

	utils.SetLoggerConsole(false)
	utils.SetLevel(*vptr)

	if *aptr < 0 || *aptr > 3 {
		fmt.Fprintln(os.Stderr, "animation mode must be 0, 1, 2, or 3")
		os.Exit(1)
	}
	if *aptr == 2 || *aptr == 3 {
		fmt.Fprintln(os.Stderr, "animation mode 2/3 (graphical) is not supported outside the core")
		os.Exit(1)
	}

	g := generator.Generate(generator.Params{
		N:     uint32(*nptr),
		Seed:  *sptr,
		D:     uint32(*dptr),
		Gamma: *gptr,
	})

	var hooks observer.Hooks = observer.Nop{}
	if *aptr == 1 {
		hooks = animationHooks{}
	}

	sig := coordination.New()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		if _, ok := <-stop; ok {
			log.Warn().Msg("interrupt received, cancelling solve")
			sig.Cancel()
		}
	}()

	var watch utils.Watch
	watch.Start()
	var err error
	if *tptr <= 0 {
		err = refsolver.Solve(g, hooks, sig)
	} else {
		err = delta.Solve(g, *tptr, uint32(*dptr), hooks, sig)
	}
	elapsed := watch.Elapsed()
	signal.Stop(stop)
	close(stop)

	if err != nil {
		fmt.Fprintln(os.Stderr, "solve failed:", err)
		os.Exit(1)
	}

	log.Info().Str("elapsed", elapsed.String()).Msg("solve complete")
	for _, v := range g.Vertices {
		fmt.Printf("%d\t%d\n", v.ID, v.Dist)
	}
}
