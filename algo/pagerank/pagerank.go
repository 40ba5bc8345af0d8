// Package pagerank implements iterative PageRank as a vertex-map/
// edge-map composition: each round recomputes every vertex's
// rank/out-degree contribution, pulls it across every edge via a dense,
// forward edge-map (no atomics needed — dense pull gives each
// destination to exactly one task as long as DenseParallel stays
// unset), then checks L1 convergence.
//
// Grounded on the core's "vertex-map then edge-map" composition pattern
// from spec section 2's data/control-flow description, generalized from
// the frontier-driven, boolean-accept style of bfs/cc into an
// always-dense, always-full-frontier numeric fold. Uses
// gonum.org/v1/gonum/floats for the L1 convergence distance instead of a
// hand-rolled loop, matching the pack's numeric-computation dependency.
package pagerank

import (
	"gonum.org/v1/gonum/floats"

	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/edgemap"
	"github.com/dhulipala/ligra-go/graph"
	"github.com/dhulipala/ligra-go/vertexsubset"
	"github.com/dhulipala/ligra-go/worker"
)

// Result is the output of a completed PageRank run.
type Result struct {
	Ranks      []float64
	Iterations int
}

type prF[W any] struct {
	contrib  []float64
	newRanks []float64
}

func (f *prF[W]) Update(s, d codec.VId, _ W) edgemap.Maybe[codec.Unit] {
	f.newRanks[d] += f.contrib[s]
	return edgemap.Some(codec.Unit{})
}

// UpdateAtomic is identical to Update: dense pull mode gives each
// destination to exactly one task, so there is no real concurrent
// contention to guard against as long as DenseParallel is left unset.
func (f *prF[W]) UpdateAtomic(s, d codec.VId, w W) edgemap.Maybe[codec.Unit] {
	return f.Update(s, d, w)
}

func (f *prF[W]) Cond(codec.VId) bool { return true }

const damping = 0.85

// Run computes PageRank over g, stopping once the L1 distance between
// successive rank vectors drops below eps or maxIters rounds have
// elapsed.
func Run[W any](g *graph.Graph[W], eps float64, maxIters int) *Result {
	n := int(g.N)
	base := (1 - damping) / float64(n)

	ranks := make([]float64, n)
	for i := range ranks {
		ranks[i] = 1.0 / float64(n)
	}
	outDeg := make([]float64, n)
	for i := 0; i < n; i++ {
		outDeg[i] = float64(g.V(codec.VId(i)).OutDegree())
	}

	elems := make([]vertexsubset.Elem[codec.Unit], n)
	for i := range elems {
		elems[i] = vertexsubset.Elem[codec.Unit]{V: codec.VId(i)}
	}
	frontier := vertexsubset.FromSparse[codec.Unit](uint32(n), elems)
	flags := edgemap.Flags{DenseForward: true, NoOutput: true}

	iter := 0
	for ; iter < maxIters; iter++ {
		contrib := make([]float64, n)
		worker.Default().ParallelFor(0, n, 0, func(_ int, i int) {
			if outDeg[i] > 0 {
				contrib[i] = ranks[i] / outDeg[i]
			}
		})

		newRanks := make([]float64, n)
		f := &prF[W]{contrib: contrib, newRanks: newRanks}
		edgemap.Run[W, codec.Unit](g, f, frontier, 0, flags)

		worker.Default().ParallelFor(0, n, 0, func(_ int, i int) {
			newRanks[i] = base + damping*newRanks[i]
		})

		diff := floats.Distance(newRanks, ranks, 1)
		ranks = newRanks
		if diff < eps {
			iter++
			break
		}
	}

	return &Result{Ranks: ranks, Iterations: iter}
}
