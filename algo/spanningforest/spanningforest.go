// Package spanningforest builds a low-to-high spanning forest: every
// vertex starts as a candidate root, and the edge-map kernel races every
// vertex's neighbors to CAS-claim it as a child, exactly the same
// "first writer wins" idiom as algo/bfs but seeded from every vertex at
// once instead of a single source — the multi-source generalization the
// spec's component table calls out for this driver.
package spanningforest

import (
	"sync/atomic"

	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/edgemap"
	"github.com/dhulipala/ligra-go/graph"
	"github.com/dhulipala/ligra-go/vertexsubset"
)

// Result is the output of a completed spanning-forest run. Parent[v] ==
// codec.VMax marks v as the root of its tree.
type Result struct {
	Parent   []codec.VId
	Rounds   int
	NumTrees int
}

type forestF[W any] struct {
	parent []codec.VId
}

func (f *forestF[W]) Update(s, d codec.VId, _ W) edgemap.Maybe[codec.Unit] {
	if f.parent[d] == codec.VMax {
		f.parent[d] = s
		return edgemap.Some(codec.Unit{})
	}
	return edgemap.None[codec.Unit]()
}

func (f *forestF[W]) UpdateAtomic(s, d codec.VId, _ W) edgemap.Maybe[codec.Unit] {
	if atomic.CompareAndSwapUint32(&f.parent[d], codec.VMax, s) {
		return edgemap.Some(codec.Unit{})
	}
	return edgemap.None[codec.Unit]()
}

func (f *forestF[W]) Cond(d codec.VId) bool {
	return f.parent[d] == codec.VMax
}

// Run computes a spanning forest of g.
func Run[W any](g *graph.Graph[W], flags edgemap.Flags) *Result {
	n := g.N
	parent := make([]codec.VId, n)
	for i := range parent {
		parent[i] = codec.VMax
	}
	f := &forestF[W]{parent: parent}

	elems := make([]vertexsubset.Elem[codec.Unit], n)
	for i := range elems {
		elems[i] = vertexsubset.Elem[codec.Unit]{V: codec.VId(i)}
	}
	frontier := vertexsubset.FromSparse[codec.Unit](n, elems)

	rounds := 0
	for !frontier.IsEmpty() {
		rounds++
		frontier = edgemap.Run[W, codec.Unit](g, f, frontier, int64(g.M)/20, flags)
	}

	numTrees := 0
	for _, p := range parent {
		if p == codec.VMax {
			numTrees++
		}
	}
	return &Result{Parent: parent, Rounds: rounds, NumTrees: numTrees}
}
