// Package bfs implements the unweighted multi-round breadth-first-search
// driver: a parent array built up round by round via the edge-map
// kernel, generalized from cluster_bfs.go's bit-parallel multi-seed
// ClusterBFS down to the classic single-source case the spec's S1/S2
// end-to-end scenarios describe (one seed, one parent per vertex, no
// bit-packed seed masks).
//
// The EdgeFunc/CondFunc/frontier-apply split here mirrors
// ClusterBFS.EdgeFunc/CondFunc/FrontierFunc directly: CAS into a shared
// parent array under concurrent contention, gate revisits via a cond
// check, no separate "apply" phase needed since the parent write and the
// frontier-membership decision are the same atomic operation.
package bfs

import (
	"sync/atomic"

	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/edgemap"
	"github.com/dhulipala/ligra-go/graph"
	"github.com/dhulipala/ligra-go/internal/metrics"
	"github.com/dhulipala/ligra-go/vertexsubset"
)

// Result is the output of a completed BFS run.
type Result struct {
	Parents       []codec.VId
	FrontierSizes []int
	Reachable     int
}

type frontierF[W any] struct {
	parents []codec.VId
}

func (f *frontierF[W]) Update(s, d codec.VId, _ W) edgemap.Maybe[codec.Unit] {
	if f.parents[d] == codec.VMax {
		f.parents[d] = s
		return edgemap.Some(codec.Unit{})
	}
	return edgemap.None[codec.Unit]()
}

func (f *frontierF[W]) UpdateAtomic(s, d codec.VId, _ W) edgemap.Maybe[codec.Unit] {
	if atomic.CompareAndSwapUint32(&f.parents[d], codec.VMax, s) {
		return edgemap.Some(codec.Unit{})
	}
	return edgemap.None[codec.Unit]()
}

func (f *frontierF[W]) Cond(d codec.VId) bool {
	return f.parents[d] == codec.VMax
}

// Run performs a single-source BFS from src, returning the parent array
// (src is its own parent), the size of the frontier at each round, and
// the number of reachable vertices.
func Run[W any](g *graph.Graph[W], src codec.VId, flags edgemap.Flags) *Result {
	n := g.N
	parents := make([]codec.VId, n)
	for i := range parents {
		parents[i] = codec.VMax
	}
	parents[src] = src

	f := &frontierF[W]{parents: parents}
	frontier := vertexsubset.Singleton[codec.Unit](n, src, codec.Unit{})

	var sizes []int
	reachable := 1
	for !frontier.IsEmpty() {
		sizes = append(sizes, frontier.Size())
		metrics.FrontierSize.WithLabelValues("bfs").Observe(float64(frontier.Size()))
		threshold := int64(g.M) / 20
		frontier = edgemap.Run[W, codec.Unit](g, f, frontier, threshold, flags)
		reachable += frontier.Size()
	}

	return &Result{Parents: parents, FrontierSizes: sizes, Reachable: reachable}
}
