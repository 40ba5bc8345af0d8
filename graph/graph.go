// Package graph implements the immutable graph representation (C3): a
// compressed-sparse-row graph over per-vertex encoded neighbor regions
// (codec.Region), with the map/reduce/count/pack view the rest of the
// core (vertex subsets, edge-map, bucketing) is built against.
//
// Grounded on graphutils/build_graph.go's CSR-to-adjacency conventions,
// generalized from an uncompressed [][]int adjacency list to a
// compressed, weight-parametric one backed by codec.Region.
package graph

import (
	"github.com/pkg/errors"

	"github.com/dhulipala/ligra-go/block"
	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/worker"
)

// Vertex is a read/pack view onto a single vertex's out- (or in-)
// neighbor region.
type Vertex[W any] struct {
	region *codec.Region[W]
}

// OutDegree returns the vertex's current (post-pack) degree.
func (v Vertex[W]) OutDegree() uint32 {
	if v.region == nil {
		return 0
	}
	return v.region.Degree
}

// NumBlocks returns how many independently-decodable blocks this
// vertex's region is laid out into.
func (v Vertex[W]) NumBlocks() int {
	if v.region == nil {
		return 0
	}
	return v.region.NumBlocks()
}

// GetOutNgh returns the i-th (ngh, weight) pair in edge-index order.
func (v Vertex[W]) GetOutNgh(i uint32) (codec.VId, W) {
	return v.region.GetIth(i)
}

// MapOutNghs invokes f(src, ngh, w) for every out-edge in edge-index
// order; returning false from f short-circuits the rest of the current
// block only.
func (v Vertex[W]) MapOutNghs(f func(src, ngh codec.VId, w W) bool) {
	if v.region == nil {
		return
	}
	v.region.Decode(func(src, ngh codec.VId, w W, _ uint32) bool {
		return f(src, ngh, w)
	})
}

// MapOutNghsParallel is MapOutNghs, fanned out across blocks.
func (v Vertex[W]) MapOutNghsParallel(f func(src, ngh codec.VId, w W) bool) {
	if v.region == nil {
		return
	}
	v.region.DecodeParallel(func(src, ngh codec.VId, w W, _ uint32) bool {
		return f(src, ngh, w)
	})
}

// ReduceOutNghs folds m(src, ngh, w) over every out-edge using mon,
// parallelized across blocks.
func ReduceOutNghs[W, E any](v Vertex[W], m func(src, ngh codec.VId, w W) E, mon codec.Monoid[E]) E {
	if v.region == nil {
		return mon.Identity
	}
	return codec.MapReduce(v.region, m, mon)
}

// CountOutNghs returns the number of out-edges satisfying pred.
func (v Vertex[W]) CountOutNghs(pred func(src, ngh codec.VId, w W) bool) uint32 {
	return ReduceOutNghs(v, func(src, ngh codec.VId, w W) uint32 {
		if pred(src, ngh, w) {
			return 1
		}
		return 0
	}, codec.Monoid[uint32]{Identity: 0, Combine: func(a, b uint32) uint32 { return a + b }})
}

// PackOutNghs filters the vertex's out-edges in place by pred and
// returns the surviving degree. The error return is non-nil only if the
// underlying codec region's recompressed content overran a block's byte
// span — a contract violation, never expected in practice.
func (v Vertex[W]) PackOutNghs(pred func(src, ngh codec.VId, w W) bool, scratch *block.Handle) (uint32, error) {
	if v.region == nil {
		return 0, nil
	}
	return v.region.Pack(pred, scratch)
}

// DecodeBlock decodes a contiguous run of blockCount blocks starting at
// blockID, invoking cb for every (ngh, w) pair visited.
func (v Vertex[W]) DecodeBlock(blockID, blockCount int, cb func(src, ngh codec.VId, w W)) {
	if v.region == nil {
		return
	}
	v.region.DecodeBlockSeq(cb, blockID, blockCount)
}

// Graph is an immutable compressed-sparse-row graph of N vertices and M
// edges, weight-parametric over W. Symmetric graphs share outRegions and
// inRegions (Symmetric is true and inRegions points at the same slice);
// asymmetric graphs carry a distinct transposed region set.
type Graph[W any] struct {
	N          uint32
	M          uint64
	Symmetric  bool
	WC         codec.WeightCodec[W]
	outRegions []*codec.Region[W]
	inRegions  []*codec.Region[W]
}

// New builds a Graph from per-vertex (source, nghs, weights) triples for
// both directions. inRegions may be nil for a symmetric graph, in which
// case out and in share storage.
func New[W any](n uint32, wc codec.WeightCodec[W], out, in []*codec.Region[W]) (*Graph[W], error) {
	if len(out) != int(n) {
		return nil, errors.Errorf("graph: expected %d out-regions, got %d", n, len(out))
	}
	symmetric := in == nil
	if symmetric {
		in = out
	} else if len(in) != int(n) {
		return nil, errors.Errorf("graph: expected %d in-regions, got %d", n, len(in))
	}
	var m uint64
	for _, r := range out {
		if r != nil {
			m += uint64(r.Degree)
		}
	}
	return &Graph[W]{N: n, M: m, Symmetric: symmetric, WC: wc, outRegions: out, inRegions: in}, nil
}

// V returns the out-neighbor view of vertex v.
func (g *Graph[W]) V(v codec.VId) Vertex[W] {
	return Vertex[W]{region: g.outRegions[v]}
}

// VIn returns the in-neighbor view of vertex v (equal to V(v) for a
// symmetric graph).
func (g *Graph[W]) VIn(v codec.VId) Vertex[W] {
	return Vertex[W]{region: g.inRegions[v]}
}

// MapEdges invokes f(u, v, w) for every directed out-edge of the graph,
// parallelized across vertices.
func (g *Graph[W]) MapEdges(f func(u, v codec.VId, w W)) {
	worker.Default().ParallelFor(0, int(g.N), 0, func(_ int, i int) {
		u := codec.VId(i)
		g.V(u).MapOutNghs(func(src, ngh codec.VId, w W) bool {
			f(src, ngh, w)
			return true
		})
	})
}

// FilterGraph returns a new graph containing only the directed edges for
// which pred(u, v, w) holds, used e.g. by k-truss to build a
// low-to-high-rank DAG orientation. The result carries no in-edge
// information (VIn always reports degree 0): an arbitrary edge predicate
// need not be symmetric, and the only consumers of FilterGraph (DAG
// orientations for peeling algorithms) only ever walk out-edges.
func (g *Graph[W]) FilterGraph(pred func(u, v codec.VId, w W) bool) *Graph[W] {
	out := make([]*codec.Region[W], g.N)
	empty := make([]*codec.Region[W], g.N)
	worker.Default().ParallelFor(0, int(g.N), 0, func(_ int, i int) {
		u := codec.VId(i)
		var nghs []codec.VId
		var ws []W
		g.V(u).MapOutNghs(func(src, ngh codec.VId, w W) bool {
			if pred(src, ngh, w) {
				nghs = append(nghs, ngh)
				ws = append(ws, w)
			}
			return true
		})
		if len(nghs) > 0 {
			out[i] = codec.NewRegion(u, nghs, ws, g.WC)
		} else {
			out[i] = &codec.Region[W]{Source: u, WC: g.WC}
		}
		empty[i] = &codec.Region[W]{Source: u, WC: g.WC}
	})
	ng, _ := New(g.N, g.WC, out, empty)
	return ng
}
