package graph

import (
	"sort"

	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/worker"
)

// FromCSR builds a Graph from an uncompressed CSR layout: offsets[0..n]
// is an (n+1)-length prefix sum of degrees, edges[0..m) holds the flat
// neighbor array, and weights[0..m) (nil for Unit-weighted graphs) holds
// the matching per-edge weight, each vertex's slice assumed pre-sorted.
// Grounded on graphutils/build_graph.go's BuildAdjFromCSR, generalized
// from a bare [][]int adjacency list to per-vertex codec.Region
// encoding. symmetric selects whether the CSR already represents both
// directions (out shared as in) or needs its in-regions built out via a
// transpose pass.
func FromCSR[W any](offsets []uint64, edges []codec.VId, weights []W, wc codec.WeightCodec[W], symmetric bool) (*Graph[W], error) {
	n := uint32(len(offsets) - 1)
	out := make([]*codec.Region[W], n)
	worker.Default().ParallelFor(0, int(n), 0, func(_ int, i int) {
		u := codec.VId(i)
		lo, hi := offsets[i], offsets[i+1]
		nghs := edges[lo:hi]
		var ws []W
		if weights != nil {
			ws = weights[lo:hi]
		} else {
			ws = make([]W, hi-lo)
		}
		if len(nghs) == 0 {
			out[i] = &codec.Region[W]{Source: u, WC: wc}
			return
		}
		out[i] = codec.NewRegion(u, nghs, ws, wc)
	})
	g, err := New(n, wc, out, nil)
	if err != nil {
		return nil, err
	}
	if symmetric {
		return g, nil
	}
	g.Symmetric = false
	g.inRegions = buildInRegions(g)
	return g, nil
}

// Transpose builds the in-neighbor regions for an asymmetric graph from
// its out-edges, grounded on graphutils/build_graph.go's TransposeAdj
// (there expressed as a sequential adjacency-list transpose; here done
// via a parallel bucket-by-destination pass since out-degree can be
// wildly skewed across a real graph).
func Transpose[W any](g *Graph[W]) *Graph[W] {
	if g.Symmetric {
		return g
	}
	return &Graph[W]{N: g.N, M: g.M, Symmetric: false, WC: g.WC, outRegions: g.outRegions, inRegions: buildInRegions(g)}
}

// buildInRegions computes g's in-neighbor regions from its out-edges via
// a parallel bucket-by-destination pass.
func buildInRegions[W any](g *Graph[W]) []*codec.Region[W] {
	type rec struct {
		src codec.VId
		w   W
	}
	buckets := make([][]rec, g.N)
	for u := codec.VId(0); u < g.N; u++ {
		g.V(u).MapOutNghs(func(src, ngh codec.VId, w W) bool {
			buckets[ngh] = append(buckets[ngh], rec{src, w})
			return true
		})
	}
	in := make([]*codec.Region[W], g.N)
	worker.Default().ParallelFor(0, int(g.N), 0, func(_ int, i int) {
		v := codec.VId(i)
		recs := buckets[i]
		if len(recs) == 0 {
			in[i] = &codec.Region[W]{Source: v, WC: g.WC}
			return
		}
		sort.Slice(recs, func(a, b int) bool { return recs[a].src < recs[b].src })
		nghs := make([]codec.VId, len(recs))
		ws := make([]W, len(recs))
		for k, r := range recs {
			nghs[k] = r.src
			ws[k] = r.w
		}
		in[i] = codec.NewRegion(v, nghs, ws, g.WC)
	})
	return in
}
