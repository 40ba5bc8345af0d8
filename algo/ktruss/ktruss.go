// Package ktruss computes the trussness of every edge in an undirected
// graph, stored as the support level k-2: the largest t such that the edge
// survives repeated peeling of edges participating in fewer than t
// triangles.
//
// Grounded on experimental/KTruss.h's three-stage structure (orient the
// graph into a low-to-high-rank DAG via filter_graph, count triangles
// per edge via forward/merge intersection, then peel with a bucketing
// structure keyed by per-edge triangle support) with KTruss_ht's
// sparse-table-backed multi-table collapsed down to a plain map-based
// edge index: a single flat array of discovered (u, v) pairs plus a
// map[edgeKey]id lookup, since this port has no need for the original's
// space-optimized open-addressed multi-table. The peel loop itself
// (next_bucket / decrement / update_buckets) follows KTruss_ht directly.
package ktruss

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dhulipala/ligra-go/bucket"
	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/graph"
	"github.com/dhulipala/ligra-go/worker"
)

// Edge is one undirected edge, canonicalized so U is the lower-rank
// endpoint of its DAG orientation.
type Edge struct {
	U, V codec.VId
}

// Result is the output of a completed k-truss computation. Truss[id]
// gives the trussness of Edges[id]; an edge that never participates in
// any triangle gets trussness 0 (it belongs to no 3-clique, so its
// truss number is degenerate).
type Result struct {
	Edges  []Edge
	Truss  []uint32
	Rounds int
}

type edgeKey struct{ u, v codec.VId }

// neighbors materializes a vertex's out-neighbor ids into a slice,
// preserving the ascending-by-id order the codec region stores them in.
func neighbors[W any](g *graph.Graph[W], v codec.VId) []codec.VId {
	deg := g.V(v).OutDegree()
	out := make([]codec.VId, 0, deg)
	g.V(v).MapOutNghs(func(_, ngh codec.VId, _ W) bool {
		out = append(out, ngh)
		return true
	})
	return out
}

// intersectCommon returns the elements common to two ascending-sorted
// id slices, via a merge scan.
func intersectCommon(a, b []codec.VId) []codec.VId {
	var out []codec.VId
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// computeRank orders vertices by ascending out-degree (ties broken by
// id), matching truss_utils::rankNodes's intent of directing edges from
// low- to high-degree endpoints so the forward triangle-counting scan
// below stays close to linear in the number of triangles.
func computeRank[W any](g *graph.Graph[W]) []uint32 {
	n := int(g.N)
	type dv struct {
		id  codec.VId
		deg uint32
	}
	arr := make([]dv, n)
	for i := 0; i < n; i++ {
		arr[i] = dv{codec.VId(i), g.V(codec.VId(i)).OutDegree()}
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].deg != arr[j].deg {
			return arr[i].deg < arr[j].deg
		}
		return arr[i].id < arr[j].id
	})
	rank := make([]uint32, n)
	for r, e := range arr {
		rank[e.id] = uint32(r)
	}
	return rank
}

const defaultNumBuckets = 16

// Run computes k-truss over g. numBuckets sizes the peeling bucket
// structure's sliding window; 0 selects a default.
func Run[W any](g *graph.Graph[W], numBuckets uint32) *Result {
	if numBuckets == 0 {
		numBuckets = defaultNumBuckets
	}
	n := int(g.N)
	rank := computeRank(g)
	dag := g.FilterGraph(func(u, v codec.VId, _ W) bool { return rank[u] < rank[v] })

	nghCache := make([][]codec.VId, n)
	worker.Default().ParallelFor(0, n, 0, func(_ int, i int) {
		nghCache[i] = neighbors(dag, codec.VId(i))
	})

	var edges []Edge
	edgeID := make(map[edgeKey]uint32)
	for u := 0; u < n; u++ {
		for _, v := range nghCache[u] {
			id := uint32(len(edges))
			edges = append(edges, Edge{U: codec.VId(u), V: v})
			edgeID[edgeKey{codec.VId(u), v}] = id
		}
	}

	support := make([]uint32, len(edges))
	worker.Default().ParallelFor(0, n, 0, func(_ int, i int) {
		u := codec.VId(i)
		un := nghCache[u]
		for _, v := range un {
			common := intersectCommon(un, nghCache[v])
			if len(common) == 0 {
				continue
			}
			atomic.AddUint32(&support[edgeID[edgeKey{u, v}]], uint32(len(common)))
			for _, w := range common {
				atomic.AddUint32(&support[edgeID[edgeKey{u, w}]], 1)
				atomic.AddUint32(&support[edgeID[edgeKey{v, w}]], 1)
			}
		}
	})

	truss := make([]uint32, len(edges))
	removed := make([]bool, len(edges))
	buckets := bucket.New(uint32(len(edges)), numBuckets, bucket.Increasing, func(id uint32) uint32 {
		return support[id]
	})

	finished := 0
	rounds := 0
	for finished < len(edges) {
		bkt := buckets.NextBucket()
		if bkt.ID == bucket.Null {
			break
		}
		ids := bkt.Identifiers
		if len(ids) == 0 {
			continue
		}
		k := bkt.ID
		finished += len(ids)
		rounds++

		for _, id := range ids {
			truss[id] = k
			removed[id] = true
		}
		if k == 0 {
			continue
		}

		var mu sync.Mutex
		decr := make(map[uint32]uint32)
		worker.Default().ParallelFor(0, len(ids), 0, func(_ int, i int) {
			id := ids[i]
			e := edges[id]
			common := intersectCommon(nghCache[e.U], nghCache[e.V])
			if len(common) == 0 {
				return
			}
			local := make(map[uint32]uint32, len(common)*2)
			for _, w := range common {
				uw := edgeID[edgeKey{e.U, w}]
				vw := edgeID[edgeKey{e.V, w}]
				if support[uw] > k && !removed[uw] {
					local[uw]++
				}
				if support[vw] > k && !removed[vw] {
					local[vw]++
				}
			}
			mu.Lock()
			for id, c := range local {
				decr[id] += c
			}
			mu.Unlock()
		})

		updates := make([]bucket.Update, 0, len(decr))
		for id, dec := range decr {
			old := support[id]
			if old <= k || removed[id] {
				continue
			}
			ns := k
			if old-dec > k {
				ns = old - dec
			}
			support[id] = ns
			updates = append(updates, bucket.Update{ID: id, Priority: ns})
		}
		buckets.UpdateBuckets(updates)
	}

	return &Result{Edges: edges, Truss: truss, Rounds: rounds}
}
