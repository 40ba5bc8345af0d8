// Package vertexsubset implements C4: a set over [0, n) represented as
// either a sparse sequence of ids or a dense bitmap, with lazy
// conversion between the two. VertexSubset[D] additionally carries a
// payload D per member, used by edge-map's data-carrying variant and by
// the bucketing structure's update primitive.
//
// Grounded on the teacher's frontier representation in
// ligra_light_parallel.go, where a round's frontier is a []int of active
// vertex ids (the sparse case); the dense bitmap side and the D payload
// are generalized in from the spec's explicit sum-type requirement.
package vertexsubset

import "github.com/dhulipala/ligra-go/worker"

// VId is re-exported locally to avoid every caller importing codec just
// for the id type.
type VId = uint32

// VertexSubset is a sum type: either Sparse (an explicit []Elem) or
// Dense (a bitmap over [0, N)), never both at once. Use ToSparse/ToDense
// to materialize the representation an algorithm needs; both are memoized
// so repeated calls don't redo the conversion.
type VertexSubset[D any] struct {
	N uint32

	isDense bool
	sparse  []Elem[D]
	dense   []bool
	denseD  []D // only populated when FromDense is given a payload function

	sparseCache []Elem[D]
	denseCache  []bool
}

// Elem is one member of a sparse VertexSubset along with its payload.
type Elem[D any] struct {
	V VId
	X D
}

// Singleton returns a VertexSubset containing exactly v, with payload x.
func Singleton[D any](n uint32, v VId, x D) *VertexSubset[D] {
	return &VertexSubset[D]{N: n, sparse: []Elem[D]{{V: v, X: x}}}
}

// FromSparse returns a VertexSubset over the given explicit (possibly
// unsorted) sequence of members.
func FromSparse[D any](n uint32, elems []Elem[D]) *VertexSubset[D] {
	return &VertexSubset[D]{N: n, sparse: elems}
}

// FromDense returns a VertexSubset over a bitmap of length n; member
// i's payload is x if bitmap[i] is set.
func FromDense[D any](n uint32, bitmap []bool, x func(VId) D) *VertexSubset[D] {
	vs := &VertexSubset[D]{N: n, isDense: true, dense: bitmap}
	if x != nil {
		d := make([]D, n)
		worker.Default().ParallelFor(0, int(n), 0, func(_ int, i int) {
			if bitmap[i] {
				d[i] = x(VId(i))
			}
		})
		vs.denseD = d
	}
	return vs
}

// Empty returns a VertexSubset with no members.
func Empty[D any](n uint32) *VertexSubset[D] {
	return &VertexSubset[D]{N: n, sparse: nil}
}

// Dense reports whether the subset is currently materialized in dense
// (bitmap) form, without forcing a conversion — this is what an edge-map
// consumer reads to choose iteration direction.
func (vs *VertexSubset[D]) Dense() bool { return vs.isDense }

// Size returns the number of members.
func (vs *VertexSubset[D]) Size() int {
	if vs.isDense {
		ct := 0
		for _, b := range vs.dense {
			if b {
				ct++
			}
		}
		return ct
	}
	return len(vs.sparse)
}

// IsEmpty reports whether the subset has no members — the normal
// termination signal for a frontier-driven algorithm loop.
func (vs *VertexSubset[D]) IsEmpty() bool { return vs.Size() == 0 }

// Contains reports whether v is a member.
func (vs *VertexSubset[D]) Contains(v VId) bool {
	if vs.isDense {
		return int(v) < len(vs.dense) && vs.dense[v]
	}
	for _, e := range vs.sparse {
		if e.V == v {
			return true
		}
	}
	return false
}

// ToSparse returns (and caches) the subset materialized as an explicit
// member list. The dense-to-sparse pack is chunked across workers, each
// collecting its own local run before a sequential merge — the same
// chunk-local-then-merge shape as parlay_go.PackIndex, generalized here
// to carry each member's D payload alongside its id instead of just the
// id.
func (vs *VertexSubset[D]) ToSparse() []Elem[D] {
	if !vs.isDense {
		return vs.sparse
	}
	if vs.sparseCache != nil {
		return vs.sparseCache
	}
	vs.sparseCache = packDense(vs.dense, vs.denseD)
	return vs.sparseCache
}

// packDense packs the set bits of dense into an Elem slice, pairing each
// with its payload from denseD (nil denseD yields the zero payload).
func packDense[D any](dense []bool, denseD []D) []Elem[D] {
	n := len(dense)
	if n == 0 {
		return nil
	}
	workers := worker.NumWorkers()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	locals := make([][]Elem[D], workers)

	worker.Default().ParallelFor(0, workers, 1, func(_ int, w int) {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			return
		}
		var local []Elem[D]
		for i := lo; i < hi; i++ {
			if dense[i] {
				var d D
				if denseD != nil {
					d = denseD[i]
				}
				local = append(local, Elem[D]{V: VId(i), X: d})
			}
		}
		locals[w] = local
	})

	total := 0
	for _, l := range locals {
		total += len(l)
	}
	out := make([]Elem[D], 0, total)
	for _, l := range locals {
		out = append(out, l...)
	}
	return out
}

// ToDense returns (and caches) the subset materialized as a bitmap of
// length N.
func (vs *VertexSubset[D]) ToDense() []bool {
	if vs.isDense {
		return vs.dense
	}
	if vs.denseCache != nil {
		return vs.denseCache
	}
	bm := make([]bool, vs.N)
	for _, e := range vs.sparse {
		bm[e.V] = true
	}
	vs.denseCache = bm
	return bm
}

// Map invokes f(v, x) for every member, in whichever representation the
// subset currently holds (no forced conversion).
func (vs *VertexSubset[D]) Map(f func(v VId, x D)) {
	if vs.isDense {
		for i, b := range vs.dense {
			if b {
				var d D
				if vs.denseD != nil {
					d = vs.denseD[i]
				}
				f(VId(i), d)
			}
		}
		return
	}
	for _, e := range vs.sparse {
		f(e.V, e.X)
	}
}

// GetFnRepr returns an accessor suitable for the bucketing structure's
// batched update primitive: a function from an id to its current payload
// plus a membership check, without forcing a representation conversion.
func (vs *VertexSubset[D]) GetFnRepr() func(v VId) (D, bool) {
	if vs.isDense {
		return func(v VId) (D, bool) {
			if int(v) >= len(vs.dense) || !vs.dense[v] {
				var zero D
				return zero, false
			}
			if vs.denseD != nil {
				return vs.denseD[v], true
			}
			var zero D
			return zero, true
		}
	}
	idx := make(map[VId]D, len(vs.sparse))
	for _, e := range vs.sparse {
		idx[e.V] = e.X
	}
	return func(v VId) (D, bool) {
		x, ok := idx[v]
		return x, ok
	}
}
