// Package edgemap implements the edge-map kernel (C5): frontier
// expansion across a graph, choosing between sparse (push) and dense
// (pull) iteration by comparing the frontier's outgoing edge mass
// against a caller-supplied threshold.
//
// Grounded directly on ligra_light_parallel.go's EdgeMap type: the
// mode-switch comparison (`l+d > em.m/10` there, a caller-supplied
// threshold here), the sparse path's per-source goroutine with a local
// slice merged into a mutex-guarded result under lock, and the dense
// path's per-destination goroutine scanning in-neighbors with an
// early-exit option.
package edgemap

import (
	"sync"
	"sync/atomic"

	"github.com/dhulipala/ligra-go/block"
	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/graph"
	"github.com/dhulipala/ligra-go/vertexsubset"
	"github.com/dhulipala/ligra-go/worker"
)

// VId is re-exported locally so callers need not import codec just for
// the id type.
type VId = codec.VId

// Maybe is the data-carrying edge-map's sum type: Some(value) to accept
// a destination into the output subset with that payload, or None to
// exclude it.
type Maybe[D any] struct {
	Value D
	Ok    bool
}

// Some returns an accepting Maybe.
func Some[D any](v D) Maybe[D] { return Maybe[D]{Value: v, Ok: true} }

// None returns a rejecting Maybe.
func None[D any]() Maybe[D] { var z D; return Maybe[D]{Value: z} }

// Mapper is the capability set a caller supplies to Run: the update
// functions to apply along each candidate edge, and a guard deciding
// whether a destination is worth visiting at all.
type Mapper[W, D any] interface {
	// Update applies sequentially (dense pull mode, one task owns d).
	Update(s, d VId, w W) Maybe[D]
	// UpdateAtomic applies under concurrent contention (sparse push mode,
	// or dense pull with DenseForward set) and must be safe to call
	// concurrently for the same d from different s.
	UpdateAtomic(s, d VId, w W) Maybe[D]
	// Cond reports whether d should be considered at all; once false, d
	// is skipped without any Update/UpdateAtomic call.
	Cond(d VId) bool
}

// Flags are the edge-map scheduling hints from spec section 4.5.
// SparseBlocked and DenseParallel only change how the kernel walks the
// edges. NoDense forces sparse mode. DenseForward makes dense mode call
// UpdateAtomic for every in-neighbor in S instead of stopping at the first
// accepted one. PackEdges (sparse mode only) removes the accepted edges
// from each source's out-list. NoOutput makes Run return an empty subset.
type Flags struct {
	SparseBlocked bool
	DenseParallel bool
	DenseForward  bool
	NoDense       bool
	PackEdges     bool
	NoOutput      bool
}

// Run computes edge_map(G, F, S, threshold, flags). threshold < 0 forces
// sparse mode unconditionally (the "−1 to force sparse" convention from
// spec section 4.5); otherwise dense mode is used when
// |S| + outEdges(S) > threshold.
func Run[W, D any](g *graph.Graph[W], f Mapper[W, D], s *vertexsubset.VertexSubset[D], threshold int64, flags Flags) *vertexsubset.VertexSubset[D] {
	useDense := false
	if threshold >= 0 && !flags.NoDense {
		outEdges := outDegreeSum(g, s)
		if int64(s.Size())+outEdges > threshold {
			useDense = true
		}
	}

	var result *vertexsubset.VertexSubset[D]
	if useDense {
		result = denseMap(g, f, s, g.N, flags)
	} else {
		result = sparseMap(g, f, s, flags)
	}
	if flags.NoOutput {
		return vertexsubset.Empty[D](g.N)
	}
	return result
}

func outDegreeSum[W, D any](g *graph.Graph[W], s *vertexsubset.VertexSubset[D]) int64 {
	elems := s.ToSparse()
	var total int64
	worker.Default().ParallelFor(0, len(elems), 0, func(_ int, i int) {
		atomic.AddInt64(&total, int64(g.V(elems[i].V).OutDegree()))
	})
	return total
}

var (
	packAllocOnce sync.Once
	packAlloc     *block.Allocator
)

// packScratchAllocator lazily builds the process-wide scratch allocator
// PackEdges uses to amortize Repack's scratch-buffer needs (C1 wired
// into C5, exactly as the contract's "pack_edges ... see C3" cross
// reference implies: the edge-map's pack flag drives C3's pack, which in
// turn drives C2's Repack, which needs C1's block scratch).
func packScratchAllocator() *block.Allocator {
	packAllocOnce.Do(func() {
		packAlloc = block.New(1<<16, worker.NumWorkers()*4, block.WithListLength(4))
	})
	return packAlloc
}

func sparseMap[W, D any](g *graph.Graph[W], f Mapper[W, D], s *vertexsubset.VertexSubset[D], flags Flags) *vertexsubset.VertexSubset[D] {
	elems := s.ToSparse()
	var mu sync.Mutex
	var out []vertexsubset.Elem[D]

	var alloc *block.Allocator
	if flags.PackEdges {
		alloc = packScratchAllocator()
	}

	worker.Default().ParallelFor(0, len(elems), 0, func(wid int, i int) {
		src := elems[i].V
		var local []vertexsubset.Elem[D]
		var accepted map[VId]bool
		if flags.PackEdges {
			accepted = make(map[VId]bool)
		}

		visit := func(s2, d VId, w W) {
			if !f.Cond(d) {
				return
			}
			if m := f.UpdateAtomic(s2, d, w); m.Ok {
				local = append(local, vertexsubset.Elem[D]{V: d, X: m.Value})
				if flags.PackEdges {
					accepted[d] = true
				}
			}
		}

		if flags.SparseBlocked {
			nb := g.V(src).NumBlocks()
			for b := 0; b < nb; b++ {
				g.V(src).DecodeBlock(b, 1, visit)
			}
		} else {
			g.V(src).MapOutNghs(func(s2, d VId, w W) bool {
				visit(s2, d, w)
				return true
			})
		}

		if flags.PackEdges && len(accepted) > 0 {
			h := alloc.Alloc(wid)
			_, err := g.V(src).PackOutNghs(func(_, d VId, _ W) bool { return !accepted[d] }, h)
			alloc.Free(wid, h)
			if err != nil {
				panic(err)
			}
		}

		if len(local) > 0 {
			mu.Lock()
			out = append(out, local...)
			mu.Unlock()
		}
	})

	out = dedupSparse(out)
	return vertexsubset.FromSparse(g.N, out)
}

// dedupSparse removes duplicate destinations accepted from more than one
// source, keeping the first occurrence — mirrors the contract's
// "duplicates are removed via a per-source dedup pass" note.
func dedupSparse[D any](elems []vertexsubset.Elem[D]) []vertexsubset.Elem[D] {
	seen := make(map[VId]bool, len(elems))
	out := elems[:0]
	for _, e := range elems {
		if seen[e.V] {
			continue
		}
		seen[e.V] = true
		out = append(out, e)
	}
	return out
}

func denseMap[W, D any](g *graph.Graph[W], f Mapper[W, D], s *vertexsubset.VertexSubset[D], n uint32, flags Flags) *vertexsubset.VertexSubset[D] {
	membership := s.ToDense()
	result := make([]bool, n)
	resultD := make([]D, n)

	worker.Default().ParallelFor(0, int(n), 0, func(_ int, i int) {
		d := VId(i)
		if !f.Cond(d) {
			return
		}
		var mu sync.Mutex
		accept := false
		var val D

		visit := func(dd, s2 VId, w W) bool {
			if !membership[s2] {
				return true
			}
			if flags.DenseForward {
				if m := f.UpdateAtomic(s2, dd, w); m.Ok {
					mu.Lock()
					accept = true
					val = m.Value
					mu.Unlock()
				}
				return true
			}
			mu.Lock()
			already := accept
			mu.Unlock()
			if already {
				return false
			}
			if m := f.Update(s2, dd, w); m.Ok {
				mu.Lock()
				accept = true
				val = m.Value
				mu.Unlock()
				return false
			}
			return true
		}

		if flags.DenseParallel {
			g.VIn(d).MapOutNghsParallel(visit)
		} else {
			g.VIn(d).MapOutNghs(visit)
		}
		result[i] = accept
		resultD[i] = val
	})

	return vertexsubset.FromDense(n, result, func(v VId) D { return resultD[v] })
}
