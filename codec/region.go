package codec

import (
	"sort"

	"github.com/dhulipala/ligra-go/worker"
)

// Region is a single vertex's encoded neighbor region: a virtual degree,
// a table of block byte-offsets, and the blocks themselves. Source is the
// vertex this region belongs to; Degree is its current (live) out- or
// in-degree, which may be less than the virtual degree stored in Bytes
// after a Pack.
type Region[W any] struct {
	Bytes  []byte
	Source VId
	Degree uint32
	WC     WeightCodec[W]
}

// NumBlocks returns B, the number of independently-decodable blocks this
// region is laid out into.
func (r *Region[W]) NumBlocks() int {
	if r.Degree == 0 {
		return 0
	}
	return numBlocks(getUint32(r.Bytes, 0))
}

// blockBounds returns the [start, end) cumulative edge-index range
// covered by block i, and the byte position of its first edge (just past
// the block's own cumulative-start field).
func (r *Region[W]) blockBounds(i, b int) (start, end uint32, finger int) {
	headerSize := uint32Size + (b-1)*uint32Size
	var fingerBase int
	if i > 0 {
		fingerBase = int(getUint32(r.Bytes, uint32Size+(i-1)*uint32Size))
	} else {
		fingerBase = headerSize
	}
	start = getUint32(r.Bytes, fingerBase)
	if i == b-1 {
		end = r.Degree
	} else {
		next := getUint32(r.Bytes, uint32Size+i*uint32Size)
		end = getUint32(r.Bytes, int(next))
	}
	finger = fingerBase + uint32Size
	return
}

// DecodeFunc is invoked for every (ngh, w) pair in increasing edge-index
// order; returning false stops the rest of the current block but leaves
// later blocks unaffected.
type DecodeFunc[W any] func(src, ngh VId, w W, edgeIndex uint32) bool

func (r *Region[W]) decodeRange(cb DecodeFunc[W], lo, hi, b int) {
	for i := lo; i < hi; i++ {
		start, end, finger := r.blockBounds(i, b)
		if start >= end {
			continue
		}
		ngh, f := eatFirstEdge(r.Bytes, finger, r.Source)
		w, f2 := r.WC.Decode(r.Bytes, f)
		finger = f2
		if !cb(r.Source, ngh, w, start) {
			continue
		}
		for edgeID := start + 1; edgeID < end; edgeID++ {
			var delta uint32
			delta, finger = eatEdge(r.Bytes, finger)
			ngh += delta
			w, finger = r.WC.Decode(r.Bytes, finger)
			if !cb(r.Source, ngh, w, edgeID) {
				break
			}
		}
	}
}

// Decode invokes cb for every (ngh, w) pair sequentially, in edge-index
// order across all blocks.
func (r *Region[W]) Decode(cb DecodeFunc[W]) {
	if r.Degree == 0 {
		return
	}
	b := r.NumBlocks()
	r.decodeRange(cb, 0, b, b)
}

// DecodeParallel behaves like Decode but fans out over blocks beyond the
// first, one goroutine per block, once there are more than two blocks —
// mirroring the original's "parallel_for(1, num_blocks, ...)" scheduling.
func (r *Region[W]) DecodeParallel(cb DecodeFunc[W]) {
	if r.Degree == 0 {
		return
	}
	b := r.NumBlocks()
	if b <= 2 {
		r.decodeRange(cb, 0, b, b)
		return
	}
	r.decodeRange(cb, 0, 1, b)
	worker.Default().ParallelFor(1, b, 1, func(_ int, i int) {
		r.decodeRange(cb, i, i+1, b)
	})
}

// BlockDecodeFunc is invoked for every (ngh, w) pair decoded by
// DecodeBlockSeq; it carries no edge index and no short-circuit signal,
// matching the edge-map block scheduler's "just visit everything in this
// chunk" usage.
type BlockDecodeFunc[W any] func(src, ngh VId, w W)

// DecodeBlockSeq decodes blockCount contiguous blocks starting at
// blockNum, used by the edge-map kernel's per-block work scheduler
// (sparse_blocked) to hand out roughly-equal chunks of work regardless of
// how degree is distributed across vertices.
func (r *Region[W]) DecodeBlockSeq(cb BlockDecodeFunc[W], blockNum, blockCount int) {
	if r.Degree == 0 {
		return
	}
	b := r.NumBlocks()
	hi := blockNum + blockCount
	if hi > b {
		hi = b
	}
	r.decodeRange(func(src, ngh VId, w W, _ uint32) bool {
		cb(src, ngh, w)
		return true
	}, blockNum, hi, b)
}

// Monoid is an associative reduction over E with an identity element.
type Monoid[E any] struct {
	Identity E
	Combine  func(a, b E) E
}

// MapReduce folds m(src, ngh, w) over every edge of r using mon,
// parallelized across blocks: each block reduces independently into a
// per-block slot, then the per-block results are combined sequentially.
func MapReduce[W, E any](r *Region[W], m func(src, ngh VId, w W) E, mon Monoid[E]) E {
	if r.Degree == 0 {
		return mon.Identity
	}
	b := r.NumBlocks()
	outputs := make([]E, b)
	worker.Default().ParallelFor(0, b, 1, func(_ int, i int) {
		start, end, finger := r.blockBounds(i, b)
		cur := mon.Identity
		if start < end {
			ngh, f := eatFirstEdge(r.Bytes, finger, r.Source)
			w, f2 := r.WC.Decode(r.Bytes, f)
			finger = f2
			cur = mon.Combine(cur, m(r.Source, ngh, w))
			for edgeID := start + 1; edgeID < end; edgeID++ {
				var delta uint32
				delta, finger = eatEdge(r.Bytes, finger)
				ngh += delta
				w, finger = r.WC.Decode(r.Bytes, finger)
				cur = mon.Combine(cur, m(r.Source, ngh, w))
			}
		}
		outputs[i] = cur
	})
	res := mon.Identity
	for _, v := range outputs {
		res = mon.Combine(res, v)
	}
	return res
}

// GetIth returns the i-th (ngh, w) pair in edge-index order, found by
// binary-searching the block cumulative-end offsets and then scanning
// sequentially within the winning block.
func (r *Region[W]) GetIth(i uint32) (VId, W) {
	b := r.NumBlocks()
	blockIdx := sort.Search(b, func(k int) bool {
		_, end, _ := r.blockBounds(k, b)
		return end > i
	})
	start, _, finger := r.blockBounds(blockIdx, b)
	ngh, f := eatFirstEdge(r.Bytes, finger, r.Source)
	w, f2 := r.WC.Decode(r.Bytes, f)
	finger = f2
	if i == start {
		return ngh, w
	}
	for edgeID := start + 1; edgeID <= i; edgeID++ {
		var delta uint32
		delta, finger = eatEdge(r.Bytes, finger)
		ngh += delta
		w, finger = r.WC.Decode(r.Bytes, finger)
	}
	return ngh, w
}

// Iter is a stateful forward-only cursor over a region's edges, used by
// Intersect/IntersectF where a full Decode callback would be awkward.
type Iter[W any] struct {
	r           *Region[W]
	b           int
	curBlock    int
	curBlockDeg uint32
	posInBlock  uint32
	finger      int
	lastNgh     VId
	lastW       W
	readTotal   uint32
}

// NewIter constructs an Iter positioned at the region's first edge (if
// any).
func NewIter[W any](r *Region[W]) *Iter[W] {
	it := &Iter[W]{r: r}
	if r.Degree == 0 {
		return it
	}
	it.b = r.NumBlocks()
	for blk := 0; blk < it.b; blk++ {
		start, end, finger := r.blockBounds(blk, it.b)
		if start < end {
			ngh, f := eatFirstEdge(r.Bytes, finger, r.Source)
			w, f2 := r.WC.Decode(r.Bytes, f)
			it.curBlock = blk
			it.curBlockDeg = end - start
			it.posInBlock = 1
			it.finger = f2
			it.lastNgh = ngh
			it.lastW = w
			it.readTotal = 1
			break
		}
	}
	return it
}

// Cur returns the edge the cursor currently sits on.
func (it *Iter[W]) Cur() (VId, W) { return it.lastNgh, it.lastW }

// HasNext reports whether Next can be called again.
func (it *Iter[W]) HasNext() bool { return it.readTotal < it.r.Degree }

// Next advances the cursor and returns the new current edge.
func (it *Iter[W]) Next() (VId, W) {
	if it.posInBlock == it.curBlockDeg {
		for {
			it.curBlock++
			start, end, finger := it.r.blockBounds(it.curBlock, it.b)
			if start < end {
				it.curBlockDeg = end - start
				ngh, f := eatFirstEdge(it.r.Bytes, finger, it.r.Source)
				w, f2 := it.r.WC.Decode(it.r.Bytes, f)
				it.lastNgh = ngh
				it.lastW = w
				it.finger = f2
				it.posInBlock = 1
				break
			}
		}
	} else {
		var delta uint32
		delta, it.finger = eatEdge(it.r.Bytes, it.finger)
		it.lastNgh += delta
		it.lastW, it.finger = it.r.WC.Decode(it.r.Bytes, it.finger)
		it.posInBlock++
	}
	it.readTotal++
	return it.lastNgh, it.lastW
}

// IntersectF merge-intersects a's and b's sorted neighbor lists, calling
// f(a.Source, b.Source, sharedNgh) on every match, and returns the number
// of matches.
func IntersectF[W any](a, b *Region[W], f func(aSrc, bSrc, shared VId)) int {
	if a.Degree == 0 || b.Degree == 0 {
		return 0
	}
	ia, ib := NewIter(a), NewIter(b)
	i, j := uint32(0), uint32(0)
	ct := 0
	e1, _ := ia.Cur()
	e2, _ := ib.Cur()
	for i < a.Degree && j < b.Degree {
		switch {
		case e1 == e2:
			f(a.Source, b.Source, e1)
			ct++
			i++
			j++
			if i < a.Degree {
				e1, _ = ia.Next()
			}
			if j < b.Degree {
				e2, _ = ib.Next()
			}
		case e1 < e2:
			i++
			if i < a.Degree {
				e1, _ = ia.Next()
			}
		default:
			j++
			if j < b.Degree {
				e2, _ = ib.Next()
			}
		}
	}
	return ct
}

// Intersect merge-intersects a's and b's sorted neighbor lists and
// returns the number of shared neighbors.
func Intersect[W any](a, b *Region[W]) int {
	return IntersectF(a, b, func(VId, VId, VId) {})
}
