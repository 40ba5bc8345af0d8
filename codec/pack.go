package codec

import (
	"github.com/sirupsen/logrus"

	"github.com/dhulipala/ligra-go/block"
	"github.com/dhulipala/ligra-go/internal/xerrors"
	"github.com/dhulipala/ligra-go/worker"
)

var log = logrus.WithField("component", "codec")

// Pack filters r's edges in place by pred, preserving edge-index order,
// and returns the surviving degree. Filtering happens block-by-block: a
// block's recompressed content can only be the same size or smaller than
// before, so it is safe to rewrite from the block's existing byte
// position without touching block boundaries. If the surviving degree
// drops below a tenth of the virtual degree, Pack calls Repack to reshape
// the region down to a tighter block count.
//
// scratch is reused as encoding scratch space when a Repack is triggered;
// callers running Pack across many vertices from the same worker should
// reuse one Handle rather than allocating a fresh one per call.
//
// The block-local re-encode pass is fanned out through
// worker.ParallelForErr rather than plain ParallelFor: each block's
// recompressed content is checked against that block's original byte
// span as it is written, and the first block found to overrun its span
// (only reachable via a corrupted region, since pred is evaluated once
// per edge and cached in lives before any bytes are rewritten — a
// contract violation per the error taxonomy, not a resource exhaustion)
// is returned as the pack's error instead of silently clobbering the
// next block's bytes.
func (r *Region[W]) Pack(pred func(src, ngh VId, w W) bool, scratch *block.Handle) (uint32, error) {
	if r.Degree == 0 {
		return 0, nil
	}
	vdeg := getUint32(r.Bytes, 0)
	b := r.NumBlocks()

	counts := make([]uint32, b)
	lives := make([][]edgeRec[W], b)
	worker.Default().ParallelFor(0, b, 1, func(_ int, i int) {
		start, end, finger := r.blockBounds(i, b)
		var live []edgeRec[W]
		if start < end {
			ngh, f := eatFirstEdge(r.Bytes, finger, r.Source)
			w, f2 := r.WC.Decode(r.Bytes, f)
			finger = f2
			if pred(r.Source, ngh, w) {
				live = append(live, edgeRec[W]{ngh, w})
			}
			for edgeID := start + 1; edgeID < end; edgeID++ {
				var delta uint32
				delta, finger = eatEdge(r.Bytes, finger)
				ngh += delta
				w, finger = r.WC.Decode(r.Bytes, finger)
				if pred(r.Source, ngh, w) {
					live = append(live, edgeRec[W]{ngh, w})
				}
			}
		}
		lives[i] = live
		counts[i] = uint32(len(live))
	})

	err := worker.Default().ParallelForErr(0, b, 1, func(_ int, i int) error {
		edges := lives[i]
		if len(edges) == 0 {
			return nil
		}
		_, _, finger := r.blockBounds(i, b)
		blockEnd := r.blockByteEnd(i, b)
		off := finger
		off = compressFirstEdge(r.Bytes, off, int64(r.Source), int64(edges[0].Ngh))
		off = r.WC.Encode(r.Bytes, off, edges[0].W)
		last := edges[0].Ngh
		for k := 1; k < len(edges); k++ {
			off = compressEdge(r.Bytes, off, edges[k].Ngh-last)
			off = r.WC.Encode(r.Bytes, off, edges[k].W)
			last = edges[k].Ngh
		}
		if off > blockEnd {
			return xerrors.ContractViolationf("codec: pack wrote %d bytes past block %d's boundary for source %d", off-blockEnd, i, r.Source)
		}
		return nil
	})
	if err != nil {
		log.WithFields(logrus.Fields{"source": r.Source, "block_count": b}).Error("pack overran block boundary")
		return 0, err
	}

	var cum uint32
	for i := 0; i < b; i++ {
		_, _, finger := r.blockBounds(i, b)
		putUint32(r.Bytes, finger-uint32Size, cum)
		cum += counts[i]
	}
	newDegree := cum
	r.Degree = newDegree

	if uint64(newDegree)*10 < uint64(vdeg) {
		r.Repack(newDegree, scratch)
	}
	return newDegree, nil
}

// blockByteEnd returns the byte position one past the end of block i's
// footprint: the next block's start offset, or the region's full length
// for the last block.
func (r *Region[W]) blockByteEnd(i, b int) int {
	if i == b-1 {
		return len(r.Bytes)
	}
	return int(getUint32(r.Bytes, uint32Size+i*uint32Size))
}

// Repack reshapes r down to ceil(survivingDegree/ParallelDegree) blocks,
// decoding its current (already-packed) content and re-encoding it from
// scratch. survivingDegree must equal the number of edges r currently
// decodes to a precision Pack already guarantees.
func (r *Region[W]) Repack(survivingDegree uint32, scratch *block.Handle) {
	if survivingDegree == 0 {
		if len(r.Bytes) >= uint32Size {
			putUint32(r.Bytes, 0, 0)
		}
		r.Degree = 0
		return
	}

	nghs := make([]VId, 0, survivingDegree)
	ws := make([]W, 0, survivingDegree)
	r.Decode(func(_, ngh VId, w W, _ uint32) bool {
		nghs = append(nghs, ngh)
		ws = append(ws, w)
		return true
	})

	needed := EncodedSize(r.Source, nghs, ws, r.WC)
	var buf []byte
	if scratch != nil && cap(scratch.Bytes) >= needed {
		buf = scratch.Bytes[:needed]
	} else {
		buf = make([]byte, needed)
	}
	encodeIntoBuf(buf, r.Source, nghs, ws, r.WC)
	copy(r.Bytes, buf)
	r.Degree = survivingDegree
}
