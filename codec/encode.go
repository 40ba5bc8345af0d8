package codec

// edgeRec is a decoded (neighbor, weight) pair, used as scratch storage
// during Pack and Repack.
type edgeRec[W any] struct {
	Ngh VId
	W   W
}

// EncodedSize returns the exact byte length Encode would produce for the
// given (source, nghs, weights) triple, without allocating the output
// buffer — used by Repack to size its scratch space.
func EncodedSize[W any](source VId, nghs []VId, weights []W, wc WeightCodec[W]) int {
	degree := len(nghs)
	if degree == 0 {
		return 0
	}
	b := numBlocks(uint32(degree))
	size := uint32Size + (b-1)*uint32Size
	for i := 0; i < b; i++ {
		lo, hi := blockRange(i, degree)
		size += uint32Size
		size += firstEdgeSize(int64(source), int64(nghs[lo]))
		size += wc.Size(weights[lo])
		last := nghs[lo]
		for k := lo + 1; k < hi; k++ {
			size += edgeSize(nghs[k] - last)
			size += wc.Size(weights[k])
			last = nghs[k]
		}
	}
	return size
}

func blockRange(i, degree int) (lo, hi int) {
	lo = i * ParallelDegree
	hi = lo + ParallelDegree
	if hi > degree {
		hi = degree
	}
	return
}

// encodeIntoBuf writes the full encoded region for (source, nghs,
// weights) into buf, which must be at least EncodedSize(...) bytes long.
func encodeIntoBuf[W any](buf []byte, source VId, nghs []VId, weights []W, wc WeightCodec[W]) {
	degree := len(nghs)
	if degree == 0 {
		return
	}
	b := numBlocks(uint32(degree))
	putUint32(buf, 0, uint32(degree))
	headerSize := uint32Size + (b-1)*uint32Size

	blockByteLen := make([]int, b)
	for i := 0; i < b; i++ {
		lo, hi := blockRange(i, degree)
		sz := uint32Size
		sz += firstEdgeSize(int64(source), int64(nghs[lo]))
		sz += wc.Size(weights[lo])
		last := nghs[lo]
		for k := lo + 1; k < hi; k++ {
			sz += edgeSize(nghs[k] - last)
			sz += wc.Size(weights[k])
			last = nghs[k]
		}
		blockByteLen[i] = sz
	}

	pos := headerSize
	for i := 0; i < b; i++ {
		if i > 0 {
			putUint32(buf, uint32Size+(i-1)*uint32Size, uint32(pos))
		}
		lo, hi := blockRange(i, degree)
		putUint32(buf, pos, uint32(lo))
		off := pos + uint32Size
		off = compressFirstEdge(buf, off, int64(source), int64(nghs[lo]))
		off = wc.Encode(buf, off, weights[lo])
		last := nghs[lo]
		for k := lo + 1; k < hi; k++ {
			off = compressEdge(buf, off, nghs[k]-last)
			off = wc.Encode(buf, off, weights[k])
			last = nghs[k]
		}
		pos += blockByteLen[i]
	}
}

// Encode builds the encoded neighbor region for source's (nghs, weights)
// edge list. nghs must already be sorted ascending, matching every other
// C2 operation's assumption.
func Encode[W any](source VId, nghs []VId, weights []W, wc WeightCodec[W]) []byte {
	size := EncodedSize(source, nghs, weights, wc)
	buf := make([]byte, size)
	encodeIntoBuf(buf, source, nghs, weights, wc)
	return buf
}

// NewRegion builds a ready-to-use Region over a freshly encoded edge
// list.
func NewRegion[W any](source VId, nghs []VId, weights []W, wc WeightCodec[W]) *Region[W] {
	return &Region[W]{
		Bytes:  Encode(source, nghs, weights, wc),
		Source: source,
		Degree: uint32(len(nghs)),
		WC:     wc,
	}
}
