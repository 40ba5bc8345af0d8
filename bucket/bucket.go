// Package bucket implements the bucketing structure (C6): a sliding
// window of K open priority buckets plus an overflow set, supporting
// extract-min-bucket (NextBucket) and batched priority reassignment
// (UpdateBuckets) — the structure wBFS and k-truss peel against instead
// of a plain priority queue, since both need "give me everything at the
// current priority layer" rather than one id at a time.
//
// Grounded on original_source/benchmark/wBFS.h's usage of
// make_vertex_buckets/next_bucket/update_buckets/get_bucket (the
// bucket.h header itself wasn't in the retrieval pack; this
// reconstructs its contract from that call site plus spec section 4.6).
package bucket

// Direction selects whether increasing or decreasing raw priority values
// are extracted first.
type Direction bool

const (
	Increasing Direction = true
	Decreasing Direction = false
)

// InfinityPriority is the sentinel raw priority meaning "never scheduled
// in any bucket" (p_0 returning it excludes an id entirely).
const InfinityPriority = ^uint32(0)

// Null is the bucket id NextBucket returns once every finite-priority id
// has been extracted.
const Null = ^uint32(0)

// Bucket is one priority layer handed back by NextBucket: its bucket id
// and the (unordered) ids that share it.
type Bucket struct {
	ID          uint32
	Identifiers []uint32
}

// Update is one (id, new raw priority) pair passed to UpdateBuckets;
// Priority == InfinityPriority removes id from the structure entirely.
type Update struct {
	ID       uint32
	Priority uint32
}

// Structure is a bucketing structure over ids [0, n). The zero value is
// not usable; construct with New.
type Structure struct {
	n   uint32
	k   uint32
	dir Direction
	cur uint32

	open     [][]uint32
	overflow map[uint32][]uint32
	rankOf   map[uint32]uint32
}

// New builds a Structure over n ids, with a window of k open buckets, in
// the given direction. p0 assigns each id's initial raw priority; ids
// for which p0 returns InfinityPriority are never scheduled.
func New(n, k uint32, dir Direction, p0 func(id uint32) uint32) *Structure {
	b := &Structure{
		n:        n,
		k:        k,
		dir:      dir,
		open:     make([][]uint32, k),
		overflow: make(map[uint32][]uint32),
		rankOf:   make(map[uint32]uint32, n),
	}
	for id := uint32(0); id < n; id++ {
		p := p0(id)
		if p == InfinityPriority {
			continue
		}
		b.insert(id, b.rank(p))
	}
	return b
}

// rank maps a raw priority to the internal monotonically-increasing
// sweep coordinate: identity for Increasing, bitwise complement for
// Decreasing (uint32 complement reverses ordering exactly).
func (b *Structure) rank(p uint32) uint32 {
	if b.dir == Increasing {
		return p
	}
	return ^p
}

func (b *Structure) unrank(r uint32) uint32 {
	if b.dir == Increasing {
		return r
	}
	return ^r
}

func (b *Structure) insert(id, r uint32) {
	if r < b.cur {
		r = b.cur
	}
	b.rankOf[id] = r
	if r < b.cur+b.k {
		b.open[r-b.cur] = append(b.open[r-b.cur], id)
	} else {
		b.overflow[r] = append(b.overflow[r], id)
	}
}

func (b *Structure) remove(id, r uint32) {
	var bucket map[uint32][]uint32
	var slot []uint32
	inWindow := r < b.cur+b.k
	if inWindow {
		slot = b.open[r-b.cur]
	} else {
		slot = b.overflow[r]
		bucket = b.overflow
	}
	for i, v := range slot {
		if v == id {
			slot[i] = slot[len(slot)-1]
			slot = slot[:len(slot)-1]
			break
		}
	}
	if inWindow {
		b.open[r-b.cur] = slot
	} else if len(slot) == 0 {
		delete(bucket, r)
	} else {
		bucket[r] = slot
	}
}

// GetBucket computes the destination bucket id for a move from oldP to
// newP, clamped forward to the current sweep position: an update that
// would land behind cur (already extracted) is instead scheduled into
// the current bucket, since the sweep can't move backward. newP ==
// InfinityPriority returns Null (remove from scheduling).
func (b *Structure) GetBucket(oldP, newP uint32) uint32 {
	if newP == InfinityPriority {
		return Null
	}
	r := b.rank(newP)
	if r < b.cur {
		r = b.cur
	}
	return b.unrank(r)
}

// UpdateBuckets applies a batch of (id, new priority) reassignments.
// Single-threaded by contract (called between edge-map rounds).
func (b *Structure) UpdateBuckets(updates []Update) {
	for _, u := range updates {
		if oldR, had := b.rankOf[u.ID]; had {
			b.remove(u.ID, oldR)
			delete(b.rankOf, u.ID)
		}
		if u.Priority == InfinityPriority {
			continue
		}
		b.insert(u.ID, b.rank(u.Priority))
	}
}

func (b *Structure) hasAnyRemaining() bool {
	if len(b.overflow) > 0 {
		return true
	}
	for _, l := range b.open {
		if len(l) > 0 {
			return true
		}
	}
	return false
}

// advance slides the window forward by steps ranks (at least 1),
// dropping now-exhausted slots and refilling the window from overflow —
// the "materialization" step from spec section 4.6, done incrementally
// per jump rather than as a single bulk repartition.
func (b *Structure) advance(steps uint32) {
	if steps == 0 {
		steps = 1
	}
	b.cur += steps
	if steps >= b.k {
		for i := range b.open {
			b.open[i] = nil
		}
	} else {
		copy(b.open, b.open[steps:])
		for i := b.k - steps; i < b.k; i++ {
			b.open[i] = nil
		}
	}
	for i := uint32(0); i < b.k; i++ {
		r := b.cur + i
		if ids, ok := b.overflow[r]; ok {
			b.open[i] = ids
			delete(b.overflow, r)
		}
	}
}

// nextNonEmptyRank returns the smallest rank >= cur holding any id,
// across both the open window and the overflow set.
func (b *Structure) nextNonEmptyRank() uint32 {
	best := uint32(0)
	found := false
	for i, l := range b.open {
		if len(l) > 0 {
			r := b.cur + uint32(i)
			if !found || r < best {
				best, found = r, true
			}
		}
	}
	for r := range b.overflow {
		if !found || r < best {
			best, found = r, true
		}
	}
	return best
}

// NextBucket returns the next non-empty bucket in priority order and
// advances past it, or Bucket{ID: Null} once nothing finite-priority
// remains.
func (b *Structure) NextBucket() Bucket {
	for {
		ids := b.open[0]
		if len(ids) > 0 {
			res := Bucket{ID: b.unrank(b.cur), Identifiers: ids}
			for _, id := range ids {
				delete(b.rankOf, id)
			}
			b.open[0] = nil
			b.advance(1)
			return res
		}
		if !b.hasAnyRemaining() {
			return Bucket{ID: Null}
		}
		next := b.nextNonEmptyRank()
		b.advance(next - b.cur)
	}
}
