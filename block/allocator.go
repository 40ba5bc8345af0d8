// Package block implements the concurrent fixed-size block allocator
// (C1): a per-worker free list backed by a global stack of pre-chained
// lists, used as the substrate for per-worker scratch space in the codec
// and edge-map packages.
//
// It is a direct port of PBBS's block_allocator: each worker keeps a
// private singly-linked free list; when a worker's list empties it pulls
// a whole list (listLength blocks) from a global concurrent stack, and
// when a worker's list grows past 2*listLength it gives half of it back.
// Both operations are therefore amortized O(1).
package block

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dhulipala/ligra-go/internal/metrics"
	"github.com/dhulipala/ligra-go/worker"
)

const (
	// DefaultListLength is the number of blocks chained into one list
	// handed between the global stack and a worker's local list.
	DefaultListLength = 1 << 16
	// DefaultAllocSize is how many blocks Reserve pre-allocates for a
	// freshly constructed Allocator when the caller does not ask for a
	// specific count.
	DefaultAllocSize = 1_000_000
)

// node is one entry of a worker's free list. It carries the actual
// backing bytes for its block alongside the next pointer, so a Handle
// returned by Alloc and later passed back to Free always resolves to the
// same underlying storage.
type node struct {
	data []byte
	next *node
}

// Handle is an opaque fixed-size block checked out of an Allocator. Bytes
// is scratch space of exactly BlockSize() length; its contents are
// undefined across a Free/Alloc cycle (the allocator does not zero
// blocks, matching the teacher's "reuse, don't clear" scratch-space
// idiom in parlay_go).
type Handle struct {
	Bytes []byte
	n     *node
}

// localList is a worker's private free list, padded to a cache line to
// avoid false sharing between workers.
type localList struct {
	sz   int
	head *node
	mid  *node
	_pad [64 - 3*8]byte
}

// concurrentStack is a mutex-guarded stack used both for the pool of
// spare lists and for the slabs kept around for teardown. A plain mutex
// is enough here: global-stack traffic is amortized O(1) per listLength
// blocks, so it is never the hot path.
type concurrentStack[T any] struct {
	mu   sync.Mutex
	data []T
}

func (s *concurrentStack[T]) push(v T) {
	s.mu.Lock()
	s.data = append(s.data, v)
	s.mu.Unlock()
}

func (s *concurrentStack[T]) pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if len(s.data) == 0 {
		return zero, false
	}
	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v, true
}

func (s *concurrentStack[T]) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *concurrentStack[T]) clear() {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
}

// Allocator is a concurrent fixed-size block allocator. The zero value is
// not usable; construct with New.
type Allocator struct {
	pool       *worker.Pool
	blockSize  int
	listLength int
	maxBlocks  int

	localLists []localList
	global     concurrentStack[*node]
	slabs      concurrentStack[[][]byte]

	mu              sync.Mutex
	blocksAllocated int
}

// Option configures an Allocator at construction.
type Option func(*Allocator)

// WithListLength overrides DefaultListLength.
func WithListLength(n int) Option {
	return func(a *Allocator) { a.listLength = n }
}

// WithMaxBlocks caps the number of blocks this allocator will ever hand
// out; Alloc aborts the process once this cap would be exceeded. A value
// <= 0 leaves the default in place.
func WithMaxBlocks(n int) Option {
	return func(a *Allocator) { a.maxBlocks = n }
}

// WithPool binds the allocator to a specific worker pool instead of the
// process-wide default.
func WithPool(p *worker.Pool) Option {
	return func(a *Allocator) { a.pool = p }
}

var log = logrus.WithField("component", "block")

// New constructs an allocator for fixed-size blocks of blockSize bytes
// and reserves blocksCount blocks up front, chained into lists of
// listLength blocks that all go onto the global stack (worker lists start
// empty and fill from it on first Alloc). blocksCount <= 0 skips the
// up-front reservation.
func New(blockSize, blocksCount int, opts ...Option) *Allocator {
	a := &Allocator{
		blockSize:  blockSize,
		listLength: DefaultListLength,
		pool:       worker.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.maxBlocks <= 0 {
		// Go has no portable getMemorySize(); this caps runaway
		// reservations at a large-but-finite block count so they fail
		// fatally with a diagnostic instead of being OOM-killed with
		// none.
		a.maxBlocks = (3 * (8 << 30) / blockSize) / 4
	}
	a.localLists = make([]localList, a.pool.Size())
	if blocksCount > 0 {
		a.Reserve(blocksCount)
	}
	return a
}

// BlockSize returns the fixed size of blocks this allocator hands out.
func (a *Allocator) BlockSize() int { return a.blockSize }

// NumAllocatedBlocks returns the monotonically increasing count of blocks
// ever carved out of the process allocator.
func (a *Allocator) NumAllocatedBlocks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blocksAllocated
}

// NumUsedBlocks returns the number of blocks currently checked out
// (allocated minus free, across the global stack and every local list).
func (a *Allocator) NumUsedBlocks() int {
	free := a.global.size() * a.listLength
	for i := range a.localLists {
		free += a.localLists[i].sz
	}
	return a.NumAllocatedBlocks() - free
}

func (a *Allocator) allocateBlocks(numBlocks int) [][]byte {
	a.mu.Lock()
	a.blocksAllocated += numBlocks
	exceeded := a.blocksAllocated > a.maxBlocks
	a.mu.Unlock()
	if exceeded {
		log.WithFields(logrus.Fields{
			"blocks_allocated": a.blocksAllocated,
			"max_blocks":       a.maxBlocks,
		}).Error("block allocator exhausted")
		panic(errors.New("block: too many blocks allocated, raise WithMaxBlocks"))
	}
	slab := make([]byte, numBlocks*a.blockSize)
	blocks := make([][]byte, numBlocks)
	for i := range blocks {
		blocks[i] = slab[i*a.blockSize : (i+1)*a.blockSize : (i+1)*a.blockSize]
	}
	a.slabs.push(blocks)
	return blocks
}

// chain turns numBlocks contiguous byte regions into a singly-linked
// free list and returns its head.
func chain(regions [][]byte) *node {
	nodes := make([]node, len(regions))
	for i := range nodes {
		nodes[i].data = regions[i]
		if i+1 < len(nodes) {
			nodes[i].next = &nodes[i+1]
		}
	}
	return &nodes[0]
}

// getList pops a spare list from the global stack, or carves a fresh one
// out of the process allocator if the global stack is empty.
func (a *Allocator) getList() *node {
	if n, ok := a.global.pop(); ok {
		return n
	}
	return chain(a.allocateBlocks(a.listLength))
}

// Reserve pre-allocates enough lists to cover n blocks plus one spare
// list per worker, in parallel across the worker pool — mirroring
// block_allocator::reserve.
func (a *Allocator) Reserve(n int) {
	numLists := a.pool.Size() + (n+a.listLength-1)/a.listLength
	if numLists <= 0 {
		return
	}
	regions := a.allocateBlocks(a.listLength * numLists)
	a.pool.ParallelFor(0, numLists, 1, func(_ int, i int) {
		lo := i * a.listLength
		a.global.push(chain(regions[lo : lo+a.listLength]))
	})
}

// Alloc returns one fixed-size block, serialized only against other
// Alloc/Free calls from the same worker id.
func (a *Allocator) Alloc(workerID int) *Handle {
	ll := &a.localLists[workerID]
	if ll.sz == 0 {
		ll.head = a.getList()
		ll.sz = a.listLength
	}
	ll.sz--
	n := ll.head
	ll.head = n.next
	n.next = nil
	metrics.AllocatorBlocksInUse.Set(float64(a.NumUsedBlocks()))
	return &Handle{Bytes: n.data, n: n}
}

// Free returns a block to worker workerID's local list, spilling half of
// it to the global stack once the local list has grown to 2*listLength
// blocks.
func (a *Allocator) Free(workerID int, h *Handle) {
	ll := &a.localLists[workerID]
	h.n.next = ll.head

	if ll.sz == a.listLength+1 {
		ll.mid = ll.head
	} else if ll.sz == 2*a.listLength {
		a.global.push(ll.mid.next)
		ll.mid.next = nil
		ll.sz = a.listLength
	}
	ll.head = h.n
	ll.sz++
	metrics.AllocatorBlocksInUse.Set(float64(a.NumUsedBlocks()))
}

// Close releases every slab this allocator ever carved out back to the
// Go runtime and resets its bookkeeping. Safe to call once, after the
// allocator is no longer in use by any worker.
func (a *Allocator) Close() {
	a.localLists = make([]localList, a.pool.Size())
	a.global.clear()
	a.slabs.clear()
	a.mu.Lock()
	a.blocksAllocated = 0
	a.mu.Unlock()
	metrics.AllocatorBlocksInUse.Set(0)
}
