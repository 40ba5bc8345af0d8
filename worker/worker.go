// Package worker provides the fork-join scheduling primitive the rest of
// the engine is built on: a fixed pool of T worker slots and a
// parallel_for that splits a range into grain-sized chunks and joins on
// every chunk before returning.
//
// There is no async/event-loop scheduling here. A call to ParallelFor
// blocks the calling goroutine until every chunk has finished, matching
// the fork-join call tree the rest of the core assumes.
package worker

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool hands out stable worker ids in [0, Size()) to concurrent tasks.
// An id is held for the duration of one task and returned to the pool
// when the task completes, so two tasks never observe the same id at the
// same time — this is the "worker-id discipline" the block allocator and
// other per-worker scratch rely on.
type Pool struct {
	size  int
	slots chan int
}

// NewPool builds a pool of the given size. A size <= 0 defaults to
// runtime.GOMAXPROCS(0).
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	slots := make(chan int, size)
	for i := 0; i < size; i++ {
		slots <- i
	}
	return &Pool{size: size, slots: slots}
}

// Size returns T, the number of distinct worker ids this pool hands out.
func (p *Pool) Size() int { return p.size }

func (p *Pool) acquire() int {
	return <-p.slots
}

func (p *Pool) release(id int) {
	p.slots <- id
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the process-wide pool, sized to GOMAXPROCS and created
// lazily on first use. The worker pool is process-wide state: it is
// initialized before any core operation needs a worker id and lives until
// process exit.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = NewPool(0)
	})
	return defaultPool
}

// SequentialGrain is a grain of one element per chunk. ParallelFor does
// not read it; a grain <= 0 passed to ParallelFor picks one chunk per
// worker slot.
const SequentialGrain = 1

// ParallelFor splits [lo, hi) into chunks of at most grain elements and
// runs body(workerID, i) for every i in the range, forking one goroutine
// per chunk and joining on all of them before returning. grain <= 0 means
// "pick one chunk per worker slot".
//
// body must be safe to call concurrently for distinct i; ParallelFor
// itself guarantees no two in-flight chunks share a worker id.
func (p *Pool) ParallelFor(lo, hi, grain int, body func(workerID, i int)) {
	if hi <= lo {
		return
	}
	n := hi - lo
	if grain <= 0 {
		grain = (n + p.size - 1) / p.size
		if grain < 1 {
			grain = 1
		}
	}
	if n <= grain {
		id := p.acquire()
		defer p.release(id)
		for i := lo; i < hi; i++ {
			body(id, i)
		}
		return
	}

	var wg sync.WaitGroup
	for start := lo; start < hi; start += grain {
		end := start + grain
		if end > hi {
			end = hi
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			id := p.acquire()
			defer p.release(id)
			for i := s; i < e; i++ {
				body(id, i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ParallelForErr is the fallible counterpart of ParallelFor: body may
// return an error, in which case the first non-nil error observed is
// returned once every in-flight chunk has finished (they must run to
// completion, since each chunk may hold resources — e.g. allocator state
// — that need to unwind normally, not be abandoned mid-chunk). Used
// where a chunk can hit a fatal resource or contract-violation error
// (allocator exhaustion, a pack overrunning its block) that the caller
// needs to observe instead of a silent corruption or a bare process
// abort, e.g. codec.Region.Pack's block re-encode pass.
//
// Fan-out width is bounded to the pool size via a semaphore: with a
// small grain and a large range (one chunk per block of a
// high-degree vertex, say), spawning one goroutine per chunk and
// relying on the worker-id channel to throttle them is wasteful churn.
// Acquiring the semaphore before spawning caps the number of goroutines
// in flight at any time to p.size instead.
func (p *Pool) ParallelForErr(lo, hi, grain int, body func(workerID, i int) error) error {
	if hi <= lo {
		return nil
	}
	n := hi - lo
	if grain <= 0 {
		grain = (n + p.size - 1) / p.size
		if grain < 1 {
			grain = 1
		}
	}
	sem := semaphore.NewWeighted(int64(p.size))
	g, ctx := errgroup.WithContext(context.Background())
	for start := lo; start < hi; start += grain {
		s, e := start, start+grain
		if e > hi {
			e = hi
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			id := p.acquire()
			defer p.release(id)
			for i := s; i < e; i++ {
				if err := body(id, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// ParallelFor is shorthand for Default().ParallelFor.
func ParallelFor(lo, hi, grain int, body func(workerID, i int)) {
	Default().ParallelFor(lo, hi, grain, body)
}

// NumWorkers returns the size of the default pool.
func NumWorkers() int { return Default().Size() }
