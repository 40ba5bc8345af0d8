package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForVisitsEveryIndex(t *testing.T) {
	p := NewPool(4)
	n := 10000
	seen := make([]int32, n)
	p.ParallelFor(0, n, 7, func(_ int, i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, v := range seen {
		require.EqualValues(t, 1, v, "index %d visited %d times", i, v)
	}
}

func TestParallelForEmptyRange(t *testing.T) {
	p := NewPool(2)
	called := false
	p.ParallelFor(5, 5, 0, func(int, int) { called = true })
	assert.False(t, called)
	p.ParallelFor(5, 3, 0, func(int, int) { called = true })
	assert.False(t, called)
}

func TestParallelForSingleChunkUsesOneWorkerID(t *testing.T) {
	p := NewPool(4)
	ids := map[int]bool{}
	var mu atomic.Int32
	p.ParallelFor(0, 3, 10, func(id int, _ int) {
		mu.Add(1)
		ids[id] = true
	})
	assert.Len(t, ids, 1)
}

func TestParallelForErrReturnsFirstError(t *testing.T) {
	p := NewPool(4)
	boom := errBoom{}
	err := p.ParallelForErr(0, 100, 5, func(_ int, i int) error {
		if i == 50 {
			return boom
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, boom, err)
}

func TestParallelForErrNilOnSuccess(t *testing.T) {
	p := NewPool(4)
	var total int64
	err := p.ParallelForErr(0, 1000, 0, func(_ int, i int) error {
		atomic.AddInt64(&total, int64(i))
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 999*1000/2, total)
}

func TestPoolWorkerIDsAreStable(t *testing.T) {
	p := NewPool(1)
	assert.Equal(t, 1, p.Size())
	var last int = -1
	p.ParallelFor(0, 50, 1, func(id int, _ int) {
		if last != -1 {
			assert.Equal(t, last, id)
		}
		last = id
	})
}

func TestNumWorkersMatchesDefaultPool(t *testing.T) {
	assert.Equal(t, Default().Size(), NumWorkers())
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
