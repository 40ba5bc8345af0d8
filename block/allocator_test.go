package block

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhulipala/ligra-go/worker"
)

func TestAllocFreeRoundTrip(t *testing.T) {
	a := New(64, 8, WithListLength(4))
	h := a.Alloc(0)
	require.Len(t, h.Bytes, 64)
	h.Bytes[0] = 0xAB
	a.Free(0, h)

	h2 := a.Alloc(0)
	assert.Equal(t, h.Bytes, h2.Bytes)
}

func TestFreeSpillsToGlobalStackOnOverflow(t *testing.T) {
	a := New(8, 0, WithListLength(4))
	var handles []*Handle
	for i := 0; i < 9; i++ {
		handles = append(handles, a.Alloc(0))
	}
	for _, h := range handles {
		a.Free(0, h)
	}
	assert.GreaterOrEqual(t, a.NumAllocatedBlocks(), 9)
	assert.Equal(t, 1, a.global.size())
}

func TestConcurrentAllocFreeAcrossWorkers(t *testing.T) {
	pool := worker.NewPool(8)
	a := New(32, 0, WithListLength(16), WithPool(pool))

	var wg sync.WaitGroup
	for w := 0; w < pool.Size(); w++ {
		wg.Add(1)
		go func(wid int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h := a.Alloc(wid)
				h.Bytes[0] = byte(wid)
				a.Free(wid, h)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 0, a.NumUsedBlocks())
}

func TestAllocPanicsOnceMaxBlocksExceeded(t *testing.T) {
	a := New(8, 0, WithListLength(1), WithMaxBlocks(2))
	assert.Panics(t, func() {
		for i := 0; i < 10; i++ {
			a.Alloc(0)
		}
	})
}

func TestCloseResetsBookkeeping(t *testing.T) {
	a := New(16, 4, WithListLength(2))
	_ = a.Alloc(0)
	a.Close()
	assert.Equal(t, 0, a.NumAllocatedBlocks())
	assert.Equal(t, 0, a.NumUsedBlocks())
}

func TestBlockSize(t *testing.T) {
	a := New(128, 0)
	assert.Equal(t, 128, a.BlockSize())
}
