package bucket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignsInitialBuckets(t *testing.T) {
	priorities := []uint32{3, 0, 1, InfinityPriority, 2}
	b := New(uint32(len(priorities)), 4, Increasing, func(id uint32) uint32 { return priorities[id] })

	bkt := b.NextBucket()
	require.NotEqual(t, Null, bkt.ID)
	assert.EqualValues(t, 0, bkt.ID)
	assert.Equal(t, []uint32{1}, bkt.Identifiers)
}

func TestNextBucketIncreasingOrder(t *testing.T) {
	priorities := []uint32{5, 1, 3, 1, 0}
	b := New(5, 3, Increasing, func(id uint32) uint32 { return priorities[id] })

	var order []uint32
	for {
		bkt := b.NextBucket()
		if bkt.ID == Null {
			break
		}
		order = append(order, bkt.ID)
	}
	assert.Equal(t, []uint32{0, 1, 3, 5}, order)
}

func TestNextBucketDecreasingOrder(t *testing.T) {
	priorities := []uint32{5, 1, 3, 1, 0}
	b := New(5, 3, Decreasing, func(id uint32) uint32 { return priorities[id] })

	var order []uint32
	for {
		bkt := b.NextBucket()
		if bkt.ID == Null {
			break
		}
		order = append(order, bkt.ID)
	}
	assert.Equal(t, []uint32{5, 3, 1, 0}, order)
}

func TestInfinityPriorityExcludesID(t *testing.T) {
	priorities := []uint32{InfinityPriority, 0}
	b := New(2, 2, Increasing, func(id uint32) uint32 { return priorities[id] })
	bkt := b.NextBucket()
	assert.Equal(t, []uint32{1}, bkt.Identifiers)
	bkt = b.NextBucket()
	assert.Equal(t, Null, bkt.ID)
}

func TestUpdateBucketsMovesID(t *testing.T) {
	priorities := []uint32{5, 5}
	b := New(2, 4, Increasing, func(id uint32) uint32 { return priorities[id] })
	b.UpdateBuckets([]Update{{ID: 0, Priority: 2}})

	bkt := b.NextBucket()
	assert.EqualValues(t, 2, bkt.ID)
	assert.Equal(t, []uint32{0}, bkt.Identifiers)

	bkt = b.NextBucket()
	assert.EqualValues(t, 5, bkt.ID)
	assert.Equal(t, []uint32{1}, bkt.Identifiers)
}

func TestUpdateBucketsWithInfinityRemoves(t *testing.T) {
	priorities := []uint32{1, 1}
	b := New(2, 4, Increasing, func(id uint32) uint32 { return priorities[id] })
	b.UpdateBuckets([]Update{{ID: 0, Priority: InfinityPriority}})

	bkt := b.NextBucket()
	assert.Equal(t, []uint32{1}, bkt.Identifiers)
	bkt = b.NextBucket()
	assert.Equal(t, Null, bkt.ID)
}

func TestUpdateCannotMoveBehindCurrentSweep(t *testing.T) {
	priorities := []uint32{0, 10}
	b := New(2, 4, Increasing, func(id uint32) uint32 { return priorities[id] })
	_ = b.NextBucket() // advances cur past 0

	// now try to reassign id 1 behind the current sweep position
	got := b.GetBucket(10, 0)
	assert.GreaterOrEqual(t, got, uint32(1))
}

func TestAdvanceAcrossOverflow(t *testing.T) {
	n := uint32(20)
	priorities := make([]uint32, n)
	for i := range priorities {
		priorities[i] = uint32(i)
	}
	b := New(n, 2, Increasing, func(id uint32) uint32 { return priorities[id] })

	var order []uint32
	for {
		bkt := b.NextBucket()
		if bkt.ID == Null {
			break
		}
		order = append(order, bkt.ID)
	}
	want := make([]uint32, n)
	for i := range want {
		want[i] = uint32(i)
	}
	assert.Equal(t, want, order)
}
