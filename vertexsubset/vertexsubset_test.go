package vertexsubset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingleton(t *testing.T) {
	vs := Singleton[int](10, 3, 99)
	assert.Equal(t, 1, vs.Size())
	assert.True(t, vs.Contains(3))
	assert.False(t, vs.Contains(4))
	assert.False(t, vs.IsEmpty())
}

func TestEmpty(t *testing.T) {
	vs := Empty[int](10)
	assert.True(t, vs.IsEmpty())
	assert.Equal(t, 0, vs.Size())
}

func TestFromSparseContains(t *testing.T) {
	vs := FromSparse[int](10, []Elem[int]{{V: 1, X: 10}, {V: 5, X: 50}})
	assert.Equal(t, 2, vs.Size())
	assert.True(t, vs.Contains(1))
	assert.True(t, vs.Contains(5))
	assert.False(t, vs.Contains(2))
}

func TestFromDenseWithPayload(t *testing.T) {
	bitmap := []bool{false, true, false, true, true}
	vs := FromDense[int](5, bitmap, func(v VId) int { return int(v) * 10 })
	assert.True(t, vs.Dense())
	assert.Equal(t, 3, vs.Size())

	seen := map[VId]int{}
	vs.Map(func(v VId, x int) { seen[v] = x })
	assert.Equal(t, map[VId]int{1: 10, 3: 30, 4: 40}, seen)
}

func TestToSparseFromDenseRoundTrip(t *testing.T) {
	n := 257
	bitmap := make([]bool, n)
	want := map[VId]int{}
	for i := 0; i < n; i += 3 {
		bitmap[i] = true
		want[VId(i)] = i * 2
	}
	vs := FromDense[int](uint32(n), bitmap, func(v VId) int { return int(v) * 2 })

	sparse := vs.ToSparse()
	got := map[VId]int{}
	for _, e := range sparse {
		got[e.V] = e.X
	}
	assert.Equal(t, want, got)

	// memoized: second call returns the same slice
	assert.Same(t, &sparse[0], &vs.ToSparse()[0])
}

func TestToSparseOnEmptyDense(t *testing.T) {
	vs := FromDense[int](0, nil, nil)
	assert.Empty(t, vs.ToSparse())
}

func TestToDenseFromSparseRoundTrip(t *testing.T) {
	vs := FromSparse[int](6, []Elem[int]{{V: 0}, {V: 4}})
	dense := vs.ToDense()
	assert.Equal(t, []bool{true, false, false, false, true, false}, dense)
}

func TestGetFnReprSparseAndDense(t *testing.T) {
	sparse := FromSparse[int](5, []Elem[int]{{V: 2, X: 20}})
	fn := sparse.GetFnRepr()
	x, ok := fn(2)
	assert.True(t, ok)
	assert.Equal(t, 20, x)
	_, ok = fn(3)
	assert.False(t, ok)

	dense := FromDense[int](5, []bool{false, false, true, false, false}, func(v VId) int { return 99 })
	fn2 := dense.GetFnRepr()
	x2, ok2 := fn2(2)
	assert.True(t, ok2)
	assert.Equal(t, 99, x2)
	_, ok2 = fn2(0)
	assert.False(t, ok2)
}

func TestDenseToSparseMemoizationUsesPackDense(t *testing.T) {
	n := 64
	bitmap := make([]bool, n)
	bitmap[0] = true
	bitmap[63] = true
	vs := FromDense[struct{}](uint32(n), bitmap, nil)
	elems := vs.ToSparse()
	var ids []VId
	for _, e := range elems {
		ids = append(ids, e.V)
	}
	assert.ElementsMatch(t, []VId{0, 63}, ids)
	assert.Same(t, &elems[0], &vs.ToSparse()[0])
}
