package wbfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/graph"
)

// buildWeighted builds a symmetric weighted graph:
// 0-1 (w=4), 0-2 (w=1), 2-1 (w=1), 1-3 (w=1).
func buildWeighted(t *testing.T) *graph.Graph[codec.IntWeight] {
	t.Helper()
	out := []*codec.Region[codec.IntWeight]{
		codec.NewRegion[codec.IntWeight](0, []codec.VId{1, 2}, []codec.IntWeight{4, 1}, codec.IntWeightCodec{}),
		codec.NewRegion[codec.IntWeight](1, []codec.VId{0, 2, 3}, []codec.IntWeight{4, 1, 1}, codec.IntWeightCodec{}),
		codec.NewRegion[codec.IntWeight](2, []codec.VId{0, 1}, []codec.IntWeight{1, 1}, codec.IntWeightCodec{}),
		codec.NewRegion[codec.IntWeight](3, []codec.VId{1}, []codec.IntWeight{1}, codec.IntWeightCodec{}),
	}
	g, err := graph.New(4, codec.IntWeightCodec{}, out, nil)
	require.NoError(t, err)
	return g
}

func TestRunComputesShortestWeightedDistances(t *testing.T) {
	g := buildWeighted(t)
	res := Run(g, 0, 0)

	assert.EqualValues(t, 0, res.Dist[0])
	assert.EqualValues(t, 2, res.Dist[1]) // via 2: 0->2(1)->1(1)
	assert.EqualValues(t, 1, res.Dist[2])
	assert.EqualValues(t, 3, res.Dist[3]) // via 1
	for _, r := range res.Reachable {
		assert.True(t, r)
	}
}

func TestRunUnreachableVertexStaysInfinite(t *testing.T) {
	out := []*codec.Region[codec.IntWeight]{
		codec.NewRegion[codec.IntWeight](0, []codec.VId{1}, []codec.IntWeight{5}, codec.IntWeightCodec{}),
		codec.NewRegion[codec.IntWeight](1, []codec.VId{0}, []codec.IntWeight{5}, codec.IntWeightCodec{}),
		{Source: 2, WC: codec.IntWeightCodec{}},
	}
	g, err := graph.New(3, codec.IntWeightCodec{}, out, nil)
	require.NoError(t, err)

	res := Run(g, 0, 0)
	assert.False(t, res.Reachable[2])
	assert.EqualValues(t, infinity, res.Dist[2])
}

func TestRunSourceDistanceIsZero(t *testing.T) {
	g := buildWeighted(t)
	res := Run(g, 3, 16)
	assert.EqualValues(t, 0, res.Dist[3])
	assert.EqualValues(t, 1, res.Dist[1])
}
