package pagerank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/graph"
)

func TestRunConvergesOnSymmetricTriangle(t *testing.T) {
	offsets := []uint64{0, 2, 4, 6}
	edges := []codec.VId{1, 2, 0, 2, 0, 1}
	g, err := graph.FromCSR[codec.Unit](offsets, edges, nil, codec.UnitCodec{}, true)
	require.NoError(t, err)

	res := Run(g, 1e-10, 200)
	assert.Less(t, res.Iterations, 200)

	for _, r := range res.Ranks {
		assert.InDelta(t, 1.0/3.0, r, 1e-6)
	}
}

func TestRunRespectsMaxIters(t *testing.T) {
	offsets := []uint64{0, 2, 4, 6}
	edges := []codec.VId{1, 2, 0, 2, 0, 1}
	g, err := graph.FromCSR[codec.Unit](offsets, edges, nil, codec.UnitCodec{}, true)
	require.NoError(t, err)

	res := Run(g, 0, 3)
	assert.Equal(t, 3, res.Iterations)
}

func TestRunHandlesDanglingVertex(t *testing.T) {
	// 0 -> 1, 1 has no out-edges.
	offsets := []uint64{0, 1, 1}
	edges := []codec.VId{1}
	g, err := graph.FromCSR[codec.Unit](offsets, edges, nil, codec.UnitCodec{}, false)
	require.NoError(t, err)

	res := Run(g, 1e-8, 50)
	sum := res.Ranks[0] + res.Ranks[1]
	assert.Greater(t, sum, 0.0)
	for _, r := range res.Ranks {
		assert.False(t, r != r) // not NaN
	}
}
