package cc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/edgemap"
	"github.com/dhulipala/ligra-go/graph"
)

// buildTwoComponents builds {0-1-2} and {3-4}, both symmetric.
func buildTwoComponents(t *testing.T) *graph.Graph[codec.Unit] {
	t.Helper()
	offsets := []uint64{0, 1, 3, 4, 5, 6}
	edges := []codec.VId{1, 0, 2, 1, 4, 3}
	g, err := graph.FromCSR[codec.Unit](offsets, edges, nil, codec.UnitCodec{}, true)
	require.NoError(t, err)
	return g
}

func TestRunFindsTwoComponents(t *testing.T) {
	g := buildTwoComponents(t)
	res := Run(g, edgemap.Flags{})
	assert.Equal(t, 2, res.NumCC)
	assert.Equal(t, 3, res.LargestCC)
	assert.Equal(t, res.Labels[0], res.Labels[1])
	assert.Equal(t, res.Labels[1], res.Labels[2])
	assert.Equal(t, res.Labels[3], res.Labels[4])
	assert.NotEqual(t, res.Labels[0], res.Labels[3])
}

func TestRunLabelsUseSmallestVertexID(t *testing.T) {
	g := buildTwoComponents(t)
	res := Run(g, edgemap.Flags{})
	assert.EqualValues(t, 0, res.Labels[0])
	assert.EqualValues(t, 3, res.Labels[3])
}

func TestRunSingletonGraphIsOwnComponent(t *testing.T) {
	out := []*codec.Region[codec.Unit]{{Source: 0, WC: codec.UnitCodec{}}}
	g, err := graph.New(1, codec.UnitCodec{}, out, nil)
	require.NoError(t, err)
	res := Run(g, edgemap.Flags{})
	assert.Equal(t, 1, res.NumCC)
	assert.Equal(t, 1, res.LargestCC)
}
