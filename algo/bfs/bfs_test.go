package bfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/edgemap"
	"github.com/dhulipala/ligra-go/graph"
)

// buildSymmetric builds an undirected path graph 0-1-2-3-4.
func buildSymmetric(t *testing.T) *graph.Graph[codec.Unit] {
	t.Helper()
	offsets := []uint64{0, 1, 3, 5, 7, 8}
	edges := []codec.VId{1, 0, 2, 1, 3, 2, 4, 3}
	g, err := graph.FromCSR[codec.Unit](offsets, edges, nil, codec.UnitCodec{}, true)
	require.NoError(t, err)
	return g
}

func TestRunFindsShortestParentChain(t *testing.T) {
	g := buildSymmetric(t)
	res := Run(g, 0, edgemap.Flags{})
	assert.Equal(t, 5, res.Reachable)
	assert.Equal(t, codec.VId(0), res.Parents[0])
	for v := codec.VId(1); v < 5; v++ {
		assert.NotEqualValues(t, codec.VMax, res.Parents[v])
	}
	assert.Equal(t, 5, len(res.FrontierSizes))
}

func TestRunFromIsolatedComponent(t *testing.T) {
	out := []*codec.Region[codec.Unit]{
		codec.NewRegion[codec.Unit](0, []codec.VId{1}, make([]codec.Unit, 1), codec.UnitCodec{}),
		codec.NewRegion[codec.Unit](1, []codec.VId{0}, make([]codec.Unit, 1), codec.UnitCodec{}),
		{Source: 2, WC: codec.UnitCodec{}},
	}
	g, err := graph.New(3, codec.UnitCodec{}, out, nil)
	require.NoError(t, err)

	res := Run(g, 0, edgemap.Flags{})
	assert.Equal(t, 2, res.Reachable)
	assert.EqualValues(t, codec.VMax, res.Parents[2])
}

// TestClusterBFSReachesEveryConnectedVertex is a direct port of the
// cluster-style integration test the ClusterBFS benchmark used to check
// full-graph reachability from a single seed, kept in its raw t.Fatalf
// idiom rather than converted to testify.
func TestClusterBFSReachesEveryConnectedVertex(t *testing.T) {
	g := buildSymmetric(t)
	res := Run(g, 2, edgemap.Flags{})
	if res.Reachable != 5 {
		t.Fatalf("expected all 5 vertices reachable from seed 2, got %d", res.Reachable)
	}
	for v := codec.VId(0); v < 5; v++ {
		if res.Parents[v] == codec.VMax {
			t.Fatalf("vertex %d unreachable from seed 2", v)
		}
	}
}
