package ktruss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhulipala/ligra-go/codec"
	"github.com/dhulipala/ligra-go/graph"
)

// buildTriangleWithPendant builds a symmetric graph: a 0-1-2 triangle
// plus a dangling edge 2-3 that belongs to no triangle.
func buildTriangleWithPendant(t *testing.T) *graph.Graph[codec.Unit] {
	t.Helper()
	offsets := []uint64{0, 2, 4, 7, 8}
	edges := []codec.VId{1, 2, 0, 2, 0, 1, 3, 2}
	g, err := graph.FromCSR[codec.Unit](offsets, edges, nil, codec.UnitCodec{}, true)
	require.NoError(t, err)
	return g
}

func findEdge(edges []Edge, u, v codec.VId) (int, bool) {
	for i, e := range edges {
		if (e.U == u && e.V == v) || (e.U == v && e.V == u) {
			return i, true
		}
	}
	return 0, false
}

func TestRunTriangleEdgesOutrankPendantEdge(t *testing.T) {
	g := buildTriangleWithPendant(t)
	res := Run(g, 0)

	i01, ok := findEdge(res.Edges, 0, 1)
	require.True(t, ok)
	i02, ok := findEdge(res.Edges, 0, 2)
	require.True(t, ok)
	i12, ok := findEdge(res.Edges, 1, 2)
	require.True(t, ok)
	i23, ok := findEdge(res.Edges, 2, 3)
	require.True(t, ok)

	assert.EqualValues(t, 1, res.Truss[i01])
	assert.EqualValues(t, 1, res.Truss[i02])
	assert.EqualValues(t, 1, res.Truss[i12])
	assert.EqualValues(t, 0, res.Truss[i23])
}

func TestRunEdgeCountMatchesUndirectedEdgeCount(t *testing.T) {
	g := buildTriangleWithPendant(t)
	res := Run(g, 0)
	assert.Len(t, res.Edges, 4)
}

func TestRunGraphWithNoTriangles(t *testing.T) {
	// A 4-cycle: 0-1-2-3-0, no triangles at all.
	offsets := []uint64{0, 2, 4, 6, 8}
	edges := []codec.VId{1, 3, 0, 2, 1, 3, 2, 0}
	g, err := graph.FromCSR[codec.Unit](offsets, edges, nil, codec.UnitCodec{}, true)
	require.NoError(t, err)

	res := Run(g, 0)
	for _, k := range res.Truss {
		assert.EqualValues(t, 0, k)
	}
}
