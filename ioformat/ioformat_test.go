package ioformat

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhulipala/ligra-go/codec"
)

func TestWriteReadCSRRoundTripUnweighted(t *testing.T) {
	g := &CSR{
		N:       4,
		M:       5,
		Offsets: []uint64{0, 2, 3, 5, 5},
		Edges:   []codec.VId{1, 2, 2, 0, 1},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSR(&buf, g))

	dir := t.TempDir()
	path := filepath.Join(dir, "graph.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := ReadCSR(path, false)
	require.NoError(t, err)
	assert.Equal(t, g.N, got.N)
	assert.Equal(t, g.M, got.M)
	assert.Equal(t, g.Offsets, got.Offsets)
	assert.Equal(t, g.Edges, got.Edges)
	assert.Nil(t, got.Weights)
}

func TestWriteReadCSRRoundTripWeighted(t *testing.T) {
	g := &CSR{
		N:       3,
		M:       2,
		Offsets: []uint64{0, 1, 2, 2},
		Edges:   []codec.VId{1, 2},
		Weights: []codec.IntWeight{-5, 42},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSR(&buf, g))

	dir := t.TempDir()
	path := filepath.Join(dir, "graph.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := ReadCSR(path, true)
	require.NoError(t, err)
	assert.Equal(t, g.Weights, got.Weights)
}

func TestReadCSRRejectsSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bin")
	// header claims a sizeTag inconsistent with n/m.
	buf := make([]byte, 24)
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	_, err := ReadCSR(path, false)
	assert.Error(t, err)
}

func TestReadCSRMissingFile(t *testing.T) {
	_, err := ReadCSR("/nonexistent/path/graph.bin", false)
	assert.Error(t, err)
}

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := ParseOptions("bfs", []string{"graph.bin"})
	require.NoError(t, err)
	assert.Equal(t, "graph.bin", opts.GraphPath)
	assert.False(t, opts.Symmetric)
	assert.Equal(t, 1, opts.Rounds)
	assert.InDelta(t, 1e-6, opts.Eps, 1e-12)
}

func TestParseOptionsOverrides(t *testing.T) {
	opts, err := ParseOptions("pagerank", []string{
		"-s", "-rounds", "3", "-eps", "0.01", "-iters", "5", "-pack", "graph.bin",
	})
	require.NoError(t, err)
	assert.True(t, opts.Symmetric)
	assert.Equal(t, 3, opts.Rounds)
	assert.InDelta(t, 0.01, opts.Eps, 1e-12)
	assert.Equal(t, 5, opts.Iters)
	assert.True(t, opts.Pack)
	assert.Equal(t, "graph.bin", opts.GraphPath)
}

func TestParseOptionsMissingGraphPath(t *testing.T) {
	opts, err := ParseOptions("bfs", []string{"-s"})
	require.NoError(t, err)
	assert.Empty(t, opts.GraphPath)
}

func TestParseOptionsRejectsUnknownFlag(t *testing.T) {
	_, err := ParseOptions("bfs", []string{"-nope", "graph.bin"})
	assert.Error(t, err)
}
