// Package ioformat implements the external interfaces from spec section
// 6: the binary CSR graph format and the conventional algorithm-driver
// option bag.
//
// The reader is grounded directly on graphutils/read_graph.go's
// ReadGraphFromBin, generalized from a fixed uint64-offsets/uint32-edges
// shape to also read an optional trailing int32 weight array (the
// "compressed byte region" half of section 6 is handled by codec.Region
// directly; this package only deals with the raw CSR wire shape).
package ioformat

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/dhulipala/ligra-go/codec"
)

// CSR is the raw, uncompressed graph as read off the wire: an (n+1)
// prefix-sum of degrees and a flat edge array, with an optional
// per-edge weight array (nil for unweighted graphs).
type CSR struct {
	N       uint32
	M       uint64
	Offsets []uint64
	Edges   []codec.VId
	Weights []codec.IntWeight
}

// ReadCSR reads the binary CSR format from path:
//
//	n       uint64
//	m       uint64
//	sizeTag uint64          (total byte length, for a sanity check)
//	offsets [n+1]uint64
//	edges   [m]uint32
//	weights [m]int32        (omitted entirely for unweighted graphs)
//
// weighted selects whether the trailing weights array is present.
func ReadCSR(path string, weighted bool) (*CSR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ioformat: open %s", path)
	}
	defer f.Close()

	var n, m, sizeTag uint64
	for _, dst := range []*uint64{&n, &m, &sizeTag} {
		if err := binary.Read(f, binary.LittleEndian, dst); err != nil {
			return nil, errors.Wrap(err, "ioformat: read header")
		}
	}

	expected := (n+1)*8 + m*4
	if weighted {
		expected += m * 4
	}
	expected += 3 * 8
	if sizeTag != expected {
		return nil, errors.Errorf("ioformat: size mismatch: header says %d, expected %d", sizeTag, expected)
	}

	offsets := make([]uint64, n+1)
	if err := binary.Read(f, binary.LittleEndian, offsets); err != nil {
		return nil, errors.Wrap(err, "ioformat: read offsets")
	}

	edges := make([]codec.VId, m)
	if err := binary.Read(f, binary.LittleEndian, edges); err != nil {
		return nil, errors.Wrap(err, "ioformat: read edges")
	}

	var weights []codec.IntWeight
	if weighted {
		weights = make([]codec.IntWeight, m)
		if err := binary.Read(f, binary.LittleEndian, weights); err != nil {
			return nil, errors.Wrap(err, "ioformat: read weights")
		}
	}

	return &CSR{N: uint32(n), M: m, Offsets: offsets, Edges: edges, Weights: weights}, nil
}

// WriteCSR writes g back out in the same wire format ReadCSR consumes,
// used by tests to round-trip fixtures without depending on an external
// dataset file.
func WriteCSR(w io.Writer, g *CSR) error {
	weighted := g.Weights != nil
	expected := (uint64(g.N)+1)*8 + g.M*4 + 3*8
	if weighted {
		expected += g.M * 4
	}
	for _, v := range []uint64{uint64(g.N), g.M, expected} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, g.Offsets); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, g.Edges); err != nil {
		return err
	}
	if weighted {
		if err := binary.Write(w, binary.LittleEndian, g.Weights); err != nil {
			return err
		}
	}
	return nil
}
