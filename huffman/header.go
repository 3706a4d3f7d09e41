// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"encoding/binary"

	"github.com/icza/bitio"

	"github.com/filerelay/huffpack/internal"
	"github.com/filerelay/huffpack/internal/errors"
	"github.com/filerelay/huffpack/internal/prefix"
)

// Header is the decoded form of everything preceding the payload.
type Header struct {
	Version    uint8
	NumSyms    uint64       // Number of bytes in the original data
	Checksum   uint64       // XXH64 of the original data
	HeaderSize int          // Offset of the payload within the container
	Tree       *prefix.Tree // Nil if NumSyms is zero
}

// Codes returns the code book described by the tree shape, sorted by symbol.
// Counts are not stored in the container, so every Cnt is zero.
func (h *Header) Codes() prefix.PrefixCodes {
	if h.Tree == nil {
		return nil
	}
	return prefix.GenerateCodes(h.Tree)
}

// ReadHeader parses and validates the fixed header and tree shape at the
// start of data. The payload is not inspected.
func ReadHeader(data []byte) (h *Header, err error) {
	defer errors.Recover(&err)
	return readHeader(data), nil
}

func readHeader(data []byte) *Header {
	if len(data) < FixedHeaderSize {
		errors.Panic(errorf(errors.Format, "container is shorter than its header"))
	}
	if string(data[:len(magic)]) != magic {
		errors.Panic(errorf(errors.Format, "invalid magic %q", data[:len(magic)]))
	}
	if data[3] != Version {
		errors.Panic(errorf(errors.Format, "unsupported version %d", data[3]))
	}

	h := &Header{
		Version:    data[3],
		NumSyms:    binary.BigEndian.Uint64(data[4:]),
		Checksum:   binary.BigEndian.Uint64(data[12:]),
		HeaderSize: FixedHeaderSize,
	}
	if h.NumSyms > 0 {
		var nb uint64
		h.Tree, nb = readTree(data[FixedHeaderSize:])
		h.HeaderSize += int(internal.BytesForBits(nb))
	}
	return h
}

// appendTo appends the fixed header and the tree shape to buf.
func (h *Header) appendTo(buf []byte) []byte {
	var hdr [FixedHeaderSize]byte
	copy(hdr[:], magic)
	hdr[3] = h.Version
	binary.BigEndian.PutUint64(hdr[4:], h.NumSyms)
	binary.BigEndian.PutUint64(hdr[12:], h.Checksum)
	buf = append(buf, hdr[:]...)
	if h.Tree != nil {
		buf = appendTree(buf, h.Tree)
	}
	return buf
}

// appendTree appends the pre-order shape of t, padded to a byte boundary.
func appendTree(buf []byte, t *prefix.Tree) []byte {
	bb := bytes.NewBuffer(buf)
	bw := bitio.NewWriter(bb)

	var err error
	stack := []int{t.Root}
	for len(stack) > 0 && err == nil {
		n := &t.Nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if n.Kind == prefix.Leaf {
			err = bw.WriteBits(1<<8|uint64(n.Sym), 9)
			continue
		}
		err = bw.WriteBool(false)
		stack = append(stack, n.Right, n.Left)
	}
	if err == nil {
		err = bw.Close()
	}
	if err != nil {
		errors.Panic(errors.Wrap(errors.Internal, pkgName, err, "tree shape encoding failed"))
	}
	return bb.Bytes()
}

// shapeReader rebuilds a tree from its pre-order shape.
type shapeReader struct {
	br        *bitio.Reader
	tree      *prefix.Tree
	numBits   uint64 // Number of shape bits consumed
	leaves    int
	internals int
}

// readTree parses a tree shape and its padding from the start of buf.
// It returns the tree along with the number of shape bits, excluding padding.
func readTree(buf []byte) (*prefix.Tree, uint64) {
	sr := shapeReader{
		br:   bitio.NewReader(bytes.NewReader(buf)),
		tree: &prefix.Tree{Nodes: make([]prefix.Node, 0, 2*maxLeaves-1)},
	}
	sr.tree.Root = sr.readNode()

	nb := sr.numBits
	if pad := (8 - nb%8) % 8; pad > 0 && sr.readBits(uint8(pad)) != 0 {
		errors.Panic(errorf(errors.Format, "non-zero tree padding"))
	}
	if err := sr.tree.Validate(); err != nil {
		errors.Panic(err)
	}
	return sr.tree, nb
}

func (sr *shapeReader) readBits(n uint8) uint64 {
	v, err := sr.br.ReadBits(n)
	if err != nil {
		errors.Panic(errorf(errors.Format, "tree shape is truncated"))
	}
	sr.numBits += uint64(n)
	return v
}

// readNode reads one subtree and returns the arena index of its root.
// The node limits bound both the arena size and the recursion depth.
func (sr *shapeReader) readNode() int {
	idx := len(sr.tree.Nodes)
	if sr.readBits(1) == 1 {
		if sr.leaves++; sr.leaves > maxLeaves {
			errors.Panic(errorf(errors.Format, "tree has more than %d leaves", maxLeaves))
		}
		sym := byte(sr.readBits(8))
		sr.tree.Nodes = append(sr.tree.Nodes, prefix.Node{Kind: prefix.Leaf, Sym: sym})
		return idx
	}

	if sr.internals++; sr.internals > maxInternals {
		errors.Panic(errorf(errors.Format, "tree has more than %d internal nodes", maxInternals))
	}
	sr.tree.Nodes = append(sr.tree.Nodes, prefix.Node{Kind: prefix.Internal})
	left := sr.readNode()
	right := sr.readNode()
	sr.tree.Nodes[idx].Left, sr.tree.Nodes[idx].Right = left, right
	return idx
}
