// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements the HFZ container format, a self-describing
// static Huffman encoding of a byte stream.
//
// A container consists of a fixed header, the shape of the prefix tree, and
// the encoded payload:
//
//	Offset  Size        Field
//	0       3           Magic "HFZ"
//	3       1           Version
//	4       8           Number of symbols (big-endian)
//	12      8           XXH64 checksum of the original data (big-endian)
//	20      ceil(T/8)   Tree shape in pre-order, zero padded
//	...     rest        Payload bits, MSB-first, zero padded
//
// In the tree shape, a 0 bit denotes an internal node, which is followed by
// its left and right subtrees. A 1 bit denotes a leaf, which is followed by
// its 8-bit symbol. The tree shape is absent when the data is empty.
package huffman

import (
	"github.com/filerelay/huffpack/internal/errors"
	"github.com/filerelay/huffpack/internal/prefix"
)

const pkgName = "huffman"

const (
	// Version is the only container version this package reads and writes.
	Version = 1

	// FixedHeaderSize is the size of the header preceding the tree shape.
	FixedHeaderSize = 20

	magic = "HFZ"

	maxLeaves    = prefix.MaxSyms
	maxInternals = prefix.MaxSyms - 1
)

var errClosed = errors.Error{Code: errors.Closed, Pkg: pkgName, Msg: "stream is closed"}

func errorf(code int, format string, args ...interface{}) error {
	return errors.New(code, pkgName, format, args...)
}

// treeBits reports the number of bits needed to encode a tree shape.
func treeBits(numLeaves, numInternals int) uint64 {
	return uint64(numInternals) + 9*uint64(numLeaves)
}
