// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "github.com/filerelay/huffpack/internal/errors"

// Reader unpacks bits most-significant-bit first from an in-memory buffer.
// It never reads beyond the declared number of meaningful bits; doing so
// panics with a format error, which callers recover with errors.Recover.
type Reader struct {
	buf     []byte
	numBits uint64 // Number of meaningful bits in buf
	offset  uint64 // Number of bits consumed
}

// Init initializes the Reader to read at most numBits bits from buf.
// The count is clamped to the size of buf.
func (pr *Reader) Init(buf []byte, numBits uint64) {
	if limit := 8 * uint64(len(buf)); numBits > limit {
		numBits = limit
	}
	*pr = Reader{buf: buf, numBits: numBits}
}

// BitsRead reports the number of bits consumed so far.
func (pr *Reader) BitsRead() uint64 { return pr.offset }

// BitsRemaining reports the number of meaningful bits not yet consumed.
func (pr *Reader) BitsRemaining() uint64 { return pr.numBits - pr.offset }

// ReadBit reads a single bit.
func (pr *Reader) ReadBit() uint {
	if pr.offset >= pr.numBits {
		errors.Panic(errTruncated)
	}
	b := pr.buf[pr.offset/8] >> (7 - pr.offset%8) & 1
	pr.offset++
	return uint(b)
}

// ReadBits reads n bits, returning the first bit read in position n-1.
// This panics if n > 64.
func (pr *Reader) ReadBits(n uint) (v uint64) {
	if n > 64 {
		errors.Panic(errBitCount)
	}
	if uint64(n) > pr.BitsRemaining() {
		errors.Panic(errTruncated)
	}
	for n > 0 {
		used := uint(pr.offset % 8) // Bits already consumed in this byte
		m := 8 - used
		if m > n {
			m = n
		}
		b := pr.buf[pr.offset/8] >> (8 - used - m) & byte(1<<m-1)
		v = v<<m | uint64(b)
		pr.offset += uint64(m)
		n -= m
	}
	return v
}

// ReadSymbol decodes one symbol by walking the tree from the root, taking
// the left child on a 0 bit and the right child on a 1 bit.
func (pr *Reader) ReadSymbol(pd *Decoder) byte {
	nodes := pd.tree.Nodes
	n := &nodes[pd.tree.Root]
	for n.Kind == Internal {
		if pr.ReadBit() == 0 {
			n = &nodes[n.Left]
		} else {
			n = &nodes[n.Right]
		}
	}
	return n.Sym
}
