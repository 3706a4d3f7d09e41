// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "github.com/filerelay/huffpack/internal/errors"

// Writer packs bits most-significant-bit first into an in-memory buffer.
// Bits are appended after whatever the buffer held when Init was called, so
// a byte-aligned header can be written first.
type Writer struct {
	buf     []byte // Completed bytes
	base    int    // Length of buf at Init
	cur     byte   // Partially filled byte
	numBits uint   // Number of valid bits in cur (0..7)
}

// Init initializes the Writer to append to buf.
func (pw *Writer) Init(buf []byte) {
	*pw = Writer{buf: buf, base: len(buf)}
}

// BitsWritten reports the number of bits written since Init.
func (pw *Writer) BitsWritten() uint64 {
	return 8*uint64(len(pw.buf)-pw.base) + uint64(pw.numBits)
}

// WriteBit writes a single bit. Any non-zero value writes a 1.
func (pw *Writer) WriteBit(bit uint) {
	if bit != 0 {
		pw.cur |= 0x80 >> pw.numBits
	}
	pw.numBits++
	if pw.numBits == 8 {
		pw.buf = append(pw.buf, pw.cur)
		pw.cur, pw.numBits = 0, 0
	}
}

// WriteBits writes the lower n bits of v, starting with bit n-1.
// This panics if n > 64.
func (pw *Writer) WriteBits(v uint64, n uint) {
	if n > 64 {
		errors.Panic(errBitCount)
	}
	for n > 0 {
		m := 8 - pw.numBits // Free bits in cur
		if m > n {
			m = n
		}
		chunk := byte(v>>(n-m)) & byte(1<<m-1)
		pw.cur |= chunk << (8 - pw.numBits - m)
		pw.numBits += m
		n -= m
		if pw.numBits == 8 {
			pw.buf = append(pw.buf, pw.cur)
			pw.cur, pw.numBits = 0, 0
		}
	}
}

// WriteCode writes all bits of a prefix code.
func (pw *Writer) WriteCode(pc PrefixCode) {
	n := pc.Len
	for _, b := range pc.Val {
		if n >= 8 {
			pw.WriteBits(uint64(b), 8)
			n -= 8
			continue
		}
		if n > 0 {
			pw.WriteBits(uint64(b>>(8-n)), uint(n))
		}
		break
	}
}

// WriteSymbol writes the code for sym. This panics if sym has no code.
func (pw *Writer) WriteSymbol(sym byte, pe *Encoder) {
	pc := &pe.codes[sym]
	if pc.Len == 0 {
		errors.Panic(errNoSymbol)
	}
	pw.WriteCode(*pc)
}

// Finish flushes the final partial byte, padded with zero bits, and returns
// the buffer. The trailing count reports how many bits of the last byte are
// meaningful: 1..8, or 0 if nothing was written.
func (pw *Writer) Finish() (buf []byte, trailing uint) {
	trailing = pw.numBits
	if pw.numBits > 0 {
		pw.buf = append(pw.buf, pw.cur)
		pw.cur, pw.numBits = 0, 0
	} else if len(pw.buf) > pw.base {
		trailing = 8
	}
	return pw.buf, trailing
}
