// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements the Huffman prefix code machinery: symbol
// frequency counting, tree construction, code generation, and the bit-level
// writer and reader used to pack codes most-significant-bit first.
package prefix

import (
	"sort"
	"strings"

	"github.com/filerelay/huffpack/internal"
	"github.com/filerelay/huffpack/internal/errors"
)

const pkgName = "prefix"

// MaxSyms is the size of the byte alphabet.
const MaxSyms = 256

var (
	errTruncated = errors.Error{Code: errors.Format, Pkg: pkgName, Msg: "bit stream is truncated"}
	errNoSymbol  = errors.Error{Code: errors.Internal, Pkg: pkgName, Msg: "symbol has no prefix code"}
	errBitCount  = errors.Error{Code: errors.Internal, Pkg: pkgName, Msg: "bit count out of range"}
)

// PrefixCode maps a single symbol to its bit string.
// The code has no maximum length; Val holds Len bits packed MSB-first.
type PrefixCode struct {
	Sym byte   // The symbol being mapped
	Cnt uint64 // The frequency count of the symbol
	Len uint32 // Bit-length of the prefix code
	Val []byte // Value of the prefix code
}

// Bit reports the i-th bit of the code, where i = 0 is the first bit written.
func (pc PrefixCode) Bit(i uint32) uint {
	return uint(pc.Val[i/8]>>(7-i%8)) & 1
}

// String returns the code as a string of '0' and '1' characters.
func (pc PrefixCode) String() string {
	var sb strings.Builder
	sb.Grow(int(pc.Len))
	for i := uint32(0); i < pc.Len; i++ {
		sb.WriteByte(byte('0' + pc.Bit(i)))
	}
	return sb.String()
}

// appendBit returns a copy of the n-bit code val extended by one bit.
func appendBit(val []byte, n uint32, bit uint) []byte {
	out := make([]byte, (n+8)/8)
	copy(out, val)
	if bit != 0 {
		out[n/8] |= 0x80 >> (n % 8)
	}
	return out
}

// PrefixCodes is the code book: a list of codes, at most one per symbol.
type PrefixCodes []PrefixCode

// SortBySymbol sorts the codes by ascending symbol value.
func (pc PrefixCodes) SortBySymbol() {
	sort.Slice(pc, func(i, j int) bool { return pc[i].Sym < pc[j].Sym })
}

// SortByCount sorts the codes by descending count, breaking ties by symbol.
func (pc PrefixCodes) SortByCount() {
	sort.Slice(pc, func(i, j int) bool {
		if pc[i].Cnt != pc[j].Cnt {
			return pc[i].Cnt > pc[j].Cnt
		}
		return pc[i].Sym < pc[j].Sym
	})
}

// Length computes the total bit-length of encoding every symbol Cnt times.
func (pc PrefixCodes) Length() (nb uint64) {
	for _, c := range pc {
		nb += c.Cnt * uint64(c.Len)
	}
	return nb
}

// IsPrefixFree reports whether no code is a prefix of another.
func (pc PrefixCodes) IsPrefixFree() bool {
	strs := make([]string, len(pc))
	for i, c := range pc {
		if c.Len == 0 {
			return false
		}
		strs[i] = c.String()
	}
	// In lexicographic order, a string that prefixes any other string
	// also prefixes its immediate successor.
	sort.Strings(strs)
	for i := 1; i < len(strs); i++ {
		if strings.HasPrefix(strs[i], strs[i-1]) {
			return false
		}
	}
	return true
}

// GenerateCodes walks the tree depth-first, assigning 0 for each left edge
// and 1 for each right edge. Only leaves receive codes. The returned codes
// are sorted by symbol.
func GenerateCodes(t *Tree) PrefixCodes {
	type stackItem struct {
		node int
		len  uint32
		val  []byte
	}

	codes := make(PrefixCodes, 0, t.NumLeaves())
	stack := []stackItem{{node: t.Root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.Nodes[top.node]
		if n.Kind == Leaf {
			codes = append(codes, PrefixCode{Sym: n.Sym, Cnt: n.Cnt, Len: top.len, Val: top.val})
			continue
		}
		// Push right first so that the left subtree is visited first.
		stack = append(stack,
			stackItem{n.Right, top.len + 1, appendBit(top.val, top.len, 1)},
			stackItem{n.Left, top.len + 1, appendBit(top.val, top.len, 0)},
		)
	}
	codes.SortBySymbol()
	if internal.Debug && !codes.IsPrefixFree() {
		panic("codes are not prefix free")
	}
	return codes
}

// Encoder is a symbol-indexed view of a code book.
type Encoder struct {
	codes   [MaxSyms]PrefixCode
	numSyms int
}

// Init initializes the Encoder from the given code book.
func (pe *Encoder) Init(codes PrefixCodes) {
	*pe = Encoder{numSyms: len(codes)}
	for _, c := range codes {
		pe.codes[c.Sym] = c
	}
}

// Code returns the code for sym. The code has zero length if sym is absent.
func (pe *Encoder) Code(sym byte) PrefixCode {
	return pe.codes[sym]
}

// NumSyms reports the number of symbols in the code book.
func (pe *Encoder) NumSyms() int {
	return pe.numSyms
}

// Decoder decodes symbols by walking a prefix tree from the root.
type Decoder struct {
	tree *Tree
}

// Init initializes the Decoder. The tree must have passed Validate.
func (pd *Decoder) Init(t *Tree) {
	*pd = Decoder{tree: t}
}
