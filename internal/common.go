// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of common helpers for the Huffman codec.
//
// For performance reasons, these packages lack strong error checking and
// require that the caller to ensure that strict invariants are kept.
package internal

// BytesForBits reports the number of bytes needed to hold n bits.
func BytesForBits(n uint64) uint64 {
	return n/8 + (n%8+7)/8
}
