// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package huffman

import (
	"bytes"
	"io/ioutil"

	"github.com/filerelay/huffpack"
	"github.com/filerelay/huffpack/huffman"
)

func Fuzz(data []byte) int {
	out, ok := testDecoders(data)
	testRoundTrip(data)
	if ok {
		testRoundTrip(out)
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoders checks that the block and stream decoders agree on the input.
// Rejected input must be reported as a format error, never anything else.
func testDecoders(data []byte) ([]byte, bool) {
	bb, berr := huffman.Decompress(data)
	rd := huffman.NewReader(bytes.NewReader(data))
	sb, serr := ioutil.ReadAll(rd)
	if err := rd.Close(); serr == nil {
		serr = err
	}

	switch {
	case berr == nil && serr == nil:
		if !bytes.Equal(bb, sb) {
			panic("mismatching bytes")
		}
		return bb, true
	case berr != nil && serr != nil:
		if !huffpack.IsFormatError(berr) {
			panic(berr)
		}
		if !huffpack.IsFormatError(serr) {
			panic(serr)
		}
		return nil, false
	case berr != nil:
		panic(berr)
	default:
		panic(serr)
	}
}

// testRoundTrip compresses the input and checks that both decoders recover it.
func testRoundTrip(want []byte) {
	got, ok := testDecoders(huffman.Compress(want))
	if !ok {
		panic("decoder error")
	}
	if !bytes.Equal(got, want) {
		panic("mismatching bytes")
	}
}
