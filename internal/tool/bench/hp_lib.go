// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"

	"github.com/filerelay/huffpack/huffman"
)

func init() {
	RegisterEncoder(FormatHuffman, "hp",
		func(w io.Writer, _ int) io.WriteCloser {
			return huffman.NewWriter(w)
		})
	RegisterDecoder(FormatHuffman, "hp",
		func(r io.Reader) io.ReadCloser {
			return huffman.NewReader(r)
		})
}
