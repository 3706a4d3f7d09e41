// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/filerelay/huffpack/internal"
	"github.com/filerelay/huffpack/internal/errors"
	"github.com/filerelay/huffpack/internal/prefix"
)

// Compress encodes data as a single container.
// The output is a pure function of the input.
func Compress(data []byte) []byte {
	h := Header{
		Version:  Version,
		NumSyms:  uint64(len(data)),
		Checksum: xxhash.Sum64(data),
	}
	if len(data) == 0 {
		return h.appendTo(make([]byte, 0, FixedHeaderSize))
	}

	ft := prefix.CountFrequencies(data)
	tree, err := prefix.BuildTree(&ft)
	errors.Assert(err == nil, err)
	h.Tree = tree

	codes := prefix.GenerateCodes(tree)
	size := FixedHeaderSize +
		internal.BytesForBits(treeBits(len(codes), len(codes)-1)) +
		internal.BytesForBits(codes.Length())
	buf := h.appendTo(make([]byte, 0, size))

	var pe prefix.Encoder
	var pw prefix.Writer
	pe.Init(codes)
	pw.Init(buf)
	for _, b := range data {
		pw.WriteSymbol(b, &pe)
	}
	buf, _ = pw.Finish()
	return buf
}

// A Writer is an io.WriteCloser that compresses everything written to it.
// Since the code depends on the frequencies of the whole input, the data is
// buffered and a single container is written to the underlying io.Writer
// on Close.
type Writer struct {
	InputOffset  int64 // Total number of bytes passed to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr  io.Writer
	buf []byte
	err error
}

// NewWriter creates a new Writer writing to the given writer.
func NewWriter(w io.Writer) *Writer {
	zw := new(Writer)
	zw.Reset(w)
	return zw
}

// Reset discards the Writer's state and makes it equivalent to the result
// of a call to NewWriter, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) {
	*zw = Writer{wr: w, buf: zw.buf[:0]}
}

// Write buffers buf for compression. It never fails unless the Writer is
// closed or a previous Close failed.
func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	zw.buf = append(zw.buf, buf...)
	zw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close compresses the buffered data and writes the container.
// It does not close the underlying io.Writer.
func (zw *Writer) Close() error {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}

	out := Compress(zw.buf)
	n, err := zw.wr.Write(out)
	zw.OutputOffset += int64(n)
	if err == nil && n < len(out) {
		err = io.ErrShortWrite
	}
	if err != nil {
		zw.err = errors.Wrap(errors.IO, pkgName, err, "container write failed")
		return zw.err
	}

	zw.err = errClosed
	zw.wr, zw.buf = nil, nil // Release references
	return nil
}
