// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"io"
	"io/ioutil"

	"github.com/cespare/xxhash/v2"

	"github.com/filerelay/huffpack/internal"
	"github.com/filerelay/huffpack/internal/errors"
	"github.com/filerelay/huffpack/internal/prefix"
)

// Decompress decodes a single container produced by Compress.
// Any malformed, truncated, or corrupted input results in a format error
// and no output.
func Decompress(data []byte) (out []byte, err error) {
	defer errors.Recover(&err)
	_, out = decode(data)
	return out, nil
}

func decode(data []byte) (*Header, []byte) {
	h := readHeader(data)
	payload := data[h.HeaderSize:]

	// Every symbol occupies at least one bit.
	switch {
	case h.NumSyms == 0 && len(payload) > 0:
		errors.Panic(errorf(errors.Format, "empty container has %d trailing bytes", len(payload)))
	case h.NumSyms > 8*uint64(len(payload)):
		errors.Panic(errorf(errors.Format, "symbol count %d exceeds payload of %d bytes", h.NumSyms, len(payload)))
	}

	out := make([]byte, h.NumSyms)
	if h.NumSyms > 0 {
		var pd prefix.Decoder
		var pr prefix.Reader
		pd.Init(h.Tree)
		pr.Init(payload, 8*uint64(len(payload)))
		for i := range out {
			out[i] = pr.ReadSymbol(&pd)
		}

		rem := pr.BitsRemaining()
		if rem >= 8 {
			errors.Panic(errorf(errors.Format, "payload has %d trailing bytes", rem/8))
		}
		if rem > 0 && pr.ReadBits(uint(rem)) != 0 {
			errors.Panic(errorf(errors.Format, "non-zero payload padding"))
		}
	}

	if !internal.GoFuzz {
		if sum := xxhash.Sum64(out); sum != h.Checksum {
			errors.Panic(errorf(errors.Format, "checksum mismatch: got %016x, want %016x", sum, h.Checksum))
		}
	}
	return h, out
}

// A Reader is an io.ReadCloser that decompresses a container read from the
// underlying io.Reader. The whole container is read and verified on the first
// call to Read, so no data is returned from a corrupted container.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	// Header is the parsed container header.
	// It is valid after the first successful call to Read.
	Header *Header

	rd      io.Reader
	buf     []byte
	decoded bool
	err     error
}

// NewReader creates a new Reader reading from the given reader.
func NewReader(r io.Reader) *Reader {
	zr := new(Reader)
	zr.Reset(r)
	return zr
}

// Reset discards the Reader's state and makes it equivalent to the result
// of a call to NewReader, but reading from r instead.
func (zr *Reader) Reset(r io.Reader) {
	*zr = Reader{rd: r}
}

// Read reads decompressed data. It returns io.EOF once all data is consumed.
func (zr *Reader) Read(buf []byte) (int, error) {
	if zr.err != nil {
		return 0, zr.err
	}
	if !zr.decoded {
		zr.decoded = true
		if zr.err = zr.decodeAll(); zr.err != nil {
			return 0, zr.err
		}
	}
	if len(zr.buf) == 0 {
		zr.err = io.EOF
		return 0, zr.err
	}

	n := copy(buf, zr.buf)
	zr.buf = zr.buf[n:]
	zr.OutputOffset += int64(n)
	return n, nil
}

// Close ends the stream. It does not close the underlying io.Reader.
func (zr *Reader) Close() error {
	if zr.err == errClosed {
		return nil
	}
	if zr.err != nil && zr.err != io.EOF {
		return zr.err
	}
	zr.err = errClosed
	zr.rd, zr.buf = nil, nil // Release references
	return nil
}

func (zr *Reader) decodeAll() (err error) {
	data, err := ioutil.ReadAll(zr.rd)
	zr.InputOffset += int64(len(data))
	if err != nil {
		return errors.Wrap(errors.IO, pkgName, err, "container read failed")
	}

	defer errors.Recover(&err)
	zr.Header, zr.buf = decode(data)
	return nil
}
