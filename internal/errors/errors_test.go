// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"
)

func TestError(t *testing.T) {
	var vectors = []struct {
		err    error
		str    string
		format bool
		io     bool
	}{{
		err:    New(Format, "huffman", "bad magic"),
		str:    "huffman: bad magic",
		format: true,
	}, {
		err: Error{Code: EmptyAlphabet, Pkg: "prefix"},
		str: "prefix: empty alphabet",
	}, {
		err: Wrap(IO, "process", io.ErrUnexpectedEOF, "read %s", "in.txt"),
		str: "process: read in.txt: unexpected EOF",
		io:  true,
	}, {
		err:    fmt.Errorf("outer: %w", New(Format, "huffman", "truncated")),
		str:    "outer: huffman: truncated",
		format: true,
	}, {
		err: io.EOF,
		str: "EOF",
	}}

	for i, v := range vectors {
		if got := v.err.Error(); got != v.str {
			t.Errorf("test %d, Error(): got %q, want %q", i, got, v.str)
		}
		if got := IsFormat(v.err); got != v.format {
			t.Errorf("test %d, IsFormat: got %v, want %v", i, got, v.format)
		}
		if got := IsIO(v.err); got != v.io {
			t.Errorf("test %d, IsIO: got %v, want %v", i, got, v.io)
		}
	}

	wrapped := Wrap(IO, "process", io.ErrShortWrite, "write")
	if !stderrors.Is(wrapped, io.ErrShortWrite) {
		t.Errorf("errors.Is did not unwrap to the cause")
	}
}

func TestRecover(t *testing.T) {
	want := New(Format, "test", "boom")
	got := func() (err error) {
		defer Recover(&err)
		Assert(true, New(Internal, "test", "unreachable"))
		Panic(want)
		return nil
	}()
	if got != want {
		t.Errorf("Recover: got %v, want %v", got, want)
	}

	defer func() {
		if ex := recover(); ex == nil {
			t.Errorf("runtime error was not re-panicked")
		}
	}()
	func() (err error) {
		defer Recover(&err)
		var m map[string]int
		m["x"] = 1 // Assignment to nil map is a runtime error
		return nil
	}()
}
