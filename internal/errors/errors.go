// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate errors specific to the
// Huffman codec and its process layer.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
)

// Error codes.
const (
	Unknown       = iota // Unclassified error
	Internal             // Broken internal invariant
	Invalid              // Invalid argument or command
	EmptyAlphabet        // Prefix tree requested for zero symbols
	Format               // Malformed, truncated, or foreign container
	IO                   // Failure in the file layer
	Closed               // Use of a closed stream
)

var codeNames = map[int]string{
	Unknown:       "unknown error",
	Internal:      "internal error",
	Invalid:       "invalid argument",
	EmptyAlphabet: "empty alphabet",
	Format:        "format error",
	IO:            "i/o failure",
	Closed:        "closed stream",
}

// Error is the wrapper type for errors specific to this library.
type Error struct {
	Code int    // One of the error codes above
	Pkg  string // Name of the package that raised the error
	Msg  string // Human readable detail
	Err  error  // Underlying cause, if any
}

func (e Error) Error() string {
	var s string
	if e.Pkg != "" {
		s = e.Pkg + ": "
	}
	if e.Msg != "" {
		s += e.Msg
	} else {
		s += codeNames[e.Code]
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e Error) Unwrap() error { return e.Err }

func (e Error) CompressError()         {}
func (e Error) IsInternal() bool      { return e.Code == Internal }
func (e Error) IsInvalid() bool       { return e.Code == Invalid }
func (e Error) IsEmptyAlphabet() bool { return e.Code == EmptyAlphabet }
func (e Error) IsFormat() bool        { return e.Code == Format }
func (e Error) IsIO() bool            { return e.Code == IO }
func (e Error) IsClosed() bool        { return e.Code == Closed }

// New returns an Error with a formatted message.
func New(code int, pkg, format string, args ...interface{}) Error {
	return Error{Code: code, Pkg: pkg, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with the given cause attached.
func Wrap(code int, pkg string, err error, format string, args ...interface{}) Error {
	return Error{Code: code, Pkg: pkg, Msg: fmt.Sprintf(format, args...), Err: err}
}

func codeOf(err error) (int, bool) {
	var e Error
	if stderrors.As(err, &e) {
		return e.Code, true
	}
	return Unknown, false
}

func is(err error, code int) bool {
	c, ok := codeOf(err)
	return ok && c == code
}

func IsInternal(err error) bool      { return is(err, Internal) }
func IsInvalid(err error) bool       { return is(err, Invalid) }
func IsEmptyAlphabet(err error) bool { return is(err, EmptyAlphabet) }
func IsFormat(err error) bool        { return is(err, Format) }
func IsIO(err error) bool            { return is(err, IO) }
func IsClosed(err error) bool        { return is(err, Closed) }

// Panic panics with err. It is paired with Recover at API boundaries.
func Panic(err error) {
	panic(err)
}

// Assert panics with err if cond is false.
func Assert(cond bool, err error) {
	if !cond {
		panic(err)
	}
}

// Recover recovers a panic raised by Panic and stores it in err.
// Runtime errors and non-error values are re-panicked.
func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
