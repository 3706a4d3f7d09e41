// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffpack is a collection of packages implementing static Huffman
// compression of whole files, along with the process layer used by the
// upload relay.
package huffpack

import "github.com/filerelay/huffpack/internal/errors"

// The Error interface identifies all errors raised by this module.
type Error interface {
	error
	CompressError()

	// IsEmptyAlphabet reports an attempt to build a code from no symbols.
	IsEmptyAlphabet() bool

	// IsFormat reports whether the input is not a valid container.
	IsFormat() bool

	// IsIO reports a failure of the underlying file or stream.
	IsIO() bool

	// IsInvalid reports an invalid command or argument.
	IsInvalid() bool
}

var _ Error = errors.Error{}

// IsFormatError reports whether err, or any error it wraps, is a format error.
func IsFormatError(err error) bool { return errors.IsFormat(err) }

// IsEmptyAlphabetError reports whether err, or any error it wraps, is an
// empty alphabet error.
func IsEmptyAlphabetError(err error) bool { return errors.IsEmptyAlphabet(err) }

// IsIOError reports whether err, or any error it wraps, is an i/o error.
func IsIOError(err error) bool { return errors.IsIO(err) }

// IsInvalidError reports whether err, or any error it wraps, is an invalid
// argument error.
func IsInvalidError(err error) bool { return errors.IsInvalid(err) }
