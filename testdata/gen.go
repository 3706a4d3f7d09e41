// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Generates the test corpora. Each file exercises a different symbol
// distribution: text.txt has a natural-language skew, skewed.bin has a
// geometric distribution that produces long codes, random.bin is nearly
// incompressible by prefix coding, and zeros.bin has a single symbol.
//
// The generator is a xorshift64* sequence so that the output does not depend
// on the version of math/rand.
package main

import (
	"bytes"
	"io/ioutil"
)

var words = []string{
	"the", "of", "and", "to", "a", "in", "that", "is", "was", "he",
	"for", "it", "with", "as", "his", "on", "be", "at", "by", "i",
	"this", "had", "not", "are", "but", "from", "or", "have", "an", "they",
	"which", "one", "you", "were", "her", "all", "she", "there", "would", "their",
	"we", "him", "been", "has", "when", "who", "will", "more", "no", "if",
	"out", "so", "said", "what", "up", "its", "about", "into", "than", "them",
	"can", "only", "other", "new", "some", "could", "time", "these", "two", "may",
	"river", "steamboat", "pilot", "mississippi", "raft", "village", "island", "night",
}

type rng uint64

func (r *rng) next() uint64 {
	x := uint64(*r)
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	*r = rng(x)
	return x * 2685821657736338717
}

func main() {
	r := rng(0x9e3779b97f4a7c15)

	// Words are drawn with a quadratic skew towards the front of the list.
	var text bytes.Buffer
	for n := 0; text.Len() < 1<<16; n++ {
		a, b := int(r.next()%uint64(len(words))), int(r.next()%uint64(len(words)))
		w := words[a*b/len(words)]
		switch {
		case n%97 == 96:
			text.WriteString(".\n\n")
		case n%13 == 12:
			text.WriteString(",\n")
		case n > 0:
			text.WriteByte(' ')
		}
		text.WriteString(w)
	}
	text.WriteString(".\n")

	skewed := make([]byte, 1<<16)
	for i := range skewed {
		var s byte
		for x := r.next(); x&1 == 1; x >>= 1 {
			s++
		}
		skewed[i] = 'A' + s
	}

	random := make([]byte, 1<<14)
	for i := range random {
		random[i] = byte(r.next() >> 56)
	}

	for name, b := range map[string][]byte{
		"text.txt":   text.Bytes(),
		"skewed.bin": skewed,
		"random.bin": random,
		"zeros.bin":  make([]byte, 1<<12),
	} {
		if err := ioutil.WriteFile(name, b, 0664); err != nil {
			panic(err)
		}
	}
}
