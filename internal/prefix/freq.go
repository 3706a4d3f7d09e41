// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

// FrequencyTable holds the number of occurrences of every byte value.
// A zero count means the symbol is absent.
type FrequencyTable [MaxSyms]uint64

// CountFrequencies builds the frequency table of data.
func CountFrequencies(data []byte) (ft FrequencyTable) {
	ft.Add(data)
	return ft
}

// Add counts every byte of data.
func (ft *FrequencyTable) Add(data []byte) {
	for _, b := range data {
		ft[b]++
	}
}

// Len reports the number of distinct symbols present.
func (ft *FrequencyTable) Len() (n int) {
	for _, c := range ft {
		if c > 0 {
			n++
		}
	}
	return n
}

// Total reports the sum of all counts.
func (ft *FrequencyTable) Total() (n uint64) {
	for _, c := range ft {
		n += c
	}
	return n
}

// Symbols returns the present symbols in ascending order.
func (ft *FrequencyTable) Symbols() []byte {
	syms := make([]byte, 0, ft.Len())
	for s, c := range ft {
		if c > 0 {
			syms = append(syms, byte(s))
		}
	}
	return syms
}
