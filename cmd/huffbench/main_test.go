// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/filerelay/huffpack/internal/tool/bench"
)

func TestPrintResults(t *testing.T) {
	var bb bytes.Buffer
	results := [][]bench.Result{
		{{R: 2, D: 1}, {R: 3, D: 1.5}},
		{{R: 1.25, D: 1}, {}},
	}
	printResults(&bb, results, []string{"a:6:1e4", "bb:6:1e5"}, []string{"hp", "kp"}, "ratio", "x")
	want := strings.Join([]string{
		"\tbenchmark      hp ratio  delta      kp ratio  delta",
		"\ta:6:1e4           2.00x  1.00x         3.00x  1.50x",
		"\tbb:6:1e5          1.25x  1.00x                     ",
		"",
	}, "\n")
	assert.Equal(t, want, bb.String())
}

func TestRunBenchmarks(t *testing.T) {
	bench.Paths = []string{"../../testdata"}
	defer func() { bench.Paths = nil }()

	var bb bytes.Buffer
	runBenchmarks(&bb, []string{"zeros.bin"}, []string{"hp", "std"},
		[]bench.Format{bench.FormatHuffman, bench.FormatXZ},
		[]bench.Test{bench.TestCompressRatio}, []int{6}, []int{1e3})

	out := bb.String()
	assert.Contains(t, out, "BENCHMARK: hf:ratio\n")
	assert.Contains(t, out, "zeros.bin:6:1e3")
	assert.Contains(t, out, "BENCHMARK: xz:ratio\n\tSKIP: There are no encoders available.\n")
}
