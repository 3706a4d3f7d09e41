// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the Huffman codec against general purpose
// compressors with respect to encode speed, decode speed, and ratio.
//
// Implementations are referred to as codecs and are registered per format.
// Codecs of the same format must be able to decode each other's output.
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"testing"

	strconv "github.com/dsnet/golib/unitconv"

	"github.com/filerelay/huffpack/internal/testutil"
)

// Format identifies a compressed data format.
type Format int

const (
	FormatHuffman Format = iota
	FormatFlate
	FormatXZ
)

var formatNames = map[Format]string{
	FormatHuffman: "hf",
	FormatFlate:   "fl",
	FormatXZ:      "xz",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses the short name of a format.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if s == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("bench: unknown format %q", s)
}

// Test identifies a kind of measurement.
type Test int

const (
	TestEncodeRate Test = iota
	TestDecodeRate
	TestCompressRatio
)

var testNames = map[Test]string{
	TestEncodeRate:    "encRate",
	TestDecodeRate:    "decRate",
	TestCompressRatio: "ratio",
}

func (t Test) String() string {
	if s, ok := testNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Test(%d)", int(t))
}

// ParseTest parses the name of a test.
func ParseTest(s string) (Test, error) {
	for t, name := range testNames {
		if s == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("bench: unknown test %q", s)
}

// Encoder creates a compressor at the given level. Codecs without levels
// ignore it.
type Encoder func(w io.Writer, lvl int) io.WriteCloser

// Decoder creates a decompressor.
type Decoder func(r io.Reader) io.ReadCloser

var (
	Encoders = make(map[Format]map[string]Encoder)
	Decoders = make(map[Format]map[string]Decoder)

	// List of search paths for test files.
	Paths []string
)

func RegisterEncoder(f Format, name string, enc Encoder) {
	if Encoders[f] == nil {
		Encoders[f] = make(map[string]Encoder)
	}
	Encoders[f][name] = enc
}

func RegisterDecoder(f Format, name string, dec Decoder) {
	if Decoders[f] == nil {
		Decoders[f] = make(map[string]Decoder)
	}
	Decoders[f][name] = dec
}

// Formats lists every format with a registered codec.
func Formats() []Format {
	m := make(map[Format]bool)
	for f := range Encoders {
		m[f] = true
	}
	for f := range Decoders {
		m[f] = true
	}
	var fs []Format
	for f := range m {
		fs = append(fs, f)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
	return fs
}

// Codecs lists the names of every registered codec in sorted order.
func Codecs() []string {
	m := make(map[string]bool)
	for _, v := range Encoders {
		for k := range v {
			m[k] = true
		}
	}
	for _, v := range Decoders {
		for k := range v {
			m[k] = true
		}
	}
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

// Encode compresses input with enc at the given level.
func Encode(enc Encoder, input []byte, lvl int) ([]byte, error) {
	var bb bytes.Buffer
	wr := enc(&bb, lvl)
	_, err := io.Copy(wr, bytes.NewReader(input))
	if errClose := wr.Close(); err == nil {
		err = errClose
	}
	return bb.Bytes(), err
}

// Decode decompresses input with dec.
func Decode(dec Decoder, input []byte) ([]byte, error) {
	rd := dec(bytes.NewReader(input))
	output, err := ioutil.ReadAll(rd)
	if errClose := rd.Close(); err == nil {
		err = errClose
	}
	return output, err
}

// BenchmarkEncoder benchmarks a single encoder on the given input data using
// the selected compression level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			wr := enc(ioutil.Discard, lvl)
			_, err := io.Copy(wr, bytes.NewReader(input))
			if err := wr.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bufio.NewReader(bytes.NewReader(input)))
			cnt, err := io.Copy(ioutil.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(cnt)
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// rate converts a benchmark result to MB/s.
func rate(result testing.BenchmarkResult) Result {
	if result.N == 0 {
		return Result{}
	}
	us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
	return Result{R: float64(result.Bytes) / us}
}

// BenchmarkEncoderSuite runs multiple benchmarks across all encoder
// implementations, files, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkEncoderSuite(f Format, encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			return rate(BenchmarkEncoder(input, Encoders[f][enc], lvl))
		})
}

// BenchmarkDecoderSuite runs multiple benchmarks across all decoder
// implementations, files, levels, and sizes. The input to every decoder is
// produced by the reference encoder ref.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(decs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkDecoderSuite(f Format, decs, files []string, levels, sizes []int, ref Encoder, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(decs, files, levels, sizes, tick,
		func(input []byte, dec string, lvl int) Result {
			output, err := Encode(ref, input, lvl)
			if err != nil {
				return Result{}
			}
			return rate(BenchmarkDecoder(output, Decoders[f][dec]))
		})
}

// BenchmarkRatioSuite runs multiple benchmarks across all encoder
// implementations, files, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkRatioSuite(f Format, encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			output, err := Encode(Encoders[f][enc], input, lvl)
			if err != nil || len(output) == 0 {
				return Result{}
			}
			return Result{R: float64(len(input)) / float64(len(output))}
		})
}

type benchFunc func(input []byte, codec string, level int) Result

func benchmarkSuite(codecs, files []string, levels, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(levels) * len(sizes)
	d1 := len(codecs)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every codec, file, level, and size.
	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := testutil.LoadFile(getPath(f), n)
				name := getName(f, l, len(b))
				for j, c := range codecs {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil {
						results[i][j] = run(b, c, l)
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

func getPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = filepath.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

var reExp = regexp.MustCompile(`\.0*e\+0*`)

// getName names a benchmark row as file:level:size, where powers of ten are
// written in exponent form and other sizes with binary prefixes.
func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9:
		sn = reExp.ReplaceAllString(fmt.Sprintf("%e", float64(n)), "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", filepath.Base(f), l, sn)
}
