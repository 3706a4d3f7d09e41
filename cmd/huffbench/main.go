// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Huffbench compares the Huffman codec with DEFLATE and XZ implementations.
// Individual implementations are referred to as codecs.
//
// Example usage:
//	$ huffbench \
//		-formats hf,fl,xz    \
//		-tests   ratio       \
//		-files   text.txt    \
//		-levels  6           \
//		-sizes   1e4,1e5
//
//	BENCHMARK: hf:ratio
//		benchmark           hp ratio  delta
//		text.txt:6:1e4         1.91x  1.00x
//		text.txt:6:1e5         1.67x  1.00x
//
// Rows are named file:level:size. The delta column compares each codec
// against the first codec listed for the format.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"os"
	"regexp"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/sirupsen/logrus"

	"github.com/filerelay/huffpack/internal/tool/bench"
)

const (
	defaultPaths  = "testdata"
	defaultTests  = "encRate,decRate,ratio"
	defaultLevels = "1,6,9"
	defaultSizes  = "1e4,1e5,1e6"
)

// The decompression speed benchmark works by decompressing some pre-compressed
// data. In order for the benchmarks to be consistent, the same encoder should
// be used to generate the pre-compressed data for all the trials.
//
// encRefs defines the priority order for which encoders to choose first as the
// reference compressor. If no compressor is found for any of the listed codecs,
// then an arbitrary encoder will be chosen.
var encRefs = []string{"hp", "std", "uk"}

func defaultFormats() string {
	var s []string
	for _, f := range bench.Formats() {
		s = append(s, f.String())
	}
	return strings.Join(s, ",")
}

func defaultFiles(paths string) string {
	p := strings.Split(paths, ",")[0]
	fis, err := ioutil.ReadDir(p)
	if err != nil {
		return ""
	}
	var s []string
	for _, fi := range fis {
		if !fi.IsDir() && !strings.HasSuffix(fi.Name(), ".go") {
			s = append(s, fi.Name())
		}
	}
	return strings.Join(s, ",")
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	f0 := flag.String("formats", defaultFormats(), "List of formats to benchmark")
	f1 := flag.String("tests", defaultTests, "List of different benchmark tests")
	f2 := flag.String("codecs", strings.Join(bench.Codecs(), ","), "List of codecs to benchmark")
	f3 := flag.String("paths", defaultPaths, "List of paths to search for test files")
	f4 := flag.String("files", "", "List of input files to benchmark (default: all files in the first path)")
	f5 := flag.String("levels", defaultLevels, "List of compression levels to benchmark")
	f6 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	flag.Parse()

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var formats []bench.Format
	var tests []bench.Test
	var levels, sizes []int
	codecs := sep.Split(*f2, -1)
	paths := sep.Split(*f3, -1)
	if *f4 == "" {
		*f4 = defaultFiles(*f3)
	}
	files := sep.Split(*f4, -1)
	for _, s := range sep.Split(*f0, -1) {
		f, err := bench.ParseFormat(s)
		if err != nil {
			log.WithError(err).Fatal("invalid -formats")
		}
		formats = append(formats, f)
	}
	for _, s := range sep.Split(*f1, -1) {
		t, err := bench.ParseTest(s)
		if err != nil {
			log.WithError(err).Fatal("invalid -tests")
		}
		tests = append(tests, t)
	}
	for _, s := range sep.Split(*f5, -1) {
		lvl, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			log.WithError(err).Fatalf("invalid level %q", s)
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(*f6, -1) {
		nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			log.WithError(err).Fatalf("invalid size %q", s)
		}
		sizes = append(sizes, int(nf))
	}

	ts := time.Now()
	bench.Paths = paths
	runBenchmarks(os.Stdout, files, codecs, formats, tests, levels, sizes)
	log.WithField("runtime", time.Since(ts)).Info("benchmarks complete")
}

func runBenchmarks(w io.Writer, files, codecs []string, formats []bench.Format, tests []bench.Test, levels, sizes []int) {
	for _, f := range formats {
		// Get lists of encoders and decoders that exist.
		var encs, decs []string
		for _, c := range codecs {
			if _, ok := bench.Encoders[f][c]; ok {
				encs = append(encs, c)
			}
			if _, ok := bench.Decoders[f][c]; ok {
				decs = append(decs, c)
			}
		}

		for _, t := range tests {
			var results [][]bench.Result
			var names, used []string
			var title, suffix string

			// Check that we can actually do this bench.
			fmt.Fprintf(w, "BENCHMARK: %v:%v\n", f, t)
			if len(encs) == 0 {
				fmt.Fprint(w, "\tSKIP: There are no encoders available.\n\n")
				continue
			}
			if len(decs) == 0 && t == bench.TestDecodeRate {
				fmt.Fprint(w, "\tSKIP: There are no decoders available.\n\n")
				continue
			}

			// Progress ticker.
			var cnt int
			tick := func() {
				total := len(used) * len(files) * len(levels) * len(sizes)
				pct := 100.0 * float64(cnt) / float64(total)
				fmt.Fprintf(os.Stderr, "\t[%6.2f%%] %d of %d\r", pct, cnt, total)
				cnt++
			}

			// Perform the bench. This may take some time.
			switch t {
			case bench.TestEncodeRate:
				used, title, suffix = encs, "MB/s", ""
				results, names = bench.BenchmarkEncoderSuite(f, encs, files, levels, sizes, tick)
			case bench.TestDecodeRate:
				ref := getReferenceEncoder(f)
				used, title, suffix = decs, "MB/s", ""
				results, names = bench.BenchmarkDecoderSuite(f, decs, files, levels, sizes, ref, tick)
			case bench.TestCompressRatio:
				used, title, suffix = encs, "ratio", "x"
				results, names = bench.BenchmarkRatioSuite(f, encs, files, levels, sizes, tick)
			}

			printResults(w, results, names, used, title, suffix)
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
}

func getReferenceEncoder(f bench.Format) bench.Encoder {
	for _, c := range encRefs {
		if enc, ok := bench.Encoders[f][c]; ok {
			return enc // Choose by priority
		}
	}
	for _, enc := range bench.Encoders[f] {
		return enc // Choose any encoder
	}
	return nil // There are no encoders
}

func printResults(w io.Writer, results [][]bench.Result, names, codecs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	valid := func(f float64) bool { return f != 0 && !math.IsNaN(f) && !math.IsInf(f, 0) }
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if valid(r.R) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if valid(r.D) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Fprint(w, "\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				s += strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				s = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			default: // Column 2, 4, 6, 8, ...
				s = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Fprint(w, s)
		}
		fmt.Fprintln(w)
	}
}
