// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/filerelay/huffpack/internal/errors"
	"github.com/filerelay/huffpack/internal/prefix"
	"github.com/filerelay/huffpack/internal/testutil"
)

var testFiles = []string{"text.txt", "skewed.bin", "random.bin", "zeros.bin"}

func loadFile(name string) []byte {
	return testutil.MustLoadFile(filepath.Join("../testdata", name), -1)
}

// testInputs returns a named set of inputs covering the edge cases of the
// alphabet along with the test corpora.
func testInputs() map[string][]byte {
	r := testutil.NewRand(0)
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	inputs := map[string][]byte{
		"Empty":        nil,
		"SingleByte":   {0x42},
		"SingleFF":     {0xff},
		"Identical":    bytes.Repeat([]byte{'z'}, 1000),
		"TwoSymbols":   []byte("abababababbbbbba"),
		"FullAlphabet": all,
		"FullTwice":    append(append([]byte(nil), all...), all...),
		"Example":      []byte("aaaabbbcc"),
		"Random":       r.Bytes(5000),
		"Skewed":       r.Skewed(20000, 40),
		"SkewedFull":   r.Skewed(20000, 256),
	}
	for _, f := range testFiles {
		inputs[f] = loadFile(f)
	}
	return inputs
}

func TestCompress(t *testing.T) {
	var vectors = []struct {
		desc   string
		input  []byte
		output []byte
	}{{
		desc:  "empty input is only the header",
		input: nil,
		output: testutil.MustDecodeBitGen(`
			S:HFZ X:01                   # Magic and version
			H64:0                        # Symbol count
			H64:ef46db3751d8e999         # Checksum
		`),
	}, {
		desc:  "single symbol gets code 0",
		input: []byte("x"),
		output: testutil.MustDecodeBitGen(`
			S:HFZ X:01 H64:1 H64:5c80c09683041123
			0 1 D8:120 1 D8:121 0*5      # Tree: {x, y}
			0                            # Payload: x
		`),
	}, {
		desc:  "aaaabbbcc",
		input: []byte("aaaabbbcc"),
		output: testutil.MustDecodeBitGen(`
			S:HFZ X:01 H64:9 H64:f4222f99c10040ad
			0 1 D8:97 0 1 D8:99 1 D8:98 000  # Tree: {a, {c, b}}
			0*4 11*3 10*2                    # Payload: 14 bits
		`),
	}}

	for i, v := range vectors {
		output := Compress(v.input)
		if !bytes.Equal(output, v.output) {
			t.Errorf("test %d (%s), output mismatch:\ngot  %x\nwant %x", i, v.desc, output, v.output)
		}
		input, err := Decompress(output)
		if err != nil {
			t.Errorf("test %d (%s), unexpected error: %v", i, v.desc, err)
		}
		if !bytes.Equal(input, v.input) {
			t.Errorf("test %d (%s), input mismatch: got %x, want %x", i, v.desc, input, v.input)
		}
	}

	if got := len(Compress([]byte("aaaabbbcc"))); got != FixedHeaderSize+4+2 {
		t.Errorf("container size mismatch: got %d, want %d", got, FixedHeaderSize+4+2)
	}
}

func TestDecompressErrors(t *testing.T) {
	const (
		hdr9 = "S:HFZ X:01 H64:9 H64:f4222f99c10040ad"
		tree = "0 1 D8:97 0 1 D8:99 1 D8:98 000"
		body = "0*4 11*3 10*2"
	)

	var vectors = []struct {
		desc  string
		input string
	}{
		{"empty input", ""},
		{"short header", "S:HFZ X:01 H64:0"},
		{"bad magic", "S:HFY X:01 H64:0 H64:ef46db3751d8e999"},
		{"bad version", "S:HFZ X:02 H64:0 H64:ef46db3751d8e999"},
		{"empty container with trailing data", "S:HFZ X:01 H64:0 H64:ef46db3751d8e999 X:00"},
		{"empty container with bad checksum", "S:HFZ X:01 H64:0 H64:0"},
		{"tree missing", hdr9},
		{"tree truncated", hdr9 + " 0 1 D8:97 0"},
		{"tree root is a leaf", hdr9 + " 1 D8:97 0*7 X:00"},
		{"tree has duplicate symbols", hdr9 + " 0 1 D8:97 1 D8:97 0*5 X:00"},
		{"tree has too many internal nodes", hdr9 + " 0*256 1 D8:0"},
		{"tree padding is non-zero", hdr9 + " 0 1 D8:97 0 1 D8:99 1 D8:98 001 " + body},
		{"tree without payload", hdr9 + " " + tree},
		{"symbol count exceeds payload", "S:HFZ X:01 H64:17 H64:f4222f99c10040ad " + tree + " " + body},
		{"symbol count is huge", "S:HFZ X:01 H64:ffffffffffffffff H64:0 " + tree + " " + body},
		{"payload truncated", "S:HFZ X:01 H64:5 H64:0 " + tree + " 11*4"},
		{"payload has trailing bytes", hdr9 + " " + tree + " " + body + " 00 X:00"},
		{"payload padding is non-zero", hdr9 + " " + tree + " " + body + " 01"},
		{"checksum mismatch", "S:HFZ X:01 H64:9 H64:f4222f99c10040ac " + tree + " " + body},
		{"payload corrupted", hdr9 + " " + tree + " 0*4 11*3 10 0 0"},
	}

	for i, v := range vectors {
		input := testutil.MustDecodeBitGen(v.input)
		output, err := Decompress(input)
		if !errors.IsFormat(err) {
			t.Errorf("test %d (%s), error mismatch: got %v, want format error", i, v.desc, err)
		}
		if output != nil {
			t.Errorf("test %d (%s), unexpected output: %x", i, v.desc, output)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for name, input := range testInputs() {
		input := input
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			output := Compress(input)
			got, err := Decompress(output)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, input) {
				t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(input))
			}

			// Payload bits never exceed those of a fixed 8-bit code.
			if max := FixedHeaderSize + 320 + len(input); len(output) > max {
				t.Errorf("output too large: got %d bytes, want at most %d", len(output), max)
			}
			if !bytes.Equal(Compress(input), output) {
				t.Errorf("compression is not deterministic")
			}
		})
	}
}

func TestCompressionRatio(t *testing.T) {
	var vectors = []struct {
		file     string
		maxRatio float64
	}{
		{"text.txt", 0.60},
		{"skewed.bin", 0.30},
		{"zeros.bin", 0.15},
		{"random.bin", 1.05},
	}

	for _, v := range vectors {
		input := loadFile(v.file)
		output := Compress(input)
		if ratio := float64(len(output)) / float64(len(input)); ratio > v.maxRatio {
			t.Errorf("%s: ratio %0.3f exceeds %0.3f", v.file, ratio, v.maxRatio)
		}
	}
}

func TestTruncation(t *testing.T) {
	for _, name := range []string{"Example", "SingleByte", "FullAlphabet", "text.txt"} {
		input := testInputs()[name]
		output := Compress(input)
		for n := 0; n < len(output); n += 1 + n/16 {
			if _, err := Decompress(output[:n]); !errors.IsFormat(err) {
				t.Errorf("%s: truncated to %d bytes, got %v, want format error", name, n, err)
			}
		}
	}
}

func TestBitFlips(t *testing.T) {
	input := loadFile("text.txt")[:4096]
	output := Compress(input)
	r := testutil.NewRand(1)
	for i := 0; i < 200; i++ {
		corrupt := append([]byte(nil), output...)
		pos := r.Intn(8 * len(corrupt))
		corrupt[pos/8] ^= 0x80 >> uint(pos%8)
		got, err := Decompress(corrupt)
		if err == nil && !bytes.Equal(got, input) {
			t.Fatalf("flip at bit %d: corrupted data decoded without error", pos)
		}
		if err != nil && !errors.IsFormat(err) {
			t.Fatalf("flip at bit %d: got %v, want format error", pos, err)
		}
	}
}

func TestReadHeader(t *testing.T) {
	h, err := ReadHeader(Compress([]byte("aaaabbbcc")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Version != Version || h.NumSyms != 9 || h.Checksum != 0xf4222f99c10040ad || h.HeaderSize != 24 {
		t.Errorf("header mismatch: %+v", h)
	}
	got := make(map[byte]string)
	for _, c := range h.Codes() {
		got[c.Sym] = c.String()
	}
	want := map[byte]string{'a': "0", 'b': "11", 'c': "10"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}

	h, err = ReadHeader(Compress(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Tree != nil || h.Codes() != nil || h.HeaderSize != FixedHeaderSize {
		t.Errorf("empty header mismatch: %+v", h)
	}

	if _, err := ReadHeader([]byte("HFZ")); !errors.IsFormat(err) {
		t.Errorf("short header: got %v, want format error", err)
	}
}

// TestHeaderCodes checks that the codes recovered from a container match
// those used to produce it.
func TestHeaderCodes(t *testing.T) {
	for name, input := range testInputs() {
		if len(input) == 0 {
			continue
		}
		ft := prefix.CountFrequencies(input)
		tree, err := prefix.BuildTree(&ft)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		want := prefix.GenerateCodes(tree)

		h, err := ReadHeader(Compress(input))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		got := h.Codes()
		for i := range want {
			want[i].Cnt = 0
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: codes mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestConcurrent(t *testing.T) {
	inputs := testInputs()
	var wg sync.WaitGroup
	errc := make(chan error, 8*len(inputs))
	for i := 0; i < 8; i++ {
		for name, input := range inputs {
			wg.Add(1)
			go func(name string, input []byte) {
				defer wg.Done()
				got, err := Decompress(Compress(input))
				if err == nil && !bytes.Equal(got, input) {
					err = fmt.Errorf("%s: round trip mismatch", name)
				}
				errc <- err
			}(name, input)
		}
	}
	wg.Wait()
	close(errc)
	for err := range errc {
		if err != nil {
			t.Error(err)
		}
	}
}

func FuzzDecompress(f *testing.F) {
	for _, input := range testInputs() {
		if len(input) < 1024 {
			f.Add(Compress(input))
		}
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		output, err := Decompress(data)
		if err != nil {
			if !errors.IsFormat(err) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		got, err := Decompress(Compress(output))
		if err != nil || !bytes.Equal(got, output) {
			t.Fatalf("round trip of decoded data failed: %v", err)
		}
	})
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte(nil))
	f.Add([]byte("aaaabbbcc"))
	f.Fuzz(func(t *testing.T, input []byte) {
		output, err := Decompress(Compress(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(output, input) {
			t.Fatalf("round trip mismatch")
		}
	})
}

func BenchmarkCompress(b *testing.B) {
	for _, f := range testFiles {
		input := loadFile(f)
		b.Run(f, func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			for i := 0; i < b.N; i++ {
				Compress(input)
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	for _, f := range testFiles {
		input := loadFile(f)
		output := Compress(input)
		b.Run(f, func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			for i := 0; i < b.N; i++ {
				if _, err := Decompress(output); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
