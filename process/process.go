// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package process is the boundary between the upload relay and the codec.
// It runs a single compress or decompress command from an input file to an
// output file, replacing the output atomically so that a failed run never
// leaves a partial file behind.
package process

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/filerelay/huffpack/huffman"
	"github.com/filerelay/huffpack/internal/errors"
)

const pkgName = "process"

// Command selects the direction of a run.
type Command int

const (
	Compress Command = iota + 1
	Decompress
)

var commandNames = map[Command]string{
	Compress:   "compress",
	Decompress: "decompress",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseCommand parses the relay's command name.
func ParseCommand(s string) (Command, error) {
	for c, name := range commandNames {
		if s == name {
			return c, nil
		}
	}
	return 0, errors.New(errors.Invalid, pkgName, "unknown command %q", s)
}

// DefaultOutputPath derives an output path in the directory of inPath.
//
// Compression appends ".bin". Decompression strips ".bin" and marks the name
// with "_decompressed", keeping the original extension if one remains:
// "name.txt.bin" becomes "name_decompressed.txt" and "name.bin" becomes
// "name_decompressed". Any other name keeps its extension, so "name.dat"
// becomes "name_decompressed.dat".
func DefaultOutputPath(cmd Command, inPath string) string {
	if cmd == Compress {
		return inPath + ".bin"
	}
	dir, base := filepath.Split(inPath)
	base = strings.TrimSuffix(base, ".bin")
	ext := filepath.Ext(base)
	if ext == base {
		ext = "" // Hidden file without an extension
	}
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+"_decompressed"+ext)
}

// Processor runs commands on files.
// The zero value is ready for use and logs to the logrus standard logger.
type Processor struct {
	Log logrus.FieldLogger
}

// Run executes cmd on the file at inPath, writing the result to outPath.
// On failure, outPath is left untouched.
func Run(cmd Command, inPath, outPath string) error {
	return new(Processor).Run(cmd, inPath, outPath)
}

// Run executes cmd on the file at inPath, writing the result to outPath.
// On failure, outPath is left untouched.
func (p *Processor) Run(cmd Command, inPath, outPath string) error {
	log := p.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	entry := log.WithFields(logrus.Fields{
		"command": cmd.String(),
		"input":   inPath,
		"output":  outPath,
	})

	start := time.Now()
	inSize, outSize, err := run(cmd, inPath, outPath)
	if err != nil {
		entry.WithError(err).Error("run failed")
		return err
	}

	var ratio float64
	if inSize > 0 {
		ratio = float64(outSize) / float64(inSize)
	}
	entry.WithFields(logrus.Fields{
		"in_bytes":  inSize,
		"out_bytes": outSize,
		"ratio":     ratio,
		"elapsed":   time.Since(start),
	}).Info("run complete")
	return nil
}

func run(cmd Command, inPath, outPath string) (inSize, outSize int, err error) {
	if _, ok := commandNames[cmd]; !ok {
		return 0, 0, errors.New(errors.Invalid, pkgName, "unknown command %d", int(cmd))
	}
	if inPath == "" || outPath == "" {
		return 0, 0, errors.New(errors.Invalid, pkgName, "input and output paths are required")
	}

	input, err := ioutil.ReadFile(inPath)
	if err != nil {
		return 0, 0, errors.Wrap(errors.IO, pkgName, err, "read input")
	}

	var output []byte
	switch cmd {
	case Compress:
		output = huffman.Compress(input)
	case Decompress:
		if output, err = huffman.Decompress(input); err != nil {
			return len(input), 0, err
		}
	}

	if err := writeFile(outPath, output); err != nil {
		return len(input), 0, err
	}
	return len(input), len(output), nil
}

// writeFile replaces the file at path with data. The data is written to a
// temporary file in the same directory, which is renamed into place only
// once it is complete.
func writeFile(path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := ioutil.TempFile(dir, "."+base+".tmp-*")
	if err != nil {
		return errors.Wrap(errors.IO, pkgName, err, "create output")
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(data); err != nil {
		return errors.Wrap(errors.IO, pkgName, err, "write output")
	}
	if err = f.Chmod(0644); err != nil {
		return errors.Wrap(errors.IO, pkgName, err, "write output")
	}
	if err = f.Sync(); err != nil {
		return errors.Wrap(errors.IO, pkgName, err, "sync output")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(errors.IO, pkgName, err, "close output")
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return errors.Wrap(errors.IO, pkgName, err, "rename output")
	}
	return nil
}
