// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Huff compresses and decompresses files with the HFZ container format.
// It is the command the upload relay shells out to.
//
// Example usage:
//	$ huff compress original.txt           # Writes original.txt.bin
//	$ huff decompress original.txt.bin     # Writes original_decompressed.txt
//	$ huff info original.txt.bin           # Prints the header and code table
//
// The exit status is 0 on success, 1 on failure, and 2 on a usage error.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/filerelay/huffpack/huffman"
	"github.com/filerelay/huffpack/process"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("huff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Log debug information and print the tree with info")
	quiet := fs.Bool("q", false, "Log only errors")
	logFormat := fs.String("log-format", "text", "Log format: text or json")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: huff [flags] compress|decompress|info <input> [output]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	log := logrus.New()
	log.SetOutput(stderr)
	switch *logFormat {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		fmt.Fprintf(stderr, "invalid log format %q\n", *logFormat)
		fs.Usage()
		return exitUsage
	}
	switch {
	case *verbose:
		log.SetLevel(logrus.DebugLevel)
	case *quiet:
		log.SetLevel(logrus.ErrorLevel)
	}

	if fs.NArg() < 2 || fs.NArg() > 3 {
		fs.Usage()
		return exitUsage
	}
	name, inPath, outPath := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	if name == "info" {
		if err := info(stdout, inPath, *verbose); err != nil {
			log.WithError(err).WithField("input", inPath).Error("info failed")
			return exitFail
		}
		return exitOK
	}

	cmd, err := process.ParseCommand(name)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return exitUsage
	}
	if outPath == "" {
		outPath = process.DefaultOutputPath(cmd, inPath)
		log.WithField("output", outPath).Debug("using default output path")
	}

	p := process.Processor{Log: log}
	if err := p.Run(cmd, inPath, outPath); err != nil {
		return exitFail
	}
	fmt.Fprintln(stdout, outPath)
	return exitOK
}

// info prints the container header of the file at path.
func info(w io.Writer, path string, verbose bool) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	h, err := huffman.ReadHeader(data)
	if err != nil {
		return err
	}

	field := func(name string, v interface{}) {
		fmt.Fprintf(w, "%-15s%v\n", name+":", v)
	}
	field("version", h.Version)
	field("symbols", h.NumSyms)
	field("checksum", fmt.Sprintf("%016x", h.Checksum))
	field("header bytes", h.HeaderSize)
	field("payload bytes", len(data)-h.HeaderSize)
	if h.Tree == nil {
		return nil
	}
	field("tree depth", h.Tree.Depth())
	if verbose {
		field("tree", h.Tree)
	}
	field("codes", h.Codes())
	return nil
}
