// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	orig := filepath.Join(dir, "original.txt")
	require.NoError(t, ioutil.WriteFile(orig, []byte("aaaabbbcc"), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-q", "compress", orig}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	packed := orig + ".bin"
	assert.Equal(t, packed+"\n", stdout.String())
	assert.Empty(t, stderr.String(), "quiet mode logs nothing on success")

	stdout.Reset()
	code = run([]string{"info", packed}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "symbols:       9\n")
	assert.Contains(t, stdout.String(), "checksum:      f4222f99c10040ad\n")
	assert.Contains(t, stdout.String(), "\t97:   0\n")

	stdout.Reset()
	code = run([]string{"-log-format", "json", "decompress", packed}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	unpacked := filepath.Join(dir, "original_decompressed.txt")
	assert.Equal(t, unpacked+"\n", stdout.String())
	b, err := ioutil.ReadFile(unpacked)
	require.NoError(t, err)
	assert.Equal(t, "aaaabbbcc", string(b))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stderr.String())), &entry))
	assert.Equal(t, "decompress", entry["command"])
	assert.Equal(t, "run complete", entry["msg"])
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.bin")
	require.NoError(t, ioutil.WriteFile(garbage, []byte("garbage"), 0644))

	var vectors = []struct {
		args []string
		code int
	}{
		{[]string{}, exitUsage},
		{[]string{"compress"}, exitUsage},
		{[]string{"compress", "a", "b", "c"}, exitUsage},
		{[]string{"explode", garbage}, exitUsage},
		{[]string{"-log-format", "xml", "compress", garbage}, exitUsage},
		{[]string{"-nosuchflag", "compress", garbage}, exitUsage},
		{[]string{"decompress", garbage}, exitFail},
		{[]string{"info", garbage}, exitFail},
		{[]string{"compress", filepath.Join(dir, "missing.txt")}, exitFail},
	}

	for _, v := range vectors {
		var stdout, stderr bytes.Buffer
		code := run(v.args, &stdout, &stderr)
		assert.Equal(t, v.code, code, "run(%q): stderr:\n%s", v.args, stderr.String())
		assert.Empty(t, stdout.String(), "run(%q)", v.args)
	}
}
