// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/huffman/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := testutil.Generate("text", 1<<16)
	file := filepath.Join(dir, "text.txt")
	require.NoError(t, os.WriteFile(file, input, 0644))

	opts := options{workers: 2}
	require.NoError(t, convert(file, opts, encodeTo))
	_, err := os.Stat(file + ext)
	require.NoError(t, err)

	// Refuse to overwrite existing files.
	assert.Error(t, convert(file, opts, encodeTo))
	require.NoError(t, os.Remove(file))

	opts.decompress = true
	require.NoError(t, convert(file+ext, opts, decodeTo))
	output, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(input, output))

	assert.Error(t, convert(file, opts, decodeTo), "missing suffix")
}

func TestListAndTest(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "abra.txt")
	require.NoError(t, os.WriteFile(file, []byte("abracadabra"), 0644))

	var buf bytes.Buffer
	require.NoError(t, test(file, options{workers: 1}, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), file+": OK"))

	require.NoError(t, convert(file, options{workers: 1}, encodeTo))
	buf.Reset()
	require.NoError(t, list(file+ext, options{}, &buf))
	out := buf.String()
	assert.Contains(t, out, "symbols:    5")
	assert.Contains(t, out, "bits:       23 (+1 padding)")
	assert.Contains(t, out, "0x61   1  0\n")

	// Listing honors the size limit; "abracadabra" is 11 bytes.
	assert.NoError(t, list(file+ext, options{maxSize: 11}, &buf))
	assert.Error(t, list(file+ext, options{maxSize: 10}, &buf))

	buf.Reset()
	require.NoError(t, test(file+ext, options{}, &buf))
	assert.Contains(t, buf.String(), "OK")

	// Decoding beyond the size limit fails.
	assert.Error(t, test(file+ext, options{maxSize: 4}, &buf))

	// A corrupted archive fails to list.
	bad := filepath.Join(dir, "bad"+ext)
	require.NoError(t, os.WriteFile(bad, []byte{0x01, 0x07}, 0644))
	assert.Error(t, list(bad, options{}, &buf))
}

func TestSizes(t *testing.T) {
	var vectors = []struct {
		in   string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{"4096", 4096, true},
		{"1e4", 10000, true},
		{"64k", 64000, true},
		{"64Mi", 64 << 20, true},
		{"-1", 0, false},
		{"lots", 0, false},
	}
	for i, v := range vectors {
		got, err := parseSize(v.in)
		if (err == nil) != v.ok || got != v.want {
			t.Errorf("test %d, parseSize(%q) = (%d, %v), want %d", i, v.in, got, err, v.want)
		}
	}

	assert.Equal(t, "11.00B", formatSize(11))
	assert.Equal(t, "64.00KB", formatSize(64<<10))
}
