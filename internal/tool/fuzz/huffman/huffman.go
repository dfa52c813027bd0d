// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

// Package huffman is a go-fuzz harness for the huffman package.
// Building with the gofuzz tag also enables the internal consistency checks
// of the library itself.
package huffman

import (
	"bytes"
	"io"

	"github.com/dsnet/huffman"
)

func Fuzz(data []byte) int {
	output, ok := testDecoder(data)
	if ok {
		testRoundTrip(output)
		return 1 // Favor valid inputs
	}
	testRoundTrip(data)
	return 0
}

// testDecoder checks that the archive decodes identically through the
// Archive API and the streaming Reader, and that both agree on failure.
func testDecoder(data []byte) ([]byte, bool) {
	b1, err1 := huffman.Decompress(data)
	zr := huffman.NewReader(bytes.NewReader(data))
	b2, err2 := io.ReadAll(zr)

	switch {
	case err1 == nil && err2 == nil:
		if !bytes.Equal(b1, b2) {
			panic("mismatching bytes")
		}
		if err := zr.Close(); err != nil {
			panic(err)
		}
		return b1, true
	case err1 != nil && err2 != nil:
		if !huffman.IsCorrupted(err1) || !huffman.IsCorrupted(err2) {
			panic("unexpected error kind")
		}
		return nil, false
	default:
		panic("decoders disagree")
	}
}

// testRoundTrip compresses the input with the Writer and checks that it
// decodes back to the input and that the output is deterministic.
func testRoundTrip(want []byte) {
	bb := new(bytes.Buffer)
	zw, err := huffman.NewWriterConfig(bb, &huffman.WriterConfig{Concurrency: 4})
	if err != nil {
		panic(err)
	}
	n, err := zw.Write(want)
	if n != len(want) || err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}

	b, _ := huffman.Compress(want).MarshalBinary()
	if !bytes.Equal(b, bb.Bytes()) {
		panic("non-deterministic output")
	}
	got, ok := testDecoder(bb.Bytes())
	if !bytes.Equal(got, want) || !ok {
		panic("mismatching bytes")
	}
}
