// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman_test

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/dsnet/huffman"
)

func ExampleCompress() {
	a := huffman.Compress([]byte("abracadabra"))
	for _, e := range a.Table() {
		fmt.Printf("%q: %v\n", e.Symbol, e)
	}
	fmt.Println("bits:", a.EncodedBits(), "pads:", a.Pads(), "size:", a.CompressedSize())

	b, err := a.MarshalBinary()
	if err != nil {
		log.Fatal(err)
	}
	output, err := huffman.Decompress(b)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(output))

	// Output:
	// 'a': 0
	// 'b': 110
	// 'c': 1110
	// 'd': 1111
	// 'r': 10
	// bits: 23 pads: 1 size: 20
	// abracadabra
}

func ExampleNewWriter() {
	var buf bytes.Buffer
	zw := huffman.NewWriter(&buf)
	if _, err := io.WriteString(zw, "the quick brown fox jumps over the lazy dog"); err != nil {
		log.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		log.Fatal(err)
	}

	zr := huffman.NewReader(&buf)
	output, err := io.ReadAll(zr)
	if err != nil {
		log.Fatal(err)
	}
	if err := zr.Close(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(output))

	// Output:
	// the quick brown fox jumps over the lazy dog
}
