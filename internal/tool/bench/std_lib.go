// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_std_lib

package bench

import (
	"compress/flate"
	"io"
)

func init() {
	RegisterEncoder(FormatFlate, "std",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatFlate, "std",
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})

	// Huffman-only DEFLATE is the closest relative of a static Huffman coder
	// in the standard library. The level is ignored.
	RegisterEncoder(FormatFlate, "std-huff",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, flate.HuffmanOnly)
			if err != nil {
				panic(err)
			}
			return zw
		})
}
