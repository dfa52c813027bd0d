// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_ds_lib

package bench

import (
	"io"
	"runtime"

	"github.com/dsnet/huffman"
)

func init() {
	RegisterEncoder(FormatHuffman, "ds",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := huffman.NewWriterConfig(w, &huffman.WriterConfig{Concurrency: runtime.GOMAXPROCS(0)})
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatHuffman, "ds",
		func(r io.Reader) io.ReadCloser {
			return huffman.NewReader(r)
		})
}
