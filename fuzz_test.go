// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"testing"

	"github.com/dsnet/huffman/internal/testutil"
)

func FuzzDecompress(f *testing.F) {
	f.Add([]byte{0, 0})
	f.Add(testutil.MustDecodeHex("0107010005" + "00"))
	f.Add(testutil.MustDecodeHex("03610100620202630203" + "00" + "01"))
	f.Add(mustCompress([]byte("abracadabra")))
	f.Add(mustCompress(testutil.Generate("random", 1024)))

	f.Fuzz(func(t *testing.T, data []byte) {
		a := new(Archive)
		if err := a.UnmarshalBinary(data); err != nil {
			if !IsCorrupted(err) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		if b, _ := a.MarshalBinary(); !bytes.Equal(b, data) {
			t.Fatalf("archive accepted in non-canonical form")
		}
		output, err := a.Decompress()
		if err != nil {
			if !IsCorrupted(err) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}

		// No prefix code beats the Huffman code for the same input.
		a2 := Compress(output)
		if len(output) > 0 && a2.EncodedBits() > a.EncodedBits() {
			t.Fatalf("recompressed size %d bits exceeds %d bits", a2.EncodedBits(), a.EncodedBits())
		}
		b2, _ := a2.MarshalBinary()
		got, err := Decompress(b2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, output) {
			t.Fatalf("round-trip mismatch")
		}
	})
}
