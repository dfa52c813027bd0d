// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements a static, two-pass Huffman compressed data format.
//
// Compression counts the byte frequencies of the whole input, builds a
// Huffman tree with a deterministic merge order, and packs the input as a
// bit-stream prefixed by the code table needed to reverse the transform.
// The same input therefore always produces the same archive.
//
// The archive layout is:
//
//	count   1 byte   number of table entries modulo 256
//	entries count×   symbol (1 byte), length L (1 byte, 1..64),
//	                 pattern (ceil(L/8) bytes, big-endian, right-aligned)
//	pads    1 byte   number of unused low bits in the final payload byte
//	payload ...      codes packed most-significant-bit first
//
// Entries are sorted by ascending symbol. A count of zero denotes the empty
// input only when the archive is exactly the two bytes {0x00, 0x00};
// otherwise it denotes a table with all 256 symbols.
package huffman

import (
	"fmt"

	"github.com/dsnet/huffman/internal/errors"
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "huffman", Msg: fmt.Sprintf(f, a...)}
}

var (
	// ErrCorrupt reports a malformed archive. Every decoding failure caused
	// by the input satisfies IsCorrupted.
	ErrCorrupt error = errors.Error{Code: errors.Corrupted, Pkg: "huffman", Msg: "archive is corrupted"}

	// ErrClosed reports the use of a closed Reader or Writer.
	ErrClosed error = errors.Error{Code: errors.Closed, Pkg: "huffman", Msg: "stream is closed"}
)

// IsCorrupted reports whether err was caused by a malformed archive.
func IsCorrupted(err error) bool { return errors.IsCorrupted(err) }

// IsClosed reports whether err was caused by the use of a closed stream.
func IsClosed(err error) bool { return errors.IsClosed(err) }

// IsInvalid reports whether err was caused by misuse of the API.
func IsInvalid(err error) bool { return errors.IsInvalid(err) }

// Entry is a single code table entry of an Archive.
type Entry struct {
	Symbol byte
	Len    uint   // Code length in bits
	Bits   uint64 // Right-aligned code pattern
}

// String renders the code of e as exactly Len binary digits.
func (e Entry) String() string {
	return fmt.Sprintf("%0*b", e.Len, e.Bits)
}
