// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"bytes"

	"github.com/dsnet/huffman/internal/errors"
	"github.com/icza/bitio"
)

// Writer packs codes into a byte-aligned buffer, most-significant-bit first.
// It performs no I/O; the packed bytes are handed out by Finalize.
//
// Methods of Writer panic with errors.Panic on misuse; callers that want an
// error value must use errors.Recover.
type Writer struct {
	buf  bytes.Buffer
	bw   *bitio.CountWriter
	pads uint
	done bool
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	pw := new(Writer)
	pw.Reset()
	return pw
}

// Reset discards all written bits, allowing the Writer to be reused.
func (pw *Writer) Reset() {
	pw.buf.Reset()
	pw.bw = bitio.NewCountWriter(&pw.buf)
	pw.pads, pw.done = 0, false
}

// WriteCode appends the bits of c.
func (pw *Writer) WriteCode(c Code) {
	if pw.done {
		errors.Panic(errorf(errors.Invalid, "write after finalize"))
	}
	if c.len == 0 {
		errors.Panic(errorf(errors.Invalid, "write of empty code"))
	}
	if err := pw.bw.WriteBitsUnsafe(c.val, c.len); err != nil {
		errors.Panic(err)
	}
}

// WriteSymbols appends the code of every byte of b according to t.
func (pw *Writer) WriteSymbols(t *CodeTable, b []byte) {
	for _, sym := range b {
		c, ok := t.Lookup(sym)
		if !ok {
			errors.Panic(errorf(errors.Invalid, "no code for symbol %d", sym))
		}
		pw.WriteCode(c)
	}
}

// BitsWritten reports the number of code bits written, excluding padding.
func (pw *Writer) BitsWritten() int64 {
	return pw.bw.BitsCount - int64(pw.pads)
}

// Finalize flushes the partial final byte, filling its unused low bits with
// zeros, and reports the packed bytes along with the number of padding bits
// added (within 0..7). No bits may be written afterwards; calling Finalize
// again returns the same result.
func (pw *Writer) Finalize() (data []byte, pads uint) {
	if !pw.done {
		skipped, err := pw.bw.Align()
		if err != nil {
			errors.Panic(err)
		}
		pw.pads, pw.done = uint(skipped), true
	}
	return pw.buf.Bytes(), pw.pads
}
