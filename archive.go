// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"io"

	"github.com/dsnet/huffman/internal"
	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

// Archive is a compressed input: the code table and the packed payload.
//
// An Archive is never modified after construction and is safe for concurrent
// use. The zero Archive is the archive of an empty input.
type Archive struct {
	table   prefix.CodeTable
	pads    uint   // Unused low bits of the final payload byte
	payload []byte // Packed codes, most-significant-bit first
	dec     *prefix.Decoder
}

// Compress compresses b into an Archive.
func Compress(b []byte) *Archive {
	return compress(b, 1)
}

// compress is Compress where the frequency count is split over workers
// goroutines. The result does not depend on workers.
func compress(b []byte, workers int) *Archive {
	f := prefix.CountFrequencies(b, workers)
	codes := prefix.BuildTree(&f).Codes()
	if internal.Debug && !codes.Valid() {
		panic(errorf(errors.Internal, "derived code table is not prefix-free"))
	}

	pw := prefix.NewWriter()
	pw.WriteSymbols(&codes, b)
	data, pads := pw.Finalize()
	return &Archive{table: codes, pads: pads, payload: data}
}

// CompressReader reads r until io.EOF and compresses everything read.
// A read error is returned unchanged.
func CompressReader(r io.Reader) (*Archive, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Compress(b), nil
}

// Decompress decodes a serialized archive.
func Decompress(b []byte) ([]byte, error) {
	a := new(Archive)
	if err := a.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return a.Decompress()
}

// ReadArchive reads r until io.EOF and parses everything read as a single
// serialized archive. A read error is returned unchanged.
func ReadArchive(r io.Reader) (*Archive, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	a := new(Archive)
	if err := a.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return a, nil
}

// Decompress reports the original input of the archive.
func (a *Archive) Decompress() ([]byte, error) {
	return a.decompress(0)
}

// decompress is Decompress that fails once the output would exceed maxSize
// bytes. A non-positive maxSize means no limit.
func (a *Archive) decompress(maxSize int64) ([]byte, error) {
	dec := a.dec
	if dec == nil {
		var err error
		if dec, err = prefix.NewDecoder(&a.table); err != nil {
			return nil, err
		}
	}
	out, err := prefix.Decode(dec, a.payload, a.pads, maxSize)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// Table reports the code table entries in ascending symbol order.
func (a *Archive) Table() []Entry {
	var ents []Entry
	for _, sym := range a.table.Symbols() {
		c, _ := a.table.Lookup(sym)
		ents = append(ents, Entry{Symbol: sym, Len: c.Len(), Bits: c.Bits()})
	}
	return ents
}

// Pads reports the number of unused low bits in the final payload byte.
func (a *Archive) Pads() uint { return a.pads }

// Payload reports the packed codes. The returned slice must not be modified.
func (a *Archive) Payload() []byte { return a.payload }

// EncodedBits reports the number of meaningful payload bits.
func (a *Archive) EncodedBits() int64 {
	return 8*int64(len(a.payload)) - int64(a.pads)
}

// CompressedSize reports the length of the serialized archive in bytes.
func (a *Archive) CompressedSize() int64 {
	n := int64(1 + 1 + len(a.payload))
	for _, sym := range a.table.Symbols() {
		c, _ := a.table.Lookup(sym)
		n += int64(2 + internal.BytesFor(c.Len()))
	}
	return n
}

// MarshalBinary serializes the archive. It never fails.
func (a *Archive) MarshalBinary() ([]byte, error) {
	return a.appendBinary(make([]byte, 0, a.CompressedSize())), nil
}

// WriteTo writes the serialized archive to w.
// A write error is returned unchanged.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	b, _ := a.MarshalBinary()
	n, err := w.Write(b)
	return int64(n), err
}

func (a *Archive) appendBinary(buf []byte) []byte {
	buf = append(buf, byte(a.table.Len())) // 256 entries wraps to zero
	for _, sym := range a.table.Symbols() {
		c, _ := a.table.Lookup(sym)
		buf = append(buf, sym, byte(c.Len()))
		for i := internal.BytesFor(c.Len()) - 1; i >= 0; i-- {
			buf = append(buf, byte(c.Bits()>>(8*uint(i))))
		}
	}
	buf = append(buf, byte(a.pads))
	return append(buf, a.payload...)
}

// UnmarshalBinary parses a serialized archive, replacing the contents of a.
// It fails with a Corrupted error unless b is exactly what MarshalBinary
// would produce for some table and payload. In particular, the code table
// must be prefix-free.
func (a *Archive) UnmarshalBinary(b []byte) error {
	if len(b) < 2 {
		return errorf(errors.Corrupted, "archive of %d bytes is truncated", len(b))
	}
	num := int(b[0])
	if num == 0 && !(len(b) == 2 && b[1] == 0) {
		num = prefix.NumSymbols
	}

	rest := b[1:]
	codes := make(map[byte]prefix.Code, num)
	last := -1
	for i := 0; i < num; i++ {
		if len(rest) < 2 {
			return errorf(errors.Corrupted, "table entry %d is truncated", i)
		}
		sym, n := rest[0], uint(rest[1])
		if int(sym) <= last {
			return errorf(errors.Corrupted, "symbol %d is out of order", sym)
		}
		if n < 1 || n > prefix.MaxCodeLen {
			return errorf(errors.Corrupted, "invalid code length %d for symbol %d", n, sym)
		}
		nb := internal.BytesFor(n)
		if len(rest) < 2+nb {
			return errorf(errors.Corrupted, "table entry %d is truncated", i)
		}
		var v uint64
		for _, c := range rest[2 : 2+nb] {
			v = v<<8 | uint64(c)
		}
		if n < 64 && v>>n != 0 {
			return errorf(errors.Corrupted, "code pattern for symbol %d exceeds %d bits", sym, n)
		}
		codes[sym] = prefix.NewCode(n, v)
		last = int(sym)
		rest = rest[2+nb:]
	}

	if len(rest) < 1 {
		return errorf(errors.Corrupted, "missing padding count")
	}
	pads, payload := uint(rest[0]), rest[1:]
	if pads > 7 || (pads > 0 && len(payload) == 0) {
		return errorf(errors.Corrupted, "invalid padding count %d", pads)
	}
	table := prefix.NewCodeTable(codes)
	dec, err := prefix.NewDecoder(&table)
	if err != nil {
		return err
	}

	*a = Archive{
		table:   table,
		pads:    pads,
		payload: append([]byte(nil), payload...),
		dec:     dec,
	}
	if internal.GoFuzz && !bytes.Equal(a.appendBinary(nil), b) {
		panic("huffman: archive accepted in non-canonical form")
	}
	return nil
}
