// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"bytes"
	"io"

	"github.com/dsnet/huffman/internal/errors"
	"github.com/icza/bitio"
)

// Decoder is an explicit decode tree rebuilt from a CodeTable.
type Decoder struct {
	nodes []decNode
	num   int // Number of symbols
}

// decNode is a node of the decode tree. A child index of zero means that no
// child exists on that side since the root never appears as a child.
type decNode struct {
	next [2]int32
	sym  byte
	leaf bool
}

// NewDecoder builds the decode tree for t. It fails with a Corrupted error if
// some code of t is a prefix of another one.
//
// A table with a single symbol yields a tree whose only path is that symbol's
// code; every other bit sequence is rejected while decoding.
func NewDecoder(t *CodeTable) (*Decoder, error) {
	pd := &Decoder{nodes: make([]decNode, 1, 2*t.Len()+1), num: t.Len()}
	for _, sym := range t.Symbols() {
		c, _ := t.Lookup(sym)
		var n int32
		for i := int(c.len) - 1; i >= 0; i-- {
			if pd.nodes[n].leaf {
				return nil, errorf(errors.Corrupted, "code %v for symbol %d extends another code", c, sym)
			}
			bit := (c.val >> uint(i)) & 1
			next := pd.nodes[n].next[bit]
			if next == 0 {
				pd.nodes = append(pd.nodes, decNode{})
				next = int32(len(pd.nodes) - 1)
				pd.nodes[n].next[bit] = next
			}
			n = next
		}
		if nd := &pd.nodes[n]; nd.leaf || nd.next != [2]int32{} {
			return nil, errorf(errors.Corrupted, "code %v for symbol %d is a prefix of another code", c, sym)
		}
		pd.nodes[n] = decNode{sym: sym, leaf: true}
	}
	return pd, nil
}

// Len reports the number of symbols the decoder knows.
func (pd *Decoder) Len() int { return pd.num }

// Reader unpacks symbols from a byte-aligned buffer produced by Writer.
// It never consumes the declared padding bits of the final byte.
//
// Methods of Reader panic with errors.Panic on malformed input; callers that
// want an error value must use errors.Recover.
type Reader struct {
	br   *bitio.Reader
	left int64 // Number of meaningful bits not yet consumed
	pads uint
}

// Init prepares the Reader to decode data, whose final byte ends with pads
// unused bits.
func (pr *Reader) Init(data []byte, pads uint) {
	*pr = Reader{
		br:   bitio.NewReader(bytes.NewReader(data)),
		left: int64(len(data))*8 - int64(pads),
		pads: pads,
	}
	if pads > 7 || (len(data) == 0 && pads > 0) {
		errors.Panic(errorf(errors.Corrupted, "invalid padding count %d", pads))
	}
}

// Remaining reports the number of meaningful bits not yet consumed.
func (pr *Reader) Remaining() int64 { return pr.left }

// readBit reads the next meaningful bit.
func (pr *Reader) readBit() uint {
	if pr.left <= 0 {
		errors.Panic(io.ErrUnexpectedEOF)
	}
	b, err := pr.br.ReadBool()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		errors.Panic(err)
	}
	pr.left--
	if b {
		return 1
	}
	return 0
}

// ReadSymbol walks the decode tree from its root one bit at a time and
// reports the symbol of the first leaf reached.
func (pr *Reader) ReadSymbol(pd *Decoder) byte {
	if pd.num == 0 {
		errors.Panic(errorf(errors.Corrupted, "decode with empty table"))
	}
	var n int32
	for !pd.nodes[n].leaf {
		if pr.left <= 0 {
			errors.Panic(errorf(errors.Corrupted, "payload ends within a code"))
		}
		next := pd.nodes[n].next[pr.readBit()]
		if next == 0 {
			errors.Panic(errorf(errors.Corrupted, "bit sequence matches no code"))
		}
		n = next
	}
	return pd.nodes[n].sym
}

// ReadPads consumes the padding bits and checks that they are zero.
// It must only be called once every meaningful bit is consumed.
func (pr *Reader) ReadPads() {
	if pr.left != 0 {
		errors.Panic(errorf(errors.Internal, "padding read with %d bits left", pr.left))
	}
	if pr.pads == 0 {
		return
	}
	v, err := pr.br.ReadBits(uint8(pr.pads))
	if err != nil {
		errors.Panic(err)
	}
	if v != 0 {
		errors.Panic(errorf(errors.Corrupted, "non-zero padding bits"))
	}
}

// Decode decodes every symbol of data, whose final byte ends with pads unused
// bits. If maxSize is positive, decoding fails once the output would exceed
// maxSize bytes.
func Decode(pd *Decoder, data []byte, pads uint, maxSize int64) (out []byte, err error) {
	defer errors.Recover(&err)

	var pr Reader
	pr.Init(data, pads)
	if pr.left > 0 && pd.num == 0 {
		return nil, errorf(errors.Corrupted, "payload without code table")
	}
	for pr.left > 0 {
		if maxSize > 0 && int64(len(out)) >= maxSize {
			return nil, errorf(errors.Corrupted, "decoded size exceeds %d bytes", maxSize)
		}
		out = append(out, pr.ReadSymbol(pd))
	}
	pr.ReadPads()
	return out, nil
}
