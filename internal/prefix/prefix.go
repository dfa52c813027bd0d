// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements static Huffman prefix coding over bytes.
//
// The coding pipeline is: Frequencies -> Tree -> CodeTable -> Writer on the
// encoding side, and CodeTable -> Decoder -> Reader on the decoding side.
// All bit-streams are packed most-significant-bit first.
package prefix

import (
	"fmt"

	"github.com/dsnet/huffman/internal/errors"
)

// MaxCodeLen is the maximum bit-length of a Code.
const MaxCodeLen = 64

// NumSymbols is the size of the byte alphabet.
const NumSymbols = 256

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "prefix", Msg: fmt.Sprintf(f, a...)}
}

// Code is a single prefix code. The bit pattern is right-aligned and every
// bit at or above position Len is zero, so two Codes are equal (==) exactly
// when both their lengths and their patterns match.
//
// The zero Code has length zero and is not a valid code; it is used as the
// absent marker within a CodeTable.
type Code struct {
	val uint64 // Right-aligned bit pattern
	len uint8  // Number of bits in val
}

// NewCode constructs a Code of n bits from the low n bits of v.
// Higher bits of v are discarded. It panics if n is not within 1..MaxCodeLen
// since such a request can only come from a broken invariant.
func NewCode(n uint, v uint64) Code {
	if n < 1 || n > MaxCodeLen {
		panic(errorf(errors.Internal, "code length %d out of range", n))
	}
	if n < 64 {
		v &= 1<<n - 1
	}
	return Code{val: v, len: uint8(n)}
}

// Len reports the bit-length of the code.
func (c Code) Len() uint { return uint(c.len) }

// Bits reports the right-aligned bit pattern of the code.
func (c Code) Bits() uint64 { return c.val }

// HasPrefix reports whether p forms the leading bits of c.
// A code is a prefix of itself.
func (c Code) HasPrefix(p Code) bool {
	if p.len > c.len {
		return false
	}
	return c.val>>(c.len-p.len) == p.val
}

// String renders the code as exactly Len binary digits.
func (c Code) String() string {
	if c.len == 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", c.len, c.val)
}

// CodeTable maps byte values to Codes. It holds an entry only for the
// symbols that appeared in the input it was derived from.
//
// CodeTable is a value type. It is never modified after construction and is
// safe for concurrent use by multiple encoders and decoders.
type CodeTable struct {
	codes [NumSymbols]Code
	num   int
}

// NewCodeTable constructs a CodeTable from the given mapping.
// It panics if any of the codes is the zero Code.
func NewCodeTable(m map[byte]Code) CodeTable {
	var t CodeTable
	for sym, c := range m {
		if c.len == 0 {
			panic(errorf(errors.Invalid, "empty code for symbol %d", sym))
		}
		t.codes[sym] = c
	}
	t.num = len(m)
	return t
}

// Lookup reports the code for sym and whether sym has an entry.
func (t *CodeTable) Lookup(sym byte) (Code, bool) {
	c := t.codes[sym]
	return c, c.len > 0
}

// Len reports the number of entries.
func (t *CodeTable) Len() int { return t.num }

// Symbols reports all symbols with an entry in ascending order.
func (t *CodeTable) Symbols() []byte {
	syms := make([]byte, 0, t.num)
	for i, c := range t.codes {
		if c.len > 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// MaxLen reports the length of the longest code.
func (t *CodeTable) MaxLen() (n uint) {
	for _, c := range t.codes {
		if uint(c.len) > n {
			n = uint(c.len)
		}
	}
	return n
}

// EncodedBits reports the total number of bits needed to encode an input
// with the given symbol frequencies. Symbols without an entry are ignored.
func (t *CodeTable) EncodedBits(f *Frequencies) (n int64) {
	for sym, cnt := range f {
		n += int64(cnt) * int64(t.codes[sym].len)
	}
	return n
}

// Valid reports whether no code in the table is a prefix of another.
func (t *CodeTable) Valid() bool {
	syms := t.Symbols()
	for i, si := range syms {
		for _, sj := range syms[i+1:] {
			ci, cj := t.codes[si], t.codes[sj]
			if ci.HasPrefix(cj) || cj.HasPrefix(ci) {
				return false
			}
		}
	}
	return true
}

// Map returns the table as a mapping from symbol to code.
func (t *CodeTable) Map() map[byte]Code {
	m := make(map[byte]Code, t.num)
	for i, c := range t.codes {
		if c.len > 0 {
			m[byte(i)] = c
		}
	}
	return m
}
