// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/icza/bitio"
)

var (
	reBin = regexp.MustCompile("^[01]{1,64}$")
	reDec = regexp.MustCompile("^D[0-9]+:[0-9]+$")
	reHex = regexp.MustCompile("^H[0-9]+:[0-9a-fA-F]{1,16}$")
	reRaw = regexp.MustCompile("^X:[0-9a-fA-F]+$")
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// DecodeBitGen decodes a BitGen formatted string.
//
// The BitGen format allows bit-streams to be scripted by hand from a series of
// whitespace separated tokens. Bits are packed starting with the
// most-significant bit of each byte, which is the order used by archives.
// The '#' character starts a comment that runs until the end of the line.
//
// A token of the pattern "[01]{1,64}" forms a bit-string (e.g. 11010), whose
// left-most bit is written first.
//
// A token of the form "D[0-9]+:[0-9]+" or "H[0-9]+:[0-9a-fA-F]{1,16}"
// represents a decimal or a hexadecimal value, respectively. The first number
// is the bit-length (0..64) and the second is the value, which must fit.
// The most-significant bit of the value is written first.
//
// A token of the pattern "X:[0-9a-fA-F]+" represents literal bytes in
// hexadecimal. It may only be used when the stream is byte-aligned.
//
// A token decorator of the pattern "[*][0-9]+" may trail any token. It repeats
// the token that number of times.
//
// If the stream does not end on a byte boundary, it is padded with 0 bits.
//
// Example BitGen string:
//	D8:2                # Two table entries
//	D8:65 D8:1 D8:0     # 'A' => 0
//	D8:66 D8:1 D8:1     # 'B' => 1
//	D8:5                # Five padding bits
//	0*2 1               # AAB
//
// Generated output stream (in hexadecimal):
//	"024101004201010520"
func DecodeBitGen(str string) ([]byte, error) {
	// Tokenize the input string by removing comments and superfluous spaces.
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		toks = append(toks, strings.Fields(s)...)
	}

	var buf bytes.Buffer
	bw := bitio.NewCountWriter(&buf)
	for _, t := range toks {
		// Check for quantifier decorators.
		rep := 1
		if reQnt.MatchString(t) {
			i := strings.LastIndexByte(t, '*')
			tt, tn := t[:i], t[i+1:]
			n, err := strconv.Atoi(tn)
			if err != nil {
				return nil, errors.New("testutil: invalid quantified token: " + t)
			}
			t, rep = tt, n
		}

		switch {
		case reBin.MatchString(t):
			var v uint64
			for _, b := range t {
				v = v<<1 | uint64(b-'0')
			}
			for i := 0; i < rep; i++ {
				bw.TryWriteBits(v, uint8(len(t)))
			}
		case reDec.MatchString(t) || reHex.MatchString(t):
			i := strings.IndexByte(t, ':')
			tb, tn, tv := t[0], t[1:i], t[i+1:]

			base := 10
			if tb == 'H' {
				base = 16
			}

			n, err1 := strconv.Atoi(tn)
			v, err2 := strconv.ParseUint(tv, base, 64)
			if err1 != nil || err2 != nil || n > 64 {
				return nil, errors.New("testutil: invalid numeric token: " + t)
			}
			if n < 64 && v&((1<<uint(n))-1) != v {
				return nil, errors.New("testutil: integer overflow on token: " + t)
			}
			for i := 0; i < rep; i++ {
				bw.TryWriteBits(v, uint8(n))
			}
		case reRaw.MatchString(t):
			b, err := hex.DecodeString(t[2:])
			if err != nil {
				return nil, errors.New("testutil: invalid raw bytes token: " + t)
			}
			if bw.BitsCount%8 != 0 {
				return nil, errors.New("testutil: unaligned raw bytes token: " + t)
			}
			bw.TryWrite(bytes.Repeat(b, rep))
		default:
			return nil, errors.New("testutil: invalid token: " + t)
		}
	}
	bw.TryAlign()
	if bw.TryError != nil {
		return nil, bw.TryError
	}
	return buf.Bytes(), nil
}
