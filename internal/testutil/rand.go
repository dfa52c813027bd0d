// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Rand implements a deterministic pseudo-random number generator.
// This differs from the math.Rand in that the exact output will be consistent
// across different versions of Go.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

func (r *Rand) Uint64() uint64 {
	r.Encrypt(r.blk[:], r.blk[:])
	return binary.LittleEndian.Uint64(r.blk[:])
}

func (r *Rand) Int() int {
	return int(r.Uint64() >> 2)
}

func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	bb := b
	for len(bb) > 0 {
		r.Encrypt(r.blk[:], r.blk[:])
		cnt := copy(bb, r.blk[:])
		bb = bb[cnt:]
	}
	return b
}

// Skewed returns n bytes drawn from the first m byte values, where each value
// is about twice as likely as the next one. Such data has a deep and uneven
// Huffman tree.
func (r *Rand) Skewed(n, m int) []byte {
	b := make([]byte, n)
	for i := range b {
		var sym int
		for sym < m-1 && r.Uint64()&1 == 0 {
			sym++
		}
		b[i] = byte(sym)
	}
	return b
}

func (r *Rand) Perm(n int) []int {
	m := make([]int, n)
	for i := 0; i < n; i++ {
		j := r.Intn(i + 1)
		m[i] = m[j]
		m[j] = i
	}
	return m
}
