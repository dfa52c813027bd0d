// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of helpers shared by the coding packages.
//
// For performance reasons, these packages lack strong error checking and
// require that the caller ensure that strict invariants are kept.
package internal

// DivCeil divides n by m and rounds up.
func DivCeil(n, m int64) int64 {
	return (n + m - 1) / m
}

// NumPads reports the number of bits needed to pad n bits to a byte boundary.
// The result is always within 0..7.
func NumPads(n int64) uint {
	return uint(DivCeil(n, 8)*8 - n)
}

// BytesFor reports the number of bytes needed to hold n bits.
func BytesFor(n uint) int {
	return int(DivCeil(int64(n), 8))
}
