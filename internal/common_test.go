// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package internal

import "testing"

func TestNumPads(t *testing.T) {
	var vectors = []struct {
		bits  int64
		pads  uint
		bytes int
	}{
		{0, 0, 0},
		{1, 7, 1},
		{7, 1, 1},
		{8, 0, 1},
		{9, 7, 2},
		{63, 1, 8},
		{64, 0, 8},
		{1001, 7, 126},
	}
	for i, v := range vectors {
		if got := NumPads(v.bits); got != v.pads {
			t.Errorf("test %d, NumPads(%d): got %d, want %d", i, v.bits, got, v.pads)
		}
		if want := (8 - v.bits%8) % 8; int64(v.pads) != want {
			t.Errorf("test %d, bad vector: pads %d, want %d", i, v.pads, want)
		}
		if got := BytesFor(uint(v.bits)); got != v.bytes {
			t.Errorf("test %d, BytesFor(%d): got %d, want %d", i, v.bits, got, v.bytes)
		}
	}
}
