// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"io"
	"sync"
)

// minChunkSize is the smallest input slice worth handing to its own goroutine.
const minChunkSize = 64 << 10

// Frequencies is a histogram of byte values.
type Frequencies [NumSymbols]uint64

// Add tallies every byte of b.
func (f *Frequencies) Add(b []byte) {
	for _, c := range b {
		f[c]++
	}
}

// Merge adds the tallies of o into f.
func (f *Frequencies) Merge(o *Frequencies) {
	for i, n := range o {
		f[i] += n
	}
}

// Distinct reports the number of byte values with a non-zero count.
func (f *Frequencies) Distinct() (n int) {
	for _, cnt := range f {
		if cnt > 0 {
			n++
		}
	}
	return n
}

// Total reports the sum of all counts.
func (f *Frequencies) Total() (n uint64) {
	for _, cnt := range f {
		n += cnt
	}
	return n
}

// Symbols reports the byte values with a non-zero count in ascending order.
func (f *Frequencies) Symbols() []byte {
	var syms []byte
	for i, cnt := range f {
		if cnt > 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// ReadFrequencies counts the bytes of r in a single sequential pass.
// Any error other than io.EOF is returned as is, alongside the partial tally.
func ReadFrequencies(r io.Reader) (f Frequencies, err error) {
	buf := make([]byte, 32<<10)
	for {
		n, err := r.Read(buf)
		f.Add(buf[:n])
		if err == io.EOF {
			return f, nil
		}
		if err != nil {
			return f, err
		}
	}
}

// CountFrequencies counts the bytes of b using up to workers goroutines.
// The input is split into contiguous chunks whose tallies are merged in chunk
// order once every goroutine is done, so the result is identical to a
// sequential count.
func CountFrequencies(b []byte, workers int) (f Frequencies) {
	if n := len(b) / minChunkSize; workers > n {
		workers = n
	}
	if workers <= 1 {
		f.Add(b)
		return f
	}

	chunk := (len(b) + workers - 1) / workers
	tallies := make([]Frequencies, workers)
	var wg sync.WaitGroup
	for i := range tallies {
		lo, hi := i*chunk, (i+1)*chunk
		if hi > len(b) {
			hi = len(b)
		}
		if lo > hi {
			lo = hi
		}
		wg.Add(1)
		go func(t *Frequencies, p []byte) {
			defer wg.Done()
			t.Add(p)
		}(&tallies[i], b[lo:hi])
	}
	wg.Wait()
	for i := range tallies {
		f.Merge(&tallies[i])
	}
	return f
}
