// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"io"
	"testing"

	"github.com/dsnet/huffman/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	var vectors = []struct {
		input []byte
		conf  *WriterConfig
	}{
		{nil, nil},
		{[]byte("abracadabra"), nil},
		{testutil.Generate("text", 1<<16), &WriterConfig{}},
		{testutil.Generate("skewed", 1<<20), &WriterConfig{Concurrency: 4}},
		{testutil.Generate("binary", 1<<20+1), &WriterConfig{Concurrency: 16}},
	}

	for i, v := range vectors {
		var buf bytes.Buffer
		zw, err := NewWriterConfig(&buf, v.conf)
		if err != nil {
			t.Errorf("test %d, unexpected error: NewWriterConfig() = %v", i, err)
			continue
		}

		// Issue writes of varying sizes.
		rd := bytes.NewReader(v.input)
		cnt, err := io.CopyBuffer(zw, struct{ io.Reader }{rd}, make([]byte, 777))
		if err != nil {
			t.Errorf("test %d, unexpected error: Write() = %v", i, err)
		}
		if cnt != int64(len(v.input)) || zw.InputOffset != cnt {
			t.Errorf("test %d, write count mismatch: got %d, want %d", i, cnt, len(v.input))
		}
		if err := zw.Close(); err != nil {
			t.Errorf("test %d, unexpected error: Close() = %v", i, err)
		}

		want, _ := Compress(v.input).MarshalBinary()
		if !bytes.Equal(buf.Bytes(), want) {
			t.Errorf("test %d, output data mismatch", i)
		}
		if zw.OutputOffset != int64(buf.Len()) {
			t.Errorf("test %d, output offset mismatch: got %d, want %d", i, zw.OutputOffset, buf.Len())
		}
	}
}

func TestWriterClosed(t *testing.T) {
	var buf bytes.Buffer
	zw := NewWriter(&buf)
	_, err := zw.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, zw.Close())

	_, err = zw.Write([]byte("world"))
	assert.True(t, IsClosed(err), "Write after Close: %v", err)
	n := buf.Len()
	assert.NoError(t, zw.Close(), "second Close")
	assert.Equal(t, n, buf.Len(), "second Close wrote data")

	// Reset makes the Writer usable again.
	assert.NoError(t, zw.Reset(&buf))
	_, err = zw.Write([]byte("world"))
	assert.NoError(t, err)
	assert.NoError(t, zw.Close())

	output, err := Decompress(buf.Bytes()[n:])
	assert.NoError(t, err)
	assert.Equal(t, "world", string(output))
}

func TestWriterError(t *testing.T) {
	errFail := io.ErrClosedPipe
	wr := &testutil.BuggyWriter{W: io.Discard, N: 10, Err: errFail}
	zw := NewWriter(wr)
	_, err := zw.Write(testutil.Generate("text", 1000))
	assert.NoError(t, err)
	if err := zw.Close(); err != errFail {
		t.Errorf("Close error mismatch: got %v, want %v", err, errFail)
	}
	assert.Equal(t, int64(10), zw.OutputOffset)

	// The error is persistent.
	if _, err := zw.Write([]byte("more")); err != errFail {
		t.Errorf("Write error mismatch: got %v, want %v", err, errFail)
	}
	if err := zw.Close(); err != errFail {
		t.Errorf("Close error mismatch: got %v, want %v", err, errFail)
	}
}

func TestWriterConfig(t *testing.T) {
	_, err := NewWriterConfig(io.Discard, &WriterConfig{Concurrency: -1})
	assert.True(t, IsInvalid(err), "unexpected error: %v", err)
}
