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

func TestReader(t *testing.T) {
	var vectors = []struct {
		desc   string
		input  []byte // Serialized archive
		output []byte
		conf   *ReaderConfig
		errf   func(error) bool
	}{{
		desc:   "empty archive",
		input:  testutil.MustDecodeHex("0000"),
		output: []byte{},
	}, {
		desc:   "small archive",
		input:  testutil.MustDecodeHex("05610100620306" + "63040e64040f720202" + "01" + "69cf68"),
		output: []byte("abracadabra"),
	}, {
		desc:   "within size limit",
		input:  testutil.MustDecodeHex("05610100620306" + "63040e64040f720202" + "01" + "69cf68"),
		output: []byte("abracadabra"),
		conf:   &ReaderConfig{MaxSize: 11},
	}, {
		desc:  "exceeds size limit",
		input: testutil.MustDecodeHex("05610100620306" + "63040e64040f720202" + "01" + "69cf68"),
		conf:  &ReaderConfig{MaxSize: 10},
		errf:  IsCorrupted,
	}, {
		desc:  "truncated archive",
		input: testutil.MustDecodeHex("05610100620306"),
		errf:  IsCorrupted,
	}, {
		desc:   "large archive",
		input:  mustCompress(testutil.Generate("digits", 1<<18)),
		output: testutil.Generate("digits", 1<<18),
	}}

	for i, v := range vectors {
		zr, err := NewReaderConfig(bytes.NewReader(v.input), v.conf)
		if err != nil {
			t.Errorf("test %d (%s), unexpected error: NewReaderConfig() = %v", i, v.desc, err)
			continue
		}
		output, err := io.ReadAll(zr)
		if v.errf != nil {
			if !v.errf(err) {
				t.Errorf("test %d (%s), unexpected error: got %v", i, v.desc, err)
			}
			if err := zr.Close(); err == nil {
				t.Errorf("test %d (%s), Close() succeeded after failure", i, v.desc)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d (%s), unexpected error: Read() = %v", i, v.desc, err)
		}
		if !bytes.Equal(output, v.output) {
			t.Errorf("test %d (%s), output data mismatch", i, v.desc)
		}
		if zr.InputOffset != int64(len(v.input)) {
			t.Errorf("test %d (%s), input offset mismatch: got %d, want %d", i, v.desc, zr.InputOffset, len(v.input))
		}
		if zr.OutputOffset != int64(len(v.output)) {
			t.Errorf("test %d (%s), output offset mismatch: got %d, want %d", i, v.desc, zr.OutputOffset, len(v.output))
		}
		if err := zr.Close(); err != nil {
			t.Errorf("test %d (%s), unexpected error: Close() = %v", i, v.desc, err)
		}
	}
}

func mustCompress(b []byte) []byte {
	out, err := Compress(b).MarshalBinary()
	if err != nil {
		panic(err)
	}
	return out
}

func TestReaderClosed(t *testing.T) {
	zr := NewReader(bytes.NewReader(mustCompress([]byte("hello"))))
	buf := make([]byte, 2)
	n, err := zr.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, "he", string(buf[:n]))
	assert.NoError(t, zr.Close())

	_, err = zr.Read(buf)
	assert.True(t, IsClosed(err), "Read after Close: %v", err)
	assert.NoError(t, zr.Close())

	// Reset makes the Reader usable again.
	assert.NoError(t, zr.Reset(bytes.NewReader(mustCompress([]byte("world")))))
	output, err := io.ReadAll(zr)
	assert.NoError(t, err)
	assert.Equal(t, "world", string(output))
}

func TestReaderError(t *testing.T) {
	errFail := io.ErrNoProgress
	input := mustCompress(testutil.Generate("text", 4096))
	rd := &testutil.BuggyReader{R: bytes.NewReader(input), N: 100, Err: errFail}
	zr := NewReader(rd)
	if _, err := io.ReadAll(zr); err != errFail {
		t.Errorf("Read error mismatch: got %v, want %v", err, errFail)
	}
	assert.Equal(t, int64(100), zr.InputOffset)
	if err := zr.Close(); err != errFail {
		t.Errorf("Close error mismatch: got %v, want %v", err, errFail)
	}

	_, err := NewReaderConfig(rd, &ReaderConfig{MaxSize: -1})
	assert.True(t, IsInvalid(err), "unexpected error: %v", err)
}
