// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"io"

	"github.com/dsnet/huffman/internal/errors"
)

// ReaderConfig configures a Reader.
type ReaderConfig struct {
	// MaxSize bounds the number of decompressed bytes. Archives that decode
	// to more bytes are reported as corrupted. The zero value means no limit.
	MaxSize int64

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Reader is an io.ReadCloser that decodes a single archive, which extends
// until io.EOF of the underlying reader.
//
// The entire archive is read and decoded upon the first call to Read.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd      io.Reader
	maxSize int64
	toRead  []byte // Decoded data ready to be emitted from Read
	done    bool   // The archive has been decoded
	err     error  // Persistent error
}

// NewReader returns a Reader with the default configuration.
func NewReader(r io.Reader) *Reader {
	zr, _ := NewReaderConfig(r, nil)
	return zr
}

// NewReaderConfig returns a Reader configured by conf.
// A nil conf is the same as the zero ReaderConfig.
func NewReaderConfig(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	var maxSize int64
	if conf != nil {
		maxSize = conf.MaxSize
	}
	if maxSize < 0 {
		return nil, errorf(errors.Invalid, "invalid maximum size: %d", maxSize)
	}
	zr := &Reader{maxSize: maxSize}
	zr.Reset(r)
	return zr, nil
}

func (zr *Reader) Read(buf []byte) (int, error) {
	for {
		if len(zr.toRead) > 0 {
			cnt := copy(buf, zr.toRead)
			zr.toRead = zr.toRead[cnt:]
			zr.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if zr.err != nil {
			return 0, zr.err
		}
		if zr.done {
			zr.err = io.EOF
			continue
		}
		zr.toRead, zr.err = zr.decode()
		zr.done = true
	}
}

func (zr *Reader) decode() ([]byte, error) {
	b, err := io.ReadAll(zr.rd)
	zr.InputOffset += int64(len(b))
	if err != nil {
		return nil, err
	}
	var a Archive
	if err := a.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return a.decompress(zr.maxSize)
}

// Close ends the use of the Reader. Subsequent reads fail with ErrClosed.
// It does not close the underlying reader.
func (zr *Reader) Close() error {
	if zr.err == nil || zr.err == io.EOF || zr.err == ErrClosed {
		zr.toRead = nil // Make sure future reads fail
		zr.err = ErrClosed
		return nil
	}
	return zr.err // Return the persistent error
}

// Reset discards the Reader's state and makes it equivalent to the result of
// its original state from NewReaderConfig, but reading from r instead.
func (zr *Reader) Reset(r io.Reader) error {
	*zr = Reader{rd: r, maxSize: zr.maxSize}
	return nil
}
