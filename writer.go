// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"io"

	"github.com/dsnet/huffman/internal/errors"
)

// WriterConfig configures a Writer.
type WriterConfig struct {
	// Concurrency is the number of goroutines used to count byte frequencies.
	// The zero value uses a single goroutine. The archive produced does not
	// depend on this setting.
	Concurrency int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Writer is an io.WriteCloser that buffers everything written to it and
// emits a single archive to the underlying writer upon Close.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr      io.Writer
	buf     []byte
	workers int
	err     error // Persistent error
}

// NewWriter returns a Writer with the default configuration.
func NewWriter(w io.Writer) *Writer {
	zw, _ := NewWriterConfig(w, nil)
	return zw
}

// NewWriterConfig returns a Writer configured by conf.
// A nil conf is the same as the zero WriterConfig.
func NewWriterConfig(w io.Writer, conf *WriterConfig) (*Writer, error) {
	var workers int
	if conf != nil {
		workers = conf.Concurrency
	}
	if workers < 0 {
		return nil, errorf(errors.Invalid, "invalid concurrency: %d", workers)
	}
	zw := &Writer{workers: workers}
	zw.Reset(w)
	return zw, nil
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	zw.buf = append(zw.buf, buf...)
	zw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close compresses everything written so far and writes the archive to the
// underlying writer. It does not close the underlying writer.
// Closing an already closed Writer is a no-op.
func (zw *Writer) Close() error {
	if zw.err == ErrClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}
	a := compress(zw.buf, zw.workers)
	n, err := a.WriteTo(zw.wr)
	zw.OutputOffset += n
	if err != nil {
		zw.err = err
		return err
	}
	zw.buf = zw.buf[:0]
	zw.err = ErrClosed
	return nil
}

// Reset discards the Writer's state and makes it equivalent to the result of
// its original state from NewWriterConfig, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) error {
	*zw = Writer{wr: w, buf: zw.buf[:0], workers: zw.workers}
	return nil
}
