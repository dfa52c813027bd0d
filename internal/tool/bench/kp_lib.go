// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_kp_lib

package bench

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/huff0"
)

func init() {
	RegisterEncoder(FormatHuff0, "kp",
		func(w io.Writer, lvl int) io.WriteCloser {
			return newHuff0Writer(w)
		})
	RegisterDecoder(FormatHuff0, "kp",
		func(r io.Reader) io.ReadCloser {
			return newHuff0Reader(r)
		})
	RegisterEncoder(FormatFlate, "kp",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatFlate, "kp",
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})
}

// huff0 only codes independent blocks, so FormatHuff0 streams are framed as
// a sequence of blocks, each being:
//
//	mode    1 byte    one of the huff0Block constants
//	rawLen  uvarint   decoded length of the block
//	data              rawLen bytes if raw, 1 byte if rle,
//	                  or a uvarint length and a huff0 1X stream if compressed
const (
	huff0BlockRaw = iota
	huff0BlockRLE
	huff0BlockHuff

	huff0BlockSize = 64 << 10
)

var errHuff0Corrupt = errors.New("huff0: corrupted frame")

type huff0Writer struct {
	wr  io.Writer
	buf []byte
	s   huff0.Scratch
	hdr []byte
	err error
}

func newHuff0Writer(w io.Writer) *huff0Writer {
	hw := &huff0Writer{wr: w, buf: make([]byte, 0, huff0BlockSize)}
	hw.s.Reuse = huff0.ReusePolicyNone // Every block carries its table
	return hw
}

func (hw *huff0Writer) Write(buf []byte) (int, error) {
	var n int
	for len(buf) > 0 && hw.err == nil {
		cnt := copy(hw.buf[len(hw.buf):cap(hw.buf)], buf)
		hw.buf = hw.buf[:len(hw.buf)+cnt]
		buf = buf[cnt:]
		n += cnt
		if len(hw.buf) == cap(hw.buf) {
			hw.err = hw.flush()
		}
	}
	return n, hw.err
}

func (hw *huff0Writer) flush() error {
	if len(hw.buf) == 0 {
		return nil
	}
	in := hw.buf
	hw.buf = hw.buf[:0]
	hdr := append(hw.hdr[:0], huff0BlockHuff)
	hdr = binary.AppendUvarint(hdr, uint64(len(in)))

	out, _, err := huff0.Compress1X(in, &hw.s)
	switch err {
	case nil:
		hdr = binary.AppendUvarint(hdr, uint64(len(out)))
	case huff0.ErrIncompressible, huff0.ErrTooBig:
		hdr[0], out = huff0BlockRaw, in
	case huff0.ErrUseRLE:
		hdr[0], out = huff0BlockRLE, in[:1]
	default:
		return err
	}
	hw.hdr = hdr
	if _, err := hw.wr.Write(hdr); err != nil {
		return err
	}
	_, err = hw.wr.Write(out)
	return err
}

func (hw *huff0Writer) Close() error {
	if hw.err == nil {
		hw.err = hw.flush()
	}
	return hw.err
}

type huff0Reader struct {
	rd     *bufio.Reader
	s      huff0.Scratch
	toRead []byte
	comp   []byte
	err    error
}

func newHuff0Reader(r io.Reader) *huff0Reader {
	return &huff0Reader{rd: bufio.NewReader(r)}
}

func (hr *huff0Reader) Read(buf []byte) (int, error) {
	for len(hr.toRead) == 0 {
		if hr.err != nil {
			return 0, hr.err
		}
		hr.toRead, hr.err = hr.readBlock()
	}
	n := copy(buf, hr.toRead)
	hr.toRead = hr.toRead[n:]
	return n, nil
}

func (hr *huff0Reader) readBlock() ([]byte, error) {
	mode, err := hr.rd.ReadByte()
	if err != nil {
		return nil, err // io.EOF on a block boundary ends the stream
	}
	rawLen, err := binary.ReadUvarint(hr.rd)
	if err != nil || rawLen == 0 || rawLen > huff0BlockSize {
		return nil, errHuff0Corrupt
	}

	switch mode {
	case huff0BlockRaw:
		out := make([]byte, rawLen)
		if _, err := io.ReadFull(hr.rd, out); err != nil {
			return nil, errHuff0Corrupt
		}
		return out, nil
	case huff0BlockRLE:
		c, err := hr.rd.ReadByte()
		if err != nil {
			return nil, errHuff0Corrupt
		}
		out := make([]byte, rawLen)
		for i := range out {
			out[i] = c
		}
		return out, nil
	case huff0BlockHuff:
		compLen, err := binary.ReadUvarint(hr.rd)
		if err != nil || compLen > 2*huff0BlockSize {
			return nil, errHuff0Corrupt
		}
		if uint64(cap(hr.comp)) < compLen {
			hr.comp = make([]byte, compLen)
		}
		hr.comp = hr.comp[:compLen]
		if _, err := io.ReadFull(hr.rd, hr.comp); err != nil {
			return nil, errHuff0Corrupt
		}
		s, remain, err := huff0.ReadTable(hr.comp, &hr.s)
		if err != nil {
			return nil, err
		}
		return s.Decoder().Decompress1X(make([]byte, 0, rawLen), remain)
	default:
		return nil, errHuff0Corrupt
	}
}

func (hr *huff0Reader) Close() error {
	if hr.err == io.EOF {
		return nil
	}
	return hr.err
}
