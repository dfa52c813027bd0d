// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command huff compresses and decompresses files with static Huffman coding.
//
// Example usage:
//	$ huff twain.txt          # Writes twain.txt.huf
//	$ huff -d twain.txt.huf   # Writes twain.txt
//	$ huff -l twain.txt.huf   # Lists the code table and statistics
//	$ huff -t twain.txt       # Checks that twain.txt survives a round-trip
//	$ cat twain.txt | huff -c > twain.txt.huf
//
// Without file arguments, huff filters standard input to standard output.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"
	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dsnet/huffman"
	"github.com/pkg/errors"
)

const ext = ".huf"

type options struct {
	decompress bool
	stdout     bool
	list       bool
	test       bool
	workers    int
	maxSize    int64
}

func main() {
	var opts options
	var maxSize string
	flag.BoolVar(&opts.decompress, "d", false, "Decompress instead of compress")
	flag.BoolVar(&opts.stdout, "c", false, "Write to standard output and keep input files")
	flag.BoolVar(&opts.list, "l", false, "List the code table and statistics of archives")
	flag.BoolVar(&opts.test, "t", false, "Test the integrity of a round-trip")
	flag.IntVar(&opts.workers, "j", runtime.GOMAXPROCS(0), "Number of goroutines counting frequencies")
	flag.StringVar(&maxSize, "max", "0", "Maximum decompressed size (e.g., 64Mi); 0 means unlimited")
	flag.Parse()

	n, err := parseSize(maxSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "huff: %v\n", err)
		os.Exit(2)
	}
	opts.maxSize = n

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	var failed bool
	for _, file := range files {
		if err := run(file, opts); err != nil {
			fmt.Fprintf(os.Stderr, "huff: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func run(file string, opts options) error {
	switch {
	case opts.list:
		return list(file, opts, os.Stdout)
	case opts.test:
		return test(file, opts, os.Stdout)
	case opts.decompress:
		return convert(file, opts, decodeTo)
	default:
		return convert(file, opts, encodeTo)
	}
}

// open opens file for reading, where "-" denotes standard input.
func open(file string) (io.ReadCloser, error) {
	if file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", file)
	}
	return f, nil
}

type convertFunc func(w io.Writer, r io.Reader, opts options) (rn, wn int64, err error)

func encodeTo(w io.Writer, r io.Reader, opts options) (int64, int64, error) {
	zw, err := huffman.NewWriterConfig(w, &huffman.WriterConfig{Concurrency: opts.workers})
	if err != nil {
		return 0, 0, err
	}
	if _, err := io.Copy(zw, r); err != nil {
		return zw.InputOffset, zw.OutputOffset, err
	}
	err = zw.Close()
	return zw.InputOffset, zw.OutputOffset, err
}

func decodeTo(w io.Writer, r io.Reader, opts options) (int64, int64, error) {
	zr, err := huffman.NewReaderConfig(r, &huffman.ReaderConfig{MaxSize: opts.maxSize})
	if err != nil {
		return 0, 0, err
	}
	if _, err := io.Copy(w, zr); err != nil {
		return zr.InputOffset, zr.OutputOffset, err
	}
	err = zr.Close()
	return zr.InputOffset, zr.OutputOffset, err
}

// convert compresses or decompresses file into its sibling output file, or
// into standard output.
func convert(file string, opts options, fn convertFunc) (err error) {
	src, err := open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	var dst io.Writer = os.Stdout
	var name string
	if file != "-" && !opts.stdout {
		if opts.decompress {
			if !strings.HasSuffix(file, ext) {
				return errors.Errorf("%s: unknown suffix, want %s", file, ext)
			}
			name = strings.TrimSuffix(file, ext)
		} else {
			name = file + ext
		}
		f, ferr := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if ferr != nil {
			return errors.Wrapf(ferr, "create %s", name)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = errors.Wrapf(cerr, "close %s", name)
			}
			if err != nil {
				os.Remove(name)
			}
		}()
		dst = f
	}

	rn, wn, err := fn(dst, src, opts)
	if err != nil {
		return errors.Wrapf(err, "%s", file)
	}
	if name != "" {
		fmt.Printf("%s: %s -> %s (%s)\n", file, formatSize(rn), formatSize(wn), formatRatio(rn, wn, opts.decompress))
	}
	return nil
}

// list prints the code table and statistics of the archive in file. The
// payload is decoded to report its size and digest, subject to opts.maxSize.
func list(file string, opts options, w io.Writer) error {
	src, err := open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	input, err := io.ReadAll(src)
	if err != nil {
		return errors.Wrapf(err, "read %s", file)
	}
	var a huffman.Archive
	if err := a.UnmarshalBinary(input); err != nil {
		return errors.Wrapf(err, "%s", file)
	}
	h := xxhash.New()
	_, n, err := decodeTo(h, bytes.NewReader(input), opts)
	if err != nil {
		return errors.Wrapf(err, "%s", file)
	}

	fmt.Fprintf(w, "%s:\n", file)
	fmt.Fprintf(w, "\tsymbols:    %d\n", len(a.Table()))
	fmt.Fprintf(w, "\tbits:       %d (+%d padding)\n", a.EncodedBits(), a.Pads())
	fmt.Fprintf(w, "\tcompressed: %s\n", formatSize(a.CompressedSize()))
	fmt.Fprintf(w, "\toriginal:   %s\n", formatSize(n))
	fmt.Fprintf(w, "\txxhash:     %016x\n", h.Sum64())
	for _, e := range a.Table() {
		fmt.Fprintf(w, "\t\t0x%02x  %2d  %v\n", e.Symbol, e.Len, e)
	}
	return nil
}

// test checks the integrity of file. An archive is decoded; any other file
// is compressed and decompressed in memory, comparing the digests of the
// input and the output.
func test(file string, opts options, w io.Writer) error {
	src, err := open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	input, err := io.ReadAll(src)
	if err != nil {
		return errors.Wrapf(err, "read %s", file)
	}
	if strings.HasSuffix(file, ext) {
		var buf bytes.Buffer
		if _, _, err := decodeTo(&buf, bytes.NewReader(input), opts); err != nil {
			return errors.Wrapf(err, "%s", file)
		}
		fmt.Fprintf(w, "%s: OK (%016x)\n", file, xxhash.Sum64(buf.Bytes()))
		return nil
	}

	var comp, output bytes.Buffer
	if _, _, err := encodeTo(&comp, bytes.NewReader(input), opts); err != nil {
		return errors.Wrapf(err, "%s", file)
	}
	if _, _, err := decodeTo(&output, &comp, opts); err != nil {
		return errors.Wrapf(err, "%s", file)
	}
	want, got := xxhash.Sum64(input), xxhash.Sum64(output.Bytes())
	if want != got || len(input) != output.Len() {
		return errors.Errorf("%s: digest mismatch: got %016x, want %016x", file, got, want)
	}
	fmt.Fprintf(w, "%s: OK (%016x)\n", file, want)
	return nil
}

// parseSize parses a non-negative size such as "4096", "64k", or "64Mi".
func parseSize(s string) (int64, error) {
	n, err := strconv.ParsePrefix(s, strconv.AutoParse)
	if err != nil || n < 0 || n > math.MaxInt64 {
		return 0, errors.Errorf("invalid size: %q", s)
	}
	return int64(n), nil
}

func formatSize(n int64) string {
	return strconv.FormatPrefix(float64(n), strconv.Base1024, 2) + "B"
}

func formatRatio(rn, wn int64, decompress bool) string {
	if decompress {
		rn, wn = wn, rn
	}
	if wn == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", float64(rn)/float64(wn))
}
