// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the performance of the static Huffman coder against
// other entropy coders and general purpose compressors with respect to encode
// speed, decode speed, and ratio.
//
// Inputs are either files found in Paths or the names of the synthetic
// corpora of the testutil package (such as "text" or "skewed").
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"
	"testing"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dsnet/huffman/internal/prefix"
	"github.com/dsnet/huffman/internal/testutil"
)

const (
	FormatHuffman = iota
	FormatHuff0
	FormatFlate
	FormatXZ
)

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
	TestEntropyRatio
)

// Encoder returns a compressor writing to w. Codecs without the notion of a
// compression level ignore lvl.
type Encoder func(w io.Writer, lvl int) io.WriteCloser

// Decoder returns a decompressor reading from r.
type Decoder func(r io.Reader) io.ReadCloser

var (
	Encoders map[int]map[string]Encoder
	Decoders map[int]map[string]Decoder

	// List of search paths for test files.
	Paths []string
)

func RegisterEncoder(format int, name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[int]map[string]Encoder)
	}
	if Encoders[format] == nil {
		Encoders[format] = make(map[string]Encoder)
	}
	Encoders[format][name] = enc
}

func RegisterDecoder(format int, name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[int]map[string]Decoder)
	}
	if Decoders[format] == nil {
		Decoders[format] = make(map[string]Decoder)
	}
	Decoders[format][name] = dec
}

// Encode compresses input with enc at the given level.
func Encode(input []byte, enc Encoder, lvl int) ([]byte, error) {
	buf := new(bytes.Buffer)
	wr := enc(buf, lvl)
	_, err := io.Copy(wr, bytes.NewReader(input))
	if cerr := wr.Close(); err == nil {
		err = cerr
	}
	return buf.Bytes(), err
}

// Entropy reports the order-0 Shannon entropy of input in bits. No coder
// that maps each byte to its own codeword can produce fewer bits.
func Entropy(input []byte) float64 {
	f := prefix.CountFrequencies(input, runtime.GOMAXPROCS(0))
	total := float64(f.Total())
	var bits float64
	for _, cnt := range f {
		if cnt > 0 {
			p := float64(cnt) / total
			bits -= float64(cnt) * math.Log2(p)
		}
	}
	return bits
}

// BenchmarkEncoder benchmarks a single encoder on the given input data using
// the selected compression level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			wr := enc(io.Discard, lvl)
			_, err := io.Copy(wr, bytes.NewReader(input))
			if err := wr.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bufio.NewReader(bytes.NewReader(input)))
			cnt, err := io.Copy(io.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(cnt))
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio
	D float64 // Delta ratio relative to primary benchmark
}

// rateOf converts a benchmark result to a rate in MB/s.
func rateOf(result testing.BenchmarkResult) Result {
	if result.N == 0 {
		return Result{}
	}
	us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
	return Result{R: float64(result.Bytes) / us}
}

// BenchmarkEncoderSuite runs multiple benchmarks across all encoder
// implementations, files, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkEncoderSuite(format int, encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			return rateOf(BenchmarkEncoder(input, Encoders[format][enc], lvl))
		})
}

// BenchmarkDecoderSuite runs multiple benchmarks across all decoder
// implementations, files, levels, and sizes. The input of every decoder is
// produced by the same reference encoder.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(decs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkDecoderSuite(format int, decs, files []string, levels, sizes []int, ref Encoder, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(decs, files, levels, sizes, tick,
		func(input []byte, dec string, lvl int) Result {
			output, err := Encode(input, ref, lvl)
			if err != nil {
				return Result{}
			}
			return rateOf(BenchmarkDecoder(output, Decoders[format][dec]))
		})
}

// BenchmarkRatioSuite reports the compression ratio (rawSize/compSize) of
// every encoder across all files, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkRatioSuite(format int, encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			output, err := Encode(input, Encoders[format][enc], lvl)
			if err != nil || len(output) == 0 {
				return Result{}
			}
			return Result{R: float64(len(input)) / float64(len(output))}
		})
}

// BenchmarkEntropySuite reports the size of the output of every encoder
// relative to the order-0 entropy of the input (compBits/entropyBits).
// Values close to 1 mean that the encoder is near the bound of any static
// per-byte code, and values below 1 mean that it models context.
//
// The values returned have the same structure as BenchmarkRatioSuite.
func BenchmarkEntropySuite(format int, encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			output, err := Encode(input, Encoders[format][enc], lvl)
			bound := Entropy(input)
			if err != nil || bound == 0 {
				return Result{}
			}
			return Result{R: 8 * float64(len(output)) / bound}
		})
}

type benchFunc func(input []byte, codec string, level int) Result

func benchmarkSuite(codecs, files []string, levels, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(levels) * len(sizes)
	d1 := len(codecs)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every codec, file, level, and size.
	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := loadInput(f, n)
				name := getName(f, l, len(b))
				for j, c := range codecs {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil {
						results[i][j] = run(b, c, l)
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

// loadInput loads n bytes of the named input. Names of synthetic corpora take
// precedence over file names.
func loadInput(name string, n int) ([]byte, error) {
	for _, c := range testutil.Corpora {
		if name == c {
			return testutil.Generate(name, n), nil
		}
	}
	return testutil.LoadFile(getPath(name), n)
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

var reExp = regexp.MustCompile(`\.0*e\+0*`)

func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9:
		sn = reExp.ReplaceAllString(fmt.Sprintf("%e", float64(n)), "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, sn)
}
