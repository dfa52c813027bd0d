// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to compare the static Huffman coder with other entropy
// coders and compressors. Individual implementations are referred to as codecs.
//
// Example usage:
//	$ go run ./cmd/huffbench \
//		-formats huff,h0,fl       \
//		-tests   encRate,ratio    \
//		-codecs  ds,kp,std        \
//		-files   text,skewed      \
//		-sizes   1e4,1e5,1e6
//
// Inputs named after a synthetic corpus (zeros, single, digits, text, skewed,
// binary, random) are generated; any other name is a file looked up in -paths.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dsnet/huffman/internal/testutil"
	"github.com/dsnet/huffman/internal/tool/bench"
	"github.com/pkg/errors"
)

const (
	defaultLevels = "6"
	defaultSizes  = "1e4,1e5,1e6"
)

// The decompression speed benchmark works by decompressing some pre-compressed
// data. In order for the benchmarks to be consistent, the same encoder should
// be used to generate the pre-compressed data for all the trials.
//
// encRefs defines the priority order for which encoders to choose first as the
// reference compressor. If no compressor is found for any of the listed codecs,
// then a random encoder will be chosen.
var encRefs = []string{"ds", "std", "kp", "xz"}

var (
	fmtToEnum = map[string]int{
		"huff": bench.FormatHuffman,
		"h0":   bench.FormatHuff0,
		"fl":   bench.FormatFlate,
		"xz":   bench.FormatXZ,
	}
	enumToFmt = map[int]string{
		bench.FormatHuffman: "huff",
		bench.FormatHuff0:   "h0",
		bench.FormatFlate:   "fl",
		bench.FormatXZ:      "xz",
	}
	testToEnum = map[string]int{
		"encRate": bench.TestEncodeRate,
		"decRate": bench.TestDecodeRate,
		"ratio":   bench.TestCompressRatio,
		"entropy": bench.TestEntropyRatio,
	}
	enumToTest = map[int]string{
		bench.TestEncodeRate:    "encRate",
		bench.TestDecodeRate:    "decRate",
		bench.TestCompressRatio: "ratio",
		bench.TestEntropyRatio:  "entropy",
	}
)

func sortedKeys(m map[int]string) string {
	var d []int
	for k := range m {
		d = append(d, k)
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, m[v])
	}
	return strings.Join(s, ",")
}

func defaultCodecs() string {
	m := make(map[string]bool)
	for _, v := range bench.Encoders {
		for k := range v {
			m[k] = true
		}
	}
	for _, v := range bench.Decoders {
		for k := range v {
			m[k] = true
		}
	}
	hasDS := m["ds"]
	delete(m, "ds")
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	if hasDS {
		s = append([]string{"ds"}, s...) // Ensure "ds" always appears first
	}
	return strings.Join(s, ",")
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "huffbench: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Setup flag arguments.
	f0 := flag.String("formats", sortedKeys(enumToFmt), "List of formats to benchmark")
	f1 := flag.String("tests", sortedKeys(enumToTest), "List of different benchmark tests")
	f2 := flag.String("codecs", defaultCodecs(), "List of codecs to benchmark")
	f3 := flag.String("paths", "", "List of paths to search for test files")
	f4 := flag.String("files", strings.Join(testutil.Corpora, ","), "List of inputs to benchmark")
	f5 := flag.String("levels", defaultLevels, "List of compression levels to benchmark")
	f6 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	flag.Parse()

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var codecs, paths, files []string
	var formats, tests, levels, sizes []int
	codecs = sep.Split(*f2, -1)
	if *f3 != "" {
		paths = sep.Split(*f3, -1)
	}
	files = sep.Split(*f4, -1)
	for _, s := range sep.Split(*f0, -1) {
		f, ok := fmtToEnum[s]
		if !ok {
			return errors.Errorf("invalid format: %q", s)
		}
		formats = append(formats, f)
	}
	for _, s := range sep.Split(*f1, -1) {
		t, ok := testToEnum[s]
		if !ok {
			return errors.Errorf("invalid test: %q", s)
		}
		tests = append(tests, t)
	}
	for _, s := range sep.Split(*f5, -1) {
		lvl, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			return errors.Wrapf(err, "invalid level %q", s)
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(*f6, -1) {
		nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			return errors.Wrapf(err, "invalid size %q", s)
		}
		sizes = append(sizes, int(nf))
	}

	ts := time.Now()
	bench.Paths = paths
	runBenchmarks(files, codecs, formats, tests, levels, sizes)
	fmt.Printf("RUNTIME: %v\n", time.Since(ts))
	return nil
}

func runBenchmarks(files, codecs []string, formats, tests, levels, sizes []int) {
	for _, f := range formats {
		// Get lists of encoders and decoders that exist.
		var encs, decs []string
		for _, c := range codecs {
			if _, ok := bench.Encoders[f][c]; ok {
				encs = append(encs, c)
			}
			if _, ok := bench.Decoders[f][c]; ok {
				decs = append(decs, c)
			}
		}

		for _, t := range tests {
			var results [][]bench.Result
			var names, codecs []string
			var title, suffix string

			// Check that we can actually do this bench.
			fmt.Printf("BENCHMARK: %s:%s\n", enumToFmt[f], enumToTest[t])
			if len(encs) == 0 {
				fmt.Print("\tSKIP: There are no encoders available.\n\n")
				continue
			}
			if len(decs) == 0 && t == bench.TestDecodeRate {
				fmt.Print("\tSKIP: There are no decoders available.\n\n")
				continue
			}

			// Progress ticker.
			var cnt int
			tick := func() {
				total := len(codecs) * len(files) * len(levels) * len(sizes)
				pct := 100.0 * float64(cnt) / float64(total)
				fmt.Printf("\t[%6.2f%%] %d of %d\r", pct, cnt, total)
				cnt++
			}

			// Perform the bench. This may take some time.
			switch t {
			case bench.TestEncodeRate:
				codecs, title, suffix = encs, "MB/s", ""
				results, names = bench.BenchmarkEncoderSuite(f, encs, files, levels, sizes, tick)
			case bench.TestDecodeRate:
				ref := getReferenceEncoder(f)
				codecs, title, suffix = decs, "MB/s", ""
				results, names = bench.BenchmarkDecoderSuite(f, decs, files, levels, sizes, ref, tick)
			case bench.TestCompressRatio:
				codecs, title, suffix = encs, "ratio", "x"
				results, names = bench.BenchmarkRatioSuite(f, encs, files, levels, sizes, tick)
			case bench.TestEntropyRatio:
				codecs, title, suffix = encs, "H0", "x"
				results, names = bench.BenchmarkEntropySuite(f, encs, files, levels, sizes, tick)
			}

			// Print all of the results.
			printResults(results, names, codecs, title, suffix)
			fmt.Println()
		}
		fmt.Println()
	}
}

func getReferenceEncoder(f int) bench.Encoder {
	for _, c := range encRefs {
		if enc, ok := bench.Encoders[f][c]; ok {
			return enc // Choose by priority
		}
	}
	for _, enc := range bench.Encoders[f] {
		return enc // Choose any random encoder
	}
	return nil // There are no encoders
}

func printResults(results [][]bench.Result, names, codecs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if valid(r.R) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if valid(r.D) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				s += strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				s = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			default: // Column 2, 4, 6, 8, ...
				s = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Print(s)
		}
		fmt.Println()
	}
}

func valid(f float64) bool {
	return f != 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}
