// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/dsnet/huffman/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func testRoundTrip(t *testing.T, enc Encoder, dec Decoder) {
	type entry struct {
		name  string // Name of the test
		input string // The input corpus
		level int    // The compression level
		size  int    // The size of the input
	}
	var vectors []entry
	for _, c := range testutil.Corpora {
		var l, s int = 6, 1e5
		vectors = append(vectors, entry{getName(c, l, s), c, l, s})
	}

	for i, v := range vectors {
		input, err := loadInput(v.input, v.size)
		if err != nil {
			t.Fatalf("test %d, %s: unexpected error: %v", i, v.name, err)
		}
		output, err := Encode(input, enc, v.level)
		if err != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, err)
			continue
		}

		hash := xxhash.New()
		rd := dec(bytes.NewReader(output))
		cnt, cpErr := io.Copy(hash, rd)
		if err := rd.Close(); err != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, err)
			continue
		}
		if cpErr != nil {
			t.Errorf("test %d, %s: unexpected error: %v", i, v.name, cpErr)
			continue
		}

		sum := xxhash.Sum64(input)
		if int(cnt) != len(input) {
			t.Errorf("test %d, %s: mismatching count: got %d, want %d", i, v.name, cnt, len(input))
		}
		if hash.Sum64() != sum {
			t.Errorf("test %d, %s: mismatching checksum: got 0x%016x, want 0x%016x", i, v.name, hash.Sum64(), sum)
		}
	}
}

func TestHuffmanDS(t *testing.T) {
	testRoundTrip(t, Encoders[FormatHuffman]["ds"], Decoders[FormatHuffman]["ds"])
}

func TestHuffmanKP(t *testing.T) {
	testRoundTrip(t, Encoders[FormatHuff0]["kp"], Decoders[FormatHuff0]["kp"])
}

func TestFlate(t *testing.T) {
	testRoundTrip(t, Encoders[FormatFlate]["kp"], Decoders[FormatFlate]["std"])
	testRoundTrip(t, Encoders[FormatFlate]["std-huff"], Decoders[FormatFlate]["kp"])
}

func TestXZ(t *testing.T) {
	testRoundTrip(t, Encoders[FormatXZ]["xz"], Decoders[FormatXZ]["xz"])
}

func TestGetName(t *testing.T) {
	var vectors = []struct {
		file string
		lvl  int
		size int
		want string
	}{
		{"text", 6, 1e4, "text:6:1e4"},
		{"/tmp/twain.txt", 1, 1e6, "twain.txt:1:1e6"},
	}
	for i, v := range vectors {
		if got := getName(v.file, v.lvl, v.size); got != v.want {
			t.Errorf("test %d, name mismatch: got %q, want %q", i, got, v.want)
		}
	}

	// Other sizes use binary prefixes without a redundant fraction.
	name := getName("skewed", 0, 1<<16)
	assert.True(t, strings.HasPrefix(name, "skewed:0:64"), "got %q", name)
	assert.NotContains(t, name, ".00")
}

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, Entropy(nil))
	assert.Equal(t, 0.0, Entropy([]byte{7, 7, 7}))
	assert.Equal(t, 8.0, Entropy([]byte{1, 2, 3, 4}))
	assert.True(t, math.Abs(Entropy([]byte{11, 11, 11, 11, 3, 3})-5.509775) < 1e-6)

	// A static Huffman code never beats the entropy bound.
	for _, name := range []string{"text", "skewed", "digits"} {
		input := testutil.Generate(name, 1e5)
		output, err := Encode(input, Encoders[FormatHuffman]["ds"], 0)
		assert.NoError(t, err)
		assert.True(t, 8*float64(len(output)) >= Entropy(input), "corpus %s", name)
	}
}

// Codecs sharing a format must share a wire format, since the decode suite
// feeds every decoder the output of a single reference encoder.
func TestRegistry(t *testing.T) {
	assert.Contains(t, Encoders[FormatHuffman], "ds")
	assert.NotContains(t, Encoders[FormatHuffman], "kp")
	assert.NotContains(t, Decoders[FormatHuffman], "kp")
	assert.Contains(t, Encoders[FormatHuff0], "kp")
	assert.NotContains(t, Decoders[FormatHuff0], "ds")

	input := testutil.Generate("text", 1e4)
	for _, ft := range []int{FormatHuffman, FormatHuff0} {
		for encName, enc := range Encoders[ft] {
			output, err := Encode(input, enc, 6)
			assert.NoError(t, err)
			for decName, dec := range Decoders[ft] {
				rd := dec(bytes.NewReader(output))
				got, err := io.ReadAll(rd)
				assert.NoError(t, err, "%s -> %s", encName, decName)
				assert.NoError(t, rd.Close(), "%s -> %s", encName, decName)
				assert.True(t, bytes.Equal(got, input), "%s -> %s", encName, decName)
			}
		}
	}
}
