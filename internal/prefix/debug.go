// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build debug

package prefix

import (
	"fmt"
	"strings"
)

func lenBase10(n int) int { return len(fmt.Sprintf("%d", n)) }
func padBase10(n interface{}, m int) string {
	s := fmt.Sprintf("%d", n)
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func padRight(s string, m int) string {
	if pad := m - len(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func (t CodeTable) String() string {
	maxLen := int(t.MaxLen())
	var ss []string
	ss = append(ss, "{")
	for _, sym := range t.Symbols() {
		c, _ := t.Lookup(sym)
		ss = append(ss, fmt.Sprintf("\t%s:  %s  (len: %s),",
			padBase10(sym, 3), padRight(c.String(), maxLen),
			padBase10(c.Len(), lenBase10(maxLen)),
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

func (f Frequencies) String() string {
	var maxCnt uint64
	for _, cnt := range f {
		if maxCnt < cnt {
			maxCnt = cnt
		}
	}
	maxCntStr := lenBase10(int(maxCnt))

	var ss []string
	ss = append(ss, "{")
	for _, sym := range f.Symbols() {
		cnt := f[sym]
		bar := int(32*float64(cnt)/float64(maxCnt) + 0.5)
		ss = append(ss, fmt.Sprintf("\t%s:  %s |%s",
			padBase10(sym, 3), padBase10(cnt, maxCntStr),
			strings.Repeat("#", bar),
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}

func (t *Tree) String() string {
	if t.Empty() {
		return "{}"
	}
	var ss []string
	var walk func(idx, depth int, label string)
	walk = func(idx, depth int, label string) {
		n := t.nodes[idx]
		indent := strings.Repeat("\t", depth)
		if n.IsLeaf() {
			ss = append(ss, fmt.Sprintf("%s%s%d (sym: %d)", indent, label, n.Freq, n.Sym))
			return
		}
		ss = append(ss, fmt.Sprintf("%s%s%d", indent, label, n.Freq))
		walk(n.Left, depth+1, "0: ")
		walk(n.Right, depth+1, "1: ")
	}
	walk(t.root, 0, "")
	return strings.Join(ss, "\n")
}

func (pd Decoder) String() string {
	var ss []string
	ss = append(ss, "{")
	for i, n := range pd.nodes {
		if n.leaf {
			ss = append(ss, fmt.Sprintf("\t%s:  {sym: %s}", padBase10(i, 3), padBase10(n.sym, 3)))
		} else {
			ss = append(ss, fmt.Sprintf("\t%s:  {0: %s, 1: %s}", padBase10(i, 3),
				padBase10(n.next[0], 3), padBase10(n.next[1], 3)))
		}
	}
	ss = append(ss, fmt.Sprintf("\tnumSyms: %d,", pd.num))
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}
