// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"container/heap"
	"io"
)

// Node is a node of a Tree. Children are referenced by their index within
// the tree's node arena; a leaf has no children.
type Node struct {
	Freq  uint64 // Sum of the frequencies of all leaves under this node
	Sym   byte   // Symbol for a leaf; smallest symbol underneath otherwise
	Left  int    // Index of the bit-0 child, or -1 for a leaf
	Right int    // Index of the bit-1 child, or -1 for a leaf
}

// IsLeaf reports whether n is a leaf.
func (n Node) IsLeaf() bool { return n.Left < 0 }

// Tree is a Huffman tree. Every internal node has exactly two children.
// A tree built from a single distinct symbol is a lone leaf, and a tree built
// from an empty input has no nodes at all.
type Tree struct {
	nodes []Node
	root  int
}

// less orders nodes by frequency and breaks ties by the smallest symbol
// underneath each node. Live subtrees never share a symbol, so this is a
// strict total order and the merge sequence is fully determined by the input.
func (t *Tree) less(i, j int) bool {
	a, b := &t.nodes[i], &t.nodes[j]
	if a.Freq != b.Freq {
		return a.Freq < b.Freq
	}
	return a.Sym < b.Sym
}

// nodeHeap is a min-heap of node indices into a Tree.
type nodeHeap struct {
	t    *Tree
	idxs []int
}

func (h *nodeHeap) Len() int           { return len(h.idxs) }
func (h *nodeHeap) Less(i, j int) bool { return h.t.less(h.idxs[i], h.idxs[j]) }
func (h *nodeHeap) Swap(i, j int)      { h.idxs[i], h.idxs[j] = h.idxs[j], h.idxs[i] }
func (h *nodeHeap) Push(x interface{}) { h.idxs = append(h.idxs, x.(int)) }
func (h *nodeHeap) Pop() interface{} {
	n := len(h.idxs) - 1
	x := h.idxs[n]
	h.idxs = h.idxs[:n]
	return x
}

// BuildTree builds the Huffman tree for the given frequencies.
//
// The two least frequent nodes are merged until a single root remains.
// The first node selected becomes the bit-0 (left) child and the second one
// becomes the bit-1 (right) child.
func BuildTree(f *Frequencies) *Tree {
	t := &Tree{root: -1}
	n := f.Distinct()
	if n == 0 {
		return t
	}

	t.nodes = make([]Node, 0, 2*n-1)
	h := &nodeHeap{t: t, idxs: make([]int, 0, n)}
	for sym, cnt := range f {
		if cnt > 0 {
			t.nodes = append(t.nodes, Node{Freq: cnt, Sym: byte(sym), Left: -1, Right: -1})
			h.idxs = append(h.idxs, len(t.nodes)-1)
		}
	}
	heap.Init(h)

	for h.Len() > 1 {
		l := heap.Pop(h).(int)
		r := heap.Pop(h).(int)
		nl, nr := t.nodes[l], t.nodes[r]
		sym := nl.Sym
		if nr.Sym < sym {
			sym = nr.Sym
		}
		t.nodes = append(t.nodes, Node{Freq: nl.Freq + nr.Freq, Sym: sym, Left: l, Right: r})
		heap.Push(h, len(t.nodes)-1)
	}
	t.root = h.idxs[0]
	return t
}

// ReadTree builds the Huffman tree for all bytes of r.
// Any read error is returned as is.
func ReadTree(r io.Reader) (*Tree, error) {
	f, err := ReadFrequencies(r)
	if err != nil {
		return nil, err
	}
	return BuildTree(&f), nil
}

// Empty reports whether the tree has no symbols.
func (t *Tree) Empty() bool { return len(t.nodes) == 0 }

// Len reports the number of leaves.
func (t *Tree) Len() int { return (len(t.nodes) + 1) / 2 }

// Root reports the index of the root node, or -1 if the tree is empty.
func (t *Tree) Root() int { return t.root }

// Node returns the node at index i.
func (t *Tree) Node(i int) Node { return t.nodes[i] }

// Codes derives the code table of the tree by walking every root-to-leaf
// path, where a step to the left child appends a 0 bit and a step to the
// right child appends a 1 bit.
//
// A tree made of a single leaf has a path of zero length, which cannot
// address a bit-stream. By rule, that lone symbol is assigned the 1-bit
// code "0".
//
// Codes consumes the tree; t is empty once it returns.
func (t *Tree) Codes() CodeTable {
	type entry struct {
		idx   int
		depth uint
		val   uint64
	}

	m := make(map[byte]Code, t.Len())
	if !t.Empty() {
		stack := []entry{{idx: t.root}}
		for len(stack) > 0 {
			e := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n := t.nodes[e.idx]
			if n.IsLeaf() {
				if e.depth == 0 {
					m[n.Sym] = NewCode(1, 0)
				} else {
					m[n.Sym] = NewCode(e.depth, e.val)
				}
				continue
			}
			stack = append(stack,
				entry{n.Right, e.depth + 1, e.val<<1 | 1},
				entry{n.Left, e.depth + 1, e.val << 1},
			)
		}
	}

	t.nodes, t.root = nil, -1
	return NewCodeTable(m)
}
