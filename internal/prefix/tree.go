// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"

	"github.com/filerelay/huffpack/internal/errors"
)

// NodeKind distinguishes leaf nodes from internal nodes.
type NodeKind uint8

const (
	Leaf     NodeKind = iota // Node carries a symbol
	Internal                 // Node carries two children
)

// Node is a single entry in a Tree arena.
type Node struct {
	Kind  NodeKind
	Sym   byte   // Symbol of a leaf
	Cnt   uint64 // Count of a leaf, or the sum of the children's counts
	Left  int    // Arena index of the 0 child of an internal node
	Right int    // Arena index of the 1 child of an internal node
}

// Tree is a strict binary prefix tree stored as an arena of nodes.
// A Tree is immutable once built.
type Tree struct {
	Nodes []Node
	Root  int
}

// BuildTree constructs the Huffman tree for the given frequencies.
//
// Nodes are merged lowest count first. Ties are broken by a fixed total
// order: leaves come before internal nodes, leaves are ordered by symbol,
// and internal nodes by the order in which they were created. The first
// node popped becomes the 0 child, the second the 1 child.
//
// If only one symbol is present, it is paired with a synthetic leaf of zero
// count for symbol (sym+1)%256 so that it receives the 1-bit code "0".
func BuildTree(ft *FrequencyTable) (*Tree, error) {
	numSyms := ft.Len()
	if numSyms == 0 {
		return nil, errors.Error{Code: errors.EmptyAlphabet, Pkg: pkgName, Msg: "cannot build a tree without symbols"}
	}

	t := &Tree{Nodes: make([]Node, 0, 2*numSyms+1)}
	h := nodeHeap{tree: t, idxs: make([]int, 0, numSyms)}
	for sym, cnt := range ft {
		if cnt > 0 {
			t.Nodes = append(t.Nodes, Node{Kind: Leaf, Sym: byte(sym), Cnt: cnt})
			h.idxs = append(h.idxs, len(t.Nodes)-1)
		}
	}

	if numSyms == 1 {
		only := t.Nodes[0]
		t.Nodes = append(t.Nodes,
			Node{Kind: Leaf, Sym: only.Sym + 1},
			Node{Kind: Internal, Cnt: only.Cnt, Left: 0, Right: 1},
		)
		t.Root = 2
		return t, nil
	}

	heap.Init(&h)
	for h.Len() > 1 {
		l := heap.Pop(&h).(int)
		r := heap.Pop(&h).(int)
		lc, rc := t.Nodes[l].Cnt, t.Nodes[r].Cnt
		assert.Assertf(lc+rc >= lc, "frequency overflow: %d + %d", lc, rc)
		t.Nodes = append(t.Nodes, Node{Kind: Internal, Cnt: lc + rc, Left: l, Right: r})
		heap.Push(&h, len(t.Nodes)-1)
	}
	t.Root = heap.Pop(&h).(int)
	assert.Assertf(len(t.Nodes) == 2*numSyms-1, "tree has %d nodes for %d symbols", len(t.Nodes), numSyms)
	assert.Assertf(t.Nodes[t.Root].Cnt == ft.Total(), "root count %d != total %d", t.Nodes[t.Root].Cnt, ft.Total())
	return t, nil
}

// NumLeaves reports the number of leaves in the tree.
func (t *Tree) NumLeaves() (n int) {
	for i := range t.Nodes {
		if t.Nodes[i].Kind == Leaf {
			n++
		}
	}
	return n
}

// Depth reports the length of the longest root-to-leaf path.
func (t *Tree) Depth() int {
	type item struct{ node, depth int }
	var max int
	stack := []item{{t.Root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.Nodes[top.node]
		if n.Kind == Leaf {
			if top.depth > max {
				max = top.depth
			}
			continue
		}
		stack = append(stack, item{n.Left, top.depth + 1}, item{n.Right, top.depth + 1})
	}
	return max
}

// Validate checks that the arena forms a single strict binary tree rooted at
// Root, in which every node is reachable exactly once, the root is internal,
// and no symbol appears on more than one leaf.
func (t *Tree) Validate() error {
	fail := func(msg string) error {
		return errors.Error{Code: errors.Format, Pkg: pkgName, Msg: msg}
	}
	if len(t.Nodes) == 0 || t.Root < 0 || t.Root >= len(t.Nodes) {
		return fail("tree root out of range")
	}
	if t.Nodes[t.Root].Kind != Internal {
		return fail("tree root is a leaf")
	}

	var seenSyms [MaxSyms]bool
	seen := make([]bool, len(t.Nodes))
	stack := []int{t.Root}
	var cnt int
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if i < 0 || i >= len(t.Nodes) {
			return fail("tree node index out of range")
		}
		if seen[i] {
			return fail("tree node is shared")
		}
		seen[i] = true
		cnt++

		switch n := &t.Nodes[i]; n.Kind {
		case Leaf:
			if seenSyms[n.Sym] {
				return fail("duplicate leaf symbol")
			}
			seenSyms[n.Sym] = true
		case Internal:
			stack = append(stack, n.Right, n.Left)
		default:
			return fail("unknown tree node kind")
		}
	}
	if cnt != len(t.Nodes) {
		return fail("tree has unreachable nodes")
	}
	return nil
}

// nodeHeap is a min-heap of arena indices. Leaves occupy the arena in symbol
// order before any internal node is created, and internal nodes are appended
// as they are created. Thus ordering equal counts by arena index implements
// the documented tie-break exactly.
type nodeHeap struct {
	tree *Tree
	idxs []int
}

func (h *nodeHeap) Len() int      { return len(h.idxs) }
func (h *nodeHeap) Swap(i, j int) { h.idxs[i], h.idxs[j] = h.idxs[j], h.idxs[i] }

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.idxs[i], h.idxs[j]
	ca, cb := h.tree.Nodes[a].Cnt, h.tree.Nodes[b].Cnt
	if ca != cb {
		return ca < cb
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.idxs = append(h.idxs, x.(int))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.idxs) - 1
	x := h.idxs[last]
	h.idxs = h.idxs[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)
