// Copyright 2014-2023 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bstree implements in-memory ordered containers on top of a plain
// binary search tree.
//
// Three containers share one tree engine:
//   - Set stores distinct values.
//   - MultiSet stores values with duplicates allowed.  Equal values are kept
//     next to each other in the order they were inserted.
//   - Map stores distinct keys, each mapped to a single value.
//
// Every node carries links to its parent and both children, so iterators can
// walk forward and backward from any position without an auxiliary stack.
// An iterator whose node is nil is the end position, one past the largest
// element.  The tree also keeps a pointer to its largest node, which makes
// decrementing the end position and appending in ascending order O(1).
//
// The tree is not rebalanced.  Inserting keys in sorted order degrades its
// height, and with it every lookup, to O(n).  Callers that need guaranteed
// logarithmic operations on adversarial input should use a balanced
// structure such as github.com/google/btree instead.
//
// As in the C++ standard library, the containers are not safe for concurrent
// use, and an iterator is invalidated when the element it refers to is
// erased.
package bstree

import (
	"fmt"
	"io"
	"math"
	"sync"
	"unsafe"

	"github.com/xlab/treeprint"
	"golang.org/x/exp/constraints"
)

const (
	DefaultFreeListSize = 32
)

// FreeList represents a free list of tree nodes.  By default each container
// has its own FreeList, but containers holding the same element type can
// share one.
// Two containers using the same freelist are safe for concurrent write access
// to the freelist itself, not to the containers.
type FreeList[E any] struct {
	mu       sync.Mutex
	freelist []*node[E]
}

// NewFreeList creates a new free list.
// size is the maximum size of the returned free list.
func NewFreeList[E any](size int) *FreeList[E] {
	return &FreeList[E]{freelist: make([]*node[E], 0, size)}
}

func (f *FreeList[E]) newNode() (n *node[E]) {
	f.mu.Lock()
	index := len(f.freelist) - 1
	if index < 0 {
		f.mu.Unlock()
		return new(node[E])
	}
	n = f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	f.mu.Unlock()
	return
}

func (f *FreeList[E]) freeNode(n *node[E]) (out bool) {
	f.mu.Lock()
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		out = true
	}
	f.mu.Unlock()
	return
}

// ItemIterator allows callers of Ascend and Descend to iterate in-order over
// a container.  When this function returns false, iteration will stop and the
// associated Ascend or Descend call will immediately return.
type ItemIterator[E any] func(item E) bool

// Ordered represents the set of types for which the '<' operator works.
type Ordered interface {
	constraints.Ordered
}

// LessFunc determines how to order a type 'T'.  It should implement a strict
// weak ordering, and should return true if within that ordering, 'a' < 'b'.
// Two values are equal when neither is less than the other.
type LessFunc[T any] func(a, b T) bool

// Less returns a default LessFunc that uses the '<' operator for types that
// support it.
func Less[T Ordered]() LessFunc[T] {
	return func(a, b T) bool { return a < b }
}

// node is a single element of the tree.  A nil link means there is no such
// parent or child.
type node[E any] struct {
	item                E
	parent, left, right *node[E]
}

// tree is the engine shared by Set, MultiSet and Map.
//
// It must at all times maintain the invariants that
//   - every item in a node's left subtree is less than the node's item, and
//     no item in its right subtree is less than it;
//   - length is the number of nodes reachable from root;
//   - max is the in-order last node, or nil when the tree is empty.
type tree[E any] struct {
	root     *node[E]
	max      *node[E]
	length   int
	limit    int
	multi    bool
	less     LessFunc[E]
	freelist *FreeList[E]
}

func newTree[E any](less LessFunc[E], multi bool, f *FreeList[E]) *tree[E] {
	if less == nil {
		panic("bstree: nil less function")
	}
	if f == nil {
		f = NewFreeList[E](DefaultFreeListSize)
	}
	return &tree[E]{
		limit:    maxSize[E](),
		multi:    multi,
		less:     less,
		freelist: f,
	}
}

// maxSize is the theoretical element ceiling for a tree of E: half the
// address space divided by the node size.
func maxSize[E any]() int {
	var n node[E]
	return math.MaxInt / int(unsafe.Sizeof(n)) / 2
}

func (t *tree[E]) equal(a, b E) bool {
	return !t.less(a, b) && !t.less(b, a)
}

func (t *tree[E]) newNode(item E) *node[E] {
	n := t.freelist.newNode()
	n.item = item
	return n
}

func (t *tree[E]) freeNode(n *node[E]) {
	// clear to allow GC
	var zero E
	n.item = zero
	n.parent, n.left, n.right = nil, nil, nil
	t.freelist.freeNode(n)
}

// minimum returns the left-most node of the subtree rooted at n.
func minimum[E any](n *node[E]) *node[E] {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// maximum returns the right-most node of the subtree rooted at n.
func maximum[E any](n *node[E]) *node[E] {
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// successor returns the in-order next node, or nil if n is the last one.
func successor[E any](n *node[E]) *node[E] {
	if n.right != nil {
		return minimum(n.right)
	}
	p := n.parent
	for p != nil && n == p.right {
		n, p = p, p.parent
	}
	return p
}

// predecessor returns the in-order previous node, or nil if n is the first
// one.
func predecessor[E any](n *node[E]) *node[E] {
	if n.left != nil {
		return maximum(n.left)
	}
	p := n.parent
	for p != nil && n == p.left {
		n, p = p, p.parent
	}
	return p
}

// insertNode splices the detached node n into the tree.  If the tree holds
// unique items and an equal item is already present, the resident node is
// returned along with false and n is left detached for the caller to
// dispose of.
func (t *tree[E]) insertNode(n *node[E]) (*node[E], bool) {
	n.parent, n.left, n.right = nil, nil, nil
	if t.root == nil {
		t.root, t.max = n, n
		t.length++
		return n, true
	}
	// The max node never has a right child, so anything beyond it is
	// appended there directly.
	if t.less(t.max.item, n.item) {
		t.attachRight(t.max, n)
		t.max = n
		return n, true
	}
	cur := t.root
	for {
		switch {
		case t.less(cur.item, n.item):
			if cur.right == nil {
				t.attachRight(cur, n)
				return n, true
			}
			cur = cur.right
		case t.less(n.item, cur.item):
			if cur.left == nil {
				n.parent = cur
				cur.left = n
				t.length++
				return n, true
			}
			cur = cur.left
		default:
			if !t.multi {
				return cur, false
			}
			t.appendEqual(cur, n)
			return n, true
		}
	}
}

func (t *tree[E]) attachRight(parent, n *node[E]) {
	n.parent = parent
	parent.right = n
	t.length++
}

// appendEqual places n directly after the last node equal to cur, taking
// over that node's right subtree.  Equal items therefore stay contiguous and
// keep their insertion order.
func (t *tree[E]) appendEqual(cur, n *node[E]) {
	for next := successor(cur); next != nil && t.equal(next.item, cur.item); next = successor(cur) {
		cur = next
	}
	n.parent = cur
	n.right = cur.right
	if cur.right != nil {
		cur.right.parent = n
	}
	cur.right = n
	if t.max == cur {
		t.max = n
	}
	t.length++
}

// search returns the first node found equal to probe on the way down from the
// root, or nil.  In a multi tree that node may be anywhere in the run of
// equal items.
func (t *tree[E]) search(probe E) *node[E] {
	n := t.root
	for n != nil {
		switch {
		case t.less(probe, n.item):
			n = n.left
		case t.less(n.item, probe):
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// greater returns the first node whose item is greater than probe, or nil.
func (t *tree[E]) greater(probe E) (out *node[E]) {
	for n := t.root; n != nil; {
		if t.less(probe, n.item) {
			out = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return
}

// lowerBound returns the first node not less than probe, or nil.
func (t *tree[E]) lowerBound(probe E) *node[E] {
	n := t.search(probe)
	if n == nil {
		return t.greater(probe)
	}
	for p := predecessor(n); p != nil && t.equal(p.item, probe); p = predecessor(p) {
		n = p
	}
	return n
}

// upperBound returns the first node greater than probe, or nil.
func (t *tree[E]) upperBound(probe E) *node[E] {
	n := t.search(probe)
	if n == nil {
		return t.greater(probe)
	}
	for n != nil && t.equal(n.item, probe) {
		n = successor(n)
	}
	return n
}

// count returns the number of items equal to probe.
func (t *tree[E]) count(probe E) (out int) {
	for n := t.lowerBound(probe); n != nil && t.equal(n.item, probe); n = successor(n) {
		out++
	}
	return
}

// erase removes n from the tree and returns the node now holding the item that
// followed it, or nil if n held the last item.
//
// A node with two children is not unlinked itself: it takes over the item of
// its in-order successor, which has no left child and is unlinked instead.
// Structural removal therefore only ever happens at a node with at most one
// child.
func (t *tree[E]) erase(n *node[E]) *node[E] {
	if n.left != nil && n.right != nil {
		s := minimum(n.right)
		n.item = s.item
		t.detach(s)
		t.freeNode(s)
		return n
	}
	next := successor(n)
	t.detach(n)
	t.freeNode(n)
	return next
}

// detach unlinks n, which must have at most one child, splicing that child
// into n's place.
func (t *tree[E]) detach(n *node[E]) {
	if t.max == n {
		t.max = predecessor(n)
	}
	child := n.left
	if child == nil {
		child = n.right
	}
	if child != nil {
		child.parent = n.parent
	}
	switch {
	case n.parent == nil:
		t.root = child
	case n.parent.left == n:
		n.parent.left = child
	default:
		n.parent.right = child
	}
	n.parent, n.left, n.right = nil, nil, nil
	t.length--
}

// merge moves every node of o into t.  Leaves of o are detached one at a time,
// scanning forward from o's first node, and spliced into t.  When t holds
// unique items a node whose item is already in t is spliced into a leftover
// tree instead, and that leftover becomes the new content of o.
func (t *tree[E]) merge(o *tree[E]) {
	if t == o || o.length == 0 {
		return
	}
	leftover := tree[E]{limit: o.limit, multi: o.multi, less: o.less, freelist: o.freelist}
	for n := minimum(o.root); o.length > 0; {
		if n.left != nil || n.right != nil {
			n = successor(n)
			continue
		}
		o.detach(n)
		if t.multi || t.search(n.item) == nil {
			t.insertNode(n)
		} else {
			leftover.insertNode(n)
		}
		n = minimum(o.root)
	}
	o.root, o.max, o.length = leftover.root, leftover.max, leftover.length
}

// clear removes all items.  If addNodesToFreelist is true, nodes are handed
// to the freelist until it is full; otherwise the tree is simply dropped for
// the garbage collector.
func (t *tree[E]) clear(addNodesToFreelist bool) {
	if addNodesToFreelist {
		stack := []*node[E]{}
		if t.root != nil {
			stack = append(stack, t.root)
		}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n.left != nil {
				stack = append(stack, n.left)
			}
			if n.right != nil {
				stack = append(stack, n.right)
			}
			t.freeNode(n)
		}
	}
	t.root, t.max, t.length = nil, nil, 0
}

// clone builds a copy of t by re-inserting every item in order.  Each item
// is passed through copyItem first.
func (t *tree[E]) clone(copyItem func(E) E) *tree[E] {
	c := &tree[E]{limit: t.limit, multi: t.multi, less: t.less, freelist: t.freelist}
	for n := minimum(t.root); n != nil; n = successor(n) {
		c.insertNode(c.newNode(copyItem(n.item)))
	}
	return c
}

func (t *tree[E]) ascend(iter ItemIterator[E]) {
	for n := minimum(t.root); n != nil; n = successor(n) {
		if !iter(n.item) {
			return
		}
	}
}

func (t *tree[E]) descend(iter ItemIterator[E]) {
	for n := t.max; n != nil; n = predecessor(n) {
		if !iter(n.item) {
			return
		}
	}
}

// height returns the number of nodes on the longest root-to-leaf path.
func (t *tree[E]) height() (h int) {
	level := []*node[E]{}
	if t.root != nil {
		level = append(level, t.root)
	}
	for len(level) > 0 {
		h++
		var next []*node[E]
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return
}

// print is used for testing/debugging purposes.  Each child is tagged with
// the side it hangs on.
func (t *tree[E]) print(w io.Writer) error {
	if t.root == nil {
		_, err := io.WriteString(w, ".\n")
		return err
	}
	type frame struct {
		n      *node[E]
		branch treeprint.Tree
	}
	root := treeprint.NewWithRoot(fmt.Sprint(t.root.item))
	stack := []frame{{t.root, root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.branch.AddMetaBranch("L", fmt.Sprint(f.n.left.item))})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, f.branch.AddMetaBranch("R", fmt.Sprint(f.n.right.item))})
		}
	}
	_, err := io.WriteString(w, root.String())
	return err
}
