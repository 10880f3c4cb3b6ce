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

package bstree

// Iterator is a position in a container.  It is either an element or the end
// position, one past the largest element.
//
// An Iterator owns nothing and is only valid while the element it refers to
// stays in the container.  Erasing that element invalidates it.  Erasing an
// element that has two children moves the item of its in-order successor into
// the erased slot, so iterators to that successor are invalidated as well.
// Swap and Move keep iterators valid; they follow their elements into the
// other container.  Merge does not: an iterator into the merged-from container
// is invalidated when its element moves, and must not be passed to either
// container afterwards.
type Iterator[E any] struct {
	t *tree[E]
	n *node[E]
}

// End reports whether the iterator is the end position.
func (it Iterator[E]) End() bool {
	return it.n == nil
}

// Item returns the element at the iterator.  It panics on the end position.
func (it Iterator[E]) Item() E {
	if it.n == nil {
		panic("bstree: Item called on end iterator")
	}
	return it.n.item
}

// Next returns the position following it.  Next of the last element, and of
// the end position, is the end position.
func (it Iterator[E]) Next() Iterator[E] {
	if it.n == nil {
		return it
	}
	return Iterator[E]{t: it.t, n: successor(it.n)}
}

// Prev returns the position preceding it.  Prev of the end position is the
// last element; Prev of the first element is the end position.
func (it Iterator[E]) Prev() Iterator[E] {
	if it.n == nil {
		if it.t == nil {
			return it
		}
		return Iterator[E]{t: it.t, n: it.t.max}
	}
	return Iterator[E]{t: it.t, n: predecessor(it.n)}
}

// Equal reports whether both iterators refer to the same position of the same
// container.
func (it Iterator[E]) Equal(other Iterator[E]) bool {
	return it.t == other.t && it.n == other.n
}

func (t *tree[E]) begin() Iterator[E] {
	return Iterator[E]{t: t, n: minimum(t.root)}
}

func (t *tree[E]) end() Iterator[E] {
	return Iterator[E]{t: t}
}

func (t *tree[E]) at(n *node[E]) Iterator[E] {
	return Iterator[E]{t: t, n: n}
}

// owns panics unless it is a position in t.
func (t *tree[E]) owns(it Iterator[E]) {
	if it.t != t {
		panic("bstree: iterator belongs to another container")
	}
}

// InsertResult reports the outcome of inserting one element: the position of
// the element now resident for that key, and whether it was newly inserted.
type InsertResult[E any] struct {
	Pos      Iterator[E]
	Inserted bool
}
