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

import "io"

// MultiSet is an ordered collection of values in which equal values may
// repeat.  Equal values are adjacent in iteration order and appear in the
// order they were inserted.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
type MultiSet[T any] struct {
	t *tree[T]
}

// NewMultiSet creates an empty MultiSet ordered by less.
func NewMultiSet[T any](less LessFunc[T]) *MultiSet[T] {
	return NewMultiSetWithFreeList(less, NewFreeList[T](DefaultFreeListSize))
}

// NewMultiSetWithFreeList creates an empty MultiSet that uses the given node
// free list.
func NewMultiSetWithFreeList[T any](less LessFunc[T], f *FreeList[T]) *MultiSet[T] {
	return &MultiSet[T]{t: newTree(less, true, f)}
}

// NewOrderedMultiSet creates an empty MultiSet for ordered types.
func NewOrderedMultiSet[T Ordered]() *MultiSet[T] {
	return NewMultiSet(Less[T]())
}

// NewMultiSetFrom creates a MultiSet holding items.
func NewMultiSetFrom[T any](less LessFunc[T], items []T) (*MultiSet[T], error) {
	m := NewMultiSet(less)
	if _, err := m.Emplace(items...); err != nil {
		return nil, err
	}
	return m, nil
}

// Begin returns the position of the smallest value, or End if m is empty.
func (m *MultiSet[T]) Begin() Iterator[T] { return m.t.begin() }

// End returns the position one past the largest value.
func (m *MultiSet[T]) End() Iterator[T] { return m.t.end() }

// Empty reports whether m holds no values.
func (m *MultiSet[T]) Empty() bool { return m.t.length == 0 }

// Len returns the number of values in m, counting repeats.
func (m *MultiSet[T]) Len() int { return m.t.length }

// MaxSize returns the theoretical maximum number of values a MultiSet can
// hold.
func (m *MultiSet[T]) MaxSize() int { return m.t.limit }

// Insert adds value to m after any values equal to it and returns its
// position.
//
// Insert panics with ErrCapacityExceeded if m already holds MaxSize values.
func (m *MultiSet[T]) Insert(value T) Iterator[T] {
	m.t.mustReserve()
	n, _ := m.t.insertNode(m.t.newNode(value))
	return m.t.at(n)
}

// Emplace inserts each of values in turn.  Every result reports Inserted.
// If the values could not all fit, nothing is inserted and
// ErrCapacityExceeded is returned.
func (m *MultiSet[T]) Emplace(values ...T) ([]InsertResult[T], error) {
	if err := m.t.reserve(len(values)); err != nil {
		return nil, err
	}
	out := make([]InsertResult[T], 0, len(values))
	for _, v := range values {
		out = append(out, InsertResult[T]{Pos: m.Insert(v), Inserted: true})
	}
	return out, nil
}

// Erase removes the value at pos and returns the position of the value that
// followed it.  Erasing End is a no-op.
func (m *MultiSet[T]) Erase(pos Iterator[T]) Iterator[T] {
	m.t.owns(pos)
	if pos.n == nil {
		return pos
	}
	return m.t.at(m.t.erase(pos.n))
}

// Delete removes every value equal to value and returns how many there were.
func (m *MultiSet[T]) Delete(value T) (out int) {
	for n := m.t.lowerBound(value); n != nil && m.t.equal(n.item, value); out++ {
		n = m.t.erase(n)
	}
	return
}

// Clear removes all values from m.
func (m *MultiSet[T]) Clear() {
	m.t.clear(true)
}

// Swap exchanges the contents of m and other.  Iterators follow their values.
func (m *MultiSet[T]) Swap(other *MultiSet[T]) {
	m.t, other.t = other.t, m.t
}

// Move returns a new MultiSet holding the contents of m and leaves m empty.
func (m *MultiSet[T]) Move() *MultiSet[T] {
	out := &MultiSet[T]{t: m.t}
	m.t = newTree(out.t.less, true, out.t.freelist)
	return out
}

// Clone returns a copy of m.  Values implementing DeepCopier are
// deep-copied.  The copy shares m's free list.
func (m *MultiSet[T]) Clone() *MultiSet[T] {
	return &MultiSet[T]{t: m.t.clone(deepCopy[T])}
}

// Merge moves every value of other into m, leaving other empty.  Values
// equal to ones already in m are placed after them.  All iterators into other
// are invalidated.
func (m *MultiSet[T]) Merge(other *MultiSet[T]) {
	m.t.merge(other.t)
}

// Find returns the position of some value equal to key, or End.  It is not
// necessarily the first of a run of equal values; use LowerBound for that.
func (m *MultiSet[T]) Find(key T) Iterator[T] {
	return m.t.at(m.t.search(key))
}

// Contains reports whether a value equal to key is present.
func (m *MultiSet[T]) Contains(key T) bool {
	return m.t.search(key) != nil
}

// Count returns the number of values equal to key.
func (m *MultiSet[T]) Count(key T) int {
	return m.t.count(key)
}

// LowerBound returns the position of the first value not less than key.  If
// key is absent this is the first value greater than key, not End.
func (m *MultiSet[T]) LowerBound(key T) Iterator[T] {
	return m.t.at(m.t.lowerBound(key))
}

// UpperBound returns the position of the first value greater than key.
func (m *MultiSet[T]) UpperBound(key T) Iterator[T] {
	return m.t.at(m.t.upperBound(key))
}

// EqualRange returns the half-open range [lo, hi) of values equal to key.
// Both are the same position if there are none.
func (m *MultiSet[T]) EqualRange(key T) (lo, hi Iterator[T]) {
	return m.LowerBound(key), m.UpperBound(key)
}

// Min returns the smallest value, or (zeroValue, false) if m is empty.
func (m *MultiSet[T]) Min() (_ T, _ bool) {
	if n := minimum(m.t.root); n != nil {
		return n.item, true
	}
	return
}

// Max returns the largest value, or (zeroValue, false) if m is empty.  Of
// several equal largest values it is the last inserted.
func (m *MultiSet[T]) Max() (_ T, _ bool) {
	if m.t.max != nil {
		return m.t.max.item, true
	}
	return
}

// Ascend calls the iterator for every value in ascending order, until
// iterator returns false.
func (m *MultiSet[T]) Ascend(iterator ItemIterator[T]) {
	m.t.ascend(iterator)
}

// Descend calls the iterator for every value in descending order, until
// iterator returns false.
func (m *MultiSet[T]) Descend(iterator ItemIterator[T]) {
	m.t.descend(iterator)
}

// Height returns the number of levels of the underlying tree.
func (m *MultiSet[T]) Height() int {
	return m.t.height()
}

// Print writes the shape of the underlying tree to w.
func (m *MultiSet[T]) Print(w io.Writer) error {
	return m.t.print(w)
}
