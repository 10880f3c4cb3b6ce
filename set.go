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

// Set is an ordered collection of distinct values.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
type Set[T any] struct {
	t *tree[T]
}

// NewSet creates an empty Set ordered by less.
func NewSet[T any](less LessFunc[T]) *Set[T] {
	return NewSetWithFreeList(less, NewFreeList[T](DefaultFreeListSize))
}

// NewSetWithFreeList creates an empty Set that uses the given node free list.
func NewSetWithFreeList[T any](less LessFunc[T], f *FreeList[T]) *Set[T] {
	return &Set[T]{t: newTree(less, false, f)}
}

// NewOrderedSet creates an empty Set for ordered types.
func NewOrderedSet[T Ordered]() *Set[T] {
	return NewSet(Less[T]())
}

// NewSetFrom creates a Set holding items.  Later duplicates are dropped.
func NewSetFrom[T any](less LessFunc[T], items []T) (*Set[T], error) {
	s := NewSet(less)
	if _, err := s.Emplace(items...); err != nil {
		return nil, err
	}
	return s, nil
}

// Begin returns the position of the smallest value, or End if s is empty.
func (s *Set[T]) Begin() Iterator[T] { return s.t.begin() }

// End returns the position one past the largest value.
func (s *Set[T]) End() Iterator[T] { return s.t.end() }

// Empty reports whether s holds no values.
func (s *Set[T]) Empty() bool { return s.t.length == 0 }

// Len returns the number of values in s.
func (s *Set[T]) Len() int { return s.t.length }

// MaxSize returns the theoretical maximum number of values a Set can hold.
func (s *Set[T]) MaxSize() int { return s.t.limit }

// Insert adds value to s.  If an equal value is already present, s is left
// unchanged and the returned position refers to the resident value.
//
// Insert panics with ErrCapacityExceeded if s already holds MaxSize values.
func (s *Set[T]) Insert(value T) (Iterator[T], bool) {
	s.t.mustReserve()
	n := s.t.newNode(value)
	resident, ok := s.t.insertNode(n)
	if !ok {
		s.t.freeNode(n)
	}
	return s.t.at(resident), ok
}

// Emplace inserts each of values in turn and reports the outcome of each.
// If the values could not all fit, nothing is inserted and
// ErrCapacityExceeded is returned.
func (s *Set[T]) Emplace(values ...T) ([]InsertResult[T], error) {
	if err := s.t.reserve(len(values)); err != nil {
		return nil, err
	}
	out := make([]InsertResult[T], 0, len(values))
	for _, v := range values {
		pos, ok := s.Insert(v)
		out = append(out, InsertResult[T]{Pos: pos, Inserted: ok})
	}
	return out, nil
}

// Erase removes the value at pos and returns the position of the value that
// followed it.  Erasing End is a no-op.
func (s *Set[T]) Erase(pos Iterator[T]) Iterator[T] {
	s.t.owns(pos)
	if pos.n == nil {
		return pos
	}
	return s.t.at(s.t.erase(pos.n))
}

// Delete removes the value equal to value, reporting whether it was present.
func (s *Set[T]) Delete(value T) bool {
	n := s.t.search(value)
	if n == nil {
		return false
	}
	s.t.erase(n)
	return true
}

// Clear removes all values from s.
func (s *Set[T]) Clear() {
	s.t.clear(true)
}

// Swap exchanges the contents of s and other.  Iterators follow their values.
func (s *Set[T]) Swap(other *Set[T]) {
	s.t, other.t = other.t, s.t
}

// Move returns a new Set holding the contents of s and leaves s empty.
func (s *Set[T]) Move() *Set[T] {
	out := &Set[T]{t: s.t}
	s.t = newTree(out.t.less, false, out.t.freelist)
	return out
}

// Clone returns a copy of s.  Values implementing DeepCopier are deep-copied.
// The copy shares s's free list.
func (s *Set[T]) Clone() *Set[T] {
	return &Set[T]{t: s.t.clone(deepCopy[T])}
}

// Merge moves every value of other into s.  Values already present in s stay
// behind: afterwards other holds exactly the values that collided.
// Merging a Set into itself is a no-op.
//
// Iterators into other are invalidated for every value that moved into s.
// Iterators to values that stayed behind remain valid for other.
func (s *Set[T]) Merge(other *Set[T]) {
	s.t.merge(other.t)
}

// Find returns the position of the value equal to key, or End.
func (s *Set[T]) Find(key T) Iterator[T] {
	return s.t.at(s.t.search(key))
}

// Contains reports whether a value equal to key is present.
func (s *Set[T]) Contains(key T) bool {
	return s.t.search(key) != nil
}

// Count returns 1 if a value equal to key is present, else 0.
func (s *Set[T]) Count(key T) int {
	if s.Contains(key) {
		return 1
	}
	return 0
}

// LowerBound returns the position of the first value not less than key.  If
// key is absent this is the first value greater than key, not End.
func (s *Set[T]) LowerBound(key T) Iterator[T] {
	return s.t.at(s.t.lowerBound(key))
}

// UpperBound returns the position of the first value greater than key.
func (s *Set[T]) UpperBound(key T) Iterator[T] {
	return s.t.at(s.t.upperBound(key))
}

// Min returns the smallest value, or (zeroValue, false) if s is empty.
func (s *Set[T]) Min() (_ T, _ bool) {
	if n := minimum(s.t.root); n != nil {
		return n.item, true
	}
	return
}

// Max returns the largest value, or (zeroValue, false) if s is empty.
func (s *Set[T]) Max() (_ T, _ bool) {
	if s.t.max != nil {
		return s.t.max.item, true
	}
	return
}

// Ascend calls the iterator for every value in ascending order, until
// iterator returns false.
func (s *Set[T]) Ascend(iterator ItemIterator[T]) {
	s.t.ascend(iterator)
}

// Descend calls the iterator for every value in descending order, until
// iterator returns false.
func (s *Set[T]) Descend(iterator ItemIterator[T]) {
	s.t.descend(iterator)
}

// Height returns the number of levels of the underlying tree.
func (s *Set[T]) Height() int {
	return s.t.height()
}

// Print writes the shape of the underlying tree to w.
func (s *Set[T]) Print(w io.Writer) error {
	return s.t.print(w)
}
