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

import (
	"io"

	"github.com/pkg/errors"
)

// Entry is a key/value pair stored in a Map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Map is an ordered collection of key/value pairs with distinct keys.
//
// Unlike Go maps, and unlike operator[] in C++, looking up an absent key
// never inserts a zero value: At returns ErrKeyNotFound and MustAt panics
// with it.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
type Map[K, V any] struct {
	t *tree[Entry[K, V]]
}

func byKey[K, V any](less LessFunc[K]) LessFunc[Entry[K, V]] {
	if less == nil {
		return nil
	}
	return func(a, b Entry[K, V]) bool { return less(a.Key, b.Key) }
}

func probe[K, V any](key K) Entry[K, V] {
	return Entry[K, V]{Key: key}
}

// NewMap creates an empty Map whose keys are ordered by less.
func NewMap[K, V any](less LessFunc[K]) *Map[K, V] {
	return NewMapWithFreeList[K, V](less, NewFreeList[Entry[K, V]](DefaultFreeListSize))
}

// NewMapWithFreeList creates an empty Map that uses the given node free list.
func NewMapWithFreeList[K, V any](less LessFunc[K], f *FreeList[Entry[K, V]]) *Map[K, V] {
	return &Map[K, V]{t: newTree(byKey[K, V](less), false, f)}
}

// NewOrderedMap creates an empty Map for ordered key types.
func NewOrderedMap[K Ordered, V any]() *Map[K, V] {
	return NewMap[K, V](Less[K]())
}

// NewMapFrom creates a Map holding entries.  For repeated keys the first
// entry wins.
func NewMapFrom[K, V any](less LessFunc[K], entries []Entry[K, V]) (*Map[K, V], error) {
	m := NewMap[K, V](less)
	if _, err := m.Emplace(entries...); err != nil {
		return nil, err
	}
	return m, nil
}

// Begin returns the position of the entry with the smallest key, or End if m
// is empty.
func (m *Map[K, V]) Begin() Iterator[Entry[K, V]] { return m.t.begin() }

// End returns the position one past the entry with the largest key.
func (m *Map[K, V]) End() Iterator[Entry[K, V]] { return m.t.end() }

// Empty reports whether m holds no entries.
func (m *Map[K, V]) Empty() bool { return m.t.length == 0 }

// Len returns the number of entries in m.
func (m *Map[K, V]) Len() int { return m.t.length }

// MaxSize returns the theoretical maximum number of entries a Map can hold.
func (m *Map[K, V]) MaxSize() int { return m.t.limit }

// At returns the value stored for key.  If key is absent it returns an error
// wrapping ErrKeyNotFound.
func (m *Map[K, V]) At(key K) (V, error) {
	n := m.t.search(probe[K, V](key))
	if n == nil {
		var zero V
		return zero, errors.Wrapf(ErrKeyNotFound, "key %v", key)
	}
	return n.item.Value, nil
}

// MustAt is like At but panics if key is absent.  It never inserts.
func (m *Map[K, V]) MustAt(key K) V {
	v, err := m.At(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Insert adds key with value.  If key is already present, m is left unchanged
// and the returned position refers to the resident entry.
//
// Insert panics with ErrCapacityExceeded if m already holds MaxSize entries.
func (m *Map[K, V]) Insert(key K, value V) (Iterator[Entry[K, V]], bool) {
	return m.InsertEntry(Entry[K, V]{Key: key, Value: value})
}

// InsertEntry is Insert for a ready-made Entry.
func (m *Map[K, V]) InsertEntry(e Entry[K, V]) (Iterator[Entry[K, V]], bool) {
	m.t.mustReserve()
	n := m.t.newNode(e)
	resident, ok := m.t.insertNode(n)
	if !ok {
		m.t.freeNode(n)
	}
	return m.t.at(resident), ok
}

// InsertOrAssign adds key with value, or if key is already present replaces
// the resident value in place.  The boolean reports whether key was new.
func (m *Map[K, V]) InsertOrAssign(key K, value V) (Iterator[Entry[K, V]], bool) {
	pos, ok := m.Insert(key, value)
	if !ok {
		pos.n.item.Value = value
	}
	return pos, ok
}

// Emplace inserts each of entries in turn and reports the outcome of each.
// If the entries could not all fit, nothing is inserted and
// ErrCapacityExceeded is returned.
func (m *Map[K, V]) Emplace(entries ...Entry[K, V]) ([]InsertResult[Entry[K, V]], error) {
	if err := m.t.reserve(len(entries)); err != nil {
		return nil, err
	}
	out := make([]InsertResult[Entry[K, V]], 0, len(entries))
	for _, e := range entries {
		pos, ok := m.InsertEntry(e)
		out = append(out, InsertResult[Entry[K, V]]{Pos: pos, Inserted: ok})
	}
	return out, nil
}

// Erase removes the entry at pos and returns the position of the entry that
// followed it.  Erasing End is a no-op.
func (m *Map[K, V]) Erase(pos Iterator[Entry[K, V]]) Iterator[Entry[K, V]] {
	m.t.owns(pos)
	if pos.n == nil {
		return pos
	}
	return m.t.at(m.t.erase(pos.n))
}

// Delete removes the entry for key, reporting whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	n := m.t.search(probe[K, V](key))
	if n == nil {
		return false
	}
	m.t.erase(n)
	return true
}

// Clear removes all entries from m.
func (m *Map[K, V]) Clear() {
	m.t.clear(true)
}

// Swap exchanges the contents of m and other.  Iterators follow their
// entries.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	m.t, other.t = other.t, m.t
}

// Move returns a new Map holding the contents of m and leaves m empty.
func (m *Map[K, V]) Move() *Map[K, V] {
	out := &Map[K, V]{t: m.t}
	m.t = newTree(out.t.less, false, out.t.freelist)
	return out
}

// Clone returns a copy of m.  Keys and values implementing DeepCopier are
// deep-copied.  The copy shares m's free list.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{t: m.t.clone(func(e Entry[K, V]) Entry[K, V] {
		return Entry[K, V]{Key: deepCopy(e.Key), Value: deepCopy(e.Value)}
	})}
}

// Merge moves every entry of other into m.  Entries whose key is already in
// m stay behind: afterwards other holds exactly the entries that collided,
// with their original values.  Merging a Map into itself is a no-op.
//
// Iterators into other are invalidated for every entry that moved into m.
// Iterators to entries that stayed behind remain valid for other.
func (m *Map[K, V]) Merge(other *Map[K, V]) {
	m.t.merge(other.t)
}

// Find returns the position of the entry for key, or End.
func (m *Map[K, V]) Find(key K) Iterator[Entry[K, V]] {
	return m.t.at(m.t.search(probe[K, V](key)))
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	return m.t.search(probe[K, V](key)) != nil
}

// Count returns 1 if key is present, else 0.
func (m *Map[K, V]) Count(key K) int {
	if m.Contains(key) {
		return 1
	}
	return 0
}

// LowerBound returns the position of the first entry whose key is not less
// than key.  If key is absent this is the first entry with a greater key, not
// End.
func (m *Map[K, V]) LowerBound(key K) Iterator[Entry[K, V]] {
	return m.t.at(m.t.lowerBound(probe[K, V](key)))
}

// UpperBound returns the position of the first entry whose key is greater
// than key.
func (m *Map[K, V]) UpperBound(key K) Iterator[Entry[K, V]] {
	return m.t.at(m.t.upperBound(probe[K, V](key)))
}

// Keys returns all keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, 0, m.t.length)
	m.t.ascend(func(e Entry[K, V]) bool {
		out = append(out, e.Key)
		return true
	})
	return out
}

// Values returns all values in ascending order of their keys.
func (m *Map[K, V]) Values() []V {
	out := make([]V, 0, m.t.length)
	m.t.ascend(func(e Entry[K, V]) bool {
		out = append(out, e.Value)
		return true
	})
	return out
}

// Ascend calls the iterator for every entry in ascending key order, until
// iterator returns false.
func (m *Map[K, V]) Ascend(iterator ItemIterator[Entry[K, V]]) {
	m.t.ascend(iterator)
}

// Descend calls the iterator for every entry in descending key order, until
// iterator returns false.
func (m *Map[K, V]) Descend(iterator ItemIterator[Entry[K, V]]) {
	m.t.descend(iterator)
}

// Height returns the number of levels of the underlying tree.
func (m *Map[K, V]) Height() int {
	return m.t.height()
}

// Print writes the shape of the underlying tree to w.
func (m *Map[K, V]) Print(w io.Writer) error {
	return m.t.print(w)
}
