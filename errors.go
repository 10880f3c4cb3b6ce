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
	"github.com/pkg/errors"
)

var (
	// ErrCapacityExceeded is returned when a request would grow a container
	// past its MaxSize.  The container is left untouched.
	ErrCapacityExceeded = errors.New("bstree: capacity exceeded")

	// ErrKeyNotFound is returned by Map.At for an absent key.
	ErrKeyNotFound = errors.New("bstree: key not found")
)

// reserve returns ErrCapacityExceeded if n more items would not fit in t.
func (t *tree[E]) reserve(n int) error {
	if n > t.limit-t.length {
		return errors.Wrapf(ErrCapacityExceeded, "%d items requested, %d available", n, t.limit-t.length)
	}
	return nil
}

// mustReserve is reserve for single inserts, where running out of capacity is
// as fatal as running out of memory.
func (t *tree[E]) mustReserve() {
	if err := t.reserve(1); err != nil {
		panic(err)
	}
}
