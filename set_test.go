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
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/petar/GoLLRB/llrb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func intRange(s int, reverse bool) []int {
	out := make([]int, s)
	for i := 0; i < s; i++ {
		v := i
		if reverse {
			v = s - i - 1
		}
		out[i] = v
	}
	return out
}

func setAll[T any](s *Set[T]) (out []T) {
	s.Ascend(func(a T) bool {
		out = append(out, a)
		return true
	})
	return
}

func setAllRev[T any](s *Set[T]) (out []T) {
	s.Descend(func(a T) bool {
		out = append(out, a)
		return true
	})
	return
}

// llrbAll dumps the reference tree in order.
func llrbAll(t *llrb.LLRB) (out []int) {
	if t.Len() == 0 {
		return
	}
	t.AscendGreaterOrEqual(t.Min(), func(i llrb.Item) bool {
		out = append(out, int(i.(llrb.Int)))
		return true
	})
	return
}

func TestSet(t *testing.T) {
	s := NewOrderedSet[int]()
	const size = 100
	for i := 0; i < 10; i++ {
		if min, ok := s.Min(); ok || min != 0 {
			t.Fatalf("empty min, got %+v", min)
		}
		if max, ok := s.Max(); ok || max != 0 {
			t.Fatalf("empty max, got %+v", max)
		}
		for _, item := range rand.Perm(size) {
			if pos, ok := s.Insert(item); !ok || pos.Item() != item {
				t.Fatal("insert found item", item)
			}
		}
		for _, item := range rand.Perm(size) {
			if pos, ok := s.Insert(item); ok || pos.Item() != item {
				t.Fatal("insert didn't find item", item)
			}
		}
		check(t, s.t)
		if min, ok := s.Min(); !ok || min != 0 {
			t.Fatalf("min: ok %v want 0, got %+v", ok, min)
		}
		if max, ok := s.Max(); !ok || max != size-1 {
			t.Fatalf("max: ok %v want %+v, got %+v", ok, size-1, max)
		}
		if got, want := setAll(s), intRange(size, false); !reflect.DeepEqual(got, want) {
			t.Fatalf("mismatch:\n got: %v\nwant: %v", got, want)
		}
		if got, want := setAllRev(s), intRange(size, true); !reflect.DeepEqual(got, want) {
			t.Fatalf("mismatch:\n got: %v\nwant: %v", got, want)
		}
		for _, item := range rand.Perm(size) {
			if !s.Delete(item) {
				t.Fatalf("didn't find %v", item)
			}
		}
		if got := setAll(s); len(got) > 0 {
			t.Fatalf("some left!: %v", got)
		}
		if !s.Empty() || s.Len() != 0 {
			t.Fatalf("not empty after deleting everything: %d", s.Len())
		}
	}
}

// TestSetAgainstLLRB drives a Set and an LLRB with the same random inserts and
// erases and compares their contents after every step.
func TestSetAgainstLLRB(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	s := NewOrderedSet[int]()
	ref := llrb.New()
	for i := 0; i < 20*(*treeSize); i++ {
		v := r.Intn(*treeSize)
		if r.Intn(3) > 0 {
			_, ok := s.Insert(v)
			if want := !ref.Has(llrb.Int(v)); ok != want {
				t.Fatalf("insert %d: got inserted=%v want %v", v, ok, want)
			}
			if ok {
				ref.InsertNoReplace(llrb.Int(v))
			}
		} else {
			pos := s.Find(v)
			if pos.End() != !ref.Has(llrb.Int(v)) {
				t.Fatalf("find %d disagrees with reference", v)
			}
			if !pos.End() {
				s.Erase(pos)
				ref.Delete(llrb.Int(v))
			}
		}
		if s.Len() != ref.Len() {
			t.Fatalf("len: got %d want %d", s.Len(), ref.Len())
		}
	}
	check(t, s.t)
	if got, want := forward(s.t), llrbAll(ref); !reflect.DeepEqual(got, want) {
		t.Fatalf("mismatch:\n got: %v\nwant: %v", got, want)
	}
	if got, want := backward(s.t), llrbAll(ref); !reflect.DeepEqual(got, want) {
		t.Fatalf("mismatch backward:\n got: %v\nwant: %v", got, want)
	}
}

// TestSetEraseByPosition erases the 3rd, the 2nd and again the 3rd element,
// fetching each position afresh from Begin.
func TestSetEraseByPosition(t *testing.T) {
	items := []int{7, 4, 2, 5, 1, 11, 8, 9, 12}
	s, err := NewSetFrom(Less[int](), items)
	require.NoError(t, err)

	ref := llrb.New()
	for _, v := range items {
		ref.ReplaceOrInsert(llrb.Int(v))
	}
	for _, skip := range []int{2, 1, 2} {
		pos := s.Begin()
		for i := 0; i < skip; i++ {
			pos = pos.Next()
		}
		s.Erase(pos)
		ref.Delete(llrb.Int(llrbAll(ref)[skip]))
		check(t, s.t)
	}
	require.Equal(t, llrbAll(ref), forward(s.t))
	require.Equal(t, []int{1, 5, 8, 9, 11, 12}, backward(s.t))
	require.Equal(t, 6, s.Len())
}

func TestSetEraseReturnsNext(t *testing.T) {
	s, err := NewSetFrom(Less[int](), []int{2, 4, 3, 5, 6})
	require.NoError(t, err)

	next := s.Erase(s.Find(4))
	require.Equal(t, 5, next.Item())
	require.Equal(t, []int{2, 3, 5, 6}, setAll(s))

	require.True(t, s.Erase(s.Find(6)).End())
	require.True(t, s.Erase(s.End()).End())
	require.Equal(t, 3, s.Len())

	other := NewOrderedSet[int]()
	require.Panics(t, func() { s.Erase(other.End()) })
}

func TestSetFindContains(t *testing.T) {
	s, err := NewSetFrom(Less[int](), rand.Perm(*treeSize)[:*treeSize/2])
	require.NoError(t, err)
	for k := -1; k <= *treeSize; k++ {
		require.Equal(t, s.Contains(k), !s.Find(k).Equal(s.End()), "key %d", k)
		require.Equal(t, s.Count(k), map[bool]int{true: 1, false: 0}[s.Contains(k)])
	}
}

func TestSetMergeIterators(t *testing.T) {
	a, err := NewSetFrom(Less[int](), []int{1, 2, 3})
	require.NoError(t, err)
	b, err := NewSetFrom(Less[int](), []int{4, 2, 5})
	require.NoError(t, err)
	stays, moves := b.Find(2), b.Find(5)

	a.Merge(b)
	require.Equal(t, []int{2}, setAll(b))
	require.Equal(t, 2, stays.Item())
	require.True(t, stays.Equal(b.Begin()))
	require.True(t, b.Erase(stays).End())
	require.True(t, b.Empty())

	// The moved element is now reachable only through a.
	require.False(t, moves.Equal(a.Find(5)))
	require.Same(t, moves.n, a.Find(5).n)
	require.Equal(t, []int{1, 2, 3, 4, 5}, setAll(a))
	check(t, a.t)
	check(t, b.t)
}

func TestSetBounds(t *testing.T) {
	s, err := NewSetFrom(Less[int](), []int{10, 20, 30})
	require.NoError(t, err)
	require.Equal(t, 20, s.LowerBound(20).Item())
	require.Equal(t, 30, s.UpperBound(20).Item())
	require.Equal(t, 20, s.LowerBound(15).Item())
	require.Equal(t, 20, s.UpperBound(15).Item())
	require.Equal(t, 10, s.LowerBound(0).Item())
	require.True(t, s.LowerBound(31).End())
	require.True(t, s.UpperBound(30).End())
}

func TestSetMerge(t *testing.T) {
	a, err := NewSetFrom(Less[int](), []int{1, 2, 3})
	require.NoError(t, err)
	b, err := NewSetFrom(Less[int](), []int{8, 5, 2, 4, 1, 3, 7, 6, 11, 9, 12, 10})
	require.NoError(t, err)

	a.Merge(b)
	require.Equal(t, intRange(13, false)[1:], setAll(a))
	require.Equal(t, []int{1, 2, 3}, setAll(b))
	require.Equal(t, 3, b.Len())
	check(t, a.t)
	check(t, b.t)

	// Nothing collides the second time round except what is already there.
	a.Merge(b)
	require.Equal(t, []int{1, 2, 3}, setAll(b))

	a.Merge(a)
	require.Equal(t, 12, a.Len())

	empty := NewOrderedSet[int]()
	empty.Merge(b)
	require.Equal(t, []int{1, 2, 3}, setAll(empty))
	require.True(t, b.Empty())
}

func TestSetSwapMove(t *testing.T) {
	a, err := NewSetFrom(Less[int](), []int{1, 2, 3})
	require.NoError(t, err)
	b, err := NewSetFrom(Less[int](), []int{9})
	require.NoError(t, err)

	pos := a.Find(2)
	a.Swap(b)
	require.Equal(t, []int{9}, setAll(a))
	require.Equal(t, []int{1, 2, 3}, setAll(b))
	// pos followed its element into b.
	require.Equal(t, 3, b.Erase(pos).Item())

	c := b.Move()
	require.True(t, b.Empty())
	require.Equal(t, []int{1, 3}, setAll(c))
	b.Insert(4)
	require.Equal(t, []int{4}, setAll(b))
	require.Equal(t, []int{1, 3}, setAll(c))
}

type box struct{ v *int }

func (b box) DeepCopy() box {
	v := *b.v
	return box{&v}
}

func TestSetClone(t *testing.T) {
	s := NewSet(func(a, b box) bool { return *a.v < *b.v })
	for _, v := range rand.Perm(10) {
		v := v
		s.Insert(box{&v})
	}
	c := s.Clone()
	check(t, c.t)
	require.Equal(t, s.Len(), c.Len())
	first := s.Begin().Item()
	*first.v = -1
	got := c.Begin().Item()
	require.Equal(t, 0, *got.v, "clone shares memory with the original")
}

func TestSetCapacity(t *testing.T) {
	s := NewOrderedSet[int]()
	require.Equal(t, maxSize[int](), s.MaxSize())
	s.t.limit = 3

	res, err := s.Emplace(1, 2, 2)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, false}, inserted(res))
	require.Equal(t, 2, res[2].Pos.Item())

	_, err = s.Emplace(3, 4)
	require.True(t, errors.Is(err, ErrCapacityExceeded), "got %v", err)
	require.Equal(t, []int{1, 2}, setAll(s), "failed Emplace mutated the set")

	s.Insert(3)
	require.Panics(t, func() { s.Insert(4) })
}

func inserted[E any](res []InsertResult[E]) (out []bool) {
	for _, r := range res {
		out = append(out, r.Inserted)
	}
	return
}

type descending int

func (a descending) Less(b descending) bool { return a > b }

func TestSetLessOf(t *testing.T) {
	s := NewSet(LessOf[descending]())
	for _, v := range []int{3, 1, 2} {
		s.Insert(descending(v))
	}
	require.Equal(t, []descending{3, 2, 1}, setAll(s))
}

func TestSetRandomEmplace(t *testing.T) {
	items := make([]int, *treeSize)
	for i := range items {
		items[i] = rand.Intn(*treeSize / 2)
	}
	s := NewOrderedSet[int]()
	res, err := s.Emplace(items...)
	require.NoError(t, err)
	seen := map[int]bool{}
	for i, r := range res {
		require.Equal(t, !seen[items[i]], r.Inserted)
		require.Equal(t, items[i], r.Pos.Item())
		seen[items[i]] = true
	}
	want := make([]int, 0, len(seen))
	for v := range seen {
		want = append(want, v)
	}
	sort.Ints(want)
	require.Equal(t, want, setAll(s))
}

func ExampleSet() {
	s := NewOrderedSet[int]()
	for _, v := range []int{7, 4, 2, 5, 1, 11, 8, 9, 12} {
		s.Insert(v)
	}
	fmt.Println("len:      ", s.Len())
	_, ok := s.Insert(5)
	fmt.Println("insert5:  ", ok)
	fmt.Println("find8:    ", s.Find(8).Item())
	fmt.Println("find3:    ", s.Find(3).End())
	fmt.Println("erase4:   ", s.Erase(s.Find(4)).Item())
	fmt.Println("lower6:   ", s.LowerBound(6).Item())
	fmt.Println("last:     ", s.End().Prev().Item())
	var all []int
	for it := s.Begin(); !it.End(); it = it.Next() {
		all = append(all, it.Item())
	}
	fmt.Println("all:      ", all)
	// Output:
	// len:       9
	// insert5:   false
	// find8:     8
	// find3:     true
	// erase4:    5
	// lower6:    7
	// last:      12
	// all:       [1 2 5 7 8 9 11 12]
}

func BenchmarkInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(*treeSize)
	b.StartTimer()
	i := 0
	for i < b.N {
		s := NewOrderedSet[int]()
		for _, item := range insertP {
			s.Insert(item)
			i++
			if i >= b.N {
				return
			}
		}
	}
}

func BenchmarkDeleteInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(*treeSize)
	s := NewOrderedSet[int]()
	for _, item := range insertP {
		s.Insert(item)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		s.Delete(insertP[i%*treeSize])
		s.Insert(insertP[i%*treeSize])
	}
}

func BenchmarkFind(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(*treeSize)
	s := NewOrderedSet[int]()
	for _, item := range insertP {
		s.Insert(item)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		s.Find(insertP[i%*treeSize])
	}
}

func BenchmarkAscend(b *testing.B) {
	s := NewOrderedSet[int]()
	for _, item := range rand.Perm(*treeSize) {
		s.Insert(item)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := 0
		s.Ascend(func(item int) bool {
			if item != j {
				b.Fatalf("mismatch: expected: %v, got %v", j, item)
			}
			j++
			return true
		})
	}
}
