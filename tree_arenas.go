//go:build goexperiment.arenas

package bstree

import (
	"arena"
)

// cloneWithArena copies t node for node, keeping its shape.  The tree, its
// nodes and its own free list all live in a, so the copy must not be used
// after a is freed.
func (t *tree[E]) cloneWithArena(a *arena.Arena, copyItem func(E) E) *tree[E] {
	c := arena.New[tree[E]](a)
	c.freelist = arena.New[FreeList[E]](a)
	c.freelist.freelist = arena.MakeSlice[*node[E]](a, 0, cap(t.freelist.freelist))
	c.limit = t.limit
	c.multi = t.multi
	c.less = t.less
	c.length = t.length
	if t.root == nil {
		return c
	}

	type pair struct{ src, dst *node[E] }
	copyNode := func(src, parent *node[E]) *node[E] {
		n := arena.New[node[E]](a)
		n.item = copyItem(src.item)
		n.parent = parent
		return n
	}
	c.root = copyNode(t.root, nil)
	stack := []pair{{t.root, c.root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.src.left != nil {
			p.dst.left = copyNode(p.src.left, p.dst)
			stack = append(stack, pair{p.src.left, p.dst.left})
		}
		if p.src.right != nil {
			p.dst.right = copyNode(p.src.right, p.dst)
			stack = append(stack, pair{p.src.right, p.dst.right})
		}
	}
	c.max = maximum(c.root)
	return c
}

// CloneWithArena is like Clone, but allocates the copy in a.  Values
// implementing ArenaCopier are copied into a as well.  The copy must not be
// used after a is freed.
func (s *Set[T]) CloneWithArena(a *arena.Arena) *Set[T] {
	c := arena.New[Set[T]](a)
	c.t = s.t.cloneWithArena(a, func(v T) T { return deepCopyWithArena(a, v) })
	return c
}

// CloneWithArena is like Clone, but allocates the copy in a.
func (m *MultiSet[T]) CloneWithArena(a *arena.Arena) *MultiSet[T] {
	c := arena.New[MultiSet[T]](a)
	c.t = m.t.cloneWithArena(a, func(v T) T { return deepCopyWithArena(a, v) })
	return c
}

// CloneWithArena is like Clone, but allocates the copy in a.
func (m *Map[K, V]) CloneWithArena(a *arena.Arena) *Map[K, V] {
	c := arena.New[Map[K, V]](a)
	c.t = m.t.cloneWithArena(a, func(e Entry[K, V]) Entry[K, V] {
		return Entry[K, V]{Key: deepCopyWithArena(a, e.Key), Value: deepCopyWithArena(a, e.Value)}
	})
	return c
}
