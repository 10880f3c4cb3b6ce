//go:build goexperiment.arenas

package bstree

import "arena"

// ArenaCopier is implemented by element types that can deep-copy themselves
// into an arena.  CloneWithArena uses it when present, falling back to
// DeepCopier and then to a plain copy.
type ArenaCopier[T any] interface {
	DeepCopyWithArena(*arena.Arena) T
}

func deepCopyWithArena[T any](a *arena.Arena, v T) T {
	if c, ok := any(v).(ArenaCopier[T]); ok {
		return c.DeepCopyWithArena(a)
	}
	return deepCopy(v)
}
