package bstree

// Lesser is implemented by element types that order themselves.
type Lesser[T any] interface {
	Less(T) bool
}

// LessOf returns a LessFunc that defers to the Less method of T.
func LessOf[T Lesser[T]]() LessFunc[T] {
	return func(a, b T) bool { return a.Less(b) }
}

// DeepCopier is implemented by element types whose copies must not share
// memory with the original.  Clone uses it when present.
type DeepCopier[T any] interface {
	DeepCopy() T
}

func deepCopy[T any](v T) T {
	if c, ok := any(v).(DeepCopier[T]); ok {
		return c.DeepCopy()
	}
	return v
}
