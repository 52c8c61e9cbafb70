// Package set provides an insertion-ordered set of comparable values.
package set

import "iter"

// Ordered keeps unique values in the order they were first inserted.
// The zero value is not usable; call New.
type Ordered[T comparable] struct {
	items []T
	index map[T]int
}

func New[T comparable](values ...T) *Ordered[T] {
	s := &Ordered[T]{index: make(map[T]int, len(values))}
	for _, v := range values {
		s.Insert(v)
	}
	return s
}

// Insert adds v. It reports false if v was already present.
func (s *Ordered[T]) Insert(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// Erase removes v. It reports false if v was absent.
func (s *Ordered[T]) Erase(v T) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	copy(s.items[i:], s.items[i+1:])
	var zero T
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	delete(s.index, v)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

func (s *Ordered[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *Ordered[T]) Len() int {
	return len(s.items)
}

// Union returns a new set holding s's values followed by other's new ones.
func (s *Ordered[T]) Union(other *Ordered[T]) *Ordered[T] {
	out := New(s.items...)
	for _, v := range other.items {
		out.Insert(v)
	}
	return out
}

// Intersect returns the values of s that are also in other, in s's order.
func (s *Ordered[T]) Intersect(other *Ordered[T]) *Ordered[T] {
	return s.Filter(other.Contains)
}

// Filter returns the values of s satisfying keep, in s's order.
func (s *Ordered[T]) Filter(keep func(T) bool) *Ordered[T] {
	out := New[T]()
	for _, v := range s.items {
		if keep(v) {
			out.Insert(v)
		}
	}
	return out
}

// All iterates in insertion order.
func (s *Ordered[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns a copy of the values in insertion order.
func (s *Ordered[T]) Slice() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
