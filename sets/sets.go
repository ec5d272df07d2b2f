// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package sets provides a minimal generic hash-set with the boolean
// algebra the filter engine needs (union, intersection).
package sets

// Set is an unordered collection of comparable values.
type Set[T comparable] map[T]struct{}

// New creates a set containing the given items.
func New[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, v := range items {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v into the set.
func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

// Contains reports whether v is in the set.
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

// ContainsAll reports whether every item is in the set.
func (s Set[T]) ContainsAll(items []T) bool {
	for _, v := range items {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// Len returns the number of elements.
func (s Set[T]) Len() int {
	return len(s)
}

// Values returns the elements in unspecified order.
func (s Set[T]) Values() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Union returns a new set with every element of a and b.
func Union[T comparable](a, b Set[T]) Set[T] {
	out := make(Set[T], len(a)+len(b))
	for v := range a {
		out[v] = struct{}{}
	}
	for v := range b {
		out[v] = struct{}{}
	}
	return out
}

// Intersect returns a new set with the elements present in both a and b.
func Intersect[T comparable](a, b Set[T]) Set[T] {
	// Iterate the smaller side
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(Set[T])
	for v := range a {
		if b.Contains(v) {
			out[v] = struct{}{}
		}
	}
	return out
}
