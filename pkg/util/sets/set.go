// Package sets provides a generic set implemented via map[T]struct{}
// for minimal memory consumption.
package sets

import (
	"cmp"
	"slices"
)

type Empty struct{}

// Set is a set of comparable items.
type Set[T comparable] map[T]Empty

// New creates a Set from a list of values.
func New[T comparable](items ...T) Set[T] {
	return Set[T]{}.Insert(items...)
}

// Insert adds items to the set.
func (s Set[T]) Insert(items ...T) Set[T] {
	for _, item := range items {
		s[item] = Empty{}
	}
	return s
}

// Delete removes all items from the set.
func (s Set[T]) Delete(items ...T) Set[T] {
	for _, item := range items {
		delete(s, item)
	}
	return s
}

// Has returns true if and only if item is contained in the set.
func (s Set[T]) Has(item T) bool {
	_, ok := s[item]
	return ok
}

// HasAll returns true if and only if all items are contained in the set.
func (s Set[T]) HasAll(items ...T) bool {
	for _, item := range items {
		if !s.Has(item) {
			return false
		}
	}
	return true
}

// Retain removes every item for which keep returns false.
// It returns the number of removed items.
func (s Set[T]) Retain(keep func(T) bool) (removed int) {
	for item := range s {
		if !keep(item) {
			delete(s, item)
			removed++
		}
	}
	return removed
}

// UnsortedList returns the slice with contents in random order.
func (s Set[T]) UnsortedList() []T {
	res := make([]T, 0, len(s))
	for key := range s {
		res = append(res, key)
	}
	return res
}

// Clone returns a shallow copy of s.
func (s Set[T]) Clone() Set[T] {
	c := make(Set[T], len(s))
	for key := range s {
		c[key] = Empty{}
	}
	return c
}

// Len returns the size of the set.
func (s Set[T]) Len() int {
	return len(s)
}

// Sorted returns the contents of s in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	list := s.UnsortedList()
	slices.Sort(list)
	return list
}
