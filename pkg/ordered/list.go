// Package ordered provides a slice-backed list that keeps its elements in
// ascending order as they are inserted.
//
// A List is configured with two functions:
//
//   - compare decides where a new element goes (display order)
//   - equal decides identity for Remove, Contains and Index
//
// The two are deliberately independent. An element may compare as different
// from another while still being equal to it (for example, two events with the
// same name and different ticket counts).
//
// Example usage:
//
//	list := ordered.New(strings.Compare, func(a, b string) bool { return a == b })
//	list.Insert("pear")
//	list.Insert("apple")
//	for i, v := range list.All() {
//	    fmt.Println(i, v) // 0 apple, 1 pear
//	}
package ordered

import "iter"

// CompareFunc returns a negative number when a sorts before b, zero when they
// sort together and a positive number when a sorts after b.
type CompareFunc[T any] func(a, b T) int

// EqualFunc reports whether a and b are the same element.
type EqualFunc[T any] func(a, b T) bool

// List is a sequence kept in non-decreasing order under its compare function.
// It does not enforce uniqueness and is not safe for concurrent use.
type List[T any] struct {
	items   []T
	compare CompareFunc[T]
	equal   EqualFunc[T]
}

// Option configures a List.
type Option[T any] func(*List[T])

// WithCapacity preallocates room for n elements.
func WithCapacity[T any](n int) Option[T] {
	return func(l *List[T]) {
		if n > 0 {
			l.items = make([]T, 0, n)
		}
	}
}

// New creates an empty List.
func New[T any](compare CompareFunc[T], equal EqualFunc[T], opts ...Option[T]) *List[T] {
	l := &List[T]{
		compare: compare,
		equal:   equal,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Insert places item before the first element strictly greater than it,
// or at the end when no such element exists.
func (l *List[T]) Insert(item T) {
	for i, existing := range l.items {
		if l.compare(item, existing) < 0 {
			var zero T
			l.items = append(l.items, zero)
			copy(l.items[i+1:], l.items[i:])
			l.items[i] = item
			return
		}
	}
	l.items = append(l.items, item)
}

// Remove deletes the first element equal to item and reports whether one
// was found.
func (l *List[T]) Remove(item T) bool {
	i := l.Index(item)
	if i < 0 {
		return false
	}
	var zero T
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	return true
}

// Contains reports whether an element equal to item is present.
func (l *List[T]) Contains(item T) bool {
	return l.Index(item) >= 0
}

// Index returns the position of the first element equal to item, or -1.
func (l *List[T]) Index(item T) int {
	for i, existing := range l.items {
		if l.equal(existing, item) {
			return i
		}
	}
	return -1
}

// Find returns the first element matching fn.
func (l *List[T]) Find(fn func(T) bool) (T, bool) {
	for _, existing := range l.items {
		if fn(existing) {
			return existing, true
		}
	}
	var zero T
	return zero, false
}

// At returns the element at position i. It panics if i is out of range.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// All iterates over the elements in their current order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Items returns a copy of the elements in their current order.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}
