package utils

import "iter"

// Ring is a bounded history that overwrites its oldest entry once full.
type Ring[T any] struct {
	items []T
	head  int
	len   int
}

// NewRing returns a ring holding at most capacity entries.
func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{items: make([]T, max(capacity, 0))}
}

// Push adds an entry, dropping the oldest one if the ring is full. A ring with zero capacity keeps
// nothing.
func (r *Ring[T]) Push(item T) {
	if len(r.items) == 0 {
		return
	}
	r.items[(r.head+r.len)%len(r.items)] = item
	if r.len == len(r.items) {
		r.head = (r.head + 1) % len(r.items)
	} else {
		r.len++
	}
}

// At returns the entry at index, where 0 is the oldest entry.
func (r *Ring[T]) At(index int) (T, bool) {
	var zero T
	if index < 0 || index >= r.len {
		return zero, false
	}
	return r.items[(r.head+index)%len(r.items)], true
}

// Last returns the newest entry.
func (r *Ring[T]) Last() (T, bool) {
	return r.At(r.len - 1)
}

// All iterates the entries from oldest to newest.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range r.len {
			if !yield(r.items[(r.head+i)%len(r.items)]) {
				return
			}
		}
	}
}

// Slice returns a copy of the entries from oldest to newest.
func (r *Ring[T]) Slice() []T {
	out := make([]T, 0, r.len)
	for item := range r.All() {
		out = append(out, item)
	}
	return out
}

// Len returns the number of entries in the ring.
func (r *Ring[T]) Len() int {
	return r.len
}

// Cap returns the maximum number of entries the ring holds.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Clear removes all entries.
func (r *Ring[T]) Clear() {
	clear(r.items)
	r.head, r.len = 0, 0
}
