// Package seq provides the growable sequence shared by the clock stack and
// the output ledger.
package seq

import (
	"errors"
	"iter"
)

// ErrFull is returned by Push when the sequence has reached its limit.
var ErrFull = errors.New("sequence limit reached")

// initialChunk is the capacity of the first allocation.
const initialChunk = 8

// Seq is a dynamic array with amortized doubling growth.
// The zero value is an empty, unlimited sequence.
type Seq[T any] struct {
	items []T

	// Limit caps the number of elements; 0 means unlimited.
	Limit int
	// ReleaseOnEmpty drops the backing array when Pop empties the sequence.
	ReleaseOnEmpty bool
}

// Len returns the number of stored elements.
func (s *Seq[T]) Len() int { return len(s.items) }

// Cap returns the capacity of the backing array.
func (s *Seq[T]) Cap() int { return cap(s.items) }

// Push appends v, growing the backing array if it is full.
func (s *Seq[T]) Push(v T) error {
	n := len(s.items)
	if s.Limit > 0 && n >= s.Limit {
		return ErrFull
	}
	if n == cap(s.items) {
		s.grow()
	}
	s.items = append(s.items, v)
	return nil
}

func (s *Seq[T]) grow() {
	newCap := cap(s.items) * 2
	if newCap < initialChunk {
		newCap = initialChunk
	}
	if s.Limit > 0 && newCap > s.Limit {
		newCap = s.Limit
	}
	items := make([]T, len(s.items), newCap)
	copy(items, s.items)
	s.items = items
}

// Pop removes and returns the last element.
func (s *Seq[T]) Pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	if n == 1 && s.ReleaseOnEmpty {
		s.items = nil
	}
	return v, true
}

// Last returns a pointer to the last element, valid until the next Push or Pop.
func (s *Seq[T]) Last() (*T, bool) {
	n := len(s.items)
	if n == 0 {
		return nil, false
	}
	return &s.items[n-1], true
}

// All yields elements first to last.
func (s *Seq[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Backward yields elements last to first, ending with index 0.
func (s *Seq[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(s.items) - 1; i >= 0; i-- {
			if !yield(i, s.items[i]) {
				return
			}
		}
	}
}

// Slice returns a copy of the stored elements.
func (s *Seq[T]) Slice() []T {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Release drops every element and the backing array.
func (s *Seq[T]) Release() {
	s.items = nil
}
