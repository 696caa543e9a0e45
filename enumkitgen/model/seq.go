package model

import (
	"iter"
	"slices"
)

// Elem is the constraint for Seq elements.
type Elem[T any] interface {
	Equal(T) bool
	Hash() uint64
}

// Seq is an immutable ordered sequence compared by content: two sequences
// are equal when they have the same length and are pairwise equal. Order is
// significant.
type Seq[T Elem[T]] struct {
	items []T
}

// NewSeq copies items into a new sequence.
func NewSeq[T Elem[T]](items ...T) Seq[T] {
	return Seq[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (s Seq[T]) Len() int { return len(s.items) }

// At returns the i'th element.
func (s Seq[T]) At(i int) T { return s.items[i] }

// All iterates index/element pairs in order.
func (s Seq[T]) All() iter.Seq2[int, T] { return slices.All(s.items) }

// Values iterates the elements in order.
func (s Seq[T]) Values() iter.Seq[T] { return slices.Values(s.items) }

// Slice returns a copy of the elements.
func (s Seq[T]) Slice() []T { return slices.Clone(s.items) }

// Equal reports whether s and o hold pairwise equal elements in the same order.
func (s Seq[T]) Equal(o Seq[T]) bool {
	if len(s.items) != len(o.items) {
		return false
	}
	for i := range s.items {
		if !s.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}

// Hash combines the element hashes in order.
func (s Seq[T]) Hash() uint64 {
	h := mix(hashOffset, uint64(len(s.items)))
	for _, it := range s.items {
		h = mix(h, it.Hash())
	}
	return h
}
