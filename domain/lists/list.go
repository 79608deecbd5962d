// Package lists implements the pointer-based linked lists shown by the
// visualizer: singly, doubly and circular.
//
// All three variants share one contract. Structural edits never fail:
// an out-of-range insert position appends after the last reachable node
// and removing an absent value is a no-op. The only way contents leave a
// list is through its linearization (ToSlice, All, Values).
package lists

import (
	"fmt"
	"iter"
)

// NotFound is the index returned by Find when no element matches.
const NotFound = -1

// Variant identifies the link topology of a list.
type Variant string

const (
	VariantSingly   Variant = "singly"
	VariantDoubly   Variant = "doubly"
	VariantCircular Variant = "circular"
)

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantSingly, VariantDoubly, VariantCircular:
		return true
	}
	return false
}

// ParseVariant converts a string into a Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown list variant %q", s)
	}
	return v, nil
}

// List is the contract shared by every variant.
type List[T comparable] interface {
	// Insert places value so that it becomes the element at position in
	// the resulting linearization, degrading to append when position is
	// beyond the end.
	Insert(value T, position int)
	// Find returns the index of the first element equal to value, or
	// NotFound.
	Find(value T) int
	// Remove unlinks the first element equal to value and reports whether
	// anything was removed.
	Remove(value T) bool
	// Len returns the number of live nodes.
	Len() int
	// ToSlice returns the values in traversal order starting at head.
	ToSlice() []T
	// All yields (index, value) pairs in traversal order.
	All() iter.Seq2[int, T]
	// Values yields values in traversal order.
	Values() iter.Seq[T]
	// Variant returns the topology of the list.
	Variant() Variant
}

// New returns an empty list of the requested variant.
func New[T comparable](v Variant) (List[T], error) {
	switch v {
	case VariantSingly:
		return NewSingly[T](), nil
	case VariantDoubly:
		return NewDoubly[T](), nil
	case VariantCircular:
		return NewCircular[T](), nil
	}
	return nil, fmt.Errorf("unknown list variant %q", v)
}

// values adapts an index/value sequence to a value-only one.
func values[T any](all iter.Seq2[int, T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range all {
			if !yield(v) {
				return
			}
		}
	}
}

// collect drains a sequence into a slice sized for n elements.
func collect[T any](seq iter.Seq[T], n int) []T {
	out := make([]T, 0, n)
	for v := range seq {
		out = append(out, v)
	}
	return out
}
