package lists

import "iter"

type singlyNode[T comparable] struct {
	value T
	next  *singlyNode[T]
}

// Singly is a singly linked list. The zero value is an empty list.
type Singly[T comparable] struct {
	head   *singlyNode[T]
	length int
}

// NewSingly returns an empty singly linked list.
func NewSingly[T comparable]() *Singly[T] {
	return &Singly[T]{}
}

// Insert adds value at position. Position 0 or an empty list makes the new
// node the head. Otherwise the walk stops after position-1 steps or at the
// last node, whichever comes first, and the node is spliced after it. A
// negative position never walks, so the node lands right after head.
func (l *Singly[T]) Insert(value T, position int) {
	n := &singlyNode[T]{value: value}
	if position == 0 || l.head == nil {
		n.next = l.head
		l.head = n
		l.length++
		return
	}

	current := l.head
	for i := 0; i+1 < position && current.next != nil; i++ {
		current = current.next
	}
	n.next = current.next
	current.next = n
	l.length++
}

// Find returns the index of the first node holding value, or NotFound.
func (l *Singly[T]) Find(value T) int {
	index := 0
	for current := l.head; current != nil; current = current.next {
		if current.value == value {
			return index
		}
		index++
	}
	return NotFound
}

// Remove unlinks the first node holding value.
func (l *Singly[T]) Remove(value T) bool {
	if l.head == nil {
		return false
	}

	if l.head.value == value {
		old := l.head
		l.head = old.next
		old.next = nil
		l.length--
		return true
	}

	current := l.head
	for current.next != nil && current.next.value != value {
		current = current.next
	}
	if current.next == nil {
		return false
	}
	victim := current.next
	current.next = victim.next
	victim.next = nil
	l.length--
	return true
}

// Len returns the number of nodes.
func (l *Singly[T]) Len() int { return l.length }

// Variant returns VariantSingly.
func (l *Singly[T]) Variant() Variant { return VariantSingly }

// All yields (index, value) pairs from head to tail.
func (l *Singly[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for current := l.head; current != nil; current = current.next {
			if !yield(i, current.value) {
				return
			}
			i++
		}
	}
}

// Values yields values from head to tail.
func (l *Singly[T]) Values() iter.Seq[T] { return values(l.All()) }

// ToSlice returns the linearization of the list.
func (l *Singly[T]) ToSlice() []T { return collect(l.Values(), l.length) }
