package lists

import "iter"

type circularNode[T comparable] struct {
	value T
	next  *circularNode[T]
}

// Circular is a singly linked ring: the last node links back to head.
// The zero value is an empty list.
type Circular[T comparable] struct {
	head   *circularNode[T]
	length int
}

// NewCircular returns an empty circular linked list.
func NewCircular[T comparable]() *Circular[T] {
	return &Circular[T]{}
}

// Insert adds value at position. A new head closes the ring by repointing
// the tail at it, or by linking to itself when the list was empty. For
// other positions the walk stops after position-1 steps or when the next
// node would be head again.
func (l *Circular[T]) Insert(value T, position int) {
	n := &circularNode[T]{value: value}
	if position == 0 || l.head == nil {
		if l.head == nil {
			n.next = n
		} else {
			n.next = l.head
			l.tail().next = n
		}
		l.head = n
		l.length++
		return
	}

	current := l.head
	for count := 0; count+1 < position && current.next != l.head; count++ {
		current = current.next
	}
	n.next = current.next
	current.next = n
	l.length++
}

// Find returns the index of the first node holding value, or NotFound.
// At most Len comparisons are made.
func (l *Circular[T]) Find(value T) int {
	if l.head == nil {
		return NotFound
	}
	current, index := l.head, 0
	for {
		if current.value == value {
			return index
		}
		current = current.next
		index++
		if current == l.head || index >= l.length {
			return NotFound
		}
	}
}

// Remove unlinks the first node holding value. Removing head repoints the
// tail to the new head; removing the only node empties the list.
func (l *Circular[T]) Remove(value T) bool {
	if l.head == nil {
		return false
	}

	if l.head.value == value {
		old := l.head
		if old.next == old {
			l.head = nil
		} else {
			l.tail().next = old.next
			l.head = old.next
		}
		old.next = nil
		l.length--
		return true
	}

	prev, current := l.head, l.head.next
	for current != l.head && current.value != value {
		prev, current = current, current.next
	}
	if current == l.head {
		return false
	}
	prev.next = current.next
	current.next = nil
	l.length--
	return true
}

// tail returns the node whose next is head. The list must be non-empty.
func (l *Circular[T]) tail() *circularNode[T] {
	current := l.head
	for current.next != l.head {
		current = current.next
	}
	return current
}

// Len returns the number of nodes.
func (l *Circular[T]) Len() int { return l.length }

// Variant returns VariantCircular.
func (l *Circular[T]) Variant() Variant { return VariantCircular }

// All yields each (index, value) pair once, starting at head and stopping
// before head is revisited.
func (l *Circular[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if l.head == nil {
			return
		}
		current := l.head
		for i := 0; i < l.length; i++ {
			if !yield(i, current.value) {
				return
			}
			current = current.next
			if current == l.head {
				return
			}
		}
	}
}

// Values yields values once around the ring starting at head.
func (l *Circular[T]) Values() iter.Seq[T] { return values(l.All()) }

// ToSlice returns the linearization of the list.
func (l *Circular[T]) ToSlice() []T { return collect(l.Values(), l.length) }
