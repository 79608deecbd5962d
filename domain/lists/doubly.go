package lists

import "iter"

// doublyNode owns its successor through next. prev is a back pointer used
// only for traversal and never handed out of the package.
type doublyNode[T comparable] struct {
	value T
	next  *doublyNode[T]
	prev  *doublyNode[T]
}

// Doubly is a doubly linked list. The zero value is an empty list.
type Doubly[T comparable] struct {
	head   *doublyNode[T]
	length int
}

// NewDoubly returns an empty doubly linked list.
func NewDoubly[T comparable]() *Doubly[T] {
	return &Doubly[T]{}
}

// Insert follows the same positional rules as Singly.Insert and keeps the
// back pointers of both neighbours consistent.
func (l *Doubly[T]) Insert(value T, position int) {
	n := &doublyNode[T]{value: value}
	if position == 0 || l.head == nil {
		n.next = l.head
		if l.head != nil {
			l.head.prev = n
		}
		l.head = n
		l.length++
		return
	}

	current := l.head
	for i := 0; i+1 < position && current.next != nil; i++ {
		current = current.next
	}
	n.next = current.next
	n.prev = current
	if current.next != nil {
		current.next.prev = n
	}
	current.next = n
	l.length++
}

// Find returns the index of the first node holding value, or NotFound.
func (l *Doubly[T]) Find(value T) int {
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
func (l *Doubly[T]) Remove(value T) bool {
	current := l.head
	for current != nil && current.value != value {
		current = current.next
	}
	if current == nil {
		return false
	}

	if current == l.head {
		l.head = current.next
		if l.head != nil {
			l.head.prev = nil
		}
	} else {
		current.prev.next = current.next
		if current.next != nil {
			current.next.prev = current.prev
		}
	}
	current.next, current.prev = nil, nil
	l.length--
	return true
}

// Len returns the number of nodes.
func (l *Doubly[T]) Len() int { return l.length }

// Variant returns VariantDoubly.
func (l *Doubly[T]) Variant() Variant { return VariantDoubly }

// All yields (index, value) pairs from head to tail.
func (l *Doubly[T]) All() iter.Seq2[int, T] {
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

// Backward yields (index, value) pairs from tail to head by following the
// back pointers. Indices are the forward positions.
func (l *Doubly[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if l.head == nil {
			return
		}
		tail, i := l.head, 0
		for tail.next != nil {
			tail = tail.next
			i++
		}
		for current := tail; current != nil; current = current.prev {
			if !yield(i, current.value) {
				return
			}
			i--
		}
	}
}

// Values yields values from head to tail.
func (l *Doubly[T]) Values() iter.Seq[T] { return values(l.All()) }

// ToSlice returns the linearization of the list.
func (l *Doubly[T]) ToSlice() []T { return collect(l.Values(), l.length) }
