package observable

import (
	"fmt"
	"slices"
)

// List is an observable ordered collection.
// Every mutator applies the change first, then notifies.
type List[T any] struct {
	Subject
	items []T
}

// NewList creates an observable list holding a copy of items.
func NewList[T any](items []T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Get returns a copy of the items.
func (l *List[T]) Get() []T {
	return slices.Clone(l.items)
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the item at position i.
// ok is false when i is out of range.
func (l *List[T]) At(i int) (item T, ok bool) {
	if i < 0 || i >= len(l.items) {
		return item, false
	}
	return l.items[i], true
}

// Replace swaps the whole content of the list.
func (l *List[T]) Replace(items []T) {
	l.items = slices.Clone(items)
	l.Notify()
}

// Append adds items at the end of the list.
func (l *List[T]) Append(items ...T) {
	l.items = append(l.items, items...)
	l.Notify()
}

// Insert places item at position i, shifting the following items.
func (l *List[T]) Insert(i int, item T) error {
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("insert at %d (len %d): %w", i, len(l.items), ErrIndexOutOfRange)
	}
	l.items = slices.Insert(l.items, i, item)
	l.Notify()
	return nil
}

// RemoveAt deletes the item at position i.
func (l *List[T]) RemoveAt(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("remove at %d (len %d): %w", i, len(l.items), ErrIndexOutOfRange)
	}
	l.items = slices.Delete(l.items, i, i+1)
	l.Notify()
	return nil
}

// SetAt overwrites the item at position i.
func (l *List[T]) SetAt(i int, item T) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("set at %d (len %d): %w", i, len(l.items), ErrIndexOutOfRange)
	}
	l.items[i] = item
	l.Notify()
	return nil
}

// UpdateAt mutates the item at position i in place through fn.
// This is how nested structure is changed while still notifying observers.
func (l *List[T]) UpdateAt(i int, fn func(item *T)) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("update at %d (len %d): %w", i, len(l.items), ErrIndexOutOfRange)
	}
	fn(&l.items[i])
	l.Notify()
	return nil
}
