package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is an append-only store addressed by 0-based uint32 indices.
// Indices are assigned in allocation order and never reused; everything an
// arena owns is released together when the arena itself goes away.
type Arena[T any] struct {
	data []T
}

// NewArena creates an *Arena[T] whose backing slice is preallocated with a
// capacity of capHint. Zero is allowed.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its index.
func (a *Arena[T]) Allocate(value T) uint32 {
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena size overflow: %w", err))
	}
	a.data = append(a.data, value)
	return idx
}

// Get returns a pointer to the element at index. An out-of-range index is a
// caller defect and panics.
func (a *Arena[T]) Get(index uint32) *T {
	if index >= a.Len() {
		panic(fmt.Sprintf("arena index %d out of range (len %d)", index, len(a.data)))
	}
	return &a.data[index]
}

// Slice exposes the backing storage read-only.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data)) //nolint:gosec // guarded by Allocate
}
