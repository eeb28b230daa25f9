package buffer

import (
	"errors"
	"fmt"
)

// ErrAllocation is returned when an Allocator cannot provide the requested
// capacity.
var ErrAllocation = errors.New("buffer: allocation failed")

// Allocator supplies backing storage for a Buffer.
type Allocator[T any] interface {
	// Grow returns a slice holding the elements of old with capacity for at
	// least n elements. Passing a nil old slice requests fresh storage.
	Grow(old []T, n int) ([]T, error)
	// Release hands storage back once the owner no longer uses it.
	Release(buf []T)
}

// HeapAllocator grows buffers with make and copy.
type HeapAllocator[T any] struct{}

// Grow implements Allocator.
func (HeapAllocator[T]) Grow(old []T, n int) ([]T, error) {
	if n <= cap(old) {
		return old, nil
	}
	grown := make([]T, len(old), n)
	copy(grown, old)
	return grown, nil
}

// Release implements Allocator. Heap storage is left to the garbage collector.
func (HeapAllocator[T]) Release([]T) {}

// Buffer wraps a slice whose capacity is managed by an Allocator.
type Buffer[T any] struct {
	data  []T
	alloc Allocator[T]
}

// New returns an empty Buffer with at least the given capacity. A nil alloc
// selects HeapAllocator.
func New[T any](capacity int, alloc Allocator[T]) (*Buffer[T], error) {
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}
	b := &Buffer[T]{alloc: alloc}
	if err := b.Grow(capacity); err != nil {
		return nil, err
	}
	return b, nil
}

// Len returns the number of stored elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer[T]) Cap() int {
	return cap(b.data)
}

// Slice returns the stored elements. The slice aliases the buffer and is
// invalidated by the next mutating call.
func (b *Buffer[T]) Slice() []T {
	return b.data
}

// At returns element i.
func (b *Buffer[T]) At(i int) T {
	return b.data[i]
}

// Set overwrites element i.
func (b *Buffer[T]) Set(i int, v T) {
	b.data[i] = v
}

// Last returns the final element. It panics on an empty buffer.
func (b *Buffer[T]) Last() T {
	return b.data[len(b.data)-1]
}

// Grow ensures capacity is at least n, preserving existing data.
// If the current capacity is already >= n this is a no-op.
func (b *Buffer[T]) Grow(n int) error {
	if n <= cap(b.data) {
		return nil
	}
	grown, err := b.alloc.Grow(b.data, n)
	if err != nil {
		return fmt.Errorf("%w: capacity %d: %w", ErrAllocation, n, err)
	}
	if cap(grown) < n || len(grown) != len(b.data) {
		return fmt.Errorf("%w: allocator returned len %d cap %d, want len %d cap >= %d",
			ErrAllocation, len(grown), cap(grown), len(b.data), n)
	}
	b.data = grown
	return nil
}

// Append adds v at the end, growing the capacity by roughly a tenth (at
// least 1024 elements) when it is exhausted.
func (b *Buffer[T]) Append(v T) error {
	if len(b.data) == cap(b.data) {
		if err := b.Grow(nextCap(cap(b.data))); err != nil {
			return err
		}
	}
	b.data = append(b.data, v)
	return nil
}

// Assign replaces the contents with a copy of src.
func (b *Buffer[T]) Assign(src []T) error {
	b.data = b.data[:0]
	if err := b.Grow(len(src)); err != nil {
		return err
	}
	b.data = append(b.data, src...)
	return nil
}

// RemoveRange deletes count elements starting at start and closes the gap.
func (b *Buffer[T]) RemoveRange(start, count int) {
	if count <= 0 {
		return
	}
	n := copy(b.data[start:], b.data[start+count:])
	clear(b.data[start+n:])
	b.data = b.data[:start+n]
}

// Truncate shortens the buffer to n elements. Larger n is a no-op.
func (b *Buffer[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(b.data) {
		return
	}
	clear(b.data[n:])
	b.data = b.data[:n]
}

// Reset empties the buffer and keeps its capacity.
func (b *Buffer[T]) Reset() {
	b.Truncate(0)
}

// Copy returns a deep copy of the stored elements.
func (b *Buffer[T]) Copy() []T {
	if len(b.data) == 0 {
		return nil
	}
	s := make([]T, len(b.data))
	copy(s, b.data)
	return s
}

// Release returns the backing storage to the allocator. The buffer is empty
// and has no capacity afterwards; it may be grown again.
func (b *Buffer[T]) Release() {
	if b.data == nil {
		return
	}
	b.alloc.Release(b.data[:0])
	b.data = nil
}

func nextCap(c int) int {
	return c + (c/10240+1)*1024
}
