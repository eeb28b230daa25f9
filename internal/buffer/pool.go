package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse for block-wise readers.
// Pooled buffers always use HeapAllocator.
type Pool[T any] struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return &Buffer[T]{alloc: HeapAllocator[T]{}}
			},
		},
	}
}

// Get returns a Buffer with the requested length. The buffer is zeroed.
// Callers must return it via Put when done.
func (p *Pool[T]) Get(length int) *Buffer[T] {
	b := p.pool.Get().(*Buffer[T])
	if length < 0 {
		length = 0
	}
	if cap(b.data) < length {
		b.data = make([]T, length)
		return b
	}
	b.data = b.data[:length]
	clear(b.data)
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool[T]) Put(b *Buffer[T]) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
