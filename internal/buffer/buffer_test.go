package buffer

import (
	"errors"
	"testing"
)

type limitAllocator struct {
	limit    int
	grows    int
	released int
}

func (a *limitAllocator) Grow(old []int, n int) ([]int, error) {
	if n > a.limit {
		return nil, errors.New("limit exceeded")
	}
	a.grows++
	return HeapAllocator[int]{}.Grow(old, n)
}

func (a *limitAllocator) Release([]int) {
	a.released++
}

func TestNewEmptyWithCapacity(t *testing.T) {
	b, err := New[int](8, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
	if b.Cap() < 8 {
		t.Fatalf("Cap() = %d, want >= 8", b.Cap())
	}
}

func TestNewAllocatorFailure(t *testing.T) {
	_, err := New[int](16, &limitAllocator{limit: 8})
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("New error = %v, want ErrAllocation", err)
	}
}

func TestGrowPreservesData(t *testing.T) {
	b, _ := New[int](2, nil)
	_ = b.Append(42)
	if err := b.Grow(16); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if b.Cap() < 16 {
		t.Fatalf("Cap() = %d, want >= 16", b.Cap())
	}
	if b.Len() != 1 || b.At(0) != 42 {
		t.Fatalf("Grow did not preserve data: %v", b.Slice())
	}
}

func TestGrowNoOpWhenSufficient(t *testing.T) {
	alloc := &limitAllocator{limit: 100}
	b, _ := New[int](4, alloc)
	grows := alloc.grows
	if err := b.Grow(4); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if alloc.grows != grows {
		t.Fatal("Grow should be no-op when capacity is sufficient")
	}
}

func TestAppendGrowsThroughAllocator(t *testing.T) {
	alloc := &limitAllocator{limit: 4096}
	b, _ := New[int](1, alloc)
	for i := range 10 {
		if err := b.Append(i); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}
	if b.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", b.Len())
	}
	if alloc.grows != 2 {
		t.Fatalf("allocator grows = %d, want 2", alloc.grows)
	}
}

func TestAppendAllocatorFailure(t *testing.T) {
	alloc := &limitAllocator{limit: 2}
	b, _ := New[int](2, alloc)
	_ = b.Append(1)
	_ = b.Append(2)
	if err := b.Append(3); !errors.Is(err, ErrAllocation) {
		t.Fatalf("Append error = %v, want ErrAllocation", err)
	}
	if b.Len() != 2 {
		t.Fatalf("failed Append changed Len() to %d", b.Len())
	}
}

func TestRemoveRange(t *testing.T) {
	tests := []struct {
		name         string
		start, count int
		want         []int
	}{
		{"front", 0, 2, []int{3, 4, 5}},
		{"middle", 1, 2, []int{1, 4, 5}},
		{"tail", 3, 2, []int{1, 2, 3}},
		{"none", 2, 0, []int{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := New[int](5, nil)
			_ = b.Assign([]int{1, 2, 3, 4, 5})
			b.RemoveRange(tt.start, tt.count)
			got := b.Slice()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestTruncateAndReset(t *testing.T) {
	b, _ := New[int](4, nil)
	_ = b.Assign([]int{1, 2, 3})
	b.Truncate(5)
	if b.Len() != 3 {
		t.Fatalf("Truncate past end changed Len() to %d", b.Len())
	}
	b.Truncate(1)
	if b.Len() != 1 || b.At(0) != 1 {
		t.Fatalf("Truncate(1) = %v", b.Slice())
	}
	c := b.Cap()
	b.Reset()
	if b.Len() != 0 || b.Cap() != c {
		t.Fatalf("Reset: Len %d Cap %d, want 0 %d", b.Len(), b.Cap(), c)
	}
}

func TestCopyIsDeep(t *testing.T) {
	b, _ := New[int](2, nil)
	_ = b.Assign([]int{7, 8})
	c := b.Copy()
	c[0] = 99
	if b.At(0) != 7 {
		t.Fatal("Copy shares memory with the buffer")
	}
}

func TestReleaseHandsBackStorage(t *testing.T) {
	alloc := &limitAllocator{limit: 2048}
	b, _ := New[int](4, alloc)
	b.Release()
	b.Release()
	if alloc.released != 1 {
		t.Fatalf("released = %d, want 1", alloc.released)
	}
	if b.Cap() != 0 {
		t.Fatalf("Cap() = %d after Release, want 0", b.Cap())
	}
	if err := b.Append(1); err != nil {
		t.Fatalf("Append after Release: %v", err)
	}
}
