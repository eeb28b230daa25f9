package rainflow

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestAggregates(flags Flags, limit uint64) *aggregates {
	return newAggregates(Classes{Count: 10, Width: 1}, rangeModel{}, flags, limit)
}

func TestAggregatesCycle(t *testing.T) {
	tests := []struct {
		name     string
		flags    Flags
		from, to int
		cells    map[cell]uint64
		rp       []uint64
		lc       []uint64
		damage   float64
	}{
		{
			name:   "rising",
			flags:  CountAll,
			from:   2,
			to:     5,
			cells:  map[cell]uint64{{2, 5}: 2},
			rp:     []uint64{0, 0, 0, 2, 0, 0, 0, 0, 0, 0},
			lc:     []uint64{0, 0, 2, 2, 2, 0, 0, 0, 0, 0},
			damage: 3,
		},
		{
			name:   "falling",
			flags:  CountAll,
			from:   6,
			to:     1,
			cells:  map[cell]uint64{{6, 1}: 2},
			rp:     []uint64{0, 0, 0, 0, 0, 2, 0, 0, 0, 0},
			lc:     []uint64{0, 2, 2, 2, 2, 2, 0, 0, 0, 0},
			damage: 5,
		},
		{
			name:   "clamped",
			flags:  CountAll,
			from:   -3,
			to:     12,
			cells:  map[cell]uint64{{0, 9}: 2},
			rp:     []uint64{0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
			lc:     []uint64{2, 2, 2, 2, 2, 2, 2, 2, 2, 0},
			damage: 9,
		},
		{
			name:  "same class",
			flags: CountAll,
			from:  4,
			to:    4,
			cells: map[cell]uint64{},
			rp:    make([]uint64, 10),
			lc:    make([]uint64, 10),
		},
		{
			name:  "falling without down crossings",
			flags: CountMatrix | CountLevelCrossingUp,
			from:  6,
			to:    1,
			cells: map[cell]uint64{{6, 1}: 2},
			rp:    make([]uint64, 10),
			lc:    make([]uint64, 10),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAggregates(tt.flags, math.MaxUint64)
			if err := a.Cycle(Point{Class: tt.from}, Point{Class: tt.to}); err != nil {
				t.Fatalf("Cycle: %v", err)
			}

			if diff := cmp.Diff(tt.cells, nonZeroCells(a.matrix)); diff != "" {
				t.Fatalf("matrix mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.rp, a.rp); diff != "" {
				t.Fatalf("range pairs mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.lc, a.lc); diff != "" {
				t.Fatalf("level crossings mismatch (-want +got):\n%s", diff)
			}
			if a.damage != tt.damage {
				t.Fatalf("damage = %v, want %v", a.damage, tt.damage)
			}
		})
	}
}

func TestAggregatesHalfCycle(t *testing.T) {
	a := newTestAggregates(CountAll, math.MaxUint64)
	a.inc = HalfCycleIncrement

	_ = a.Cycle(Point{Class: 1}, Point{Class: 3})

	if a.matrix.At(1, 3) != 1 || a.rp[2] != 1 || a.damage != 1 {
		t.Fatalf("half cycle: matrix %d rp %d damage %v", a.matrix.At(1, 3), a.rp[2], a.damage)
	}
	if got := a.matrix.Cycles(1, 3); got != 0.5 {
		t.Fatalf("Cycles(1, 3) = %v, want 0.5", got)
	}
}

func TestAggregatesOverflowIsAtomic(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		first [2]int // fills one counter
	}{
		{"matrix", CountAll, [2]int{2, 5}},
		{"range pair", CountRangePair | CountLevelCrossing | CountDamage, [2]int{1, 4}},
		{"level crossing", CountLevelCrossing | CountDamage, [2]int{4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAggregates(tt.flags, 3)
			if err := a.Cycle(Point{Class: tt.first[0]}, Point{Class: tt.first[1]}); err != nil {
				t.Fatalf("first Cycle: %v", err)
			}

			matrix, rp, lc, damage := a.matrix.Counts(), append([]uint64(nil), a.rp...), append([]uint64(nil), a.lc...), a.damage

			err := a.Cycle(Point{Class: 2}, Point{Class: 5})
			if !errors.Is(err, ErrCounterOverflow) {
				t.Fatalf("second Cycle error = %v, want ErrCounterOverflow", err)
			}

			if diff := cmp.Diff(matrix, a.matrix.Counts()); diff != "" {
				t.Fatalf("matrix changed on overflow:\n%s", diff)
			}
			if diff := cmp.Diff(rp, a.rp); diff != "" {
				t.Fatalf("range pairs changed on overflow:\n%s", diff)
			}
			if diff := cmp.Diff(lc, a.lc); diff != "" {
				t.Fatalf("level crossings changed on overflow:\n%s", diff)
			}
			if a.damage != damage {
				t.Fatalf("damage changed on overflow: %v -> %v", damage, a.damage)
			}
		})
	}
}
