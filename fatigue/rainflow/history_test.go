package rainflow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTurningPointHistory(t *testing.T) {
	series := []float64{1.0, 1.1, 1.2, 2.0, 2.1, 1.1, 1.3, 1.0, 1.98, 1.0}

	tests := []struct {
		name    string
		margin  bool
		values  []float64
		history []valuePos
		residue []valuePos
	}{
		{
			name:    "single sample",
			margin:  true,
			values:  []float64{0},
			history: []valuePos{{0, 1}},
		},
		{
			name:    "equal samples",
			margin:  true,
			values:  []float64{0, 0},
			history: []valuePos{{0, 1}, {0, 2}},
		},
		{
			name:    "small step",
			margin:  true,
			values:  []float64{0, 0.1},
			history: []valuePos{{0, 1}, {0.1, 2}},
		},
		{
			name:    "step at hysteresis",
			margin:  true,
			values:  []float64{0, 1},
			history: []valuePos{{0, 1}, {1, 2}},
		},
		{
			name:    "plateaus at hysteresis",
			margin:  true,
			values:  []float64{0, 0, 1, 1},
			history: []valuePos{{0, 1}, {1, 4}},
		},
		{
			name:    "plateaus without margin",
			values:  []float64{0, 0, 1, 1},
			history: nil,
		},
		{
			name:    "wiggle below hysteresis",
			margin:  true,
			values:  []float64{1, 1.1, 1.2, 1.1, 1.3, 1.0, 1.98, 1.0},
			history: []valuePos{{1, 1}, {1.0, 8}},
		},
		{
			name:    "plateaus above hysteresis",
			margin:  true,
			values:  []float64{1, 1, 2.1, 2.1, 1, 1},
			history: []valuePos{{1, 1}, {2.1, 3}, {1, 6}},
			residue: []valuePos{{1, 1}, {2.1, 3}, {1, 5}},
		},
		{
			name:    "series without margin",
			values:  series,
			history: []valuePos{{1, 1}, {2.1, 5}, {1.0, 8}},
			residue: []valuePos{{1, 1}, {2.1, 5}, {1.0, 8}},
		},
		{
			name:    "series with margin",
			margin:  true,
			values:  series,
			history: []valuePos{{1.0, 1}, {2.1, 5}, {1.0, 10}},
			residue: []valuePos{{1, 1}, {2.1, 5}, {1, 8}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []Option{WithHistory(4)}
			if tt.margin {
				opts = append(opts, WithMarginEnforcement())
			}

			c, err := New(10, 1, 0, 1, opts...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if err := c.Feed(tt.values); err != nil {
				t.Fatalf("Feed: %v", err)
			}
			if c.HistoryLocked() {
				t.Fatal("history locked before Finalize")
			}
			if err := c.Finalize(ResidueIgnore); err != nil {
				t.Fatalf("Finalize: %v", err)
			}
			if !c.HistoryLocked() {
				t.Fatal("history not locked after Finalize")
			}

			if diff := cmp.Diff(tt.history, valuePositions(c.TurningPoints()), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("history mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.residue, valuePositions(c.Residue()), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("residue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHistoryGrowsPastCapacity(t *testing.T) {
	c, err := New(20, 1, -10, 0, WithHistory(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	load := divergingLoad(15)
	if err := c.Feed(load); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if err := c.Finalize(ResidueIgnore); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if got := len(c.TurningPoints()); got != len(load) {
		t.Fatalf("history length = %d, want %d", got, len(load))
	}
}

func TestHistoryDisabled(t *testing.T) {
	c, _ := New(10, 1, 0, 0)
	_ = c.Feed([]float64{0, 5, 1})
	if c.TurningPoints() != nil || c.HistoryLocked() {
		t.Fatal("history recorded without WithHistory")
	}
}
