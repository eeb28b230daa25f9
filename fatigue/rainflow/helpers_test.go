package rainflow

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-rainflow/internal/buffer"
)

// rangeModel charges the class distance per full cycle.
type rangeModel struct{}

func (rangeModel) Damage(_ float64, from, to int) float64 {
	d := from - to
	if d < 0 {
		d = -d
	}

	return float64(d)
}

// astmLoad is the example series of ASTM E1049 section 5.4.4.
var astmLoad = []float64{-2, 1, -3, 5, -1, 3, -4, 4, -2}

// newASTMCounter classifies integer loads in [-5, 6] one class per unit.
func newASTMCounter(t *testing.T, opts ...Option) *Counter {
	t.Helper()

	opts = append([]Option{WithDamageModel(rangeModel{})}, opts...)

	c, err := New(12, 1, -5.5, 0.5, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return c
}

type cell struct{ from, to int }

func nonZeroCells(m *Matrix) map[cell]uint64 {
	out := map[cell]uint64{}
	for from := range m.Size() {
		for to := range m.Size() {
			if v := m.At(from, to); v != 0 {
				out[cell{from, to}] = v
			}
		}
	}

	return out
}

type valuePos struct {
	Value float64
	Pos   int
}

func valuePositions(pts []Point) []valuePos {
	out := make([]valuePos, 0, len(pts))
	for _, p := range pts {
		out = append(out, valuePos{p.Value, p.Pos})
	}

	return out
}

type cycleRecorder struct {
	cycles [][2]Point
}

func (r *cycleRecorder) Cycle(from, to Point) error {
	r.cycles = append(r.cycles, [2]Point{from, to})

	return nil
}

// switchAllocator allocates from the heap until fail is set.
type switchAllocator struct {
	fail     bool
	grows    int
	released int
}

var errRefused = errors.New("allocation refused")

func (a *switchAllocator) Grow(old []Point, n int) ([]Point, error) {
	if a.fail {
		return nil, errRefused
	}

	a.grows++

	return buffer.HeapAllocator[Point]{}.Grow(old, n)
}

func (a *switchAllocator) Release([]Point) {
	a.released++
}

func divergingLoad(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		v := float64((i + 1) / 2)
		if i%2 == 0 {
			v = -v
		}

		out[i] = v
	}

	return out
}
