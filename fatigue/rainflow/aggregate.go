package rainflow

import "fmt"

const (
	// FullCycleIncrement is the counter increment of a full cycle.
	FullCycleIncrement uint64 = 2
	// HalfCycleIncrement is the counter increment of a half cycle.
	HalfCycleIncrement uint64 = 1
)

// Matrix is a square transition matrix; rows are the start class and
// columns the end class of a cycle. Cells hold half-cycle units.
type Matrix struct {
	size   int
	counts []uint64
}

// NewMatrix returns an empty size×size matrix.
func NewMatrix(size int) *Matrix {
	if size < 0 {
		size = 0
	}

	return &Matrix{size: size, counts: make([]uint64, size*size)}
}

// Size returns the number of classes.
func (m *Matrix) Size() int {
	return m.size
}

// At returns the count of cycles from class from to class to.
func (m *Matrix) At(from, to int) uint64 {
	return m.counts[from*m.size+to]
}

// Set overwrites a cell.
func (m *Matrix) Set(from, to int, count uint64) {
	m.counts[from*m.size+to] = count
}

// Cycles returns a cell in full cycles.
func (m *Matrix) Cycles(from, to int) float64 {
	return float64(m.At(from, to)) / float64(FullCycleIncrement)
}

// Counts returns a row-major copy of all cells.
func (m *Matrix) Counts() []uint64 {
	out := make([]uint64, len(m.counts))
	copy(out, m.counts)

	return out
}

// Total returns the sum of all cells.
func (m *Matrix) Total() uint64 {
	var sum uint64
	for _, v := range m.counts {
		sum += v
	}

	return sum
}

func (m *Matrix) clone() *Matrix {
	return &Matrix{size: m.size, counts: m.Counts()}
}

// aggregates accumulates closed cycles.
type aggregates struct {
	classes Classes
	model   DamageModel
	flags   Flags
	limit   uint64
	inc     uint64

	matrix *Matrix
	rp     []uint64
	lc     []uint64
	damage float64
}

func newAggregates(classes Classes, model DamageModel, flags Flags, limit uint64) *aggregates {
	return &aggregates{
		classes: classes,
		model:   model,
		flags:   flags,
		limit:   limit,
		inc:     FullCycleIncrement,
		matrix:  NewMatrix(classes.Count),
		rp:      make([]uint64, classes.Count),
		lc:      make([]uint64, classes.Count),
	}
}

// Cycle counts a cycle with the configured flags at the current increment.
func (a *aggregates) Cycle(from, to Point) error {
	return a.count(from, to, a.flags)
}

// count applies one cycle to every aggregate selected by flags. Either all
// selected counters are updated or, on overflow, none is.
func (a *aggregates) count(from, to Point, flags Flags) error {
	f := a.classes.Clamp(from.Class)
	t := a.classes.Clamp(to.Class)

	if f == t {
		return nil
	}

	flags &= a.flags
	inc := a.inc
	room := a.limit - inc
	cell := f*a.classes.Count + t
	rng := f - t

	if rng < 0 {
		rng = -rng
	}

	lo, hi := crossedLevels(f, t, flags)

	if flags&CountMatrix != 0 && a.matrix.counts[cell] > room {
		return fmt.Errorf("%w: matrix cell [%d,%d]", ErrCounterOverflow, f, t)
	}

	if flags&CountRangePair != 0 && a.rp[rng] > room {
		return fmt.Errorf("%w: range pair %d", ErrCounterOverflow, rng)
	}

	for i := lo; i < hi; i++ {
		if a.lc[i] > room {
			return fmt.Errorf("%w: level crossing %d", ErrCounterOverflow, i)
		}
	}

	if flags&CountDamage != 0 {
		a.damage += a.model.Damage(a.classes.Width, f, t) * float64(inc) / float64(FullCycleIncrement)
	}

	if flags&CountMatrix != 0 {
		a.matrix.counts[cell] += inc
	}

	if flags&CountRangePair != 0 {
		a.rp[rng] += inc
	}

	for i := lo; i < hi; i++ {
		a.lc[i] += inc
	}

	return nil
}

// crossedLevels returns the level-crossing buckets [lo, hi) a slope from
// class f to class t passes, honoring the direction flags.
func crossedLevels(f, t int, flags Flags) (int, int) {
	if f < t {
		if flags&CountLevelCrossingUp != 0 {
			return f, t
		}

		return 0, 0
	}

	if flags&CountLevelCrossingDown != 0 {
		return t, f
	}

	return 0, 0
}

func (a *aggregates) reset() {
	clear(a.matrix.counts)
	clear(a.rp)
	clear(a.lc)
	a.damage = 0
	a.inc = FullCycleIncrement
}
