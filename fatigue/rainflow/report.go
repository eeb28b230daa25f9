package rainflow

import "github.com/cwbudde/algo-vecmath"

// RangePairFromMatrix derives the range-pair histogram from a transition
// matrix. Index r sums all cells whose classes are r apart.
func RangePairFromMatrix(m *Matrix) []uint64 {
	n := m.Size()
	out := make([]uint64, n)

	for from := range n {
		for to := range n {
			r := from - to
			if r < 0 {
				r = -r
			}

			if r > 0 {
				out[r] += m.At(from, to)
			}
		}
	}

	return out
}

// LevelCrossingFromMatrix derives the level-crossing histogram from a
// transition matrix. Rising cycles count when flags has
// [CountLevelCrossingUp], falling cycles with [CountLevelCrossingDown].
func LevelCrossingFromMatrix(m *Matrix, flags Flags) []uint64 {
	n := m.Size()
	out := make([]uint64, n)

	for from := range n {
		for to := range n {
			cnt := m.At(from, to)
			if cnt == 0 {
				continue
			}

			lo, hi := crossedLevels(from, to, flags)
			for i := lo; i < hi; i++ {
				out[i] += cnt
			}
		}
	}

	return out
}

// DamageFromRangePairs recomputes the pseudo damage from a range-pair
// histogram. The model must depend on the class distance only, which holds
// for a Woehler curve.
func DamageFromRangePairs(rp []uint64, classWidth float64, model DamageModel) float64 {
	if len(rp) == 0 {
		return 0
	}

	damage := cycles(rp)
	weights := make([]float64, len(rp))

	for r := 1; r < len(rp); r++ {
		weights[r] = model.Damage(classWidth, 0, r)
	}

	vecmath.MulBlockInPlace(damage, weights)

	return sum(damage)
}

// TotalCycles returns the number of full cycles in a histogram.
func TotalCycles(hist []uint64) float64 {
	return sum(cycles(hist))
}

// cycles converts half-cycle units to full cycles.
func cycles(hist []uint64) []float64 {
	out := make([]float64, len(hist))
	for i, v := range hist {
		out[i] = float64(v) / float64(FullCycleIncrement)
	}

	return out
}

func sum(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}

	return s
}
