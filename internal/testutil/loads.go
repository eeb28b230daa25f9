package testutil

import (
	"math"
	"math/rand"
)

// UniformLoad generates uniformly distributed samples in [lo, hi) with a
// fixed seed for reproducibility.
func UniformLoad(seed int64, lo, hi float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = lo + rng.Float64()*(hi-lo)
	}
	return out
}

// LevelLoad generates random integer levels in [0, levels) as float64.
// Integer levels produce many equal samples and plateaus.
func LevelLoad(seed int64, levels, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float64(rng.Intn(levels))
	}
	return out
}

// RandomWalk generates a walk starting at 0 whose steps are uniform in
// [-step, step).
func RandomWalk(seed int64, step float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	v := 0.0
	for i := range out {
		v += (rng.Float64()*2 - 1) * step
		out[i] = v
	}
	return out
}

// SineLoad generates offset + amplitude*sin(2*pi*i/period).
func SineLoad(period, amplitude, offset float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi / period
	for i := range out {
		out[i] = offset + amplitude*math.Sin(step*float64(i))
	}
	return out
}

// Repeat concatenates times copies of block.
func Repeat(block []float64, times int) []float64 {
	if times <= 0 {
		return nil
	}
	out := make([]float64, 0, len(block)*times)
	for range times {
		out = append(out, block...)
	}
	return out
}

// Chunks splits data at random cut points into consecutive slices that
// share its memory.
func Chunks(seed int64, data []float64, maxChunk int) [][]float64 {
	if maxChunk < 1 {
		maxChunk = 1
	}
	rng := rand.New(rand.NewSource(seed))
	var out [][]float64
	for len(data) > 0 {
		n := 1 + rng.Intn(maxChunk)
		if n > len(data) {
			n = len(data)
		}
		out = append(out, data[:n])
		data = data[n:]
	}
	return out
}
