// Package load computes summary statistics of load-time series: moments,
// extrema with stream positions and the irregularity factor.
package load

import "math"

// Stats summarizes a load series. Positions are 1-based stream positions,
// matching the positions reported by a rainflow counter.
type Stats struct {
	Count       int
	Mean        float64
	RMS         float64
	Max         float64
	MaxPos      int
	Min         float64
	MinPos      int
	Range       float64 // max - min
	Variance    float64 // population variance
	StdDev      float64
	Skewness    float64
	Kurtosis    float64 // excess kurtosis
	UpCrossings int     // zero up-crossings
	Peaks       int     // local maxima, plateaus counted once
}

// Irregularity returns the irregularity factor, zero up-crossings per
// peak. It is 1 for a narrow-band load and approaches 0 for a wide-band
// one. Returns 0 without peaks.
func (s Stats) Irregularity() float64 {
	if s.Peaks == 0 {
		return 0
	}

	return float64(s.UpCrossings) / float64(s.Peaks)
}

// Calculate computes the statistics of samples in a single pass.
func Calculate(samples []float64) Stats {
	var s Streaming

	s.Update(samples)

	return s.Result()
}

// Streaming accumulates load statistics across blocks of samples. Splitting
// a series into blocks gives bit-for-bit the same result as [Calculate].
type Streaming struct {
	n      int
	mean   float64
	m2     float64
	m3     float64
	m4     float64
	sumSq  float64
	maxVal float64
	maxPos int
	minVal float64
	minPos int

	last    float64
	sign    int // sign of the last non-zero sample
	slope   int // sign of the last non-zero difference
	upCross int
	peaks   int
}

// NewStreaming returns an empty accumulator.
func NewStreaming() *Streaming {
	return &Streaming{}
}

// Update adds a block of samples.
func (s *Streaming) Update(samples []float64) {
	for _, x := range samples {
		s.n++
		ni := float64(s.n)

		// Welford update; M4 before M3 before M2.
		delta := x - s.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(s.n-1)

		s.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
		s.m3 += term1*deltaN*(float64(s.n-1)-1) - 3*deltaN*s.m2
		s.m2 += term1
		s.mean += deltaN

		s.sumSq += x * x

		if s.n == 1 {
			s.maxVal, s.maxPos = x, 1
			s.minVal, s.minPos = x, 1
		} else {
			if x > s.maxVal {
				s.maxVal, s.maxPos = x, s.n
			}

			if x < s.minVal {
				s.minVal, s.minPos = x, s.n
			}

			s.trackShape(x)
		}

		switch {
		case x > 0:
			if s.sign < 0 {
				s.upCross++
			}

			s.sign = 1
		case x < 0:
			s.sign = -1
		}

		s.last = x
	}
}

func (s *Streaming) trackShape(x float64) {
	switch {
	case x > s.last:
		s.slope = 1
	case x < s.last:
		if s.slope > 0 {
			s.peaks++
		}

		s.slope = -1
	}
}

// Result returns the statistics of all samples added so far.
func (s *Streaming) Result() Stats {
	if s.n == 0 {
		return Stats{}
	}

	nf := float64(s.n)
	variance := s.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (s.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (s.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Count:       s.n,
		Mean:        s.mean,
		RMS:         math.Sqrt(s.sumSq / nf),
		Max:         s.maxVal,
		MaxPos:      s.maxPos,
		Min:         s.minVal,
		MinPos:      s.minPos,
		Range:       s.maxVal - s.minVal,
		Variance:    variance,
		StdDev:      math.Sqrt(variance),
		Skewness:    skewness,
		Kurtosis:    kurtosis,
		UpCrossings: s.upCross,
		Peaks:       s.peaks,
	}
}

// Reset clears all accumulated data.
func (s *Streaming) Reset() {
	*s = Streaming{}
}
