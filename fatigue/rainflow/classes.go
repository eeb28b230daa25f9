package rainflow

import (
	"fmt"
	"math"
)

// MaxClassCount is the largest supported number of classes.
const MaxClassCount = 512

// Classes partitions the value axis into Count equal-width classes starting
// at Offset.
type Classes struct {
	Count  int
	Width  float64
	Offset float64
}

// Validate reports whether the class parameters are usable.
func (c Classes) Validate() error {
	if c.Count < 1 || c.Count > MaxClassCount {
		return fmt.Errorf("%w: class count must be in [1, %d]: %d", ErrInvalidArgument, MaxClassCount, c.Count)
	}

	if !(c.Width > 0) || math.IsInf(c.Width, 0) {
		return fmt.Errorf("%w: class width must be > 0 and finite: %g", ErrInvalidArgument, c.Width)
	}

	if math.IsNaN(c.Offset) || math.IsInf(c.Offset, 0) {
		return fmt.Errorf("%w: class offset must be finite: %g", ErrInvalidArgument, c.Offset)
	}

	return nil
}

// Quantize returns the class index of v. The result is not clamped and may
// lie outside [0, Count).
func (c Classes) Quantize(v float64) int {
	q := math.Floor((v - c.Offset) / c.Width)

	switch {
	case q < math.MinInt32:
		return math.MinInt32
	case q > math.MaxInt32:
		return math.MaxInt32
	}

	return int(q)
}

// Clamp limits a class index to [0, Count-1].
func (c Classes) Clamp(class int) int {
	if class < 0 {
		return 0
	}

	if class >= c.Count {
		return c.Count - 1
	}

	return class
}

// Mean returns the mid value of a class.
func (c Classes) Mean(class int) float64 {
	return c.Width*(float64(class)+0.5) + c.Offset
}

// UpperBound returns the upper class bound, which is the level counted by
// the level-crossing histogram at index class.
func (c Classes) UpperBound(class int) float64 {
	return c.Width*float64(class+1) + c.Offset
}
