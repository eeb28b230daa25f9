package rainflow

import (
	"fmt"

	"github.com/cwbudde/algo-rainflow/internal/buffer"
)

// Residue holds the confirmed turning points that have not closed a cycle,
// followed by an optional interim point. The interim point is the latest
// extremum candidate; it moves along when confirmed points are removed.
type Residue struct {
	buf     *buffer.Buffer[Point]
	interim bool
}

func newResidue(capacity int, alloc Allocator) (*Residue, error) {
	buf, err := buffer.New[Point](capacity, alloc)
	if err != nil {
		return nil, outOfMemory(err)
	}

	return &Residue{buf: buf}, nil
}

// Len returns the number of confirmed points.
func (r *Residue) Len() int {
	n := r.buf.Len()
	if r.interim {
		n--
	}

	return n
}

// HasInterim reports whether an interim point is present.
func (r *Residue) HasInterim() bool {
	return r.interim
}

// Interim returns the interim point.
func (r *Residue) Interim() (Point, bool) {
	if !r.interim {
		return Point{}, false
	}

	return r.buf.Last(), true
}

// At returns confirmed point i.
func (r *Residue) At(i int) Point {
	if i < 0 || i >= r.Len() {
		panic(fmt.Sprintf("rainflow: residue index %d out of range [0, %d)", i, r.Len()))
	}

	return r.buf.At(i)
}

// Points returns a copy of the confirmed points.
func (r *Residue) Points() []Point {
	n := r.Len()
	if n == 0 {
		return nil
	}

	out := make([]Point, n)
	copy(out, r.buf.Slice()[:n])

	return out
}

// SetInterim stores p as the interim point, replacing a present one.
func (r *Residue) SetInterim(p Point) error {
	if r.interim {
		r.buf.Set(r.buf.Len()-1, p)

		return nil
	}

	if err := r.buf.Append(p); err != nil {
		return outOfMemory(err)
	}

	r.interim = true

	return nil
}

// Confirm turns the interim point into the newest confirmed point.
// It reports false when no interim point is present.
func (r *Residue) Confirm() bool {
	if !r.interim {
		return false
	}

	r.interim = false

	return true
}

// Append adds a confirmed point in front of the interim slot.
func (r *Residue) Append(p Point) error {
	if !r.interim {
		if err := r.buf.Append(p); err != nil {
			return outOfMemory(err)
		}

		return nil
	}

	last := r.buf.Last()
	if err := r.buf.Append(last); err != nil {
		return outOfMemory(err)
	}

	r.buf.Set(r.buf.Len()-2, p)

	return nil
}

// RemoveRange deletes count confirmed points starting at start.
func (r *Residue) RemoveRange(start, count int) {
	if start < 0 || count < 0 || start+count > r.Len() {
		panic(fmt.Sprintf("rainflow: residue range [%d, %d) out of range [0, %d)", start, start+count, r.Len()))
	}

	r.buf.RemoveRange(start, count)
}

// Reset drops all points including the interim point.
func (r *Residue) Reset() {
	r.buf.Reset()
	r.interim = false
}

// assign replaces the content with confirmed points pts.
func (r *Residue) assign(pts []Point) error {
	r.interim = false
	if err := r.buf.Assign(pts); err != nil {
		return outOfMemory(err)
	}

	return nil
}

func (r *Residue) release() {
	r.buf.Release()
	r.interim = false
}
