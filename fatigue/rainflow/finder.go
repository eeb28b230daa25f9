package rainflow

// CycleSink receives closed cycles.
type CycleSink interface {
	// Cycle counts a closed cycle from one turning point to another.
	Cycle(from, to Point) error
}

// CycleFinder closes cycles in the residue.
type CycleFinder interface {
	// FindCycles reduces r after a new turning point has been confirmed and
	// reports every closed cycle to sink.
	FindCycles(r *Residue, sink CycleSink) error
	// Flush moves points held outside r back into r at the end of the
	// stream, oldest first.
	Flush(r *Residue) error
	// Retained returns a copy of the points held outside r, oldest first.
	Retained() []Point
	// Reset forgets all state.
	Reset()
}

// fourPointFinder is the ASTM E1049 4-point method. It keeps no state of
// its own.
type fourPointFinder struct{}

func (fourPointFinder) FindCycles(r *Residue, sink CycleSink) error {
	for r.Len() >= 4 {
		idx := r.Len() - 4
		a, b, c, d := r.At(idx).Value, r.At(idx+1).Value, r.At(idx+2).Value, r.At(idx+3).Value

		if b > c {
			b, c = c, b
		}

		if a > d {
			a, d = d, a
		}

		if a > b || c > d {
			return nil
		}

		if err := sink.Cycle(r.At(idx+1), r.At(idx+2)); err != nil {
			return err
		}

		r.RemoveRange(idx+1, 2)
	}

	return nil
}

func (fourPointFinder) Flush(*Residue) error { return nil }
func (fourPointFinder) Retained() []Point    { return nil }
func (fourPointFinder) Reset()               {}

// noneFinder drops every confirmed point without counting.
type noneFinder struct{}

func (noneFinder) FindCycles(r *Residue, _ CycleSink) error {
	r.RemoveRange(0, r.Len())

	return nil
}

func (noneFinder) Flush(*Residue) error { return nil }
func (noneFinder) Retained() []Point    { return nil }
func (noneFinder) Reset()               {}
