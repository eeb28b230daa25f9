package rainflow

// TurningPointDetector reduces samples to turning points.
type TurningPointDetector interface {
	// Next inspects sample p, updates the interim slot of r and reports the
	// turning point p confirmed, if any. A confirmed point must already be
	// the newest confirmed point of r.
	Next(r *Residue, p Point) (Point, bool, error)
	// Reset forgets all state.
	Reset()
}

// hysteresisFilter confirms a turning point once the load has moved away
// from it by more than the hysteresis.
type hysteresisFilter struct {
	hysteresis float64
	started    bool
	slope      int
	min, max   Point
}

func newHysteresisFilter(hysteresis float64) *hysteresisFilter {
	return &hysteresisFilter{hysteresis: hysteresis}
}

func (f *hysteresisFilter) Reset() {
	*f = hysteresisFilter{hysteresis: f.hysteresis}
}

func (f *hysteresisFilter) Next(r *Residue, p Point) (Point, bool, error) {
	if !f.started {
		f.started = true
		f.min, f.max = p, p

		return Point{}, false, nil
	}

	if !r.HasInterim() {
		return f.search(r, p)
	}

	interim, _ := r.Interim()
	delta, slope := valueDelta(interim.Value, p.Value)

	if slope == f.slope {
		if p.Value != interim.Value {
			if err := r.SetInterim(p); err != nil {
				return Point{}, false, err
			}
		}

		return Point{}, false, nil
	}

	if delta > f.hysteresis {
		f.slope = slope
		r.Confirm()
		if err := r.SetInterim(p); err != nil {
			return Point{}, false, err
		}

		return interim, true, nil
	}

	return Point{}, false, nil
}

// search tracks the extrema until their distance exceeds the hysteresis.
// The earlier extremum becomes the first turning point, the later one the
// interim point.
func (f *hysteresisFilter) search(r *Residue, p Point) (Point, bool, error) {
	falling := false

	switch {
	case p.Value < f.min.Value:
		f.min = p
		falling = true
	case p.Value > f.max.Value:
		f.max = p
	default:
		return Point{}, false, nil
	}

	if f.max.Value-f.min.Value <= f.hysteresis {
		return Point{}, false, nil
	}

	first := f.min
	f.slope = 1

	if falling {
		first = f.max
		f.slope = -1
	}

	if err := r.Append(first); err != nil {
		return Point{}, false, err
	}

	if err := r.SetInterim(p); err != nil {
		return Point{}, false, err
	}

	return first, true, nil
}

// valueDelta returns |to-from| and the slope sign; a zero delta rises.
func valueDelta(from, to float64) (float64, int) {
	d := to - from
	if d < 0 {
		return -d, -1
	}

	return d, 1
}
