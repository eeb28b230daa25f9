package rainflow

import (
	"fmt"
	"math"
)

// Counter is an online rainflow counting session.
type Counter struct {
	cfg        config
	classes    Classes
	hysteresis float64
	state      State
	err        error

	detector TurningPointDetector
	finder   CycleFinder
	residue  *Residue
	hist     *history
	agg      *aggregates

	pos        int
	hasExtrema bool
	min, max   Point
}

// New returns a Counter for classCount classes of width classWidth starting
// at classOffset. Turning points must differ from their neighbors by more
// than hysteresis.
func New(classCount int, classWidth, classOffset, hysteresis float64, opts ...Option) (*Counter, error) {
	classes := Classes{Count: classCount, Width: classWidth, Offset: classOffset}
	if err := classes.Validate(); err != nil {
		return nil, err
	}

	if hysteresis < 0 || math.IsNaN(hysteresis) || math.IsInf(hysteresis, 0) {
		return nil, fmt.Errorf("%w: hysteresis must be >= 0 and finite: %g", ErrInvalidArgument, hysteresis)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.margin && !cfg.history {
		return nil, fmt.Errorf("%w: margin enforcement requires WithHistory", ErrInvalidArgument)
	}

	c := &Counter{cfg: cfg, classes: classes, hysteresis: hysteresis}
	if err := c.init(); err != nil {
		c.release()

		return nil, err
	}

	return c, nil
}

func (c *Counter) init() error {
	var err error

	c.residue, err = newResidue(2*c.classes.Count, c.cfg.alloc)
	if err != nil {
		return err
	}

	switch c.cfg.method {
	case MethodHCM:
		hcm, err := newHCMFinder(2*c.classes.Count, c.cfg.alloc)
		if err != nil {
			return err
		}

		c.finder = hcm
	case MethodNone:
		c.finder = noneFinder{}
	case MethodCustom:
		c.finder = c.cfg.finder
	default:
		c.finder = fourPointFinder{}
	}

	c.detector = c.cfg.detector
	if c.detector == nil {
		c.detector = newHysteresisFilter(c.hysteresis)
	}

	if c.cfg.history {
		c.hist, err = newHistory(c.cfg.historyCapacity, c.cfg.margin, c.cfg.alloc)
		if err != nil {
			return err
		}
	}

	c.agg = newAggregates(c.classes, c.cfg.damage, c.cfg.flags, c.cfg.limit)
	c.state = StateInit

	return nil
}

// Feed processes the next samples of the stream.
func (c *Counter) Feed(values []float64) error {
	if err := c.checkFeed("feed"); err != nil {
		return err
	}

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return c.fail(fmt.Errorf("%w: sample %d is not finite: %g", ErrInvalidArgument, c.pos+1, v))
		}

		c.pos++

		if err := c.feedOnce(Point{Value: v, Class: c.classes.Quantize(v), Pos: c.pos}); err != nil {
			return c.fail(err)
		}
	}

	return nil
}

// FeedPoints processes pre-classified samples. Their classes are used as
// given. A zero Pos is replaced by the next stream position; other
// positions must increase.
func (c *Counter) FeedPoints(points []Point) error {
	if err := c.checkFeed("feed points"); err != nil {
		return err
	}

	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return c.fail(fmt.Errorf("%w: sample %d is not finite: %g", ErrInvalidArgument, c.pos+1, p.Value))
		}

		if p.Pos == 0 {
			p.Pos = c.pos + 1
		} else if p.Pos <= c.pos {
			return c.fail(fmt.Errorf("%w: position %d does not follow %d", ErrInvalidArgument, p.Pos, c.pos))
		}

		c.pos = p.Pos

		if err := c.feedOnce(p); err != nil {
			return c.fail(err)
		}
	}

	return nil
}

func (c *Counter) feedOnce(p Point) error {
	if c.state == StateInit {
		c.state = StateBusy
	}

	c.trackExtrema(p)

	tp, confirmed, err := c.detector.Next(c.residue, p)
	if err != nil {
		return err
	}

	if c.residue.HasInterim() {
		c.state = StateBusyInterim
	}

	if c.hist != nil {
		if err := c.hist.observe(p, tp, confirmed); err != nil {
			return err
		}
	}

	if !confirmed {
		return nil
	}

	return c.finder.FindCycles(c.residue, c.agg)
}

func (c *Counter) trackExtrema(p Point) {
	if !c.hasExtrema {
		c.hasExtrema = true
		c.min, c.max = p, p

		return
	}

	if p.Value < c.min.Value {
		c.min = p
	}

	if p.Value > c.max.Value {
		c.max = p
	}
}

// Reset clears all results and buffers and returns to StateInit, keeping
// the configuration. A failed counter cannot be reset.
func (c *Counter) Reset() error {
	if err := c.check("reset"); err != nil {
		return err
	}

	c.clear()

	return nil
}

func (c *Counter) clear() {
	c.residue.Reset()
	c.finder.Reset()
	c.detector.Reset()

	if c.hist != nil {
		c.hist.reset()
	}

	c.agg.reset()
	c.pos = 0
	c.hasExtrema = false
	c.min, c.max = Point{}, Point{}
	c.state = StateInit
}

// Reclassify discards all results and recounts the recorded turning points
// under new class parameters. Positions are kept. Requires [WithHistory]
// and a finalized counter, since only then does the history hold the
// interim point. The counter is left unfinalized.
func (c *Counter) Reclassify(classes Classes) error {
	if err := c.check("reclassify"); err != nil {
		return err
	}

	if c.hist == nil {
		return c.fail(fmt.Errorf("%w: reclassify requires WithHistory", ErrInvalidArgument))
	}

	if !c.hist.locked {
		return c.fail(fmt.Errorf("%w: reclassify requires a finalized counter", ErrInvalidArgument))
	}

	if err := classes.Validate(); err != nil {
		return c.fail(err)
	}

	pts := c.hist.points()
	last := c.pos

	if classes.Count != c.classes.Count {
		c.agg = newAggregates(classes, c.cfg.damage, c.cfg.flags, c.cfg.limit)
	} else {
		c.agg.classes = classes
	}

	c.classes = classes
	c.clear()

	for _, p := range pts {
		p.Class = classes.Quantize(p.Value)
		if err := c.feedOnce(p); err != nil {
			return c.fail(err)
		}
	}

	c.pos = last

	return nil
}

// Close releases all buffers. The results stay readable; feeding or
// finalizing a closed counter fails.
func (c *Counter) Close() error {
	if c.state == StateInit0 {
		return nil
	}

	c.release()
	c.state = StateInit0
	c.err = nil

	return nil
}

func (c *Counter) release() {
	if c.residue != nil {
		c.residue.release()
	}

	if hcm, ok := c.finder.(*hcmFinder); ok {
		hcm.release()
	}

	if c.hist != nil {
		c.hist.release()
	}
}

func (c *Counter) check(op string) error {
	switch c.state {
	case StateError:
		return fmt.Errorf("%w: %w", ErrFailed, c.err)
	case StateInit0:
		return fmt.Errorf("%w: %s on closed counter", ErrInvalidArgument, op)
	}

	return nil
}

func (c *Counter) checkFeed(op string) error {
	if err := c.check(op); err != nil {
		return err
	}

	if c.state >= StateFinalize {
		return c.fail(fmt.Errorf("%w: %s in state %s", ErrInvalidArgument, op, c.state))
	}

	return nil
}

// fail moves the counter to StateError and returns err.
func (c *Counter) fail(err error) error {
	c.state = StateError
	c.err = err

	return err
}

// State returns the lifecycle state.
func (c *Counter) State() State { return c.state }

// Err returns the error that moved the counter to StateError, if any.
func (c *Counter) Err() error { return c.err }

// Classes returns the class parameters.
func (c *Counter) Classes() Classes { return c.classes }

// Hysteresis returns the hysteresis of the turning-point filter.
func (c *Counter) Hysteresis() float64 { return c.hysteresis }

// Method returns the counting method.
func (c *Counter) Method() Method { return c.cfg.method }

// Position returns the position of the last sample fed.
func (c *Counter) Position() int { return c.pos }

// PseudoDamage returns the accumulated damage.
func (c *Counter) PseudoDamage() float64 { return c.agg.damage }

// Matrix returns a copy of the transition matrix.
func (c *Counter) Matrix() *Matrix { return c.agg.matrix.clone() }

// RangePairs returns a copy of the range-pair histogram. Index r counts
// cycles spanning r classes, in half-cycle units.
func (c *Counter) RangePairs() []uint64 {
	return append([]uint64(nil), c.agg.rp...)
}

// LevelCrossings returns a copy of the level-crossing histogram. Index i
// counts crossings of the upper bound of class i, in half-cycle units.
func (c *Counter) LevelCrossings() []uint64 {
	return append([]uint64(nil), c.agg.lc...)
}

// Residue returns the confirmed turning points that closed no cycle,
// oldest first. The interim point is not included.
func (c *Counter) Residue() []Point {
	if c.state == StateInit0 {
		return nil
	}

	return append(c.finder.Retained(), c.residue.Points()...)
}

// Interim returns the current interim turning point.
func (c *Counter) Interim() (Point, bool) {
	if c.state == StateInit0 {
		return Point{}, false
	}

	return c.residue.Interim()
}

// TurningPoints returns the recorded turning points, or nil without
// [WithHistory].
func (c *Counter) TurningPoints() []Point {
	if c.hist == nil {
		return nil
	}

	return c.hist.points()
}

// HistoryLocked reports whether the history has been frozen by Finalize.
func (c *Counter) HistoryLocked() bool {
	return c.hist != nil && c.hist.locked
}

// Extrema returns the global minimum and maximum sample seen so far.
func (c *Counter) Extrema() (lo, hi Point, ok bool) {
	return c.min, c.max, c.hasExtrema
}
