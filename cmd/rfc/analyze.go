package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-rainflow/fatigue/rainflow"
	"github.com/cwbudde/algo-rainflow/stats/load"
)

var (
	errNoSamples        = errors.New("no samples")
	errCheckFailed      = errors.New("derived histogram differs from live count")
	errCheckUnsupported = errors.New("residual method counts without the matrix")
)

// result is one analyzed load series.
type result struct {
	name       string
	settings   settings
	classes    rainflow.Classes
	hysteresis float64
	residual   rainflow.ResidualMethod
	stats      load.Stats
	residue    []rainflow.Point
	counter    *rainflow.Counter
}

// analyze counts the load series read from r.
func analyze(name string, r io.Reader, s settings, log logrus.FieldLogger) (*result, error) {
	residual, err := rainflow.ParseResidualMethod(s.Residue)
	if err != nil {
		return nil, err
	}

	res := &result{name: name, settings: s, residual: residual}
	st := load.NewStreaming()

	if s.autoClasses() {
		samples, err := readAll(r, s.Block)
		if err != nil {
			return nil, err
		}

		st.Update(samples)
		sum := st.Result()

		if err := res.start(sum.Min, sum.Max); err != nil {
			return nil, err
		}

		if err := res.counter.Feed(samples); err != nil {
			return nil, err
		}
	} else {
		if err := res.start(0, 0); err != nil {
			return nil, err
		}

		_, err := readBlocks(r, s.Block, func(block []float64) error {
			st.Update(block)

			return res.counter.Feed(block)
		})
		if err != nil {
			return nil, err
		}
	}

	res.stats = st.Result()
	if res.stats.Count == 0 {
		return nil, fmt.Errorf("%s: %w", name, errNoSamples)
	}

	c := res.counter
	res.residue = c.Residue()

	if p, ok := c.Interim(); ok {
		res.residue = append(res.residue, p)
	}

	log.WithFields(logrus.Fields{
		"input":   name,
		"samples": res.stats.Count,
		"residue": len(res.residue),
	}).Debug("stream counted")

	if err := c.Finalize(residual); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"input":  name,
		"cycles": rainflow.TotalCycles(c.RangePairs()),
		"damage": c.PseudoDamage(),
	}).Debug("finalized")

	if s.Check {
		curve, err := s.curve()
		if err != nil {
			return nil, err
		}

		switch err := checkReports(c, residual, curve); {
		case errors.Is(err, errCheckUnsupported):
			log.WithField("input", name).Warnf("check skipped: %v", err)
		case err != nil:
			return nil, err
		}
	}

	return res, nil
}

// start creates the counter once the class range is known.
func (res *result) start(lo, hi float64) error {
	s := res.settings
	res.classes = s.classesFor(lo, hi)
	res.hysteresis = s.hysteresisFor(res.classes)

	opts, err := s.counterOptions()
	if err != nil {
		return err
	}

	res.counter, err = rainflow.New(res.classes.Count, res.classes.Width, res.classes.Offset, res.hysteresis, opts...)

	return err
}

// checkReports verifies the histograms derived from the matrix, and the
// damage derived from the range pairs, against the live counts.
func checkReports(c *rainflow.Counter, residual rainflow.ResidualMethod, model rainflow.DamageModel) error {
	if residual == rainflow.ResidueDIN45667 {
		return fmt.Errorf("%w: %s", errCheckUnsupported, residual)
	}

	m := c.Matrix()

	if !slices.Equal(rainflow.RangePairFromMatrix(m), c.RangePairs()) {
		return fmt.Errorf("%w: range pairs", errCheckFailed)
	}

	lc := rainflow.LevelCrossingFromMatrix(m, rainflow.CountLevelCrossing)
	if !slices.Equal(lc, c.LevelCrossings()) {
		return fmt.Errorf("%w: level crossings", errCheckFailed)
	}

	want := c.PseudoDamage()
	got := rainflow.DamageFromRangePairs(c.RangePairs(), c.Classes().Width, model)

	if math.Abs(got-want) > 1e-9*math.Max(math.Abs(got), math.Abs(want)) {
		return fmt.Errorf("%w: damage %g, live %g", errCheckFailed, got, want)
	}

	return nil
}
