package rainflow

import (
	"fmt"
	"math"
)

// Finalize ends the stream and applies the residual method to the residue.
// It must be called exactly once; the counter is then in StateFinished.
func (c *Counter) Finalize(method ResidualMethod) error {
	if err := c.check("finalize"); err != nil {
		return err
	}

	if c.state >= StateFinalize {
		return c.fail(fmt.Errorf("%w: finalize in state %s", ErrInvalidArgument, c.state))
	}

	var err error

	switch method {
	case ResidueIgnore:
		err = c.finalizeStream()
	case ResidueDiscard:
		err = c.finalizeDiscard()
	case ResidueHalfCycles:
		err = c.finalizeWeighted(HalfCycleIncrement)
	case ResidueFullCycles:
		err = c.finalizeWeighted(FullCycleIncrement)
	case ResidueClormannSeeger:
		err = c.finalizeClormannSeeger()
	case ResidueRepeated:
		err = c.finalizeRepeated()
	case ResidueDIN45667:
		err = c.finalizeDIN45667()
	default:
		err = fmt.Errorf("%w: unknown residual method: %d", ErrInvalidArgument, int(method))
	}

	if err != nil {
		return c.fail(err)
	}

	c.state = StateFinished

	return nil
}

// finalizeStream promotes the interim point, closes the cycles it completes,
// locks the history and moves points retained by the finder into the
// residue.
func (c *Counter) finalizeStream() error {
	interim, hasInterim := c.residue.Interim()
	if hasInterim {
		c.residue.Confirm()
	}

	if c.hist != nil {
		if err := c.hist.finish(interim, hasInterim); err != nil {
			return err
		}
	}

	if hasInterim {
		if err := c.finder.FindCycles(c.residue, c.agg); err != nil {
			return err
		}
	}

	if err := c.finder.Flush(c.residue); err != nil {
		return err
	}

	c.state = StateFinalize

	return nil
}

func (c *Counter) finalizeDiscard() error {
	if err := c.finalizeStream(); err != nil {
		return err
	}

	c.residue.Reset()

	return nil
}

func (c *Counter) finalizeWeighted(inc uint64) error {
	if err := c.finalizeStream(); err != nil {
		return err
	}

	if err := c.countSlopes(inc); err != nil {
		return err
	}

	c.residue.Reset()

	return nil
}

// countSlopes counts every pair of adjacent residue points at increment inc.
func (c *Counter) countSlopes(inc uint64) error {
	prev := c.agg.inc
	c.agg.inc = inc

	defer func() { c.agg.inc = prev }()

	for i := 0; i+1 < c.residue.Len(); i++ {
		if err := c.agg.Cycle(c.residue.At(i), c.residue.At(i+1)); err != nil {
			return err
		}
	}

	return nil
}

// finalizeClormannSeeger closes the inner slope of every quadruple A,B,C,D
// whose inner points straddle zero with |C| <= |B| <= |D| as a full cycle,
// then counts what is left as half cycles. The quadruple rule only applies
// to the 4-point method.
func (c *Counter) finalizeClormannSeeger() error {
	if err := c.finalizeStream(); err != nil {
		return err
	}

	if c.cfg.method == MethodFourPoint {
		r := c.residue
		for i := 0; i+4 <= r.Len(); {
			b, cc, d := r.At(i+1), r.At(i+2), r.At(i+3)
			absB, absC, absD := math.Abs(b.Value), math.Abs(cc.Value), math.Abs(d.Value)

			if b.Value*cc.Value < 0 && absD >= absB && absB >= absC {
				if err := c.agg.Cycle(b, cc); err != nil {
					return err
				}

				r.RemoveRange(i+1, 2)

				continue
			}

			i++
		}
	}

	if err := c.countSlopes(HalfCycleIncrement); err != nil {
		return err
	}

	c.residue.Reset()

	return nil
}

// finalizeRepeated feeds the residue, interim point included, through the
// pipeline a second time as if the load block repeated once more.
func (c *Counter) finalizeRepeated() error {
	interim, hasInterim := c.residue.Interim()

	if c.hist != nil {
		if err := c.hist.finish(interim, hasInterim); err != nil {
			return err
		}
	}

	retained := c.finder.Retained()
	n := len(retained) + c.residue.Len()

	if hasInterim {
		n++
	}

	if n > 0 {
		snapshot, err := c.cfg.alloc.Grow(nil, n)
		if err != nil {
			return outOfMemory(err)
		}

		if cap(snapshot) < n {
			c.cfg.alloc.Release(snapshot)

			return fmt.Errorf("%w: allocator returned capacity %d, want %d", ErrInternal, cap(snapshot), n)
		}

		snapshot = append(snapshot[:0], retained...)
		snapshot = append(snapshot, c.residue.Points()...)

		if hasInterim {
			snapshot = append(snapshot, interim)
		}

		for _, p := range snapshot {
			if err := c.feedOnce(p); err != nil {
				c.cfg.alloc.Release(snapshot)

				return err
			}
		}

		c.cfg.alloc.Release(snapshot)
	}

	if err := c.finalizeStream(); err != nil {
		return err
	}

	c.residue.Reset()

	return nil
}

// finalizeDIN45667 pairs the first residue slope with every later slope of
// opposite class range. Matched slopes count level crossings only; the
// leading slope then counts range pair and level crossings. A match on the
// adjacent slope consumes the leading slope's end point, so the first point
// stays and starts the bridging slope of the next pass.
func (c *Counter) finalizeDIN45667() error {
	if err := c.finalizeStream(); err != nil {
		return err
	}

	r := c.residue
	for r.Len() >= 2 {
		from, to := r.At(0), r.At(1)
		rangeI := c.classes.Clamp(to.Class) - c.classes.Clamp(from.Class)
		adjacent := false

		for j := 1; j+1 < r.Len(); {
			fromJ, toJ := r.At(j), r.At(j+1)
			rangeJ := c.classes.Clamp(toJ.Class) - c.classes.Clamp(fromJ.Class)

			if rangeI == -rangeJ {
				if err := c.agg.count(fromJ, toJ, CountLevelCrossing); err != nil {
					return err
				}

				r.RemoveRange(j, 2)

				if j == 1 {
					adjacent = true

					break
				}

				continue
			}

			j += 2
		}

		if err := c.agg.count(from, to, CountRangePair|CountLevelCrossing); err != nil {
			return err
		}

		if !adjacent {
			r.RemoveRange(0, 1)
		}
	}

	r.Reset()

	return nil
}
