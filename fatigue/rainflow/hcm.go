package rainflow

import (
	"math"

	"github.com/cwbudde/algo-rainflow/internal/buffer"
)

// hcmFinder is the Clormann/Seeger stack method. Confirmed points are moved
// from the residue onto a stack. Entries up to ir-1 are locked: they can no
// longer close a cycle with later points. Entries ir..iz are closable.
type hcmFinder struct {
	stack *buffer.Buffer[Point]
	iz    int
	ir    int
}

func newHCMFinder(capacity int, alloc Allocator) (*hcmFinder, error) {
	stack, err := buffer.New[Point](capacity, alloc)
	if err != nil {
		return nil, outOfMemory(err)
	}

	return &hcmFinder{stack: stack, iz: -1}, nil
}

func (h *hcmFinder) FindCycles(r *Residue, sink CycleSink) error {
	for r.Len() > 0 {
		k := r.At(0)

		if h.ir == 0 {
			if err := h.push(k); err != nil {
				return err
			}

			h.ir = 1
			r.RemoveRange(0, 1)

			continue
		}

		if err := h.reduce(k, sink); err != nil {
			return err
		}

		if err := h.push(k); err != nil {
			return err
		}

		r.RemoveRange(0, 1)
	}

	return nil
}

// reduce closes every cycle that K completes on top of the stack.
func (h *hcmFinder) reduce(k Point, sink CycleSink) error {
	for h.iz >= h.ir {
		j := h.stack.At(h.iz)

		var i Point
		if h.iz > h.ir {
			i = h.stack.At(h.iz - 1)
		} else {
			i = h.stack.At(h.ir - 1)
		}

		if (k.Value-j.Value)*(j.Value-i.Value) >= 0 {
			h.pop(1)

			continue
		}

		rangeKJ := math.Abs(k.Value - j.Value)
		rangeJI := math.Abs(j.Value - i.Value)

		if h.iz == h.ir {
			if rangeKJ > rangeJI {
				h.ir++
			}

			return nil
		}

		if rangeKJ < rangeJI {
			return nil
		}

		if err := sink.Cycle(i, j); err != nil {
			return err
		}

		h.pop(2)
	}

	return nil
}

func (h *hcmFinder) push(p Point) error {
	h.stack.Truncate(h.iz + 1)
	if err := h.stack.Append(p); err != nil {
		return outOfMemory(err)
	}

	h.iz++

	return nil
}

func (h *hcmFinder) pop(n int) {
	h.iz -= n
	h.stack.Truncate(h.iz + 1)
}

func (h *hcmFinder) Flush(r *Residue) error {
	pts := append(h.Retained(), r.Points()...)
	if err := r.assign(pts); err != nil {
		return err
	}

	h.Reset()

	return nil
}

func (h *hcmFinder) Retained() []Point {
	return h.stack.Copy()
}

func (h *hcmFinder) Reset() {
	h.stack.Reset()
	h.iz = -1
	h.ir = 0
}

func (h *hcmFinder) release() {
	h.stack.Release()
	h.iz = -1
	h.ir = 0
}
