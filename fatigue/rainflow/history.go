package rainflow

import "github.com/cwbudde/algo-rainflow/internal/buffer"

// history records turning points in stream order. With margins enforced
// the first and last sample are part of the record and every confirmed
// point is emitted one step late, so a point equal to its predecessor can
// be suppressed and the right margin can replace a pending point.
type history struct {
	buf    *buffer.Buffer[Point]
	margin bool
	locked bool

	hasLeft  bool
	hasRight bool
	left     Point
	right    Point
	delayed  Point
}

func newHistory(capacity int, margin bool, alloc Allocator) (*history, error) {
	buf, err := buffer.New[Point](capacity, alloc)
	if err != nil {
		return nil, outOfMemory(err)
	}

	return &history{buf: buf, margin: margin}, nil
}

func (h *history) add(p Point) error {
	if err := h.buf.Append(p); err != nil {
		return outOfMemory(err)
	}

	return nil
}

// observe is called for every sample; tp is the turning point the sample
// confirmed when confirmed is set.
func (h *history) observe(sample, tp Point, confirmed bool) error {
	if h.locked {
		return nil
	}

	if !h.margin {
		if confirmed {
			return h.add(tp)
		}

		return nil
	}

	if !h.hasLeft {
		h.hasLeft = true
		h.left = sample
		h.delayed = sample

		return nil
	}

	h.right = sample
	h.hasRight = true

	if !confirmed || tp.Value == h.delayed.Value {
		return nil
	}

	emit := h.delayed
	h.delayed = tp

	return h.add(emit)
}

// finish resolves the delay stage at the end of the stream and locks the
// history.
func (h *history) finish(interim Point, hasInterim bool) error {
	if h.locked {
		return nil
	}

	h.locked = true

	if !h.margin {
		if hasInterim {
			return h.add(interim)
		}

		return nil
	}

	if !h.hasLeft {
		return nil
	}

	pending := h.delayed

	if hasInterim {
		if err := h.add(h.delayed); err != nil {
			return err
		}

		pending = interim
	}

	if !h.hasRight {
		return h.add(pending)
	}

	if pending.Value != h.right.Value || pending.Pos == h.left.Pos {
		if err := h.add(pending); err != nil {
			return err
		}
	}

	return h.add(h.right)
}

func (h *history) points() []Point {
	return h.buf.Copy()
}

func (h *history) reset() {
	h.buf.Reset()
	h.locked = false
	h.hasLeft = false
	h.hasRight = false
	h.left, h.right, h.delayed = Point{}, Point{}, Point{}
}

func (h *history) release() {
	h.buf.Release()
}
