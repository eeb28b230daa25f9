package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-rainflow/fatigue/rainflow"
	"github.com/cwbudde/algo-rainflow/fatigue/woehler"
)

// table writes tab-separated rows and keeps the first write error.
type table struct {
	tw  *tabwriter.Writer
	err error
}

func newTable(w io.Writer) *table {
	return &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (t *table) row(format string, args ...any) {
	if t.err != nil {
		return
	}

	_, t.err = fmt.Fprintf(t.tw, format+"\n", args...)
}

func (t *table) flush() error {
	if t.err != nil {
		return t.err
	}

	return t.tw.Flush()
}

func writeReport(w io.Writer, res *result) error {
	sections := []func(*table, *result){
		writeSummary,
		writeRangePairs,
		writeLevelCrossings,
		writeResidue,
	}

	if res.settings.Matrix {
		sections = append(sections, writeMatrix)
	}

	if res.settings.TurningPoints {
		sections = append(sections, writeTurningPoints)
	}

	for i, section := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		t := newTable(w)
		section(t, res)

		if err := t.flush(); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return nil
}

func writeSummary(t *table, res *result) {
	c, st, cl := res.counter, res.stats, res.classes

	t.row("Input\t%s", res.name)
	t.row("Samples\t%d", st.Count)
	t.row("Mean\t%.6g", st.Mean)
	t.row("RMS\t%.6g", st.RMS)
	t.row("Min\t%.6g @ %d", st.Min, st.MinPos)
	t.row("Max\t%.6g @ %d", st.Max, st.MaxPos)
	t.row("Irregularity\t%.3f", st.Irregularity())
	t.row("Classes\t%d x %.6g from %.6g", cl.Count, cl.Width, cl.Offset)
	t.row("Hysteresis\t%.6g", res.hysteresis)
	t.row("Method\t%s", c.Method())
	t.row("Residual method\t%s", res.residual)
	t.row("Cycles\t%g", rainflow.TotalCycles(c.RangePairs()))
	t.row("Damage\t%.6g", c.PseudoDamage())
}

func writeRangePairs(t *table, res *result) {
	t.row("Range pairs")
	t.row("Range\tAmplitude\tCycles")
	t.row("-----\t---------\t------")

	width := res.classes.Width

	for r, n := range res.counter.RangePairs() {
		if n == 0 {
			continue
		}

		t.row("%d\t%.6g\t%g", r, woehler.Amplitude(width, 0, r), halfToFull(n))
	}
}

func writeLevelCrossings(t *table, res *result) {
	t.row("Level crossings")
	t.row("Class\tLevel\tCrossings")
	t.row("-----\t-----\t---------")

	for i, n := range res.counter.LevelCrossings() {
		if n == 0 {
			continue
		}

		t.row("%d\t%.6g\t%g", i, res.classes.UpperBound(i), halfToFull(n))
	}
}

func writeResidue(t *table, res *result) {
	t.row("Residue")
	writePoints(t, res.residue)
}

func writeTurningPoints(t *table, res *result) {
	t.row("Turning points")
	writePoints(t, res.counter.TurningPoints())
}

func writePoints(t *table, pts []rainflow.Point) {
	t.row("Pos\tValue\tClass")
	t.row("---\t-----\t-----")

	for _, p := range pts {
		t.row("%d\t%.6g\t%d", p.Pos, p.Value, p.Class)
	}
}

func writeMatrix(t *table, res *result) {
	t.row("Matrix")
	t.row("From\tTo\tFrom mean\tTo mean\tCycles")
	t.row("----\t--\t---------\t-------\t------")

	m := res.counter.Matrix()
	cl := res.classes

	for from := range m.Size() {
		for to := range m.Size() {
			if m.At(from, to) == 0 {
				continue
			}

			t.row("%d\t%d\t%.6g\t%.6g\t%g", from, to, cl.Mean(from), cl.Mean(to), m.Cycles(from, to))
		}
	}
}

// halfToFull converts half-cycle units to full cycles.
func halfToFull(n uint64) float64 {
	return float64(n) / float64(rainflow.FullCycleIncrement)
}
