package load

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/algo-rainflow/internal/testutil"
)

var mixed = []float64{-1, 2, 1, 3, -2, -1, -3, 2, 2, 1}

func TestCalculateMixed(t *testing.T) {
	s := Calculate(mixed)

	if s.Count != 10 {
		t.Fatalf("Count = %d, want 10", s.Count)
	}

	if s.Max != 3 || s.MaxPos != 4 || s.Min != -3 || s.MinPos != 7 || s.Range != 6 {
		t.Fatalf("extrema = %v@%d %v@%d range %v", s.Max, s.MaxPos, s.Min, s.MinPos, s.Range)
	}

	testutil.RequireNearlyEqualRel(t, s.Mean, 0.4, 1e-12)
	testutil.RequireNearlyEqualRel(t, s.RMS, math.Sqrt(3.8), 1e-12)
	testutil.RequireNearlyEqualRel(t, s.Variance, 3.64, 1e-12)
	testutil.RequireNearlyEqualRel(t, s.StdDev, math.Sqrt(3.64), 1e-12)

	if s.UpCrossings != 2 || s.Peaks != 4 {
		t.Fatalf("UpCrossings = %d, Peaks = %d, want 2, 4", s.UpCrossings, s.Peaks)
	}

	if got := s.Irregularity(); got != 0.5 {
		t.Fatalf("Irregularity() = %v, want 0.5", got)
	}
}

func TestCalculateMoments(t *testing.T) {
	s := Calculate([]float64{1, -1, 1, -1})

	if math.Abs(s.Mean) > 1e-15 || math.Abs(s.Skewness) > 1e-12 {
		t.Fatalf("Mean = %v, Skewness = %v, want 0", s.Mean, s.Skewness)
	}

	testutil.RequireNearlyEqualRel(t, s.Variance, 1, 1e-12)
	testutil.RequireNearlyEqualRel(t, s.Kurtosis, -2, 1e-12)
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v, want zero", s)
	}

	if s.Irregularity() != 0 {
		t.Fatalf("Irregularity() = %v, want 0", s.Irregularity())
	}
}

func TestCalculateConstant(t *testing.T) {
	s := Calculate([]float64{2, 2, 2})

	if s.Variance != 0 || s.Skewness != 0 || s.Kurtosis != 0 || s.Peaks != 0 || s.UpCrossings != 0 {
		t.Fatalf("constant load stats = %+v", s)
	}

	if s.MaxPos != 1 || s.MinPos != 1 {
		t.Fatalf("positions = %d, %d, want first sample", s.MaxPos, s.MinPos)
	}
}

func TestShapeCounts(t *testing.T) {
	tests := []struct {
		name        string
		load        []float64
		upCrossings int
		peaks       int
	}{
		{"plateau peak", []float64{0, 2, 2, 2, 0}, 0, 1},
		{"plateau then rise", []float64{0, 2, 2, 3, 0}, 0, 1},
		{"crossing through zero", []float64{-1, 0, 0, 1}, 1, 0},
		{"touching zero from above", []float64{1, 0, 1}, 0, 0},
		{"touching zero from below", []float64{-1, 0, -1}, 0, 1},
		{"rising edge only", []float64{-2, -1, 1, 2}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Calculate(tt.load)
			if s.UpCrossings != tt.upCrossings || s.Peaks != tt.peaks {
				t.Fatalf("UpCrossings = %d, Peaks = %d, want %d, %d", s.UpCrossings, s.Peaks, tt.upCrossings, tt.peaks)
			}
		})
	}
}

func TestStreamingMatchesCalculate(t *testing.T) {
	data := testutil.UniformLoad(9, -3, 5, 2000)
	want := Calculate(data)

	s := NewStreaming()
	for _, chunk := range testutil.Chunks(10, data, 37) {
		s.Update(chunk)
	}

	if diff := cmp.Diff(want, s.Result()); diff != "" {
		t.Fatalf("streamed stats mismatch (-want +got):\n%s", diff)
	}

	s.Reset()

	if s.Result() != (Stats{}) {
		t.Fatal("Reset kept data")
	}

	for _, v := range data {
		s.Update([]float64{v})
	}

	if diff := cmp.Diff(want, s.Result()); diff != "" {
		t.Fatalf("sample-by-sample stats mismatch (-want +got):\n%s", diff)
	}
}
