package load

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-rainflow/internal/testutil"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{256, 4096, 65536} {
		data := testutil.RandomWalk(1, 1, n)

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for b.Loop() {
				Calculate(data)
			}
		})
	}
}

func BenchmarkStreamingUpdate(b *testing.B) {
	data := testutil.RandomWalk(1, 1, 4096)
	s := NewStreaming()

	b.ReportAllocs()
	b.SetBytes(int64(len(data) * 8))

	for b.Loop() {
		s.Update(data)
	}
}
