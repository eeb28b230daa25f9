package rainflow

// Point is a sample or turning point of the load series.
type Point struct {
	Value float64
	Class int // class index as quantized, possibly outside [0, Count)
	Pos   int // 1-based position in the stream
}
