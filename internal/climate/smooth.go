package climate

// MovingAverage smooths the series with a centered window of the given width.
// Edge points average over the window clipped to the series bounds, so the
// output always has the same length as the input and every point has a value.
// A window of 1 (or less) returns a copy of the input.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}

	half := window / 2
	for i := range values {
		start := i - half
		if start < 0 {
			start = 0
		}
		end := i + half
		if end >= len(values) {
			end = len(values) - 1
		}
		var sum float64
		for j := start; j <= end; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(end-start+1)
	}
	return out
}
