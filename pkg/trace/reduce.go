package trace

import (
	"fmt"
	"math"
)

// Point is a single chart point. Point order is significant: consumers draw
// the points as a connected polyline in insertion order, so the output of
// Reduce must never be re-sorted.
type Point struct {
	X float64
	Y float64
}

// Reduce converts a raw (x, y) sample pair into a reduced point sequence
// suitable for line-chart rendering. Samples in (first, last) are kept only
// when they differ from their predecessor by more than epsilon, which drops
// flat noise-floor runs while preserving transients. An epsilon of zero
// disables filtering and every scanned sample is retained.
//
// The delta filter assumes that "near the previous sample" means "noise
// floor". That holds for impulse responses and similar signals; it is not a
// general-purpose decimation.
//
// Four zero-amplitude sentinels are appended after the scanned points, in
// fixed order: the original start time, the sample just before the first
// kept one, the sample just after the last kept one, and the original end
// time. The two inner sentinels flatten the lead-in and lead-out so that no
// diagonal artifact connects the trace to the chart edges. Their indices are
// clamped to the data bounds.
//
// The result is freshly allocated on every call; identical inputs produce
// identical output.
func Reduce(x, y []float64, first, last int, epsilon, originalStart, originalEnd float64) ([]Point, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("mismatched sample vectors: %d x values, %d y values", len(x), len(y))
	}
	if epsilon < 0 {
		return nil, fmt.Errorf("negative epsilon threshold: %g", epsilon)
	}
	if first < 0 || last >= len(x) || first >= last {
		return nil, fmt.Errorf("invalid sample range [%d, %d] for %d samples", first, last, len(x))
	}

	firstValid := first
	lastValid := first

	points := make([]Point, 0, (last-first-1)+4)
	retained := false
	for i := first + 1; i < last; i++ {
		if epsilon > 0 && math.Abs(y[i]-y[i-1]) <= epsilon {
			continue
		}
		points = append(points, Point{X: x[i], Y: y[i]})
		if !retained {
			firstValid = i
			retained = true
		}
		lastValid = i
	}

	// Clamp the sentinel indices: with first == 0 and nothing retained the
	// lead index would underflow, and symmetrically for the trail index.
	lead := firstValid - 1
	if lead < 0 {
		lead = 0
	}
	trail := lastValid + 1
	if trail > len(x)-1 {
		trail = len(x) - 1
	}

	points = append(points,
		Point{X: originalStart},
		Point{X: x[lead]},
		Point{X: x[trail]},
		Point{X: originalEnd},
	)

	return points, nil
}
