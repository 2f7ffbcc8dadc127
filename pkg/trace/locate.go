package trace

import "math"

// TieBreak chooses the reported x value once a bracketing sample pair has
// been found. diff1 and diff2 are the non-negative distances from the query
// to x1 and x2 respectively.
type TieBreak func(queryX, x1, diff1, x2, diff2 float64) float64

// Nearest is the default tie-break: it returns the bracketing sample closest
// to the query, favoring the earlier sample on an exact tie.
func Nearest(queryX, x1, diff1, x2, diff2 float64) float64 {
	if diff1 <= diff2 {
		return x1
	}
	return x2
}

// PeakSnap returns a tie-break for impulse-response tracking that snaps to
// the peak time whenever the query lands within a tolerance band around it.
// The peak is the most interrogated feature of an impulse response and is
// near-impossible to hit exactly with a pointer on a densely sampled signal,
// so proximity to the peak takes precedence over strict nearest-neighbor.
//
// The tolerance converts the pointer's effective resolution over the visible
// window into sample-increment units. resolutionDivisor is the assumed
// number of distinguishable pointer positions across the window; the
// tracker_resolution_divisor config field carries the tuned default.
func PeakSnap(peakTime, startTime, endTime, sampleRateKHz, resolutionDivisor float64) TieBreak {
	return func(queryX, x1, diff1, x2, diff2 float64) float64 {
		pointerResolution := (endTime - startTime) / resolutionDivisor
		sampleIncrement := 1.0 / sampleRateKHz
		tolerance := pointerResolution / sampleIncrement

		overshoot := math.Abs(peakTime-queryX) - tolerance
		if diff1 <= diff2 {
			if overshoot <= diff1 {
				return peakTime
			}
			return x1
		}
		if overshoot <= diff2 {
			return peakTime
		}
		return x2
	}
}

// Locate finds the sample pair bracketing queryX in a monotonically
// increasing increments vector and delegates the final choice to tieBreak
// (Nearest when nil). The scan covers indices [minIndex, maxIndex], reading
// increments[i] and increments[i+1] at each step, so maxIndex must be at
// most len(increments)-2.
//
// The second return value is false when the query falls outside the covered
// range. Callers treat that as "no tracking value available", not an error.
func Locate(queryX float64, increments []float64, minIndex, maxIndex int, tieBreak TieBreak) (float64, bool) {
	if tieBreak == nil {
		tieBreak = Nearest
	}
	if minIndex < 0 || minIndex > maxIndex || maxIndex+1 >= len(increments) {
		return 0, false
	}

	for i := minIndex; i <= maxIndex; i++ {
		diff1 := queryX - increments[i]
		diff2 := increments[i+1] - queryX
		if diff1 >= 0 && diff2 >= 0 {
			return tieBreak(queryX, increments[i], diff1, increments[i+1], diff2), true
		}
	}

	return 0, false
}
