// Package signal provides the acoustics helpers shared by the chart panes:
// peak-impulse lookup, delay adjustment, octave-band tables and magnitude
// spectra for frequency-series display.
package signal

import "math"

// PeakIndex returns the index of the sample with the largest absolute
// amplitude, or -1 for an empty vector. Impulse responses are normalized to
// [-1, 1], so the dominant excursion may be negative-going.
func PeakIndex(amplitude []float64) int {
	peak := -1
	peakValue := 0.0
	for i, a := range amplitude {
		if v := math.Abs(a); peak < 0 || v > peakValue {
			peak = i
			peakValue = v
		}
	}
	return peak
}

// PeakTime returns the time of the peak impulse, looked up from the
// monotonic time increments that accompany the amplitude vector. The second
// return value is false when either vector is empty or they disagree in
// length.
func PeakTime(amplitude, increments []float64) (float64, bool) {
	if len(amplitude) == 0 || len(amplitude) > len(increments) {
		return 0, false
	}
	return increments[PeakIndex(amplitude)], true
}
