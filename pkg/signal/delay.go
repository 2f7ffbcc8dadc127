package signal

import "math"

// AdjustDelay shifts a time signal by delayMs at the given sample rate,
// zero-filling the vacated samples. A positive delay moves the signal later
// in time; a negative delay moves it earlier. The input is never mutated;
// the result is a fresh vector of the same length.
//
// Delays are used both for the inherent latency of the measurement device
// that recorded the signal and for centering the peak impulse in the
// analysis window.
func AdjustDelay(amplitude []float64, delayMs, sampleRateKHz float64) []float64 {
	shifted := make([]float64, len(amplitude))

	// ms * kHz yields a shift in whole samples.
	shift := int(math.Round(delayMs * sampleRateKHz))
	if shift == 0 {
		copy(shifted, amplitude)
		return shifted
	}

	for i := range amplitude {
		j := i - shift
		if j >= 0 && j < len(amplitude) {
			shifted[i] = amplitude[j]
		}
	}
	return shifted
}
