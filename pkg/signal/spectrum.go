package signal

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/window"
)

// magnitudeFloor keeps empty bins finite on the dB scale.
const magnitudeFloor = 1e-12

// MagnitudeSpectrum computes the single-sided magnitude spectrum of a time
// signal, for display on a frequency-series chart. The signal is Hann
// windowed before the FFT to limit leakage from the record truncation.
//
// The returned vectors hold the bin center frequencies in Hz and the
// magnitudes in dB (re full scale), N/2+1 bins for N input samples.
func MagnitudeSpectrum(amplitude []float64, sampleRateKHz float64) ([]float64, []float64, error) {
	if len(amplitude) < 2 {
		return nil, nil, fmt.Errorf("spectrum needs at least 2 samples, got %d", len(amplitude))
	}
	if sampleRateKHz <= 0 {
		return nil, nil, fmt.Errorf("invalid sample rate: %g kHz", sampleRateKHz)
	}

	windowed := make([]float64, len(amplitude))
	copy(windowed, amplitude)
	window.Hann(windowed)

	spectrum := fft.FFTReal(windowed)

	n := len(amplitude)
	bins := n/2 + 1
	sampleRateHz := sampleRateKHz * 1000.0

	freqs := make([]float64, bins)
	magnitudes := make([]float64, bins)
	for k := 0; k < bins; k++ {
		freqs[k] = float64(k) * sampleRateHz / float64(n)

		magnitude := 2.0 * cmplx.Abs(spectrum[k]) / float64(n)
		if magnitude < magnitudeFloor {
			magnitude = magnitudeFloor
		}
		magnitudes[k] = 20.0 * math.Log10(magnitude)
	}

	return freqs, magnitudes, nil
}
