package axis

import (
	"math"
	"strconv"
)

// Frequency is a logarithmic axis whose major ticks sit on octave or
// third-octave center frequencies rather than on a regular decade grid.
// Minor ticks subdivide each octave band at fractional-octave ratios.
type Frequency struct {
	Lower             float64
	Upper             float64
	CenterFrequencies []float64

	// MinorTickCount is the octave divider for minor ticks: 4 between
	// third-octave centers (1/12 octave), 3 between full-octave centers.
	MinorTickCount int

	// MinorTicksVisible gates minor tick generation. Non-constant-Q band
	// spacing makes minor ticks uneven at partial zoom, so they are
	// normally shown only at full range.
	MinorTicksVisible bool
}

// NewFrequency returns a frequency axis over [lower, upper] Hz with major
// ticks at the given center frequencies.
func NewFrequency(lower, upper float64, centerFrequencies []float64, minorTickCount int) *Frequency {
	return &Frequency{
		Lower:             math.Round(lower),
		Upper:             math.Round(upper),
		CenterFrequencies: centerFrequencies,
		MinorTickCount:    minorTickCount,
	}
}

func (a *Frequency) Bounds() (float64, float64) { return a.Lower, a.Upper }

func (a *Frequency) Label() string { return "Frequency (Hz)" }

// Normalize maps a frequency to its logarithmic position along the axis.
func (a *Frequency) Normalize(value float64) float64 {
	if a.Lower <= 0 || a.Upper <= a.Lower || value <= 0 {
		return 0
	}
	return math.Log(value/a.Lower) / math.Log(a.Upper/a.Lower)
}

// Ticks places a major tick on every center frequency within bounds. When
// minor ticks are visible, each band is subdivided at the fractional-octave
// ratio 2^(1/MinorTickCount), skipping the redundant band edges.
func (a *Frequency) Ticks() []Tick {
	var ticks []Tick

	fractionalOctaveRatio := 0.0
	if a.MinorTicksVisible && a.MinorTickCount > 1 {
		fractionalOctaveRatio = math.Pow(2.0, 1.0/float64(a.MinorTickCount))
	}

	for _, center := range a.CenterFrequencies {
		if math.IsNaN(center) || center < a.Lower || center > a.Upper {
			continue
		}
		ticks = append(ticks, Tick{Value: center, Label: FormatFrequency(center)})

		if fractionalOctaveRatio > 0 {
			minor := center
			for n := 1; n < a.MinorTickCount; n++ {
				minor *= fractionalOctaveRatio
				if minor > a.Upper {
					break
				}
				ticks = append(ticks, Tick{Value: minor, Minor: true})
			}
		}
	}
	return ticks
}

// FormatFrequency renders a frequency label, switching to a "k" suffix at
// 1 kHz and above to keep dense tick labels short.
func FormatFrequency(frequencyHz float64) string {
	if frequencyHz >= 1000 {
		return strconv.FormatFloat(0.001*frequencyHz, 'g', 5, 64) + "k"
	}
	return strconv.FormatFloat(frequencyHz, 'g', 5, 64)
}
