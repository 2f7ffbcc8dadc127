package axis

import (
	"math"
	"strconv"
)

// TimeTickRatio divides the visible time span into major tick intervals.
// The value derives from long-standing impulse-response usage with a window
// symmetric about zero out to 1120 ms.
const TimeTickRatio = 32.0

// Linear is an evenly divided axis with a fixed tick unit. It covers the
// time, SPL, gain, percent, and normalized-amplitude axes; only the bounds,
// tick unit, and label differ between them.
type Linear struct {
	Lower    float64
	Upper    float64
	TickUnit float64

	// MinorCount subdivides each major tick interval; values below 2
	// disable minor ticks.
	MinorCount int

	// Name is the axis label, including units.
	Name string

	// Format renders a tick value; FormatTickValue applies when nil.
	Format func(value float64) string
}

// NewTime returns a time axis over [start, end] with a tick unit
// proportional to the span, and labels in the given unit (e.g. "ms").
func NewTime(start, end float64, unit string) *Linear {
	return &Linear{
		Lower:    start,
		Upper:    end,
		TickUnit: TimeTickUnit(start, end),
		Name:     "Time (" + unit + ")",
	}
}

// TimeTickUnit computes the proportional major tick unit for a time window.
func TimeTickUnit(start, end float64) float64 {
	return (end - start) / TimeTickRatio
}

// NewNormalizedAmplitude returns the fixed [-1, 1] axis used for impulse
// responses, which are normalized so that peak time rather than absolute
// level is the feature of interest. Never auto-ranged: a fixed vertical
// scale avoids order dependencies between data loading and zooming.
func NewNormalizedAmplitude() *Linear {
	return &Linear{
		Lower:    -1,
		Upper:    1,
		TickUnit: 0.25,
		Name:     "Amplitude (Normalized)",
	}
}

// NewSPL returns a sound-pressure-level axis.
func NewSPL(lower, upper, tickUnit float64) *Linear {
	return &Linear{
		Lower:    lower,
		Upper:    upper,
		TickUnit: tickUnit,
		Name:     "SPL (dBSPL)",
	}
}

// NewAmplitudeDB returns a frequency-domain amplitude axis in decibels.
func NewAmplitudeDB(lower, upper, tickUnit float64) *Linear {
	return &Linear{
		Lower:    lower,
		Upper:    upper,
		TickUnit: tickUnit,
		Name:     "Amplitude (dB)",
	}
}

// NewPercent returns a unitless ratio axis, typically [0, 1].
func NewPercent(lower, upper, tickUnit float64) *Linear {
	return &Linear{
		Lower:    lower,
		Upper:    upper,
		TickUnit: tickUnit,
		Name:     "Ratio",
	}
}

func (a *Linear) Bounds() (float64, float64) { return a.Lower, a.Upper }

func (a *Linear) Label() string { return a.Name }

func (a *Linear) Normalize(value float64) float64 {
	if a.Upper == a.Lower {
		return 0
	}
	return (value - a.Lower) / (a.Upper - a.Lower)
}

// Ticks generates major ticks at whole multiples of the tick unit within
// bounds, with optional minor subdivisions between them.
func (a *Linear) Ticks() []Tick {
	if a.TickUnit <= 0 || a.Upper <= a.Lower {
		return nil
	}

	// A small tolerance keeps the upper bound tick from being lost to
	// floating-point accumulation.
	tolerance := a.TickUnit * 1e-9

	var ticks []Tick
	start := math.Ceil(a.Lower/a.TickUnit) * a.TickUnit
	for v := start; v <= a.Upper+tolerance; v += a.TickUnit {
		ticks = append(ticks, Tick{Value: v, Label: a.format(v)})

		if a.MinorCount > 1 {
			minorUnit := a.TickUnit / float64(a.MinorCount)
			for m := 1; m < a.MinorCount; m++ {
				mv := v + float64(m)*minorUnit
				if mv > a.Upper+tolerance {
					break
				}
				ticks = append(ticks, Tick{Value: mv, Minor: true})
			}
		}
	}
	return ticks
}

func (a *Linear) format(value float64) string {
	if a.Format != nil {
		return a.Format(value)
	}
	return FormatTickValue(value)
}

// FormatTickValue renders a tick value compactly, collapsing negative zero
// and floating-point residue near zero.
func FormatTickValue(value float64) string {
	if math.Abs(value) < 1e-12 {
		value = 0
	}
	return strconv.FormatFloat(value, 'g', 6, 64)
}
