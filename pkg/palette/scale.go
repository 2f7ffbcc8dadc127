package palette

import "github.com/mhschmieder/fxchart/pkg/axis"

// Scale is the unit-specific behavior of a palette legend: it rationalizes
// the tick division when the dynamic range changes, so that a new min/max
// pair still produces clean tick values, and it builds the matching value
// axis.
type Scale interface {
	RationalizeDiv(dynamicRange float64) float64
	AxisFor(magMin, magMax, div float64) *axis.Linear
}

// SPLScale divides a sound-pressure-level legend in decibel tiers.
type SPLScale struct{}

func (SPLScale) RationalizeDiv(dynamicRange float64) float64 {
	if dynamicRange <= 27 {
		return 3
	}
	if dynamicRange <= 66 {
		return 6
	}
	return 12
}

func (SPLScale) AxisFor(magMin, magMax, div float64) *axis.Linear {
	return axis.NewSPL(magMin, magMax, div)
}

// PercentScale divides a ratio legend in fractional tiers.
type PercentScale struct{}

func (PercentScale) RationalizeDiv(dynamicRange float64) float64 {
	if dynamicRange <= 0.5 {
		return 0.05
	}
	if dynamicRange <= 1.0 {
		return 0.1
	}
	return 0.2
}

func (PercentScale) AxisFor(magMin, magMax, div float64) *axis.Linear {
	return axis.NewPercent(magMin, magMax, div)
}
