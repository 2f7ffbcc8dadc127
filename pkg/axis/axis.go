// Package axis models chart axes independently of the rendering layer: axis
// bounds, tick mark generation, tick label formatting, and the mapping from
// data values to normalized positions along the axis.
package axis

// Tick is one labeled position along an axis.
type Tick struct {
	Value float64
	Label string
	Minor bool
}

// Axis describes one chart dimension. Renderers consume the bounds and tick
// marks, and use Normalize to map data values to a fraction of the axis
// length (0 at the lower bound, 1 at the upper bound).
type Axis interface {
	Bounds() (lower, upper float64)
	Ticks() []Tick
	Normalize(value float64) float64
	Label() string
}

// CalculateLowerBound finds the lower bound of an axis given its upper
// bound, its long edge dimension in pixels, and the multiplier converting
// pixels to local coordinates. Degenerate inputs yield zero.
func CalculateLowerBound(dimensionPx, upperBound, displayToLocalScale float64) float64 {
	if displayToLocalScale <= 0 || dimensionPx <= 0 {
		return 0
	}
	return upperBound - dimensionPx*displayToLocalScale
}

// CalculateUpperBound is the counterpart of CalculateLowerBound for a known
// lower bound.
func CalculateUpperBound(dimensionPx, lowerBound, displayToLocalScale float64) float64 {
	if displayToLocalScale <= 0 || dimensionPx <= 0 {
		return 0
	}
	return lowerBound + dimensionPx*displayToLocalScale
}
