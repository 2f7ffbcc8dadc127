package chart

import (
	"fyne.io/fyne/v2"
)

// GridResolution selects how dense the background grid is drawn.
type GridResolution int

const (
	GridOff GridResolution = iota
	GridCoarse
	GridMedium
	GridFine
)

// DefaultGridResolution is used by new panes.
const DefaultGridResolution = GridMedium

func (g GridResolution) String() string {
	switch g {
	case GridOff:
		return "Off"
	case GridCoarse:
		return "Coarse"
	case GridMedium:
		return "Medium"
	case GridFine:
		return "Fine"
	default:
		return "Unknown"
	}
}

// showsTick reports whether a tick of the given kind is drawn at this
// resolution. Coarse and Medium differ in label density only at the axis
// level; Medium draws minor ticks faintly, Fine draws all of them.
func (g GridResolution) showsTick(minor bool) bool {
	switch g {
	case GridOff:
		return false
	case GridCoarse:
		return !minor
	default:
		return true
	}
}

// GridResolutions lists every resolution in menu order.
func GridResolutions() []GridResolution {
	return []GridResolution{GridOff, GridCoarse, GridMedium, GridFine}
}

// GridResolutionMenu builds a menu that applies the chosen resolution.
func GridResolutionMenu(apply func(GridResolution)) *fyne.Menu {
	items := make([]*fyne.MenuItem, 0, 4)
	for _, g := range GridResolutions() {
		items = append(items, fyne.NewMenuItem(g.String(), func() {
			apply(g)
		}))
	}
	return fyne.NewMenu("Grid Resolution", items...)
}

// FrequencyZoom selects a preset frequency band for the frequency pane.
type FrequencyZoom int

const (
	ZoomFull FrequencyZoom = iota
	ZoomLow
	ZoomLowMid
	ZoomMid
	ZoomMidHigh
	ZoomHigh
)

func (z FrequencyZoom) String() string {
	switch z {
	case ZoomFull:
		return "Full Range"
	case ZoomLow:
		return "Low"
	case ZoomLowMid:
		return "Low-Mid"
	case ZoomMid:
		return "Mid"
	case ZoomMidHigh:
		return "Mid-High"
	case ZoomHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Range returns the frequency bounds of the preset, given the displayable
// limits of the pane.
func (z FrequencyZoom) Range(lowest, highest float64) (float64, float64) {
	switch z {
	case ZoomLow:
		return lowest, 200
	case ZoomLowMid:
		return 60, 600
	case ZoomMid:
		return 200, 2000
	case ZoomMidHigh:
		return 600, 6000
	case ZoomHigh:
		return 2000, highest
	default:
		return lowest, highest
	}
}

// FrequencyZooms lists every preset in menu order.
func FrequencyZooms() []FrequencyZoom {
	return []FrequencyZoom{ZoomFull, ZoomLow, ZoomLowMid, ZoomMid, ZoomMidHigh, ZoomHigh}
}

// FrequencyZoomMenu builds a menu that applies the chosen zoom preset.
func FrequencyZoomMenu(apply func(FrequencyZoom)) *fyne.Menu {
	items := make([]*fyne.MenuItem, 0, 6)
	for _, z := range FrequencyZooms() {
		items = append(items, fyne.NewMenuItem(z.String(), func() {
			apply(z)
		}))
	}
	return fyne.NewMenu("Frequency Zoom", items...)
}

// minorTickDivisions maps a vertical grid spacing in dB to the minor tick
// count that subdivides it into readable steps.
var minorTickDivisions = map[float64]int{
	1:  2,
	2:  2,
	3:  3,
	6:  6,
	10: 5,
	12: 4,
	15: 5,
	20: 4,
	30: 5,
}

// MinorTickDivisions returns the minor tick count for a dB grid spacing;
// spacings without a sensible subdivision get none.
func MinorTickDivisions(spacing float64) int {
	if n, ok := minorTickDivisions[spacing]; ok {
		return n
	}
	return 0
}

// VerticalGridSpacings lists the supported dB spacings in menu order.
func VerticalGridSpacings() []float64 {
	return []float64{1, 2, 3, 6, 10, 12, 15, 20, 30}
}
