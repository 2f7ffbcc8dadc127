package chart

import (
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/mhschmieder/fxchart/pkg/axis"
	"github.com/mhschmieder/fxchart/pkg/signal"
)

// Frequency pane display defaults, in dB.
const (
	DefaultMagnitudeMax        = 120.0
	DefaultMagnitudeRange      = 60.0
	DefaultVerticalGridSpacing = 10.0
)

// FrequencyPane displays magnitude spectra over a logarithmic frequency
// axis with third-octave center-frequency ticks. The magnitude range grows
// cumulatively as data sets arrive, so switching between responses does not
// rescale the chart underneath the user.
type FrequencyPane struct {
	widget.BaseWidget

	state *State

	mu              sync.RWMutex
	xAxis           *axis.Frequency
	yAxis           *axis.Linear
	magMin, magMax  float64
	hasRange        bool
	gridSpacing     float64
	limited         bool
	lowest, highest float64
}

// NewFrequencyPane creates a pane spanning [lowest, highest] Hz. When
// limited is true, spectra are clamped to that band before display.
func NewFrequencyPane(lowest, highest float64, limited bool) *FrequencyPane {
	if lowest <= 0 {
		lowest = signal.DefaultLowestFrequency
	}
	if highest <= lowest {
		highest = signal.DefaultHighestFrequency
	}

	xAxis := axis.NewFrequency(lowest, highest,
		signal.NominalThirdOctaveCenterFrequencies, 3)
	yAxis := axis.NewAmplitudeDB(DefaultMagnitudeMax-DefaultMagnitudeRange,
		DefaultMagnitudeMax, DefaultVerticalGridSpacing)
	yAxis.MinorCount = MinorTickDivisions(DefaultVerticalGridSpacing)

	p := &FrequencyPane{
		state:       NewState(xAxis, yAxis, lowest, highest),
		xAxis:       xAxis,
		yAxis:       yAxis,
		magMax:      DefaultMagnitudeMax,
		magMin:      DefaultMagnitudeMax - DefaultMagnitudeRange,
		gridSpacing: DefaultVerticalGridSpacing,
		limited:     limited,
		lowest:      lowest,
		highest:     highest,
	}
	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer creates the widget renderer.
func (p *FrequencyPane) CreateRenderer() fyne.WidgetRenderer {
	return newPaneRenderer(p, p.state)
}

// AddSeries registers a named spectrum series and returns its index.
func (p *FrequencyPane) AddSeries(name string, c color.RGBA) int {
	return p.state.AddSeries(name, c)
}

// SetSpectrum replaces the data of series index with a magnitude spectrum,
// clamped to the displayable band when limiting is on, and widens the
// magnitude range to cover it.
func (p *FrequencyPane) SetSpectrum(index int, freqsHz, magsDB []float64) error {
	p.mu.Lock()
	if len(freqsHz) > 0 && len(freqsHz) == len(magsDB) {
		fromIdx, toIdx := signal.ClampedRangeIndices(freqsHz, p.limited, p.lowest, p.highest)
		freqsHz = freqsHz[fromIdx : toIdx+1]
		magsDB = magsDB[fromIdx : toIdx+1]
	}
	p.updateMinMaxLocked(magsDB)
	p.mu.Unlock()

	if err := p.state.SetSeriesData(index, freqsHz, magsDB); err != nil {
		return err
	}

	p.Refresh()
	return nil
}

// SetImpulseResponse derives the magnitude spectrum of an impulse response
// and displays it as series index.
func (p *FrequencyPane) SetImpulseResponse(index int, amplitude []float64, sampleRateKHz float64) error {
	freqsHz, magsDB, err := signal.MagnitudeSpectrum(amplitude, sampleRateKHz)
	if err != nil {
		return err
	}
	return p.SetSpectrum(index, freqsHz, magsDB)
}

// MagnitudeRange returns the accumulated magnitude bounds in dB.
func (p *FrequencyPane) MagnitudeRange() (float64, float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.magMin, p.magMax
}

// ResetMagnitudeRange drops the accumulated bounds back to the defaults, so
// the next data set re-establishes the range.
func (p *FrequencyPane) ResetMagnitudeRange() {
	p.mu.Lock()
	p.hasRange = false
	p.magMax = DefaultMagnitudeMax
	p.magMin = DefaultMagnitudeMax - DefaultMagnitudeRange
	p.applyMagnitudeAxisLocked()
	p.mu.Unlock()

	p.Refresh()
}

// updateMinMaxLocked widens the magnitude bounds to cover magsDB, rounding
// outward to the grid spacing. Bounds never shrink between data sets.
// Caller holds p.mu.
func (p *FrequencyPane) updateMinMaxLocked(magsDB []float64) {
	if len(magsDB) == 0 {
		return
	}

	lo, hi := magsDB[0], magsDB[0]
	for _, m := range magsDB[1:] {
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}

	lo = math.Floor(lo/p.gridSpacing) * p.gridSpacing
	hi = math.Ceil(hi/p.gridSpacing) * p.gridSpacing
	if hi == lo {
		hi = lo + p.gridSpacing
	}

	if !p.hasRange {
		p.magMin, p.magMax = lo, hi
		p.hasRange = true
	} else {
		if lo < p.magMin {
			p.magMin = lo
		}
		if hi > p.magMax {
			p.magMax = hi
		}
	}

	p.applyMagnitudeAxisLocked()
}

// applyMagnitudeAxisLocked pushes the magnitude bounds and grid spacing to
// the y axis. Caller holds p.mu.
func (p *FrequencyPane) applyMagnitudeAxisLocked() {
	p.yAxis.Lower = p.magMin
	p.yAxis.Upper = p.magMax
	p.yAxis.TickUnit = p.gridSpacing
	p.yAxis.MinorCount = MinorTickDivisions(p.gridSpacing)
}

// SetVerticalGridSpacing sets the dB distance between horizontal grid
// lines; the minor subdivision follows the spacing.
func (p *FrequencyPane) SetVerticalGridSpacing(spacingDB float64) {
	if spacingDB <= 0 {
		return
	}

	p.mu.Lock()
	p.gridSpacing = spacingDB
	p.applyMagnitudeAxisLocked()
	p.mu.Unlock()

	p.Refresh()
}

// VerticalGridSpacing returns the dB distance between horizontal grid lines.
func (p *FrequencyPane) VerticalGridSpacing() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gridSpacing
}

// SetZoom applies a frequency band preset and retracks.
func (p *FrequencyPane) SetZoom(zoom FrequencyZoom) {
	p.mu.Lock()
	lower, upper := zoom.Range(p.lowest, p.highest)
	p.xAxis.Lower = math.Round(lower)
	p.xAxis.Upper = math.Round(upper)
	p.mu.Unlock()

	// The window follows the zoom so reduction and tracking stay in band.
	p.state.SetTimeRange(lower, upper)
	p.Refresh()
}

// Bounds returns the displayed frequency band in Hz.
func (p *FrequencyPane) Bounds() (float64, float64) {
	return p.xAxis.Bounds()
}

// SetActiveSeries selects the series the tracker follows.
func (p *FrequencyPane) SetActiveSeries(index int) {
	p.state.SetActiveSeries(index)
	p.Refresh()
}

// ActiveSeries returns the index the tracker follows.
func (p *FrequencyPane) ActiveSeries() int {
	return p.state.ActiveSeries()
}

// Track moves the tracker to queryHz and returns the located bin frequency.
func (p *FrequencyPane) Track(queryHz float64) (float64, bool) {
	located, ok := p.state.Track(queryHz)
	p.Refresh()
	return located, ok
}

// HideTracker removes the tracker from the pane.
func (p *FrequencyPane) HideTracker() {
	p.state.HideTracker()
	p.Refresh()
}

// SetSeriesVisible toggles drawing of series index.
func (p *FrequencyPane) SetSeriesVisible(index int, visible bool) {
	p.state.SetSeriesVisible(index, visible)
	p.Refresh()
}

// IsSeriesValid reports whether series index holds a displayable trace.
func (p *FrequencyPane) IsSeriesValid(index int) bool {
	return p.state.IsSeriesValid(index)
}

// SetEpsilon sets the delta-filter threshold; zero disables filtering.
func (p *FrequencyPane) SetEpsilon(epsilon float64) error {
	if err := p.state.SetEpsilon(epsilon); err != nil {
		return err
	}
	p.Refresh()
	return nil
}

// SetGridResolution sets the grid density.
func (p *FrequencyPane) SetGridResolution(grid GridResolution) {
	p.state.SetGridResolution(grid)
	p.Refresh()
}
