package chart

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/mhschmieder/fxchart/pkg/axis"
	"github.com/mhschmieder/fxchart/pkg/trace"
)

// TimeSeriesPane is a generic chart pane over arbitrary sampled data. The
// impulse and frequency panes add domain behavior on top of the same state
// manager and renderer.
type TimeSeriesPane struct {
	widget.BaseWidget

	state *State
}

// NewTimeSeriesPane creates a pane whose original time range is [start, end]
// milliseconds, with the given y axis.
func NewTimeSeriesPane(start, end float64, yAxis axis.Axis) *TimeSeriesPane {
	p := &TimeSeriesPane{
		state: NewState(axis.NewTime(start, end, "Time (ms)"), yAxis, start, end),
	}
	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer creates the widget renderer.
func (p *TimeSeriesPane) CreateRenderer() fyne.WidgetRenderer {
	return newPaneRenderer(p, p.state)
}

// OriginalRange returns the range fixed at construction.
func (p *TimeSeriesPane) OriginalRange() (float64, float64) {
	return p.state.OriginalRange()
}

// TimeRange returns the displayed window.
func (p *TimeSeriesPane) TimeRange() (float64, float64) {
	return p.state.TimeRange()
}

// SetTimeRange moves the displayed window and redraws.
func (p *TimeSeriesPane) SetTimeRange(start, end float64) {
	p.state.SetTimeRange(start, end)
	p.Refresh()
}

// SetEpsilon sets the delta-filter threshold; zero disables filtering.
func (p *TimeSeriesPane) SetEpsilon(epsilon float64) error {
	if err := p.state.SetEpsilon(epsilon); err != nil {
		return err
	}
	p.Refresh()
	return nil
}

// AddSeries registers a named series and returns its index.
func (p *TimeSeriesPane) AddSeries(name string, c color.RGBA) int {
	return p.state.AddSeries(name, c)
}

// SetSeriesData replaces the data of series index and redraws.
func (p *TimeSeriesPane) SetSeriesData(index int, x, y []float64) error {
	if err := p.state.SetSeriesData(index, x, y); err != nil {
		return err
	}
	p.Refresh()
	return nil
}

// SetSeriesVisible toggles drawing of series index.
func (p *TimeSeriesPane) SetSeriesVisible(index int, visible bool) {
	p.state.SetSeriesVisible(index, visible)
	p.Refresh()
}

// IsSeriesValid reports whether series index holds a displayable trace.
func (p *TimeSeriesPane) IsSeriesValid(index int) bool {
	return p.state.IsSeriesValid(index)
}

// SeriesTrace returns a copy of the reduced trace of series index.
func (p *TimeSeriesPane) SeriesTrace(index int) []trace.Point {
	return p.state.SeriesTrace(index)
}

// SetActiveSeries selects the series the tracker follows.
func (p *TimeSeriesPane) SetActiveSeries(index int) {
	p.state.SetActiveSeries(index)
	p.Refresh()
}

// ActiveSeries returns the index the tracker follows.
func (p *TimeSeriesPane) ActiveSeries() int {
	return p.state.ActiveSeries()
}

// Track moves the tracker to queryX and returns the located sample time.
func (p *TimeSeriesPane) Track(queryX float64) (float64, bool) {
	located, ok := p.state.Track(queryX)
	p.Refresh()
	return located, ok
}

// HideTracker removes the tracker from the pane.
func (p *TimeSeriesPane) HideTracker() {
	p.state.HideTracker()
	p.Refresh()
}

// SetGridResolution sets the grid density.
func (p *TimeSeriesPane) SetGridResolution(grid GridResolution) {
	p.state.SetGridResolution(grid)
	p.Refresh()
}
