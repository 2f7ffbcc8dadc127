package chart

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/mhschmieder/fxchart/pkg/axis"
	"github.com/mhschmieder/fxchart/pkg/signal"
	"github.com/mhschmieder/fxchart/pkg/trace"
)

// ImpulsePane displays impulse responses on a normalized [-1, 1] amplitude
// axis. It keeps the raw captures so that delay compensation can be
// reapplied, and its tracker snaps to the peak of the active response when
// the cursor is close enough.
type ImpulsePane struct {
	widget.BaseWidget

	state *State

	mu            sync.RWMutex
	sampleRateKHz float64
	divisor       float64
	delayMs       float64
	raw           [][]float64
}

// NewImpulsePane creates a pane whose record spans [start, end] milliseconds
// at the given sample rate. resolutionDivisor controls the peak-snap
// tolerance of the tracker.
func NewImpulsePane(start, end, sampleRateKHz, resolutionDivisor float64) *ImpulsePane {
	p := &ImpulsePane{
		state: NewState(axis.NewTime(start, end, "Time (ms)"),
			axis.NewNormalizedAmplitude(), start, end),
		sampleRateKHz: sampleRateKHz,
		divisor:       resolutionDivisor,
	}
	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer creates the widget renderer.
func (p *ImpulsePane) CreateRenderer() fyne.WidgetRenderer {
	return newPaneRenderer(p, p.state)
}

// AddTrace registers a named response trace and returns its index. Index 0
// is conventionally the reference response.
func (p *ImpulsePane) AddTrace(name string, c color.RGBA) int {
	p.mu.Lock()
	p.raw = append(p.raw, nil)
	p.mu.Unlock()
	return p.state.AddSeries(name, c)
}

// SetAmplitudes replaces the raw capture of trace index and redraws. The
// current delay compensation is applied before display.
func (p *ImpulsePane) SetAmplitudes(index int, amplitude []float64) error {
	p.mu.Lock()
	if index >= 0 && index < len(p.raw) {
		p.raw[index] = append(p.raw[index][:0], amplitude...)
	}
	err := p.applyLocked(index)
	p.mu.Unlock()
	if err != nil {
		return err
	}

	p.Refresh()
	return nil
}

// SetDelay sets the propagation delay compensation in milliseconds and
// reapplies it to every trace.
func (p *ImpulsePane) SetDelay(delayMs float64) error {
	p.mu.Lock()
	p.delayMs = delayMs
	var firstErr error
	for i := range p.raw {
		if err := p.applyLocked(i); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.mu.Unlock()
	if firstErr != nil {
		return firstErr
	}

	p.Refresh()
	return nil
}

// Delay returns the delay compensation in milliseconds.
func (p *ImpulsePane) Delay() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.delayMs
}

// applyLocked pushes the delay-shifted capture of trace index into the
// state manager and refreshes the peak-snap tracker. Caller holds p.mu.
func (p *ImpulsePane) applyLocked(index int) error {
	if index < 0 || index >= len(p.raw) || len(p.raw[index]) == 0 {
		return nil
	}

	shifted := signal.AdjustDelay(p.raw[index], p.delayMs, p.sampleRateKHz)

	start, _ := p.state.OriginalRange()
	increments := make([]float64, len(shifted))
	for i := range increments {
		increments[i] = start + float64(i)/p.sampleRateKHz
	}

	if err := p.state.SetSeriesData(index, increments, shifted); err != nil {
		return err
	}

	if index == p.state.ActiveSeries() {
		p.updateTieBreakLocked(shifted, increments)
	}
	return nil
}

// updateTieBreakLocked rebuilds the peak-snap tie-break around the peak of
// the active response. Caller holds p.mu.
func (p *ImpulsePane) updateTieBreakLocked(amplitude, increments []float64) {
	peakTime, ok := signal.PeakTime(amplitude, increments)
	if !ok {
		p.state.SetTieBreak(nil)
		return
	}
	start, end := p.state.TimeRange()
	p.state.SetTieBreak(trace.PeakSnap(peakTime, start, end, p.sampleRateKHz, p.divisor))
}

// PeakTime returns the arrival time of the peak of trace index, after delay
// compensation.
func (p *ImpulsePane) PeakTime(index int) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if index < 0 || index >= len(p.raw) || len(p.raw[index]) == 0 {
		return 0, false
	}
	shifted := signal.AdjustDelay(p.raw[index], p.delayMs, p.sampleRateKHz)

	start, _ := p.state.OriginalRange()
	increments := make([]float64, len(shifted))
	for i := range increments {
		increments[i] = start + float64(i)/p.sampleRateKHz
	}
	return signal.PeakTime(shifted, increments)
}

// SetAnalysisTimeEdge sets a window symmetric about zero: [-edgeMs, edgeMs].
func (p *ImpulsePane) SetAnalysisTimeEdge(edgeMs float64) {
	p.SetTimeRange(-edgeMs, edgeMs)
}

// SetTimeRange moves the displayed window. The peak-snap tolerance follows
// the window span, so the tie-break is rebuilt as well.
func (p *ImpulsePane) SetTimeRange(start, end float64) {
	p.state.SetTimeRange(start, end)

	p.mu.Lock()
	p.refreshActiveTieBreakLocked()
	p.mu.Unlock()

	p.Refresh()
}

// SetActiveSeries selects the trace the tracker follows and rebinds the
// peak snap to its peak.
func (p *ImpulsePane) SetActiveSeries(index int) {
	p.state.SetActiveSeries(index)

	p.mu.Lock()
	p.refreshActiveTieBreakLocked()
	p.mu.Unlock()

	p.Refresh()
}

// refreshActiveTieBreakLocked recomputes the tie-break for the currently
// active trace. Caller holds p.mu.
func (p *ImpulsePane) refreshActiveTieBreakLocked() {
	index := p.state.ActiveSeries()
	if index < 0 || index >= len(p.raw) || len(p.raw[index]) == 0 {
		p.state.SetTieBreak(nil)
		return
	}

	shifted := signal.AdjustDelay(p.raw[index], p.delayMs, p.sampleRateKHz)
	start, _ := p.state.OriginalRange()
	increments := make([]float64, len(shifted))
	for i := range increments {
		increments[i] = start + float64(i)/p.sampleRateKHz
	}
	p.updateTieBreakLocked(shifted, increments)
}

// ActiveSeries returns the index the tracker follows.
func (p *ImpulsePane) ActiveSeries() int {
	return p.state.ActiveSeries()
}

// TimeRange returns the displayed window.
func (p *ImpulsePane) TimeRange() (float64, float64) {
	return p.state.TimeRange()
}

// OriginalRange returns the record span fixed at construction.
func (p *ImpulsePane) OriginalRange() (float64, float64) {
	return p.state.OriginalRange()
}

// SetEpsilon sets the delta-filter threshold; zero disables filtering.
func (p *ImpulsePane) SetEpsilon(epsilon float64) error {
	if err := p.state.SetEpsilon(epsilon); err != nil {
		return err
	}
	p.Refresh()
	return nil
}

// Track moves the tracker to queryX milliseconds and returns the located
// sample time, snapped to the response peak when within tolerance.
func (p *ImpulsePane) Track(queryX float64) (float64, bool) {
	located, ok := p.state.Track(queryX)
	p.Refresh()
	return located, ok
}

// HideTracker removes the tracker from the pane.
func (p *ImpulsePane) HideTracker() {
	p.state.HideTracker()
	p.Refresh()
}

// SetSeriesVisible toggles drawing of trace index.
func (p *ImpulsePane) SetSeriesVisible(index int, visible bool) {
	p.state.SetSeriesVisible(index, visible)
	p.Refresh()
}

// IsSeriesValid reports whether trace index holds a displayable trace.
func (p *ImpulsePane) IsSeriesValid(index int) bool {
	return p.state.IsSeriesValid(index)
}

// SeriesTrace returns a copy of the reduced display trace of trace index.
func (p *ImpulsePane) SeriesTrace(index int) []trace.Point {
	return p.state.SeriesTrace(index)
}

// SetGridResolution sets the grid density.
func (p *ImpulsePane) SetGridResolution(grid GridResolution) {
	p.state.SetGridResolution(grid)
	p.Refresh()
}
