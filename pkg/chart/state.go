// Package chart provides Fyne chart panes for sampled acoustic data: a
// generic time-series pane, an impulse-response pane, and a frequency-series
// pane. All panes share one range/state manager that owns the time window,
// the reduced display traces, and the data tracker.
package chart

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/mhschmieder/fxchart/pkg/axis"
	"github.com/mhschmieder/fxchart/pkg/trace"
)

type seriesState struct {
	name    string
	color   color.RGBA
	visible bool

	// Full-resolution data; the reduced trace is what gets drawn.
	x, y  []float64
	trace []trace.Point
	valid bool
}

// State is the range and data manager behind a chart pane. The original
// time range is fixed at construction; the displayed window moves within it.
// All mutations recompute the affected traces and the tracker synchronously,
// so callers see consistent state as soon as a setter returns.
type State struct {
	mu sync.RWMutex

	xAxis axis.Axis
	yAxis axis.Axis

	originalStart, originalEnd float64
	startTime, endTime         float64

	epsilon      float64
	activeSeries int
	tieBreak     trace.TieBreak
	grid         GridResolution

	series []seriesState

	trackerX       float64
	trackerValue   float64
	trackerY       float64
	trackerHasY    bool
	trackerValid   bool
	trackerVisible bool
}

// NewState creates a state manager whose original range is [start, end].
func NewState(xAxis, yAxis axis.Axis, start, end float64) *State {
	return &State{
		xAxis:         xAxis,
		yAxis:         yAxis,
		originalStart: start,
		originalEnd:   end,
		startTime:     start,
		endTime:       end,
		grid:          DefaultGridResolution,
	}
}

// OriginalRange returns the range fixed at construction.
func (s *State) OriginalRange() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.originalStart, s.originalEnd
}

// TimeRange returns the displayed window.
func (s *State) TimeRange() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startTime, s.endTime
}

// SetTimeRange moves the displayed window, recomputes the proportional tick
// unit on the time axis, re-reduces every series, and retracks. Everything
// happens before the call returns.
func (s *State) SetTimeRange(start, end float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.startTime = start
	s.endTime = end

	if lin, ok := s.xAxis.(*axis.Linear); ok {
		lin.Lower = start
		lin.Upper = end
		lin.TickUnit = axis.TimeTickUnit(start, end)
	}

	s.reduceAllLocked()
	s.retrackLocked()
}

// Epsilon returns the delta-filter threshold.
func (s *State) Epsilon() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epsilon
}

// SetEpsilon sets the delta-filter threshold; zero disables filtering.
func (s *State) SetEpsilon(epsilon float64) error {
	if epsilon < 0 {
		return fmt.Errorf("negative epsilon: %g", epsilon)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.epsilon = epsilon
	s.reduceAllLocked()
	return nil
}

// ActiveSeries returns the index the tracker follows.
func (s *State) ActiveSeries() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeSeries
}

// SetActiveSeries selects the series the tracker follows. The index is taken
// as-is; a reference to a series that does not exist yet simply leaves the
// tracker without a result until data arrives.
func (s *State) SetActiveSeries(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSeries = index
	s.retrackLocked()
}

// SetTieBreak installs the tracker tie-break; nil selects nearest-neighbor.
func (s *State) SetTieBreak(tieBreak trace.TieBreak) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tieBreak = tieBreak
	s.retrackLocked()
}

// GridResolution returns the grid density.
func (s *State) GridResolution() GridResolution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid
}

// SetGridResolution sets the grid density.
func (s *State) SetGridResolution(grid GridResolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = grid
}

// AddSeries registers a named series and returns its index.
func (s *State) AddSeries(name string, c color.RGBA) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = append(s.series, seriesState{
		name:    name,
		color:   c,
		visible: true,
	})
	return len(s.series) - 1
}

// SeriesCount returns the number of registered series.
func (s *State) SeriesCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series)
}

// SeriesName returns the name of series index, or "" when out of range.
func (s *State) SeriesName(index int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.series) {
		return ""
	}
	return s.series[index].name
}

// SetSeriesData replaces the data of series index and re-reduces it. x must
// be ascending sample times; y the matching values.
func (s *State) SetSeriesData(index int, x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("length mismatch: %d x values, %d y values", len(x), len(y))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.series) {
		return fmt.Errorf("series index %d out of range [0, %d)", index, len(s.series))
	}

	ser := &s.series[index]
	ser.x = append(ser.x[:0], x...)
	ser.y = append(ser.y[:0], y...)
	s.reduceLocked(ser)
	if index == s.activeSeries {
		s.retrackLocked()
	}
	return nil
}

// IsSeriesValid reports whether series index holds a displayable trace.
func (s *State) IsSeriesValid(index int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.series) {
		return false
	}
	return s.series[index].valid
}

// SetSeriesVisible toggles drawing of series index.
func (s *State) SetSeriesVisible(index int, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.series) {
		return
	}
	s.series[index].visible = visible
}

// SeriesTrace returns a copy of the reduced trace of series index.
func (s *State) SeriesTrace(index int) []trace.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.series) {
		return nil
	}
	result := make([]trace.Point, len(s.series[index].trace))
	copy(result, s.series[index].trace)
	return result
}

// Track moves the tracker to queryX and returns the located sample time.
// The second result is false when no bracketing pair exists in the window.
func (s *State) Track(queryX float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackerX = queryX
	s.trackerVisible = true
	return s.locateLocked()
}

// HideTracker removes the tracker from the pane.
func (s *State) HideTracker() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackerVisible = false
	s.trackerValid = false
}

// TrackerValue returns the located sample time of the visible tracker.
func (s *State) TrackerValue() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.trackerVisible || !s.trackerValid {
		return 0, false
	}
	return s.trackerValue, true
}

// reduceAllLocked re-reduces every series against the current window.
func (s *State) reduceAllLocked() {
	for i := range s.series {
		s.reduceLocked(&s.series[i])
	}
}

// reduceLocked recomputes the display trace of one series. A series whose
// data cannot be reduced against the window is marked invalid and skipped
// by the renderer rather than drawn stale.
func (s *State) reduceLocked(ser *seriesState) {
	ser.valid = false
	ser.trace = nil

	first, last := windowIndices(ser.x, s.startTime, s.endTime)
	if first < 0 || last < 0 || first >= last {
		return
	}

	reduced, err := trace.Reduce(ser.x, ser.y, first, last, s.epsilon,
		s.originalStart, s.originalEnd)
	if err != nil {
		return
	}

	ser.trace = reduced
	ser.valid = true
}

// retrackLocked refreshes the tracker result against current data.
func (s *State) retrackLocked() {
	if !s.trackerVisible {
		return
	}
	s.locateLocked()
}

func (s *State) locateLocked() (float64, bool) {
	s.trackerValid = false
	s.trackerHasY = false

	if s.activeSeries < 0 || s.activeSeries >= len(s.series) {
		return 0, false
	}
	ser := &s.series[s.activeSeries]
	if len(ser.x) < 2 {
		return 0, false
	}

	first, last := windowIndices(ser.x, s.startTime, s.endTime)
	if first < 0 || last < 0 {
		return 0, false
	}
	maxIndex := last
	if maxIndex > len(ser.x)-2 {
		maxIndex = len(ser.x) - 2
	}
	if first > maxIndex {
		return 0, false
	}

	located, ok := trace.Locate(s.trackerX, ser.x, first, maxIndex, s.tieBreak)
	if !ok {
		return 0, false
	}

	s.trackerValue = located
	s.trackerValid = true
	for i := first; i <= last; i++ {
		if ser.x[i] == located {
			s.trackerY = ser.y[i]
			s.trackerHasY = true
			break
		}
	}
	return located, true
}

// windowIndices returns the first and last sample indices inside
// [start, end], or (-1, -1) when the window covers no samples.
func windowIndices(x []float64, start, end float64) (int, int) {
	first, last := -1, -1
	for i, v := range x {
		if v >= start {
			first = i
			break
		}
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] <= end {
			last = i
			break
		}
	}
	if first < 0 || last < 0 || first > last {
		return -1, -1
	}
	return first, last
}
