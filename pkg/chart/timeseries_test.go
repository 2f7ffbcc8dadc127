package chart

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhschmieder/fxchart/pkg/axis"
)

func TestNewTimeSeriesPane(t *testing.T) {
	p := NewTimeSeriesPane(0, 100, axis.NewNormalizedAmplitude())
	require.NotNil(t, p)

	start, end := p.OriginalRange()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 100.0, end)

	start, end = p.TimeRange()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 100.0, end)
}

func TestTimeSeriesPane_SeriesLifecycle(t *testing.T) {
	p := NewTimeSeriesPane(0, 10, axis.NewNormalizedAmplitude())

	idx := p.AddSeries("measured", color.RGBA{R: 255, A: 255})
	assert.Equal(t, 0, idx)
	assert.False(t, p.IsSeriesValid(idx))

	x, y := rampData(11)
	require.NoError(t, p.SetSeriesData(idx, x, y))
	assert.True(t, p.IsSeriesValid(idx))

	// Retained samples plus the four boundary sentinels.
	tr := p.SeriesTrace(idx)
	assert.Len(t, tr, len(x)-2+4)
}

func TestTimeSeriesPane_TrackAndWindow(t *testing.T) {
	p := NewTimeSeriesPane(0, 10, axis.NewNormalizedAmplitude())
	idx := p.AddSeries("measured", color.RGBA{R: 255, A: 255})
	x, y := rampData(11)
	require.NoError(t, p.SetSeriesData(idx, x, y))
	p.SetActiveSeries(idx)

	located, ok := p.Track(5.2)
	require.True(t, ok)
	assert.Equal(t, 5.0, located)

	// Shrinking the window past the tracker drops the tracking value.
	p.SetTimeRange(7, 9)
	_, ok = p.Track(5.2)
	assert.False(t, ok)

	p.HideTracker()
	_, ok = p.state.TrackerValue()
	assert.False(t, ok)
}

func TestTimeSeriesPane_SetEpsilonRejectsNegative(t *testing.T) {
	p := NewTimeSeriesPane(0, 10, axis.NewNormalizedAmplitude())
	require.Error(t, p.SetEpsilon(-0.5))
	require.NoError(t, p.SetEpsilon(0.25))
}
