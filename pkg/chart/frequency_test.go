package chart

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyPane_Defaults(t *testing.T) {
	p := NewFrequencyPane(0, 0, true)

	lower, upper := p.Bounds()
	assert.Equal(t, 15.0, lower)
	assert.Equal(t, 20000.0, upper)

	magMin, magMax := p.MagnitudeRange()
	assert.Equal(t, DefaultMagnitudeMax, magMax)
	assert.Equal(t, DefaultMagnitudeMax-DefaultMagnitudeRange, magMin)
	assert.Equal(t, DefaultVerticalGridSpacing, p.VerticalGridSpacing())
}

func TestFrequencyPane_SetSpectrumClampsToBand(t *testing.T) {
	p := NewFrequencyPane(15, 20000, true)
	idx := p.AddSeries("measured", color.RGBA{G: 255, A: 255})

	freqs := []float64{10, 100, 1000, 30000}
	mags := []float64{-90, 22, 38, 90}
	require.NoError(t, p.SetSpectrum(idx, freqs, mags))

	// Bins at 10 Hz and 30 kHz are outside the band, so the magnitude
	// range is established from the in-band bins only, rounded outward
	// to the grid spacing.
	magMin, magMax := p.MagnitudeRange()
	assert.Equal(t, 20.0, magMin)
	assert.Equal(t, 40.0, magMax)
}

func TestFrequencyPane_MagnitudeRangeIsCumulative(t *testing.T) {
	p := NewFrequencyPane(15, 20000, false)
	a := p.AddSeries("a", color.RGBA{G: 255, A: 255})
	b := p.AddSeries("b", color.RGBA{B: 255, A: 255})

	require.NoError(t, p.SetSpectrum(a, []float64{100, 200, 400}, []float64{52, 68, 61}))
	magMin, magMax := p.MagnitudeRange()
	assert.Equal(t, 50.0, magMin)
	assert.Equal(t, 70.0, magMax)

	// A narrower data set must not shrink the range.
	require.NoError(t, p.SetSpectrum(b, []float64{100, 200, 400}, []float64{58, 62, 60}))
	magMin, magMax = p.MagnitudeRange()
	assert.Equal(t, 50.0, magMin)
	assert.Equal(t, 70.0, magMax)

	// A wider one widens it.
	require.NoError(t, p.SetSpectrum(b, []float64{100, 200, 400}, []float64{42, 88, 60}))
	magMin, magMax = p.MagnitudeRange()
	assert.Equal(t, 40.0, magMin)
	assert.Equal(t, 90.0, magMax)
}

func TestFrequencyPane_ResetMagnitudeRange(t *testing.T) {
	p := NewFrequencyPane(15, 20000, false)
	idx := p.AddSeries("a", color.RGBA{G: 255, A: 255})
	require.NoError(t, p.SetSpectrum(idx, []float64{100, 200}, []float64{10, 20}))

	p.ResetMagnitudeRange()
	magMin, magMax := p.MagnitudeRange()
	assert.Equal(t, DefaultMagnitudeMax, magMax)
	assert.Equal(t, DefaultMagnitudeMax-DefaultMagnitudeRange, magMin)
}

func TestFrequencyPane_SetZoom(t *testing.T) {
	p := NewFrequencyPane(15, 20000, true)

	p.SetZoom(ZoomMid)
	lower, upper := p.Bounds()
	assert.Equal(t, 200.0, lower)
	assert.Equal(t, 2000.0, upper)

	p.SetZoom(ZoomFull)
	lower, upper = p.Bounds()
	assert.Equal(t, 15.0, lower)
	assert.Equal(t, 20000.0, upper)
}

func TestFrequencyZoom_Range(t *testing.T) {
	tests := []struct {
		zoom         FrequencyZoom
		lower, upper float64
	}{
		{ZoomFull, 15, 20000},
		{ZoomLow, 15, 200},
		{ZoomLowMid, 60, 600},
		{ZoomMid, 200, 2000},
		{ZoomMidHigh, 600, 6000},
		{ZoomHigh, 2000, 20000},
	}
	for _, tt := range tests {
		t.Run(tt.zoom.String(), func(t *testing.T) {
			lower, upper := tt.zoom.Range(15, 20000)
			assert.Equal(t, tt.lower, lower)
			assert.Equal(t, tt.upper, upper)
		})
	}
}

func TestFrequencyPane_SetImpulseResponse(t *testing.T) {
	p := NewFrequencyPane(15, 20000, true)
	idx := p.AddSeries("measured", color.RGBA{G: 255, A: 255})

	// 1 kHz sine at 8 kHz sample rate.
	amplitude := make([]float64, 256)
	for i := range amplitude {
		amplitude[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 8000)
	}
	require.NoError(t, p.SetImpulseResponse(idx, amplitude, 8))
	assert.True(t, p.IsSeriesValid(idx))
}

func TestMinorTickDivisions(t *testing.T) {
	assert.Equal(t, 6, MinorTickDivisions(6))
	assert.Equal(t, 5, MinorTickDivisions(10))
	assert.Equal(t, 4, MinorTickDivisions(12))
	assert.Equal(t, 0, MinorTickDivisions(7))
}

func TestFrequencyPane_SetVerticalGridSpacing(t *testing.T) {
	p := NewFrequencyPane(15, 20000, true)

	p.SetVerticalGridSpacing(6)
	assert.Equal(t, 6.0, p.VerticalGridSpacing())
	assert.Equal(t, 6.0, p.yAxis.TickUnit)
	assert.Equal(t, 6, p.yAxis.MinorCount)

	// Non-positive spacing is ignored.
	p.SetVerticalGridSpacing(0)
	assert.Equal(t, 6.0, p.VerticalGridSpacing())
}

func TestGridResolution_ShowsTick(t *testing.T) {
	assert.False(t, GridOff.showsTick(false))
	assert.False(t, GridOff.showsTick(true))
	assert.True(t, GridCoarse.showsTick(false))
	assert.False(t, GridCoarse.showsTick(true))
	assert.True(t, GridMedium.showsTick(true))
	assert.True(t, GridFine.showsTick(true))
}
