package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_SelfMatch(t *testing.T) {
	increments := []float64{0, 1, 2, 3, 4, 5}

	// A query exactly on a sample returns that sample.
	for k := 0; k < 5; k++ {
		value, ok := Locate(increments[k], increments, 0, 4, nil)
		require.True(t, ok)
		assert.Equal(t, increments[k], value)
	}
}

func TestLocate_NearestNeighbor(t *testing.T) {
	increments := []float64{0, 10, 20, 30}

	value, ok := Locate(12.0, increments, 0, 2, Nearest)
	require.True(t, ok)
	assert.Equal(t, 10.0, value)

	value, ok = Locate(18.0, increments, 0, 2, Nearest)
	require.True(t, ok)
	assert.Equal(t, 20.0, value)

	// Exact midpoint favors the earlier sample.
	value, ok = Locate(15.0, increments, 0, 2, Nearest)
	require.True(t, ok)
	assert.Equal(t, 10.0, value)
}

func TestLocate_OutOfRange(t *testing.T) {
	increments := []float64{0, 1, 2, 3}

	_, ok := Locate(-0.5, increments, 0, 2, nil)
	assert.False(t, ok)

	_, ok = Locate(3.5, increments, 0, 2, nil)
	assert.False(t, ok)
}

func TestLocate_RejectsBadIndexRange(t *testing.T) {
	increments := []float64{0, 1, 2, 3}

	_, ok := Locate(1.0, increments, -1, 2, nil)
	assert.False(t, ok)

	_, ok = Locate(1.0, increments, 2, 1, nil)
	assert.False(t, ok)

	// maxIndex must leave room for increments[maxIndex+1].
	_, ok = Locate(1.0, increments, 0, 3, nil)
	assert.False(t, ok)
}

func TestPeakSnap_SnapsInsideToleranceBand(t *testing.T) {
	// Window of 1500 time units over a 1 kHz sample rate: tolerance is
	// (1500/15000) / (1/1) = 0.1.
	tieBreak := PeakSnap(5.0, 0, 1500, 1.0, 15000)

	// distanceToPeak(0.2) - tolerance(0.1) = 0.1 <= min(0.3, 0.1): snap.
	value := tieBreak(5.2, 4.9, 0.3, 5.3, 0.1)
	assert.Equal(t, 5.0, value)
}

func TestPeakSnap_FallsBackToNearestOutsideBand(t *testing.T) {
	tieBreak := PeakSnap(50.0, 0, 1500, 1.0, 15000)

	// Far from the peak: plain nearest-neighbor applies.
	value := tieBreak(5.2, 4.9, 0.3, 5.3, 0.1)
	assert.Equal(t, 5.3, value)

	value = tieBreak(5.0, 4.9, 0.1, 5.3, 0.3)
	assert.Equal(t, 4.9, value)
}

func TestLocate_PeakSnapEndToEnd(t *testing.T) {
	increments := make([]float64, 101)
	for i := range increments {
		increments[i] = float64(i)
	}

	// Peak at t=42; query lands between samples 41 and 42 but closer to 41.
	// Tolerance is (100/15000)/(1/48) = 0.32, wide enough to snap.
	tieBreak := PeakSnap(42.0, 0, 100, 48.0, 15000)
	value, ok := Locate(41.4, increments, 0, 99, tieBreak)
	require.True(t, ok)
	assert.Equal(t, 42.0, value)
}
