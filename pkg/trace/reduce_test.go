package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_DeltaFilter(t *testing.T) {
	// Single transient at i=2; the flat run at i=3 is dropped.
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{0, 0, 5, 5, 0, 0}

	result, err := Reduce(x, y, 1, 4, 1.0, -10.0, 10.0)
	require.NoError(t, err)
	require.Equal(t, 5, len(result))

	assert.Equal(t, Point{X: 2, Y: 5}, result[0])

	// Sentinels in fixed order: original start, lead-in, lead-out, original end.
	assert.Equal(t, Point{X: -10.0, Y: 0}, result[1])
	assert.Equal(t, Point{X: 1, Y: 0}, result[2])
	assert.Equal(t, Point{X: 3, Y: 0}, result[3])
	assert.Equal(t, Point{X: 10.0, Y: 0}, result[4])
}

func TestReduce_ZeroEpsilonRetainsEverything(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6}
	y := []float64{0, 0, 0, 0, 0, 0, 0}

	result, err := Reduce(x, y, 1, 5, 0, 0, 6)
	require.NoError(t, err)

	// Every sample in (first, last) plus the four sentinels.
	require.Equal(t, 3+4, len(result))
	assert.Equal(t, Point{X: 2, Y: 0}, result[0])
	assert.Equal(t, Point{X: 3, Y: 0}, result[1])
	assert.Equal(t, Point{X: 4, Y: 0}, result[2])
}

func TestReduce_LargeEpsilonKeepsOnlySentinels(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{0, 0.1, 0.2, 0.1, 0.0, 0.1}

	result, err := Reduce(x, y, 1, 4, 100.0, 0, 5)
	require.NoError(t, err)
	require.Equal(t, 4, len(result))

	// Nothing retained: both inner sentinels collapse around the first index.
	assert.Equal(t, Point{X: 0, Y: 0}, result[0])
	assert.Equal(t, Point{X: x[0], Y: 0}, result[1])
	assert.Equal(t, Point{X: x[2], Y: 0}, result[2])
	assert.Equal(t, Point{X: 5, Y: 0}, result[3])
}

func TestReduce_ClampsSentinelIndicesAtDataBounds(t *testing.T) {
	// first == 0 with nothing retained would index x[-1] without clamping.
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 0, 0, 0}

	result, err := Reduce(x, y, 0, 3, 100.0, -1, 4)
	require.NoError(t, err)
	require.Equal(t, 4, len(result))
	assert.Equal(t, Point{X: x[0], Y: 0}, result[1])
	assert.Equal(t, Point{X: x[1], Y: 0}, result[2])

	// Retained sample at the end of the range: trail sentinel stays in bounds.
	y2 := []float64{0, 0, 9, 0}
	result, err = Reduce(x, y2, 0, 3, 1.0, -1, 4)
	require.NoError(t, err)
	require.Equal(t, 1+4, len(result))
	assert.Equal(t, Point{X: 2, Y: 9}, result[0])
	assert.Equal(t, Point{X: x[1], Y: 0}, result[2])
	assert.Equal(t, Point{X: x[3], Y: 0}, result[3])
}

func TestReduce_OutputLengthIsRetainedPlusFour(t *testing.T) {
	x := make([]float64, 100)
	y := make([]float64, 100)
	for i := range x {
		x[i] = float64(i)
		if i%10 == 0 {
			y[i] = 1.0
		}
	}

	result, err := Reduce(x, y, 1, 99, 0.5, 0, 99)
	require.NoError(t, err)

	retained := 0
	for i := 2; i < 99; i++ {
		if abs := y[i] - y[i-1]; abs > 0.5 || abs < -0.5 {
			retained++
		}
	}
	assert.Equal(t, retained+4, len(result))
}

func TestReduce_Idempotent(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	y := []float64{0, 0.5, -0.2, 0.9, 0.9, -1.0, 0.1, 0}

	first, err := Reduce(x, y, 1, 6, 0.3, 0, 7)
	require.NoError(t, err)
	second, err := Reduce(x, y, 1, 6, 0.3, 0, 7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReduce_RejectsInvalidInput(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 3}

	tests := []struct {
		name    string
		x, y    []float64
		first   int
		last    int
		epsilon float64
	}{
		{"mismatched lengths", x, y[:3], 0, 2, 0},
		{"negative epsilon", x, y, 0, 3, -1},
		{"first equals last", x, y, 2, 2, 0},
		{"first after last", x, y, 3, 1, 0},
		{"negative first", x, y, -1, 3, 0},
		{"last out of bounds", x, y, 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Reduce(tt.x, tt.y, tt.first, tt.last, tt.epsilon, 0, 3)
			require.Error(t, err)
			assert.Nil(t, result)
		})
	}
}
