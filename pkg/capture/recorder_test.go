package capture

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweepSamples(start time.Time, amplitudes []float64) []Sample {
	samples := make([]Sample, len(amplitudes))
	for i, a := range amplitudes {
		samples[i] = Sample{
			Timestamp: start.Add(time.Duration(i) * time.Millisecond),
			Sequence:  uint32(i),
			Amplitude: a,
		}
	}
	return samples
}

func TestNewRecorder(t *testing.T) {
	r := NewRecorder(128)
	assert.NotNil(t, r)
	assert.Empty(t, r.Amplitudes())
}

func TestNewRecorder_DefaultMax(t *testing.T) {
	r := NewRecorder(0)
	assert.Equal(t, DefaultBufferSize, r.maxSamples)
}

func TestRecorder_CompletesSweepOnSequenceReset(t *testing.T) {
	r := NewRecorder(128)

	now := time.Now()
	first := sweepSamples(now, []float64{0.1, 0.2, 0.3})
	for _, s := range first {
		r.processSample(s)
	}

	// The sweep in flight is not visible yet.
	assert.Empty(t, r.Amplitudes())

	// A sequence reset completes the previous sweep.
	r.processSample(Sample{Timestamp: now.Add(time.Second), Sequence: 0, Amplitude: 0.5})
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, r.Amplitudes())
}

func TestRecorder_ForceCompletesAtMaxSamples(t *testing.T) {
	r := NewRecorder(4)

	now := time.Now()
	for _, s := range sweepSamples(now, []float64{0.1, 0.2, 0.3, 0.4}) {
		r.processSample(s)
	}

	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, r.Amplitudes())
}

func TestRecorder_OnUpdate(t *testing.T) {
	r := NewRecorder(128)

	var mu sync.Mutex
	var got [][]float64
	r.OnUpdate(func(amplitudes []float64) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, amplitudes)
	})

	input := make(chan Sample, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.ProcessSamples(input)
	}()

	now := time.Now()
	for _, s := range sweepSamples(now, []float64{0.1, 0.2}) {
		input <- s
	}
	for _, s := range sweepSamples(now.Add(time.Second), []float64{0.3, 0.4}) {
		input <- s
	}
	close(input)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ProcessSamples did not return after input closed")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, []float64{0.1, 0.2}, got[0])
	assert.Equal(t, []float64{0.3, 0.4}, got[1])
}

func TestRecorder_AmplitudesReturnsCopy(t *testing.T) {
	r := NewRecorder(128)

	now := time.Now()
	for _, s := range sweepSamples(now, []float64{0.1, 0.2}) {
		r.processSample(s)
	}
	r.processSample(Sample{Timestamp: now.Add(time.Second), Sequence: 0, Amplitude: 0.9})

	a := r.Amplitudes()
	a[0] = 42
	assert.Equal(t, []float64{0.1, 0.2}, r.Amplitudes())
}

func TestRecorder_CapturedAt(t *testing.T) {
	r := NewRecorder(128)
	assert.True(t, r.CapturedAt().IsZero())

	ts := time.Unix(1234, 0)
	r.processSample(Sample{Timestamp: ts, Sequence: 0, Amplitude: 0.1})
	assert.Equal(t, ts, r.CapturedAt())
}

// TestRecorder_GracefulShutdown tests that a closed input channel flushes
// the partial sweep and stops further callbacks.
func TestRecorder_GracefulShutdown(t *testing.T) {
	r := NewRecorder(128)

	var mu sync.Mutex
	calls := 0
	r.OnUpdate(func([]float64) {
		mu.Lock()
		defer mu.Unlock()
		calls++
	})

	input := make(chan Sample, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.ProcessSamples(input)
	}()

	for _, s := range sweepSamples(time.Now(), []float64{0.1, 0.2, 0.3}) {
		input <- s
	}
	close(input)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ProcessSamples did not return after input closed")
	}

	// Partial sweep flushed exactly once.
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, r.Amplitudes())

	// After shutdown, new samples accumulate but do not notify.
	r.processSample(Sample{Timestamp: time.Now(), Sequence: 0, Amplitude: 0.4})
	r.processSample(Sample{Timestamp: time.Now(), Sequence: 0, Amplitude: 0.5})
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()

	// ResetShutdown restores callbacks for the next capture chain.
	r.ResetShutdown()
	r.processSample(Sample{Timestamp: time.Now(), Sequence: 0, Amplitude: 0.6})
	mu.Lock()
	assert.Equal(t, 2, calls)
	mu.Unlock()
}
