package capture

import (
	"math"
	"testing"
	"time"

	"github.com/mhschmieder/fxchart/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMock(t *testing.T) {
	cfg := &config.MockConfig{
		NoiseLevel:   0.005,
		PeakTimeMs:   10,
		DecayMs:      50,
		SweepPeriod:  2 * time.Second,
		FrameSamples: 1024,
	}

	dev := NewMock(cfg, 48)
	assert.NotNil(t, dev)
	assert.Equal(t, cfg, dev.cfg)
	assert.NotNil(t, dev.samples)
	assert.False(t, dev.IsConnected())
}

func TestNewMock_NilConfig(t *testing.T) {
	dev := NewMock(nil, 0)
	assert.NotNil(t, dev)
	assert.NotNil(t, dev.cfg)
	assert.Equal(t, float64(0.002), dev.cfg.NoiseLevel)
	assert.Equal(t, float64(12.0), dev.cfg.PeakTimeMs)
	assert.Equal(t, float64(60.0), dev.cfg.DecayMs)
	assert.Equal(t, 5*time.Second, dev.cfg.SweepPeriod)
	assert.Equal(t, 4096, dev.cfg.FrameSamples)
	assert.Equal(t, float64(48), dev.sampleRateKHz)
}

func TestMock_Connect_AlreadyConnected(t *testing.T) {
	dev := NewMock(nil, 48)
	defer dev.Close()

	err := dev.Connect()
	assert.NoError(t, err)

	err = dev.Connect()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already connected")
}

func TestMock_Close_NotConnected(t *testing.T) {
	dev := NewMock(nil, 48)

	err := dev.Close()
	assert.NoError(t, err) // Should not error when not connected
}

func TestMock_Synthesize(t *testing.T) {
	cfg := &config.MockConfig{
		NoiseLevel:   0.001,
		PeakTimeMs:   10,
		DecayMs:      20,
		SweepPeriod:  time.Second,
		FrameSamples: 4096,
	}
	dev := NewMock(cfg, 48)

	// Before the arrival time only the noise floor is present.
	early := dev.synthesize(0)
	assert.LessOrEqual(t, math.Abs(early), cfg.NoiseLevel)

	// At the arrival sample the envelope is at full scale.
	peakIdx := int(cfg.PeakTimeMs * 48)
	peak := dev.synthesize(peakIdx)
	assert.InDelta(t, 1.0, peak, 0.01)

	// Several decay constants later the envelope has died off.
	lateIdx := peakIdx + int(5*cfg.DecayMs*48)
	late := dev.synthesize(lateIdx)
	assert.Less(t, math.Abs(late), 0.05)

	// Deterministic: same index, same amplitude.
	assert.Equal(t, dev.synthesize(peakIdx), dev.synthesize(peakIdx))
}

func TestMock_EmitsFullSweep(t *testing.T) {
	cfg := &config.MockConfig{
		NoiseLevel:   0.001,
		PeakTimeMs:   1,
		DecayMs:      5,
		SweepPeriod:  time.Minute, // only the initial sweep matters here
		FrameSamples: 64,
	}
	dev := NewMock(cfg, 48)
	require.NoError(t, dev.Connect())
	defer dev.Close()

	for i := 0; i < cfg.FrameSamples; i++ {
		select {
		case s := <-dev.Samples():
			assert.Equal(t, uint32(i), s.Sequence)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for sample %d", i)
		}
	}
}

// TestMock_GracefulShutdown tests that Mock device closes samples channel
// when Close() is called.
func TestMock_GracefulShutdown(t *testing.T) {
	cfg := &config.MockConfig{
		NoiseLevel:   0.001,
		PeakTimeMs:   1,
		DecayMs:      5,
		SweepPeriod:  100 * time.Millisecond,
		FrameSamples: 16,
	}

	mock := NewMock(cfg, 48)
	err := mock.Connect()
	assert.NoError(t, err)

	samples := mock.Samples()

	// Read a few samples
	received := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range samples {
			received++
			if received >= 3 {
				// Got enough samples, now close device
				mock.Close()
			}
		}
	}()

	// Wait for samples and channel closure
	select {
	case <-done:
		// Channel closed successfully
	case <-time.After(5 * time.Second):
		t.Fatal("Samples channel did not close within timeout")
	}

	// Should have received at least a few samples
	assert.GreaterOrEqual(t, received, 3, "Should receive samples before channel closes")

	// Verify channel is closed
	_, ok := <-samples
	assert.False(t, ok, "Channel should be closed")
}
