package capture

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/mhschmieder/fxchart/pkg/config"
)

// Mock simulates a capture device for testing and development. It emits a
// full synthesized sweep every SweepPeriod: a decaying sinusoid arriving at
// PeakTimeMs over a deterministic noise floor.
type Mock struct {
	cfg           *config.MockConfig
	sampleRateKHz float64

	samples   chan Sample
	done      chan struct{}
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.MockConfig, sampleRateKHz float64) *Mock {
	if cfg == nil {
		def := config.Default().Mock
		cfg = &def
	}
	if sampleRateKHz <= 0 {
		sampleRateKHz = config.Default().Chart.SampleRateKHz
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:           cfg,
		sampleRateKHz: sampleRateKHz,
		samples:       make(chan Sample, DefaultBufferSize),
		done:          make(chan struct{}),
		ctx:           ctx,
		cancel:        cancel,
		connected:     false,
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true

	// Start generating sweeps
	go m.generateSweeps()

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	// Stop the generator before closing the channel it sends on.
	m.cancel()
	<-m.done
	m.connected = false
	close(m.samples)

	return nil
}

// Samples returns the channel for reading samples.
func (m *Mock) Samples() <-chan Sample {
	return m.samples
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateSweeps emits one full sweep immediately and another every
// SweepPeriod until closed.
func (m *Mock) generateSweeps() {
	defer close(m.done)

	m.emitSweep()

	ticker := time.NewTicker(m.cfg.SweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.emitSweep()
		}
	}
}

func (m *Mock) emitSweep() {
	now := time.Now()
	for i := 0; i < m.cfg.FrameSamples; i++ {
		sample := Sample{
			Timestamp: now,
			Sequence:  uint32(i),
			Amplitude: m.synthesize(i),
		}
		select {
		case m.samples <- sample:
		case <-m.ctx.Done():
			return
		default:
			// Channel full, skip
		}
	}
}

// synthesize computes the amplitude of sweep sample i: a 1 kHz tone with an
// exponential envelope starting at PeakTimeMs, plus deterministic noise so
// that repeated runs trace the same curve.
func (m *Mock) synthesize(i int) float64 {
	tMs := float64(i) / m.sampleRateKHz

	noise := (math.Sin(float64(i)*0.731) + math.Cos(float64(i)*1.117)) *
		m.cfg.NoiseLevel * 0.5

	if tMs < m.cfg.PeakTimeMs {
		return noise
	}

	sinceMs := tMs - m.cfg.PeakTimeMs
	envelope := math.Exp(-sinceMs / m.cfg.DecayMs)
	tone := math.Cos(2 * math.Pi * sinceMs) // 1 kHz at millisecond time base

	amplitude := envelope*tone + noise
	if amplitude > 1 {
		amplitude = 1
	} else if amplitude < -1 {
		amplitude = -1
	}
	return amplitude
}
