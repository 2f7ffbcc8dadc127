package capture

import (
	"sync"
	"time"
)

var _ SweepRecorder = (*Recorder)(nil)

// SweepRecorder assembles the device sample stream into complete sweeps and
// publishes each finished sweep to registered callbacks.
type SweepRecorder interface {
	ProcessSamples(input <-chan Sample)
	// Amplitudes returns the last completed sweep, ordered first to last.
	Amplitudes() []float64
	CapturedAt() time.Time
	// OnUpdate registers a callback for completed sweeps.
	OnUpdate(func(amplitudes []float64))
}

// Recorder implements SweepRecorder.
// A sweep boundary is a sample whose Sequence resets to zero; a sweep is
// also force-completed when it reaches maxSamples, so a device that never
// resets its sequence cannot grow the buffer without bound.
type Recorder struct {
	maxSamples int

	// Buffers
	// current accumulates the sweep in flight; completed holds the last
	// finished sweep, which is what accessors and callbacks see.
	current    []float64
	completed  []float64
	capturedAt time.Time

	// Thread safety
	mu sync.RWMutex

	// Update callbacks
	// Callbacks receive a copy of the completed sweep.
	callbacks []func(amplitudes []float64)
	cbMu      sync.RWMutex

	// Shutdown control
	shutdown bool // Set to true when input channel closes, prevents further callbacks
}

// NewRecorder creates a new Recorder instance. maxSamples bounds the sweep
// length; zero selects DefaultBufferSize.
func NewRecorder(maxSamples int) *Recorder {
	if maxSamples <= 0 {
		maxSamples = DefaultBufferSize
	}
	return &Recorder{
		maxSamples: maxSamples,
		current:    make([]float64, 0, maxSamples),
	}
}

// ProcessSamples processes samples from the input channel until it closes.
// The trailing partial sweep is flushed on close so short captures are not
// lost, then the shutdown flag stops further callbacks.
func (r *Recorder) ProcessSamples(input <-chan Sample) {
	for s := range input {
		r.processSample(s)
	}

	r.mu.Lock()
	flushed := r.completeLocked()
	r.shutdown = true
	r.mu.Unlock()

	if flushed != nil {
		r.notifyCallbacks(flushed)
	}
}

func (r *Recorder) processSample(s Sample) {
	r.mu.Lock()

	var finished []float64
	if s.Sequence == 0 && len(r.current) > 0 {
		finished = r.completeLocked()
	}

	r.current = append(r.current, s.Amplitude)
	r.capturedAt = s.Timestamp

	if len(r.current) >= r.maxSamples {
		if f := r.completeLocked(); finished == nil {
			finished = f
		}
	}

	shouldNotify := !r.shutdown && finished != nil
	r.mu.Unlock()

	if shouldNotify {
		r.notifyCallbacks(finished)
	}
}

// completeLocked moves the in-flight sweep into completed and returns a copy
// for callbacks. Caller must hold the write lock.
func (r *Recorder) completeLocked() []float64 {
	if len(r.current) == 0 {
		return nil
	}

	r.completed = r.current
	r.current = make([]float64, 0, r.maxSamples)

	result := make([]float64, len(r.completed))
	copy(result, r.completed)
	return result
}

// Amplitudes returns a copy of the last completed sweep.
func (r *Recorder) Amplitudes() []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]float64, len(r.completed))
	copy(result, r.completed)
	return result
}

// CapturedAt returns the timestamp of the most recent sample.
func (r *Recorder) CapturedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.capturedAt
}

// OnUpdate registers a callback invoked with each completed sweep.
// The callback receives its own copy and may keep it.
func (r *Recorder) OnUpdate(callback func(amplitudes []float64)) {
	r.cbMu.Lock()
	defer r.cbMu.Unlock()
	r.callbacks = append(r.callbacks, callback)
}

// ResetShutdown resets the shutdown flag, allowing callbacks to be sent again.
// This should be called before starting a new capture chain.
func (r *Recorder) ResetShutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shutdown = false
}

// notifyCallbacks invokes all registered callbacks without holding the
// buffer lock.
func (r *Recorder) notifyCallbacks(amplitudes []float64) {
	r.cbMu.RLock()
	callbacks := make([]func(amplitudes []float64), len(r.callbacks))
	copy(callbacks, r.callbacks)
	r.cbMu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(amplitudes)
		}
	}
}
