package jobs

import (
	"sync"

	"goby/internal/core/ports"
)

// maxBufferedSamples bounds the recorder buffer between flushes.
// When the flush job falls behind, the oldest samples are dropped first.
const maxBufferedSamples = 10000

// BufferedLocationRecorder collects courier position reports in memory.
// Record never blocks and never fails, so the command handlers that call it
// stay decoupled from history persistence. The flush job drains the buffer
// periodically and writes the batch to storage.
type BufferedLocationRecorder struct {
	mu      sync.Mutex
	samples []ports.LocationSample
}

// NewBufferedLocationRecorder creates an empty recorder.
func NewBufferedLocationRecorder() *BufferedLocationRecorder {
	return &BufferedLocationRecorder{}
}

// Record buffers a single position sample.
func (r *BufferedLocationRecorder) Record(sample ports.LocationSample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.samples) >= maxBufferedSamples {
		r.samples = r.samples[1:]
	}
	r.samples = append(r.samples, sample)
}

// Drain returns all buffered samples and resets the buffer.
// Returns nil when the buffer is empty.
func (r *BufferedLocationRecorder) Drain() []ports.LocationSample {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.samples) == 0 {
		return nil
	}

	drained := r.samples
	r.samples = nil
	return drained
}
