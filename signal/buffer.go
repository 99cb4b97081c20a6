// Package signal provides the bounded time-ordered sample store and the
// uniform-rate resampler that feed the spectral pipeline.
package signal

import "math"

// Sample is one timestamped scalar observation.
type Sample struct {
	T float64 // seconds, monotonic within a buffer
	V float64
}

// SampleBuffer is a bounded, time-ordered store of scalar samples for one
// channel. Every Push evicts samples older than the retention window measured
// back from the newest sample. Input timestamps are assumed monotonic; the
// buffer does not defend against reordering.
type SampleBuffer struct {
	window  float64 // retention in seconds
	samples []Sample
}

// NewSampleBuffer creates a buffer retaining window seconds of samples.
func NewSampleBuffer(window float64) *SampleBuffer {
	return &SampleBuffer{window: window}
}

// Push appends one sample and evicts everything older than the window.
func (b *SampleBuffer) Push(t, v float64) {
	b.samples = append(b.samples, Sample{T: t, V: v})
	cutoff := t - b.window
	i := 0
	for i < len(b.samples) && b.samples[i].T < cutoff {
		i++
	}
	if i > 0 {
		b.samples = append(b.samples[:0], b.samples[i:]...)
	}
}

// Len returns the number of retained samples.
func (b *SampleBuffer) Len() int { return len(b.samples) }

// Duration returns the time span covered by the retained samples.
func (b *SampleBuffer) Duration() float64 {
	if len(b.samples) < 2 {
		return 0
	}
	return b.samples[len(b.samples)-1].T - b.samples[0].T
}

// Values returns a copy of the retained raw values in time order.
func (b *SampleBuffer) Values() []float64 {
	out := make([]float64, len(b.samples))
	for i, s := range b.samples {
		out[i] = s.V
	}
	return out
}

// Reset discards all retained samples.
func (b *SampleBuffer) Reset() {
	b.samples = b.samples[:0]
}

// Resample converts the retained irregular samples to a uniform-rate array
// spanning [first, last] timestamp via linear interpolation between the two
// nearest raw samples. The output length is max(8, round(duration*targetRate))
// so that very short windows still produce an analyzable array. Returns the
// uniform values and the actual uniform rate; nil and 0 if fewer than two raw
// samples exist or the samples are coincident in time.
func (b *SampleBuffer) Resample(targetRate float64) ([]float64, float64) {
	if len(b.samples) < 2 || targetRate <= 0 {
		return nil, 0
	}
	first := b.samples[0].T
	last := b.samples[len(b.samples)-1].T
	duration := last - first
	if duration <= 0 {
		return nil, 0
	}

	n := int(math.Round(duration * targetRate))
	if n < 8 {
		n = 8
	}
	step := duration / float64(n-1)

	out := make([]float64, n)
	j := 0
	for i := 0; i < n; i++ {
		t := first + float64(i)*step
		if t > last {
			t = last
		}
		for j+2 < len(b.samples) && b.samples[j+1].T <= t {
			j++
		}
		a, c := b.samples[j], b.samples[j+1]
		span := c.T - a.T
		if span <= 0 {
			out[i] = a.V
			continue
		}
		frac := (t - a.T) / span
		if frac < 0 {
			frac = 0
		} else if frac > 1 {
			frac = 1
		}
		out[i] = a.V + frac*(c.V-a.V)
	}
	// Actual rate differs slightly from the target because the span is
	// divided into n-1 equal steps.
	return out, float64(n-1) / duration
}
