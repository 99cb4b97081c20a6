// Package face implements the facial dynamics analyzers: eye-aspect-ratio
// blink detection with temporal hysteresis and debounce, and
// baseline-relative expressivity and asymmetry estimation.
package face

import (
	"github.com/parkinsense/biosignal/internal/monitoring"
	"github.com/parkinsense/biosignal/landmark"
)

// BlinkDetector tracks eye aspect ratio across frames and emits debounced
// discrete blink events. State persists for the session; the blink count is
// monotonic until explicitly reset.
type BlinkDetector struct {
	cfg Config

	smoothing    []float64 // ring, at most cfg.SmoothingSamples
	smoothIdx    int
	smoothFilled int

	smoothedEAR      float64
	prevSmoothed     float64
	haveSmoothed     bool
	consecutiveBelow int
	isBlinking       bool
	blinkCount       int
	lastBlinkAt      float64
	everBlinked      bool
}

// NewBlinkDetector creates a blink detector for one session.
func NewBlinkDetector(cfg Config) *BlinkDetector {
	d := &BlinkDetector{cfg: cfg}
	d.Reset()
	return d
}

// Reset clears all detector state, including the blink count.
func (d *BlinkDetector) Reset() {
	d.smoothing = make([]float64, d.cfg.SmoothingSamples)
	d.smoothIdx = 0
	d.smoothFilled = 0
	d.smoothedEAR = 0
	d.prevSmoothed = 0
	d.haveSmoothed = false
	d.consecutiveBelow = 0
	d.isBlinking = false
	d.blinkCount = 0
	d.lastBlinkAt = 0
	d.everBlinked = false
}

// ResetCount zeros the blink count without touching the EAR history, so
// detection continues seamlessly afterwards.
func (d *BlinkDetector) ResetCount() {
	d.blinkCount = 0
}

// BlinkCount returns the number of blinks counted since the last reset.
func (d *BlinkDetector) BlinkCount() int { return d.blinkCount }

// IsBlinking reports whether a blink is in progress as of the last frame.
func (d *BlinkDetector) IsBlinking() bool { return d.isBlinking }

// SmoothedEAR returns the current smoothed eye aspect ratio.
func (d *BlinkDetector) SmoothedEAR() float64 { return d.smoothedEAR }

// eyeAspectRatio computes vertical/(horizontal+epsilon) for one eye. The
// epsilon keeps a degenerate eye width from dividing by zero.
func (d *BlinkDetector) eyeAspectRatio(outer, inner, top, bottom landmark.Point) float64 {
	vertical := landmark.Distance(top, bottom)
	horizontal := landmark.Distance(outer, inner)
	return vertical / (horizontal + d.cfg.Epsilon)
}

// Process ingests one frame. Frames missing any eye point are skipped
// entirely, leaving the detector state untouched. Returns true when the eye
// points were present and the state advanced.
func (d *BlinkDetector) Process(frame landmark.Frame) bool {
	if !frame.Has(
		landmark.LeftEyeOuter, landmark.LeftEyeInner, landmark.LeftEyeTop, landmark.LeftEyeBottom,
		landmark.RightEyeOuter, landmark.RightEyeInner, landmark.RightEyeTop, landmark.RightEyeBottom,
	) {
		return false
	}
	left := d.eyeAspectRatio(
		frame.Points[landmark.LeftEyeOuter], frame.Points[landmark.LeftEyeInner],
		frame.Points[landmark.LeftEyeTop], frame.Points[landmark.LeftEyeBottom],
	)
	right := d.eyeAspectRatio(
		frame.Points[landmark.RightEyeOuter], frame.Points[landmark.RightEyeInner],
		frame.Points[landmark.RightEyeTop], frame.Points[landmark.RightEyeBottom],
	)
	d.advance(frame.Timestamp, (left+right)/2)
	return true
}

// ProcessEAR ingests a precomputed two-eye average EAR. Exposed for testing
// and for providers that deliver the ratio directly.
func (d *BlinkDetector) ProcessEAR(t, ear float64) {
	d.advance(t, ear)
}

func (d *BlinkDetector) advance(t, ear float64) {
	d.smoothing[d.smoothIdx] = ear
	d.smoothIdx = (d.smoothIdx + 1) % len(d.smoothing)
	if d.smoothFilled < len(d.smoothing) {
		d.smoothFilled++
	}
	sum := 0.0
	for i := 0; i < d.smoothFilled; i++ {
		sum += d.smoothing[i]
	}
	d.prevSmoothed = d.smoothedEAR
	d.smoothedEAR = sum / float64(d.smoothFilled)

	if d.smoothedEAR < d.cfg.EARThreshold {
		d.consecutiveBelow++
	} else {
		d.consecutiveBelow = 0
	}

	// A sharp single-frame drop catches blinks too brief to accumulate
	// consecutive below-threshold frames.
	sharpDrop := d.haveSmoothed && d.prevSmoothed-d.smoothedEAR > d.cfg.DropThreshold
	d.haveSmoothed = true

	wasBlinking := d.isBlinking
	d.isBlinking = d.consecutiveBelow >= d.cfg.ConsecutiveFrames || sharpDrop

	if wasBlinking && !d.isBlinking {
		if !d.everBlinked || t-d.lastBlinkAt >= d.cfg.DebounceSeconds {
			d.blinkCount++
			d.lastBlinkAt = t
			d.everBlinked = true
			monitoring.Tracef("face: blink #%d at t=%.3fs ear=%.3f", d.blinkCount, t, d.smoothedEAR)
		}
	}
}
