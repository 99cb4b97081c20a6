package face

import (
	"math"

	"github.com/parkinsense/biosignal/landmark"
)

// Expressivity tracks baseline facial geometry and reports normalized
// deviation from it, plus per-frame left/right asymmetry. Baselines are
// fixed once on the session's first valid frame and never move.
type Expressivity struct {
	cfg Config

	baselineSmileWidth float64
	baselineBrowHeight float64
	baselineSet        bool

	rolling    []float64 // ring, at most cfg.ExpressivityWindow
	rollingIdx int
	rollingLen int

	score     float64
	smilePct  float64
	browPct   float64
	asymmetry float64
}

// NewExpressivity creates an expressivity estimator for one session.
func NewExpressivity(cfg Config) *Expressivity {
	e := &Expressivity{cfg: cfg}
	e.Reset()
	return e
}

// Reset clears baselines and accumulated samples.
func (e *Expressivity) Reset() {
	e.baselineSmileWidth = 0
	e.baselineBrowHeight = 0
	e.baselineSet = false
	e.rolling = make([]float64, e.cfg.ExpressivityWindow)
	e.rollingIdx = 0
	e.rollingLen = 0
	e.score = 0
	e.smilePct = 0
	e.browPct = 0
	e.asymmetry = 0
}

// Score returns the bounded 0-100 expressivity percentage.
func (e *Expressivity) Score() float64 { return e.score }

// SmileAmplitude returns the latest absolute smile-width deviation from
// baseline, in percent.
func (e *Expressivity) SmileAmplitude() float64 { return math.Abs(e.smilePct) }

// BrowMovement returns the latest absolute brow-height deviation from
// baseline, in percent.
func (e *Expressivity) BrowMovement() float64 { return math.Abs(e.browPct) }

// Asymmetry returns the latest per-frame left/right asymmetry percentage.
// It is intentionally unsmoothed and therefore frame-noisy; treat it as a
// supplementary indicator.
func (e *Expressivity) Asymmetry() float64 { return e.asymmetry }

// BaselineSmileWidth returns the session's fixed smile-width baseline (zero
// until the first valid frame).
func (e *Expressivity) BaselineSmileWidth() float64 { return e.baselineSmileWidth }

// BaselineBrowHeight returns the session's fixed brow-height baseline (zero
// until the first valid frame).
func (e *Expressivity) BaselineBrowHeight() float64 { return e.baselineBrowHeight }

// Process ingests one frame. Frames missing any required point are skipped,
// leaving state untouched. Returns true when the frame was consumed.
func (e *Expressivity) Process(frame landmark.Frame) bool {
	if !frame.Has(
		landmark.MouthLeft, landmark.MouthRight,
		landmark.LeftBrow, landmark.RightBrow, landmark.ForeheadRef,
		landmark.LeftEyeOuter, landmark.RightEyeOuter, landmark.NoseRef,
	) {
		return false
	}

	smileWidth := landmark.Distance(frame.Points[landmark.MouthLeft], frame.Points[landmark.MouthRight])
	browHeight := (landmark.Distance(frame.Points[landmark.LeftBrow], frame.Points[landmark.ForeheadRef]) +
		landmark.Distance(frame.Points[landmark.RightBrow], frame.Points[landmark.ForeheadRef])) / 2

	if !e.baselineSet {
		e.baselineSmileWidth = smileWidth
		e.baselineBrowHeight = browHeight
		e.baselineSet = true
	}

	e.smilePct = 100 * (smileWidth - e.baselineSmileWidth) / (e.baselineSmileWidth + e.cfg.Epsilon)
	e.browPct = 100 * (browHeight - e.baselineBrowHeight) / (e.baselineBrowHeight + e.cfg.Epsilon)

	sample := math.Abs(e.smilePct) + e.cfg.BrowWeight*math.Abs(e.browPct)
	e.rolling[e.rollingIdx] = sample
	e.rollingIdx = (e.rollingIdx + 1) % len(e.rolling)
	if e.rollingLen < len(e.rolling) {
		e.rollingLen++
	}
	sum := 0.0
	for i := 0; i < e.rollingLen; i++ {
		sum += e.rolling[i]
	}
	avg := sum / float64(e.rollingLen)
	// Saturating map keeps ordinary motion away from the floor and ceiling.
	e.score = 100 * avg / (avg + e.cfg.ExpressivityK)

	left := landmark.Distance(frame.Points[landmark.LeftEyeOuter], frame.Points[landmark.NoseRef])
	right := landmark.Distance(frame.Points[landmark.RightEyeOuter], frame.Points[landmark.NoseRef])
	e.asymmetry = 100 * math.Abs(left-right) / ((left+right)/2 + e.cfg.Epsilon)
	return true
}
