package face

import "github.com/parkinsense/biosignal/landmark"

// Result is the combined facial state, refreshed once per frame.
type Result struct {
	BlinkCount int
	IsBlinking bool
	// Expressivity is the bounded 0-100 expressivity percentage.
	Expressivity float64
	// SmileAmplitude and BrowMovement are the latest absolute deviations
	// from the session baselines, in percent.
	SmileAmplitude float64
	BrowMovement   float64
	// Asymmetry is the per-frame left/right asymmetry percentage, unsmoothed.
	Asymmetry float64
	// FaceDetected is false when the frame lacked the required face points;
	// the remaining fields then hold the last computed values.
	FaceDetected bool
}

// Analyzer runs the blink detector and the expressivity estimator in
// parallel over the same frame stream. Like the tremor analyzer it is
// frame-driven and single-caller.
type Analyzer struct {
	blink        *BlinkDetector
	expressivity *Expressivity
	result       Result
}

// NewAnalyzer creates a facial analyzer for one session.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{
		blink:        NewBlinkDetector(cfg),
		expressivity: NewExpressivity(cfg),
	}
}

// Process ingests one landmark frame and refreshes the combined state. A
// frame carrying none of the required face points reports FaceDetected=false
// and leaves the numeric fields at their last values.
func (a *Analyzer) Process(frame landmark.Frame) Result {
	blinkOK := a.blink.Process(frame)
	exprOK := a.expressivity.Process(frame)
	if !blinkOK && !exprOK {
		a.result.FaceDetected = false
		return a.result
	}
	a.result = Result{
		BlinkCount:     a.blink.BlinkCount(),
		IsBlinking:     a.blink.IsBlinking(),
		Expressivity:   a.expressivity.Score(),
		SmileAmplitude: a.expressivity.SmileAmplitude(),
		BrowMovement:   a.expressivity.BrowMovement(),
		Asymmetry:      a.expressivity.Asymmetry(),
		FaceDetected:   true,
	}
	return a.result
}

// Result returns the latest combined state.
func (a *Analyzer) Result() Result { return a.result }

// ResetBlinkCount zeros the blink counter without disturbing the EAR
// history needed for subsequent detection.
func (a *Analyzer) ResetBlinkCount() {
	a.blink.ResetCount()
	a.result.BlinkCount = 0
}

// Reset clears all facial state: blink history, counters and baselines.
func (a *Analyzer) Reset() {
	a.blink.Reset()
	a.expressivity.Reset()
	a.result = Result{}
}
