package screening

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/parkinsense/biosignal/internal/timeutil"
	"github.com/parkinsense/biosignal/landmark"
	"github.com/parkinsense/biosignal/tremor"
)

func testSession() (*Session, *timeutil.MockClock) {
	clock := timeutil.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.Clock = clock
	return NewSession(cfg), clock
}

// tremorFrame is a hand-only frame oscillating at the given frequency.
func tremorFrame(t, freq, amp float64) landmark.Frame {
	osc := amp * math.Sin(2*math.Pi*freq*t)
	return landmark.Frame{
		Timestamp: t,
		Points: map[landmark.PointID]landmark.Point{
			landmark.HandIndexTip: {X: 0.50, Y: 0.30 + osc},
			landmark.HandIndexMid: {X: 0.50, Y: 0.40 + 0.6*osc},
			landmark.HandWrist:    {X: 0.50, Y: 0.55 + 0.3*osc},
		},
	}
}

// blinkEARFrame delivers eye geometry with the requested aspect ratio.
func blinkEARFrame(t, ear float64) landmark.Frame {
	const width = 0.1
	v := ear * width
	return landmark.Frame{
		Timestamp: t,
		Points: map[landmark.PointID]landmark.Point{
			landmark.LeftEyeOuter:   {X: 0.30, Y: 0.40},
			landmark.LeftEyeInner:   {X: 0.40, Y: 0.40},
			landmark.LeftEyeTop:     {X: 0.35, Y: 0.40 + v/2},
			landmark.LeftEyeBottom:  {X: 0.35, Y: 0.40 - v/2},
			landmark.RightEyeOuter:  {X: 0.70, Y: 0.40},
			landmark.RightEyeInner:  {X: 0.60, Y: 0.40},
			landmark.RightEyeTop:    {X: 0.65, Y: 0.40 + v/2},
			landmark.RightEyeBottom: {X: 0.65, Y: 0.40 - v/2},
		},
	}
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := testSession()
	if s.Active() {
		t.Fatal("new session must be inactive")
	}

	s.Start()
	if !s.Active() {
		t.Fatal("started session must be active")
	}
	firstID := s.ID

	s.Stop()
	if s.Active() {
		t.Fatal("stopped session must be inactive")
	}

	s.Start()
	if s.ID == firstID {
		t.Error("restart must mint a new session ID")
	}
}

func TestInactiveSessionDropsFrames(t *testing.T) {
	s, _ := testSession()
	for i := 0; i < 90; i++ {
		s.ProcessFrame(tremorFrame(float64(i)/30, 5, 0.01))
	}
	if diff := cmp.Diff(tremor.Result{}, s.TremorResult()); diff != "" {
		t.Errorf("inactive session accumulated state (-want +got):\n%s", diff)
	}
}

func TestSessionProcessesTremorFrames(t *testing.T) {
	s, _ := testSession()
	s.Start()
	for i := 0; i < 90; i++ {
		s.ProcessFrame(tremorFrame(float64(i)/30, 5, 0.01))
	}
	r := s.TremorResult()
	if !r.HandDetected {
		t.Fatal("hand frames should be detected")
	}
	if r.Strength <= 0.5 {
		t.Errorf("strength = %v, want > 0.5 for clean 5 Hz input", r.Strength)
	}
}

func TestBlinkRatePerMinute(t *testing.T) {
	s, clock := testSession()
	s.Start()

	// Two well-separated synthetic blinks over a simulated 30 seconds.
	seq := []float64{0.35, 0.35, 0.35, 0.35, 0.35, 0.05, 0.05, 0.05, 0.35, 0.35, 0.35, 0.35, 0.35}
	ts := 0.0
	for cycle := 0; cycle < 2; cycle++ {
		for _, ear := range seq {
			s.ProcessFrame(blinkEARFrame(ts, ear))
			ts += 0.1
		}
	}
	clock.Advance(30 * time.Second)

	fr := s.FaceResult()
	if fr.BlinkCount != 2 {
		t.Fatalf("blink count = %d, want 2", fr.BlinkCount)
	}
	if math.Abs(fr.BlinkRatePerMinute-4.0) > 1e-9 {
		t.Errorf("blink rate = %v/min, want 4 (2 blinks in 30s)", fr.BlinkRatePerMinute)
	}
}

func TestResetClearsBothPipelines(t *testing.T) {
	s, _ := testSession()
	s.Start()
	for i := 0; i < 90; i++ {
		s.ProcessFrame(tremorFrame(float64(i)/30, 5, 0.01))
	}
	id := s.ID

	s.Reset()
	if diff := cmp.Diff(tremor.Result{}, s.TremorResult()); diff != "" {
		t.Errorf("tremor state after reset (-want +got):\n%s", diff)
	}
	if s.ID != id {
		t.Error("reset must keep the session ID")
	}
	if !s.Active() {
		t.Error("reset must not deactivate the session")
	}
}

func TestResetBlinkCountMidSession(t *testing.T) {
	s, _ := testSession()
	s.Start()
	seq := []float64{0.35, 0.35, 0.35, 0.35, 0.35, 0.05, 0.05, 0.05, 0.35, 0.35, 0.35, 0.35, 0.35}
	for i, ear := range seq {
		s.ProcessFrame(blinkEARFrame(float64(i)*0.1, ear))
	}
	if s.FaceResult().BlinkCount != 1 {
		t.Fatalf("setup: blink count = %d, want 1", s.FaceResult().BlinkCount)
	}
	s.ResetBlinkCount()
	if s.FaceResult().BlinkCount != 0 {
		t.Errorf("blink count after reset = %d, want 0", s.FaceResult().BlinkCount)
	}
}

func TestCentroidFallbackThroughSession(t *testing.T) {
	s, _ := testSession()
	s.Start()
	for i := 0; i < 90; i++ {
		ts := float64(i) / 30
		s.ProcessCentroid(ts, landmark.Point{X: 0.5, Y: 0.4 + 0.01*math.Sin(2*math.Pi*5*ts)})
	}
	r := s.TremorResult()
	if r.Source != tremor.ColorFallback {
		t.Errorf("source = %v, want ColorFallback", r.Source)
	}
	if r.Confidence != tremor.ConfidenceReduced {
		t.Errorf("confidence = %v, want reduced for the fallback path", r.Confidence)
	}
}
