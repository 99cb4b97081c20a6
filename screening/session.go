// Package screening ties the tremor and facial analyzers into one
// self-administered test session: the external capture loop pushes landmark
// frames in, consumers poll the latest emitted state.
package screening

import (
	"time"

	"github.com/google/uuid"

	"github.com/parkinsense/biosignal/face"
	"github.com/parkinsense/biosignal/internal/monitoring"
	"github.com/parkinsense/biosignal/internal/timeutil"
	"github.com/parkinsense/biosignal/landmark"
	"github.com/parkinsense/biosignal/spectral"
	"github.com/parkinsense/biosignal/tremor"
)

// Config bundles the per-analyzer tuning and the clock used for session
// bookkeeping.
type Config struct {
	Tremor tremor.Config
	Face   face.Config
	Clock  timeutil.Clock
}

// DefaultConfig returns a session configuration with all defaults and the
// real wall clock.
func DefaultConfig() Config {
	return Config{
		Tremor: tremor.DefaultConfig(),
		Face:   face.DefaultConfig(),
		Clock:  timeutil.RealClock{},
	}
}

// FaceResult extends the facial analyzer state with the session-derived
// blink rate.
type FaceResult struct {
	face.Result
	// BlinkRatePerMinute is the blink count normalized by active session
	// time. Zero until the session has run for a moment.
	BlinkRatePerMinute float64
}

// Session is one active screening run. All per-frame entry points must be
// called from a single goroutine, matching the frame-driven model of the
// analyzers; stopping is not atomic with an in-flight call, so the driver
// must stop invoking before teardown.
type Session struct {
	ID uuid.UUID

	clock     timeutil.Clock
	startedAt time.Time
	active    bool

	tremor *tremor.Analyzer
	face   *face.Analyzer
}

// NewSession constructs a session. The session is inactive until Start.
func NewSession(cfg Config) *Session {
	if cfg.Clock == nil {
		cfg.Clock = timeutil.RealClock{}
	}
	return &Session{
		clock:  cfg.Clock,
		tremor: tremor.NewAnalyzer(cfg.Tremor),
		face:   face.NewAnalyzer(cfg.Face),
	}
}

// Start resets all owned analyzer state and begins a fresh observation
// window under a new session ID.
func (s *Session) Start() {
	s.ID = uuid.New()
	s.tremor.Reset()
	s.face.Reset()
	s.startedAt = s.clock.Now()
	s.active = true
	monitoring.Logf("screening: session %s started", s.ID)
}

// Stop deactivates the session. The latest results remain readable.
func (s *Session) Stop() {
	if !s.active {
		return
	}
	s.active = false
	monitoring.Logf("screening: session %s stopped after %s", s.ID, s.clock.Since(s.startedAt))
}

// Reset clears counters and baselines without reconstructing the analyzers
// or changing the session ID.
func (s *Session) Reset() {
	s.tremor.Reset()
	s.face.Reset()
	s.startedAt = s.clock.Now()
}

// Active reports whether the session is accepting frames.
func (s *Session) Active() bool { return s.active }

// Elapsed returns the active session duration so far.
func (s *Session) Elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	return s.clock.Since(s.startedAt)
}

// ProcessFrame feeds one landmark frame to both pipelines. Frames arriving
// on an inactive session are dropped.
func (s *Session) ProcessFrame(frame landmark.Frame) {
	if !s.active {
		return
	}
	s.tremor.Process(frame)
	s.face.Process(frame)
}

// ProcessCentroid feeds one color-region centroid observation to the tremor
// fallback path.
func (s *Session) ProcessCentroid(t float64, p landmark.Point) {
	if !s.active {
		return
	}
	s.tremor.ProcessCentroid(t, p)
}

// TremorResult returns the latest fused tremor state.
func (s *Session) TremorResult() tremor.Result {
	return s.tremor.Result()
}

// TremorSpectrum returns the last magnitude spectrum of the dominant tremor
// channel, for diagnostics and tooling.
func (s *Session) TremorSpectrum() spectral.Spectrum {
	return s.tremor.Spectrum()
}

// FaceResult returns the latest facial state with the blink rate derived
// from session elapsed time.
func (s *Session) FaceResult() FaceResult {
	r := FaceResult{Result: s.face.Result()}
	if minutes := s.Elapsed().Minutes(); minutes > 0 {
		r.BlinkRatePerMinute = float64(r.BlinkCount) / minutes
	}
	return r
}

// ResetBlinkCount zeros the blink counter mid-session without disturbing
// detection state.
func (s *Session) ResetBlinkCount() {
	s.face.ResetBlinkCount()
}
