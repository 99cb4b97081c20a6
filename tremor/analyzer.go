// Package tremor implements the streaming tremor pipeline: per-channel
// sample buffering, uniform resampling, spectral band analysis, and fusion
// of multi-channel evidence into a tremor score and a heuristic
// pathological-likelihood estimate.
package tremor

import (
	"gonum.org/v1/gonum/stat"

	"github.com/parkinsense/biosignal/internal/monitoring"
	"github.com/parkinsense/biosignal/landmark"
	"github.com/parkinsense/biosignal/signal"
	"github.com/parkinsense/biosignal/spectral"
)

// Source tags which tracking strategy produced a result.
type Source int

const (
	// StructuredTracking means named landmark points drove the pipeline.
	StructuredTracking Source = iota
	// ColorFallback means a coarse color-region centroid drove the pipeline
	// because structured tracking was unavailable.
	ColorFallback
)

func (s Source) String() string {
	if s == ColorFallback {
		return "color_fallback"
	}
	return "structured"
}

// Confidence flags how trustworthy a result is.
type Confidence int

const (
	// ConfidenceHigh is the normal structured-tracking confidence.
	ConfidenceHigh Confidence = iota
	// ConfidenceReduced marks results from the centroid fallback.
	ConfidenceReduced
)

// Result is the fused tremor state, overwritten each analysis cycle.
type Result struct {
	// Score is the 0-100 tremor severity score.
	Score float64
	// Frequency is the power-weighted peak frequency across channels (Hz).
	Frequency float64
	// Strength is the fused in-band power fraction, 0..1.
	Strength float64
	// Amplitude is the mean RMS of the detrended channels.
	Amplitude float64
	// PDLikelihood is the 0-100 heuristic pathological-likelihood estimate.
	PDLikelihood float64
	// HandDetected is false when tracking reported no usable point this
	// frame; the numeric fields then hold the last computed values.
	HandDetected bool
	// MovementDetected flags gross voluntary motion.
	MovementDetected bool

	Source     Source
	Confidence Confidence
}

// minMovementSamples is how many displacement observations must accumulate
// before the coefficient-of-variation movement check is trusted.
const minMovementSamples = 8

// Analyzer owns all per-session tremor state. It is frame-driven and not
// safe for concurrent use; the external capture loop must be the only
// caller of Process.
type Analyzer struct {
	cfg Config

	buffers      map[landmark.PointID]*signal.SampleBuffer
	prev         map[landmark.PointID]landmark.Point
	displacement *signal.SampleBuffer

	fallback     *signal.SampleBuffer
	fallbackPrev *landmark.Point

	persistence   []bool
	persistIdx    int
	persistFilled int

	lastSpectrum spectral.Spectrum
	result       Result
}

// NewAnalyzer creates a tremor analyzer for one session.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.PersistenceCycles <= 0 {
		cfg.PersistenceCycles = DefaultConfig().PersistenceCycles
	}
	if cfg.StrengthFloor <= 0 {
		cfg.StrengthFloor = DefaultConfig().StrengthFloor
	}
	if cfg.ProminenceFloor <= 0 {
		cfg.ProminenceFloor = DefaultConfig().ProminenceFloor
	}
	if cfg.StrengthSaturation <= cfg.StrengthFloor {
		// Keep the strength ramp well-formed above the floor.
		cfg.StrengthSaturation = cfg.StrengthFloor * 2
	}
	a := &Analyzer{cfg: cfg}
	a.Reset()
	return a
}

// Reset clears all owned state, starting a fresh observation window.
func (a *Analyzer) Reset() {
	a.buffers = make(map[landmark.PointID]*signal.SampleBuffer, len(a.cfg.ChannelWeights))
	for id := range a.cfg.ChannelWeights {
		a.buffers[id] = signal.NewSampleBuffer(a.cfg.WindowSeconds)
	}
	a.prev = make(map[landmark.PointID]landmark.Point, len(a.cfg.ChannelWeights))
	a.displacement = signal.NewSampleBuffer(a.cfg.WindowSeconds)
	a.fallback = signal.NewSampleBuffer(a.cfg.WindowSeconds)
	a.fallbackPrev = nil
	a.persistence = make([]bool, a.cfg.PersistenceCycles)
	a.persistIdx = 0
	a.persistFilled = 0
	a.lastSpectrum = spectral.Spectrum{}
	a.result = Result{}
}

// Result returns the latest fused state.
func (a *Analyzer) Result() Result { return a.result }

// Spectrum returns the last magnitude spectrum of the dominant channel, for
// diagnostics and tooling. Empty until a full analysis cycle has run.
func (a *Analyzer) Spectrum() spectral.Spectrum { return a.lastSpectrum }

// channel pairs one buffer with its fusion weight for an analysis cycle.
type channel struct {
	weight float64
	buf    *signal.SampleBuffer
}

// Process ingests one landmark frame and runs a full analysis cycle. When no
// tracked point is present it reports HandDetected=false and leaves the
// numeric fields at their last values.
func (a *Analyzer) Process(frame landmark.Frame) Result {
	var channels []channel
	var dispSum float64
	var dispCount int
	for id, w := range a.cfg.ChannelWeights {
		p, ok := frame.Point(id)
		if !ok {
			continue
		}
		a.buffers[id].Push(frame.Timestamp, landmark.Magnitude(p))
		if pp, seen := a.prev[id]; seen {
			dispSum += landmark.Distance(p, pp)
			dispCount++
		}
		a.prev[id] = p
		channels = append(channels, channel{weight: w, buf: a.buffers[id]})
	}
	if len(channels) == 0 {
		a.result.HandDetected = false
		return a.result
	}
	if dispCount > 0 {
		a.displacement.Push(frame.Timestamp, dispSum/float64(dispCount))
	}
	a.analyze(channels, StructuredTracking)
	return a.result
}

// ProcessCentroid ingests one coarse color-region centroid observation, the
// documented fallback when structured tracking is unavailable. Results from
// this path are tagged ColorFallback with reduced confidence.
func (a *Analyzer) ProcessCentroid(t float64, p landmark.Point) Result {
	a.fallback.Push(t, landmark.Magnitude(p))
	if a.fallbackPrev != nil {
		a.displacement.Push(t, landmark.Distance(p, *a.fallbackPrev))
	}
	cp := p
	a.fallbackPrev = &cp
	a.analyze([]channel{{weight: 1, buf: a.fallback}}, ColorFallback)
	return a.result
}

// analyze runs resampling, spectral estimation, band analysis, fusion and
// classification over the given channels. Channels with too few samples are
// excluded; if none remain the cycle is skipped and the last result stands.
func (a *Analyzer) analyze(channels []channel, src Source) {
	var (
		weightSum    float64
		strengthSum  float64
		promSum      float64
		freqPowerSum float64
		powerSum     float64
		rmsSum       float64
		used         int
		bestWeight   = -1.0
	)
	for _, ch := range channels {
		values, rate := ch.buf.Resample(a.cfg.TargetRate)
		if values == nil {
			continue
		}
		spec, ok := spectral.Estimate(values, rate)
		if !ok {
			continue
		}
		band := spectral.AnalyzeBand(spec, a.cfg.BandLowHz, a.cfg.BandHighHz)

		weightSum += ch.weight
		strengthSum += ch.weight * band.Strength
		promSum += ch.weight * band.Prominence
		if band.BandPower > 0 {
			freqPowerSum += band.BandPower * band.PeakFrequency
			powerSum += band.BandPower
		}
		rmsSum += stat.PopStdDev(values, nil)
		used++

		if ch.weight > bestWeight {
			bestWeight = ch.weight
			a.lastSpectrum = spec
		}
	}
	if used == 0 || weightSum == 0 {
		// Insufficient samples this cycle; keep the last score.
		a.result.HandDetected = true
		a.result.Source = src
		a.result.Confidence = ConfidenceHigh
		if src == ColorFallback {
			a.result.Confidence = ConfidenceReduced
		}
		return
	}

	fusedStrength := strengthSum / weightSum
	fusedProminence := promSum / weightSum
	fusedFrequency := 0.0
	if powerSum > 0 {
		fusedFrequency = freqPowerSum / powerSum
	}
	amp := rmsSum / float64(used)
	movement := a.movementDetected()

	score := clamp(fusedStrength*a.cfg.AmplifyFactor*100, 0, 100)
	if score == 0 {
		// Low-information fallback: derive a coarse score from amplitude,
		// heavily discounted to avoid false positives.
		score = clamp(amp/a.cfg.AmplitudeScoreScale, 0, 1) * 100 * 0.25
	}
	if amp > a.cfg.VoluntaryAmpThreshold {
		factor := a.cfg.VoluntaryAmpThreshold / amp
		if factor < 0.25 {
			factor = 0.25
		}
		score *= factor
	}

	likelihood := a.classify(fusedStrength, fusedProminence, fusedFrequency, amp, movement)

	confidence := ConfidenceHigh
	if src == ColorFallback {
		confidence = ConfidenceReduced
	}
	a.result = Result{
		Score:            score,
		Frequency:        fusedFrequency,
		Strength:         fusedStrength,
		Amplitude:        amp,
		PDLikelihood:     likelihood,
		HandDetected:     true,
		MovementDetected: movement,
		Source:           src,
		Confidence:       confidence,
	}
	monitoring.Tracef("tremor: score=%.1f freq=%.2fHz strength=%.3f amp=%.4f pd=%.1f movement=%v src=%s",
		score, fusedFrequency, fusedStrength, amp, likelihood, movement, src)
}

// classify combines the fused spectral evidence into the 0-100 pathological
// likelihood. Gross voluntary motion hard-overrides spectral evidence after
// the likelihood is computed, so a transient spectral coincidence during a
// large hand sweep cannot register as tremor.
func (a *Analyzer) classify(strength, prominence, frequency, amp float64, movement bool) float64 {
	hit := strength > a.cfg.StrengthFloor && prominence > a.cfg.ProminenceFloor
	a.persistence[a.persistIdx] = hit
	a.persistIdx = (a.persistIdx + 1) % len(a.persistence)
	if a.persistFilled < len(a.persistence) {
		a.persistFilled++
	}

	likelihood := 0.0
	inBand := frequency >= a.cfg.BandLowHz && frequency <= a.cfg.BandHighHz
	if inBand && strength > a.cfg.StrengthFloor {
		sf := clamp((strength-a.cfg.StrengthFloor)/(a.cfg.StrengthSaturation-a.cfg.StrengthFloor), 0, 1)
		// Prominence ramp saturates at ten times its floor.
		pf := clamp((prominence-a.cfg.ProminenceFloor)/(9*a.cfg.ProminenceFloor), 0, 1)

		hits := 0
		for i := 0; i < a.persistFilled; i++ {
			if a.persistence[i] {
				hits++
			}
		}
		persist := float64(hits) / float64(a.persistFilled)

		ampPenalty := 1.0
		if amp > a.cfg.MaxTremorAmplitude {
			ampPenalty = clamp(1-(amp-a.cfg.MaxTremorAmplitude)/a.cfg.MaxTremorAmplitude, 0, 1)
		}

		likelihood = clamp(20+80*sf*pf*persist*ampPenalty, 0, 100)
	}
	if movement {
		// Gross motion caps the spectral evidence before the override, so
		// an embedded periodic component riding on a sweep can never leave
		// a residual likelihood.
		if likelihood > 70 {
			likelihood = 70
		}
		likelihood -= 70
		if likelihood < 0 {
			likelihood = 0
		}
	}
	return likelihood
}

// movementDetected reports whether the coefficient of variation of combined
// per-frame displacement exceeds the configured threshold, flagging gross
// voluntary motion.
func (a *Analyzer) movementDetected() bool {
	if a.displacement.Len() < minMovementSamples {
		return false
	}
	values := a.displacement.Values()
	mean := stat.Mean(values, nil)
	if mean <= 0 {
		return false
	}
	cov := stat.StdDev(values, nil) / mean
	return cov > a.cfg.MovementCoVThreshold
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
