package tremor

import "github.com/parkinsense/biosignal/landmark"

// Config holds the tuning parameters for the tremor pipeline. The defaults
// are empirically chosen screening heuristics, not clinically validated
// thresholds.
type Config struct {
	// WindowSeconds is the raw sample retention per channel (seconds).
	WindowSeconds float64

	// TargetRate is the uniform resampling rate (Hz). Must exceed twice the
	// band top to keep the tremor band below Nyquist.
	TargetRate float64

	// BandLowHz/BandHighHz bound the tremor band. The default 3.5-7.5 Hz
	// spans classical 4-6 Hz parkinsonian tremor with margin.
	BandLowHz  float64
	BandHighHz float64

	// AmplifyFactor scales fused band strength into the 0-100 score.
	AmplifyFactor float64

	// VoluntaryAmpThreshold is the RMS displacement above which the score is
	// penalized as likely voluntary motion (normalized coordinates).
	VoluntaryAmpThreshold float64

	// AmplitudeScoreScale converts RMS displacement into the fallback score
	// used when spectral strength yields zero.
	AmplitudeScoreScale float64

	// MovementCoVThreshold flags gross voluntary motion when the coefficient
	// of variation of combined per-frame displacement exceeds it.
	MovementCoVThreshold float64

	// StrengthFloor and StrengthSaturation bound the likelihood strength
	// ramp: 0 at the floor, 1 at saturation.
	StrengthFloor      float64
	StrengthSaturation float64

	// ProminenceFloor anchors the likelihood prominence ramp, which
	// saturates at ten times the floor.
	ProminenceFloor float64

	// MaxTremorAmplitude is the largest RMS displacement still plausible for
	// pathological tremor; larger displacement discounts the likelihood.
	MaxTremorAmplitude float64

	// PersistenceCycles is how many recent classifier cycles feed the
	// persistence factor.
	PersistenceCycles int

	// ChannelWeights are the fusion weights per tracked point, decreasing
	// toward more stable joints. Weights are renormalized over the channels
	// actually present in a frame.
	ChannelWeights map[landmark.PointID]float64
}

// DefaultConfig returns the default tremor tuning.
func DefaultConfig() Config {
	return Config{
		WindowSeconds:         4.0,
		TargetRate:            50.0, // comfortably above 2x the 7.5 Hz band top
		BandLowHz:             3.5,
		BandHighHz:            7.5,
		AmplifyFactor:         2.0,
		VoluntaryAmpThreshold: 0.02,
		AmplitudeScoreScale:   0.04,
		MovementCoVThreshold:  0.02,
		StrengthFloor:         0.02,
		StrengthSaturation:    0.40,
		ProminenceFloor:       0.01,
		MaxTremorAmplitude:    0.01,
		PersistenceCycles:     5,
		ChannelWeights: map[landmark.PointID]float64{
			landmark.HandIndexTip: 0.5,
			landmark.HandIndexMid: 0.3,
			landmark.HandWrist:    0.2,
		},
	}
}
