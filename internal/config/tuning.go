// Package config provides the JSON-loadable tuning overlay for the
// analyzers. All fields are optional pointers so a partial file only
// overrides what it names; the Get* accessors fall back to the documented
// defaults. The same values are otherwise reachable through the per-analyzer
// Config structs, which this package populates.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parkinsense/biosignal/face"
	"github.com/parkinsense/biosignal/landmark"
	"github.com/parkinsense/biosignal/tremor"
)

// Tuning is the root tuning overlay. Every numeric constant of the scoring
// heuristics lives here; none of the defaults are clinically validated.
type Tuning struct {
	// Tremor params
	WindowSeconds         *float64 `json:"window_seconds,omitempty"`
	TargetRateHz          *float64 `json:"target_rate_hz,omitempty"`
	BandLowHz             *float64 `json:"band_low_hz,omitempty"`
	BandHighHz            *float64 `json:"band_high_hz,omitempty"`
	AmplifyFactor         *float64 `json:"amplify_factor,omitempty"`
	VoluntaryAmpThreshold *float64 `json:"voluntary_amp_threshold,omitempty"`
	MovementCoVThreshold  *float64 `json:"movement_cov_threshold,omitempty"`
	StrengthFloor         *float64 `json:"strength_floor,omitempty"`
	ProminenceFloor       *float64 `json:"prominence_floor,omitempty"`
	MaxTremorAmplitude    *float64 `json:"max_tremor_amplitude,omitempty"`
	PersistenceCycles     *int     `json:"persistence_cycles,omitempty"`
	FingertipWeight       *float64 `json:"fingertip_weight,omitempty"`
	MidFingerWeight       *float64 `json:"mid_finger_weight,omitempty"`
	WristWeight           *float64 `json:"wrist_weight,omitempty"`

	// Facial params
	EARThreshold      *float64 `json:"ear_threshold,omitempty"`
	ConsecutiveFrames *int     `json:"consecutive_frames,omitempty"`
	DropThreshold     *float64 `json:"drop_threshold,omitempty"`
	BlinkDebounce     *string  `json:"blink_debounce,omitempty"` // duration string like "350ms"
	SmoothingSamples  *int     `json:"smoothing_samples,omitempty"`
	ExpressivityK     *float64 `json:"expressivity_k,omitempty"`
	BrowWeight        *float64 `json:"brow_weight,omitempty"`
}

// Empty returns a Tuning with all fields unset.
func Empty() *Tuning {
	return &Tuning{}
}

// Load reads a Tuning overlay from a JSON file. The path must have a .json
// extension and stay under the max file size. Omitted fields keep their
// defaults, so partial configs are safe.
func Load(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	t := Empty()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return t, nil
}

// Validate checks that the overlay values are usable.
func (t *Tuning) Validate() error {
	if t.BandLowHz != nil && t.BandHighHz != nil && *t.BandLowHz >= *t.BandHighHz {
		return fmt.Errorf("band_low_hz (%f) must be below band_high_hz (%f)", *t.BandLowHz, *t.BandHighHz)
	}
	if t.TargetRateHz != nil && *t.TargetRateHz <= 0 {
		return fmt.Errorf("target_rate_hz must be positive, got %f", *t.TargetRateHz)
	}
	if t.WindowSeconds != nil && *t.WindowSeconds <= 0 {
		return fmt.Errorf("window_seconds must be positive, got %f", *t.WindowSeconds)
	}
	if t.EARThreshold != nil && (*t.EARThreshold <= 0 || *t.EARThreshold >= 1) {
		return fmt.Errorf("ear_threshold must be in (0, 1), got %f", *t.EARThreshold)
	}
	if t.ConsecutiveFrames != nil && *t.ConsecutiveFrames < 1 {
		return fmt.Errorf("consecutive_frames must be at least 1, got %d", *t.ConsecutiveFrames)
	}
	if t.PersistenceCycles != nil && *t.PersistenceCycles < 1 {
		return fmt.Errorf("persistence_cycles must be at least 1, got %d", *t.PersistenceCycles)
	}
	if t.StrengthFloor != nil {
		if *t.StrengthFloor <= 0 {
			return fmt.Errorf("strength_floor must be positive, got %f", *t.StrengthFloor)
		}
		if sat := tremor.DefaultConfig().StrengthSaturation; *t.StrengthFloor >= sat {
			return fmt.Errorf("strength_floor (%f) must be below the strength saturation (%f)", *t.StrengthFloor, sat)
		}
	}
	if t.ProminenceFloor != nil && *t.ProminenceFloor <= 0 {
		return fmt.Errorf("prominence_floor must be positive, got %f", *t.ProminenceFloor)
	}
	if t.MaxTremorAmplitude != nil && *t.MaxTremorAmplitude <= 0 {
		return fmt.Errorf("max_tremor_amplitude must be positive, got %f", *t.MaxTremorAmplitude)
	}
	if t.BlinkDebounce != nil && *t.BlinkDebounce != "" {
		if _, err := time.ParseDuration(*t.BlinkDebounce); err != nil {
			return fmt.Errorf("invalid blink_debounce '%s': %w", *t.BlinkDebounce, err)
		}
	}
	for name, w := range map[string]*float64{
		"fingertip_weight":  t.FingertipWeight,
		"mid_finger_weight": t.MidFingerWeight,
		"wrist_weight":      t.WristWeight,
	} {
		if w != nil && *w < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", name, *w)
		}
	}
	return nil
}

// GetBlinkDebounce parses and returns the blink debounce as a duration.
func (t *Tuning) GetBlinkDebounce() time.Duration {
	if t.BlinkDebounce == nil || *t.BlinkDebounce == "" {
		return 350 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*t.BlinkDebounce)
	if err != nil {
		return 350 * time.Millisecond // default on parse error
	}
	return d
}

// TremorConfig builds the tremor pipeline configuration from the overlay,
// starting from the documented defaults.
func (t *Tuning) TremorConfig() tremor.Config {
	cfg := tremor.DefaultConfig()
	setF(&cfg.WindowSeconds, t.WindowSeconds)
	setF(&cfg.TargetRate, t.TargetRateHz)
	setF(&cfg.BandLowHz, t.BandLowHz)
	setF(&cfg.BandHighHz, t.BandHighHz)
	setF(&cfg.AmplifyFactor, t.AmplifyFactor)
	setF(&cfg.VoluntaryAmpThreshold, t.VoluntaryAmpThreshold)
	setF(&cfg.MovementCoVThreshold, t.MovementCoVThreshold)
	setF(&cfg.StrengthFloor, t.StrengthFloor)
	setF(&cfg.ProminenceFloor, t.ProminenceFloor)
	setF(&cfg.MaxTremorAmplitude, t.MaxTremorAmplitude)
	setI(&cfg.PersistenceCycles, t.PersistenceCycles)
	setWeight(cfg.ChannelWeights, landmark.HandIndexTip, t.FingertipWeight)
	setWeight(cfg.ChannelWeights, landmark.HandIndexMid, t.MidFingerWeight)
	setWeight(cfg.ChannelWeights, landmark.HandWrist, t.WristWeight)
	return cfg
}

// FaceConfig builds the facial analyzer configuration from the overlay.
func (t *Tuning) FaceConfig() face.Config {
	cfg := face.DefaultConfig()
	setF(&cfg.EARThreshold, t.EARThreshold)
	setI(&cfg.ConsecutiveFrames, t.ConsecutiveFrames)
	setF(&cfg.DropThreshold, t.DropThreshold)
	cfg.DebounceSeconds = t.GetBlinkDebounce().Seconds()
	setI(&cfg.SmoothingSamples, t.SmoothingSamples)
	setF(&cfg.ExpressivityK, t.ExpressivityK)
	setF(&cfg.BrowWeight, t.BrowWeight)
	return cfg
}

func setF(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setI(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setWeight(m map[landmark.PointID]float64, id landmark.PointID, v *float64) {
	if v != nil {
		m[id] = *v
	}
}
