package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parkinsense/biosignal/landmark"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmptyOverlayYieldsDefaults(t *testing.T) {
	tuning := Empty()

	tc := tuning.TremorConfig()
	if tc.BandLowHz != 3.5 || tc.BandHighHz != 7.5 {
		t.Errorf("default band = [%v, %v], want [3.5, 7.5]", tc.BandLowHz, tc.BandHighHz)
	}
	if tc.AmplifyFactor != 2.0 {
		t.Errorf("default amplify factor = %v, want 2.0", tc.AmplifyFactor)
	}
	if got := tc.ChannelWeights[landmark.HandIndexTip]; got != 0.5 {
		t.Errorf("default fingertip weight = %v, want 0.5", got)
	}

	fc := tuning.FaceConfig()
	if fc.EARThreshold != 0.27 {
		t.Errorf("default EAR threshold = %v, want 0.27", fc.EARThreshold)
	}
	if fc.DebounceSeconds != 0.35 {
		t.Errorf("default debounce = %v, want 0.35", fc.DebounceSeconds)
	}
}

func TestLoadPartialOverlay(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{
		"band_low_hz": 3.0,
		"band_high_hz": 8.0,
		"ear_threshold": 0.25,
		"blink_debounce": "500ms",
		"fingertip_weight": 0.6
	}`)

	tuning, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tc := tuning.TremorConfig()
	if tc.BandLowHz != 3.0 || tc.BandHighHz != 8.0 {
		t.Errorf("band = [%v, %v], want [3.0, 8.0]", tc.BandLowHz, tc.BandHighHz)
	}
	if tc.AmplifyFactor != 2.0 {
		t.Errorf("amplify factor = %v, want default 2.0 untouched", tc.AmplifyFactor)
	}
	if got := tc.ChannelWeights[landmark.HandIndexTip]; got != 0.6 {
		t.Errorf("fingertip weight = %v, want 0.6", got)
	}

	fc := tuning.FaceConfig()
	if fc.EARThreshold != 0.25 {
		t.Errorf("EAR threshold = %v, want 0.25", fc.EARThreshold)
	}
	if fc.DebounceSeconds != 0.5 {
		t.Errorf("debounce = %v, want 0.5", fc.DebounceSeconds)
	}
}

func TestLoadRejectsBadExtension(t *testing.T) {
	path := writeConfig(t, "tuning.yaml", `{}`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for non-JSON extension")
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{not json`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	bad := func(mutate func(*Tuning)) *Tuning {
		tun := Empty()
		mutate(tun)
		return tun
	}
	f := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }
	s := func(v string) *string { return &v }

	cases := []struct {
		name   string
		tuning *Tuning
	}{
		{"inverted band", bad(func(t *Tuning) { t.BandLowHz = f(8); t.BandHighHz = f(3) })},
		{"zero target rate", bad(func(t *Tuning) { t.TargetRateHz = f(0) })},
		{"negative window", bad(func(t *Tuning) { t.WindowSeconds = f(-1) })},
		{"ear threshold out of range", bad(func(t *Tuning) { t.EARThreshold = f(1.5) })},
		{"zero consecutive frames", bad(func(t *Tuning) { t.ConsecutiveFrames = i(0) })},
		{"zero persistence", bad(func(t *Tuning) { t.PersistenceCycles = i(0) })},
		{"bad debounce", bad(func(t *Tuning) { t.BlinkDebounce = s("soon") })},
		{"zero strength floor", bad(func(t *Tuning) { t.StrengthFloor = f(0) })},
		{"strength floor above saturation", bad(func(t *Tuning) { t.StrengthFloor = f(0.5) })},
		{"zero prominence floor", bad(func(t *Tuning) { t.ProminenceFloor = f(0) })},
		{"zero max tremor amplitude", bad(func(t *Tuning) { t.MaxTremorAmplitude = f(0) })},
		{"negative weight", bad(func(t *Tuning) { t.WristWeight = f(-0.1) })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.tuning.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := Empty().Validate(); err != nil {
		t.Errorf("empty overlay should validate, got %v", err)
	}
}

func TestGetBlinkDebounceFallback(t *testing.T) {
	tun := Empty()
	if got := tun.GetBlinkDebounce(); got != 350*time.Millisecond {
		t.Errorf("default debounce = %v, want 350ms", got)
	}
	bad := "nope"
	tun.BlinkDebounce = &bad
	if got := tun.GetBlinkDebounce(); got != 350*time.Millisecond {
		t.Errorf("unparsable debounce should fall back to 350ms, got %v", got)
	}
}
