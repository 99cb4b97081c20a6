package face

// Config holds the tuning parameters for the facial analyzers. As with the
// tremor tuning, the defaults are screening heuristics, not validated
// clinical thresholds.
type Config struct {
	// EARThreshold is the smoothed eye-aspect-ratio below which the eye is
	// considered closing.
	EARThreshold float64

	// ConsecutiveFrames is how many consecutive below-threshold frames
	// establish a blink.
	ConsecutiveFrames int

	// DropThreshold catches blinks too brief to accumulate consecutive
	// frames: a single-frame fall in smoothed EAR beyond it counts as
	// blinking.
	DropThreshold float64

	// DebounceSeconds is the minimum gap between counted blinks, so
	// oscillation near the threshold cannot double-count one physical blink.
	DebounceSeconds float64

	// SmoothingSamples is the EAR smoothing buffer length.
	SmoothingSamples int

	// ExpressivityWindow is the rolling expressivity sample cap.
	ExpressivityWindow int

	// ExpressivityK is the half-saturation constant of the map from average
	// deviation to the bounded 0-100 expressivity percentage.
	ExpressivityK float64

	// BrowWeight scales the brow contribution to expressivity; brow
	// immobility is the stronger masking indicator.
	BrowWeight float64

	// Epsilon guards near-zero geometry denominators.
	Epsilon float64
}

// DefaultConfig returns the default facial tuning.
func DefaultConfig() Config {
	return Config{
		EARThreshold:       0.27,
		ConsecutiveFrames:  2,
		DropThreshold:      0.08,
		DebounceSeconds:    0.35,
		SmoothingSamples:   5,
		ExpressivityWindow: 100,
		ExpressivityK:      8.0,
		BrowWeight:         2.0,
		Epsilon:            1e-6,
	}
}
