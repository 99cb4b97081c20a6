package spectral

// BandResult summarizes the spectral energy of one channel inside a
// frequency band.
type BandResult struct {
	// Strength is the fraction of total spectral power inside the band, 0..1.
	Strength float64

	// PeakFrequency and PeakMagnitude locate the strongest in-band bin.
	PeakFrequency float64
	PeakMagnitude float64

	// Prominence is the peak magnitude minus the minimum magnitude in a
	// +/-3 bin neighborhood. A narrow dominant peak scores high; broadband
	// noise scores near zero. Zero when the peak lands on the DC bin.
	Prominence float64

	// BandPower and TotalPower are the summed squared magnitudes inside the
	// band and over the whole spectrum.
	BandPower  float64
	TotalPower float64
}

// prominenceNeighborhood is the half-width, in bins, of the window used to
// find the local magnitude floor around a peak.
const prominenceNeighborhood = 3

// AnalyzeBand computes band power, strength, peak and prominence for the
// band [lowHz, highHz] of s. A spectrum with zero total power yields a zero
// result rather than NaN.
func AnalyzeBand(s Spectrum, lowHz, highHz float64) BandResult {
	var r BandResult
	peakIdx := -1
	for i, m := range s.Magnitudes {
		p := m * m
		r.TotalPower += p
		f := s.Frequencies[i]
		if f < lowHz || f > highHz {
			continue
		}
		r.BandPower += p
		if peakIdx < 0 || m > r.PeakMagnitude {
			peakIdx = i
			r.PeakMagnitude = m
			r.PeakFrequency = f
		}
	}
	if r.TotalPower > 0 {
		r.Strength = r.BandPower / r.TotalPower
	}
	if peakIdx > 0 {
		low := peakIdx - prominenceNeighborhood
		if low < 0 {
			low = 0
		}
		high := peakIdx + prominenceNeighborhood
		if high > len(s.Magnitudes)-1 {
			high = len(s.Magnitudes) - 1
		}
		min := s.Magnitudes[low]
		for i := low + 1; i <= high; i++ {
			if s.Magnitudes[i] < min {
				min = s.Magnitudes[i]
			}
		}
		r.Prominence = r.PeakMagnitude - min
	}
	return r
}
