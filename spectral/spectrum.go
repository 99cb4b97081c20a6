// Package spectral computes single-sided magnitude spectra and band
// statistics for short uniform-rate signals.
package spectral

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum is the single-sided magnitude spectrum of one uniform signal,
// covering bins 0..N/2 where N is the zero-padded transform length.
type Spectrum struct {
	Magnitudes  []float64
	Frequencies []float64 // Hz, Frequencies[i] = i*SampleRate/N
	SampleRate  float64
}

// Estimate computes the magnitude spectrum of a uniform-rate signal: subtract
// the mean, apply a Hann window, zero-pad to the next power of two and run a
// real FFT. Returns ok=false when fewer than two samples are available, in
// which case the caller skips the cycle and retains its last state.
func Estimate(values []float64, sampleRate float64) (Spectrum, bool) {
	n := len(values)
	if n < 2 || sampleRate <= 0 {
		return Spectrum{}, false
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	padded := nextPowerOfTwo(n)
	buf := make([]float64, padded)
	for i, v := range values {
		// Hann window over the unpadded length.
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = (v - mean) * w
	}

	fft := fourier.NewFFT(padded)
	coeffs := fft.Coefficients(nil, buf)

	mags := make([]float64, len(coeffs))
	freqs := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
		freqs[i] = float64(i) * sampleRate / float64(padded)
	}
	return Spectrum{Magnitudes: mags, Frequencies: freqs, SampleRate: sampleRate}, true
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
