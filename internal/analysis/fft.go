// Package analysis provides frequency-domain diagnostics over recorded
// scalar series: which period dominates a tide trace, where the RLC current
// peaks, how ragged an energy log is.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the radix-2 discrete Fourier transform. Inputs whose length
// is not a power of two are zero-padded up to the next one.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	padded := make([]float64, n)
	copy(padded, data)
	return fft(padded)
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the magnitude of the positive-frequency half of the
// transform.
func PowerSpectrum(data []float64) []float64 {
	out := FFT(data)
	ps := make([]float64, len(out)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(out[i])
	}
	return ps
}

// DominantPeriod returns the period, in samples, of the strongest nonzero
// frequency bin, or 0 when the series is too short or flat.
func DominantPeriod(data []float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}
	best, bestVal := 0, 0.0
	for i := 1; i < len(ps); i++ { // skip the DC bin
		if ps[i] > bestVal {
			best, bestVal = i, ps[i]
		}
	}
	if best == 0 || bestVal == 0 {
		return 0
	}
	n := nextPow2(len(data))
	return float64(n) / float64(best)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
