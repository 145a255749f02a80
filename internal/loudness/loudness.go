package loudness

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/integrate"
)

// Reference pressure in psf (2.900755e-9 psi) and the critical integration
// time for impulsive sounds, per Shepherd & Sullivan.
const (
	referencePressure = 2.900755e-9 * 144
	criticalTime      = 0.07
)

var (
	// ErrSignatureLength is returned when the time and pressure series have
	// mismatched or insufficient sample counts.
	ErrSignatureLength = errors.New("loudness: time and pressure must have equal length of at least 2")

	// ErrWindowLength is returned when the Hann taper would cover more than
	// the whole signature.
	ErrWindowLength = errors.New("loudness: window length exceeds half the signature length")

	// ErrNoEnergy is returned for signatures whose spectrum carries no
	// measurable energy in any band (e.g. all-zero pressure).
	ErrNoEnergy = errors.New("loudness: signature has no measurable energy")
)

// Options controls signal conditioning ahead of the frequency analysis.
type Options struct {
	// PadFront and PadRear give the length of the zero padding added before
	// and after the signature, as multiples of the signature length.
	// Padding increases the frequency resolution of the FFT output.
	PadFront int
	PadRear  int

	// WindowLen is the number of points over which a Hann taper is applied
	// at each end of the signature, so the padded signal forms a complete
	// cycle for the FFT.
	WindowLen int
}

// DefaultOptions mirror the conditioning used for the published loudness
// predictions: single-length padding on both sides, 800-point taper.
func DefaultOptions() Options {
	return Options{PadFront: 1, PadRear: 1, WindowLen: 800}
}

// Analysis holds the result of a Mark VII loudness calculation along with
// per-band intermediates, useful for diagnostics and fixture generation.
type Analysis struct {
	PLdB       float64
	TotalSones float64

	// Per one-third octave band, indexed as bandCenters.
	BandSPL    []float64 // sound pressure level, dB
	BandLeq    []float64 // equivalent loudness re 3150 Hz, dB
	BandSones  []float64 // loudness, sones
	BandEnergy []float64 // integrated spectral energy over the band, psf^2

	// One-sided power spectrum of the conditioned signature.
	Freq  []float64
	Power []float64
}

// PerceivedLoudness computes the perceived loudness in PLdB of a pressure
// signature. Time is in milliseconds, pressure in lb/ft² (psf); both series
// must be sampled at a constant rate with equal spacing.
func PerceivedLoudness(timeMS, pressure []float64, opts Options) (float64, error) {
	a, err := Analyze(timeMS, pressure, opts)
	if err != nil {
		return 0, err
	}
	return a.PLdB, nil
}

// Analyze runs the full Mark VII procedure and returns the per-band
// intermediates along with the PLdB value.
func Analyze(timeMS, pressure []float64, opts Options) (*Analysis, error) {
	if len(timeMS) != len(pressure) || len(pressure) < 2 {
		return nil, ErrSignatureLength
	}
	if opts.WindowLen < 0 || 2*opts.WindowLen > len(pressure) {
		return nil, ErrWindowLength
	}
	if opts.PadFront < 0 || opts.PadRear < 0 {
		return nil, fmt.Errorf("loudness: negative padding %d/%d", opts.PadFront, opts.PadRear)
	}
	if timeMS[1] <= timeMS[0] {
		return nil, fmt.Errorf("loudness: non-increasing time axis")
	}

	windowed := window(pressure, opts.WindowLen)
	timePad, pressurePad := pad(timeMS, windowed, opts.PadFront*len(pressure), opts.PadRear*len(pressure))
	freq, power := powerSpectrum(timePad, pressurePad)
	energy, spl := bandPressureLevels(freq, power)
	leq := equivalentLoudness(spl)
	total, sones := totalLoudness(leq)
	if total <= 0 {
		return nil, ErrNoEnergy
	}

	return &Analysis{
		PLdB:       32.0 + 9.0*math.Log2(total),
		TotalSones: total,
		BandSPL:    spl,
		BandLeq:    leq,
		BandSones:  sones,
		BandEnergy: energy,
		Freq:       freq,
		Power:      power,
	}, nil
}

// window applies a Hann taper over winLen points at each end of the
// signature so the padded signal starts and ends at zero.
func window(pressure []float64, winLen int) []float64 {
	out := make([]float64, len(pressure))
	copy(out, pressure)
	if winLen == 0 {
		return out
	}

	// First and last halves of a 2·winLen-point Hann window.
	full := 2 * winLen
	for i := 0; i < winLen; i++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(full-1)))
		out[i] *= w
	}
	for i := 0; i < winLen; i++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(winLen+i)/float64(full-1)))
		out[len(out)-winLen+i] *= w
	}
	return out
}

// pad zero-pads the pressure series with front and rear samples and extends
// the time axis to match, preserving the sample spacing.
func pad(timeMS, pressure []float64, front, rear int) ([]float64, []float64) {
	n := len(pressure)
	step := timeMS[1] - timeMS[0]

	padP := make([]float64, front+n+rear)
	copy(padP[front:], pressure)

	frontSpan := float64(front) * step
	padT := make([]float64, front+n+rear)
	for i := 0; i < front; i++ {
		padT[i] = timeMS[0] + float64(i)*step
	}
	for i, t := range timeMS {
		padT[front+i] = t + frontSpan
	}
	last := timeMS[n-1] + frontSpan
	for i := 0; i < rear; i++ {
		padT[front+n+i] = last + float64(i+1)*step
	}
	return padT, padP
}

// powerSpectrum computes the one-sided power spectrum of the conditioned
// signature. Time is in milliseconds, so dt is converted to seconds; the
// power carries dt² so band integration yields energy.
func powerSpectrum(timeMS, pressure []float64) ([]float64, []float64) {
	n := len(pressure)
	dt := (timeMS[n-1] - timeMS[0]) / float64(n) * 1e-3

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, pressure)

	half := n / 2
	freq := make([]float64, half)
	power := make([]float64, half)
	for k := 0; k < half; k++ {
		freq[k] = float64(k) / (float64(n) * dt)
		p := cmplxAbs2(coeffs[k]) * dt * dt
		if k > 0 {
			p *= 2 // fold the negative frequencies into the one-sided spectrum
		}
		power[k] = p
	}
	return interpolateBandEdges(freq, power)
}

func cmplxAbs2(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}

// interpolateBandEdges inserts interpolated power samples at every band
// boundary so each band integration sees its exact limits, then returns the
// merged spectrum sorted by frequency.
func interpolateBandEdges(freq, power []float64) ([]float64, []float64) {
	edges := make([]float64, 0, len(bandLowerLimits)+1)
	edges = append(edges, bandLowerLimits...)
	edges = append(edges, bandUpperLimits[len(bandUpperLimits)-1])

	type sample struct{ f, p float64 }
	merged := make([]sample, 0, len(freq)+len(edges))
	for i := range freq {
		merged = append(merged, sample{freq[i], power[i]})
	}
	for _, e := range edges {
		merged = append(merged, sample{e, interpClamped(e, freq, power, power[0], power[len(power)-1])})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].f < merged[j].f })

	outF := make([]float64, len(merged))
	outP := make([]float64, len(merged))
	for i, s := range merged {
		outF[i] = s.f
		outP[i] = s.p
	}
	return outF, outP
}

// bandPressureLevels integrates the power spectrum over each one-third
// octave band and converts the band energy to a sound pressure level.
func bandPressureLevels(freq, power []float64) (energy, spl []float64) {
	nBands := len(bandCenters)
	energy = make([]float64, nBands)
	spl = make([]float64, nBands)

	for j := 0; j < nBands; j++ {
		lo := sort.SearchFloat64s(freq, bandLowerLimits[j])
		hi := lo
		for hi < len(freq) && freq[hi] <= bandUpperLimits[j] {
			hi++
		}
		if hi-lo >= 2 {
			energy[j] = integrate.Trapezoidal(freq[lo:hi], power[lo:hi])
		}
		energy[j] /= criticalTime
		spl[j] = 10*math.Log10(energy[j]/(referencePressure*referencePressure)) - 3
	}
	return energy, spl
}

// equivalentLoudness transforms band sound pressure levels into equivalent
// loudness values referenced to the 3150 Hz band, per Stevens' band rules.
// Bands below 80 Hz are first remapped through the 80 Hz contour; bands in
// the 100-400 Hz range go through the 400 Hz dB-limit transformation.
func equivalentLoudness(spl []float64) []float64 {
	leq := make([]float64, len(spl))
	for i, l := range spl {
		switch {
		case i > 39:
			leq[i] = l + 4.0*float64(39-i)
		case i >= 35:
			leq[i] = l
		case i >= 32:
			leq[i] = l - 2.0*float64(35-i)
		case i >= 27:
			leq[i] = l - 8.0
		case i >= 20:
			// 400 Hz limit parameters for bands 20 (100 Hz) through 26 (400 Hz).
			x := 1.5 * float64(26-i)
			leq[i] = loudnessLimits400(bandCenters[i], 76.0+x, 121.0+x, l, x)
		default:
			// Remap through the 80 Hz contour, then treat as an 80 Hz band.
			contoured := 160.0 - (160.0-l)*math.Log10(80.0)/math.Log10(bandCenters[i])
			leq[i] = loudnessLimits400(80.0, 86.5, 131.5, contoured, 10.5)
		}
	}
	return leq
}

// loudnessLimits400 applies the equivalent loudness transformation for
// low-frequency bands, choosing the contour by the dB limits Stevens
// tabulated for the 400 Hz reference.
func loudnessLimits400(fCentral, lowerLimit, upperLimit, level, x float64) float64 {
	switch {
	case level <= lowerLimit:
		a := 115.0 - (115.0-level)*math.Log10(400.0)/math.Log10(fCentral)
		return a - 8.0
	case level <= upperLimit:
		return level - x - 8.0
	default:
		a := 160.0 - (160.0-level)*math.Log10(400.0)/math.Log10(fCentral)
		return a - 8.0
	}
}

// totalLoudness converts per-band equivalent loudness to sones and applies
// Stevens' summation rule: the loudest band counts fully, the rest are
// scaled by a summation factor looked up from the loudest band's level.
func totalLoudness(leq []float64) (float64, []float64) {
	levels := intRange(1, len(soneTable)) // table covers 1..140 dB
	sones := make([]float64, len(leq))
	sum := 0.0
	maxSone := 0.0
	for i, l := range leq {
		s := interpClamped(l, levels, soneTable, 0, soneTable[len(soneTable)-1])
		sones[i] = s
		sum += s
		if s > maxSone {
			maxSone = s
		}
	}

	f := interpClamped(maxSone, summationSones, summationFactors, 0, summationFactors[len(summationFactors)-1])
	return maxSone + f*(sum-maxSone), sones
}

// intRange returns [lo, lo+1, ..., lo+n-1] as floats.
func intRange(lo, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(lo + i)
	}
	return out
}

// interpClamped linearly interpolates y at x over the ascending abscissa xs,
// returning left below the range and right above it.
func interpClamped(x float64, xs, ys []float64, left, right float64) float64 {
	if x < xs[0] {
		return left
	}
	if x >= xs[len(xs)-1] {
		if x > xs[len(xs)-1] {
			return right
		}
		return ys[len(ys)-1]
	}

	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return ys[i]
	}
	// xs[i-1] < x < xs[i]
	t := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return ys[i-1] + t*(ys[i]-ys[i-1])
}
