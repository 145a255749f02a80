package loudness

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables_Lengths(t *testing.T) {
	assert.Len(t, bandCenters, 42)
	assert.Len(t, bandLowerLimits, 42)
	assert.Len(t, bandUpperLimits, 42)
	assert.Len(t, soneTable, 140)
	assert.Len(t, summationFactors, 95)
	assert.Len(t, summationSones, 95)

	// Band limits must bracket their centers and chain into a partition.
	for i := range bandCenters {
		assert.Less(t, bandLowerLimits[i], bandCenters[i], "band %d", i)
		assert.Greater(t, bandUpperLimits[i], bandCenters[i], "band %d", i)
		if i > 0 {
			assert.Equal(t, bandUpperLimits[i-1], bandLowerLimits[i], "band %d", i)
		}
	}
}

func TestInterpClamped(t *testing.T) {
	xs := []float64{1, 2, 4}
	ys := []float64{10, 20, 40}

	assert.Equal(t, 10.0, interpClamped(1, xs, ys, -1, 99))
	assert.Equal(t, 15.0, interpClamped(1.5, xs, ys, -1, 99))
	assert.Equal(t, 30.0, interpClamped(3, xs, ys, -1, 99))
	assert.Equal(t, 40.0, interpClamped(4, xs, ys, -1, 99))
	assert.Equal(t, -1.0, interpClamped(0.5, xs, ys, -1, 99))
	assert.Equal(t, 99.0, interpClamped(5, xs, ys, -1, 99))
}

func TestEquivalentLoudness_BandRules(t *testing.T) {
	spl := make([]float64, len(bandCenters))
	for i := range spl {
		spl[i] = 100
	}
	spl[26] = 130 // above the 400 Hz upper limit

	leq := equivalentLoudness(spl)

	assert.InDelta(t, 92.0, leq[41], 1e-9, "band above 10 kHz: l + 4*(39-i)")
	assert.InDelta(t, 100.0, leq[37], 1e-9, "reference region passes through")
	assert.InDelta(t, 96.0, leq[33], 1e-9, "2 dB per band below 2.5 kHz")
	assert.InDelta(t, 92.0, leq[30], 1e-9, "flat -8 dB region")
	assert.InDelta(t, 83.0, leq[20], 1e-9, "100 Hz band within 400 Hz limits")
	assert.InDelta(t, 122.0, leq[26], 1e-9, "400 Hz band above the upper limit")
	assert.InDelta(t, 12.404074151161453, leq[10], 1e-9, "10 Hz band through the 80 Hz contour")
}

func TestTotalLoudness_SingleBand(t *testing.T) {
	leq := make([]float64, len(bandCenters))
	for i := range leq {
		leq[i] = math.Inf(-1)
	}
	leq[30] = 32 // 32 dB equivalent loudness is exactly 1 sone

	total, sones := totalLoudness(leq)
	assert.InDelta(t, 1.0, sones[30], 1e-9)
	assert.InDelta(t, 1.0, total, 1e-9, "single band: summation adds nothing")
}

func TestPerceivedLoudness_SingleBandIs32PLdB(t *testing.T) {
	// PLdB = 32 + 9*log2(total sones), so one sone must give exactly 32.
	assert.InDelta(t, 32.0, 32.0+9.0*math.Log2(1.0), 1e-12)
}

func TestAnalyze_PureToneLandsInItsBand(t *testing.T) {
	// 100 Hz tone at 0.01 psf for 350 ms. Parseval puts the one-sided
	// spectral energy at A²T/2; with the critical-time division and the
	// psf reference pressure that is ~88.6 dB in the 89.1-112 Hz band.
	const n = 3500
	timeMS := make([]float64, n)
	pressure := make([]float64, n)
	for i := 0; i < n; i++ {
		timeMS[i] = 0.1 * float64(i)
		pressure[i] = 0.01 * math.Sin(2*math.Pi*0.1*timeMS[i])
	}

	a, err := Analyze(timeMS, pressure, Options{PadFront: 1, PadRear: 1, WindowLen: 200})
	require.NoError(t, err)

	peak := 0
	for j := range a.BandSPL {
		if a.BandSPL[j] > a.BandSPL[peak] {
			peak = j
		}
	}
	assert.Equal(t, 20, peak, "energy should land in the 100 Hz band")
	assert.InDelta(t, 88.6, a.BandSPL[20], 1.5, "band SPL from Parseval estimate")
	assert.Greater(t, a.PLdB, 55.0)
	assert.Less(t, a.PLdB, 90.0)
}

func TestPerceivedLoudness_LouderBoomScoresHigher(t *testing.T) {
	timeQ, pressureQ := NWave(200, 0.5, 2000)
	timeL, pressureL := NWave(200, 2.0, 2000)

	opts := Options{PadFront: 1, PadRear: 1, WindowLen: 400}
	quiet, err := PerceivedLoudness(timeQ, pressureQ, opts)
	require.NoError(t, err)
	loud, err := PerceivedLoudness(timeL, pressureL, opts)
	require.NoError(t, err)

	assert.Greater(t, loud, quiet)
	assert.Greater(t, quiet, 50.0)
	assert.Less(t, loud, 140.0)
}

func TestPerceivedLoudness_InputValidation(t *testing.T) {
	timeMS, pressure := NWave(200, 1.0, 500)

	_, err := PerceivedLoudness(timeMS[:10], pressure, DefaultOptions())
	assert.ErrorIs(t, err, ErrSignatureLength)

	_, err = PerceivedLoudness(timeMS, pressure, Options{WindowLen: 300})
	assert.ErrorIs(t, err, ErrWindowLength)

	_, err = PerceivedLoudness([]float64{0}, []float64{0}, Options{})
	assert.ErrorIs(t, err, ErrSignatureLength)

	silent := make([]float64, len(pressure))
	_, err = PerceivedLoudness(timeMS, silent, Options{WindowLen: 100, PadFront: 1, PadRear: 1})
	assert.ErrorIs(t, err, ErrNoEnergy)
}

func TestWindow_TapersEndsOnly(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = 1
	}

	out := window(data, 10)
	assert.Equal(t, 0.0, out[0], "first sample fully tapered")
	assert.Equal(t, 1.0, out[50], "middle untouched")
	assert.Less(t, out[99], 1.0, "last sample tapered")
	assert.Greater(t, out[9], out[0])

	// Original slice untouched.
	assert.Equal(t, 1.0, data[0])
}

func TestPad_PreservesSpacingAndValues(t *testing.T) {
	timeMS := []float64{0, 1, 2, 3}
	pressure := []float64{1, 2, 3, 4}

	padT, padP := pad(timeMS, pressure, 4, 8)
	require.Len(t, padT, 16)
	require.Len(t, padP, 16)

	assert.Equal(t, []float64{0, 0, 0, 0, 1, 2, 3, 4, 0, 0, 0, 0, 0, 0, 0, 0}, padP)
	for i := 1; i < len(padT); i++ {
		assert.InDelta(t, 1.0, padT[i]-padT[i-1], 1e-12, "uniform spacing at %d", i)
	}
}

func TestImportSignature(t *testing.T) {
	input := "# header one\n# header two\n0.0 0.00\n0.1, 0.25\n0.2\t0.50\n\n0.3 0.25\n"
	timeMS, pressure, err := ImportSignature(strings.NewReader(input), 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.0, 0.1, 0.2, 0.3}, timeMS)
	assert.Equal(t, []float64{0.0, 0.25, 0.5, 0.25}, pressure)
}

func TestImportSignature_BadRow(t *testing.T) {
	_, _, err := ImportSignature(strings.NewReader("0.0 ok\n"), 0)
	assert.Error(t, err)
}

func TestExteriorAnnoyance(t *testing.T) {
	assert.Equal(t, 0.0, ExteriorAnnoyance(60))
	assert.Equal(t, 0.0, ExteriorAnnoyance(72.412))
	assert.InDelta(t, 5.7410605, ExteriorAnnoyance(73.412), 1e-9)
	assert.InDelta(t, 100.0, ExteriorAnnoyance(89.866), 1e-9)
	assert.Equal(t, 100.0, ExteriorAnnoyance(120))
}

func TestExposureClass(t *testing.T) {
	assert.Equal(t, "quiet", ExposureClass(70))
	assert.Equal(t, "perceptible", ExposureClass(75))
	assert.Equal(t, "disturbing", ExposureClass(84))
	assert.Equal(t, "severe", ExposureClass(95))
}
