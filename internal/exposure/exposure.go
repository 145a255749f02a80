// Package exposure computes the exposed-population table for a boom
// loudness study: county populations binned by predicted loudness,
// normalized into probability densities over PLdB.
package exposure

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/boom-loudness-etl/internal/loudness"
)

// CountyNoise is one county's population and its predicted boom loudness.
type CountyNoise struct {
	FIPS       string
	Name       string
	State      string
	Population float64
	PLdB       float64
}

// Table is the binned exposure result. Densities are normalized so that
// the sum of density times bin step equals one.
type Table struct {
	Min  float64
	Max  float64
	Step float64

	Centers           []float64
	PopulationDensity []float64 // population probability density per bin
	NoiseDensity      []float64 // county-count probability density per bin

	// Dropped counts input rows whose loudness fell outside [Min, Max).
	Dropped int
}

// DefaultBins covers the loudness range of the published study table.
func DefaultBins() []float64 {
	return Bins(75.5, 85.5, 10)
}

// Bins returns n+1 uniform bin dividers spanning [min, max].
func Bins(min, max float64, n int) []float64 {
	step := (max - min) / float64(n)
	dividers := make([]float64, n+1)
	for i := range dividers {
		dividers[i] = min + float64(i)*step
	}
	return dividers
}

// Compute bins the county rows over the given dividers and returns the
// normalized population and noise densities.
func Compute(rows []CountyNoise, dividers []float64) (*Table, error) {
	if len(dividers) < 2 {
		return nil, errors.New("exposure: need at least two bin dividers")
	}
	if len(rows) == 0 {
		return nil, errors.New("exposure: no county rows")
	}

	min, max := dividers[0], dividers[len(dividers)-1]
	step := dividers[1] - dividers[0]

	kept := make([]CountyNoise, 0, len(rows))
	for _, r := range rows {
		if r.PLdB >= min && r.PLdB < max {
			kept = append(kept, r)
		}
	}
	dropped := len(rows) - len(kept)
	if len(kept) == 0 {
		return nil, fmt.Errorf("exposure: all %d rows outside [%.1f, %.1f)", len(rows), min, max)
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].PLdB < kept[j].PLdB })
	noise := make([]float64, len(kept))
	pop := make([]float64, len(kept))
	totalPop := 0.0
	for i, r := range kept {
		noise[i] = r.PLdB
		pop[i] = r.Population
		totalPop += r.Population
	}
	if totalPop <= 0 {
		return nil, errors.New("exposure: total population is zero")
	}

	counts := stat.Histogram(nil, dividers, noise, nil)
	weighted := stat.Histogram(nil, dividers, noise, pop)

	n := len(dividers) - 1
	t := &Table{
		Min:               min,
		Max:               max,
		Step:              step,
		Centers:           make([]float64, n),
		PopulationDensity: make([]float64, n),
		NoiseDensity:      make([]float64, n),
		Dropped:           dropped,
	}
	for i := 0; i < n; i++ {
		t.Centers[i] = 0.5 * (dividers[i] + dividers[i+1])
		t.NoiseDensity[i] = counts[i] / (float64(len(kept)) * step)
		t.PopulationDensity[i] = weighted[i] / (totalPop * step)
	}
	return t, nil
}

// AnnoyedPopulation returns the expected number of highly annoyed people
// across all counties, weighting each population by the exterior annoyance
// percentage at its loudness level.
func AnnoyedPopulation(rows []CountyNoise) float64 {
	total := 0.0
	for _, r := range rows {
		total += r.Population * loudness.ExteriorAnnoyance(r.PLdB) / 100.0
	}
	return total
}
