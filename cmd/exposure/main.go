// Command exposure builds the county population-by-loudness table from a
// JSON file of per-county loudness predictions. It prints the normalized
// population and county-count densities per loudness bin, plus the total
// population above the exterior annoyance onset.
//
// Usage:
//
//	go run ./cmd/exposure -input data/county_loudness.json
//	go run ./cmd/exposure -input data/county_loudness.json -min 70 -max 90 -bins 20
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/boom-loudness-etl/internal/exposure"
)

// countyRow mirrors the shape of the county loudness JSON export.
type countyRow struct {
	FIPS       string  `json:"fips"`
	Name       string  `json:"name"`
	State      string  `json:"state"`
	Population float64 `json:"population"`
	PLdB       float64 `json:"pldb"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	input := flag.String("input", "", "path to county loudness JSON")
	min := flag.Float64("min", 75.5, "lower loudness bound in PLdB")
	max := flag.Float64("max", 85.5, "upper loudness bound in PLdB")
	bins := flag.Int("bins", 10, "number of loudness bins")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -input")
	}

	rows, err := readRows(*input)
	if err != nil {
		return err
	}

	dividers, err := buildDividers(*min, *max, *bins)
	if err != nil {
		return err
	}

	table, err := exposure.Compute(rows, dividers)
	if err != nil {
		return err
	}

	fmt.Printf("counties: %d (dropped outside [%.1f, %.1f): %d)\n\n", len(rows), table.Min, table.Max, table.Dropped)
	fmt.Printf("%10s  %20s  %16s\n", "PLdB", "population density", "county density")
	for i, center := range table.Centers {
		fmt.Printf("%10.2f  %20.6f  %16.6f\n", center, table.PopulationDensity[i], table.NoiseDensity[i])
	}

	annoyed := exposure.AnnoyedPopulation(rows)
	fmt.Printf("\npopulation-weighted annoyance equivalent: %.0f people\n", annoyed)
	return nil
}

// buildDividers turns the range flags into histogram dividers. Partial
// overrides are honored: each flag defaults to the study value, so
// overriding only -min or -max still narrows the range.
func buildDividers(min, max float64, bins int) ([]float64, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("-bins must be positive, got %d", bins)
	}
	if min >= max {
		return nil, fmt.Errorf("-min %.2f must be below -max %.2f", min, max)
	}
	return exposure.Bins(min, max, bins), nil
}

func readRows(path string) ([]exposure.CountyNoise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var raw []countyRow
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	rows := make([]exposure.CountyNoise, len(raw))
	for i, r := range raw {
		rows[i] = exposure.CountyNoise{
			FIPS:       r.FIPS,
			Name:       r.Name,
			State:      r.State,
			Population: r.Population,
			PLdB:       r.PLdB,
		}
	}
	return rows, nil
}
