package domain

import (
	"context"
	"log/slog"
)

// PopulationEstimate holds county population data returned by a provider.
type PopulationEstimate struct {
	Population int64
	Vintage    int // estimate vintage year
	CountyName string
}

// PopulationSource provides county population figures.
type PopulationSource interface {
	// CountyPopulation returns the population estimate for a 3-digit county
	// FIPS code within a 2-digit state FIPS code.
	CountyPopulation(ctx context.Context, stateFIPS, countyFIPS string) (PopulationEstimate, error)
}

// EnrichWithPopulation attempts to attach a county population figure to an
// event. If source is nil or the lookup fails, the event is returned with
// PopulationSource set accordingly (graceful degradation).
func EnrichWithPopulation(ctx context.Context, event LoudnessEvent, source PopulationSource, logger *slog.Logger) LoudnessEvent {
	if source == nil {
		return event
	}

	stateFIPS, countyFIPS := splitFIPS(event.Place.CountyFIPS, event.Place.State)
	if stateFIPS == "" || countyFIPS == "" {
		event.PopulationSource = "original"
		return event
	}

	est, err := source.CountyPopulation(ctx, stateFIPS, countyFIPS)
	if err != nil {
		logger.Warn("population enrichment failed",
			"event_id", event.ID,
			"state_fips", stateFIPS,
			"county_fips", countyFIPS,
			"error", err,
		)
		event.PopulationSource = "failed"
		return event
	}
	if est.Population == 0 {
		event.PopulationSource = "original"
		return event
	}

	event.Population = est.Population
	event.PopulationVintage = est.Vintage
	if event.Place.County == "" {
		event.Place.County = est.CountyName
	}
	event.PopulationSource = "census"
	return event
}

// splitFIPS resolves the state and county pieces from a 5-digit county FIPS
// code, falling back to the record's state field for the state part.
func splitFIPS(countyFIPS, state string) (string, string) {
	switch len(countyFIPS) {
	case 5:
		return countyFIPS[:2], countyFIPS[2:]
	case 3:
		if len(state) == 2 {
			return state, countyFIPS
		}
	}
	return "", ""
}
