package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/boom-loudness-etl/internal/domain"
	"github.com/couchcryptid/boom-loudness-etl/internal/loudness"
	"github.com/couchcryptid/boom-loudness-etl/internal/observability"
)

// BoomTransformer implements Transformer: it parses a raw pressure signature,
// computes its perceived loudness, and enriches the event with annoyance,
// season, time bucket, and optional county population data.
type BoomTransformer struct {
	opts       loudness.Options
	population domain.PopulationSource
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewTransformer creates a BoomTransformer. Pass a nil population source to
// disable census enrichment.
func NewTransformer(opts loudness.Options, population domain.PopulationSource, logger *slog.Logger, metrics *observability.Metrics) *BoomTransformer {
	return &BoomTransformer{
		opts:       opts,
		population: population,
		logger:     logger,
		metrics:    metrics,
	}
}

func (t *BoomTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	event, sig, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	pldb, err := loudness.PerceivedLoudness(sig.TimeAxis(), sig.Pressure, t.opts)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("compute loudness for %s: %w", event.ID, err)
	}
	t.metrics.PerceivedLoudness.Observe(pldb)

	event = domain.EnrichLoudnessEvent(event, pldb, len(sig.Pressure))
	event = domain.EnrichWithPopulation(ctx, event, t.population, t.logger)

	return domain.SerializeLoudnessEvent(event)
}
