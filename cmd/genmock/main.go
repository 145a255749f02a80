// Command genmock synthesizes idealized N-wave boom signatures and generates
// mock data fixtures for local runs and downstream test suites. It uses the
// actual ETL domain and loudness packages to ensure the transformed output
// matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -raw-out data/mock/boom_signatures_combined.json \
//	  -transformed-out data/mock/boom_loudness_transformed.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/boom-loudness-etl/internal/domain"
	"github.com/couchcryptid/boom-loudness-etl/internal/loudness"
	"github.com/jonboulle/clockwork"
)

// siteDef describes one synthesized boom site.
type siteDef struct {
	city       string
	lat, lon   float64
	countyFIPS string
	stateFIPS  string
	source     string
	date       time.Time
	hhmm       string
	durationMS float64
	peakPSF    float64
}

var summer = time.Date(2018, time.June, 21, 0, 0, 0, 0, time.UTC)
var winter = time.Date(2018, time.December, 21, 0, 0, 0, 0, time.UTC)

var sites = []siteDef{
	{city: "Dallas", lat: 32.835, lon: -97.298, countyFIPS: "48113", stateFIPS: "48", source: "radiosonde", date: summer, hhmm: "1200", durationMS: 280, peakPSF: 1.2},
	{city: "Dallas", lat: 32.835, lon: -97.298, countyFIPS: "48113", stateFIPS: "48", source: "radiosonde", date: winter, hhmm: "0000", durationMS: 280, peakPSF: 1.4},
	{city: "Denver", lat: 39.768, lon: -104.869, countyFIPS: "08031", stateFIPS: "08", source: "radiosonde", date: summer, hhmm: "1200", durationMS: 300, peakPSF: 0.9},
	{city: "Denver", lat: 39.768, lon: -104.869, countyFIPS: "08031", stateFIPS: "08", source: "radiosonde", date: winter, hhmm: "0000", durationMS: 300, peakPSF: 1.1},
	{city: "", lat: 36.0, lon: -98.0, source: "gfs", date: summer, hhmm: "0000", durationMS: 260, peakPSF: 1.0},
	{city: "", lat: 36.0, lon: -98.0, source: "gfs", date: summer, hhmm: "1200", durationMS: 260, peakPSF: 1.3},
	{city: "", lat: 40.5, lon: -112.0, source: "gfs", date: winter, hhmm: "0000", durationMS: 320, peakPSF: 0.8},
	{city: "", lat: 40.5, lon: -112.0, source: "gfs", date: winter, hhmm: "1200", durationMS: 320, peakPSF: 1.6},
}

const signatureSamples = 2400

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rawOut := flag.String("raw-out", "", "output path for raw signature JSON fixture")
	transformedOut := flag.String("transformed-out", "", "output path for transformed loudness JSON fixture")
	flag.Parse()

	if *rawOut == "" || *transformedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -raw-out, -transformed-out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2018, time.December, 22, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	rawRecords := make([]domain.RawSignatureRecord, 0, len(sites))
	transformed := make([]domain.LoudnessEvent, 0, len(sites))

	for _, site := range sites {
		rec := synthesize(site)
		event, err := transform(rec, site.date)
		if err != nil {
			return fmt.Errorf("transforming %s %s: %w", site.source, site.hhmm, err)
		}
		rawRecords = append(rawRecords, rec)
		transformed = append(transformed, event)
		log.Printf("%s %s %s: %.1f PLdB", site.source, site.date.Format("2006-01-02"), site.hhmm, event.Loudness.PLdB)
	}

	if err := writeJSON(*rawOut, rawRecords); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*transformedOut, transformed); err != nil {
		return fmt.Errorf("writing transformed fixture: %w", err)
	}
	log.Printf("wrote transformed fixture: %s", *transformedOut)

	return nil
}

// synthesize builds the collector-shaped record for a site.
func synthesize(site siteDef) domain.RawSignatureRecord {
	timeMS, pressure := loudness.NWave(site.durationMS, site.peakPSF, signatureSamples)
	return domain.RawSignatureRecord{
		City:       site.city,
		Lat:        formatFloat(site.lat),
		Lon:        formatFloat(site.lon),
		Time:       site.hhmm,
		Source:     site.source,
		CountyFIPS: site.countyFIPS,
		State:      site.stateFIPS,
		StepMS:     strconv.FormatFloat(timeMS[1]-timeMS[0], 'g', -1, 64),
		Pressure:   pressure,
		Comments:   "synthesized fixture",
	}
}

// transform runs the record through the same path the pipeline uses.
func transform(rec domain.RawSignatureRecord, date time.Time) (domain.LoudnessEvent, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return domain.LoudnessEvent{}, err
	}

	event, sig, err := domain.ParseRawEvent(domain.RawEvent{Value: payload, Timestamp: date})
	if err != nil {
		return domain.LoudnessEvent{}, err
	}

	pldb, err := loudness.PerceivedLoudness(sig.TimeAxis(), sig.Pressure, loudness.DefaultOptions())
	if err != nil {
		return domain.LoudnessEvent{}, err
	}

	return domain.EnrichLoudnessEvent(event, pldb, len(sig.Pressure)), nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
