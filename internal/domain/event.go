package domain

import (
	"context"
	"time"
)

// RawSignatureRecord represents the flat JSON structure produced by the
// collector: one ground pressure signature plus location metadata. Numeric
// metadata fields are strings, as in the collector's CSV-derived output.
type RawSignatureRecord struct {
	City       string    `json:"City"`
	Lat        string    `json:"Lat"`
	Lon        string    `json:"Lon"`
	Time       string    `json:"Time"`       // HHMM UTC
	Source     string    `json:"Source"`     // "gfs" or "radiosonde"
	CountyFIPS string    `json:"CountyFIPS"` // 5-digit county FIPS
	County     string    `json:"County"`
	State      string    `json:"State"` // 2-digit state FIPS
	StepMS     string    `json:"StepMS"`
	Pressure   []float64 `json:"Pressure"` // psf
	Comments   string    `json:"Comments"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Signature is a uniformly sampled ground pressure signature.
type Signature struct {
	StepMS   float64
	Pressure []float64
}

// TimeAxis materializes the signature's time samples in milliseconds.
func (s Signature) TimeAxis() []float64 {
	t := make([]float64, len(s.Pressure))
	for i := range t {
		t[i] = float64(i) * s.StepMS
	}
	return t
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat,omitempty"`
	Lon float64 `json:"lon,omitempty"`
}

// Place holds the event's administrative location references.
type Place struct {
	City       string `json:"city,omitempty"`
	County     string `json:"county,omitempty"`
	CountyFIPS string `json:"county_fips,omitempty"`
	State      string `json:"state,omitempty"`
}

// Loudness holds the computed loudness metrics for one signature.
type Loudness struct {
	PLdB          float64 `json:"pldb"`
	Annoyance     float64 `json:"annoyance"`                // percent highly annoyed outdoors
	ExposureClass string  `json:"exposure_class,omitempty"` // quiet, perceptible, disturbing, severe
	Samples       int     `json:"samples"`                  // signature length fed to the calculator
}

// LoudnessEvent is the domain-rich representation after loudness
// computation and enrichment.
type LoudnessEvent struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Geo        Geo       `json:"geo,omitempty"`
	Place      Place     `json:"place,omitempty"`
	Loudness   Loudness  `json:"loudness"`
	Season     string    `json:"season,omitempty"`
	EventTime  time.Time `json:"event_time"`
	TimeBucket time.Time `json:"time_bucket,omitempty"`
	Comments   string    `json:"comments,omitempty"`

	// Census enrichment fields.
	Population        int64  `json:"population,omitempty"`
	PopulationVintage int    `json:"population_vintage,omitempty"`
	PopulationSource  string `json:"population_source,omitempty"` // "census", "original", "failed"

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
