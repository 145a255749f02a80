package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/boom-loudness-etl/internal/loudness"
)

// ParseRawEvent deserializes a RawEvent's value into a LoudnessEvent plus
// the pressure signature to feed the loudness calculator. It expects the
// flat JSON produced by the collector.
func ParseRawEvent(raw RawEvent) (LoudnessEvent, Signature, error) {
	var rec RawSignatureRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return LoudnessEvent{}, Signature{}, fmt.Errorf("parse raw event: %w", err)
	}

	lat := parseFloatOrZero(rec.Lat)
	lon := parseFloatOrZero(rec.Lon)
	step := parseFloatOrZero(rec.StepMS)
	if step <= 0 {
		return LoudnessEvent{}, Signature{}, fmt.Errorf("parse raw event: non-positive sample step %q", rec.StepMS)
	}
	if len(rec.Pressure) == 0 {
		return LoudnessEvent{}, Signature{}, fmt.Errorf("parse raw event: empty pressure signature")
	}
	eventTime := parseHHMM(raw.Timestamp, rec.Time)

	event := LoudnessEvent{
		ID:     generateID(rec.City, rec.Source, lat, lon, rec.Time),
		Source: normalizeSource(rec.Source),
		Geo:    Geo{Lat: lat, Lon: lon},
		Place: Place{
			City:       rec.City,
			County:     rec.County,
			CountyFIPS: rec.CountyFIPS,
			State:      rec.State,
		},
		EventTime: eventTime,
		Comments:  rec.Comments,

		RawPayload: raw.Value,
	}
	return event, Signature{StepMS: step, Pressure: rec.Pressure}, nil
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// normalizeSource validates the atmospheric source tag added by the collector.
// Accepts: "gfs", "radiosonde" (exact matches only).
func normalizeSource(value string) string {
	switch value {
	case "gfs", "radiosonde":
		return value
	default:
		return ""
	}
}

// parseHHMM combines a base date with an HHMM time string (e.g. "1200" → 12:00).
func parseHHMM(baseDate time.Time, hhmm string) time.Time {
	hhmm = strings.TrimSpace(hhmm)
	if len(hhmm) < 3 {
		return baseDate
	}
	if len(hhmm) == 3 {
		hhmm = "0" + hhmm
	}

	hour, errH := strconv.Atoi(hhmm[:2])
	mins, errM := strconv.Atoi(hhmm[2:])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || mins < 0 || mins > 59 {
		return baseDate
	}

	return time.Date(
		baseDate.Year(), baseDate.Month(), baseDate.Day(),
		hour, mins, 0, 0, time.UTC,
	)
}

// generateID produces a deterministic ID from the event's key fields.
// Reprocessing the same raw record yields the same ID, so downstream
// consumers can upsert idempotently during replays.
func generateID(city, source string, lat, lon float64, timeStr string) string {
	input := fmt.Sprintf("%s|%s|%.4f|%.4f|%s", city, source, lat, lon, timeStr)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if source == "" {
		return short
	}
	return source + "-" + short
}

// EnrichLoudnessEvent attaches the computed loudness metrics and the fields
// derived from them: annoyance percentage, exposure class, season, hourly
// time bucket, and the processing timestamp.
func EnrichLoudnessEvent(event LoudnessEvent, pldb float64, samples int) LoudnessEvent {
	event.Loudness = Loudness{
		PLdB:          pldb,
		Annoyance:     loudness.ExteriorAnnoyance(pldb),
		ExposureClass: loudness.ExposureClass(pldb),
		Samples:       samples,
	}
	event.Season = deriveSeason(event.EventTime)
	event.TimeBucket = deriveTimeBucket(event.EventTime)
	event.ProcessedAt = clock.Now()
	return event
}

// deriveSeason labels the event with the nearer solstice: "summer" for days
// closer to June 21, "winter" for days closer to December 21.
func deriveSeason(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	day := t.UTC().YearDay()
	summer := time.Date(t.Year(), time.June, 21, 0, 0, 0, 0, time.UTC).YearDay()
	dist := day - summer
	if dist < 0 {
		dist = -dist
	}
	if dist <= 91 { // within a quarter year of the June solstice
		return "summer"
	}
	return "winter"
}

// deriveTimeBucket truncates the event time to the hour in UTC.
// Returns zero time if the input is zero.
func deriveTimeBucket(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	return t.UTC().Truncate(time.Hour)
}

// SerializeLoudnessEvent marshals an event into an OutputEvent for the sink
// topic, keyed by event ID.
func SerializeLoudnessEvent(event LoudnessEvent) (OutputEvent, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize loudness event: %w", err)
	}
	return OutputEvent{
		Key:   []byte(event.ID),
		Value: data,
		Headers: map[string]string{
			"city":         event.Place.City,
			"source":       event.Source,
			"processed_at": event.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
