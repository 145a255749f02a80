// Package domain models sonic boom ground signature data and the loudness
// events derived from it.
//
// # Data Source
//
// Ground pressure signatures originate from the study's propagation runs:
// one signature per ground location, computed against either a NOAA Global
// Forecast System (GFS) model column or a radiosonde sounding for the two
// study cities (Dallas/Fort Worth FWD, Denver DNR). The upstream collector
// publishes each signature as flat JSON to the Kafka source topic, tagging
// it with its atmospheric source and location metadata. The propagation
// tool itself is export-controlled and never runs inside this system; only
// its output signatures flow through here.
//
// # Signature Conventions
//
// Pressure samples are in lb/ft² (psf) at a constant sample spacing given
// in milliseconds ("StepMS"). Numeric metadata fields arrive as strings,
// matching the collector's CSV-derived JSON; unparseable values degrade to
// zero rather than failing the record.
//
// Time format:
//
//	HHMM in 24-hour UTC notation, e.g. "1200" = 12:00 UTC.
//	Three-digit values are zero-padded: "930" → "0930".
//	The date portion comes from the Kafka message timestamp (set by the
//	collector from the model run date). Combined to a full UTC time.
//
// Season classification:
//
//	The study keys its continental datasets by solstice. An event's season
//	is the nearer solstice by day of year: days closer to June 21 are
//	"summer", days closer to December 21 are "winter".
//
// County references:
//
//	CountyFIPS is the 5-digit FIPS code (2-digit state + 3-digit county),
//	State the 2-digit state FIPS code, as used by the Census population
//	estimates API. Population enrichment is optional; events without county
//	references pass through with PopulationSource "original".
//
// # ID Generation
//
// Event IDs are deterministic SHA-256 hashes of city|source|lat|lon|time.
// This enables idempotent upserts downstream and replay safety without
// distributed coordination. See [generateID].
package domain
