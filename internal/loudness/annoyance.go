package loudness

// Exterior annoyance curve anchors: below the onset level nobody outdoors
// reports high annoyance, at the ceiling level everybody does, and between
// the two the response is linear in PLdB.
const (
	annoyanceOnset   = 72.412
	annoyanceSlope   = 5.7410605
	annoyanceCeiling = 89.866
)

// ExteriorAnnoyance returns the percentage (0-100) of the outdoor population
// expected to be highly annoyed by a boom of the given perceived level.
func ExteriorAnnoyance(pldb float64) float64 {
	switch {
	case pldb <= annoyanceOnset:
		return 0
	case pldb < annoyanceCeiling:
		return annoyanceSlope * (pldb - annoyanceOnset)
	default:
		return 100
	}
}

// ExposureClass buckets a perceived level into a label for user-facing
// queries, anchored on the annoyance curve: "quiet" below the onset,
// "severe" at or above the ceiling, and the linear region split at its
// midpoint into "perceptible" and "disturbing".
func ExposureClass(pldb float64) string {
	a := ExteriorAnnoyance(pldb)
	switch {
	case a == 0:
		return "quiet"
	case a < 50:
		return "perceptible"
	case a < 100:
		return "disturbing"
	default:
		return "severe"
	}
}
