// Package atmosphere models the atmospheric inputs to a boom loudness
// study: GFS gridded model profiles and balloon radiosonde soundings.
//
// GFS profiles arrive on the model's isobaric levels with heights in feet;
// heights are converted to metres on ingest. Surface elevation is recovered
// from surface pressure with the inverted barometric formula used by the
// study's processing scripts.
package atmosphere

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/umahmood/haversine"
)

const (
	feetPerMetre       = 0.3048
	seaLevelPressurePa = 101325.0
)

// Profile is a single-column atmospheric profile: parallel per-level slices
// plus the surface pressure at the column's location.
type Profile struct {
	Lat float64
	Lon float64

	HeightM     []float64 // above sea level, metres
	Temperature []float64 // kelvin
	WindX       []float64 // zonal wind, m/s
	WindY       []float64 // meridional wind, m/s
	Humidity    []float64 // relative humidity, percent

	SurfacePressure float64 // pascals
}

// Validate checks that the per-level slices agree in length and that
// heights strictly increase, which downstream propagation inputs require.
func (p *Profile) Validate() error {
	n := len(p.HeightM)
	if n == 0 {
		return errors.New("atmosphere: profile has no levels")
	}
	if len(p.Temperature) != n || len(p.WindX) != n || len(p.WindY) != n || len(p.Humidity) != n {
		return fmt.Errorf("atmosphere: level count mismatch: heights=%d temps=%d windx=%d windy=%d humidity=%d",
			n, len(p.Temperature), len(p.WindX), len(p.WindY), len(p.Humidity))
	}
	for i := 1; i < n; i++ {
		if p.HeightM[i] <= p.HeightM[i-1] {
			return fmt.Errorf("atmosphere: heights not strictly increasing at level %d", i)
		}
	}
	return nil
}

// SurfaceElevationM returns the column's surface elevation derived from its
// surface pressure.
func (p *Profile) SurfaceElevationM() float64 {
	return PressureAltitudeM(p.SurfacePressure)
}

// HeightsFromFeet converts a slice of heights in feet to metres.
func HeightsFromFeet(feet []float64) []float64 {
	m := make([]float64, len(feet))
	for i, f := range feet {
		m[i] = f * feetPerMetre
	}
	return m
}

// PressureAltitudeM inverts the barometric formula to give the altitude in
// metres at which the standard atmosphere reaches pressure pa.
func PressureAltitudeM(pa float64) float64 {
	return 1e5 / 2.5577 * (1 - math.Pow(pa/seaLevelPressurePa, 1/5.2558))
}

// PressureAltitudeFt is PressureAltitudeM in feet.
func PressureAltitudeFt(pa float64) float64 {
	return PressureAltitudeM(pa) / feetPerMetre
}

// Grid is a set of profile columns at known coordinates, as produced from a
// GFS model snapshot.
type Grid struct {
	Columns []Profile
}

// Nearest returns the grid column closest to (lat, lon) by great-circle
// distance, along with that distance in kilometres.
func (g *Grid) Nearest(lat, lon float64) (*Profile, float64, error) {
	if len(g.Columns) == 0 {
		return nil, 0, errors.New("atmosphere: empty grid")
	}

	target := haversine.Coord{Lat: lat, Lon: lon}
	best := 0
	bestKM := math.Inf(1)
	for i := range g.Columns {
		_, km := haversine.Distance(target, haversine.Coord{Lat: g.Columns[i].Lat, Lon: g.Columns[i].Lon})
		if km < bestKM {
			bestKM = km
			best = i
		}
	}
	return &g.Columns[best], bestKM, nil
}

// Station is a radiosonde launch site.
type Station struct {
	Code string // NWS site identifier
	WMO  string // WMO station number
	Name string
	Lat  float64
	Lon  float64
}

// The two cities covered by the 2018 study datasets.
var (
	StationDallas = Station{Code: "FWD", WMO: "72249", Name: "Dallas/Fort Worth", Lat: 32.835, Lon: -97.298}
	StationDenver = Station{Code: "DNR", WMO: "72469", Name: "Denver", Lat: 39.768, Lon: -104.869}
)

// StationByCity maps a study city name to its radiosonde station.
func StationByCity(city string) (Station, bool) {
	switch city {
	case "Dallas", "dallas":
		return StationDallas, true
	case "Denver", "denver":
		return StationDenver, true
	default:
		return Station{}, false
	}
}

// Sounding is one radiosonde observation: a profile plus launch metadata.
type Sounding struct {
	Station  Station
	Observed time.Time
	Profile  Profile
}

// Validate checks the embedded profile and that the observation time is set.
func (s *Sounding) Validate() error {
	if s.Observed.IsZero() {
		return errors.New("atmosphere: sounding has no observation time")
	}
	return s.Profile.Validate()
}
