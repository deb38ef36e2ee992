package domain

import (
	"math"
	"strconv"
)

// BoundField names one of the four coordinate inputs.
type BoundField string

const (
	LatMin BoundField = "latMin"
	LatMax BoundField = "latMax"
	LonMin BoundField = "lonMin"
	LonMax BoundField = "lonMax"
)

// KnownBoundField reports whether f names a coordinate input.
func KnownBoundField(f BoundField) bool {
	switch f {
	case LatMin, LatMax, LonMin, LonMax:
		return true
	}
	return false
}

// RawBounds holds coordinate inputs as entered, unparsed. Text is stored
// verbatim on every edit; parsing happens only at validation time.
type RawBounds struct {
	LatMin string `json:"latMin"`
	LatMax string `json:"latMax"`
	LonMin string `json:"lonMin"`
	LonMax string `json:"lonMax"`
}

// Set returns a copy of b with the named field replaced. Unknown fields are
// ignored.
func (b RawBounds) Set(field BoundField, raw string) RawBounds {
	switch field {
	case LatMin:
		b.LatMin = raw
	case LatMax:
		b.LatMax = raw
	case LonMin:
		b.LonMin = raw
	case LonMax:
		b.LonMax = raw
	}
	return b
}

// Bounds is a parsed, validated bounding box in WGS-84 degrees.
type Bounds struct {
	LatMin float64 `json:"latMin"`
	LatMax float64 `json:"latMax"`
	LonMin float64 `json:"lonMin"`
	LonMax float64 `json:"lonMax"`
}

// Parse converts the raw text fields to a Bounds. The second return is false
// unless all four fields parse to finite numbers with min strictly below max
// on both axes.
func (b RawBounds) Parse() (Bounds, bool) {
	latMin, ok1 := parseCoord(b.LatMin)
	latMax, ok2 := parseCoord(b.LatMax)
	lonMin, ok3 := parseCoord(b.LonMin)
	lonMax, ok4 := parseCoord(b.LonMax)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Bounds{}, false
	}
	if latMin >= latMax || lonMin >= lonMax {
		return Bounds{}, false
	}
	return Bounds{LatMin: latMin, LatMax: latMax, LonMin: lonMin, LonMax: lonMax}, true
}

// Geo is a WGS-84 latitude/longitude pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Center is the midpoint of each axis.
func (b Bounds) Center() Geo {
	return Geo{
		Lat: (b.LatMin + b.LatMax) / 2,
		Lon: (b.LonMin + b.LonMax) / 2,
	}
}

func parseCoord(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
