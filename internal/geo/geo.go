// Package geo implements the spherical geometry primitive the rest of
// the optimizer is built on: great-circle angular distance between two
// points on a unit sphere, expressed from precomputed trigonometric
// terms rather than raw latitude/longitude.
package geo

import (
	"math"

	"github.com/soniakeys/unit"
)

// Point holds the trigonometric terms of a latitude/longitude pair
// needed to compute great-circle distance without recomputing sin/cos
// on every query. Longitude is kept as a plain radian value; only
// latitude is decomposed, since every distance computation needs
// sin(lat) and cos(lat) but only the difference of longitudes.
type Point struct {
	SinLat, CosLat float64
	Lon            float64 // radians
}

// FromRad builds a Point from latitude and longitude in radians.
func FromRad(latRad, lonRad float64) Point {
	s, c := math.Sincos(latRad)
	return Point{SinLat: s, CosLat: c, Lon: lonRad}
}

// Delta returns the great-circle angular distance between a and b.
//
// The cosine of the angle can drift fractionally above 1 for two
// identical or near-identical points due to floating point error;
// acos of anything above 1 is NaN, so the result is clamped before
// the call. Clamping below -1 is not required for realistic tracks
// (antipodal fixes never occur on a single flight) but costs nothing
// and guards against garbage input.
func Delta(a, b Point) unit.Angle {
	x := a.SinLat*b.SinLat + a.CosLat*b.CosLat*math.Cos(a.Lon-b.Lon)
	switch {
	case x >= 1:
		return 0
	case x <= -1:
		return unit.Angle(math.Pi)
	default:
		return unit.Angle(math.Acos(x))
	}
}
