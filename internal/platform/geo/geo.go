// Package geo provides the distance math used to rank emergency centers
// around an incident location.
package geo

import (
	"math"
	"sort"
)

const earthRadiusMeters = 6371000.0

// Distance returns the haversine great-circle distance in meters between two
// lat/lon points. It is symmetric, deterministic, and zero for identical
// points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// Point is an origin or candidate location.
type Point struct {
	Lat float64
	Lon float64
}

// Locatable is anything with a position that can be ranked by distance.
type Locatable interface {
	Location() Point
}

// Ranked pairs a candidate with its frozen distance from the origin.
type Ranked[T Locatable] struct {
	Candidate T
	Distance  float64
}

// RankByDistance annotates each candidate with its distance from origin and
// returns them sorted ascending. Ties keep input order.
func RankByDistance[T Locatable](origin Point, candidates []T) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(candidates))
	for _, c := range candidates {
		loc := c.Location()
		ranked = append(ranked, Ranked[T]{
			Candidate: c,
			Distance:  Distance(origin.Lat, origin.Lon, loc.Lat, loc.Lon),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	return ranked
}

// FilterWithinRadius drops ranked candidates farther than radiusMeters.
func FilterWithinRadius[T Locatable](ranked []Ranked[T], radiusMeters float64) []Ranked[T] {
	out := make([]Ranked[T], 0, len(ranked))
	for _, r := range ranked {
		if r.Distance <= radiusMeters {
			out = append(out, r)
		}
	}
	return out
}
