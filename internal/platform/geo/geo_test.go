package geo

import (
	"math"
	"testing"
)

type testSite struct {
	name string
	lat  float64
	lon  float64
}

func (s testSite) Location() Point { return Point{Lat: s.lat, Lon: s.lon} }

func TestDistance_ZeroAtIdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{37.50, 127.03},
		{-33.87, 151.21},
		{89.9, -179.9},
	}
	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(%v,%v self) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{37.50, 127.03, 37.57, 126.98},
		{0, 0, 10, 10},
		{-45, 170, 45, -170},
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// Seoul City Hall to Gangnam Station is roughly 8.7 km.
	d := Distance(37.5663, 126.9779, 37.4979, 127.0276)
	if d < 8000 || d > 10000 {
		t.Errorf("Distance = %v m, want roughly 8-10 km", d)
	}
}

func TestRankByDistance_SortedAscending(t *testing.T) {
	origin := Point{Lat: 37.50, Lon: 127.03}
	sites := []testSite{
		{name: "far", lat: 37.70, lon: 127.30},
		{name: "near", lat: 37.51, lon: 127.04},
		{name: "mid", lat: 37.55, lon: 127.10},
	}

	ranked := RankByDistance(origin, sites)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked sites, got %d", len(ranked))
	}
	want := []string{"near", "mid", "far"}
	for i, name := range want {
		if ranked[i].Candidate.name != name {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Candidate.name, name)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Distance < ranked[i-1].Distance {
			t.Errorf("ranked distances not ascending at %d", i)
		}
	}
}

func TestRankByDistance_Deterministic(t *testing.T) {
	origin := Point{Lat: 37.50, Lon: 127.03}
	sites := []testSite{
		{name: "a", lat: 37.52, lon: 127.05},
		{name: "b", lat: 37.48, lon: 127.01},
		{name: "c", lat: 37.52, lon: 127.05}, // duplicate of a, tie on distance
		{name: "d", lat: 37.60, lon: 127.20},
	}

	first := RankByDistance(origin, sites)
	second := RankByDistance(origin, sites)
	for i := range first {
		if first[i].Candidate.name != second[i].Candidate.name {
			t.Fatalf("ranking not deterministic at %d: %q vs %q",
				i, first[i].Candidate.name, second[i].Candidate.name)
		}
	}
	// Stable sort keeps input order for the tied pair.
	idxA, idxC := -1, -1
	for i, r := range first {
		switch r.Candidate.name {
		case "a":
			idxA = i
		case "c":
			idxC = i
		}
	}
	if idxA > idxC {
		t.Errorf("tie not broken by input order: a at %d, c at %d", idxA, idxC)
	}
}

func TestFilterWithinRadius(t *testing.T) {
	ranked := []Ranked[testSite]{
		{Candidate: testSite{name: "in1"}, Distance: 2000},
		{Candidate: testSite{name: "edge"}, Distance: 10000},
		{Candidate: testSite{name: "out"}, Distance: 15000},
	}

	kept := FilterWithinRadius(ranked, 10000)
	if len(kept) != 2 {
		t.Fatalf("expected 2 within radius, got %d", len(kept))
	}
	if kept[0].Candidate.name != "in1" || kept[1].Candidate.name != "edge" {
		t.Errorf("unexpected survivors: %q, %q", kept[0].Candidate.name, kept[1].Candidate.name)
	}
	for _, r := range kept {
		if r.Distance > 10000 {
			t.Errorf("candidate %q beyond radius kept", r.Candidate.name)
		}
	}
}
