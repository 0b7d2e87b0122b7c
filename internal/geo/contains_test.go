package geo

import (
	"testing"

	"github.com/paulmach/orb"
)

func squareWithHole(code string, x0 float64) *CountryFeature {
	outer := orb.Ring{{x0, 0}, {x0 + 10, 0}, {x0 + 10, 10}, {x0, 10}, {x0, 0}}
	hole := orb.Ring{{x0 + 4, 4}, {x0 + 6, 4}, {x0 + 6, 6}, {x0 + 4, 6}, {x0 + 4, 4}}
	f, _ := NewCountryFeature(code, code, orb.Polygon{outer, hole})
	return f
}

func TestContainsHonoursHoles(t *testing.T) {
	f := squareWithHole("SQL", 0)
	cases := []struct {
		name     string
		lon      float64
		srcLat   float64
		expected bool
	}{
		{"inside outer", 2, 2, true},
		{"inside hole", 5, 5, false},
		{"outside", 15, 5, false},
		{"render lat not flipped", 2, RenderLat(2), false},
	}
	for _, c := range cases {
		if got := f.Contains(c.lon, RenderLat(c.srcLat)); got != c.expected {
			t.Errorf("%s: Contains = %v, want %v", c.name, got, c.expected)
		}
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	a := squareWithHole("AAA", 0)
	b := squareWithHole("BBB", 5)
	features := []*CountryFeature{a, b}

	if got := Resolve(features, 7, RenderLat(2)); got != a {
		t.Errorf("overlap resolved to %v, want AAA", got)
	}
	if got := Resolve(features, 14, RenderLat(2)); got != b {
		t.Errorf("got %v, want BBB", got)
	}
	if got := Resolve(features, 100, RenderLat(2)); got != nil {
		t.Errorf("open ocean resolved to %q", got.Code)
	}
}

func TestContainsEmptyFeature(t *testing.T) {
	f, _ := NewCountryFeature("NIL", "", orb.LineString{{0, 0}, {1, 1}})
	if !f.Empty() {
		t.Fatal("expected empty feature for non-areal geometry")
	}
	if f.Contains(0, 0) {
		t.Error("empty feature contains a point")
	}
}
