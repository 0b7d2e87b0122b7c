package scene

import (
	"math"
	"testing"

	"asciiglobe/internal/geo"

	"github.com/paulmach/orb"
)

// brazil is a coarse outline of Brazil in source (GeoJSON) coordinates.
func brazil(t *testing.T) *geo.CountryFeature {
	t.Helper()
	ring := orb.Ring{
		{-73, -5}, {-60, 5}, {-50, 4}, {-35, -5}, {-40, -22},
		{-53, -33}, {-58, -30}, {-70, -10}, {-73, -5},
	}
	f, skipped := geo.NewCountryFeature("BRA", "Brazil", orb.Polygon{ring})
	if len(skipped) != 0 {
		t.Fatalf("skipped rings: %v", skipped)
	}
	return f
}

// facing returns a picker whose camera looks straight at the
// source-convention location.
func facing(sourceLat, lon float64, features ...*geo.CountryFeature) *Picker {
	cam := NewCamera()
	o := NewOrbitControls(cam)
	o.Face(geo.RenderLat(sourceLat), lon)
	return &Picker{Camera: cam, Features: features, CellAspect: testViewport.CellAspect}
}

func TestPickBrazil(t *testing.T) {
	p := facing(-10, -52, brazil(t))
	code, ok := p.Pick(40, 20, testViewport.Width, testViewport.Height)
	if !ok || code != "BRA" {
		t.Fatalf("Pick = %q, %v; want BRA", code, ok)
	}

	h := p.Trace(40, 20, testViewport.Width, testViewport.Height)
	if h.Label || !h.Globe {
		t.Errorf("expected a globe hit, got %+v", h)
	}
	if math.Abs(h.Location.Lat-geo.RenderLat(-10)) > 1e-6 || math.Abs(h.Location.Lon+52) > 1e-6 {
		t.Errorf("located at %+v, want render lat %v lon -52", h.Location, geo.RenderLat(-10))
	}
}

func TestPickOcean(t *testing.T) {
	p := facing(-20, -25, brazil(t))
	if code, ok := p.Pick(40, 20, testViewport.Width, testViewport.Height); ok {
		t.Errorf("open ocean resolved to %q", code)
	}
	if h := p.Trace(40, 20, testViewport.Width, testViewport.Height); !h.Globe {
		t.Error("ocean click should still hit the globe")
	}
	if h := p.Trace(0, 0, testViewport.Width, testViewport.Height); h.Globe || h.Code != "" {
		t.Errorf("corner hit %+v, want nothing", h)
	}
}

func TestPickLabelFirst(t *testing.T) {
	// The label sits over the ocean so only the label can resolve it.
	p := facing(-20, -25)
	p.Labels = []Label{NewLabel("BRA", "Brazil", -20, -25)}

	h := p.Trace(40, 20, testViewport.Width, testViewport.Height)
	if !h.Label || h.Code != "BRA" {
		t.Fatalf("Trace = %+v, want label hit", h)
	}
	if i := p.LabelAt(40, 21, testViewport.Width, testViewport.Height); i != -1 {
		t.Errorf("LabelAt below the text = %d", i)
	}
	if i := p.LabelAt(20, 20, testViewport.Width, testViewport.Height); i != -1 {
		t.Errorf("LabelAt away from text = %d", i)
	}
}

func TestFarSideLabelHidden(t *testing.T) {
	p := facing(-36, 128+180)
	l := NewLabel("KOR", "South Korea", 36, 128)
	vp := Viewport{Width: testViewport.Width, Height: testViewport.Height, CellAspect: 2}
	if r, ok := l.Rect(p.Camera, vp); ok {
		t.Errorf("far side label visible at %+v", r)
	}
}

func TestLabelWidth(t *testing.T) {
	p := facing(-20, -25)
	l := NewLabel("KOR", "South Korea", -20, -25)
	r, ok := l.Rect(p.Camera, testViewport)
	if !ok {
		t.Fatal("label not visible")
	}
	if r.W != len("South Korea") || r.H != 1 {
		t.Errorf("rect = %+v", r)
	}
	if !r.Contains(40, 20) {
		t.Errorf("rect %+v not centered on anchor", r)
	}
}
