package mesh

import (
	"asciiglobe/internal/geo"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
)

// OutlineHeight lifts boundary lines just above the globe surface.
const OutlineHeight = 0.01

// HoleOpacity scales the opacity of hole rings relative to outer rings.
const HoleOpacity = 0.4

// Style describes how a line strip is drawn.
type Style struct {
	Color    [3]uint8
	Opacity  float64
	Additive bool
}

// Predefined outline styles for highlighted countries and the global set.
var (
	CountryOutline = Style{Color: [3]uint8{0xff, 0xff, 0xb3}, Opacity: 0.5, Additive: true}
	GlobalOutline  = Style{Color: [3]uint8{0xcb, 0xcb, 0xcb}, Opacity: 0.2}
)

// LineStrip is a closed polyline of projected points.
type LineStrip struct {
	Points []mgl64.Vec3
	Style  Style
	Hole   bool
}

// BuildOutline projects every ring of the feature into a closed line
// strip. Outer rings use style as given; holes are dimmed.
func BuildOutline(f *geo.CountryFeature, style Style) []LineStrip {
	if f == nil {
		return nil
	}
	var strips []LineStrip
	for _, poly := range f.Shape {
		for i, ring := range poly {
			s := style
			if i > 0 {
				s.Opacity = style.Opacity * HoleOpacity
			}
			strips = append(strips, LineStrip{Points: projectRing(ring), Style: s, Hole: i > 0})
		}
	}
	return strips
}

// BuildOutlines builds the outlines of a feature set in order.
func BuildOutlines(features []*geo.CountryFeature, style Style) []LineStrip {
	var strips []LineStrip
	for _, f := range features {
		strips = append(strips, BuildOutline(f, style)...)
	}
	return strips
}

func projectRing(ring orb.Ring) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, 0, len(ring)+1)
	for _, p := range ring {
		pts = append(pts, geo.Project(p.Lat(), p.Lon(), OutlineHeight))
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		pts = append(pts, pts[0])
	}
	return pts
}
