package geo

import (
	"fmt"

	"github.com/paulmach/orb"
)

// GeoJSONLatOffset shifts sign-flipped vector latitudes onto the raster's
// row convention.
const GeoJSONLatOffset = 25.0

// LatLon represents a geographic coordinate
type LatLon struct {
	Lat float64
	Lon float64
}

// RenderLat converts a source (GeoJSON/shapefile) latitude to the render
// convention shared by outlines, labels and hit-testing.
func RenderLat(sourceLat float64) float64 {
	return -sourceLat + GeoJSONLatOffset
}

// SourceLat is the inverse of RenderLat.
func SourceLat(renderLat float64) float64 {
	return GeoJSONLatOffset - renderLat
}

// GeometryError describes a ring that was dropped because it cannot bound
// an area.
type GeometryError struct {
	Feature string
	Polygon int
	Ring    int
	Points  int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: polygon %d ring %d has %d distinct points, need 3", e.Feature, e.Polygon, e.Ring, e.Points)
}

// CountryFeature is a country boundary in the render convention. Every
// point of Shape is orb.Point{lon, RenderLat(lat)}. Outline building and
// hit-testing both read Shape, so what is drawn is what is clickable.
type CountryFeature struct {
	Code  string
	Name  string
	Shape orb.MultiPolygon
	bound orb.Bound
}

// NewCountryFeature transforms a source-convention Polygon or MultiPolygon
// into a CountryFeature. Other geometry types yield a feature with an empty
// shape. Rings with fewer than three distinct points are dropped and
// reported; a polygon whose outer ring is dropped is dropped entirely.
func NewCountryFeature(code, name string, g orb.Geometry) (*CountryFeature, []error) {
	var polys orb.MultiPolygon
	switch geom := g.(type) {
	case orb.Polygon:
		polys = orb.MultiPolygon{geom}
	case orb.MultiPolygon:
		polys = geom
	}

	label := code
	if label == "" {
		label = name
	}

	f := &CountryFeature{Code: code, Name: name}
	var skipped []error
	for pi, poly := range polys {
		var out orb.Polygon
		for ri, ring := range poly {
			if n := distinctPoints(ring); n < 3 {
				skipped = append(skipped, &GeometryError{Feature: label, Polygon: pi, Ring: ri, Points: n})
				if ri == 0 {
					break
				}
				continue
			}
			out = append(out, transformRing(ring))
		}
		if len(out) > 0 {
			f.Shape = append(f.Shape, out)
		}
	}
	f.bound = f.Shape.Bound()
	return f, skipped
}

// Bound returns the render-convention bounding box of the feature.
func (f *CountryFeature) Bound() orb.Bound {
	return f.bound
}

// Empty reports whether the feature has no usable polygons.
func (f *CountryFeature) Empty() bool {
	return len(f.Shape) == 0
}

func transformRing(ring orb.Ring) orb.Ring {
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		out[i] = orb.Point{p.Lon(), RenderLat(p.Lat())}
	}
	return out
}

func distinctPoints(ring orb.Ring) int {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	seen := make(map[orb.Point]struct{}, n)
	for _, p := range ring[:n] {
		seen[p] = struct{}{}
	}
	return len(seen)
}
