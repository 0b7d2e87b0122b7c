package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Contains reports whether the render-convention point (lon, lat) lies in
// the feature: inside some polygon's outer ring and outside all its holes.
func (f *CountryFeature) Contains(lon, lat float64) bool {
	if f == nil || f.Empty() {
		return false
	}
	pt := orb.Point{lon, lat}
	if !f.bound.Contains(pt) {
		return false
	}
	for _, poly := range f.Shape {
		if planar.PolygonContains(poly, pt) {
			return true
		}
	}
	return false
}

// Resolve returns the first feature, in iteration order, that contains the
// render-convention point, or nil.
func Resolve(features []*CountryFeature, lon, lat float64) *CountryFeature {
	for _, f := range features {
		if f.Contains(lon, lat) {
			return f
		}
	}
	return nil
}
