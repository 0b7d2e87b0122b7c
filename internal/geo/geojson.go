package geo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DecodeGeoJSON returns the areal geometries of a GeoJSON document. It
// accepts a FeatureCollection, a single Feature or a bare geometry object.
// Features without geometry and non-areal geometry types are skipped.
func DecodeGeoJSON(data []byte) ([]orb.Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	var features []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("decode feature collection: %w", err)
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("decode feature: %w", err)
		}
		features = []*geojson.Feature{f}
	case "Polygon", "MultiPolygon":
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("decode geometry: %w", err)
		}
		return []orb.Geometry{g.Geometry()}, nil
	case "":
		return nil, fmt.Errorf("decode geojson: missing type")
	default:
		return nil, nil
	}

	geoms := make([]orb.Geometry, 0, len(features))
	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		if isAreal(f.Geometry) {
			geoms = append(geoms, f.Geometry)
		}
	}
	return geoms, nil
}

// DecodeCountry decodes a GeoJSON document into a single CountryFeature
// carrying the externally assigned code and name. All areal geometries in
// the document are merged into the feature's shape.
func DecodeCountry(code, name string, data []byte) (*CountryFeature, []error, error) {
	geoms, err := DecodeGeoJSON(data)
	if err != nil {
		return nil, nil, err
	}

	var merged orb.MultiPolygon
	for _, g := range geoms {
		switch geom := g.(type) {
		case orb.Polygon:
			merged = append(merged, geom)
		case orb.MultiPolygon:
			merged = append(merged, geom...)
		}
	}

	f, skipped := NewCountryFeature(code, name, merged)
	return f, skipped, nil
}

// DecodeBoundaries decodes a boundary set where each areal feature becomes
// its own CountryFeature. Name and code are taken from common Natural Earth
// property keys when present.
func DecodeBoundaries(data []byte) ([]*CountryFeature, []error, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, nil, fmt.Errorf("decode geojson: %w", err)
	}
	if head.Type != "FeatureCollection" {
		f, skipped, err := DecodeCountry("", "", data)
		if err != nil {
			return nil, nil, err
		}
		return []*CountryFeature{f}, skipped, nil
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode feature collection: %w", err)
	}

	var (
		out     []*CountryFeature
		skipped []error
	)
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil || !isAreal(f.Geometry) {
			continue
		}
		code := firstProperty(f.Properties, "ISO_A3", "iso_a3", "ADM0_A3", "adm0_a3")
		name := firstProperty(f.Properties, "NAME", "name", "ADMIN", "admin")
		cf, errs := NewCountryFeature(code, name, f.Geometry)
		skipped = append(skipped, errs...)
		if !cf.Empty() {
			out = append(out, cf)
		}
	}
	return out, skipped, nil
}

func isAreal(g orb.Geometry) bool {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return true
	default:
		return false
	}
}

func firstProperty(props geojson.Properties, keys ...string) string {
	for _, k := range keys {
		if v, ok := props[k].(string); ok {
			if v = strings.TrimSpace(v); v != "" && v != "-99" {
				return v
			}
		}
	}
	return ""
}
