package geo

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// LoadShapefile loads polygon records from an ESRI shapefile as boundary
// features. Each part of a polygon record becomes a ring; a clockwise part
// starts a new polygon (outer ring) and counter-clockwise parts are holes
// of the preceding polygon. Non-polygon records are ignored.
func LoadShapefile(path string) ([]*CountryFeature, []error, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer shape.Close()

	nameIdx, codeIdx := -1, -1
	for i, field := range shape.Fields() {
		// Field names in shapefiles are byte arrays padded with nulls
		switch strings.TrimRight(string(field.Name[:]), "\x00 ") {
		case "NAME", "ADMIN":
			if nameIdx < 0 {
				nameIdx = i
			}
		case "ISO_A3", "ADM0_A3":
			if codeIdx < 0 {
				codeIdx = i
			}
		}
	}

	var (
		features []*CountryFeature
		skipped  []error
	)
	for shape.Next() {
		n, p := shape.Shape()

		poly, ok := p.(*shp.Polygon)
		if !ok {
			continue
		}

		var name, code string
		if nameIdx >= 0 {
			name = strings.TrimSpace(shape.ReadAttribute(n, nameIdx))
		}
		if codeIdx >= 0 {
			code = strings.TrimSpace(shape.ReadAttribute(n, codeIdx))
		}

		f, errs := NewCountryFeature(code, name, shapePolygons(poly))
		skipped = append(skipped, errs...)
		if !f.Empty() {
			features = append(features, f)
		}
	}

	return features, skipped, nil
}

func shapePolygons(p *shp.Polygon) orb.MultiPolygon {
	var out orb.MultiPolygon
	for i := range p.Parts {
		start := int(p.Parts[i])
		end := len(p.Points)
		if i+1 < len(p.Parts) {
			end = int(p.Parts[i+1])
		}
		if start < 0 || start >= end || end > len(p.Points) {
			continue
		}

		ring := make(orb.Ring, 0, end-start)
		for _, pt := range p.Points[start:end] {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}

		// Shapefile outer rings are clockwise, holes counter-clockwise
		if ring.Orientation() == orb.CW || len(out) == 0 {
			out = append(out, orb.Polygon{ring})
			continue
		}
		out[len(out)-1] = append(out[len(out)-1], ring)
	}
	return out
}
