package scene

import (
	"context"
	"fmt"
	"path"
	"strings"

	"asciiglobe/internal/assets"
	"asciiglobe/internal/config"
	"asciiglobe/internal/debug"
	"asciiglobe/internal/geo"
	"asciiglobe/internal/mesh"
	"asciiglobe/internal/raster"
)

// Failure is an asset or feature that could not be loaded. The scene is
// still built from everything else.
type Failure struct {
	Asset string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Asset, f.Err)
}

// RasterMesh is the box geometry of a standalone raster layer.
type RasterMesh struct {
	Key      string
	Geometry *mesh.Geometry
}

// MorphMesh is the cross-faded geometry of a morph group.
type MorphMesh struct {
	Key   string
	Morph *mesh.Morph
}

// Scene is every renderable and pickable thing built from a manifest.
type Scene struct {
	Rasters         []RasterMesh
	Morphs          []MorphMesh
	Countries       []*geo.CountryFeature
	CountryOutlines []mesh.LineStrip
	GlobalOutlines  []mesh.LineStrip
	Labels          []Label
	Layers          []Layer
	Routes          *Routes
}

// Raster returns the geometry of a raster mesh, or nil.
func (s *Scene) Raster(key string) *mesh.Geometry {
	for _, r := range s.Rasters {
		if r.Key == key {
			return r.Geometry
		}
	}
	return nil
}

// Morph returns a morph mesh, or nil.
func (s *Scene) Morph(key string) *mesh.Morph {
	for _, m := range s.Morphs {
		if m.Key == key {
			return m.Morph
		}
	}
	return nil
}

// Options tunes scene assembly.
type Options struct {
	MaxBoxes int // per mesh; 0 uses the manifest budget
	Parallel int // concurrent fetches; 0 uses assets.DefaultParallel
}

// Assemble loads every asset of the manifest and builds the scene. Each
// asset is isolated: a failure is recorded and the rest still load.
func Assemble(ctx context.Context, m *config.Manifest, src assets.Source, opts Options) (*Scene, []Failure) {
	budget := opts.MaxBoxes
	if budget <= 0 {
		budget = m.Budget()
	}

	var reqs []assets.Request
	for _, r := range m.Rasters {
		reqs = append(reqs, assets.Request{Asset: r.Key, Ref: m.Ref(r.URL)})
	}
	for _, c := range m.Countries {
		reqs = append(reqs, assets.Request{Asset: c.Code, Ref: m.Ref(c.URL)})
	}
	global := m.Ref(m.GlobalBoundaries)
	if global != "" && !isShapefile(global) {
		reqs = append(reqs, assets.Request{Asset: "boundaries", Ref: global})
	}

	// Results come back in request order: rasters, countries, boundaries.
	results := assets.LoadAll(ctx, src, reqs, opts.Parallel)
	rasterResults := results[:len(m.Rasters)]
	countryResults := results[len(m.Rasters) : len(m.Rasters)+len(m.Countries)]
	var boundaryResult assets.Result
	if n := len(m.Rasters) + len(m.Countries); len(results) > n {
		boundaryResult = results[n]
	}

	s := &Scene{Routes: NewRoutes(m)}
	var failures []Failure
	fail := func(asset string, err error) {
		debug.Warn("asset skipped", "asset", asset, "error", err)
		failures = append(failures, Failure{Asset: asset, Err: err})
	}

	grids := make(map[string]*raster.Grid)
	for i, r := range m.Rasters {
		res := rasterResults[i]
		if res.Err != nil {
			fail(r.Key, res.Err)
			continue
		}
		g, err := raster.Parse(string(res.Data))
		if err != nil {
			fail(r.Key, err)
			continue
		}
		grids[r.Key] = g
		debug.Log("parsed %s: %dx%d, %d present cells", r.Key, g.NCols, g.NRows, g.Present())
	}

	for _, r := range m.Rasters {
		g, ok := grids[r.Key]
		if !ok || m.Grouped(r.Key) {
			continue
		}
		geom, err := mesh.BuildBoxes(g, mesh.HueRange(r.HueRange), budget, mesh.Options{InvertLightness: r.InvertLightness})
		if err != nil {
			fail(r.Key, err)
			continue
		}
		s.Rasters = append(s.Rasters, RasterMesh{Key: r.Key, Geometry: geom})
		s.Layers = append(s.Layers, Layer{Key: r.Key, Name: r.Name, Mesh: r.Key})
		debug.Log("built %s: %d boxes", r.Key, geom.Instances)
	}

	for _, group := range m.Morphs {
		morph, layers, err := buildGroup(m, group, grids, budget)
		if err != nil {
			fail(group.Key, err)
			continue
		}
		s.Morphs = append(s.Morphs, MorphMesh{Key: group.Key, Morph: morph})
		s.Layers = append(s.Layers, layers...)
	}

	for i, c := range m.Countries {
		res := countryResults[i]
		if res.Err != nil {
			fail(c.Code, res.Err)
			continue
		}
		f, skipped, err := geo.DecodeCountry(c.Code, c.Name, res.Data)
		if err != nil {
			fail(c.Code, err)
			continue
		}
		for _, err := range skipped {
			fail(c.Code, err)
		}
		s.Countries = append(s.Countries, f)
		s.CountryOutlines = append(s.CountryOutlines, mesh.BuildOutline(f, mesh.CountryOutline)...)
		if c.Label != nil {
			s.Labels = append(s.Labels, NewLabel(c.Code, c.Name, c.Label.Lat, c.Label.Lon))
		}
	}

	if global != "" {
		features, skipped, err := loadBoundaries(ctx, src, global, boundaryResult)
		if err != nil {
			fail("boundaries", err)
		} else {
			if len(skipped) > 0 {
				debug.Warn("degenerate boundary rings skipped", "asset", "boundaries", "count", len(skipped))
			}
			s.GlobalOutlines = mesh.BuildOutlines(features, mesh.GlobalOutline)
		}
	}

	return s, failures
}

func buildGroup(m *config.Manifest, group config.MorphGroup, grids map[string]*raster.Grid, budget int) (*mesh.Morph, []Layer, error) {
	var (
		targets []mesh.Target
		layers  []Layer
	)
	add := func(key, name string, g *raster.Grid, hues [2]float64, invert bool) {
		layers = append(layers, Layer{Key: key, Name: name, Mesh: group.Key, Morph: true, Target: len(targets)})
		targets = append(targets, mesh.Target{Key: key, Grid: g, Hues: mesh.HueRange(hues), InvertLightness: invert})
	}

	for _, key := range group.Members {
		g, ok := grids[key]
		if !ok {
			return nil, nil, fmt.Errorf("member %q not loaded", key)
		}
		r, _ := m.Raster(key)
		add(key, r.Name, g, r.HueRange, r.InvertLightness)
	}
	for _, c := range group.Comparisons {
		a, b := grids[c.A], grids[c.B]
		if a == nil || b == nil {
			return nil, nil, fmt.Errorf("comparison %q: operands not loaded", c.Key)
		}
		if !a.SameShape(b) {
			return nil, nil, fmt.Errorf("comparison %q: %q and %q differ in shape", c.Key, c.A, c.B)
		}
		add(c.Key, c.Name, raster.Combine(a, b, raster.Exceeds), group.HueRange, group.InvertLightness)
	}

	morph, err := mesh.BuildMorph(targets, budget, mesh.Options{})
	if err != nil {
		return nil, nil, err
	}
	debug.Log("built morph %s: %d targets, %d boxes", group.Key, len(morph.Targets), morph.Targets[0].Instances)
	return morph, layers, nil
}

func loadBoundaries(ctx context.Context, src assets.Source, ref string, res assets.Result) ([]*geo.CountryFeature, []error, error) {
	if !isShapefile(ref) {
		if res.Err != nil {
			return nil, nil, res.Err
		}
		return geo.DecodeBoundaries(res.Data)
	}

	shp, err := assets.OpenShapefile(ctx, src, ref)
	if err != nil {
		return nil, nil, err
	}
	defer shp.Close()
	return geo.LoadShapefile(shp.Path)
}

func isShapefile(ref string) bool {
	switch strings.ToLower(path.Ext(ref)) {
	case ".shp", ".zip":
		return true
	}
	return false
}
