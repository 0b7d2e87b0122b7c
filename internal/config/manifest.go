// Package config describes which raster layers, morph groups and country
// boundaries make up a globe, and where to load them from.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBoxes is the instance budget used when a manifest sets none.
const DefaultMaxBoxes = 150_000

// Raster is a single ESRI ASCII dataset drawn as value boxes.
type Raster struct {
	Key             string     `json:"key"`
	Name            string     `json:"name"`
	URL             string     `json:"url"`
	HueRange        [2]float64 `json:"hueRange"`
	InvertLightness bool       `json:"invertLightness,omitempty"`
}

// Comparison is a derived layer showing how far A exceeds B.
type Comparison struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	A    string `json:"a"`
	B    string `json:"b"`
}

// MorphGroup binds rasters of identical shape into one cross-faded mesh.
// Members are raster keys; their comparisons use the group's hue range.
type MorphGroup struct {
	Key             string       `json:"key"`
	Name            string       `json:"name"`
	Members         []string     `json:"members"`
	Comparisons     []Comparison `json:"comparisons,omitempty"`
	HueRange        [2]float64   `json:"hueRange"`
	InvertLightness bool         `json:"invertLightness,omitempty"`
}

// Point is a source-convention coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Country is a highlighted, clickable country.
type Country struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Route string `json:"route"`
	Label *Point `json:"label,omitempty"`
}

// Manifest is the full description of a globe.
type Manifest struct {
	Rasters          []Raster     `json:"rasters"`
	Morphs           []MorphGroup `json:"morphs,omitempty"`
	Countries        []Country    `json:"countries"`
	GlobalBoundaries string       `json:"globalBoundaries,omitempty"`
	DefaultRoute     string       `json:"defaultRoute"`
	MaxBoxes         int          `json:"maxBoxes,omitempty"`

	// Base is the directory relative asset paths are resolved against.
	Base string `json:"-"`
}

// Default returns the built-in globe: tree cover, GDP, population by sex
// and the three highlighted countries.
func Default() *Manifest {
	return &Manifest{
		Rasters: []Raster{
			{Key: "tree", Name: "Tree Cover in 2000", URL: "data/forestclipped.asc", HueRange: [2]float64{0.28, 0.38}},
			{Key: "gdpasc", Name: "GDP 2000 (ASC)", URL: "data/2000GDPresample.asc", HueRange: [2]float64{0.60, 0.60}, InvertLightness: true},
			{Key: "men", Name: "Men", URL: "data/gpw_v4_men.asc", HueRange: [2]float64{0.7, 0.3}},
			{Key: "women", Name: "Women", URL: "data/gpw_v4_women.asc", HueRange: [2]float64{0.9, 1.1}},
		},
		Morphs: []MorphGroup{
			{
				Key:     "population",
				Name:    "Population by sex",
				Members: []string{"men", "women"},
				Comparisons: []Comparison{
					{Key: "men>women", Name: ">50% men", A: "men", B: "women"},
					{Key: "women>men", Name: ">50% women", A: "women", B: "men"},
				},
				HueRange: [2]float64{0.6, 1.1},
			},
		},
		Countries: []Country{
			{Code: "BRA", Name: "Brazil", URL: "data/Brazil.geojson", Route: "../countries/brazil.html", Label: &Point{Lat: -10, Lon: -52}},
			{Code: "POL", Name: "Poland", URL: "data/Poland.geojson", Route: "../countries/poland.html", Label: &Point{Lat: 52, Lon: 19}},
			{Code: "KOR", Name: "South Korea", URL: "data/SouthKorea.geojson", Route: "../countries/south-korea.html", Label: &Point{Lat: 36, Lon: 128}},
		},
		GlobalBoundaries: "data/globalboundaries.geojson",
		DefaultRoute:     "/",
		MaxBoxes:         DefaultMaxBoxes,
	}
}

// Load reads and validates a JSON manifest. Relative asset paths are
// resolved against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	m.Base = filepath.Dir(path)
	if m.DefaultRoute == "" {
		m.DefaultRoute = "/"
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return m, nil
}

// Ref resolves an asset reference. URLs and absolute paths are returned
// unchanged.
func (m *Manifest) Ref(ref string) string {
	if ref == "" || m.Base == "" || filepath.IsAbs(ref) || strings.Contains(ref, "://") {
		return ref
	}
	return filepath.Join(m.Base, ref)
}

// Budget returns the box instance budget, falling back to DefaultMaxBoxes.
func (m *Manifest) Budget() int {
	if m.MaxBoxes > 0 {
		return m.MaxBoxes
	}
	return DefaultMaxBoxes
}

// Raster looks up a raster by key.
func (m *Manifest) Raster(key string) (Raster, bool) {
	for _, r := range m.Rasters {
		if r.Key == key {
			return r, true
		}
	}
	return Raster{}, false
}

// Grouped reports whether a raster key is a member of any morph group.
func (m *Manifest) Grouped(key string) bool {
	for _, g := range m.Morphs {
		for _, member := range g.Members {
			if member == key {
				return true
			}
		}
	}
	return false
}

// Validate checks that layer keys are unique and hues lie in [0, 2]. Morph
// groups may only reference known rasters.
func (m *Manifest) Validate() error {
	var errs []error
	keys := make(map[string]bool)
	claim := func(kind, key string) {
		if key == "" {
			errs = append(errs, fmt.Errorf("%s with empty key", kind))
			return
		}
		if keys[key] {
			errs = append(errs, fmt.Errorf("duplicate layer key %q", key))
		}
		keys[key] = true
	}

	for _, r := range m.Rasters {
		claim("raster", r.Key)
		if r.URL == "" {
			errs = append(errs, fmt.Errorf("raster %q has no url", r.Key))
		}
		if err := checkHues(r.HueRange); err != nil {
			errs = append(errs, fmt.Errorf("raster %q: %w", r.Key, err))
		}
	}

	for _, g := range m.Morphs {
		claim("morph group", g.Key)
		if len(g.Members) == 0 {
			errs = append(errs, fmt.Errorf("morph group %q has no members", g.Key))
		}
		if err := checkHues(g.HueRange); err != nil {
			errs = append(errs, fmt.Errorf("morph group %q: %w", g.Key, err))
		}
		members := make(map[string]bool)
		for _, key := range g.Members {
			if _, ok := m.Raster(key); !ok {
				errs = append(errs, fmt.Errorf("morph group %q: unknown member %q", g.Key, key))
			}
			members[key] = true
		}
		for _, c := range g.Comparisons {
			claim("comparison", c.Key)
			if !members[c.A] || !members[c.B] {
				errs = append(errs, fmt.Errorf("comparison %q: operands %q and %q must be members of %q", c.Key, c.A, c.B, g.Key))
			}
		}
	}

	codes := make(map[string]bool)
	for _, c := range m.Countries {
		if c.Code == "" {
			errs = append(errs, fmt.Errorf("country %q has no code", c.Name))
			continue
		}
		if codes[c.Code] {
			errs = append(errs, fmt.Errorf("duplicate country code %q", c.Code))
		}
		codes[c.Code] = true
		if c.URL == "" {
			errs = append(errs, fmt.Errorf("country %q has no url", c.Code))
		}
	}

	if m.MaxBoxes < 0 {
		errs = append(errs, fmt.Errorf("maxBoxes must not be negative"))
	}

	return errors.Join(errs...)
}

func checkHues(h [2]float64) error {
	for _, v := range h {
		if v < 0 || v > 2 {
			return fmt.Errorf("hue %v out of range", v)
		}
	}
	return nil
}
