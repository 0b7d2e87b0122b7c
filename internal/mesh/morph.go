package mesh

import (
	"fmt"
	"sort"

	"asciiglobe/internal/raster"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxSlots bounds how many morph targets can be blended at once.
const MaxSlots = 4

// Target is one dataset of a morph set.
type Target struct {
	Key             string
	Grid            *raster.Grid
	Hues            HueRange
	InvertLightness bool
}

// Morph holds parallel geometries for datasets of identical shape. All
// targets share Indices and vertex order; Targets[0] doubles as the base.
type Morph struct {
	Keys    []string
	Targets []*Geometry
	Indices []uint32
}

// Slot is one active (target index, weight) pair.
type Slot struct {
	Index  int
	Weight float64
}

// Slots is the active blend set, heaviest first.
type Slots []Slot

// ActiveSlots keeps the MaxSlots heaviest positive influences. Ties go to
// the lower index.
func ActiveSlots(influences []float64) Slots {
	slots := make(Slots, 0, len(influences))
	for i, w := range influences {
		if w > 0 {
			slots = append(slots, Slot{Index: i, Weight: w})
		}
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Weight > slots[j].Weight })
	if len(slots) > MaxSlots {
		slots = slots[:MaxSlots]
	}
	return slots
}

// BuildMorph builds one geometry per target over the same cell set: the
// sampled cells present in every target and non-zero in at least one.
// A cell that is zero in one target still gets a box there, sized by
// Amount like any other value, so vertex counts line up.
func BuildMorph(targets []Target, maxInstances int, opts Options) (*Morph, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("morph set has no targets")
	}
	grids := make([]*raster.Grid, len(targets))
	for i, t := range targets {
		if t.Grid == nil {
			return nil, fmt.Errorf("morph target %q has no grid", t.Key)
		}
		grids[i] = t.Grid
	}
	if err := checkPeers(grids[0], append(grids[1:], opts.Peers...)); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	all := append(grids, opts.Peers...)

	cells := sampleCells(grids[0], maxInstances, func(row, col int) bool {
		if !presentInAll(all, row, col) {
			return false
		}
		for _, g := range grids {
			if v, _ := g.At(row, col); v != 0 {
				return true
			}
		}
		return false
	})

	m := &Morph{}
	for _, t := range targets {
		g := &Geometry{}
		min, max, _ := t.Grid.Range()
		for _, c := range cells {
			v, _ := t.Grid.At(c.row, c.col)
			amount := Amount(v, min, max)
			g.appendBox(boxFor(c, amount, opts), ValueColor(t.Hues, amount, t.InvertLightness || opts.InvertLightness))
		}
		m.Keys = append(m.Keys, t.Key)
		m.Targets = append(m.Targets, g)
	}
	m.Indices = m.Targets[0].Indices
	return m, nil
}

// Index returns the position of key among the targets, or -1.
func (m *Morph) Index(key string) int {
	for i, k := range m.Keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Blend resolves the active slots into concrete positions and colors:
// base + Σ wᵢ(targetᵢ - base) for positions and a weighted mix of base and
// target colors. Total weight above 1 is normalized.
func (m *Morph) Blend(slots Slots) *Geometry {
	base := m.Targets[0]
	out := &Geometry{
		Positions: make([]mgl64.Vec3, len(base.Positions)),
		Colors:    make([][3]uint8, len(base.Colors)),
		Indices:   m.Indices,
		Instances: base.Instances,
	}

	var total float64
	for _, s := range slots {
		total += s.Weight
	}
	scale := 1.0
	if total > 1 {
		scale = 1 / total
	}

	for v := range base.Positions {
		pos := base.Positions[v]
		var rgb [3]float64
		baseWeight := 1 - total*scale
		for k := 0; k < 3; k++ {
			rgb[k] = float64(base.Colors[v][k]) * baseWeight
		}
		for _, s := range slots {
			if s.Index < 0 || s.Index >= len(m.Targets) {
				continue
			}
			t := m.Targets[s.Index]
			w := s.Weight * scale
			pos = pos.Add(t.Positions[v].Sub(base.Positions[v]).Mul(w))
			for k := 0; k < 3; k++ {
				rgb[k] += float64(t.Colors[v][k]) * w
			}
		}
		out.Positions[v] = pos
		out.Colors[v] = [3]uint8{clampByte(rgb[0]), clampByte(rgb[1]), clampByte(rgb[2])}
	}
	return out
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
