package scene

import (
	"asciiglobe/internal/geo"
	"asciiglobe/internal/mesh"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"
)

// LabelAltitude is the radius at which country labels float.
const LabelAltitude = 1.02

// Label is a country name anchored above the globe. Its underlined text is
// drawn centered on the anchor's screen cell, and that same rectangle is
// what picking tests against.
type Label struct {
	Code     string
	Name     string
	Position mgl64.Vec3 // world space
}

// NewLabel anchors a label at a source-convention location.
func NewLabel(code, name string, sourceLat, lon float64) Label {
	local := geo.Project(geo.RenderLat(sourceLat), lon, mesh.OutlineHeight)
	return Label{
		Code:     code,
		Name:     name,
		Position: ToWorld(local.Normalize().Mul(LabelAltitude)),
	}
}

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Rect returns the label's screen rectangle. ok is false when the anchor
// is on the far side of the globe or off screen.
func (l Label) Rect(cam *Camera, vp Viewport) (Rect, bool) {
	if !cam.Facing(l.Position) {
		return Rect{}, false
	}
	x, y, _, ok := cam.Screen(vp, l.Position)
	if !ok {
		return Rect{}, false
	}
	w := runewidth.StringWidth(l.Name)
	return Rect{X: x - w/2, Y: y, W: w, H: 1}, true
}

// Hit is the outcome of tracing one screen cell.
type Hit struct {
	Code     string     // resolved country, empty if none
	Label    bool       // resolved through a label
	Globe    bool       // the ray hit the globe
	Location geo.LatLon // render-convention location of the globe hit
}

// Picker resolves screen cells to countries. Labels are tested before the
// globe; a globe hit is located and tested against Features in order.
type Picker struct {
	Camera     *Camera
	Labels     []Label
	Features   []*geo.CountryFeature
	CellAspect float64
}

// Pick returns the country under cell (x, y) of a width×height viewport.
func (p *Picker) Pick(x, y, width, height int) (string, bool) {
	h := p.Trace(x, y, width, height)
	return h.Code, h.Code != ""
}

// LabelAt returns the index of the label drawn over cell (x, y), or -1.
// Later labels are drawn on top and win.
func (p *Picker) LabelAt(x, y, width, height int) int {
	vp := Viewport{Width: width, Height: height, CellAspect: p.CellAspect}
	for i := len(p.Labels) - 1; i >= 0; i-- {
		if r, ok := p.Labels[i].Rect(p.Camera, vp); ok && r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Trace reports everything the ray through cell (x, y) hits.
func (p *Picker) Trace(x, y, width, height int) Hit {
	if i := p.LabelAt(x, y, width, height); i >= 0 {
		return Hit{Code: p.Labels[i].Code, Label: true}
	}

	vp := Viewport{Width: width, Height: height, CellAspect: p.CellAspect}
	origin, dir := p.Camera.Ray(vp, x, y)
	t, ok := IntersectSphere(origin, dir, geo.Radius)
	if !ok {
		return Hit{}
	}

	local := ToLocal(origin.Add(dir.Mul(t)))
	ll := geo.Locate(local)
	h := Hit{Globe: true, Location: ll}
	if f := geo.Resolve(p.Features, ll.Lon, ll.Lat); f != nil {
		h.Code = f.Code
	}
	return h
}
