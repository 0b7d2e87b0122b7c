package render

import (
	"math"

	"asciiglobe/internal/debug"
	"asciiglobe/internal/geo"
	"asciiglobe/internal/mesh"
	"asciiglobe/internal/scene"
)

// GraticuleSpacing is the grid spacing drawn on the globe, in degrees.
const GraticuleSpacing = 30.0

// graticuleWidth is how close to a grid line a cell must be, in degrees.
const graticuleWidth = 0.6

// surfaceBias pulls surface features in front of the globe cell they land
// in; the globe is sampled at cell centers, features are not.
const surfaceBias = 0.05

// GlobeRenderer draws a scene onto a canvas: the shaded globe disc,
// boundary outlines, the visible layer's boxes and country labels.
type GlobeRenderer struct {
	scene  *scene.Scene
	layers *scene.Controller
	camera *scene.Camera

	blended   *mesh.Geometry
	blendMesh string
	blendWith mesh.Slots
}

// NewGlobeRenderer creates a renderer for sc as seen by camera.
func NewGlobeRenderer(sc *scene.Scene, layers *scene.Controller, camera *scene.Camera) *GlobeRenderer {
	return &GlobeRenderer{scene: sc, layers: layers, camera: camera}
}

// Render draws one frame. hover is the country code of the hovered label.
func (g *GlobeRenderer) Render(c *Canvas, vp scene.Viewport, hover string) {
	c.Clear()
	g.drawGlobe(c, vp)
	g.drawStrips(c, vp, g.scene.GlobalOutlines, CharGlobalOutline)
	g.drawStrips(c, vp, g.scene.CountryOutlines, CharCountryOutline)
	g.drawBoxes(c, vp)
	g.drawLabels(c, vp, hover)
}

func (g *GlobeRenderer) drawGlobe(c *Canvas, vp scene.Viewport) {
	rays := g.camera.Rays(vp)
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			origin, dir := rays(x, y)
			t, ok := scene.IntersectSphere(origin, dir, geo.Radius)
			if !ok {
				continue
			}
			p := origin.Add(dir.Mul(t))
			lambert := math.Max(0, -dir.Dot(p.Normalize()))

			c.Fill(x, y, p.Sub(g.camera.Eye).Len(), GlobeStyle(lambert))

			ll := geo.Locate(scene.ToLocal(p))
			if onGraticule(geo.SourceLat(ll.Lat)) || onGraticule(ll.Lon) {
				c.Set(x, y, CharGraticule, GraticuleStyle(lambert))
			}
		}
	}
}

func onGraticule(deg float64) bool {
	r := math.Mod(math.Abs(deg), GraticuleSpacing)
	return r < graticuleWidth || GraticuleSpacing-r < graticuleWidth
}

// drawStrips draws line strips, skipping segments on the far side.
func (g *GlobeRenderer) drawStrips(c *Canvas, vp scene.Viewport, strips []mesh.LineStrip, char rune) {
	project := g.camera.Transform(vp)
	eye := g.camera.Eye
	for _, s := range strips {
		style := OutlineStyle(s.Style)
		for i := 0; i+1 < len(s.Points); i++ {
			a := scene.ToWorld(s.Points[i])
			b := scene.ToWorld(s.Points[i+1])
			if !g.camera.Facing(a) || !g.camera.Facing(b) {
				continue
			}
			xa, ya, _, okA := project(a)
			xb, yb, _, okB := project(b)
			if !okA || !okB {
				continue
			}
			c.DrawLine(xa, ya, a.Sub(eye).Len()-surfaceBias, xb, yb, b.Sub(eye).Len()-surfaceBias, char, style)
		}
	}
}

func (g *GlobeRenderer) drawBoxes(c *Canvas, vp scene.Viewport) {
	geom := g.visibleGeometry()
	if geom == nil || geom.Empty() {
		return
	}

	project := g.camera.Transform(vp)
	eye := g.camera.Eye
	for i := 0; i < geom.Instances; i++ {
		center := scene.ToWorld(geom.InstanceCenter(i))
		if !g.camera.Facing(center) {
			continue
		}
		x, y, _, ok := project(center)
		if !ok {
			continue
		}
		height := 2 * (center.Len() - geo.Radius)
		char := BoxChar(height / mesh.DefaultMaxHeight)
		c.Plot(x, y, center.Sub(eye).Len()-surfaceBias, char, BoxStyle(geom.Colors[i*mesh.BoxVertices]))
	}
}

// visibleGeometry resolves the shown mesh, blending morph targets only
// when the active slots change.
func (g *GlobeRenderer) visibleGeometry() *mesh.Geometry {
	key := g.layers.VisibleMesh()
	if geom := g.scene.Raster(key); geom != nil {
		return geom
	}
	m := g.scene.Morph(key)
	if m == nil {
		return nil
	}

	slots := g.layers.Slots(key)
	if g.blended != nil && g.blendMesh == key && sameSlots(g.blendWith, slots) {
		return g.blended
	}
	g.blended = m.Blend(slots)
	g.blendMesh = key
	g.blendWith = slots
	debug.Logger().Debug("morph blended", "mesh", key, "slots", len(slots))
	return g.blended
}

func sameSlots(a, b mesh.Slots) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (g *GlobeRenderer) drawLabels(c *Canvas, vp scene.Viewport, hover string) {
	for _, l := range g.scene.Labels {
		r, ok := l.Rect(g.camera, vp)
		if !ok {
			continue
		}
		style := StyleLabel
		if l.Code == hover {
			style = StyleLabelHover
		}
		c.DrawText(r.X, r.Y, l.Name, style)
	}
}
