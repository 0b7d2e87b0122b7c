package render

import (
	"testing"

	"asciiglobe/internal/geo"
	"asciiglobe/internal/mesh"
	"asciiglobe/internal/raster"
	"asciiglobe/internal/scene"

	"github.com/gdamore/tcell/v2"
	"github.com/paulmach/orb"
)

var vp = scene.Viewport{Width: 81, Height: 41, CellAspect: 2}

// oneBox builds a scene with a single full-height box at raster (5, 5)
// and a camera looking straight at it.
func oneBox(t *testing.T) (*scene.Scene, *scene.Controller, *scene.Camera) {
	t.Helper()
	g, err := raster.Parse("ncols 3\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 10\nNODATA_value -9999\n5 0 0\n")
	if err != nil {
		t.Fatal(err)
	}
	geom, err := mesh.BuildBoxes(g, mesh.HueRange{0.3, 0.3}, 100, mesh.Options{})
	if err != nil {
		t.Fatal(err)
	}
	sc := &scene.Scene{
		Rasters: []scene.RasterMesh{{Key: "tree", Geometry: geom}},
		Layers:  []scene.Layer{{Key: "tree", Name: "Tree Cover", Mesh: "tree"}},
	}
	ctrl := scene.NewController(sc.Layers, nil, &scene.Tweens{})
	ctrl.Select("tree")

	cam := scene.NewCamera()
	scene.NewOrbitControls(cam).Face(5, 5)
	return sc, ctrl, cam
}

func TestRenderBox(t *testing.T) {
	sc, ctrl, cam := oneBox(t)
	c := NewCanvas(vp.Width, vp.Height)
	NewGlobeRenderer(sc, ctrl, cam).Render(c, vp, "")

	cell := c.Get(40, 20)
	if cell.Char != '█' {
		t.Fatalf("center cell = %q, want a full box", cell.Char)
	}
	fg, _, _ := cell.Style.Decompose()
	if want, _, _ := BoxStyle(sc.Rasters[0].Geometry.Colors[0]).Decompose(); fg != want {
		t.Errorf("box color %v, want %v", fg, want)
	}

	if _, bg, _ := c.Get(40, 10).Style.Decompose(); bg == tcell.ColorDefault {
		t.Error("globe disc not shaded")
	}
	if cell := c.Get(0, 0); cell.Char != ' ' || cell.Style != tcell.StyleDefault {
		t.Errorf("space around the globe drawn: %+v", cell)
	}
}

func TestRenderHiddenLayer(t *testing.T) {
	sc, _, cam := oneBox(t)
	ctrl := scene.NewController(sc.Layers, nil, &scene.Tweens{})
	c := NewCanvas(vp.Width, vp.Height)
	NewGlobeRenderer(sc, ctrl, cam).Render(c, vp, "")
	if c.Get(40, 20).Char == '█' {
		t.Error("box drawn with no layer selected")
	}
}

func TestRenderLabelHover(t *testing.T) {
	sc, ctrl, cam := oneBox(t)
	sc.Labels = []scene.Label{scene.NewLabel("BRA", "Brazil", geo.SourceLat(5), 5)}
	r := NewGlobeRenderer(sc, ctrl, cam)
	c := NewCanvas(vp.Width, vp.Height)

	r.Render(c, vp, "")
	cell := c.Get(40, 20)
	fg, _, attrs := cell.Style.Decompose()
	if want, _, _ := StyleLabel.Decompose(); cell.Char != 'z' || fg != want || attrs&tcell.AttrUnderline == 0 {
		t.Errorf("label cell = %q %v", cell.Char, fg)
	}

	r.Render(c, vp, "BRA")
	fg, _, attrs = c.Get(40, 20).Style.Decompose()
	if want, _, _ := StyleLabelHover.Decompose(); fg != want || attrs&tcell.AttrBold == 0 {
		t.Errorf("hovered label color %v, want %v", fg, want)
	}
}

// geoSquare is a GeoJSON-convention square of half-width d degrees.
func geoSquare(lat, lon, d float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{lon - d, lat - d}, {lon + d, lat - d}, {lon + d, lat + d}, {lon - d, lat + d}, {lon - d, lat - d},
	}}
}

func TestRenderOutlines(t *testing.T) {
	sc, ctrl, cam := oneBox(t)
	sc.Rasters = nil
	f, _ := geo.NewCountryFeature("SQ", "Square", geoSquare(geo.SourceLat(5), 5, 8))
	sc.CountryOutlines = mesh.BuildOutline(f, mesh.CountryOutline)

	c := NewCanvas(vp.Width, vp.Height)
	NewGlobeRenderer(sc, ctrl, cam).Render(c, vp, "")
	n := 0
	for y := 0; y < vp.Height; y++ {
		for x := 0; x < vp.Width; x++ {
			if c.Get(x, y).Char == CharCountryOutline {
				n++
			}
		}
	}
	if n == 0 {
		t.Error("no outline cells drawn")
	}
	if c.Get(40, 20).Char == CharCountryOutline {
		t.Error("outline drawn through the middle of the square")
	}
}
