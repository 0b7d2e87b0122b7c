package mesh

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"asciiglobe/internal/geo"
	"asciiglobe/internal/raster"

	"github.com/go-gl/mathgl/mgl64"
)

// gridOf builds a grid covering the globe at 1° cells from rows of
// tokens, with -9999 as NODATA.
func gridOf(t *testing.T, rows ...string) *raster.Grid {
	t.Helper()
	ncols := len(strings.Fields(rows[0]))
	text := fmt.Sprintf("ncols %d\nnrows %d\nxllcorner -180\nyllcorner -90\ncellsize 1\nNODATA_value -9999\n%s\n",
		ncols, len(rows), strings.Join(rows, "\n"))
	g, err := raster.Parse(text)
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}
	return g
}

func TestStride(t *testing.T) {
	cases := []struct {
		nrows, ncols, max, want int
	}{
		{1000, 1000, 150_000, 3},
		{10, 10, 1000, 1},
		{2, 2, 1, 2},
		{100, 100, 100, 10},
		{5, 5, 0, 5},
	}
	for _, c := range cases {
		if got := Stride(c.nrows, c.ncols, c.max); got != c.want {
			t.Errorf("Stride(%d, %d, %d) = %d, want %d", c.nrows, c.ncols, c.max, got, c.want)
		}
	}
}

func TestBuildBoxesAllZero(t *testing.T) {
	g := gridOf(t, "0 0 0", "0 0 0")
	geom, err := BuildBoxes(g, HueRange{0.28, 0.38}, 100, Options{})
	if err != nil {
		t.Fatalf("BuildBoxes: %v", err)
	}
	if geom.Instances != 0 || !geom.Empty() || len(geom.Indices) != 0 {
		t.Errorf("zero grid produced %d instances", geom.Instances)
	}
}

func TestBuildBoxesSingleCell(t *testing.T) {
	g := gridOf(t, "7 0", "0 -9999")
	for _, max := range []int{1, 2, 4, 1000} {
		geom, err := BuildBoxes(g, HueRange{0.6, 0.6}, max, Options{})
		if err != nil {
			t.Fatalf("BuildBoxes(max=%d): %v", max, err)
		}
		if geom.Instances != 1 {
			t.Errorf("max=%d: got %d instances, want 1", max, geom.Instances)
		}
		if len(geom.Positions) != BoxVertices || len(geom.Colors) != BoxVertices || len(geom.Indices) != BoxIndices {
			t.Errorf("max=%d: buffer sizes %d/%d/%d", max, len(geom.Positions), len(geom.Colors), len(geom.Indices))
		}
	}
}

func TestBuildBoxesSkipsSeamColumn(t *testing.T) {
	g := gridOf(t, "1 2 3")
	geom, err := BuildBoxes(g, HueRange{0, 1}, 1000, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if geom.Instances != 2 {
		t.Errorf("got %d instances, want 2 (last column skipped)", geom.Instances)
	}
}

func TestBuildBoxesPeersMask(t *testing.T) {
	g := gridOf(t, "1 2 3 4")
	peer := gridOf(t, "1 -9999 1 1")
	geom, err := BuildBoxes(g, HueRange{0, 1}, 1000, Options{Peers: []*raster.Grid{peer}})
	if err != nil {
		t.Fatal(err)
	}
	if geom.Instances != 2 {
		t.Errorf("got %d instances, want 2", geom.Instances)
	}

	other := gridOf(t, "1 1")
	if _, err := BuildBoxes(g, HueRange{0, 1}, 1000, Options{Peers: []*raster.Grid{other}}); err == nil {
		t.Error("expected error for mismatched peer")
	}
}

func TestBuildBoxesPlacement(t *testing.T) {
	g := gridOf(t, "0 0 0", "0 10 0")
	geom, err := BuildBoxes(g, HueRange{0, 0}, 1000, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if geom.Instances != 1 {
		t.Fatalf("got %d instances", geom.Instances)
	}

	lat, lon := g.CellCenter(1, 1)
	dir := geo.Project(lat, lon, 0)

	// Every vertex sits between the surface and the maximum height, close
	// to the cell's surface normal.
	for _, p := range geom.Positions {
		r := p.Len()
		if r < geo.Radius-1e-9 || r > geo.Radius+DefaultMaxHeight+DefaultFootprint {
			t.Fatalf("vertex %v at radius %v", p, r)
		}
		if d := p.Normalize().Sub(dir).Len(); d > DefaultFootprint {
			t.Fatalf("vertex %v is %v away from cell normal", p, d)
		}
	}

	// The zeros count toward the range, so the lone 10 is at full height.
	center := geom.InstanceCenter(0)
	if r := center.Len(); math.Abs(r-(geo.Radius+DefaultMaxHeight/2)) > 1e-9 {
		t.Errorf("center radius = %v", r)
	}
}

func TestBoxMatrixIsPure(t *testing.T) {
	a := BoxMatrix(10, 20, 0.005, 0.01)
	_ = BoxMatrix(-40, 100, 0.1, 0.5)
	b := BoxMatrix(10, 20, 0.005, 0.01)
	if !a.ApproxEqual(b) {
		t.Error("BoxMatrix depends on previous calls")
	}
	base := mgl64.TransformCoordinate(mgl64.Vec3{0, 0, -0.5}, a)
	if base.Sub(geo.Project(10, 20, 0)).Len() > 1e-9 {
		t.Errorf("box base %v not on surface point %v", base, geo.Project(10, 20, 0))
	}
}

func TestValueColor(t *testing.T) {
	hues := HueRange{0.6, 0.6}
	low := ValueColor(hues, 0, false)
	high := ValueColor(hues, 1, false)
	if sum(high) <= sum(low) {
		t.Errorf("default lightness should rise: low %v high %v", low, high)
	}
	lowInv := ValueColor(hues, 0, true)
	highInv := ValueColor(hues, 1, true)
	if sum(highInv) >= sum(lowInv) {
		t.Errorf("inverted lightness should fall: low %v high %v", lowInv, highInv)
	}
	if white := ValueColor(hues, 1, false); white != [3]uint8{255, 255, 255} {
		t.Errorf("full lightness = %v, want white", white)
	}
}

func sum(c [3]uint8) int {
	return int(c[0]) + int(c[1]) + int(c[2])
}
