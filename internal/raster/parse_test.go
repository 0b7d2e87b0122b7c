package raster

import (
	"errors"
	"strings"
	"testing"
)

const smallGrid = `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 1
NODATA_value -9999
1 2
-9999 4
`

func TestParseSmallGrid(t *testing.T) {
	g, err := Parse(smallGrid)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.NCols != 2 || g.NRows != 2 || g.CellSize != 1 {
		t.Fatalf("header = %d×%d cell %v", g.NCols, g.NRows, g.CellSize)
	}

	min, max, ok := g.Range()
	if !ok || min != 1 || max != 4 {
		t.Errorf("Range() = %v, %v, %v; want 1, 4, true", min, max, ok)
	}
	if v, ok := g.At(0, 1); !ok || v != 2 {
		t.Errorf("At(0,1) = %v, %v; want 2", v, ok)
	}
	if _, ok := g.At(1, 0); ok {
		t.Error("At(1,0) should be absent")
	}
	if v, ok := g.At(1, 1); !ok || v != 4 {
		t.Errorf("At(1,1) = %v, %v; want 4", v, ok)
	}
	if g.Present() != 3 {
		t.Errorf("Present() = %d, want 3", g.Present())
	}
}

func TestParseCenterConvention(t *testing.T) {
	text := "ncols 3\nnrows 1\nxllcenter 1\nyllcenter -89\ncellsize 2\nNODATA_value -1\n5 6 7\n"
	g, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.XLLCorner != 0 {
		t.Errorf("XLLCorner = %v, want 0", g.XLLCorner)
	}
	if g.YLLCorner != -90 {
		t.Errorf("YLLCorner = %v, want -90", g.YLLCorner)
	}
	lat, lon := g.CellCenter(0, 2)
	if lat != -89 || lon != 5 {
		t.Errorf("CellCenter(0,2) = %v, %v; want -89, 5", lat, lon)
	}
}

func TestParseTolerantBody(t *testing.T) {
	text := "\ufeffNCOLS 4\r\nNROWS 3\r\nXLLCORNER -180\r\nYLLCORNER -90\r\nCELLSIZE 90\r\nnodata_value -9999\r\n" +
		"1 x 3 4 99\r\n" +
		"\r\n" +
		"5 6\r\n" +
		"7 8 9 10\r\n" +
		"11 12 13 14\r\n"
	g, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := g.At(0, 1); ok {
		t.Error("non-numeric token should be absent")
	}
	if _, ok := g.At(1, 2); ok {
		t.Error("short row should leave trailing cells absent")
	}
	if v, _ := g.At(2, 3); v != 10 {
		t.Errorf("At(2,3) = %v, want 10", v)
	}
	min, max, _ := g.Range()
	if min != 1 || max != 10 {
		t.Errorf("Range() = %v, %v; extra column or row leaked in", min, max)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	base := map[string]string{
		"ncols":        "ncols 2",
		"nrows":        "nrows 2",
		"xllcorner":    "xllcorner 0",
		"yllcorner":    "yllcorner 0",
		"cellsize":     "cellsize 1",
		"NODATA_value": "NODATA_value -9999",
	}
	order := []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "NODATA_value"}
	build := func(override map[string]string) string {
		var b strings.Builder
		for _, k := range order {
			line, ok := override[k]
			if !ok {
				line = base[k]
			}
			if line != "" {
				b.WriteString(line + "\n")
			}
		}
		b.WriteString("1 2\n3 4\n")
		return b.String()
	}

	cases := []struct {
		name     string
		override map[string]string
		key      string
	}{
		{"missing ncols", map[string]string{"ncols": ""}, "ncols"},
		{"non-numeric nrows", map[string]string{"nrows": "nrows many"}, "nrows"},
		{"fractional ncols", map[string]string{"ncols": "ncols 2.5"}, "ncols"},
		{"zero cellsize", map[string]string{"cellsize": "cellsize 0"}, "cellsize"},
		{"missing nodata", map[string]string{"NODATA_value": ""}, "nodata_value"},
		{"missing corner", map[string]string{"yllcorner": ""}, "yllcorner"},
		{"both conventions", map[string]string{"xllcorner": "xllcorner 0\nxllcenter 0.5"}, "xllcorner"},
		{"oversized grid", map[string]string{"ncols": "ncols 2000000000", "nrows": "nrows 2000000000"}, "ncols"},
		{"too many cells", map[string]string{"ncols": "ncols 65536", "nrows": "nrows 1025"}, "ncols"},
	}
	for _, c := range cases {
		_, err := Parse(build(c.override))
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("%s: got %v, want FormatError", c.name, err)
			continue
		}
		if ferr.Key != c.key {
			t.Errorf("%s: FormatError key %q, want %q", c.name, ferr.Key, c.key)
		}
	}
}

func TestParseNoPresentCells(t *testing.T) {
	g, err := Parse("ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value 0\n0 0\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, _, ok := g.Range(); ok {
		t.Error("Range() ok with no present cells")
	}
}

func TestCombineExceeds(t *testing.T) {
	a, err := Parse("ncols 3\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value -1\n1 2 -1\n")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("ncols 3\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value -1\n0 3 5\n")
	if err != nil {
		t.Fatal(err)
	}

	c := Combine(a, b, Exceeds)
	if !c.SameShape(a) {
		t.Error("combined grid shape differs from a")
	}
	if v, ok := c.At(0, 0); !ok || v != 1 {
		t.Errorf("cell 0 = %v, %v; want 1", v, ok)
	}
	if v, ok := c.At(0, 1); !ok || v != 0 {
		t.Errorf("cell 1 = %v, %v; want 0", v, ok)
	}
	if _, ok := c.At(0, 2); ok {
		t.Error("cell 2 should be absent")
	}
	if min, max, _ := c.Range(); min != 0 || max != 1 {
		t.Errorf("Range() = %v, %v; want 0, 1", min, max)
	}

	// Sources are untouched.
	if v, _ := a.At(0, 1); v != 2 {
		t.Errorf("a mutated: %v", v)
	}
}
