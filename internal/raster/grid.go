// Package raster decodes ESRI ASCII style grids into immutable sampled
// value fields.
package raster

import "math"

// Grid is a row-major nrows×ncols field of optional samples. Row 0 is the
// first data row of the source file. A Grid is never mutated after it is
// built.
type Grid struct {
	NCols, NRows int
	CellSize     float64
	XLLCorner    float64
	YLLCorner    float64
	NoDataValue  float64

	cells   []float64 // NaN marks an absent sample
	min     float64
	max     float64
	present int
}

func newGrid(ncols, nrows int) *Grid {
	cells := make([]float64, ncols*nrows)
	for i := range cells {
		cells[i] = math.NaN()
	}
	return &Grid{NCols: ncols, NRows: nrows, cells: cells}
}

// At returns the sample at (row, col) and whether it is present.
func (g *Grid) At(row, col int) (float64, bool) {
	if row < 0 || row >= g.NRows || col < 0 || col >= g.NCols {
		return 0, false
	}
	v := g.cells[row*g.NCols+col]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Range returns the minimum and maximum over present samples. ok is false
// when the grid has no present samples.
func (g *Grid) Range() (min, max float64, ok bool) {
	if g.present == 0 {
		return 0, 0, false
	}
	return g.min, g.max, true
}

// Present returns the number of present samples.
func (g *Grid) Present() int {
	return g.present
}

// CellCenter returns the raster-convention latitude and longitude of the
// center of cell (row, col). Longitude is not normalized.
func (g *Grid) CellCenter(row, col int) (lat, lon float64) {
	lat = g.YLLCorner + (float64(row)+0.5)*g.CellSize
	lon = g.XLLCorner + (float64(col)+0.5)*g.CellSize
	return lat, lon
}

// SameShape reports whether two grids share dimensions, cell size and corner.
func (g *Grid) SameShape(o *Grid) bool {
	return g.NCols == o.NCols && g.NRows == o.NRows &&
		g.CellSize == o.CellSize &&
		g.XLLCorner == o.XLLCorner && g.YLLCorner == o.YLLCorner
}

// set stores v at (row, col) and folds it into the range. Only for use
// while a grid is being built.
func (g *Grid) set(row, col int, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	g.cells[row*g.NCols+col] = v
	if g.present == 0 || v < g.min {
		g.min = v
	}
	if g.present == 0 || v > g.max {
		g.max = v
	}
	g.present++
}
