package raster

import "math"

// Combine builds a new grid shaped like a where each cell is f(a, b) when
// both inputs have a sample at that position, and absent otherwise. b is
// indexed by row and column; cells outside b are absent. Non-finite
// results are absent. Neither input is modified.
func Combine(a, b *Grid, f func(a, b float64) float64) *Grid {
	out := newGrid(a.NCols, a.NRows)
	out.CellSize = a.CellSize
	out.XLLCorner = a.XLLCorner
	out.YLLCorner = a.YLLCorner
	out.NoDataValue = a.NoDataValue

	for row := 0; row < a.NRows; row++ {
		for col := 0; col < a.NCols; col++ {
			va, ok := a.At(row, col)
			if !ok {
				continue
			}
			vb, ok := b.At(row, col)
			if !ok {
				continue
			}
			out.set(row, col, f(va, vb))
		}
	}
	return out
}

// Exceeds is the "a exceeds b" comparison: the positive part of a-b.
func Exceeds(a, b float64) float64 {
	return math.Max(a-b, 0)
}
