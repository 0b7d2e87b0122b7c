package mesh

import (
	"fmt"
	"math"

	"asciiglobe/internal/geo"
	"asciiglobe/internal/raster"

	"github.com/go-gl/mathgl/mgl64"
)

// Default box dimensions in globe units.
const (
	DefaultFootprint = 0.005
	DefaultMinHeight = 0.000001
	DefaultMaxHeight = 0.02
	DefaultMaxBoxes  = 150_000
)

// Options tunes box generation.
type Options struct {
	// InvertLightness makes higher values darker.
	InvertLightness bool
	// Peers are grids of the same shape; a cell is skipped unless it is
	// present in every peer.
	Peers []*raster.Grid

	Footprint float64
	MinHeight float64
	MaxHeight float64
}

func (o Options) withDefaults() Options {
	if o.Footprint <= 0 {
		o.Footprint = DefaultFootprint
	}
	if o.MinHeight <= 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = DefaultMaxHeight
	}
	return o
}

// Stride returns the sampling step that keeps the number of visited cells
// of an nrows×ncols grid near maxInstances.
func Stride(nrows, ncols, maxInstances int) int {
	if maxInstances < 1 {
		maxInstances = 1
	}
	s := int(math.Ceil(math.Sqrt(float64(nrows) * float64(ncols) / float64(maxInstances))))
	if s < 1 {
		return 1
	}
	return s
}

// BoxMatrix places a unit cube on the globe at raster-convention (lat, lon):
// footprint wide in both surface directions, height tall, with its base on
// the sphere surface.
func BoxMatrix(lat, lon, footprint, height float64) mgl64.Mat4 {
	return geo.SurfaceMatrix(lat, lon, geo.Radius).
		Mul4(mgl64.Scale3D(footprint, footprint, height)).
		Mul4(mgl64.Translate3D(0, 0, 0.5))
}

// Amount normalizes v into [0, 1] over [min, max]. A flat range is treated
// as having width 1.
func Amount(v, min, max float64) float64 {
	span := max - min
	if span == 0 {
		span = 1
	}
	return (v - min) / span
}

type cellRef struct {
	row, col int
	lat, lon float64
}

// sampleCells walks grid at the decimation stride and returns the cells
// accepted by keep, skipping the duplicated last column.
func sampleCells(grid *raster.Grid, maxInstances int, keep func(row, col int) bool) []cellRef {
	s := Stride(grid.NRows, grid.NCols, maxInstances)
	var out []cellRef
	for row := 0; row < grid.NRows; row += s {
		for col := 0; col < grid.NCols; col += s {
			if col == grid.NCols-1 {
				continue
			}
			if !keep(row, col) {
				continue
			}
			lat, lon := grid.CellCenter(row, col)
			out = append(out, cellRef{row: row, col: col, lat: lat, lon: geo.NormalizeLon360(lon)})
		}
	}
	return out
}

func presentInAll(grids []*raster.Grid, row, col int) bool {
	for _, g := range grids {
		if _, ok := g.At(row, col); !ok {
			return false
		}
	}
	return true
}

func checkPeers(grid *raster.Grid, peers []*raster.Grid) error {
	for i, p := range peers {
		if p == nil || !grid.SameShape(p) {
			return fmt.Errorf("peer grid %d does not match %d×%d grid", i, grid.NRows, grid.NCols)
		}
	}
	return nil
}

// BuildBoxes emits one colored box per sampled, present, non-zero cell of
// grid and merges them into a single geometry. A grid with nothing to show
// yields an empty geometry.
func BuildBoxes(grid *raster.Grid, hues HueRange, maxInstances int, opts Options) (*Geometry, error) {
	if grid == nil {
		return nil, fmt.Errorf("nil grid")
	}
	if err := checkPeers(grid, opts.Peers); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	min, max, ok := grid.Range()
	if !ok {
		return &Geometry{}, nil
	}

	cells := sampleCells(grid, maxInstances, func(row, col int) bool {
		v, ok := grid.At(row, col)
		return ok && v != 0 && presentInAll(opts.Peers, row, col)
	})

	g := &Geometry{}
	for _, c := range cells {
		v, _ := grid.At(c.row, c.col)
		amount := Amount(v, min, max)
		g.appendBox(boxFor(c, amount, opts), ValueColor(hues, amount, opts.InvertLightness))
	}
	return g, nil
}

func boxFor(c cellRef, amount float64, opts Options) mgl64.Mat4 {
	return BoxMatrix(c.lat, c.lon, opts.Footprint, lerp(opts.MinHeight, opts.MaxHeight, amount))
}
