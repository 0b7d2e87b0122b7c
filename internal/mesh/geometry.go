// Package mesh builds renderable geometry from boundary features and
// raster grids.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is an indexed triangle mesh with one normalized RGB color per
// vertex. Instances counts the primitives merged into it.
type Geometry struct {
	Positions []mgl64.Vec3
	Colors    [][3]uint8
	Indices   []uint32
	Instances int
}

// BoxVertices and BoxIndices are the vertex and index counts of one box.
const (
	BoxVertices = 24
	BoxIndices  = 36
)

// unitBox is a 1×1×1 cube centered on the origin with four vertices per
// face so each face can carry its own attributes.
var unitBox, unitBoxIndices = makeUnitBox()

func makeUnitBox() ([BoxVertices]mgl64.Vec3, [BoxIndices]uint32) {
	var (
		verts [BoxVertices]mgl64.Vec3
		idx   [BoxIndices]uint32
	)
	// Each face: axis index, sign. Corners are walked counter-clockwise
	// seen from outside.
	faces := []struct {
		axis int
		sign float64
	}{{0, 1}, {0, -1}, {1, 1}, {1, -1}, {2, 1}, {2, -1}}

	for f, face := range faces {
		u := (face.axis + 1) % 3
		v := (face.axis + 2) % 3
		corners := [4][2]float64{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
		if face.sign < 0 {
			corners = [4][2]float64{{-0.5, -0.5}, {-0.5, 0.5}, {0.5, 0.5}, {0.5, -0.5}}
		}
		for c, uv := range corners {
			var p mgl64.Vec3
			p[face.axis] = 0.5 * face.sign
			p[u] = uv[0]
			p[v] = uv[1]
			verts[f*4+c] = p
		}
		base := uint32(f * 4)
		copy(idx[f*6:], []uint32{base, base + 1, base + 2, base, base + 2, base + 3})
	}
	return verts, idx
}

// appendBox transforms the unit box by m and appends it with a uniform color.
func (g *Geometry) appendBox(m mgl64.Mat4, rgb [3]uint8) {
	base := uint32(len(g.Positions))
	for _, v := range unitBox {
		g.Positions = append(g.Positions, mgl64.TransformCoordinate(v, m))
		g.Colors = append(g.Colors, rgb)
	}
	for _, i := range unitBoxIndices {
		g.Indices = append(g.Indices, base+i)
	}
	g.Instances++
}

// Merge concatenates geometries into one, rebasing indices.
func Merge(parts ...*Geometry) *Geometry {
	out := &Geometry{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, p.Positions...)
		out.Colors = append(out.Colors, p.Colors...)
		for _, i := range p.Indices {
			out.Indices = append(out.Indices, base+i)
		}
		out.Instances += p.Instances
	}
	return out
}

// Empty reports whether the geometry has no vertices.
func (g *Geometry) Empty() bool {
	return len(g.Positions) == 0
}

// InstanceCenter returns the centroid of the i-th box instance.
func (g *Geometry) InstanceCenter(i int) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, p := range g.Positions[i*BoxVertices : (i+1)*BoxVertices] {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / BoxVertices)
}
