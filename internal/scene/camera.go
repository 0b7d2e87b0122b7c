// Package scene holds everything between loaded data and the terminal:
// the orbit camera, picking, layer selection state and scene assembly.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// GlobeYaw is the static yaw applied to the globe and every mesh on it.
const GlobeYaw = math.Pi * -0.5

var (
	toWorld = mgl64.Rotate3DY(GlobeYaw)
	toLocal = mgl64.Rotate3DY(-GlobeYaw)
)

// ToWorld applies the globe yaw to a point in the globe's local frame.
func ToWorld(v mgl64.Vec3) mgl64.Vec3 {
	return toWorld.Mul3x1(v)
}

// ToLocal undoes the globe yaw.
func ToLocal(v mgl64.Vec3) mgl64.Vec3 {
	return toLocal.Mul3x1(v)
}

// Viewport is a terminal area measured in character cells. CellAspect is
// the height of a cell divided by its width.
type Viewport struct {
	Width, Height int
	CellAspect    float64
}

// Aspect returns the visual width/height ratio of the viewport.
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	a := v.CellAspect
	if a <= 0 {
		a = 1
	}
	return float64(v.Width) / (float64(v.Height) * a)
}

// NDC maps the center of cell (x, y) to normalized device coordinates.
func (v Viewport) NDC(x, y int) (float64, float64) {
	nx := 2*(float64(x)+0.5)/float64(v.Width) - 1
	ny := 1 - 2*(float64(y)+0.5)/float64(v.Height)
	return nx, ny
}

// Cell maps normalized device coordinates back to a cell.
func (v Viewport) Cell(nx, ny float64) (int, int) {
	x := (nx + 1) / 2 * float64(v.Width)
	y := (1 - ny) / 2 * float64(v.Height)
	return int(math.Floor(x)), int(math.Floor(y))
}

// Camera is a perspective camera looking at Target from Eye.
type Camera struct {
	Fov    float64 // vertical, degrees
	Near   float64
	Far    float64
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
}

// NewCamera returns the default globe camera.
func NewCamera() *Camera {
	return &Camera{
		Fov:  60,
		Near: 0.1,
		Far:  10,
		Eye:  mgl64.Vec3{4, 0, 0},
		Up:   mgl64.Vec3{0, 1, 0},
	}
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// Ray returns the world-space ray through cell (x, y) of vp. dir is unit
// length.
func (c *Camera) Ray(vp Viewport, x, y int) (origin, dir mgl64.Vec3) {
	return c.Rays(vp)(x, y)
}

// Rays returns a reusable ray generator for many cells under the same
// camera and viewport.
func (c *Camera) Rays(vp Viewport) func(x, y int) (origin, dir mgl64.Vec3) {
	inv := c.Projection(vp.Aspect()).Mul4(c.View()).Inv()
	return func(x, y int) (mgl64.Vec3, mgl64.Vec3) {
		nx, ny := vp.NDC(x, y)
		near := inv.Mul4x1(mgl64.Vec4{nx, ny, -1, 1})
		far := inv.Mul4x1(mgl64.Vec4{nx, ny, 1, 1})
		p0 := near.Vec3().Mul(1 / near.W())
		p1 := far.Vec3().Mul(1 / far.W())
		return p0, p1.Sub(p0).Normalize()
	}
}

// Screen projects a world point into vp. ok is false for points behind the
// camera or outside the clip volume depth range. depth is the NDC z.
func (c *Camera) Screen(vp Viewport, world mgl64.Vec3) (x, y int, depth float64, ok bool) {
	return c.screen(vp, c.Projection(vp.Aspect()).Mul4(c.View()), world)
}

// Transform returns a reusable projector for many points under the same
// camera and viewport.
func (c *Camera) Transform(vp Viewport) func(world mgl64.Vec3) (x, y int, depth float64, ok bool) {
	m := c.Projection(vp.Aspect()).Mul4(c.View())
	return func(world mgl64.Vec3) (int, int, float64, bool) {
		return c.screen(vp, m, world)
	}
}

func (c *Camera) screen(vp Viewport, m mgl64.Mat4, world mgl64.Vec3) (int, int, float64, bool) {
	clip := m.Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, 0, false
	}
	x, y := vp.Cell(ndc.X(), ndc.Y())
	return x, y, ndc.Z(), true
}

// Facing reports whether a point on the globe surface at world position p
// faces the camera.
func (c *Camera) Facing(p mgl64.Vec3) bool {
	return p.Dot(c.Eye.Sub(p)) > 0
}

// IntersectSphere returns the nearest non-negative distance along a unit
// ray to the sphere of radius r at the origin.
func IntersectSphere(origin, dir mgl64.Vec3, r float64) (float64, bool) {
	b := origin.Dot(dir)
	cc := origin.Dot(origin) - r*r
	disc := b*b - cc
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
