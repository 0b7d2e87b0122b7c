package scene

import (
	"math"

	"asciiglobe/internal/geo"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultMinDistance = 1.5
	DefaultMaxDistance = 3.0
	DefaultDamping     = 0.25

	// Pitch stops just short of the poles so the up vector stays valid.
	maxPitch = math.Pi/2 - 0.01
	settle   = 1e-5
)

// OrbitControls spins a camera around the globe center. Rotation input
// is damped: each Update applies a fraction of the pending motion.
type OrbitControls struct {
	Yaw      float64 // around +Y, 0 looks down -Z
	Pitch    float64 // elevation above the equator plane
	Distance float64

	MinDistance float64
	MaxDistance float64
	Damping     float64

	// OnChange runs after any Update that moved the camera.
	OnChange func()

	camera    *Camera
	dYaw      float64
	dPitch    float64
	zoomScale float64
}

// NewOrbitControls attaches controls to camera, starting from its current
// eye position.
func NewOrbitControls(camera *Camera) *OrbitControls {
	o := &OrbitControls{
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
		Damping:     DefaultDamping,
		camera:      camera,
		zoomScale:   1,
	}
	eye := camera.Eye.Sub(camera.Target)
	o.Distance = eye.Len()
	if o.Distance > 0 {
		o.Yaw = math.Atan2(eye.X(), eye.Z())
		o.Pitch = math.Asin(mgl64.Clamp(eye.Y()/o.Distance, -1, 1))
	}
	o.clamp()
	o.apply()
	return o
}

// Rotate queues a rotation in radians.
func (o *OrbitControls) Rotate(dYaw, dPitch float64) {
	o.dYaw += dYaw
	o.dPitch += dPitch
}

// Zoom scales the orbit distance; factors below 1 move closer.
func (o *OrbitControls) Zoom(factor float64) {
	if factor > 0 {
		o.zoomScale *= factor
	}
}

// Face turns the camera so the render-convention location is centered.
func (o *OrbitControls) Face(lat, lon float64) {
	w := ToWorld(geo.Project(lat, lon, 0)).Normalize()
	o.Yaw = math.Atan2(w.X(), w.Z())
	o.Pitch = math.Asin(mgl64.Clamp(w.Y(), -1, 1))
	o.dYaw, o.dPitch = 0, 0
	o.clamp()
	o.apply()
}

// Update advances damping and moves the camera. It returns true while the
// camera is still moving.
func (o *OrbitControls) Update() bool {
	moved := false

	if math.Abs(o.dYaw) > settle || math.Abs(o.dPitch) > settle {
		o.Yaw += o.dYaw * o.Damping
		o.Pitch += o.dPitch * o.Damping
		o.dYaw *= 1 - o.Damping
		o.dPitch *= 1 - o.Damping
		moved = true
	} else {
		o.dYaw, o.dPitch = 0, 0
	}

	if o.zoomScale != 1 {
		o.Distance *= o.zoomScale
		o.zoomScale = 1
		moved = true
	}

	if !moved {
		return false
	}
	o.clamp()
	o.apply()
	if o.OnChange != nil {
		o.OnChange()
	}
	return true
}

func (o *OrbitControls) clamp() {
	o.Pitch = mgl64.Clamp(o.Pitch, -maxPitch, maxPitch)
	o.Distance = mgl64.Clamp(o.Distance, o.MinDistance, o.MaxDistance)
	o.Yaw = math.Mod(o.Yaw, 2*math.Pi)
}

func (o *OrbitControls) apply() {
	cp := math.Cos(o.Pitch)
	dir := mgl64.Vec3{cp * math.Sin(o.Yaw), math.Sin(o.Pitch), cp * math.Cos(o.Yaw)}
	o.camera.Eye = o.camera.Target.Add(dir.Mul(o.Distance))
}
