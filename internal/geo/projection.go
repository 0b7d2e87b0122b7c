package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fixed rotational offsets that line up the equirectangular globe texture,
// the vector boundary data and the raster grids in one frame.
const (
	LonFudge = math.Pi * 0.5
	LatFudge = math.Pi * -0.135
)

// LatFudgeDegrees is LatFudge expressed in degrees (-24.3).
var LatFudgeDegrees = mgl64.RadToDeg(LatFudge)

// Radius is the radius of the globe sphere in scene units.
const Radius = 1.0

// NormalizeLon folds a longitude into (-180, 180]. Values outside
// [-540, 540] are first reduced modulo 360.
func NormalizeLon(lon float64) float64 {
	l := math.Mod(lon, 360)
	if l > 180 {
		l -= 360
	}
	if l <= -180 {
		l += 360
	}
	return l
}

// NormalizeLon360 folds a longitude into [-180, 180) using a
// wraparound-safe modulo. Grid cell centers use this convention.
func NormalizeLon360(lon float64) float64 {
	return math.Mod(math.Mod(lon+180, 360)+360, 360) - 180
}

// SurfaceMatrix composes the yaw/pitch rotation stack for (lat, lon) and a
// translation of radius along the rotated local z axis. lat is in the
// render convention (see RenderLat for vector data).
func SurfaceMatrix(lat, lon, radius float64) mgl64.Mat4 {
	yaw := mgl64.HomogRotate3DY(mgl64.DegToRad(NormalizeLon(lon)) + LonFudge)
	pitch := mgl64.HomogRotate3DX(mgl64.DegToRad(lat) + LatFudge)
	return yaw.Mul4(pitch).Mul4(mgl64.Translate3D(0, 0, radius))
}

// Project maps (lat, lon) to a point height units above the unit globe.
func Project(lat, lon, height float64) mgl64.Vec3 {
	return SurfaceMatrix(lat, lon, Radius+height).Col(3).Vec3()
}

// Unproject recovers spherical (lat, lon) from a point in the globe's local,
// unrotated frame. It does not undo LonFudge or LatFudge: for a point built
// by Project(lat, lon, h) it returns approximately (-(lat+LatFudgeDegrees), -lon).
// Use Locate for the exact inverse of Project.
func Unproject(v mgl64.Vec3) LatLon {
	r := v.Len()
	if r == 0 {
		return LatLon{}
	}
	phi := math.Acos(mgl64.Clamp(v.Y()/r, -1, 1))
	theta := math.Atan2(v.Z(), v.X())
	return LatLon{
		Lat: 90 - mgl64.RadToDeg(phi),
		Lon: NormalizeLon(mgl64.RadToDeg(theta)),
	}
}

// Locate inverts Project: it returns the render-convention (lat, lon) that
// projects onto the ray from the globe center through v. The result is the
// principal solution with lat+LatFudgeDegrees in [-90, 90].
func Locate(v mgl64.Vec3) LatLon {
	s := Unproject(v)
	return LatLon{
		Lat: -s.Lat - LatFudgeDegrees,
		Lon: NormalizeLon(-s.Lon),
	}
}
