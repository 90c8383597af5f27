package viewer

import "math"

// Camera is a perspective camera that orbits the coordinate origin at a fixed
// radius and always looks back at the origin. The panorama sphere is centered
// on the origin, so the camera sees its inner surface.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is width/height of the output surface.
	Aspect float64
	// Radius is the distance from the origin the camera orbits at.
	Radius float64
}

// Resize updates the projection for a new output size. A degenerate size is
// ignored so a collapsed window can never divide the projection by zero; the
// last valid aspect stays in effect.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

// Position returns the camera location on its orbit sphere for a view
// longitude and latitude in degrees.
func (c *Camera) Position(lon, lat float64) Vec3 {
	phi := radians(90 - lat)
	theta := radians(lon)
	return Vec3{
		X: c.Radius * math.Sin(phi) * math.Cos(theta),
		Y: c.Radius * math.Cos(phi),
		Z: c.Radius * math.Sin(phi) * math.Sin(theta),
	}
}

// Basis returns the right, up and forward unit vectors of the camera's
// look-at-origin orientation. Latitude is expected to be clamped short of the
// poles, so forward is never parallel to world up.
func (c *Camera) Basis(lon, lat float64) (right, up, forward Vec3) {
	forward = c.Position(lon, lat).Scale(-1).Normalize()
	right = forward.Cross(Vec3{Y: 1}).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func tanHalfFOV(fovDegrees float64) float64 {
	return math.Tan(radians(fovDegrees) / 2)
}
