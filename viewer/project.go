package viewer

import "math"

// RayThrough returns the world-space unit view ray through normalized device
// coordinates, where ndcX and ndcY are in [-1, 1] with +1 at the right and
// top edges of the frame.
func (c *Camera) RayThrough(ndcX, ndcY, lon, lat float64) Vec3 {
	right, up, forward := c.Basis(lon, lat)
	t := math.Tan(radians(c.FOV) / 2)
	d := forward.
		Add(right.Scale(ndcX * c.Aspect * t)).
		Add(up.Scale(ndcY * t))
	return d.Normalize()
}

// EquirectUV maps a unit direction onto equirectangular texture coordinates.
// u runs along longitude and wraps at the panorama seam; v is 0 at the top
// edge (zenith) and 1 at the bottom (nadir).
func EquirectUV(d Vec3) (u, v float64) {
	lon := math.Atan2(d.Z, d.X)
	lat := math.Asin(clamp(d.Y, -1, 1))
	u = lon/(2*math.Pi) + 0.5
	v = 0.5 - lat/math.Pi
	return u, v
}

// WrapDegrees folds an unbounded angle into (-180, 180]. Used to pick the
// shortest rotation when animating longitude back to a reference direction.
func WrapDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}
