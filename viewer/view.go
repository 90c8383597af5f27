package viewer

// Default interaction constants. Options built from these match the behavior
// of the classic equirectangular viewers this one is modeled after.
const (
	DefaultFOV         = 75.0
	DefaultMinFOV      = 30.0
	DefaultMaxFOV      = 90.0
	DefaultLatLimit    = 85.0
	DefaultSensitivity = 0.1
	DefaultWheelScale  = 0.05
	DefaultRadius      = 500.0
)

// ViewState describes the current look direction and zoom.
type ViewState struct {
	// Lon is the view longitude in degrees. It is unbounded; the panorama
	// wraps, so 370 and 10 describe the same direction.
	Lon float64
	// Lat is the view latitude in degrees. It may transiently exceed the
	// latitude limit between pointer events; the frame step clamps it.
	Lat float64
	// FOV is the vertical field of view in degrees. Smaller means more zoom.
	FOV float64
}

// dragSession captures where a drag started so that pointer moves set angles
// relative to the pointer-down position instead of accumulating deltas. It
// lives from pointer-down to pointer-up.
type dragSession struct {
	startX, startY     float64
	startLon, startLat float64
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
