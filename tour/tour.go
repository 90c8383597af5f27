// Package tour runs user-written Tengo scripts that steer the panorama
// camera while nobody is dragging. A script sees the elapsed time and the
// current view angles and may reassign them:
//
//	math := import("math")
//	lon = t * 10
//	lat = 20 * math.sin(t / 3)
//
// Scripts are compiled once and re-run every frame.
package tour

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

type Tour struct {
	compiled *tengo.Compiled
}

// Load reads and compiles a tour script from disk.
func Load(filename string) (*Tour, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("tour: load %s: %w", filename, err)
	}
	t, err := New(src)
	if err != nil {
		return nil, fmt.Errorf("tour: compile %s: %w", filename, err)
	}
	return t, nil
}

// New compiles a tour script from source.
func New(src []byte) (*Tour, error) {
	script := tengo.NewScript(src)
	_ = script.Add("t", 0.0)
	_ = script.Add("lon", 0.0)
	_ = script.Add("lat", 0.0)
	_ = script.Add("fov", 0.0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &Tour{compiled: compiled}, nil
}

// Step runs the script for elapsed time t (seconds) against the current view
// angles and returns the angles the script left behind. A script that does
// not touch a variable leaves it unchanged.
func (tr *Tour) Step(t, lon, lat, fov float64) (float64, float64, float64, error) {
	if err := tr.compiled.Set("t", t); err != nil {
		return lon, lat, fov, err
	}
	if err := tr.compiled.Set("lon", lon); err != nil {
		return lon, lat, fov, err
	}
	if err := tr.compiled.Set("lat", lat); err != nil {
		return lon, lat, fov, err
	}
	if err := tr.compiled.Set("fov", fov); err != nil {
		return lon, lat, fov, err
	}
	if err := tr.compiled.Run(); err != nil {
		return lon, lat, fov, err
	}
	return tr.compiled.Get("lon").Float(),
		tr.compiled.Get("lat").Float(),
		tr.compiled.Get("fov").Float(),
		nil
}
