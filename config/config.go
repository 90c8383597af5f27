// Package config loads the viewer configuration from YAML. Every field has a
// default, so an absent or sparse config file is fine; the file only overlays
// what it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/panoview/viewer"
)

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	AutoRotate AutoRotateConfig `yaml:"auto_rotate"`
	// Image is an optional panorama to load at startup: a file path, an
	// http(s) URL, or a base64 data URI.
	Image string `yaml:"image"`
	// Tour is an optional Tengo script that steers the camera while the
	// user is not dragging.
	Tour string `yaml:"tour"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type ViewerConfig struct {
	Sensitivity     float64 `yaml:"sensitivity"`
	WheelScale      float64 `yaml:"wheel_scale"`
	FOV             float64 `yaml:"fov"`
	MinFOV          float64 `yaml:"min_fov"`
	MaxFOV          float64 `yaml:"max_fov"`
	LatLimit        float64 `yaml:"lat_limit"`
	Radius          float64 `yaml:"radius"`
	MaxTextureWidth int     `yaml:"max_texture_width"`
	Software        bool    `yaml:"software"`
}

type AutoRotateConfig struct {
	Enabled bool `yaml:"enabled"`
	// DegreesPerSecond is the idle rotation speed. Negative rotates the
	// other way.
	DegreesPerSecond float64 `yaml:"degrees_per_second"`
}

func Default() Config {
	opts := viewer.DefaultOptions()
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "panoview",
		},
		Viewer: ViewerConfig{
			Sensitivity:     opts.Sensitivity,
			WheelScale:      opts.WheelScale,
			FOV:             opts.FOV,
			MinFOV:          opts.MinFOV,
			MaxFOV:          opts.MaxFOV,
			LatLimit:        opts.LatLimit,
			Radius:          opts.Radius,
			MaxTextureWidth: opts.MaxTextureWidth,
		},
		AutoRotate: AutoRotateConfig{
			DegreesPerSecond: 4,
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(filename string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	return cfg, nil
}

// Options converts the viewer section into viewer.Options.
func (c ViewerConfig) Options() viewer.Options {
	return viewer.Options{
		Sensitivity:     c.Sensitivity,
		WheelScale:      c.WheelScale,
		FOV:             c.FOV,
		MinFOV:          c.MinFOV,
		MaxFOV:          c.MaxFOV,
		LatLimit:        c.LatLimit,
		Radius:          c.Radius,
		MaxTextureWidth: c.MaxTextureWidth,
		Software:        c.Software,
	}
}
