package tour

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestStepDrivesLongitude(t *testing.T) {
	tr, err := New([]byte(`lon = t * 10`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	lon, lat, fov, err := tr.Step(3, 0, 15, 75)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if lon != 30 {
		t.Fatalf("expected lon 30, got %v", lon)
	}
	if lat != 15 || fov != 75 {
		t.Fatalf("untouched angles should pass through, got lat=%v fov=%v", lat, fov)
	}
}

func TestStepUsesStdlibModules(t *testing.T) {
	tr, err := New([]byte(`
math := import("math")
lat = 20 * math.sin(t)
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	_, lat, _, err := tr.Step(math.Pi/2, 0, 0, 75)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if math.Abs(lat-20) > 1e-9 {
		t.Fatalf("expected lat 20, got %v", lat)
	}
}

func TestStepIsRepeatable(t *testing.T) {
	tr, err := New([]byte(`lon = lon + 1`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	lon := 0.0
	for i := 0; i < 5; i++ {
		var err error
		lon, _, _, err = tr.Step(float64(i), lon, 0, 75)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if lon != 5 {
		t.Fatalf("expected lon 5 after five steps, got %v", lon)
	}
}

func TestNewRejectsBadSyntax(t *testing.T) {
	if _, err := New([]byte(`lon = = t`)); err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestStepReturnsRuntimeError(t *testing.T) {
	tr, err := New([]byte(`lon = 1 / int(t)`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	lon, lat, fov, err := tr.Step(0, 12, 34, 75)
	if err == nil {
		t.Fatal("expected a runtime error from division by zero")
	}
	if lon != 12 || lat != 34 || fov != 75 {
		t.Fatalf("failed step should return the incoming angles, got %v %v %v", lon, lat, fov)
	}
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "orbit.tengo")
	if err := os.WriteFile(filename, []byte(`lon = t * 4`), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	tr, err := Load(filename)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lon, _, _, err := tr.Step(2, 0, 0, 75)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if lon != 8 {
		t.Fatalf("expected lon 8, got %v", lon)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.tengo")); err == nil {
		t.Fatal("expected an error for a missing script")
	}
}
