package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsImageFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"pano.png", true},
		{"pano.jpg", true},
		{"pano.jpeg", true},
		{"pano.webp", true},
		{"PANO.PNG", true},
		{"dir/nested/pano.jpg", true},
		{"pano.gif", false},
		{"pano.png.tmp", false},
		{"notes.txt", false},
		{"pano", false},
	}

	for _, c := range cases {
		if got := isImageFile(c.path); got != c.want {
			t.Errorf("isImageFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestWatcherReportsImageWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	target := filepath.Join(dir, "pano.png")
	if err := os.WriteFile(target, []byte("v1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Not an image, must be filtered out.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != target {
			t.Fatalf("expected event for %s, got %s", target, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event before deadline")
	}

	// The text file must not produce a trailing event.
	select {
	case got := <-w.Events:
		if filepath.Ext(got) == ".txt" {
			t.Fatalf("non-image file leaked through: %s", got)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
