package viewer

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

func solidImage(c color.RGBA, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// stepUntil pumps the viewer's frame step until cond holds or the deadline
// passes.
func stepUntil(t *testing.T, v *Viewer, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached before deadline")
		}
		v.Step()
		time.Sleep(time.Millisecond)
	}
}

func TestLoadImageAppliesResult(t *testing.T) {
	v := newTestViewer(t)
	v.loader.decode = func(source string) (image.Image, error) {
		return solidImage(color.RGBA{R: 0xff, A: 0xff}, 4, 2), nil
	}

	v.LoadImage("red.png")
	if v.HasTexture() {
		t.Fatal("texture should not be ready synchronously")
	}

	stepUntil(t, v, v.HasTexture)
	if got := v.Source(); got != "red.png" {
		t.Fatalf("expected source red.png, got %q", got)
	}
	if got := v.Loading(); got != "" {
		t.Fatalf("loading should be cleared, got %q", got)
	}
}

func TestLoadImageLastCallWins(t *testing.T) {
	v := newTestViewer(t)

	// The first decode blocks until released, so its result lands after
	// the second request has been issued.
	release := make(chan struct{})
	v.loader.decode = func(source string) (image.Image, error) {
		if source == "a.png" {
			<-release
		}
		return solidImage(color.RGBA{G: 0xff, A: 0xff}, 4, 2), nil
	}

	v.LoadImage("a.png")
	v.LoadImage("b.png")
	close(release)

	stepUntil(t, v, func() bool { return v.Source() == "b.png" })

	// Any further pumping must not resurrect the superseded result.
	for i := 0; i < 10; i++ {
		v.Step()
	}
	if got := v.Source(); got != "b.png" {
		t.Fatalf("stale load overwrote the newer one: %q", got)
	}
}

func TestLoadImageDecodeFailureLeavesBackgroundUnchanged(t *testing.T) {
	v := newTestViewer(t)
	fail := errors.New("not an image")
	v.loader.decode = func(source string) (image.Image, error) {
		if source == "bad.png" {
			return nil, fail
		}
		return solidImage(color.RGBA{B: 0xff, A: 0xff}, 4, 2), nil
	}

	v.LoadImage("bad.png")
	stepUntil(t, v, func() bool { return v.Loading() == "" })
	if v.HasTexture() {
		t.Fatal("failed decode should not install a texture")
	}

	v.LoadImage("good.png")
	stepUntil(t, v, func() bool { return v.Source() == "good.png" })

	v.LoadImage("bad.png")
	stepUntil(t, v, func() bool { return v.Loading() == "" })
	if got := v.Source(); got != "good.png" {
		t.Fatalf("failed decode should leave the previous background, got %q", got)
	}
}

func TestLoadImageFromImage(t *testing.T) {
	v := newTestViewer(t)

	v.LoadImageFromImage(solidImage(color.RGBA{R: 0x80, G: 0x80, A: 0xff}, 8, 4))
	stepUntil(t, v, v.HasTexture)

	if v.pending == nil {
		t.Fatal("prepared pixels should be staged for upload")
	}
	if got := v.pending.Bounds(); got.Dx() != 8 || got.Dy() != 4 {
		t.Fatalf("unexpected prepared size %v", got)
	}
}

func TestSubmitDisplacesQueuedJob(t *testing.T) {
	v := newTestViewer(t)

	release := make(chan struct{})
	var decoded []string
	done := make(chan string, 8)
	v.loader.decode = func(source string) (image.Image, error) {
		if source == "slow.png" {
			<-release
		}
		done <- source
		return solidImage(color.RGBA{A: 0xff}, 2, 1), nil
	}

	v.LoadImage("slow.png")
	time.Sleep(50 * time.Millisecond) // let the worker pick it up
	v.LoadImage("queued-1.png")
	v.LoadImage("queued-2.png")
	v.LoadImage("queued-3.png")
	close(release)

	stepUntil(t, v, func() bool { return v.Source() == "queued-3.png" })
	close(done)
	for s := range done {
		decoded = append(decoded, s)
	}
	for _, s := range decoded {
		if s == "queued-1.png" || s == "queued-2.png" {
			t.Fatalf("superseded queued job %s should have been displaced, decoded: %v", s, decoded)
		}
	}
}
