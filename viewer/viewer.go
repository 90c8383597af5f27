// Package viewer implements an interactive 360° panorama viewer: an
// equirectangular texture rendered on the inside of a sphere, with a
// perspective camera steered by pointer drags and zoomed by the scroll
// wheel. The viewer is host-agnostic; an Ebiten adapter forwards events
// into it and calls Step/Draw once per frame.
package viewer

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Options configures a Viewer. DefaultOptions returns the values the viewer
// was tuned with; hosts usually only override Sensitivity and the FOV limits
// via their config file.
type Options struct {
	// Sensitivity converts dragged pixels into degrees.
	Sensitivity float64
	// WheelScale converts wheel delta into degrees of field of view.
	WheelScale float64
	// FOV is the initial vertical field of view in degrees.
	FOV float64
	// MinFOV and MaxFOV bound the zoom range.
	MinFOV, MaxFOV float64
	// LatLimit keeps the camera short of the poles, in degrees.
	LatLimit float64
	// Radius is the camera orbit radius around the panorama center.
	Radius float64
	// MaxTextureWidth bounds loaded textures; wider images are downscaled.
	// Zero or negative disables the downscale.
	MaxTextureWidth int
	// Software forces the CPU renderer even when a shader is installed.
	Software bool
}

func DefaultOptions() Options {
	return Options{
		Sensitivity:     DefaultSensitivity,
		WheelScale:      DefaultWheelScale,
		FOV:             DefaultFOV,
		MinFOV:          DefaultMinFOV,
		MaxFOV:          DefaultMaxFOV,
		LatLimit:        DefaultLatLimit,
		Radius:          DefaultRadius,
		MaxTextureWidth: DefaultMaxTextureWidth,
	}
}

// Viewer owns the view state, the camera, and the panorama texture. All
// methods must be called from the frame-loop goroutine; the only other
// goroutine involved is the texture loader, which communicates exclusively
// over channels drained in Step.
type Viewer struct {
	opts Options
	view ViewState
	drag *dragSession
	cam  Camera

	loader  *loader
	lastSeq uint64
	loading string

	// pending holds prepared pixels waiting for GPU upload on the next Draw.
	// The swap is atomic from the host's point of view: the old texture is
	// retired only once the replacement is displayable.
	pending *image.RGBA
	pix     *image.RGBA
	texture *ebiten.Image
	retired *ebiten.Image
	source  string

	shader *ebiten.Shader

	// software-path scratch buffers, grown on demand.
	frame    *image.RGBA
	frameImg *ebiten.Image

	closed bool
}

// New validates opts and returns a viewer looking at longitude 0, latitude 0
// with the configured initial field of view. No texture is loaded yet;
// frames drawn before the first LoadImage completes show a black background.
func New(opts Options) (*Viewer, error) {
	if opts.Radius <= 0 {
		return nil, fmt.Errorf("viewer: radius must be positive, got %v", opts.Radius)
	}
	if opts.Sensitivity <= 0 {
		return nil, fmt.Errorf("viewer: sensitivity must be positive, got %v", opts.Sensitivity)
	}
	if opts.MinFOV <= 0 || opts.MinFOV >= opts.MaxFOV {
		return nil, fmt.Errorf("viewer: invalid field of view range [%v, %v]", opts.MinFOV, opts.MaxFOV)
	}
	if opts.LatLimit <= 0 || opts.LatLimit >= 90 {
		return nil, fmt.Errorf("viewer: latitude limit must be in (0, 90), got %v", opts.LatLimit)
	}
	v := &Viewer{
		opts:   opts,
		view:   ViewState{FOV: clamp(opts.FOV, opts.MinFOV, opts.MaxFOV)},
		cam:    Camera{FOV: opts.FOV, Radius: opts.Radius},
		loader: newLoader(opts.MaxTextureWidth),
	}
	return v, nil
}

// SetShader installs the compiled projection shader. With no shader (or with
// Options.Software set) the viewer renders on the CPU.
func (v *Viewer) SetShader(s *ebiten.Shader) {
	v.shader = s
}

// View returns the current view state.
func (v *Viewer) View() ViewState {
	return v.view
}

// SetView replaces the view state, for animated resets and scripted tours.
// The field of view is bounded immediately; latitude is bounded by the next
// Step, same as during a drag.
func (v *Viewer) SetView(s ViewState) {
	s.FOV = clamp(s.FOV, v.opts.MinFOV, v.opts.MaxFOV)
	v.view = s
}

// Dragging reports whether a drag session is open.
func (v *Viewer) Dragging() bool {
	return v.drag != nil
}

// Source returns the source description of the displayed panorama.
func (v *Viewer) Source() string {
	return v.source
}

// Loading returns the source currently being decoded, or "".
func (v *Viewer) Loading() string {
	return v.loading
}

// HasTexture reports whether a panorama is ready to display.
func (v *Viewer) HasTexture() bool {
	return v.texture != nil || v.pending != nil
}

// PointerDown opens a drag session at screen position (x, y).
func (v *Viewer) PointerDown(x, y float64) {
	v.drag = &dragSession{
		startX:   x,
		startY:   y,
		startLon: v.view.Lon,
		startLat: v.view.Lat,
	}
}

// PointerMove steers the view while a drag session is open. Angles are set
// relative to the session start, so a move back to the press position
// restores the angles exactly. Latitude is left unclamped here; Step bounds
// it before the frame is rendered.
func (v *Viewer) PointerMove(x, y float64) {
	if v.drag == nil {
		return
	}
	v.view.Lon = (v.drag.startX-x)*v.opts.Sensitivity + v.drag.startLon
	v.view.Lat = (v.drag.startY-y)*v.opts.Sensitivity + v.drag.startLat
}

// PointerUp closes the drag session. The last computed angles persist.
func (v *Viewer) PointerUp() {
	v.drag = nil
}

// Wheel zooms by adjusting the field of view, bounded immediately.
func (v *Viewer) Wheel(deltaY float64) {
	v.view.FOV = clamp(v.view.FOV+deltaY*v.opts.WheelScale, v.opts.MinFOV, v.opts.MaxFOV)
}

// LoadImage asks the loader to decode a panorama from a file path, URL, or
// data URI. It never blocks the frame loop. Calling again before a previous
// load finishes supersedes it; the newest call wins regardless of decode
// completion order.
func (v *Viewer) LoadImage(source string) {
	if v.closed {
		return
	}
	v.lastSeq++
	v.loading = source
	v.loader.submit(loadJob{seq: v.lastSeq, source: source})
}

// LoadImageFromImage feeds an already-decoded image through the same
// preparation pipeline, for hosts that hand over raw pixels.
func (v *Viewer) LoadImageFromImage(img image.Image) {
	if v.closed || img == nil {
		return
	}
	v.lastSeq++
	v.loading = "(raw image)"
	v.loader.submit(loadJob{seq: v.lastSeq, source: v.loading, img: img})
}

// Resize updates the camera for a new output size. Degenerate sizes are
// ignored, keeping the last valid projection.
func (v *Viewer) Resize(width, height int) {
	v.cam.Resize(width, height)
}

// Step advances the viewer by one frame tick: retired textures are released,
// finished loads are applied, and latitude is bounded. It runs once per
// update regardless of interaction state.
func (v *Viewer) Step() {
	if v.retired != nil {
		v.retired.Deallocate()
		v.retired = nil
	}

	for {
		select {
		case res := <-v.loader.results:
			if res.seq != v.lastSeq {
				// A newer LoadImage superseded this one.
				continue
			}
			if res.err != nil {
				log.Printf("viewer: load %s: %v", res.source, res.err)
				v.loading = ""
				continue
			}
			v.pending = res.pix
			v.source = res.source
			v.loading = ""
		default:
			v.view.Lat = clamp(v.view.Lat, -v.opts.LatLimit, v.opts.LatLimit)
			v.cam.FOV = v.view.FOV
			return
		}
	}
}

// Draw renders the current frame. Pending pixels are uploaded here so the
// texture swap happens exactly once, right before the first frame that can
// show it.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.cam.Aspect == 0 {
		v.cam.Resize(screen.Bounds().Dx(), screen.Bounds().Dy())
	}

	if v.pending != nil {
		tex := ebiten.NewImageFromImage(v.pending)
		if v.texture != nil {
			v.retired = v.texture
		}
		v.texture = tex
		v.pix = v.pending
		v.pending = nil
	}

	if v.texture == nil {
		return
	}

	if v.shader != nil && !v.opts.Software {
		v.drawShader(screen)
		return
	}
	v.drawSoftware(screen)
}

func (v *Viewer) drawShader(screen *ebiten.Image) {
	right, up, forward := v.cam.Basis(v.view.Lon, v.view.Lat)

	b := screen.Bounds()
	tb := v.texture.Bounds()
	vs := make([]ebiten.Vertex, 4)
	for i := range vs {
		vs[i].ColorR = 1
		vs[i].ColorG = 1
		vs[i].ColorB = 1
		vs[i].ColorA = 1
	}
	vs[1].DstX = float32(b.Dx())
	vs[2].DstY = float32(b.Dy())
	vs[3].DstX = float32(b.Dx())
	vs[3].DstY = float32(b.Dy())
	vs[1].SrcX = float32(tb.Max.X)
	vs[2].SrcY = float32(tb.Max.Y)
	vs[3].SrcX = float32(tb.Max.X)
	vs[3].SrcY = float32(tb.Max.Y)
	for i := range vs {
		vs[i].SrcX += float32(tb.Min.X)
		vs[i].SrcY += float32(tb.Min.Y)
	}

	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: map[string]any{
			"Right":      []float32{float32(right.X), float32(right.Y), float32(right.Z)},
			"Up":         []float32{float32(up.X), float32(up.Y), float32(up.Z)},
			"Forward":    []float32{float32(forward.X), float32(forward.Y), float32(forward.Z)},
			"TanHalfFov": float32(tanHalfFOV(v.cam.FOV)),
			"Aspect":     float32(v.cam.Aspect),
		},
	}
	op.Images[0] = v.texture
	screen.DrawTrianglesShader(vs, []uint16{0, 1, 2, 1, 2, 3}, v.shader, op)
}

func (v *Viewer) drawSoftware(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if w <= 0 || h <= 0 || v.pix == nil {
		return
	}
	if v.frame == nil || v.frame.Bounds().Dx() != w || v.frame.Bounds().Dy() != h {
		v.frame = image.NewRGBA(image.Rect(0, 0, w, h))
		if v.frameImg != nil {
			v.frameImg.Deallocate()
		}
		v.frameImg = ebiten.NewImage(w, h)
	}
	RenderSoftware(v.frame, v.pix, v.cam, v.view.Lon, v.view.Lat)
	v.frameImg.WritePixels(v.frame.Pix)
	screen.DrawImage(v.frameImg, nil)
}

// Close stops the loader goroutine and releases GPU textures. The viewer
// must not be used afterwards.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.loader.close()
	if v.texture != nil {
		v.texture.Deallocate()
		v.texture = nil
	}
	if v.retired != nil {
		v.retired.Deallocate()
		v.retired = nil
	}
	if v.frameImg != nil {
		v.frameImg.Deallocate()
		v.frameImg = nil
	}
}
