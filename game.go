package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.design/x/clipboard"

	"github.com/milk9111/panoview/assets"
	"github.com/milk9111/panoview/config"
	"github.com/milk9111/panoview/tour"
	"github.com/milk9111/panoview/viewer"
	"github.com/milk9111/panoview/watch"
)

// wheelNotchDelta converts one wheel notch into the delta units the viewer
// zoom expects.
const wheelNotchDelta = 100.0

// Game is the Ebiten host adapter: it polls input, forwards pointer and
// resize events into the viewer, and layers the toolbar and HUD on top.
type Game struct {
	cfg   config.Config
	debug bool

	viewer      *viewer.Viewer
	input       *Input
	ui          *ebitenui.UI
	sourceInput *widget.TextInput

	tour       *tour.Tour
	tourActive bool
	elapsed    float64

	autoRotate bool
	hudVisible bool

	// Reset-view animation; nil when idle.
	lonTween *gween.Tween
	latTween *gween.Tween
	fovTween *gween.Tween

	watcher     *watch.Watcher
	watchedPath string

	settings    *SavedSettings
	clipboardOK bool

	width, height      int
	resizedW, resizedH int
}

func NewGame(cfg config.Config, imageSource string, debug bool) (*Game, error) {
	v, err := viewer.New(cfg.Viewer.Options())
	if err != nil {
		return nil, err
	}

	if !cfg.Viewer.Software {
		if err := assets.LoadShaders(); err != nil {
			return nil, fmt.Errorf("failed to compile shaders: %w", err)
		}
		v.SetShader(assets.PanoramaShader)
	}

	g := &Game{
		cfg:        cfg,
		debug:      debug,
		viewer:     v,
		input:      &Input{},
		autoRotate: cfg.AutoRotate.Enabled,
		hudVisible: true,
	}
	g.ui, g.sourceInput = NewViewerUI(g)

	if err := InitPersistence(); err == nil {
		if saved, err := LoadSettings(); err == nil && saved != nil {
			g.hudVisible = saved.HUDVisible
			g.autoRotate = saved.AutoRotate
			if imageSource == "" && cfg.Image == "" {
				imageSource = saved.LastImage
			}
		}
	}
	g.settings = &SavedSettings{
		HUDVisible: g.hudVisible,
		AutoRotate: g.autoRotate,
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if cfg.Tour != "" {
		t, err := tour.Load(cfg.Tour)
		if err != nil {
			log.Printf("tour disabled: %v", err)
		} else {
			g.tour = t
			g.tourActive = true
		}
	}

	if imageSource == "" {
		imageSource = cfg.Image
	}
	if imageSource != "" {
		g.loadSource(imageSource)
	}

	return g, nil
}

// loadSource hands a panorama source to the viewer and, for plain files,
// re-points the hot-reload watcher at its directory.
func (g *Game) loadSource(source string) {
	source = strings.TrimSpace(source)
	if source == "" {
		return
	}
	if g.debug {
		log.Printf("loading panorama %s", source)
	}
	g.viewer.LoadImage(source)
	g.rewatch(source)
	g.settings.LastImage = source
	SaveSettings(g.settings)
}

func (g *Game) rewatch(source string) {
	if g.watcher != nil {
		g.watcher.Close()
		g.watcher = nil
		g.watchedPath = ""
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "data:") {
		return
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return
	}
	w, err := watch.NewWatcher(filepath.Dir(abs))
	if err != nil {
		log.Printf("hot reload disabled for %s: %v", source, err)
		return
	}
	g.watcher = w
	g.watchedPath = abs
}

func (g *Game) startResetTween() {
	s := g.viewer.View()
	// Unwind longitude to the nearest equivalent of 0 so the animation
	// takes the short way around.
	lonTarget := s.Lon - viewer.WrapDegrees(s.Lon)
	g.lonTween = gween.New(float32(s.Lon), float32(lonTarget), 0.4, ease.OutQuad)
	g.latTween = gween.New(float32(s.Lat), 0, 0.4, ease.OutQuad)
	g.fovTween = gween.New(float32(s.FOV), float32(viewer.DefaultFOV), 0.4, ease.OutQuad)
}

func (g *Game) cancelResetTween() {
	g.lonTween = nil
	g.latTween = nil
	g.fovTween = nil
}

func (g *Game) toggleAutoRotate() {
	g.autoRotate = !g.autoRotate
	g.settings.AutoRotate = g.autoRotate
	SaveSettings(g.settings)
}

func (g *Game) toggleHUD() {
	g.hudVisible = !g.hudVisible
	g.settings.HUDVisible = g.hudVisible
	SaveSettings(g.settings)
}

func (g *Game) copyView() {
	if !g.clipboardOK {
		return
	}
	s := g.viewer.View()
	clipboard.Write(clipboard.FmtText, fmt.Appendf(nil, "lon=%.2f lat=%.2f fov=%.2f", s.Lon, s.Lat, s.FOV))
}

func (g *Game) pasteSource() {
	if !g.clipboardOK {
		return
	}
	if b := clipboard.Read(clipboard.FmtText); len(b) > 0 {
		g.loadSource(string(b))
	}
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.elapsed += dt

	g.input.Update()

	if g.input.Quit {
		return ebiten.Termination
	}
	if g.input.ToggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if g.input.ResetView {
		g.startResetTween()
	}
	if g.input.ToggleAutoRotate {
		g.toggleAutoRotate()
	}
	if g.input.ToggleHUD {
		g.toggleHUD()
	}
	if g.input.CopyView {
		g.copyView()
	}
	if g.input.PasteSource {
		g.pasteSource()
	}

	g.ui.Update()

	// Pointer events over the toolbar belong to the UI.
	overUI := g.input.CursorY < toolbarHeight
	if g.input.DragJustPressed && !overUI {
		g.cancelResetTween()
		g.viewer.PointerDown(g.input.CursorX, g.input.CursorY)
	}
	if g.viewer.Dragging() {
		if g.input.DragHeld {
			g.viewer.PointerMove(g.input.CursorX, g.input.CursorY)
		} else {
			g.viewer.PointerUp()
		}
	}
	if g.input.WheelY != 0 && !overUI {
		g.viewer.Wheel(-g.input.WheelY * wheelNotchDelta)
	}

	if g.lonTween != nil && !g.viewer.Dragging() {
		lon, _ := g.lonTween.Update(float32(dt))
		lat, _ := g.latTween.Update(float32(dt))
		fov, done := g.fovTween.Update(float32(dt))
		g.viewer.SetView(viewer.ViewState{Lon: float64(lon), Lat: float64(lat), FOV: float64(fov)})
		if done {
			g.cancelResetTween()
		}
	}

	if g.tourActive && !g.viewer.Dragging() {
		s := g.viewer.View()
		lon, lat, fov, err := g.tour.Step(g.elapsed, s.Lon, s.Lat, s.FOV)
		if err != nil {
			log.Printf("tour stopped: %v", err)
			g.tourActive = false
		} else {
			g.viewer.SetView(viewer.ViewState{Lon: lon, Lat: lat, FOV: fov})
		}
	} else if g.autoRotate && !g.viewer.Dragging() && g.lonTween == nil {
		s := g.viewer.View()
		s.Lon += g.cfg.AutoRotate.DegreesPerSecond * dt
		g.viewer.SetView(s)
	}

	g.drainWatcher()

	if g.width != g.resizedW || g.height != g.resizedH {
		g.viewer.Resize(g.width, g.height)
		g.resizedW, g.resizedH = g.width, g.height
	}

	g.viewer.Step()

	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if path == g.watchedPath {
				g.viewer.LoadImage(g.watchedPath)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.viewer.Draw(screen)

	if !g.viewer.HasTexture() {
		msg := "No panorama loaded. Enter an image path or URL above."
		if loading := g.viewer.Loading(); loading != "" {
			msg = fmt.Sprintf("Loading %s...", loading)
		}
		ebitenutil.DebugPrintAt(screen, msg, 8, toolbarHeight+8)
	} else if g.hudVisible || g.debug {
		s := g.viewer.View()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"%s\nlon: %7.2f  lat: %6.2f  fov: %5.2f\nFPS: %.1f",
			g.viewer.Source(), s.Lon, s.Lat, s.FOV, ebiten.ActualFPS()),
			8, toolbarHeight+8)
	}

	g.ui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// 1:1 pixel mapping; the viewer reacts to the new size in Update.
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close releases the viewer and stops background goroutines.
func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
		g.watcher = nil
	}
	g.viewer.Close()
}
