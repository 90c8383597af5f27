package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the polled pointer and key state for one frame. Polling is
// separated from handling so Update can decide what an event means; a press
// over the toolbar belongs to the UI, not the viewer.
type Input struct {
	// CursorX/Y is the pointer position in screen pixels.
	CursorX, CursorY float64
	// WheelY is the vertical wheel movement this frame, in notches.
	WheelY float64
	// DragJustPressed is true on the frame the left button went down.
	DragJustPressed bool
	// DragHeld is true while the left button is held.
	DragHeld bool

	Quit             bool
	ToggleFullscreen bool
	ResetView        bool
	ToggleAutoRotate bool
	ToggleHUD        bool
	CopyView         bool
	PasteSource      bool
}

// Update polls the mouse and keyboard.
func (i *Input) Update() {
	mx, my := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()

	i.CursorX = float64(mx)
	i.CursorY = float64(my)
	i.WheelY = wheelY
	i.DragJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.DragHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	i.Quit = inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.ToggleFullscreen = inpututil.IsKeyJustPressed(ebiten.KeyF11)
	i.ResetView = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.ToggleAutoRotate = inpututil.IsKeyJustPressed(ebiten.KeyA)
	i.ToggleHUD = inpututil.IsKeyJustPressed(ebiten.KeyH)
	i.CopyView = inpututil.IsKeyJustPressed(ebiten.KeyC)
	i.PasteSource = ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyV)
}
