package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// toolbarHeight is the screen strip reserved for the toolbar; pointer events
// inside it go to the UI instead of the viewer.
const toolbarHeight = 40

// NewViewerUI builds the toolbar overlay: view controls on the left and a
// panorama source input on the right. This creates widgets from colored
// nine-slices and the built-in basic font, so no font assets need loading.
func NewViewerUI(g *Game) (*ebitenui.UI, *widget.TextInput) {
	barImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	inputImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	newButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	sourceInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 26),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     inputImg,
			Disabled: inputImg,
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			Caret: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		}),
		widget.TextInputOpts.Face(&face),
		widget.TextInputOpts.Placeholder("image path or URL"),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			g.loadSource(args.InputText)
		}),
	)

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(barImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, toolbarHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
			}),
		),
	)
	bar.AddChild(newButton("Reset", g.startResetTween))
	bar.AddChild(newButton("Auto-rotate", g.toggleAutoRotate))
	bar.AddChild(newButton("HUD", g.toggleHUD))
	bar.AddChild(sourceInput)
	bar.AddChild(newButton("Load", func() {
		g.loadSource(sourceInput.GetText())
	}))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)

	return &ebitenui.UI{Container: root}, sourceInput
}
