package assets

import (
	"embed"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/*.kage
var shaderFS embed.FS

// PanoramaShader projects the equirectangular texture through the current
// camera, one view ray per pixel.
var PanoramaShader *ebiten.Shader

// LoadShaders compiles and caches all shaders.
func LoadShaders() error {
	src, err := shaderFS.ReadFile("shaders/panorama.kage")
	if err != nil {
		return err
	}
	PanoramaShader, err = ebiten.NewShader(src)
	if err != nil {
		return err
	}

	return nil
}
