package viewer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultMaxTextureWidth bounds the panorama texture. Panoramas come out of
// stitchers at 8K and wider, which costs GPU memory and sampling bandwidth
// for no visible gain at typical window sizes.
const DefaultMaxTextureWidth = 4096

// DecodeSource decodes a panorama from a file path, an http(s) URL, or a
// base64 data URI.
func DecodeSource(source string) (image.Image, error) {
	switch {
	case strings.HasPrefix(source, "data:"):
		return decodeDataURI(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("viewer: fetch %s: %w", source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("viewer: fetch %s: %s", source, resp.Status)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("viewer: decode %s: %w", source, err)
		}
		return img, nil
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("viewer: open %s: %w", source, err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("viewer: decode %s: %w", source, err)
		}
		return img, nil
	}
}

func decodeDataURI(uri string) (image.Image, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("viewer: malformed data URI")
	}
	if !strings.HasSuffix(uri[:comma], ";base64") {
		return nil, fmt.Errorf("viewer: data URI is not base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("viewer: decode data URI: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("viewer: decode data URI image: %w", err)
	}
	return img, nil
}

// PrepareTexture converts a decoded image into the RGBA pixels the renderer
// samples. Grayscale and paletted inputs become RGBA here, and images wider
// than maxWidth are downscaled preserving aspect ratio. maxWidth <= 0
// disables the downscale.
func PrepareTexture(img image.Image, maxWidth int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxWidth > 0 && w > maxWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, h*maxWidth/w))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, xdraw.Over, nil)
		return scaled
	}

	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
