package viewer

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestPrepareTextureConvertsGrayscale(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 2))
	gray.SetGray(1, 1, color.Gray{Y: 200})

	rgba := PrepareTexture(gray, DefaultMaxTextureWidth)

	if got := rgba.Bounds(); got.Dx() != 4 || got.Dy() != 2 {
		t.Fatalf("unexpected bounds %v", got)
	}
	want := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	if got := rgba.RGBAAt(1, 1); got != want {
		t.Fatalf("gray pixel converted to %v, want %v", got, want)
	}
	if got := rgba.RGBAAt(0, 0); (got != color.RGBA{A: 255}) {
		t.Fatalf("black gray pixel converted to %v", got)
	}
}

func TestPrepareTextureDownscalesWideImages(t *testing.T) {
	cases := []struct {
		name           string
		w, h, maxWidth int
		wantW, wantH   int
	}{
		{"wider_than_max", 200, 100, 64, 64, 32},
		{"at_max", 64, 32, 64, 64, 32},
		{"below_max", 48, 24, 64, 48, 24},
		{"disabled", 200, 100, 0, 200, 100},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
			got := PrepareTexture(src, c.maxWidth)
			if got.Bounds().Dx() != c.wantW || got.Bounds().Dy() != c.wantH {
				t.Fatalf("PrepareTexture(%dx%d, max %d) = %v, want %dx%d",
					c.w, c.h, c.maxWidth, got.Bounds(), c.wantW, c.wantH)
			}
		})
	}
}

func TestPrepareTextureReusesRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	if got := PrepareTexture(src, DefaultMaxTextureWidth); got != src {
		t.Fatal("zero-origin RGBA input should be returned as is")
	}
}

func TestDecodeSourceDataURI(t *testing.T) {
	src := solidImage(color.RGBA{R: 10, G: 20, B: 30, A: 255}, 3, 2)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	img, err := DecodeSource(uri)
	if err != nil {
		t.Fatalf("DecodeSource: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 3 || got.Dy() != 2 {
		t.Fatalf("unexpected bounds %v", got)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("unexpected pixel (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

func TestDecodeSourceErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"missing_file", filepath.Join(t.TempDir(), "nope.png")},
		{"data_uri_no_comma", "data:image/png;base64"},
		{"data_uri_not_base64", "data:image/png,rawbytes"},
		{"data_uri_bad_payload", "data:image/png;base64,%%%"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := DecodeSource(c.source); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
