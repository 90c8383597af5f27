package viewer

import (
	"image"
	"image/color"
	"math"
)

// RenderSoftware draws the panorama into dst on the CPU using the same
// projection as the Kage shader: one view ray per pixel, mapped to
// equirectangular coordinates and sampled bilinearly with longitude wrap.
// It is the fallback when shaders are unavailable and the reference the
// tests pin the projection math against.
func RenderSoftware(dst *image.RGBA, pano *image.RGBA, cam Camera, lon, lat float64) {
	if dst == nil || pano == nil {
		return
	}
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	right, up, forward := cam.Basis(lon, lat)
	t := math.Tan(radians(cam.FOV) / 2)

	for y := 0; y < h; y++ {
		ndcY := 1 - 2*(float64(y)+0.5)/float64(h)
		for x := 0; x < w; x++ {
			ndcX := 2*(float64(x)+0.5)/float64(w) - 1
			d := forward.
				Add(right.Scale(ndcX * cam.Aspect * t)).
				Add(up.Scale(ndcY * t)).
				Normalize()
			u, v := EquirectUV(d)
			dst.SetRGBA(b.Min.X+x, b.Min.Y+y, sampleBilinear(pano, u, v))
		}
	}
}

// sampleBilinear samples the panorama at texture coordinates (u, v) with
// linear filtering. u wraps; v clamps at the poles.
func sampleBilinear(img *image.RGBA, u, v float64) color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	wx := fx - float64(x0)
	wy := fy - float64(y0)

	c00 := texelWrapped(img, x0, y0)
	c10 := texelWrapped(img, x0+1, y0)
	c01 := texelWrapped(img, x0, y0+1)
	c11 := texelWrapped(img, x0+1, y0+1)

	lerp2 := func(a, b, c, d uint8) uint8 {
		top := float64(a) + (float64(b)-float64(a))*wx
		bot := float64(c) + (float64(d)-float64(c))*wx
		return uint8(top + (bot-top)*wy + 0.5)
	}
	return color.RGBA{
		R: lerp2(c00.R, c10.R, c01.R, c11.R),
		G: lerp2(c00.G, c10.G, c01.G, c11.G),
		B: lerp2(c00.B, c10.B, c01.B, c11.B),
		A: lerp2(c00.A, c10.A, c01.A, c11.A),
	}
}

func texelWrapped(img *image.RGBA, x, y int) color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	x = ((x % w) + w) % w
	if y < 0 {
		y = 0
	} else if y >= h {
		y = h - 1
	}
	return img.RGBAAt(b.Min.X+x, b.Min.Y+y)
}
