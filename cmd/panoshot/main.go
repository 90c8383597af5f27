// panoshot renders a single view of an equirectangular panorama to a PNG
// without opening a window. Handy for generating thumbnails and for checking
// how a panorama looks at a given orientation from scripts.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/milk9111/panoview/viewer"
)

func main() {
	var (
		source = flag.String("image", "", "panorama to render: file path, URL, or data URI")
		out    = flag.String("out", "snapshot.png", "output PNG path")
		lon    = flag.Float64("lon", 0, "longitude in degrees")
		lat    = flag.Float64("lat", 0, "latitude in degrees")
		fov    = flag.Float64("fov", viewer.DefaultFOV, "vertical field of view in degrees")
		width  = flag.Int("width", 1280, "output width in pixels")
		height = flag.Int("height", 720, "output height in pixels")
	)
	flag.Parse()

	if *source == "" && flag.NArg() > 0 {
		*source = flag.Arg(0)
	}
	if *source == "" {
		log.Fatal("no panorama given, use -image or pass it as an argument")
	}
	if *width <= 0 || *height <= 0 {
		log.Fatalf("bad output size %dx%d", *width, *height)
	}

	img, err := viewer.DecodeSource(*source)
	if err != nil {
		log.Fatal(err)
	}
	pano := viewer.PrepareTexture(img, viewer.DefaultMaxTextureWidth)

	cam := viewer.Camera{
		FOV:    clampFOV(*fov),
		Aspect: float64(*width) / float64(*height),
		Radius: viewer.DefaultRadius,
	}
	frame := image.NewRGBA(image.Rect(0, 0, *width, *height))
	viewer.RenderSoftware(frame, pano, cam, *lon, *lat)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%dx%d, lon=%g lat=%g fov=%g)", *out, *width, *height, *lon, *lat, cam.FOV)
}

func clampFOV(fov float64) float64 {
	if fov < viewer.DefaultMinFOV {
		return viewer.DefaultMinFOV
	}
	if fov > viewer.DefaultMaxFOV {
		return viewer.DefaultMaxFOV
	}
	return fov
}
