package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/panoview/config"
)

func main() {
	imageFlag := flag.String("image", "", "panorama to load at startup (file path, URL, or data URI). Can also be given as a positional argument.")
	configFlag := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	software := flag.Bool("software", false, "render on the CPU instead of the GPU shader")
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		c, err := config.Load(*configFlag)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = c
	}
	if *software {
		cfg.Viewer.Software = true
	}

	source := *imageFlag
	if source == "" && flag.NArg() > 0 {
		source = flag.Arg(0)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg, source, *debug)
	if err != nil {
		log.Fatalf("failed to initialize viewer: %v", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
