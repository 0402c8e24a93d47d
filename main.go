package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	sceneName := flag.String("scene", "sandbox.yaml", "scene name in scenes/ (disk first, then embedded)")
	debug := flag.Bool("debug", false, "draw bounds and print step timing")
	watch := flag.Bool("watch", true, "reload the scene when files in scenes/ or levels/ change")
	zoom := flag.Float64("zoom", 2, "camera zoom")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("rigid2d sandbox")

	game, err := NewGame(*sceneName, *debug, *zoom)
	if err != nil {
		log.Fatal(err)
	}
	if *watch {
		game.Watch("scenes", "scenes/scripts", "levels")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
