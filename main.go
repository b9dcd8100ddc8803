package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"quadbounce/game"
)

func main() {
	config := game.DefaultConfig()
	config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	g, err := game.NewGame(config, game.NewKeyboardInput())
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("quadbounce")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
