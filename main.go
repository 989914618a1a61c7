package main

import (
	"flag"

	"battleroyale/game"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	seed := flag.Int64("seed", 0, "Simulation RNG seed (0 = random)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	config, err := game.LoadConfig(*configPath)
	log := game.NewLogger(config.Debug || *debug)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	// The drawing surface is sized once; later window resizes only scale it
	if config.ScreenWidth == 0 || config.ScreenHeight == 0 {
		config.ScreenWidth, config.ScreenHeight = ebiten.ScreenSizeInFullscreen()
	}

	g := game.NewGame(config, log)
	defer g.Close()

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Battle Royale")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(config.TPS)

	log.Info().Int("width", config.ScreenWidth).Int("height", config.ScreenHeight).Int("tps", config.TPS).Msg("starting game loop")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("game loop failed")
	}
}
