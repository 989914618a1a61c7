package main

import (
	"context"
	"flag"
	"math"
	"time"

	"battleroyale/game"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	ticks := flag.Int("ticks", 100000, "Number of ticks to simulate")
	seed := flag.Int64("seed", 1, "Simulation RNG seed (0 = random)")
	wander := flag.Bool("wander", true, "Feed random movement input to the player")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	config, err := game.LoadConfig(*configPath)
	log := game.NewLogger(config.Debug || *debug)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	config.Seed = *seed
	if config.ScreenWidth == 0 || config.ScreenHeight == 0 {
		defaults := game.DefaultConfig()
		config.ScreenWidth, config.ScreenHeight = defaults.ScreenWidth, defaults.ScreenHeight
	}

	canvas := game.NewNullCanvas(config.ScreenWidth, config.ScreenHeight)
	g := game.NewGameWithCanvas(config, log, canvas, game.AssetFS(config.AssetDir))
	defer g.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := g.AwaitAssets(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load assets")
	}
	g.Start()

	keys := []string{"w", "a", "s", "d"}
	started := time.Now()
	for i := 0; i < *ticks; i++ {
		// Change direction about once a second of game time
		if *wander && i%config.TPS == 0 {
			in := g.Input()
			for _, k := range keys {
				in.KeyUp(k)
			}
			in.KeyDown(keys[(i/config.TPS)%len(keys)])
		}
		g.Tick()
	}
	elapsed := time.Since(started)

	w := g.World()
	expected := float64(*ticks) * game.EnemySpawnChance
	stddev := math.Sqrt(expected * (1 - game.EnemySpawnChance))
	log.Info().
		Stringer("session", g.Session()).
		Uint64("ticks", g.Ticks()).
		Int("enemies", len(w.Enemies)).
		Float64("expected_enemies", expected).
		Float64("z_score", (float64(len(w.Enemies))-expected)/stddev).
		Float64("player_x", w.Player.X).
		Float64("player_y", w.Player.Y).
		Dur("elapsed", elapsed).
		Float64("ticks_per_second", float64(*ticks)/elapsed.Seconds()).
		Msg("simulation finished")
}
