package game

import (
	"context"
	"io/fs"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// assetResult carries the outcome of the background asset load
type assetResult struct {
	assets *Assets
	err    error
}

// Game owns the simulation context, the renderer and the screen state
// machine, and drives the fixed-rate tick.
type Game struct {
	config Config
	log    zerolog.Logger

	screen   *Screen
	world    *World
	renderer *Renderer
	rng      *rand.Rand

	// canvas is the drawing surface the renderer paints on. surface is the
	// same canvas when it is GPU backed, nil when running headless.
	canvas  Canvas
	surface *EbitenCanvas

	input    *InputAdapter
	poller   *InputPoller
	overlay  *Overlay
	watchdog *TickWatchdog

	assets     *Assets
	assetsDone chan assetResult
	cancelLoad context.CancelFunc

	session uuid.UUID
	ticks   uint64
}

// NewGame creates a game drawing onto an offscreen ebiten surface and starts
// loading the sprites in the background.
func NewGame(config Config, log zerolog.Logger) *Game {
	surface := NewEbitenCanvas(config.ScreenWidth, config.ScreenHeight)
	g := NewGameWithCanvas(config, log, surface, AssetFS(config.AssetDir))
	g.surface = surface
	g.poller = NewInputPoller()
	g.overlay = NewOverlay()

	var profiler *Profiler
	if config.ProfileSlowTicks {
		profiler = NewProfiler(config.ProfilesDir, log)
	}
	g.watchdog = NewTickWatchdog(config.TPS, profiler, log)
	return g
}

// NewGameWithCanvas creates a game drawing onto canvas with sprites read
// from fsys. The simulation is sized to the canvas.
func NewGameWithCanvas(config Config, log zerolog.Logger, canvas Canvas, fsys fs.FS) *Game {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	width, height := canvas.Size()
	world := NewWorld(float64(width), float64(height), rng)
	screen := NewScreen()

	g := &Game{
		config:     config,
		log:        log,
		screen:     screen,
		world:      world,
		rng:        rng,
		canvas:     canvas,
		input:      NewInputAdapter(world, screen),
		assetsDone: make(chan assetResult, 1),
	}
	g.log.Debug().Int64("seed", seed).Int("width", width).Int("height", height).Msg("game created")
	g.loadAssets(fsys)
	return g
}

// loadAssets starts the sprite load. The result is applied on the loop
// goroutine by pollAssets or AwaitAssets.
func (g *Game) loadAssets(fsys fs.FS) {
	ctx, cancel := context.WithCancel(context.Background())
	g.cancelLoad = cancel
	paths := g.config.AssetPaths()
	go func() {
		assets, err := LoadAssets(ctx, fsys, paths)
		g.assetsDone <- assetResult{assets: assets, err: err}
	}()
}

// pollAssets applies a finished asset load without blocking
func (g *Game) pollAssets() {
	if g.assetsDone == nil {
		return
	}
	select {
	case res := <-g.assetsDone:
		g.applyAssets(res)
	default:
	}
}

// AwaitAssets blocks until the asset load finishes and applies the result.
// It returns the load error, if any.
func (g *Game) AwaitAssets(ctx context.Context) error {
	if g.assetsDone == nil {
		return nil
	}
	select {
	case res := <-g.assetsDone:
		g.applyAssets(res)
		return res.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Game) applyAssets(res assetResult) {
	g.assetsDone = nil
	g.cancelLoad()
	if res.err != nil {
		// No retry: the game stays on the loading screen
		g.log.Error().Err(res.err).Msg("failed to load game assets")
		return
	}
	g.assets = res.assets
	g.renderer = NewRenderer(g.canvas, g.assets, g.rng)
	if err := g.screen.Transition(ScreenMenu); err != nil {
		g.log.Error().Err(err).Msg("assets loaded in unexpected state")
		return
	}
	g.log.Info().Msg("assets loaded")
}

// Close cancels an in-flight asset load
func (g *Game) Close() {
	if g.cancelLoad != nil {
		g.cancelLoad()
	}
}

// State returns the current screen state
func (g *Game) State() ScreenState {
	return g.screen.State()
}

// World returns the simulation state
func (g *Game) World() *World {
	return g.world
}

// Renderer returns the scene renderer, nil until assets are loaded
func (g *Game) Renderer() *Renderer {
	return g.renderer
}

// Input returns the input adapter that feeds the player's intent
func (g *Game) Input() *InputAdapter {
	return g.input
}

// Session returns the id of the current play session
func (g *Game) Session() uuid.UUID {
	return g.session
}

// Ticks returns the number of ticks run in the current session
func (g *Game) Ticks() uint64 {
	return g.ticks
}

// Start leaves the menu and begins a new session
func (g *Game) Start() {
	if g.screen.State() != ScreenMenu {
		g.log.Warn().Stringer("state", g.screen.State()).Msg("start ignored")
		return
	}
	if err := g.screen.Transition(ScreenPlaying); err != nil {
		g.log.Warn().Err(err).Msg("start ignored")
		return
	}
	g.beginSession()
}

// Restart leaves the game-over screen and begins a new session
func (g *Game) Restart() {
	if g.screen.State() != ScreenGameOver {
		g.log.Warn().Stringer("state", g.screen.State()).Msg("restart ignored")
		return
	}
	if err := g.screen.Transition(ScreenPlaying); err != nil {
		g.log.Warn().Err(err).Msg("restart ignored")
		return
	}
	g.beginSession()
}

// beginSession resets the simulation for a fresh round
func (g *Game) beginSession() {
	g.world.Reset()
	if g.renderer != nil {
		g.renderer.Particles().Clear()
	}
	if g.watchdog != nil {
		g.watchdog.Reset()
	}
	g.ticks = 0
	g.session = uuid.New()
	g.log.Info().Stringer("session", g.session).Msg("session started")
}

// Tick runs one simulation step and paints the frame. It does nothing
// outside the playing state.
func (g *Game) Tick() {
	if g.screen.State() != ScreenPlaying || g.renderer == nil {
		return
	}
	w := g.world
	r := g.renderer

	// Enemies home toward where the player stood when the tick began
	targetX, targetY := w.Player.X, w.Player.Y

	r.Clear()

	w.MovePlayer()
	r.DrawPlayer(w.Player.X, w.Player.Y, w.Player.Rotation)

	w.MoveBullets(func(b *Bullet) {
		r.DrawBullet(b.X, b.Y, b.Rotation)
	})

	w.MoveEnemies(targetX, targetY, func(e *Enemy) {
		r.DrawEnemy(e.X, e.Y, e.Health)
	})

	if w.MaybeSpawnEnemy() {
		g.log.Debug().Int("enemies", len(w.Enemies)).Msg("enemy spawned")
	}

	r.UpdateParticles()

	g.ticks++
	if g.watchdog != nil {
		g.watchdog.Tick()
	}
}

// lifecycleActionPressed reports a start/restart request from the chrome
func lifecycleActionPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// Update is called by ebiten at the fixed TPS
func (g *Game) Update() error {
	g.pollAssets()

	switch g.screen.State() {
	case ScreenMenu:
		if lifecycleActionPressed() {
			g.Start()
		}
	case ScreenGameOver:
		if lifecycleActionPressed() || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.Restart()
		}
	case ScreenPlaying:
		if g.poller != nil {
			g.poller.Poll(g.input)
		}
		g.Tick()
	}
	return nil
}

// Draw presents the last painted frame and the overlay for the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	state := g.screen.State()
	if g.surface != nil && (state == ScreenPlaying || state == ScreenGameOver) {
		screen.DrawImage(g.surface.Image(), nil)
	}
	if g.overlay != nil {
		g.overlay.Draw(screen, state, &g.world.Player)
	}
}

// Layout returns the fixed surface size; window resizes only scale it
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvas.Size()
}
