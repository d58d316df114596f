// Package game wires the registry, event bus, gameplay systems and screen
// together and runs the frame loop.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/asset"
	"github.com/jungle2d/engine/internal/config"
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/core/event"
	coresys "github.com/jungle2d/engine/internal/core/system"
	"github.com/jungle2d/engine/internal/data"
	"github.com/jungle2d/engine/internal/factory"
	"github.com/jungle2d/engine/internal/input"
	"github.com/jungle2d/engine/internal/logging"
	"github.com/jungle2d/engine/internal/render"
	"github.com/jungle2d/engine/internal/scripting"
	"github.com/jungle2d/engine/internal/system"
)

// inputBuffer is the number of terminal events held between frames.
const inputBuffer = 64

// Game owns one running level.
type Game struct {
	cfg     *config.Config
	screen  tcell.Screen
	canvas  *render.Screen
	log     *zap.Logger
	journal *logging.Journal
	clock   Clock
	source  system.EventSource

	reg       *ecs.Registry
	bus       *event.Bus
	assets    *asset.Store
	scripts   *scripting.Engine
	runner    *coresys.Runner
	frameSync *system.FrameSyncSystem

	camera    render.Camera
	cameraSys *system.CameraMovementSystem
	colliders *system.RenderColliderSystem

	start   time.Time
	last    time.Time
	frames  uint64
	running bool
	debug   bool
}

// Option customises a Game.
type Option func(*Game)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithJournal shows the journal's latest entries in the debug overlay.
func WithJournal(j *logging.Journal) Option {
	return func(g *Game) { g.journal = j }
}

// WithEventSource replaces the screen's event queue as the input source.
func WithEventSource(src system.EventSource) Option {
	return func(g *Game) { g.source = src }
}

// New creates a game drawing on screen, which must already be initialised.
func New(cfg *config.Config, screen tcell.Screen, log *zap.Logger, opts ...Option) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		cfg:    cfg,
		screen: screen,
		canvas: render.NewScreen(screen),
		log:    log,
		clock:  realClock{},
		reg:    ecs.NewRegistry(ecs.WithLogger(log.Named("ecs"))),
		bus:    event.NewBus(log.Named("bus")),
		assets: asset.NewStore(log),
		runner: coresys.NewRunner(),
		debug:  cfg.Game.Debug,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.source == nil {
		g.source = input.NewSource(screen, inputBuffer, log)
	}
	return g
}

// Registry exposes the entity registry.
func (g *Game) Registry() *ecs.Registry { return g.reg }

// Camera returns the current view.
func (g *Game) Camera() render.Camera { return g.camera }

// Running reports whether the loop should continue.
func (g *Game) Running() bool { return g.running }

// Debug reports whether the debug view is on.
func (g *Game) Debug() bool { return g.debug }

// Setup creates the systems, loads the scripts and the level, and admits
// the level's entities. Systems are added before any entity exists so each
// one sees the whole level.
func (g *Game) Setup() error {
	scripts, err := scripting.NewEngine(g.cfg.Game.ScriptsDir, g.log.Named("lua"))
	if err != nil {
		return fmt.Errorf("scripts: %w", err)
	}
	g.scripts = scripts

	if err := g.addSystems(); err != nil {
		return fmt.Errorf("systems: %w", err)
	}
	if err := g.loadLevel(g.cfg.Game.Level); err != nil {
		return err
	}

	g.start = g.clock.Now()
	g.last = g.start
	g.running = true
	g.frameSync.Update(coresys.Frame{})
	g.log.Info("game ready",
		zap.String("title", g.cfg.Window.Title),
		zap.Int("systems", g.runner.Len()),
		zap.Int("entities", g.reg.NumEntities()),
		zap.Bool("debug", g.debug))
	return nil
}

func (g *Game) addSystems() error {
	movement, err := system.NewMovementSystem(g.reg)
	if err != nil {
		return err
	}
	animation, err := system.NewAnimationSystem(g.reg)
	if err != nil {
		return err
	}
	collision, err := system.NewCollisionSystem(g.reg, g.bus, g.log)
	if err != nil {
		return err
	}
	damage, err := system.NewDamageSystem(g.reg, g.scripts, g.log)
	if err != nil {
		return err
	}
	keyboard, err := system.NewKeyboardControlSystem(g.reg)
	if err != nil {
		return err
	}
	if g.cameraSys, err = system.NewCameraMovementSystem(g.reg, &g.camera); err != nil {
		return err
	}
	emit, err := system.NewProjectileEmitSystem(g.reg, g.log)
	if err != nil {
		return err
	}
	lifecycle, err := system.NewProjectileLifecycleSystem(g.reg, g.log)
	if err != nil {
		return err
	}
	sprites, err := system.NewRenderSystem(g.reg, g.canvas, g.assets, &g.camera, g.log)
	if err != nil {
		return err
	}
	bars, err := system.NewRenderHealthBarSystem(g.reg, g.canvas, &g.camera)
	if err != nil {
		return err
	}
	text, err := system.NewRenderTextSystem(g.reg, g.canvas, g.assets, &g.camera)
	if err != nil {
		return err
	}
	if g.colliders, err = system.NewRenderColliderSystem(g.reg, g.canvas, &g.camera); err != nil {
		return err
	}
	g.colliders.SetVisible(g.debug)

	for _, s := range []ecs.System{
		movement, animation, collision, damage, keyboard, g.cameraSys,
		emit, lifecycle, sprites, bars, text, g.colliders,
	} {
		if err := ecs.AddSystem(g.reg, s); err != nil {
			return err
		}
	}

	// Damage and keyboard control only react to events; the rest also run
	// every frame in phase order.
	g.frameSync = system.NewFrameSyncSystem(g.reg, g.bus, damage, keyboard, emit)
	for _, s := range []coresys.System{
		system.NewInputSystem(g.source, g.bus, g, g.log),
		g.frameSync,
		movement, animation, collision,
		emit, lifecycle, g.cameraSys,
		sprites, bars, text, g.colliders,
	} {
		g.runner.Register(s)
	}
	return nil
}

func (g *Game) loadLevel(path string) error {
	lvl, err := data.LoadLevel(path)
	if err != nil {
		return fmt.Errorf("level: %w", err)
	}
	tiles, err := lvl.LoadTileMap()
	if err != nil {
		return fmt.Errorf("tilemap: %w", err)
	}
	factory.LoadAssets(g.assets, lvl)
	spawned, err := factory.SpawnLevel(g.reg, lvl, tiles, 0, g.log)
	if err != nil {
		return fmt.Errorf("spawn %s: %w", lvl.Name, err)
	}
	g.cameraSys.SetMapSize(spawned.MapWidth, spawned.MapHeight)
	g.fitCamera()
	return nil
}

// fitCamera sizes the view to the window, or the terminal when the window
// size is unset or larger than the terminal.
func (g *Game) fitCamera() {
	w, h := g.canvas.Size()
	if cw := g.cfg.Window.Width; cw > 0 && cw < w {
		w = cw
	}
	if ch := g.cfg.Window.Height; ch > 0 && ch < h {
		h = ch
	}
	g.camera.W, g.camera.H = float64(w), float64(h)
}

// Frame runs one iteration of the loop: input, update, then render. During
// the first skip_ticks frames time does not advance.
func (g *Game) Frame() {
	now := g.clock.Now()
	g.frames++
	f := coresys.Frame{
		Number: g.frames,
		Now:    now.Sub(g.start),
		Delta:  now.Sub(g.last),
	}
	g.last = now
	if g.frames <= uint64(g.cfg.Game.SkipTicks) {
		f.Delta = 0
	}

	g.runner.TickRange(coresys.PhaseInput, coresys.PhasePostUpdate, f)
	g.canvas.Clear()
	g.runner.TickRange(coresys.PhaseRender, coresys.PhaseCleanup, f)
	if g.debug {
		g.drawOverlay(f)
	}
	g.canvas.Show()
}

// Run loops until Escape, ctx cancellation, or Quit. Frames are capped at
// the configured rate.
func (g *Game) Run(ctx context.Context) error {
	if !g.running {
		return fmt.Errorf("run before setup")
	}
	if src, ok := g.source.(*input.Source); ok {
		src.Start(ctx)
	}
	budget := g.cfg.Game.FrameDuration()
	for g.running {
		if err := ctx.Err(); err != nil {
			g.log.Info("game stopped", zap.Error(err), zap.Uint64("frames", g.frames))
			return nil
		}
		begin := g.clock.Now()
		g.Frame()
		if wait := budget - g.clock.Now().Sub(begin); wait > 0 {
			g.clock.Sleep(wait)
		}
	}
	g.log.Info("game over", zap.Uint64("frames", g.frames))
	return nil
}

// Close releases the script engine and the level's state.
func (g *Game) Close() {
	if g.scripts != nil {
		g.scripts.Close()
	}
	g.bus.Reset()
	g.reg.Reset()
	g.assets.Clear()
}

// Quit stops the loop after the current frame.
func (g *Game) Quit() {
	g.running = false
}

// ToggleDebug flips the collider outlines and the log overlay.
func (g *Game) ToggleDebug() {
	g.debug = !g.debug
	g.colliders.SetVisible(g.debug)
	g.log.Debug("debug view", zap.Bool("on", g.debug))
}

// Resize redraws the terminal and refits the camera.
func (g *Game) Resize() {
	g.screen.Sync()
	g.fitCamera()
}
