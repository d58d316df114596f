// jungle runs a top-down shooter level in the terminal.
//
//	go run ./cmd/jungle [-config config/engine.toml] [-profile cpu|mem]
//
// Arrow keys steer, Space fires, d toggles the debug view and Escape quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/config"
	"github.com/jungle2d/engine/internal/game"
	"github.com/jungle2d/engine/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the engine config (default $JUNGLE_CONFIG or "+config.DefaultPath+")")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	// 1. Load config
	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger; the terminal is taken by the screen.
	log, journal, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Open the screen
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	// 4. Build the level
	g := game.New(cfg, screen, log, game.WithJournal(journal))
	defer g.Close()
	if err := g.Setup(); err != nil {
		return err
	}

	// 5. Run until Escape or a signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("game loop started",
		zap.Int("fps", cfg.Game.FPS),
		zap.String("level", cfg.Game.Level))
	return g.Run(ctx)
}
