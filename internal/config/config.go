package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// DefaultPath is used when neither -config nor JUNGLE_CONFIG is given.
const DefaultPath = "config/engine.toml"

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`  // cells; 0 uses the terminal size
	Height int    `toml:"height"` // cells; 0 uses the terminal size
	Title  string `toml:"title"`
}

type GameConfig struct {
	FPS        int    `toml:"fps"        env:"JUNGLE_FPS"`
	Level      string `toml:"level"      env:"JUNGLE_LEVEL"`
	ScriptsDir string `toml:"scripts_dir"`
	Debug      bool   `toml:"debug"      env:"JUNGLE_DEBUG"`
	SkipTicks  int    `toml:"skip_ticks"` // frames ignored at startup
}

// FrameDuration is the minimum time between two frames.
func (g GameConfig) FrameDuration() time.Duration {
	if g.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(g.FPS)
}

type LoggingConfig struct {
	Level       string `toml:"level"  env:"JUNGLE_LOG_LEVEL"`
	Format      string `toml:"format"` // "json" or "console"
	File        string `toml:"file"`   // empty logs to stderr
	JournalSize int    `toml:"journal_size"`
}

// Path resolves the config file location: the flag value wins, then
// JUNGLE_CONFIG, then DefaultPath.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv("JUNGLE_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. A missing file is not an error: the defaults and
// the environment still apply.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Game.FPS < 0 {
		return fmt.Errorf("game.fps must not be negative, got %d", c.Game.FPS)
	}
	if c.Game.Level == "" {
		return fmt.Errorf("game.level is required")
	}
	if c.Logging.JournalSize < 0 {
		return fmt.Errorf("logging.journal_size must not be negative, got %d", c.Logging.JournalSize)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "Jungle",
		},
		Game: GameConfig{
			FPS:        120,
			Level:      "assets/levels/jungle.yaml",
			ScriptsDir: "scripts",
			SkipTicks:  3,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "console",
			File:        "jungle.log",
			JournalSize: 64,
		},
	}
}
