package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jungle2d/engine/internal/config"
)

// New builds the process logger from cfg. Output goes to cfg.File because
// the terminal belongs to the screen; an empty File logs to stderr. Every
// entry at or above the configured level is also kept in the returned
// Journal.
func New(cfg config.LoggingConfig) (*zap.Logger, *Journal, error) {
	level := ParseLevel(cfg.Level)

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	journal := NewJournal(cfg.JournalSize, level)
	log, err := zapCfg.Build(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, journal)
	}))
	if err != nil {
		return nil, nil, err
	}
	return log, journal, nil
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
