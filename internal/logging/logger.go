// Package logging builds the zap loggers used across wellspring.
// Logs go to a file under the data directory when debug_mode is enabled in the
// config; otherwise commands log warnings to stderr and the full-screen UI stays silent.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wellspring/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // startup, config
	CategoryStore   Category = "store"   // key-value backends and typed collections
	CategoryCatalog Category = "catalog" // content catalog loading and watching
	CategoryQuiz    Category = "quiz"    // personality quiz
	CategoryRitual  Category = "ritual"  // daily task / affirmation / mood stages
	CategoryRoll    Category = "roll"    // reward roll
	CategoryStats   Category = "stats"   // mood statistics
	CategoryShare   Category = "share"   // sharing host outcomes
	CategoryGallery Category = "gallery" // prize artwork
	CategoryUI      Category = "ui"      // terminal UI
)

// Mode selects where non-debug output goes.
type Mode int

const (
	// ModeCLI writes warnings and errors to stderr when debug mode is off.
	ModeCLI Mode = iota
	// ModeInteractive discards output when debug mode is off; the UI owns the terminal.
	ModeInteractive
)

// Options tweak New beyond what the config file says.
type Options struct {
	Mode    Mode
	Verbose bool // force debug level
}

// New builds the root logger from the logging config.
func New(cfg config.LoggingConfig, opts Options) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	if !cfg.DebugMode {
		if opts.Mode == ModeInteractive {
			return zap.NewNop(), nil
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(maxLevel(level, zapcore.WarnLevel, opts.Verbose))
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
		zc.DisableStacktrace = true
		return build(zc, cfg)
	}

	if cfg.File == "" {
		return nil, fmt.Errorf("logging.file is required when debug_mode is enabled")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}
	return build(zc, cfg)
}

func build(zc zap.Config, cfg config.LoggingConfig) (*zap.Logger, error) {
	categories := cfg.Categories
	logger, err := zc.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &categoryCore{Core: core, enabled: func(name string) bool {
			lc := config.LoggingConfig{Categories: categories}
			return lc.IsCategoryEnabled(name)
		}}
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// For returns a child logger tagged with the category.
func For(l *zap.Logger, c Category) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(string(c))
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

func maxLevel(l, floor zapcore.Level, verbose bool) zapcore.Level {
	if verbose || l > floor {
		return l
	}
	return floor
}

// categoryCore drops entries whose logger name (the category) is switched off.
type categoryCore struct {
	zapcore.Core
	enabled func(name string) bool
}

func (c *categoryCore) With(fields []zapcore.Field) zapcore.Core {
	return &categoryCore{Core: c.Core.With(fields), enabled: c.enabled}
}

func (c *categoryCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.LoggerName != "" {
		root, _, _ := strings.Cut(ent.LoggerName, ".")
		if !c.enabled(root) {
			return ce
		}
	}
	return c.Core.Check(ent, ce)
}
