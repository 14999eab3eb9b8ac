// Package logger builds the application's zerolog logger.
//
// The TUI owns the terminal, so interactive sessions log only to a rotated
// file, or nowhere when no file is configured.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/JustVugg/duffydiff/internal/config"
)

// Builder assembles a logger from configuration.
type Builder struct {
	cfg     config.LogConfig
	console io.Writer
}

// NewBuilder returns a builder for cfg.
func NewBuilder(cfg config.LogConfig) *Builder {
	return &Builder{cfg: cfg}
}

// WithConsole adds human-readable output to w.
func (b *Builder) WithConsole(w io.Writer) *Builder {
	b.console = w
	return b
}

// Build creates the logger. With neither a file nor a console configured it
// returns a disabled logger.
func (b *Builder) Build() (zerolog.Logger, error) {
	level, err := ParseLevel(b.cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var writers []io.Writer
	if b.console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: b.console, TimeFormat: "15:04:05"})
	}
	if b.cfg.File != "" {
		w, err := fileWriter(b.cfg)
		if err != nil {
			return zerolog.Nop(), err
		}
		writers = append(writers, w)
	}
	if len(writers) == 0 {
		return zerolog.Nop(), nil
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

// ParseLevel maps a config level name to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
}

func fileWriter(cfg config.LogConfig) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    max(cfg.MaxSizeMB, 1),
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}, nil
}
