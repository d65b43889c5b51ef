package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/myhealthapp/fitlog/internal/config"
)

// Options controls where log lines go.
type Options struct {
	// Console mirrors log lines to stderr. The TUI owns the terminal, so
	// interactive runs leave this off and log to the file only.
	Console bool
}

// Configure installs the global zerolog logger. It returns a closer for the
// log file.
func Configure(cfg *config.Config, opts Options) (io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	if err := os.MkdirAll(cfg.LogDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(filepath.Join(cfg.LogDir(), "fitlog.log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := ParseLevel(cfg.LogLevel)
	if cfg.DevMode {
		level = zerolog.TraceLevel
	}

	var writer io.Writer = logFile
	if opts.Console {
		writer = zerolog.MultiLevelWriter(
			logFile,
			zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: time.Kitchen,
			},
		)
	}

	log.Logger = zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(level)

	return logFile, nil
}

// ParseLevel falls back to info for unknown level names.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
