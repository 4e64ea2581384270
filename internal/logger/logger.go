package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file written inside Config.Path
const FileName = "moviegrip.log"

// Logger wraps zerolog for application logging.
// The terminal belongs to the TUI, so output only ever goes to a file.
type Logger struct {
	zerolog.Logger
	rotator *lumberjack.Logger
}

// Config holds logger configuration.
type Config struct {
	Level      string
	Format     string // "console" or "json"
	Path       string // directory for log files; empty disables logging
	MaxSizeMB  int    // max size in MB before rotation (default: 5)
	MaxBackups int    // max number of old log files to keep (default: 3)
	MaxAgeDays int    // max age in days to keep old files (default: 14)
}

// New creates a new logger instance writing to Path/moviegrip.log.
// When the directory cannot be created the logger discards everything.
func New(cfg Config) *Logger {
	level := ParseLevel(cfg.Level)

	if cfg.Path == "" {
		return &Logger{Logger: zerolog.Nop()}
	}
	if err := os.MkdirAll(cfg.Path, 0755); err != nil {
		return &Logger{Logger: zerolog.Nop()}
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 5
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 3
	}
	maxAge := cfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 14
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Path, FileName),
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		LocalTime:  true,
	}

	var output io.Writer = rotator
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        rotator,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger, rotator: rotator}
}

// Close closes the log file if one is open.
func (l *Logger) Close() error {
	if l.rotator != nil {
		return l.rotator.Close()
	}
	return nil
}

// WithComponent returns a child logger tagged with a component field.
func (l *Logger) WithComponent(component string) zerolog.Logger {
	return l.Logger.With().Str("component", component).Logger()
}

// ParseLevel converts a config level string to a zerolog.Level
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
