// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where and how logs are written.
type Options struct {
	// Mode is "dev" (console encoder) or "prod" (JSON).
	Mode string

	// Level is a zap level name. Default: "info".
	Level string

	// File, when set, receives JSON logs with size-based rotation.
	File string

	// Console mirrors logs to stderr. The dashboard turns this off since
	// the terminal belongs to the UI.
	Console bool
}

// New builds a logger from opts. Sync should be deferred by the caller.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
	}

	var cores []zapcore.Core

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // Megabytes
			MaxBackups: 3,
			MaxAge:     14, // Days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			zapcore.AddSync(rotator),
			level,
		))
	}

	if opts.Console {
		var enc zapcore.Encoder
		if isProd(opts.Mode) {
			enc = zapcore.NewJSONEncoder(fileEncoderConfig())
		} else {
			enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	core := Redact(zapcore.NewTee(cores...))
	return zap.New(core, zap.AddCaller()), nil
}

// DefaultFile returns $XDG_STATE_HOME/eduvantage/eduvantage.log, falling
// back to ~/.local/state.
func DefaultFile() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "eduvantage", "eduvantage.log"), nil
}

func isProd(mode string) bool {
	switch strings.ToLower(mode) {
	case "prod", "production":
		return true
	}
	return false
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	return cfg
}
