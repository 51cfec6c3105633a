package logger

import (
	"fmt"
	"os"

	"golden-brain/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Initialize sets up the global logger. Output goes to stderr, or to the
// configured file, so the game's stdout stays clean. The returned cleanup
// flushes the logger and closes the file.
func Initialize(cfg config.Config) (func(), error) {
	l, closeSink, err := New(cfg)
	if err != nil {
		return nil, err
	}
	log = l
	return func() {
		_ = l.Sync()
		_ = closeSink()
		log = zap.NewNop()
	}, nil
}

// New builds a logger without touching the global one. closeSink releases
// the log file, if any.
func New(cfg config.Config) (l *zap.Logger, closeSink func() error, err error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zapcore.WarnLevel
	if cfg.Log.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
	}

	sink := zapcore.AddSync(os.Stderr)
	closeSink = func() error { return nil }
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		sink = zapcore.AddSync(f)
		closeSink = f.Close
	}

	var encoder zapcore.Encoder
	if cfg.Log.Env == "production" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), closeSink, nil
}

// Get returns the global logger instance
func Get() *zap.Logger {
	return log
}
