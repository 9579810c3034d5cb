// Package logger builds the zap logger shared by the engine and render
// sides.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger at info level, or debug level when debug is
// true. Callers own Sync on shutdown.
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}

// Must returns New's logger or panics. For use at startup only, where a
// logger that cannot be constructed leaves nothing to report errors with.
func Must(debug bool) *zap.Logger {
	log, err := New(debug)
	if err != nil {
		panic("logger: " + err.Error())
	}
	return log
}
