// Package logging builds the structured logger used by the caret command.
package logging

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logr.Logger backed by zap that writes JSON lines to w.
// Debug output (logr verbosity 1 and up) is enabled when verbose is set.
func New(w io.Writer, verbose bool) logr.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zapr.NewLogger(zap.New(core))
}

// WithBuild adds the build version to every entry when version is set.
func WithBuild(logger logr.Logger, version string) logr.Logger {
	if version == "" {
		return logger
	}
	return logger.WithValues("build", version)
}
