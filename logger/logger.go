// SPDX-License-Identifier: MIT

// Package logger builds the zap loggers used by the lvltrace CLI and keeps the
// structured field names consistent across packages.
//
// Library packages never log through a global: they accept a *zap.Logger via
// options and default to zap.NewNop().
package logger

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrUnknownLevel is returned for level names zap does not recognize.
var ErrUnknownLevel = errors.New("logger: unknown level")

// New builds a logger at the given level ("debug", "info", "warn", "error";
// empty means info). json selects the production JSON encoder; otherwise a
// compact console encoder writes to stderr so stdout stays free for results.
func New(json bool, level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	if json {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			return nil, errors.Wrap(err, "logger: build json")
		}
		return l, nil
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(os.Stderr),
		lvl,
	)), nil
}

// ParseLevel maps a case-insensitive level name to a zapcore.Level.
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return 0, errors.Wrapf(ErrUnknownLevel, "%q", level)
	}

	return lvl, nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}

	return l
}
