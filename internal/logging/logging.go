// Package logging builds the zap logger used by uvc-controls.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnvVar overrides the configured log level when set.
// Valid values: "debug", "info", "warn", "error"
const LevelEnvVar = "UVC_CONTROLS_LOG_LEVEL"

// Level resolves the effective level: the environment variable wins over the
// configured value.
func Level(configured string) string {
	if env := os.Getenv(LevelEnvVar); env != "" {
		return env
	}
	return configured
}

// New returns a console logger writing to w. An empty level disables logging.
func New(level string, w io.Writer) (*zap.Logger, error) {
	if level == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}
