package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Debug level gets the human-readable
// development encoder, every other level logs JSON.
func New(level string) (*zap.Logger, error) {
	lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("bad LOG_LEVEL=%q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	if lvl.Level() == zap.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// Must is New that falls back to info level on a bad level string.
func Must(level string) *zap.Logger {
	l, err := New(level)
	if err == nil {
		return l
	}
	fmt.Printf("%v, fallback to info\n", err)
	l, err = New("info")
	if err != nil {
		panic(err)
	}
	return l
}
