package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tradejournal/internal/config"
)

// New builds the process logger. Console encoding gets human-readable
// ISO8601 timestamps and capitalized levels for the dev loop; json encoding
// keeps zap's production defaults for log shippers. Every line carries the
// service name so journal logs are attributable when aggregated.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if raw := strings.TrimSpace(strings.ToLower(cfg.Level)); raw != "" {
		if err := level.Set(raw); err != nil {
			return nil, fmt.Errorf("logger: bad level %q: %w", cfg.Level, err)
		}
	}

	encoding := strings.TrimSpace(cfg.Encoding)
	if encoding == "" {
		encoding = "console"
	}

	var enc zapcore.EncoderConfig
	switch encoding {
	case "console":
		enc = zap.NewDevelopmentEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		enc = zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("logger: unknown encoding %q", cfg.Encoding)
	}

	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encoding,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		EncoderConfig:     enc,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	if cfg.Sampling {
		zc.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}

	return zc.Build(zap.Fields(zap.String("service", "tradejournal")))
}
