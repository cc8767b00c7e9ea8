// Package observability provides the structured logger.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nineclaw/mhrcalc/internal/config"
)

// NewLogger creates the application's structured logger from cfg. Level and
// format are validated by config.Config.Validate before this is ever called
// (see internal/config's validateLogging); the parse/switch here exist to
// turn those already-valid strings into zap's concrete types, not to
// re-validate them.
//
// The built logger carries cfg.Calc's tuning as InitialFields, so every line
// a run emits is self-describing about the search parameters that produced
// it without the caller having to thread them through every log.Info call.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Logging.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Logging.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Logging.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]interface{}{
		"worker_pool_size": cfg.Calc.WorkerPoolSize,
		"max_answers":      cfg.Calc.MaxAnswers,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
