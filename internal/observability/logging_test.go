package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineclaw/mhrcalc/internal/config"
)

func testConfig(level, format string) config.Config {
	return config.Config{
		Logging: config.LoggingConfig{Level: level, Format: format},
		Calc:    config.CalcConfig{MaxAnswers: 200, WorkerPoolSize: 4},
	}
}

func TestNewLogger_JSON(t *testing.T) {
	logger, err := NewLogger(testConfig("info", "json"))
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_Console(t *testing.T) {
	logger, err := NewLogger(testConfig("debug", "console"))
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(testConfig("trace", "json"))
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, err := NewLogger(testConfig("info", "xml"))
	assert.Error(t, err)
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := NewLogger(testConfig(level, "json"))
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
	}
}

func TestNewLogger_CarriesCalcTuningAsInitialFields(t *testing.T) {
	cfg := testConfig("info", "json")
	cfg.Calc.WorkerPoolSize = 8
	cfg.Calc.MaxAnswers = 50

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
