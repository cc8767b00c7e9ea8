// Package config provides Viper-based configuration loading for the
// calculation engine's CLI entrypoint.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// CatalogConfig points at the on-disk catalog and CSV sources (§6 Catalog
// inputs, User data).
type CatalogConfig struct {
	ArmorsPath      string `mapstructure:"armors_path"`
	SkillsPath      string `mapstructure:"skills_path"`
	DecorationsPath string `mapstructure:"decorations_path"`
	AnomalyCSVPath  string `mapstructure:"anomaly_csv_path"`
	TalismanCSVPath string `mapstructure:"talisman_csv_path"`
	DefaultLanguage string `mapstructure:"default_language"`
}

// CalcConfig tunes the search itself.
type CalcConfig struct {
	MaxAnswers       int  `mapstructure:"max_answers"`
	WorkerPoolSize   int  `mapstructure:"worker_pool_size"`
	IncludeLTEEquips bool `mapstructure:"include_lte_equips"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Calc    CalcConfig    `mapstructure:"calc"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants, aggregating every violation
// instead of stopping at the first.
func (c Config) Validate() error {
	var err error
	err = multierr.Append(err, validateCatalog(c.Catalog))
	err = multierr.Append(err, validateCalc(c.Calc))
	err = multierr.Append(err, validateLogging(c.Logging))
	return err
}

func validateCatalog(cat CatalogConfig) error {
	if cat.DefaultLanguage == "" {
		return fmt.Errorf("catalog.default_language must not be empty")
	}
	return nil
}

func validateCalc(c CalcConfig) error {
	var errs []string
	if c.MaxAnswers < 1 {
		errs = append(errs, fmt.Sprintf("calc.max_answers must be >= 1, got %d", c.MaxAnswers))
	}
	if c.WorkerPoolSize < 1 {
		errs = append(errs, fmt.Sprintf("calc.worker_pool_size must be >= 1, got %d", c.WorkerPoolSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from path, overlaying an optional ".env" file
// ahead of viper so local catalog paths can be overridden without editing
// YAML, applies MHRCALC_-prefixed environment overrides and defaults, and
// validates the result.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // absent .env is not an error

	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("MHRCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.armors_path", "data/armors.json")
	v.SetDefault("catalog.skills_path", "data/skills.json")
	v.SetDefault("catalog.decorations_path", "data/decorations.json")
	v.SetDefault("catalog.anomaly_csv_path", "")
	v.SetDefault("catalog.talisman_csv_path", "")
	v.SetDefault("catalog.default_language", "en")

	v.SetDefault("calc.max_answers", 200)
	v.SetDefault("calc.worker_pool_size", 4)
	v.SetDefault("calc.include_lte_equips", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
