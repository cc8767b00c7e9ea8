// Package wireset declares the compile-time dependency-injection provider
// set (C11) composing configuration, catalog loading, the decoration
// combination cache, the data manager, and the calculator for cmd/mhrcalc.
package wireset

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nineclaw/mhrcalc/internal/calc/calculator"
	"github.com/nineclaw/mhrcalc/internal/calc/datamanager"
	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/catalog"
	"github.com/nineclaw/mhrcalc/internal/config"
	"github.com/nineclaw/mhrcalc/internal/ingest"
	"github.com/nineclaw/mhrcalc/internal/observability"
)

// App bundles every long-lived dependency cmd/mhrcalc needs to run one
// calculation.
type App struct {
	Config     config.Config
	Logger     *zap.Logger
	Catalog    *catalog.Catalog
	DecoCache  *deco.Cache
	Manager    *datamanager.Manager
	Calculator *calculator.Calculator
}

// ProvideConfig loads and validates the process configuration.
func ProvideConfig(configPath string) (config.Config, error) {
	return config.Load(configPath)
}

// ProvideLogger builds the structured logger from cfg.Logging.
func ProvideLogger(cfg config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg)
}

// ProvideCatalog loads the three catalog sources named by cfg.Catalog (JSON
// or YAML, by file extension).
func ProvideCatalog(cfg config.Config) (*catalog.Catalog, error) {
	armors, err := catalog.LoadArmors(cfg.Catalog.ArmorsPath)
	if err != nil {
		return nil, fmt.Errorf("loading armors catalog: %w", err)
	}
	skillRecs, err := catalog.LoadSkills(cfg.Catalog.SkillsPath)
	if err != nil {
		return nil, fmt.Errorf("loading skills catalog: %w", err)
	}
	decos, err := catalog.LoadDecorations(cfg.Catalog.DecorationsPath)
	if err != nil {
		return nil, fmt.Errorf("loading decorations catalog: %w", err)
	}
	return catalog.New(armors, skillRecs, decos, cfg.Catalog.DefaultLanguage)
}

// ProvideDecoCache pre-computes the Pareto-minimal decoration combinations
// for every (skill, level) pair in cat (spec §4.3).
func ProvideDecoCache(cat *catalog.Catalog) *deco.Cache {
	return deco.Build(cat)
}

// ProvideManager ingests the anomaly/talisman CSV sources (if configured)
// and builds the indexed equipment manager (spec §4.10).
func ProvideManager(cfg config.Config, cat *catalog.Catalog, dc *deco.Cache) (*datamanager.Manager, error) {
	return ingest.BuildManager(cat, dc, cfg.Catalog.AnomalyCSVPath, cfg.Catalog.TalismanCSVPath)
}

// ProvideCalculator builds the Calculator, capped at cfg.Calc.MaxAnswers.
func ProvideCalculator(cfg config.Config, dm *datamanager.Manager) *calculator.Calculator {
	return calculator.New(dm, cfg.Calc.MaxAnswers)
}
