// Package main provides the mhrcalc binary: a one-shot CLI that loads the
// equipment catalog, runs a single skill-set calculation, and prints the
// result as JSON. There is no server loop and no network listener.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nineclaw/mhrcalc/internal/calc/calculator"
	"github.com/nineclaw/mhrcalc/internal/calc/probe"
	"github.com/nineclaw/mhrcalc/internal/calc/result"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
	"github.com/nineclaw/mhrcalc/internal/config"
	"github.com/nineclaw/mhrcalc/internal/wireset"
)

// skillFlags accumulates repeated -skill name=level flags into an ordered
// list, preserving flag.Value's multi-occurrence contract.
type skillFlags []string

func (s *skillFlags) String() string { return strings.Join(*s, ",") }
func (s *skillFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// requestFile is the on-disk JSON shape of §6's Request payload, used by
// -request.
type requestFile struct {
	WeaponSlots      [3]int8         `json:"weapon_slots"`
	SelectedSkills   map[string]int8 `json:"selected_skills"`
	FreeSlots        [4]int8         `json:"free_slots"`
	SexType          string          `json:"sex_type"`
	IncludeLTEEquips bool            `json:"include_lte_equips"`
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/mhrcalc.yaml", "path to configuration file")
	armorsPath := flag.String("armors", "", "override catalog.armors_path")
	skillsPath := flag.String("skills", "", "override catalog.skills_path")
	decorationsPath := flag.String("decorations", "", "override catalog.decorations_path")
	anomalyCSVPath := flag.String("anomaly-csv", "", "override catalog.anomaly_csv_path")
	talismanCSVPath := flag.String("talisman-csv", "", "override catalog.talisman_csv_path")
	requestPath := flag.String("request", "", "path to a JSON request file (§6 Request payload); mutually exclusive with -skill")
	lang := flag.String("lang", "", "override catalog.default_language for display names")
	workers := flag.Int("workers", 0, "override calc.worker_pool_size (0 = use config)")
	maxAnswers := flag.Int("max-answers", 0, "override calc.max_answers (0 = use config)")
	sexType := flag.String("sex", "all", "request sex_type filter: all, male, or female")
	includeLTE := flag.Bool("include-lte", false, "include lower-or-equal equipment in the search")
	var skillArgs skillFlags
	flag.Var(&skillArgs, "skill", "repeated name=level pair, e.g. -skill \"Attack Boost=3\"; ignored if -request is set")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	applyOverrides(&cfg, *armorsPath, *skillsPath, *decorationsPath, *anomalyCSVPath, *talismanCSVPath, *lang, *workers, *maxAnswers)

	logger, err := wireset.ProvideLogger(cfg)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	requestID := uuid.New().String()
	logger = logger.With(zap.String("request_id", requestID))

	cat, err := wireset.ProvideCatalog(cfg)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	decoCache := wireset.ProvideDecoCache(cat)
	mgr, err := wireset.ProvideManager(cfg, cat, decoCache)
	if err != nil {
		logger.Fatal("building data manager", zap.Error(err))
	}
	calc := wireset.ProvideCalculator(cfg, mgr)

	logger.Info("catalog loaded",
		zap.Int("armors", len(cat.Armors)),
		zap.Int("skills", cat.SkillCount()),
		zap.Duration("elapsed", time.Since(start)),
	)

	req, err := buildRequest(cat, *requestPath, skillArgs, *sexType, *includeLTE)
	if err != nil {
		logger.Fatal("building request", zap.Error(err))
	}

	calcStart := time.Now()
	answers, err := calc.Calculate(req)
	if err != nil {
		logger.Fatal("running calculation", zap.Error(err))
	}
	calcTime := time.Since(calcStart)
	logger.Info("calculation complete",
		zap.Int("answers", len(answers)),
		zap.Bool("max_answers_hit", len(answers) >= cfg.Calc.MaxAnswers),
		zap.Duration("calc_time", calcTime),
	)

	if cfg.Calc.WorkerPoolSize > 0 {
		suggestions, err := probe.Run(context.Background(), cat, decoCache, req, answers, cfg.Calc.WorkerPoolSize)
		if err != nil {
			logger.Warn("additional-skills probe failed", zap.Error(err))
		} else {
			logger.Debug("additional-skills probe complete", zap.Int("suggestions", len(suggestions)))
		}
	}

	builder := result.NewBuilder(cat)
	res := builder.Build(req, answers, float32(calcTime.Seconds()))
	res.RequestID = requestID

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Fatal("encoding result", zap.Error(err))
	}
}

func applyOverrides(cfg *config.Config, armorsPath, skillsPath, decorationsPath, anomalyCSVPath, talismanCSVPath, lang string, workers, maxAnswers int) {
	if armorsPath != "" {
		cfg.Catalog.ArmorsPath = armorsPath
	}
	if skillsPath != "" {
		cfg.Catalog.SkillsPath = skillsPath
	}
	if decorationsPath != "" {
		cfg.Catalog.DecorationsPath = decorationsPath
	}
	if anomalyCSVPath != "" {
		cfg.Catalog.AnomalyCSVPath = anomalyCSVPath
	}
	if talismanCSVPath != "" {
		cfg.Catalog.TalismanCSVPath = talismanCSVPath
	}
	if lang != "" {
		cfg.Catalog.DefaultLanguage = lang
	}
	if workers > 0 {
		cfg.Calc.WorkerPoolSize = workers
	}
	if maxAnswers > 0 {
		cfg.Calc.MaxAnswers = maxAnswers
	}
}

// buildRequest lowers either a -request JSON file or repeated -skill flags
// into a calculator.Request with dense skill uids resolved against cat.
func buildRequest(cat *catalog.Catalog, requestPath string, skillArgs skillFlags, sexType string, includeLTE bool) (*calculator.Request, error) {
	if requestPath != "" {
		return buildRequestFromFile(cat, requestPath)
	}
	return buildRequestFromFlags(cat, skillArgs, sexType, includeLTE)
}

func buildRequestFromFile(cat *catalog.Catalog, path string) (*calculator.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening request file: %w", err)
	}
	defer f.Close()

	var rf requestFile
	if err := json.NewDecoder(f).Decode(&rf); err != nil {
		return nil, fmt.Errorf("decoding request file: %w", err)
	}

	sel := skills.New(cat.SkillCount())
	for name, level := range rf.SelectedSkills {
		uid, ok := cat.SkillUID(catalog.SkillID(name))
		if !ok {
			return nil, &catalog.UnknownSkillError{ID: catalog.SkillID(name)}
		}
		sel.Set(uid, skills.Level(level))
	}

	return &calculator.Request{
		WeaponSlots:      slots.Vec{slots.Count(rf.WeaponSlots[0]), slots.Count(rf.WeaponSlots[1]), slots.Count(rf.WeaponSlots[2]), 0},
		SelectedSkills:   sel,
		FreeSlots:        slots.Vec{slots.Count(rf.FreeSlots[0]), slots.Count(rf.FreeSlots[1]), slots.Count(rf.FreeSlots[2]), slots.Count(rf.FreeSlots[3])},
		Sex:              catalog.SexType(rf.SexType),
		IncludeLTEEquips: rf.IncludeLTEEquips,
	}, nil
}

func buildRequestFromFlags(cat *catalog.Catalog, skillArgs skillFlags, sexType string, includeLTE bool) (*calculator.Request, error) {
	sel := skills.New(cat.SkillCount())
	for _, pair := range skillArgs {
		name, levelStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -skill %q: expected name=level", pair)
		}
		level, err := strconv.ParseInt(strings.TrimSpace(levelStr), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid -skill %q: %w", pair, err)
		}
		uid, ok := cat.SkillUID(catalog.SkillID(strings.TrimSpace(name)))
		if !ok {
			return nil, &catalog.UnknownSkillError{ID: catalog.SkillID(name)}
		}
		sel.Set(uid, skills.Level(level))
	}

	return &calculator.Request{
		SelectedSkills:   sel,
		Sex:              catalog.SexType(sexType),
		IncludeLTEEquips: includeLTE,
	}, nil
}
