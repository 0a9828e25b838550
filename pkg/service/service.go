package service

import (
	"errors"
	"strings"
	"sync"

	"github.com/limaJavier/scheduling/pkg/builder"
	"github.com/limaJavier/scheduling/pkg/cache"
	"github.com/limaJavier/scheduling/pkg/evaluation"
	"github.com/limaJavier/scheduling/pkg/model"
	"github.com/limaJavier/scheduling/pkg/validator"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

var ErrMissingCatalog = errors.New("schedule service requires a catalog")

// Config governs defaults applied when a request leaves strategy or algorithm blank
type Config struct {
	NodeBudget       int
	DefaultStrategy  string
	DefaultAlgorithm string
}

// Schedule is a built schedule together with the parameters that produced it. No selections means the request was infeasible
type Schedule struct {
	Group      string
	Strategy   string
	Algorithm  string
	Selections []model.Selection
	Score      float64
}

func (schedule Schedule) Feasible() bool {
	return len(schedule.Selections) > 0
}

// ScheduleService answers schedule requests over one catalog, memoizing results when a cache is supplied
type ScheduleService struct {
	catalog *model.Catalog
	cache   *cache.ScheduleCache
	logger  *zap.Logger
	cfg     Config
	scorers sync.Map // Strategy name -> memoizing evaluation.Strategy
}

// NewScheduleService wires the service; a nil cache disables memoization
func NewScheduleService(catalog *model.Catalog, scheduleCache *cache.ScheduleCache, logger *zap.Logger, cfg Config) (*ScheduleService, error) {
	if catalog == nil {
		return nil, ErrMissingCatalog
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultStrategy == "" {
		cfg.DefaultStrategy = evaluation.Weighted
	}
	if cfg.DefaultAlgorithm == "" {
		cfg.DefaultAlgorithm = builder.MaxCoverage
	}

	return &ScheduleService{
		catalog: catalog,
		cache:   scheduleCache,
		logger:  logger,
		cfg:     cfg,
	}, nil
}

func (s *ScheduleService) Catalog() *model.Catalog {
	return s.catalog
}

// Create builds a schedule for group with the named algorithm, scoring it with the named strategy
func (s *ScheduleService) Create(group, strategyName, algorithm string) (Schedule, error) {
	strategyName = lowerOr(strategyName, s.cfg.DefaultStrategy)
	algorithm = lowerOr(algorithm, s.cfg.DefaultAlgorithm)

	strategy, err := s.strategy(strategyName)
	if err != nil {
		return Schedule{}, err
	}
	scheduleBuilder, err := builder.ByName(algorithm, s.builderOptions(strategy)...)
	if err != nil {
		return Schedule{}, err
	}

	key := cache.AlgorithmKey(group, strategyName, scheduleBuilder.Name())
	selections, err := s.build(key, func() ([]model.Selection, error) {
		return scheduleBuilder.Build(s.catalog, group)
	})
	if err != nil {
		return Schedule{}, err
	}

	return s.finish(Schedule{
		Group:      group,
		Strategy:   strategyName,
		Algorithm:  scheduleBuilder.Name(),
		Selections: selections,
	}, strategy), nil
}

// CreatePinned builds a schedule for group that keeps every subject -> professor pin
func (s *ScheduleService) CreatePinned(group string, pins map[string]string) (Schedule, error) {
	strategy, err := s.strategy(s.cfg.DefaultStrategy)
	if err != nil {
		return Schedule{}, err
	}

	trimmed := make(map[string]string, len(pins))
	for subject, professor := range pins {
		trimmed[strings.TrimSpace(subject)] = strings.TrimSpace(professor)
	}
	scheduleBuilder := builder.NewPinnedTeacherBuilder(trimmed, s.builderOptions(strategy)...)

	// Pins that name the same professor share a cache entry
	keyed := lo.MapValues(trimmed, func(professor string, _ string) string { return model.NormalizeName(professor) })
	selections, err := s.build(cache.PinnedKey(group, keyed), func() ([]model.Selection, error) {
		return scheduleBuilder.Build(s.catalog, group)
	})
	if err != nil {
		return Schedule{}, err
	}

	return s.finish(Schedule{
		Group:      group,
		Strategy:   s.cfg.DefaultStrategy,
		Algorithm:  builder.Pinned,
		Selections: selections,
	}, strategy), nil
}

// Validate audits the catalog for overlapping sections within each group
func (s *ScheduleService) Validate() validator.Result {
	return validator.Validate(s.catalog.Sections())
}

func (s *ScheduleService) ClearCache() {
	if s.cache != nil {
		s.cache.InvalidateAll()
	}
}

// CacheStats reports stored and fresh entries; both are zero when caching is disabled
func (s *ScheduleService) CacheStats() (total, valid int) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Stats()
}

// strategy resolves a strategy by name, memoizing its scores across requests
func (s *ScheduleService) strategy(name string) (evaluation.Strategy, error) {
	if scorer, ok := s.scorers.Load(name); ok {
		return scorer.(evaluation.Strategy), nil
	}

	strategy, err := evaluation.ByName(name)
	if err != nil {
		return nil, err
	}
	scorer, _ := s.scorers.LoadOrStore(name, evaluation.NewCached(strategy))
	return scorer.(evaluation.Strategy), nil
}

func (s *ScheduleService) builderOptions(strategy evaluation.Strategy) []builder.Option {
	return []builder.Option{
		builder.WithStrategy(strategy),
		builder.WithLogger(s.logger),
		builder.WithNodeBudget(s.cfg.NodeBudget),
	}
}

func (s *ScheduleService) build(key string, supplier cache.Supplier) ([]model.Selection, error) {
	if s.cache == nil {
		return supplier()
	}
	return s.cache.GetOrBuild(key, supplier)
}

func (s *ScheduleService) finish(schedule Schedule, strategy evaluation.Strategy) Schedule {
	schedule.Score = strategy.Evaluate(model.AssignedSections(schedule.Selections))

	if !schedule.Feasible() {
		s.logger.Info("schedule infeasible",
			zap.String("group", schedule.Group),
			zap.String("algorithm", schedule.Algorithm),
		)
		return schedule
	}
	s.logger.Info("schedule created",
		zap.String("group", schedule.Group),
		zap.String("algorithm", schedule.Algorithm),
		zap.String("strategy", schedule.Strategy),
		zap.Int("selections", len(schedule.Selections)),
		zap.Float64("score", schedule.Score),
	)
	return schedule
}

func lowerOr(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}
