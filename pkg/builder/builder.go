package builder

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/scheduling/pkg/evaluation"
	"github.com/limaJavier/scheduling/pkg/model"

	"go.uber.org/zap"
)

var (
	ErrUnknownBuilder    = errors.New("unknown builder")
	ErrEmptyTargetGroup  = errors.New("target group must not be empty")
	ErrBudgetExceeded    = errors.New("search node budget exceeded")
	ErrInvalidPinnedPair = errors.New("pinned professor must name a subject and a professor")
)

// Builder assigns one section per required subject to a target group so that no two assigned sections overlap.
// An empty result (with a nil error) means that no valid assignment exists; errors are reserved for invalid parameters and exhausted budgets
type Builder interface {
	Build(catalog *model.Catalog, targetGroup string) ([]model.Selection, error)

	// Checks that the selections do not overlap and that they cover the required subjects (how strictly depends on the builder)
	Verify(selections []model.Selection, required []string) bool

	Name() string
}

const (
	MaxCoverage = "maxcoverage"
	AStar       = "astar"
	Optimized   = "optimized"
	Pinned      = "pinned"
)

var builders = map[string]func(opts ...Option) Builder{
	MaxCoverage: NewMaxCoverageBuilder,
	AStar:       NewAStarBuilder,
	Optimized:   NewGreedyBuilder,
}

// ByName resolves "maxcoverage", "astar" or "optimized" (also "greedy"). Pinned builders need their pins and are built with NewPinnedTeacherBuilder
func ByName(name string, opts ...Option) (Builder, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "greedy" {
		name = Optimized
	}

	constructor, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuilder, name)
	}
	return constructor(opts...), nil
}

// Names lists the names accepted by ByName
func Names() []string {
	return []string{MaxCoverage, Optimized, AStar}
}

type Option func(*options)

type options struct {
	required    []string
	catalogWide bool
	strategy    evaluation.Strategy
	logger      *zap.Logger
	nodeBudget  int
}

func newOptions(opts []Option) options {
	result := options{
		strategy: evaluation.NewMinutesWeighted(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&result)
	}
	return result
}

// WithRequiredSubjects fixes the target subject set instead of deriving it from the best-coverage group
func WithRequiredSubjects(subjects []string) Option {
	return func(o *options) {
		o.required = slices.Clone(subjects)
	}
}

// WithCatalogWideSubjects targets every subject name present in the catalog
func WithCatalogWideSubjects() Option {
	return func(o *options) {
		o.catalogWide = true
	}
}

// WithStrategy sets the strategy used to score (and log) built schedules
func WithStrategy(strategy evaluation.Strategy) Option {
	return func(o *options) {
		if strategy != nil {
			o.strategy = strategy
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNodeBudget bounds the number of search nodes a build may expand; zero or less means unlimited
func WithNodeBudget(nodes int) Option {
	return func(o *options) {
		o.nodeBudget = nodes
	}
}
