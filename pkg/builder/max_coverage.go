package builder

import (
	"github.com/limaJavier/scheduling/pkg/model"

	"go.uber.org/zap"
)

type maxCoverageBuilder struct {
	options
}

// NewMaxCoverageBuilder returns an exhaustive backtracking builder. Subjects are visited most-constrained first and candidates best-rated first; the first complete assignment wins
func NewMaxCoverageBuilder(opts ...Option) Builder {
	return &maxCoverageBuilder{options: newOptions(opts)}
}

func (builder *maxCoverageBuilder) Name() string {
	return MaxCoverage
}

func (builder *maxCoverageBuilder) Build(catalog *model.Catalog, targetGroup string) ([]model.Selection, error) {
	if targetGroup == "" {
		return nil, ErrEmptyTargetGroup
	}

	subjects := mrvOrder(catalog, builder.requiredSubjects(catalog))
	if len(subjects) == 0 {
		return []model.Selection{}, nil
	}

	search := &backtracking{
		candidates: make([][]*model.Section, len(subjects)),
		chosen:     make([]*model.Section, 0, len(subjects)),
		budget:     newBudget(builder.nodeBudget),
	}
	for i, subject := range subjects {
		search.candidates[i] = catalog.Options(subject)
	}

	found, err := search.run(0)
	if err != nil {
		return nil, err
	}
	if !found {
		builder.logger.Debug("no schedule found",
			zap.String("algorithm", MaxCoverage),
			zap.String("group", targetGroup),
			zap.String("reason", "search_exhausted"),
			zap.Int("expanded", search.budget.expanded),
		)
		return []model.Selection{}, nil
	}

	selections := toSelections(search.chosen, targetGroup)
	logBuilt(builder.options, MaxCoverage, targetGroup, selections, search.budget.expanded)
	return selections, nil
}

func (builder *maxCoverageBuilder) Verify(selections []model.Selection, required []string) bool {
	return verify(selections, required, true)
}

type backtracking struct {
	candidates [][]*model.Section // Per depth, best rated first
	chosen     []*model.Section
	budget     *budget
}

func (search *backtracking) run(depth int) (bool, error) {
	if depth == len(search.candidates) {
		return true, nil
	}

	for _, candidate := range search.candidates[depth] {
		if model.ConflictsWithAny(candidate, search.chosen) {
			continue
		}
		if err := search.budget.spend(); err != nil {
			return false, err
		}

		search.chosen = append(search.chosen, candidate)
		found, err := search.run(depth + 1)
		if err != nil || found {
			return found, err
		}
		search.chosen = search.chosen[:len(search.chosen)-1] // Backtrack
	}
	return false, nil
}
