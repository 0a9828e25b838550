package builder

import (
	"github.com/limaJavier/scheduling/pkg/model"

	"go.uber.org/zap"
)

type greedyBuilder struct {
	options
}

// NewGreedyBuilder returns a single-pass builder: most constrained subject first, best rated section that fits.
// Subjects it cannot place are skipped, so its result may cover only part of the required subjects
func NewGreedyBuilder(opts ...Option) Builder {
	return &greedyBuilder{options: newOptions(opts)}
}

func (builder *greedyBuilder) Name() string {
	return Optimized
}

func (builder *greedyBuilder) Build(catalog *model.Catalog, targetGroup string) ([]model.Selection, error) {
	if targetGroup == "" {
		return nil, ErrEmptyTargetGroup
	}

	subjects := mrvOrder(catalog, builder.requiredSubjects(catalog))
	counter := newBudget(builder.nodeBudget)
	memo := newConflictMemo()

	chosen := make([]*model.Section, 0, len(subjects))
	skipped := make([]string, 0)
	for _, subject := range subjects {
		placed := false
		for _, candidate := range catalog.Options(subject) {
			if err := counter.spend(); err != nil {
				return nil, err
			}
			if memo.conflicts(candidate, chosen) {
				continue
			}
			chosen = append(chosen, candidate)
			placed = true
			break
		}
		if !placed {
			skipped = append(skipped, subject)
		}
	}

	if len(skipped) > 0 {
		builder.logger.Debug("subjects left unassigned",
			zap.String("algorithm", Optimized),
			zap.String("group", targetGroup),
			zap.Strings("subjects", skipped),
		)
	}

	selections := toSelections(chosen, targetGroup)
	logBuilt(builder.options, Optimized, targetGroup, selections, counter.expanded)
	return selections, nil
}

// Verify accepts partial coverage: every selected subject must be required, not every required subject selected
func (builder *greedyBuilder) Verify(selections []model.Selection, required []string) bool {
	return verify(selections, required, false)
}

// conflictMemo caches conflict answers for the duration of one build
type conflictMemo struct {
	answers map[string]bool
}

func newConflictMemo() *conflictMemo {
	return &conflictMemo{answers: make(map[string]bool)}
}

func (memo *conflictMemo) conflicts(candidate *model.Section, chosen []*model.Section) bool {
	key := candidate.ID() + "|" + stateKey(chosen)
	if answer, ok := memo.answers[key]; ok {
		return answer
	}

	answer := model.ConflictsWithAny(candidate, chosen)
	memo.answers[key] = answer
	return answer
}
