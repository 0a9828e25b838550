package builder

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type pinnedTeacherBuilder struct {
	options
	pins map[string]string // Subject to normalized professor name
}

// NewPinnedTeacherBuilder returns a builder that honors subject-to-professor pins as hard constraints.
// Pinned subjects join the target subject set; the rest is solved by A* with dynamic most-constrained ordering, seeded with the pinned sections
func NewPinnedTeacherBuilder(pins map[string]string, opts ...Option) Builder {
	normalized := make(map[string]string, len(pins))
	for subject, professor := range pins {
		normalized[strings.TrimSpace(subject)] = model.NormalizeName(professor)
	}
	return &pinnedTeacherBuilder{
		options: newOptions(opts),
		pins:    normalized,
	}
}

func (builder *pinnedTeacherBuilder) Name() string {
	return Pinned
}

func (builder *pinnedTeacherBuilder) Build(catalog *model.Catalog, targetGroup string) ([]model.Selection, error) {
	if targetGroup == "" {
		return nil, ErrEmptyTargetGroup
	}
	for subject, professor := range builder.pins {
		if subject == "" || professor == "" {
			return nil, fmt.Errorf("%w: %q -> %q", ErrInvalidPinnedPair, subject, professor)
		}
	}

	subjects := lo.Union(builder.requiredSubjects(catalog), slices.Sorted(maps.Keys(builder.pins)))
	slices.Sort(subjects)
	if len(subjects) == 0 {
		return []model.Selection{}, nil
	}

	search := &astarSearch{
		catalog: catalog,
		pinned:  builder.pins,
		dynamic: true,
		budget:  newBudget(builder.nodeBudget),
	}

	//** Commit pins whose professor teaches a single section of the subject
	pinnedSubjects := slices.Sorted(maps.Keys(builder.pins))
	matches := make(map[string][]*model.Section, len(pinnedSubjects))
	for _, subject := range pinnedSubjects {
		matches[subject] = search.candidates(subject, nil)
		if len(matches[subject]) == 0 {
			builder.infeasible(targetGroup, "professor_not_found", zap.String("subject", subject))
			return []model.Selection{}, nil
		}
	}

	seed := make([]*model.Section, 0, len(pinnedSubjects))
	for _, subject := range pinnedSubjects {
		if len(matches[subject]) > 1 {
			continue
		}
		if model.ConflictsWithAny(matches[subject][0], seed) {
			builder.infeasible(targetGroup, "pinned_conflict", zap.String("subject", subject))
			return []model.Selection{}, nil
		}
		seed = append(seed, matches[subject][0])
	}

	// Pins with several sections are left to the search, but one of them must fit around the committed ones
	for _, subject := range pinnedSubjects {
		if len(matches[subject]) > 1 && len(search.candidates(subject, seed)) == 0 {
			builder.infeasible(targetGroup, "pinned_conflict", zap.String("subject", subject))
			return []model.Selection{}, nil
		}
	}

	committed := lo.Map(seed, func(section *model.Section, _ int) string { return section.Subject() })
	chosen, found, err := search.run(seed, lo.Without(subjects, committed...))
	if err != nil {
		return nil, err
	}
	if !found {
		builder.infeasible(targetGroup, "search_exhausted", zap.Int("expanded", search.budget.expanded))
		return []model.Selection{}, nil
	}

	selections := toSelections(chosen, targetGroup)
	logBuilt(builder.options, Pinned, targetGroup, selections, search.budget.expanded)
	return selections, nil
}

// Verify also checks that every pinned subject is taught by its pinned professor
func (builder *pinnedTeacherBuilder) Verify(selections []model.Selection, required []string) bool {
	if !verify(selections, required, true) {
		return false
	}
	for _, selection := range selections {
		professor, ok := builder.pins[selection.Assigned.Subject()]
		if ok && model.NormalizeName(selection.Assigned.Professor().FullName()) != professor {
			return false
		}
	}
	return true
}

func (builder *pinnedTeacherBuilder) infeasible(targetGroup, reason string, fields ...zap.Field) {
	builder.logger.Info("pinned schedule infeasible", append([]zap.Field{
		zap.String("algorithm", Pinned),
		zap.String("group", targetGroup),
		zap.String("reason", reason),
	}, fields...)...)
}
