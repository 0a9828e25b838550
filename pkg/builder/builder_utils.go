package builder

import (
	"slices"
	"strings"

	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// requiredSubjects resolves the target subject set: explicit subjects first, then the whole catalog if asked, otherwise the best-coverage group's subjects
func (o options) requiredSubjects(catalog *model.Catalog) []string {
	var subjects []string
	if len(o.required) > 0 {
		subjects = lo.Uniq(lo.Filter(o.required, func(subject string, _ int) bool { return subject != "" }))
	} else if o.catalogWide {
		subjects = catalog.SubjectNames()
	} else {
		subjects = catalog.RequiredSubjectsForBestGroup()
	}
	slices.Sort(subjects)
	return subjects
}

// mrvOrder sorts subjects ascending by number of candidate sections (most constrained first); ties keep alphabetical order
func mrvOrder(catalog *model.Catalog, subjects []string) []string {
	ordered := slices.Clone(subjects)
	slices.Sort(ordered)
	slices.SortStableFunc(ordered, func(a, b string) int {
		return catalog.OptionCount(a) - catalog.OptionCount(b)
	})
	return ordered
}

// toSelections clones every chosen section into the target group, remembering where it came from
func toSelections(chosen []*model.Section, targetGroup string) []model.Selection {
	return lo.Map(chosen, func(section *model.Section, _ int) model.Selection {
		return model.Selection{
			Assigned:    model.CloneToGroup(section, targetGroup),
			SourceGroup: section.Group(),
		}
	})
}

// stateKey identifies a partial assignment regardless of the order its sections were chosen in
func stateKey(chosen []*model.Section) string {
	ids := lo.Map(chosen, func(section *model.Section, _ int) string { return section.ID() })
	slices.Sort(ids)
	return strings.Join(ids, "|")
}

// cost of assigning a section: the better the rating the cheaper the edge
func cost(section *model.Section) float64 {
	return 10 - section.Rating()
}

func verify(selections []model.Selection, required []string, exact bool) bool {
	if len(selections) == 0 {
		return len(required) == 0
	}

	sections := model.AssignedSections(selections)
	if lo.SomeBy(sections, func(section *model.Section) bool { return section == nil }) {
		return false
	}

	//** Check coverage
	subjects := lo.Map(sections, func(section *model.Section, _ int) string { return section.Subject() })
	if len(lo.Uniq(subjects)) != len(subjects) { // One section per subject
		return false
	}
	requiredSet := lo.SliceToMap(required, func(subject string) (string, bool) { return subject, true })
	if lo.SomeBy(subjects, func(subject string) bool { return !requiredSet[subject] }) {
		return false
	}
	if exact && len(subjects) != len(requiredSet) {
		return false
	}

	//** Check that no pair of sections overlaps
	for i := range len(sections) - 1 {
		for j := i + 1; j < len(sections); j++ {
			if model.Conflicts(sections[i], sections[j]) {
				return false
			}
		}
	}
	return true
}

type budget struct {
	limit    int
	expanded int
}

func newBudget(limit int) *budget {
	return &budget{limit: limit}
}

// spend accounts for one expanded node and fails once the limit is crossed
func (b *budget) spend() error {
	b.expanded++
	if b.limit > 0 && b.expanded > b.limit {
		return ErrBudgetExceeded
	}
	return nil
}

func logBuilt(o options, algorithm, targetGroup string, selections []model.Selection, expanded int) {
	o.logger.Debug("schedule built",
		zap.String("algorithm", algorithm),
		zap.String("group", targetGroup),
		zap.Int("selections", len(selections)),
		zap.Int("expanded", expanded),
		zap.String("strategy", o.strategy.Name()),
		zap.Float64("score", o.strategy.Evaluate(model.AssignedSections(selections))),
	)
}
