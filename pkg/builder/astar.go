package builder

import (
	"container/heap"
	"slices"

	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type astarBuilder struct {
	options
}

// NewAStarBuilder returns a best-first builder that minimizes the sum of (10 - rating) over the assigned sections.
// Its heuristic charges every remaining subject the cost of its best rated section, ignoring conflicts, so it never overestimates
func NewAStarBuilder(opts ...Option) Builder {
	return &astarBuilder{options: newOptions(opts)}
}

func (builder *astarBuilder) Name() string {
	return AStar
}

func (builder *astarBuilder) Build(catalog *model.Catalog, targetGroup string) ([]model.Selection, error) {
	if targetGroup == "" {
		return nil, ErrEmptyTargetGroup
	}

	subjects := mrvOrder(catalog, builder.requiredSubjects(catalog))
	if len(subjects) == 0 {
		return []model.Selection{}, nil
	}
	if lo.SomeBy(subjects, func(subject string) bool { return catalog.OptionCount(subject) == 0 }) {
		builder.logger.Debug("no schedule found",
			zap.String("algorithm", AStar),
			zap.String("group", targetGroup),
			zap.String("reason", "subject_without_sections"),
		)
		return []model.Selection{}, nil
	}

	search := &astarSearch{
		catalog: catalog,
		budget:  newBudget(builder.nodeBudget),
	}
	chosen, found, err := search.run(nil, subjects)
	if err != nil {
		return nil, err
	}
	if !found {
		builder.logger.Debug("no schedule found",
			zap.String("algorithm", AStar),
			zap.String("group", targetGroup),
			zap.String("reason", "search_exhausted"),
			zap.Int("expanded", search.budget.expanded),
		)
		return []model.Selection{}, nil
	}

	selections := toSelections(chosen, targetGroup)
	logBuilt(builder.options, AStar, targetGroup, selections, search.budget.expanded)
	return selections, nil
}

func (builder *astarBuilder) Verify(selections []model.Selection, required []string) bool {
	return verify(selections, required, true)
}

//** Search core

type searchNode struct {
	chosen    []*model.Section // Catalog sections, never clones
	remaining []string
	cost      float64
	estimate  float64
	sequence  int
}

func (node *searchNode) priority() float64 {
	return node.cost + node.estimate
}

// openSet is a min-heap on f = g + h. Ties prefer deeper nodes and then older ones
type openSet []*searchNode

func (set openSet) Len() int { return len(set) }

func (set openSet) Less(i, j int) bool {
	if set[i].priority() != set[j].priority() {
		return set[i].priority() < set[j].priority()
	}
	if len(set[i].remaining) != len(set[j].remaining) {
		return len(set[i].remaining) < len(set[j].remaining)
	}
	return set[i].sequence < set[j].sequence
}

func (set openSet) Swap(i, j int) { set[i], set[j] = set[j], set[i] }

func (set *openSet) Push(node any) {
	*set = append(*set, node.(*searchNode))
}

func (set *openSet) Pop() any {
	old := *set
	node := old[len(old)-1]
	old[len(old)-1] = nil
	*set = old[:len(old)-1]
	return node
}

// astarSearch is shared by the plain and the pinned builders.
// Without pins it expands subjects in the given order and estimates with the catalog-wide best ratings.
// With pins it picks the remaining subject with the fewest valid candidates and estimates with the best valid candidate per subject, pruning nodes where some subject has none
type astarSearch struct {
	catalog *model.Catalog
	pinned  map[string]string // Subject to normalized professor name
	dynamic bool
	budget  *budget
}

// candidates returns the subject's sections that respect its pin and do not overlap the chosen ones, best rated first
func (search *astarSearch) candidates(subject string, chosen []*model.Section) []*model.Section {
	professor, pinned := search.pinned[subject]
	return lo.Filter(search.catalog.Options(subject), func(section *model.Section, _ int) bool {
		if pinned && model.NormalizeName(section.Professor().FullName()) != professor {
			return false
		}
		return !model.ConflictsWithAny(section, chosen)
	})
}

// estimate returns h for a node and false when some remaining subject cannot be placed anymore
func (search *astarSearch) estimate(chosen []*model.Section, remaining []string) (float64, bool) {
	estimate := 0.0
	for _, subject := range remaining {
		if !search.dynamic {
			best, ok := search.catalog.BestRating(subject)
			if !ok {
				return 0, false
			}
			estimate += 10 - best
			continue
		}

		valid := search.candidates(subject, chosen)
		if len(valid) == 0 {
			return 0, false
		}
		estimate += cost(valid[0])
	}
	return estimate, true
}

// next chooses the subject to expand and its valid candidates
func (search *astarSearch) next(node *searchNode) (string, []*model.Section) {
	if !search.dynamic {
		subject := node.remaining[0]
		return subject, search.candidates(subject, node.chosen)
	}

	var (
		bestSubject    string
		bestCandidates []*model.Section
	)
	for i, subject := range node.remaining {
		valid := search.candidates(subject, node.chosen)
		if i == 0 || len(valid) < len(bestCandidates) {
			bestSubject, bestCandidates = subject, valid
		}
	}
	return bestSubject, bestCandidates
}

func (search *astarSearch) run(seed []*model.Section, subjects []string) ([]*model.Section, bool, error) {
	estimate, ok := search.estimate(seed, subjects)
	if !ok {
		return nil, false, nil
	}

	sequence := 0
	open := &openSet{{
		chosen:    slices.Clone(seed),
		remaining: slices.Clone(subjects),
		cost:      lo.SumBy(seed, cost),
		estimate:  estimate,
	}}
	closed := make(map[string]bool)

	for open.Len() > 0 {
		node := heap.Pop(open).(*searchNode)
		if len(node.remaining) == 0 {
			return node.chosen, true, nil
		}

		key := stateKey(node.chosen)
		if closed[key] {
			continue
		}
		closed[key] = true

		if err := search.budget.spend(); err != nil {
			return nil, false, err
		}

		subject, candidates := search.next(node)
		remaining := lo.Without(node.remaining, subject)
		for _, candidate := range candidates {
			chosen := append(slices.Clone(node.chosen), candidate)
			if closed[stateKey(chosen)] {
				continue
			}

			estimate, ok := search.estimate(chosen, remaining)
			if !ok {
				continue
			}

			sequence++
			heap.Push(open, &searchNode{
				chosen:    chosen,
				remaining: remaining,
				cost:      node.cost + cost(candidate),
				estimate:  estimate,
				sequence:  sequence,
			})
		}
	}
	return nil, false, nil
}
