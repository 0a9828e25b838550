package evaluation

import (
	"slices"
	"strings"
	"sync"

	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/samber/lo"
)

type cachedStrategy struct {
	base   Strategy
	scores sync.Map // Sorted section identifiers -> score
}

// NewCached memoizes the base strategy by the sorted identifiers of the evaluated sections.
// Only valid for pure strategies, which all the strategies of this package are
func NewCached(base Strategy) Strategy {
	return &cachedStrategy{base: base}
}

func (strategy *cachedStrategy) Evaluate(sections []*model.Section) float64 {
	key := cacheKey(sections)
	if score, ok := strategy.scores.Load(key); ok {
		return score.(float64)
	}

	score, _ := strategy.scores.LoadOrStore(key, strategy.base.Evaluate(sections))
	return score.(float64)
}

func (strategy *cachedStrategy) Name() string {
	return strategy.base.Name() + " (cached)"
}

func cacheKey(sections []*model.Section) string {
	ids := lo.Map(sections, func(section *model.Section, _ int) string { return section.ID() })
	slices.Sort(ids)
	return strings.Join(ids, "|")
}
