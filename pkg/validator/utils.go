package validator

import (
	"slices"

	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/samber/lo"
)

func sortedGroups(byGroup map[string][]*model.Section) []string {
	groups := lo.Keys(byGroup)
	slices.Sort(groups)
	return groups
}
