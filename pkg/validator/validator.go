package validator

import (
	"fmt"

	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/samber/lo"
)

type Conflict struct {
	Group  string // Empty for cross-group conflicts
	First  *model.Section
	Second *model.Section
}

func (conflict Conflict) String() string {
	if conflict.Group == "" {
		return fmt.Sprintf("%v (%v) conflicts with %v (%v)",
			conflict.First.Subject(), conflict.First.Group(),
			conflict.Second.Subject(), conflict.Second.Group(),
		)
	}
	return fmt.Sprintf("conflict in %v: %v <-> %v", conflict.Group, conflict.First.Subject(), conflict.Second.Subject())
}

type Result struct {
	Conflicts []Conflict
}

func (result Result) Valid() bool {
	return len(result.Conflicts) == 0
}

// Messages renders every conflict as a human-readable line
func (result Result) Messages() []string {
	return lo.Map(result.Conflicts, func(conflict Conflict, _ int) string { return conflict.String() })
}

// Validate audits the sections group by group: two sections of the same group must never overlap.
// Groups are visited alphabetically and sections keep their input order, so the report is deterministic
func Validate(sections []*model.Section) Result {
	byGroup := lo.GroupBy(sections, func(section *model.Section) string { return section.Group() })

	conflicts := make([]Conflict, 0)
	for _, group := range sortedGroups(byGroup) {
		members := byGroup[group]
		for i := range len(members) - 1 {
			for j := i + 1; j < len(members); j++ {
				if model.Conflicts(members[i], members[j]) {
					conflicts = append(conflicts, Conflict{Group: group, First: members[i], Second: members[j]})
				}
			}
		}
	}
	return Result{Conflicts: conflicts}
}

// ValidatePair compares two sections regardless of their groups
func ValidatePair(first, second *model.Section) Result {
	if !model.Conflicts(first, second) {
		return Result{Conflicts: []Conflict{}}
	}
	return Result{Conflicts: []Conflict{{First: first, Second: second}}}
}

// ValidateSelections audits a built schedule: every assigned section belongs to the target group, so any overlap is a conflict
func ValidateSelections(selections []model.Selection) Result {
	return Validate(model.AssignedSections(selections))
}
