package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Catalog is an immutable collection of sections indexed by group and by subject name.
// It is safe to share among goroutines since nothing mutates it after construction
type Catalog struct {
	sections  []*Section
	byGroup   map[string][]*Section
	bySubject map[string][]*Section
	options   map[string][]*Section // Sections per subject sorted by descending rating (stable w.r.t. source order)
	coverage  map[string]map[string]bool
}

func NewCatalog(sections []*Section) (*Catalog, error) {
	// Section IDs key search states and memoized scores, so they must be unique
	seen := make(map[string]bool, len(sections))
	for i, section := range sections {
		if section == nil {
			return nil, fmt.Errorf("%w: section at position %d", ErrMissingField, i)
		}
		if seen[section.ID()] {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateSection, section.ID())
		}
		seen[section.ID()] = true
	}

	catalog := &Catalog{
		sections:  slices.Clone(sections),
		byGroup:   lo.GroupBy(sections, func(section *Section) string { return section.group }),
		bySubject: lo.GroupBy(sections, func(section *Section) string { return section.subject }),
		options:   make(map[string][]*Section),
		coverage:  make(map[string]map[string]bool),
	}

	for subject, subjectSections := range catalog.bySubject {
		sorted := slices.Clone(subjectSections)
		slices.SortStableFunc(sorted, byDescendingRating)
		catalog.options[subject] = sorted
	}

	for _, section := range sections {
		if _, ok := catalog.coverage[section.group]; !ok {
			catalog.coverage[section.group] = make(map[string]bool)
		}
		catalog.coverage[section.group][section.subject] = true
	}

	return catalog, nil
}

func byDescendingRating(a, b *Section) int {
	if a.Rating() > b.Rating() {
		return -1
	} else if a.Rating() < b.Rating() {
		return 1
	}
	return 0
}

func (catalog *Catalog) Sections() []*Section {
	return slices.Clone(catalog.sections)
}

func (catalog *Catalog) Len() int {
	return len(catalog.sections)
}

func (catalog *Catalog) ByGroup(group string) []*Section {
	return slices.Clone(catalog.byGroup[group])
}

func (catalog *Catalog) BySubject(subject string) []*Section {
	return slices.Clone(catalog.bySubject[subject])
}

// Options returns the candidate sections for a subject, best rated first
func (catalog *Catalog) Options(subject string) []*Section {
	return slices.Clone(catalog.options[subject])
}

// OptionCount is the number of candidate sections for a subject
func (catalog *Catalog) OptionCount(subject string) int {
	return len(catalog.options[subject])
}

// BestRating returns the highest rating among the subject's sections, false when the subject has none
func (catalog *Catalog) BestRating(subject string) (float64, bool) {
	options := catalog.options[subject]
	if len(options) == 0 {
		return 0, false
	}
	return options[0].Rating(), true
}

func (catalog *Catalog) Groups() []string {
	groups := lo.Keys(catalog.byGroup)
	slices.Sort(groups)
	return groups
}

func (catalog *Catalog) SubjectNames() []string {
	subjects := lo.Keys(catalog.bySubject)
	slices.Sort(subjects)
	return subjects
}

func (catalog *Catalog) Professors() []string {
	professors := lo.Uniq(lo.Map(catalog.sections, func(section *Section, _ int) string {
		return section.professor.FullName()
	}))
	slices.Sort(professors)
	return professors
}

// Coverage maps every group to the sorted names of the subjects it offers
func (catalog *Catalog) Coverage() map[string][]string {
	coverage := make(map[string][]string, len(catalog.coverage))
	for group, subjects := range catalog.coverage {
		coverage[group] = sortedKeys(subjects)
	}
	return coverage
}

// BestCoverageGroup returns the group offering the most distinct subjects.
// Ties are broken by the group's total number of sections and then by group name, so the answer is deterministic
func (catalog *Catalog) BestCoverageGroup() (string, bool) {
	groups := catalog.Groups()
	if len(groups) == 0 {
		return "", false
	}

	best := groups[0]
	for _, group := range groups[1:] {
		coverage, bestCoverage := len(catalog.coverage[group]), len(catalog.coverage[best])
		if coverage > bestCoverage ||
			(coverage == bestCoverage && len(catalog.byGroup[group]) > len(catalog.byGroup[best])) {
			best = group
		}
	}
	return best, true
}

// RequiredSubjectsForBestGroup is the default target subject set: the subjects offered by the best-coverage group
func (catalog *Catalog) RequiredSubjectsForBestGroup() []string {
	group, ok := catalog.BestCoverageGroup()
	if !ok {
		return []string{}
	}
	return sortedKeys(catalog.coverage[group])
}

func (catalog *Catalog) String() string {
	return fmt.Sprintf("Catalog{sections: %d, groups: [%v]}", len(catalog.sections), strings.Join(catalog.Groups(), ", "))
}

func sortedKeys(set map[string]bool) []string {
	keys := lo.Keys(set)
	slices.Sort(keys)
	return keys
}
