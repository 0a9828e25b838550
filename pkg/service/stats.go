package service

import (
	"github.com/samber/lo"
)

type CatalogStats struct {
	Sections          int            `json:"sections"`
	Groups            int            `json:"groups"`
	Subjects          int            `json:"subjects"`
	Professors        int            `json:"professors"`
	BestCoverageGroup string         `json:"bestCoverageGroup"`
	Coverage          map[string]int `json:"coverage"` // Group to number of distinct subjects
}

func (s *ScheduleService) CatalogStats() CatalogStats {
	best, _ := s.catalog.BestCoverageGroup()
	return CatalogStats{
		Sections:          s.catalog.Len(),
		Groups:            len(s.catalog.Groups()),
		Subjects:          len(s.catalog.SubjectNames()),
		Professors:        len(s.catalog.Professors()),
		BestCoverageGroup: best,
		Coverage:          lo.MapValues(s.catalog.Coverage(), func(subjects []string, _ string) int { return len(subjects) }),
	}
}
