package service

import (
	"time"

	"github.com/limaJavier/scheduling/pkg/builder"
	"github.com/limaJavier/scheduling/pkg/evaluation"
	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ComparisonRow struct {
	Algorithm  string
	Selections int
	Score      float64
	Elapsed    time.Duration
	Valid      bool
}

type Comparison struct {
	RunID string
	Group string
	Rows  []ComparisonRow
}

// Compare runs every algorithm for group outside the cache and scores each result with the minutes-weighted strategy.
// Builders only read the catalog, so they run concurrently
func (s *ScheduleService) Compare(group string) (Comparison, error) {
	runID := uuid.NewString()
	strategy := evaluation.NewMinutesWeighted()
	names := builder.Names()
	rows := make([]ComparisonRow, len(names))

	var builds errgroup.Group
	for i, name := range names {
		builds.Go(func() error {
			scheduleBuilder, err := builder.ByName(name, s.builderOptions(strategy)...)
			if err != nil {
				return err
			}

			start := time.Now()
			selections, err := scheduleBuilder.Build(s.catalog, group)
			elapsed := time.Since(start)
			if err != nil {
				return err
			}

			rows[i] = ComparisonRow{
				Algorithm:  scheduleBuilder.Name(),
				Selections: len(selections),
				Score:      strategy.Evaluate(model.AssignedSections(selections)),
				Elapsed:    elapsed,
				Valid:      len(selections) > 0 && scheduleBuilder.Verify(selections, s.catalog.RequiredSubjectsForBestGroup()),
			}
			return nil
		})
	}
	if err := builds.Wait(); err != nil {
		return Comparison{}, err
	}

	s.logger.Info("algorithms compared", zap.String("run_id", runID), zap.String("group", group), zap.Int("algorithms", len(rows)))
	return Comparison{RunID: runID, Group: group, Rows: rows}, nil
}
