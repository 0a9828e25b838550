package main

import (
	"fmt"
	"strings"

	"github.com/limaJavier/scheduling/pkg/evaluation"
	"github.com/limaJavier/scheduling/pkg/service"
	"github.com/limaJavier/scheduling/pkg/validator"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBuildCmd(a *app) *cobra.Command {
	var group, strategy, algorithm string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a schedule for a group",
		Long: `Build a schedule for a group. Allowed algorithms are:
- "maxcoverage" (exhaustive backtracking, the first complete schedule wins),
- "astar" (best-first search, minimizes the rating loss) and
- "optimized" (single greedy pass, may leave subjects out).
Allowed strategies are "simple", "weighted", "maxmin" and "harmonic"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := evaluation.ByName(strategy); err != nil && strategy != "" {
				a.logger.Warn("unknown strategy, falling back", zap.String("strategy", strategy), zap.String("fallback", evaluation.Weighted))
				strategy = evaluation.Weighted
			}

			schedule, err := a.service.Create(group, strategy, algorithm)
			if err != nil {
				return err
			}
			return a.emitSchedule(cmd, schedule)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Target group name")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Evaluation strategy (defaults to DEFAULT_STRATEGY)")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "Construction algorithm (defaults to DEFAULT_ALGORITHM)")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func newPinnedCmd(a *app) *cobra.Command {
	var (
		group string
		pairs []string
	)

	cmd := &cobra.Command{
		Use:   "pinned",
		Short: "Build a schedule that keeps the given professors for the given subjects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pins, err := parsePins(pairs)
			if err != nil {
				return err
			}

			schedule, err := a.service.CreatePinned(group, pins)
			if err != nil {
				return err
			}
			return a.emitSchedule(cmd, schedule)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Target group name")
	cmd.Flags().StringArrayVar(&pairs, "pin", nil, `Subject-professor pin as "SUBJECT=Professor Name" (repeatable)`)
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report overlapping sections within each group of the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := a.service.Validate()
			if err := a.write(cmd, validationOutput{Valid: result.Valid(), Conflicts: result.Messages()}); err != nil {
				return err
			}
			if !result.Valid() {
				return exitCode(exitUnverified)
			}
			return nil
		},
	}
}

func newCompareCmd(a *app) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every algorithm for a group and compare the results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			comparison, err := a.service.Compare(group)
			if err != nil {
				return err
			}
			return a.write(cmd, toComparisonOutput(comparison))
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Target group name")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.write(cmd, a.service.CatalogStats())
		},
	}
}

// emitSchedule writes the schedule and maps the outcome to an exit code
func (a *app) emitSchedule(cmd *cobra.Command, schedule service.Schedule) error {
	if !schedule.Feasible() {
		if err := a.write(cmd, toScheduleOutput(schedule)); err != nil {
			return err
		}
		return exitCode(exitUnsatisfiable)
	}

	if result := validator.ValidateSelections(schedule.Selections); !result.Valid() {
		a.logger.Error("built schedule has overlapping sections", zap.Strings("conflicts", result.Messages()))
		return exitCode(exitUnverified)
	}

	if err := a.write(cmd, toScheduleOutput(schedule)); err != nil {
		return err
	}
	return exitCode(exitSuccess)
}

func parsePins(pairs []string) (map[string]string, error) {
	pins := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		subject, professor, ok := strings.Cut(pair, "=")
		subject, professor = strings.TrimSpace(subject), strings.TrimSpace(professor)
		if !ok || subject == "" || professor == "" {
			return nil, fmt.Errorf("invalid pin %q, expected SUBJECT=Professor", pair)
		}
		pins[subject] = professor
	}
	return pins, nil
}
