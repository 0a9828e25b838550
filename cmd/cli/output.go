package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/limaJavier/scheduling/pkg/model"
	"github.com/limaJavier/scheduling/pkg/service"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type blockOutput struct {
	Day      string `json:"day"`
	Interval string `json:"interval"`
}

type selectionOutput struct {
	Subject     string        `json:"subject"`
	Professor   string        `json:"professor"`
	Rating      float64       `json:"rating"`
	SourceGroup string        `json:"sourceGroup"`
	Blocks      []blockOutput `json:"blocks"`
}

type scheduleOutput struct {
	Group      string            `json:"group"`
	Algorithm  string            `json:"algorithm"`
	Strategy   string            `json:"strategy"`
	Feasible   bool              `json:"feasible"`
	Score      float64           `json:"score"`
	Selections []selectionOutput `json:"selections"`
}

type validationOutput struct {
	Valid     bool     `json:"valid"`
	Conflicts []string `json:"conflicts"`
}

type comparisonRowOutput struct {
	Algorithm  string  `json:"algorithm"`
	Selections int     `json:"selections"`
	Score      float64 `json:"score"`
	ElapsedMs  float64 `json:"elapsedMs"`
	Valid      bool    `json:"valid"`
}

type comparisonOutput struct {
	RunID string                `json:"runId"`
	Group string                `json:"group"`
	Rows  []comparisonRowOutput `json:"rows"`
}

func toScheduleOutput(schedule service.Schedule) scheduleOutput {
	return scheduleOutput{
		Group:     schedule.Group,
		Algorithm: schedule.Algorithm,
		Strategy:  schedule.Strategy,
		Feasible:  schedule.Feasible(),
		Score:     schedule.Score,
		Selections: lo.Map(schedule.Selections, func(selection model.Selection, _ int) selectionOutput {
			section := selection.Assigned
			blocks := make([]blockOutput, 0)
			for _, day := range section.Days() {
				for _, interval := range section.Intervals(day) {
					blocks = append(blocks, blockOutput{Day: day.String(), Interval: interval.Format()})
				}
			}
			return selectionOutput{
				Subject:     section.Subject(),
				Professor:   section.Professor().FullName(),
				Rating:      section.Rating(),
				SourceGroup: selection.SourceGroup,
				Blocks:      blocks,
			}
		}),
	}
}

func toComparisonOutput(comparison service.Comparison) comparisonOutput {
	return comparisonOutput{
		RunID: comparison.RunID,
		Group: comparison.Group,
		Rows: lo.Map(comparison.Rows, func(row service.ComparisonRow, _ int) comparisonRowOutput {
			return comparisonRowOutput{
				Algorithm:  row.Algorithm,
				Selections: row.Selections,
				Score:      row.Score,
				ElapsedMs:  float64(row.Elapsed.Microseconds()) / 1000,
				Valid:      row.Valid,
			}
		}),
	}
}

// write marshals value into the output file, or into the command's output when no file was given
func (a *app) write(cmd *cobra.Command, value any) error {
	bytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("an error occurred while building output json: %w", err)
	}

	if a.outFilePath == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bytes))
		return err
	}
	if err := os.WriteFile(a.outFilePath, bytes, 0o666); err != nil {
		return fmt.Errorf("an error occurred while writing to the output file: %w", err)
	}
	return nil
}
