package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/limaJavier/scheduling/internal/config"
	"github.com/limaJavier/scheduling/internal/logger"
	"github.com/limaJavier/scheduling/pkg/builder"
	"github.com/limaJavier/scheduling/pkg/cache"
	"github.com/limaJavier/scheduling/pkg/model"
	"github.com/limaJavier/scheduling/pkg/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ResultType int

const (
	solved ResultType = iota
	infeasible
)

var resultTypes = map[ResultType]string{
	solved:     "solved",
	infeasible: "infeasible",
}

type TestMetadata struct {
	Name       string
	Group      string
	Sections   int
	Groups     int
	Subjects   int
	Professors int
	catalog    *model.Catalog
}

type BenchmarkResult struct {
	Algorithm  string
	Test       TestMetadata
	Cold       time.Duration
	Warm       time.Duration
	Selections int
	Score      float64
	Result     ResultType
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var directory, outFile string

	cmd := &cobra.Command{
		Use:          "benchmark",
		Short:        "Run every algorithm over the catalogs of a directory and write a CSV report",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			tests, err := getTests(directory)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			results, err := run(tests, cache.NewMetrics(registry), cfg.Search.NodeBudget, log)
			if err != nil {
				return err
			}
			logCacheMetrics(registry, log)

			return toCsv(results, outFile)
		},
	}

	cmd.Flags().StringVar(&directory, "dir", "../../testdata", "Directory holding the catalog files")
	cmd.Flags().StringVar(&outFile, "out", "benchmark_results.csv", "Path of the CSV report")
	return cmd
}

func getTests(directory string) ([]TestMetadata, error) {
	files, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	tests := make([]TestMetadata, 0)
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		filename := filepath.Join(directory, file.Name())
		catalog, err := model.CatalogFromJson(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot parse catalog file %v: %w", filename, err)
		}

		group, _ := catalog.BestCoverageGroup()
		tests = append(tests, TestMetadata{
			Name:       filename,
			Group:      group,
			Sections:   catalog.Len(),
			Groups:     len(catalog.Groups()),
			Subjects:   len(catalog.SubjectNames()),
			Professors: len(catalog.Professors()),
			catalog:    catalog,
		})
	}
	return tests, nil
}

// run builds every test with every algorithm twice: once cold and once served by the cache
func run(tests []TestMetadata, metrics *cache.Metrics, nodeBudget int, log *zap.Logger) ([]BenchmarkResult, error) {
	results := make([]BenchmarkResult, 0, len(tests)*len(builder.Names()))

	for _, test := range tests {
		scheduleService, err := service.NewScheduleService(test.catalog, cache.New(cache.WithMetrics(metrics)), log, service.Config{NodeBudget: nodeBudget})
		if err != nil {
			return nil, err
		}

		for _, algorithm := range builder.Names() {
			log.Info("benchmarking", zap.String("test", test.Name), zap.String("algorithm", algorithm), zap.String("group", test.Group))

			start := time.Now()
			schedule, err := scheduleService.Create(test.Group, "", algorithm)
			cold := time.Since(start)
			if err != nil {
				return nil, fmt.Errorf("an error occurred at test %q using algorithm %q: %w", test.Name, algorithm, err)
			}

			start = time.Now()
			if _, err := scheduleService.Create(test.Group, "", algorithm); err != nil {
				return nil, err
			}
			warm := time.Since(start)

			results = append(results, BenchmarkResult{
				Algorithm:  algorithm,
				Test:       test,
				Cold:       cold,
				Warm:       warm,
				Selections: len(schedule.Selections),
				Score:      schedule.Score,
				Result:     lo.Ternary(schedule.Feasible(), solved, infeasible),
			})
		}
	}
	return results, nil
}

func logCacheMetrics(registry *prometheus.Registry, log *zap.Logger) {
	families, err := registry.Gather()
	if err != nil {
		log.Warn("cannot gather cache metrics", zap.Error(err))
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if counter := metric.GetCounter(); counter != nil {
				log.Info("cache metric", zap.String("name", family.GetName()), zap.Float64("value", counter.GetValue()))
			}
		}
	}
}

func toCsv(results []BenchmarkResult, outFile string) error {
	file, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"Algorithm", "Test", "Group", "Sections", "Groups", "Subjects", "Professors", "Cold(ms)", "Warm(ms)", "Selections", "Score", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Algorithm,
			result.Test.Name,
			result.Test.Group,
			fmt.Sprintf("%d", result.Test.Sections),
			fmt.Sprintf("%d", result.Test.Groups),
			fmt.Sprintf("%d", result.Test.Subjects),
			fmt.Sprintf("%d", result.Test.Professors),
			formatMillis(result.Cold),
			formatMillis(result.Warm),
			fmt.Sprintf("%d", result.Selections),
			fmt.Sprintf("%.3f", result.Score),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMillis(duration time.Duration) string {
	return fmt.Sprintf("%.3f", float64(duration.Microseconds())/1000)
}
