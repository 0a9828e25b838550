package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/limaJavier/scheduling/internal/config"
	"github.com/limaJavier/scheduling/internal/logger"
	"github.com/limaJavier/scheduling/pkg/cache"
	"github.com/limaJavier/scheduling/pkg/model"
	"github.com/limaJavier/scheduling/pkg/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes follow SAT-solver conventions
const (
	exitSuccess       = 10
	exitUnverified    = 15
	exitUnsatisfiable = 20
)

type exitCode int

func (code exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(code))
}

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *service.ScheduleService

	filePath    string
	outFilePath string
}

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()

	var code exitCode
	switch {
	case errors.As(err, &code):
		os.Exit(int(code))
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "schedule",
		Short:         "Build conflict-free course schedules from a section catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.filePath, "file", "", "Path to the catalog file (defaults to CATALOG_FILE)")
	rootCmd.PersistentFlags().StringVar(&a.outFilePath, "out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")

	rootCmd.AddCommand(
		newBuildCmd(a),
		newPinnedCmd(a),
		newValidateCmd(a),
		newCompareCmd(a),
		newStatsCmd(a),
	)
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load configuration: %w", err)
	}
	a.cfg = cfg

	a.logger, err = logger.New(cfg)
	if err != nil {
		return fmt.Errorf("cannot build logger: %w", err)
	}

	if a.filePath == "" {
		a.filePath = cfg.CatalogFile
	}
	if a.filePath == "" {
		return errors.New("a catalog file must be specified")
	}

	catalog, err := model.CatalogFromJson(a.filePath)
	if err != nil {
		return fmt.Errorf("cannot load catalog: %w", err)
	}
	a.logger.Debug("catalog loaded", zap.String("file", a.filePath), zap.Int("sections", catalog.Len()))

	var scheduleCache *cache.ScheduleCache
	if cfg.Cache.Enabled {
		scheduleCache = cache.New(cache.WithTTL(cfg.Cache.TTL), cache.WithLogger(a.logger))
	}

	a.service, err = service.NewScheduleService(catalog, scheduleCache, a.logger, service.Config{
		NodeBudget:       cfg.Search.NodeBudget,
		DefaultStrategy:  cfg.Search.DefaultStrategy,
		DefaultAlgorithm: cfg.Search.DefaultAlgorithm,
	})
	return err
}
