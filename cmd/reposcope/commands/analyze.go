// Package commands implements CLI command handlers for reposcope.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/optqo/reposcope/internal/config"
	"github.com/optqo/reposcope/internal/observability"
	"github.com/optqo/reposcope/pkg/analyzers"
	"github.com/optqo/reposcope/pkg/analyzers/common"
	"github.com/optqo/reposcope/pkg/orchestrator"
	"github.com/optqo/reposcope/pkg/report"
	"github.com/optqo/reposcope/pkg/report/htmlreport"
	"github.com/optqo/reposcope/pkg/report/terminal"
	"github.com/optqo/reposcope/pkg/synthesis"
	"github.com/optqo/reposcope/pkg/task"
)

// ErrNoTasksSelected is returned when neither a bundle nor an explicit
// task list yields any tasks.
var ErrNoTasksSelected = errors.New("no tasks selected")

// AnalyzeCommand holds configuration and dependencies for the analyze
// command.
type AnalyzeCommand struct {
	configPath string
	bundle     string
	tasks      []string
	format     string
	output     string
	timeout    time.Duration
	retries    int
	verbose    bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	ac := &AnalyzeCommand{}

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Run an analysis bundle against a directory",
		Long: `Analyze runs the selected analyzer tasks against a source tree and
synthesizes the settled results into one report. Individual task
failures degrade into report defaults; the run itself still succeeds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			return ac.Run(cmd, root)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&ac.configPath, "config", "c", "", "config file path")
	flags.StringVarP(&ac.bundle, "bundle", "b", "", "task bundle: basic, standard, full")
	flags.StringSliceVarP(&ac.tasks, "tasks", "t", nil, "explicit task list, overrides --bundle")
	flags.StringVarP(&ac.format, "format", "f", "", "output format: text, json, yaml, html")
	flags.StringVarP(&ac.output, "output", "o", "", "output file (default stdout)")
	flags.DurationVar(&ac.timeout, "timeout", 0, "run deadline (0 uses the configured default)")
	flags.IntVar(&ac.retries, "retries", -1, "extra attempts per failed task")
	flags.BoolVarP(&ac.verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

// Run executes one analysis and emits the report.
func (ac *AnalyzeCommand) Run(cmd *cobra.Command, root string) error {
	cfg, err := config.LoadConfig(ac.configPath)
	if err != nil {
		return err
	}

	ac.applyFlags(cfg)

	registry := analyzers.DefaultRegistry()

	taskIDs, err := selectTasks(registry, cfg)
	if err != nil {
		return err
	}

	logLevel := slog.LevelWarn
	if ac.verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))
	metrics := observability.NewRunMetrics(prometheus.NewRegistry())

	orch := orchestrator.New(orchestrator.Config{
		Registry:    registry,
		Synthesizer: synthesis.New(cfg.Weights),
		Options:     scanOptions(cfg),
		Timeout:     cfg.Analysis.Timeout,
		Retries:     cfg.Analysis.Retries,
		Logger:      logger,
		Metrics:     metrics,
	})

	result, err := orch.Run(cmd.Context(), root, taskIDs)
	if err != nil {
		return err
	}

	return ac.emit(cmd, cfg, result.Report)
}

// applyFlags overlays explicit flags onto the loaded configuration.
func (ac *AnalyzeCommand) applyFlags(cfg *config.Config) {
	if ac.bundle != "" {
		cfg.Analysis.Bundle = ac.bundle
	}

	if len(ac.tasks) > 0 {
		cfg.Analysis.Tasks = ac.tasks
	}

	if ac.format != "" {
		cfg.Output.Format = ac.format
	}

	if ac.output != "" {
		cfg.Output.Path = ac.output
	}

	if ac.timeout > 0 {
		cfg.Analysis.Timeout = ac.timeout
	}

	if ac.retries >= 0 {
		cfg.Analysis.Retries = ac.retries
	}
}

// selectTasks resolves the explicit task list, or the bundle when no
// list is given, to task identifiers.
func selectTasks(registry *task.Registry, cfg *config.Config) ([]string, error) {
	if len(cfg.Analysis.Tasks) > 0 {
		if _, err := registry.Resolve(cfg.Analysis.Tasks); err != nil {
			return nil, err
		}

		return cfg.Analysis.Tasks, nil
	}

	descriptors, err := registry.Bundle(cfg.Analysis.Bundle)
	if err != nil {
		return nil, err
	}

	if len(descriptors) == 0 {
		return nil, ErrNoTasksSelected
	}

	ids := make([]string, 0, len(descriptors))
	for _, descriptor := range descriptors {
		ids = append(ids, descriptor.ID)
	}

	return ids, nil
}

func scanOptions(cfg *config.Config) task.Options {
	return task.Options{
		common.OptMaxDepth:         cfg.Scan.MaxDepth,
		common.OptMaxEntriesPerDir: cfg.Scan.MaxEntriesPerDir,
		common.OptMaxSampledFiles:  cfg.Scan.MaxSampledFiles,
		common.OptMaxSampleBytes:   cfg.Scan.MaxSampleBytes,
	}
}

func (ac *AnalyzeCommand) emit(cmd *cobra.Command, cfg *config.Config, data *report.Data) error {
	var out io.Writer = cmd.OutOrStdout()

	if cfg.Output.Path != "" {
		file, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()

		out = file
	}

	switch cfg.Output.Format {
	case config.FormatJSON:
		return report.WriteJSON(out, data)
	case config.FormatYAML:
		return report.WriteYAML(out, data)
	case config.FormatHTML:
		return htmlreport.New().Emit(out, data)
	default:
		return terminal.New(out).Render(data)
	}
}
