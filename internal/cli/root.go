// SPDX-License-Identifier: MIT

// Package cli wires the leontief commands: configuration, logging, metrics and the
// workbook adapters around the estimate and deflate packages.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/leontief/internal/config"
	"github.com/katalvlaran/leontief/internal/logger"
	"github.com/katalvlaran/leontief/internal/metrics"
	"github.com/katalvlaran/leontief/internal/workbook"
	"github.com/katalvlaran/leontief/layout"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// ErrUsage indicates missing or contradictory command arguments.
var ErrUsage = errors.New("usage")

// app is the state shared by the commands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	layout  layout.Layout
	log     logger.Logger
	metrics *metrics.Manager
	runID   string
}

// commands that run without configuration.
var bare = map[string]bool{"help": true, "completion": true, "__complete": true, "version": true, "layouts": true}

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Nop()}

	root := &cobra.Command{
		Use:   "leontief",
		Short: "Input-Output table estimation and chained deflation",
		Long: `leontief estimates Input-Output tables from supply-use tables, converts them
to sector space with the Leontief inverse, and deflates multi-year series to
constant prices with GRAS-balanced chained indices.`,
		Version:           Version,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, config.FlagConfigFile, "", "config file (default: $"+config.EnvConfigFile+")")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	pf.String("log-format", config.DefaultLogFormat, "log format (console|json)")
	pf.String("table-class", config.DefaultTableClass, "preset table-size class")
	pf.String("input-dir", config.DefaultInputDir, "directory holding the supply-use workbooks")
	pf.String("output-dir", config.DefaultOutputDir, "directory for result workbooks")
	pf.Float64("gras-tolerance", 0, "GRAS convergence tolerance")
	pf.Int("gras-max-iterations", 0, "GRAS iteration cap")
	pf.Bool("sequential", false, "build current and prior-year views one after the other")
	pf.String("metrics-file", "", "write Prometheus metrics to this textfile")

	root.AddCommand(
		newEstimateCmd(a),
		newDeflateCmd(a),
		newCompileCmd(a),
		newBalanceCmd(a),
		newLayoutsCmd(),
		newVersionCmd(),
	)

	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if bare[cmd.Name()] {
		return nil
	}
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	l, err := cfg.ResolveLayout()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logger())
	if err != nil {
		return err
	}

	a.cfg, a.layout = cfg, l
	a.runID = uuid.NewString()
	a.log = log.With(logger.String("command", cmd.Name()))
	a.metrics = metrics.NewManager()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithRunID(ctx, a.runID)
	cmd.SetContext(ctx)
	a.log.Debug(ctx, "configuration loaded",
		logger.String("table_class", l.Class),
		logger.String("input_dir", cfg.InputDir),
		logger.String("output_dir", cfg.OutputDir),
	)

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.cfg == nil {
		return nil
	}
	if a.cfg.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			return err
		}
		a.log.Info(ctx, "metrics written", logger.String("path", a.cfg.MetricsFile))
	}
	_ = a.log.Sync()

	return nil
}

// save writes sheets to name inside the output directory and returns the path.
func (a *app) save(ctx context.Context, name string, sheets []workbook.Sheet) (string, error) {
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("output dir: %w", err)
	}
	path := filepath.Join(a.cfg.OutputDir, name)

	w := workbook.NewWriter(a.runID)
	defer func() { _ = w.Close() }()
	if err := w.AddAll(sheets...); err != nil {
		return "", err
	}
	if err := w.SaveAs(path); err != nil {
		return "", err
	}
	a.log.Info(ctx, "workbook written", logger.String("path", path), logger.Int("sheets", len(sheets)))

	return path, nil
}
