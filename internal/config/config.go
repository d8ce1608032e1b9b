// SPDX-License-Identifier: MIT

// Package config loads run settings from defaults, a YAML file, LEONTIEF_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/leontief/gras"
	"github.com/katalvlaran/leontief/internal/logger"
	"github.com/katalvlaran/leontief/layout"
)

var (
	// ErrInvalidConfig indicates a loaded configuration that fails validation.
	ErrInvalidConfig = errors.New("config: invalid")

	// ErrLoadConfig indicates a source that could not be read or decoded.
	ErrLoadConfig = errors.New("config: load failed")
)

// YearPlaceholder is replaced by the year in table file names.
const YearPlaceholder = "{year}"

// Defaults.
const (
	DefaultLogLevel              = "info"
	DefaultLogFormat             = logger.FormatConsole
	DefaultTableClass            = "68"
	DefaultInputDir              = "."
	DefaultOutputDir             = "out"
	DefaultCurrentUsesTable      = "uses_" + YearPlaceholder + ".xlsx"
	DefaultCurrentResourcesTable = "resources_" + YearPlaceholder + ".xlsx"
	DefaultPriorUsesTable        = "uses_prior_" + YearPlaceholder + ".xlsx"
	DefaultPriorResourcesTable   = "resources_prior_" + YearPlaceholder + ".xlsx"
)

// Config is the flattened run configuration.
type Config struct {
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// TableClass selects a preset layout; Layout, when present, replaces it.
	TableClass string         `koanf:"table_class"`
	Layout     *layout.Layout `koanf:"layout"`

	InputDir  string `koanf:"input_dir"`
	OutputDir string `koanf:"output_dir"`
	FirstYear int    `koanf:"first_year"`
	LastYear  int    `koanf:"last_year"`

	// Table file names relative to InputDir, with YearPlaceholder for the year.
	CurrentUsesTable      string `koanf:"current_uses_table"`
	CurrentResourcesTable string `koanf:"current_resources_table"`
	PriorUsesTable        string `koanf:"prior_uses_table"`
	PriorResourcesTable   string `koanf:"prior_resources_table"`

	GRASTolerance     float64 `koanf:"gras_tolerance"`
	GRASMaxIterations int     `koanf:"gras_max_iterations"`
	Sequential        bool    `koanf:"sequential"`
	MetricsFile       string  `koanf:"metrics_file"`
}

// Defaults returns the configuration used when no source sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"log_level":               DefaultLogLevel,
		"log_format":              DefaultLogFormat,
		"table_class":             DefaultTableClass,
		"input_dir":               DefaultInputDir,
		"output_dir":              DefaultOutputDir,
		"first_year":              0,
		"last_year":               0,
		"current_uses_table":      DefaultCurrentUsesTable,
		"current_resources_table": DefaultCurrentResourcesTable,
		"prior_uses_table":        DefaultPriorUsesTable,
		"prior_resources_table":   DefaultPriorResourcesTable,
		"gras_tolerance":          gras.DefaultTolerance,
		"gras_max_iterations":     gras.DefaultMaxIterations,
		"sequential":              false,
		"metrics_file":            "",
	}
}

// Validate checks c and wraps every problem in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logger.New(c.Logger()); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ResolveLayout(); err != nil {
		errs = append(errs, err)
	}
	if c.GRASTolerance <= 0 {
		errs = append(errs, fmt.Errorf("gras_tolerance %g must be positive", c.GRASTolerance))
	}
	if c.GRASMaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("gras_max_iterations %d must be positive", c.GRASMaxIterations))
	}
	if c.FirstYear < 0 || c.LastYear < 0 {
		errs = append(errs, errors.New("years must not be negative"))
	}
	if c.FirstYear > 0 && c.LastYear > 0 && c.LastYear < c.FirstYear {
		errs = append(errs, fmt.Errorf("last_year %d before first_year %d", c.LastYear, c.FirstYear))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// Logger is the logger configuration.
func (c *Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat}
}

// ResolveLayout returns the custom layout when one is configured, otherwise the
// preset for TableClass.
func (c *Config) ResolveLayout() (layout.Layout, error) {
	if c.Layout != nil {
		if err := c.Layout.Validate(); err != nil {
			return layout.Layout{}, err
		}
		return *c.Layout, nil
	}

	return layout.Preset(c.TableClass)
}

// BalancerOptions converts the GRAS settings.
func (c *Config) BalancerOptions() []gras.Option {
	return []gras.Option{gras.WithTolerance(c.GRASTolerance), gras.WithMaxIterations(c.GRASMaxIterations)}
}

// Years lists FirstYear..LastYear; a single year when LastYear is unset.
func (c *Config) Years() []int {
	if c.FirstYear == 0 {
		return nil
	}
	last := c.LastYear
	if last < c.FirstYear {
		last = c.FirstYear
	}
	out := make([]int, 0, last-c.FirstYear+1)
	for y := c.FirstYear; y <= last; y++ {
		out = append(out, y)
	}

	return out
}

// CurrentTables returns the uses and resources workbook paths of year at its own prices.
func (c *Config) CurrentTables(year int) (uses, resources string) {
	return c.path(c.CurrentUsesTable, year), c.path(c.CurrentResourcesTable, year)
}

// PriorTables returns the uses and resources workbook paths of year at the previous
// year's prices.
func (c *Config) PriorTables(year int) (uses, resources string) {
	return c.path(c.PriorUsesTable, year), c.path(c.PriorResourcesTable, year)
}

func (c *Config) path(name string, year int) string {
	return filepath.Join(c.InputDir, strings.ReplaceAll(name, YearPlaceholder, strconv.Itoa(year)))
}
