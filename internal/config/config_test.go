// SPDX-License-Identifier: MIT
package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/leontief/gras"
	"github.com/katalvlaran/leontief/internal/config"
	"github.com/smartystreets/goconvey/convey"
	"github.com/spf13/pflag"
)

var envKeys = []string{
	config.EnvConfigFile,
	"LEONTIEF_TABLE_CLASS",
	"LEONTIEF_FIRST_YEAR",
	"LEONTIEF_LAST_YEAR",
	"LEONTIEF_GRAS_TOLERANCE",
	"LEONTIEF_LOG_LEVEL",
}

func clearEnv() {
	for _, k := range envKeys {
		_ = os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leontief.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("table-class", config.DefaultTableClass, "")
	fs.Int("first-year", 0, "")
	fs.Int("last-year", 0, "")
	fs.Bool("sequential", false, "")

	return fs
}

func TestLoad(t *testing.T) {
	convey.Convey("Given the config loader", t, func() {
		clearEnv()
		defer clearEnv()

		convey.Convey("When nothing is set", func() {
			cfg, err := config.Load("", nil)

			convey.Convey("Then the defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TableClass, convey.ShouldEqual, config.DefaultTableClass)
				convey.So(cfg.LogLevel, convey.ShouldEqual, config.DefaultLogLevel)
				convey.So(cfg.GRASTolerance, convey.ShouldEqual, gras.DefaultTolerance)
				convey.So(cfg.GRASMaxIterations, convey.ShouldEqual, gras.DefaultMaxIterations)
				convey.So(cfg.Layout, convey.ShouldBeNil)
				convey.So(cfg.Years(), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a YAML file is given", func() {
			path := writeConfig(t, `
table_class: "12"
first_year: 2010
last_year: 2012
gras_max_iterations: 500
prior_uses_table: "prev/{year}/uses.xlsx"
`)
			cfg, err := config.Load(path, nil)

			convey.Convey("Then its keys override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TableClass, convey.ShouldEqual, "12")
				convey.So(cfg.GRASMaxIterations, convey.ShouldEqual, 500)
				convey.So(cfg.Years(), convey.ShouldResemble, []int{2010, 2011, 2012})
				uses, res := cfg.PriorTables(2011)
				convey.So(uses, convey.ShouldEqual, filepath.Join(".", "prev", "2011", "uses.xlsx"))
				convey.So(res, convey.ShouldEqual, filepath.Join(".", "resources_prior_2011.xlsx"))
			})
		})

		convey.Convey("When the file comes from LEONTIEF_CONFIG and env vars are set", func() {
			path := writeConfig(t, "table_class: \"12\"\nfirst_year: 2010\n")
			_ = os.Setenv(config.EnvConfigFile, path)
			_ = os.Setenv("LEONTIEF_TABLE_CLASS", "20")
			_ = os.Setenv("LEONTIEF_GRAS_TOLERANCE", "1e-6")
			cfg, err := config.Load("", nil)

			convey.Convey("Then env vars override the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TableClass, convey.ShouldEqual, "20")
				convey.So(cfg.FirstYear, convey.ShouldEqual, 2010)
				convey.So(cfg.GRASTolerance, convey.ShouldEqual, 1e-6)
			})
		})

		convey.Convey("When flags are changed", func() {
			_ = os.Setenv("LEONTIEF_TABLE_CLASS", "20")
			_ = os.Setenv("LEONTIEF_FIRST_YEAR", "2000")
			fs := flagSet()
			convey.So(fs.Parse([]string{"--table-class", "51", "--sequential"}), convey.ShouldBeNil)
			cfg, err := config.Load("", fs)

			convey.Convey("Then only the changed flags override env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TableClass, convey.ShouldEqual, "51")
				convey.So(cfg.Sequential, convey.ShouldBeTrue)
				convey.So(cfg.FirstYear, convey.ShouldEqual, 2000)
			})
		})

		convey.Convey("When a custom layout is given", func() {
			path := writeConfig(t, `
layout:
  class: custom
  products: 3
  sectors: 2
  demand_cols: 6
  supply_cols: 7
  value_added_rows: 5
  trade_rows: {first: 1, last: 1}
  transport_rows: {first: 2, last: 2}
  supply: {trade_margin: 1, transport_margin: 2, import_tax: 3, ipi: 4, icms: 5, other_taxes: 6, taxes: 6}
  demand: {exports: [0], government: 1, npish: 2, households: 3, gfcf: 4, stock_change: 5}
  value_added: {compensation: 1, operating_surplus: 2, total_production: 4, other_taxes: [3]}
`)
			cfg, err := config.Load(path, nil)

			convey.Convey("Then it replaces the preset", func() {
				convey.So(err, convey.ShouldBeNil)
				l, err := cfg.ResolveLayout()
				convey.So(err, convey.ShouldBeNil)
				convey.So(l.Class, convey.ShouldEqual, "custom")
				convey.So(l.Products, convey.ShouldEqual, 3)
				convey.So(l.Demand.Exports, convey.ShouldResemble, []int{0})
			})
		})

		convey.Convey("When values are invalid", func() {
			cases := map[string]string{
				"unknown class": "table_class: \"99\"\n",
				"bad tolerance": "gras_tolerance: -1\n",
				"bad level":     "log_level: loud\n",
				"bad years":     "first_year: 2012\nlast_year: 2010\n",
			}
			for name, body := range cases {
				_, err := config.Load(writeConfig(t, body), nil)
				convey.SoMsg(name, errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}
