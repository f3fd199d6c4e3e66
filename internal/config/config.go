// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/col-retirement/pkg/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for col-retirement.
type Configuration struct {
	Dataset  DatasetConfig  `yaml:"dataset,omitempty"`
	Scenario ScenarioConfig `yaml:"scenario,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
}

// DatasetConfig locates the cost-of-living dataset. URL wins over Path.
type DatasetConfig struct {
	Path    string        `yaml:"path,omitempty"`
	URL     string        `yaml:"url,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ScenarioConfig is the comparison to run.
type ScenarioConfig struct {
	CurrentPostalCode    string            `yaml:"currentPostalCode"`
	TargetPostalCode     string            `yaml:"targetPostalCode"`
	YearsUntilRetirement int               `yaml:"yearsUntilRetirement"`
	Spending             SpendingConfig    `yaml:"spending"`
	Assumptions          AssumptionsConfig `yaml:"assumptions"`
}

// SpendingConfig holds monthly spending in USD.
type SpendingConfig struct {
	Housing   float64 `yaml:"housing"`
	Groceries float64 `yaml:"groceries"`
	Health    float64 `yaml:"health"`
	Other     float64 `yaml:"other"`
}

// AssumptionsConfig holds the financial rates as decimals.
type AssumptionsConfig struct {
	WithdrawalRate       float64 `yaml:"withdrawalRate"`
	InflationRate        float64 `yaml:"inflationRate"`
	ExpectedAnnualReturn float64 `yaml:"expectedAnnualReturn"`
	CurrentSavings       float64 `yaml:"currentSavings"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"current":         "scenario.currentPostalCode",
	"target":          "scenario.targetPostalCode",
	"years":           "scenario.yearsUntilRetirement",
	"housing":         "scenario.spending.housing",
	"groceries":       "scenario.spending.groceries",
	"health":          "scenario.spending.health",
	"other":           "scenario.spending.other",
	"withdrawal-rate": "scenario.assumptions.withdrawalRate",
	"inflation-rate":  "scenario.assumptions.inflationRate",
	"return-rate":     "scenario.assumptions.expectedAnnualReturn",
	"current-savings": "scenario.assumptions.currentSavings",
	"dataset":         "dataset.path",
	"dataset-url":     "dataset.url",
	"dataset-timeout": "dataset.timeout",
	"output-format":   "output.format",
	"log-level":       "logging.level",
	"log-format":      "logging.format",
	"log-output-file": "logging.outputFile",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")

	v.SetDefault("dataset.path", constants.DefaultDatasetPath)
	v.SetDefault("dataset.url", "")
	v.SetDefault("dataset.timeout", constants.DefaultDatasetTimeout)
	v.SetDefault("scenario.currentPostalCode", "")
	v.SetDefault("scenario.targetPostalCode", "")
	v.SetDefault("scenario.yearsUntilRetirement", 0)
	v.SetDefault("scenario.spending.housing", 0.0)
	v.SetDefault("scenario.spending.groceries", 0.0)
	v.SetDefault("scenario.spending.health", 0.0)
	v.SetDefault("scenario.spending.other", 0.0)
	v.SetDefault("scenario.assumptions.withdrawalRate", constants.DefaultWithdrawalRate)
	v.SetDefault("scenario.assumptions.inflationRate", constants.DefaultInflationRate)
	v.SetDefault("scenario.assumptions.expectedAnnualReturn", constants.DefaultExpectedAnnualReturn)
	v.SetDefault("scenario.assumptions.currentSavings", 0.0)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)

	return v
}

// LoadConfiguration loads the YAML-formatted configuration at configPath,
// overlays COLRET_* environment variables and then any flags the user set.
// A missing file at the default location is not an error; the defaults and
// overrides are used alone.
func LoadConfiguration(configPath string, flags *pflag.FlagSet) (*Configuration, error) {
	v := newViper()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("unable to bind flag %s: %w", name, err)
			}
		}
	}

	explicit := configPath != ""
	if !explicit {
		configPath = constants.DefaultConfigFile
	}

	if _, err := os.Stat(configPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	} else {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r. Only the
// defaults apply underneath it; the environment is not consulted.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}
