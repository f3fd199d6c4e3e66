package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/col-retirement/internal/config"
	"github.com/iwvelando/col-retirement/internal/costofliving"
	"github.com/iwvelando/col-retirement/internal/estimate"
	"github.com/iwvelando/col-retirement/internal/logging"
	"github.com/iwvelando/col-retirement/pkg/constants"
	"github.com/iwvelando/col-retirement/pkg/output"
	"github.com/iwvelando/col-retirement/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("col-retirement", pflag.ExitOnError)
	flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	flags.String("current", "", "current postal code")
	flags.String("target", "", "target postal code")
	flags.Int("years", 0, "years until retirement")
	flags.Float64("housing", 0, "monthly housing spending")
	flags.Float64("groceries", 0, "monthly groceries spending")
	flags.Float64("health", 0, "monthly health spending")
	flags.Float64("other", 0, "monthly other spending")
	flags.Float64("withdrawal-rate", constants.DefaultWithdrawalRate, "safe withdrawal rate as a decimal")
	flags.Float64("inflation-rate", constants.DefaultInflationRate, "annual inflation rate as a decimal")
	flags.Float64("return-rate", constants.DefaultExpectedAnnualReturn, "expected annual investment return as a decimal")
	flags.Float64("current-savings", 0, "savings already invested")
	flags.String("dataset", "", "path to the cost-of-living dataset")
	flags.String("dataset-url", "", "URL of the cost-of-living dataset, preferred over --dataset")
	flags.Duration("dataset-timeout", constants.DefaultDatasetTimeout, "timeout for fetching the dataset")
	flags.String("output-format", "", "type of output override: pretty, csv, json")
	flags.String("log-level", "", "log level override (debug, info, warn, error)")
	flags.String("log-format", "", "log format override (json, console)")
	flags.String("log-output-file", "", "write logs to this file")
	return flags
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("{\"op\": \"main\", \"level\": \"warn\", \"msg\": \"failed to load .env\", \"error\": \"%v\"}\n", err)
	}

	flags := newFlagSet()
	_ = flags.Parse(os.Args[1:])

	// An explicit --config must exist; the default location is optional.
	configLocation := ""
	if flags.Changed("config") {
		configLocation, _ = flags.GetString("config")
	}

	conf, err := config.LoadConfiguration(configLocation, flags)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, "")
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resolver := costofliving.NewResolver(logger)
	if err := resolver.Load(ctx, conf.Dataset.Source()); err != nil {
		logger.Fatal("failed to load cost-of-living dataset",
			zap.String("op", "main"),
			zap.String("path", conf.Dataset.Path),
			zap.String("url", conf.Dataset.URL),
			zap.Error(err),
		)
	}

	report, err := estimate.NewEstimator(logger, resolver).Estimate(conf.Scenario.ToScenario())
	if err != nil {
		logger.Fatal("failed to compute comparison",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range report.Warnings {
		logger.Warn(warning,
			zap.String("op", "main"),
			zap.String("reportId", report.ID),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, report)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, report)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, report)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
