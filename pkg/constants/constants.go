// Package constants provides shared constants for the col-retirement application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for rounding index averages and currency (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Price parity constants
const (
	// NationalBaselineIndex is the price parity of the national average.
	NationalBaselineIndex = 100.0

	// PostalCodeLength is the number of digits in a normalized postal code.
	PostalCodeLength = 5
)

// Fallback tier labels
const (
	// FallbackTierStateAverage marks a record averaged from the region's known postal codes.
	FallbackTierStateAverage = "state-average"

	// FallbackTierRegionEstimate marks a record taken from the static region estimates.
	FallbackTierRegionEstimate = "region-estimate"
)

// Assumption defaults and suggested bounds
const (
	DefaultWithdrawalRate       = 0.04
	DefaultInflationRate        = 0.025
	DefaultExpectedAnnualReturn = 0.07

	MinSuggestedWithdrawalRate = 0.01
	MaxSuggestedWithdrawalRate = 0.15
	MinSuggestedInflationRate  = 0.0
	MaxSuggestedInflationRate  = 0.10
	MinSuggestedAnnualReturn   = 0.0
	MaxSuggestedAnnualReturn   = 0.15
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "COLRET"
)

// Dataset defaults
const (
	// DefaultDatasetPath is the default location of the cost-of-living asset
	DefaultDatasetPath = "col_by_zip.json"

	// DefaultDatasetTimeout bounds a remote dataset fetch
	DefaultDatasetTimeout = 30 * time.Second
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP server
	DefaultShutdownTimeout = 10 * time.Second
)
