// Package costofliving resolves U.S. postal codes to regional price parity
// records, degrading through region averages and static region estimates
// when a postal code is missing from the loaded table.
package costofliving

import (
	"github.com/iwvelando/col-retirement/pkg/constants"
)

// FallbackTier identifies which fallback policy produced a record.
type FallbackTier string

const (
	// TierNone marks a direct hit in the table.
	TierNone FallbackTier = ""
	// TierStateAverage marks the mean of the region's known records.
	TierStateAverage FallbackTier = constants.FallbackTierStateAverage
	// TierRegionEstimate marks a static region estimate or the national baseline.
	TierRegionEstimate FallbackTier = constants.FallbackTierRegionEstimate
)

// Record is the cost-of-living profile of one geographic unit. Indices are
// unitless with the national average at 100.
type Record struct {
	AllItems      float64 `json:"rpp_all"`
	Housing       float64 `json:"rpp_housing"`
	Goods         float64 `json:"rpp_goods"`
	OtherServices float64 `json:"rpp_other"`
	Region        string  `json:"state"`
	MetroAreaID   *string `json:"cbsa_code"`
}

// Table maps normalized 5-digit postal codes to records. It is never
// mutated once handed to a Resolver.
type Table map[string]Record

// Resolution is the outcome of resolving one postal code.
type Resolution struct {
	PostalCode   string       `json:"postalCode"`
	Record       *Record      `json:"record"`
	Found        bool         `json:"found"`
	IsFallback   bool         `json:"isFallback"`
	FallbackTier FallbackTier `json:"fallbackTier,omitempty"`
}

// BaselineRecord returns the national-average record used when nothing
// better is known about a region.
func BaselineRecord(region string) Record {
	return Record{
		AllItems:      constants.NationalBaselineIndex,
		Housing:       constants.NationalBaselineIndex,
		Goods:         constants.NationalBaselineIndex,
		OtherServices: constants.NationalBaselineIndex,
		Region:        region,
	}
}
