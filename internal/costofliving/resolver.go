package costofliving

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iwvelando/col-retirement/pkg/mathutil"
	"go.uber.org/zap"
)

// RegionSummary describes how many postal codes a region has in the table.
type RegionSummary struct {
	Region  string `json:"region"`
	Records int    `json:"records"`
}

// Resolver maps arbitrary postal code input to a Resolution. It is safe for
// concurrent use; the table it holds is replaced wholesale, never mutated.
type Resolver struct {
	logger *zap.Logger

	mu       sync.RWMutex
	state    LoadState
	message  string
	table    Table
	byRegion map[string][]Record
}

// NewResolver creates a resolver in the loading state.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger, state: StateLoading}
}

// NewResolverFromTable creates a resolver that is immediately ready.
func NewResolverFromTable(logger *zap.Logger, table Table) *Resolver {
	r := NewResolver(logger)
	r.SetTable(table)
	return r
}

// Load reads the dataset described by src and installs it. On failure the
// status moves to StateError; a previously installed table stays in use.
func (r *Resolver) Load(ctx context.Context, src Source) error {
	r.mu.Lock()
	r.state = StateLoading
	r.message = ""
	r.mu.Unlock()

	table, err := LoadTable(ctx, src)
	if err != nil {
		r.SetLoadError(err)
		return err
	}
	r.SetTable(table)
	return nil
}

// SetTable installs a table and marks the resolver ready.
func (r *Resolver) SetTable(table Table) {
	if table == nil {
		table = Table{}
	}

	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	byRegion := make(map[string][]Record)
	for _, code := range codes {
		rec := table[code]
		key := strings.ToUpper(rec.Region)
		byRegion[key] = append(byRegion[key], rec)
	}

	r.mu.Lock()
	r.table = table
	r.byRegion = byRegion
	r.state = StateReady
	r.message = ""
	r.mu.Unlock()

	r.logger.Info("cost-of-living table installed",
		zap.String("op", "costofliving.SetTable"),
		zap.Int("postalCodes", len(table)),
		zap.Int("regions", len(byRegion)),
	)
}

// SetLoadError records a failed load attempt.
func (r *Resolver) SetLoadError(err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	r.mu.Lock()
	r.state = StateError
	r.message = msg
	r.mu.Unlock()

	r.logger.Error("cost-of-living table failed to load",
		zap.String("op", "costofliving.SetLoadError"),
		zap.String("error", msg),
	)
}

// Status returns the current load status.
func (r *Resolver) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Status{State: r.state, Message: r.message, Records: len(r.table)}
}

// Resolve maps raw postal code input to the best available record. Until a
// table has been installed it returns Found=false with no record, which means
// the data is not ready rather than the postal code being invalid.
func (r *Resolver) Resolve(raw string) Resolution {
	code := NormalizePostalCode(raw)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.table == nil {
		return Resolution{PostalCode: code}
	}

	if rec, ok := r.table[code]; ok {
		return Resolution{PostalCode: code, Record: &rec, Found: true}
	}

	region, known := RegionForPostalCode(code)
	if known {
		if records := r.byRegion[region]; len(records) > 0 {
			avg := averageRecords(region, records)
			r.logger.Debug("resolved postal code from region average",
				zap.String("op", "costofliving.Resolve"),
				zap.String("postalCode", code),
				zap.String("region", region),
				zap.Int("samples", len(records)),
			)
			return Resolution{PostalCode: code, Record: &avg, Found: true, IsFallback: true, FallbackTier: TierStateAverage}
		}
	}

	rec := BaselineRecord(region)
	if known {
		if estimate, ok := EstimateForRegion(region); ok {
			rec = estimate
		}
	}
	r.logger.Debug("resolved postal code from region estimate",
		zap.String("op", "costofliving.Resolve"),
		zap.String("postalCode", code),
		zap.String("region", region),
	)
	return Resolution{PostalCode: code, Record: &rec, Found: true, IsFallback: true, FallbackTier: TierRegionEstimate}
}

// RecordsForRegion returns every directly loaded record for a region, matched
// case-insensitively. It returns nil when there are none.
func (r *Resolver) RecordsForRegion(region string) []Record {
	key := strings.ToUpper(strings.TrimSpace(region))

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.byRegion[key]
	if len(records) == 0 {
		return nil
	}
	return append([]Record(nil), records...)
}

// Regions lists every region present in the table with its record count.
func (r *Resolver) Regions() []RegionSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]RegionSummary, 0, len(r.byRegion))
	for region, records := range r.byRegion {
		summaries = append(summaries, RegionSummary{Region: region, Records: len(records)})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Region < summaries[j].Region
	})
	return summaries
}

// AverageForRegion returns the rounded mean record of a region's directly
// loaded records.
func (r *Resolver) AverageForRegion(region string) (Record, bool) {
	records := r.RecordsForRegion(region)
	if len(records) == 0 {
		return Record{}, false
	}
	return averageRecords(strings.ToUpper(strings.TrimSpace(region)), records), true
}

func averageRecords(region string, records []Record) Record {
	all := make([]float64, len(records))
	housing := make([]float64, len(records))
	goods := make([]float64, len(records))
	other := make([]float64, len(records))
	for i, rec := range records {
		all[i] = rec.AllItems
		housing[i] = rec.Housing
		goods[i] = rec.Goods
		other[i] = rec.OtherServices
	}

	return Record{
		AllItems:      mathutil.Round(mathutil.Mean(all)),
		Housing:       mathutil.Round(mathutil.Mean(housing)),
		Goods:         mathutil.Round(mathutil.Mean(goods)),
		OtherServices: mathutil.Round(mathutil.Mean(other)),
		Region:        region,
	}
}
