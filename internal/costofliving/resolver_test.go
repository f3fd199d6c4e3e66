package costofliving

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/iwvelando/col-retirement/pkg/mathutil"
	"go.uber.org/zap"
)

func loadTestResolver(t *testing.T) *Resolver {
	t.Helper()
	resolver := NewResolver(zap.NewNop())
	src := Source{Path: filepath.Join("testdata", "col_by_zip.json")}
	if err := resolver.Load(context.Background(), src); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return resolver
}

func TestResolveBeforeLoad(t *testing.T) {
	resolver := NewResolver(nil)

	res := resolver.Resolve("10001")
	if res.Found {
		t.Fatal("expected Found=false before any table is loaded")
	}
	if res.Record != nil {
		t.Fatalf("expected nil record before load, got %+v", res.Record)
	}
	if res.PostalCode != "10001" {
		t.Errorf("PostalCode = %q, expected 10001", res.PostalCode)
	}
	if resolver.Status().State != StateLoading {
		t.Errorf("State = %s, expected loading", resolver.Status().State)
	}
}

func TestResolveAfterFailedLoad(t *testing.T) {
	resolver := NewResolver(zap.NewNop())
	err := resolver.Load(context.Background(), Source{Path: filepath.Join(t.TempDir(), "missing.json")})
	if err == nil {
		t.Fatal("expected error loading missing dataset")
	}

	status := resolver.Status()
	if status.State != StateError {
		t.Fatalf("State = %s, expected error", status.State)
	}
	if status.Message == "" {
		t.Error("expected error message in status")
	}
	if res := resolver.Resolve("10001"); res.Found || res.Record != nil {
		t.Errorf("expected unresolved result after failed load, got %+v", res)
	}
}

func TestResolveDirect(t *testing.T) {
	resolver := loadTestResolver(t)

	res := resolver.Resolve("10001")
	if !res.Found || res.IsFallback || res.FallbackTier != TierNone {
		t.Fatalf("expected direct hit, got %+v", res)
	}
	rec := res.Record
	if rec.AllItems != 125.6 || rec.Housing != 168.5 || rec.Goods != 109.2 || rec.OtherServices != 118.3 {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Region != "NY" {
		t.Errorf("Region = %q, expected NY", rec.Region)
	}
	if rec.MetroAreaID == nil || *rec.MetroAreaID != "35620" {
		t.Errorf("MetroAreaID = %v, expected 35620", rec.MetroAreaID)
	}
}

func TestResolveDirectWithNoisyInput(t *testing.T) {
	resolver := loadTestResolver(t)

	res := resolver.Resolve(" 60601-1234 ")
	if res.PostalCode != "60601" {
		t.Fatalf("PostalCode = %q, expected 60601", res.PostalCode)
	}
	if res.IsFallback {
		t.Errorf("expected direct hit for ZIP+4 input, got %+v", res)
	}
}

func TestResolveEveryStoredCodeIsDirect(t *testing.T) {
	table, err := LoadTable(context.Background(), Source{Path: filepath.Join("testdata", "col_by_zip.json")})
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	resolver := NewResolverFromTable(zap.NewNop(), table)

	for code, stored := range table {
		res := resolver.Resolve(code)
		if !res.Found || res.IsFallback {
			t.Errorf("Resolve(%s) expected direct hit, got %+v", code, res)
			continue
		}
		if res.Record.AllItems != stored.AllItems || res.Record.Region != stored.Region {
			t.Errorf("Resolve(%s) = %+v, expected %+v", code, *res.Record, stored)
		}
	}
}

func TestResolveStateAverage(t *testing.T) {
	resolver := loadTestResolver(t)

	// 14201 (Buffalo) is absent but New York has two stored records.
	res := resolver.Resolve("14201")
	if !res.Found || !res.IsFallback || res.FallbackTier != TierStateAverage {
		t.Fatalf("expected state-average fallback, got %+v", res)
	}

	rec := res.Record
	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"AllItems", rec.AllItems, 117.8},
		{"Housing", rec.Housing, 144.25},
		{"Goods", rec.Goods, 104.6},
		{"OtherServices", rec.OtherServices, 111.65},
	}
	for _, c := range checks {
		if !mathutil.WithinTolerance(c.got, c.expected, 1e-9) {
			t.Errorf("%s = %v, expected %v", c.name, c.got, c.expected)
		}
	}
	if rec.Region != "NY" {
		t.Errorf("Region = %q, expected NY", rec.Region)
	}
	if rec.MetroAreaID != nil {
		t.Errorf("expected nil MetroAreaID for averaged record, got %v", *rec.MetroAreaID)
	}
}

func TestResolveRegionEstimate(t *testing.T) {
	resolver := loadTestResolver(t)

	res := resolver.Resolve("78701")
	if !res.Found || !res.IsFallback || res.FallbackTier != TierRegionEstimate {
		t.Fatalf("expected region-estimate fallback, got %+v", res)
	}

	expected, _ := EstimateForRegion("TX")
	if *res.Record != expected {
		t.Errorf("Record = %+v, expected %+v", *res.Record, expected)
	}
}

func TestResolveNationalBaseline(t *testing.T) {
	resolver := loadTestResolver(t)

	for _, input := range []string{"00601", ""} {
		res := resolver.Resolve(input)
		if !res.Found || res.FallbackTier != TierRegionEstimate {
			t.Fatalf("Resolve(%q) expected region-estimate fallback, got %+v", input, res)
		}
		rec := res.Record
		if rec.AllItems != 100 || rec.Housing != 100 || rec.Goods != 100 || rec.OtherServices != 100 {
			t.Errorf("Resolve(%q) expected national baseline, got %+v", input, rec)
		}
	}
}

func TestRecordsForRegion(t *testing.T) {
	resolver := loadTestResolver(t)

	tests := []struct {
		region   string
		expected int
	}{
		{"NY", 2},
		{"ny", 2},
		{" Il ", 1},
		{"TX", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			records := resolver.RecordsForRegion(tt.region)
			if len(records) != tt.expected {
				t.Errorf("RecordsForRegion(%q) returned %d records, expected %d", tt.region, len(records), tt.expected)
			}
		})
	}
}

func TestRecordsForRegionReturnsCopy(t *testing.T) {
	resolver := loadTestResolver(t)

	records := resolver.RecordsForRegion("NY")
	records[0].AllItems = 1

	again := resolver.RecordsForRegion("NY")
	if again[0].AllItems == 1 {
		t.Fatal("mutating the returned slice changed the resolver's records")
	}
}

func TestRegionsAndAverage(t *testing.T) {
	resolver := loadTestResolver(t)

	regions := resolver.Regions()
	if len(regions) != 4 {
		t.Fatalf("expected 4 regions, got %d: %+v", len(regions), regions)
	}
	if regions[0].Region != "IL" || regions[len(regions)-1].Region != "OK" {
		t.Errorf("regions not sorted: %+v", regions)
	}

	avg, ok := resolver.AverageForRegion("ny")
	if !ok {
		t.Fatal("expected average for NY")
	}
	if !mathutil.WithinTolerance(avg.AllItems, 117.8, 1e-9) {
		t.Errorf("AverageForRegion(NY).AllItems = %v, expected 117.8", avg.AllItems)
	}
	if _, ok := resolver.AverageForRegion("TX"); ok {
		t.Error("expected no average for TX")
	}
}

func TestFailedReloadKeepsPreviousTable(t *testing.T) {
	resolver := loadTestResolver(t)

	err := resolver.Load(context.Background(), Source{})
	if !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if resolver.Status().State != StateError {
		t.Fatalf("expected error state after failed reload, got %s", resolver.Status().State)
	}
	if res := resolver.Resolve("10001"); !res.Found || res.IsFallback {
		t.Errorf("expected previous table to keep serving, got %+v", res)
	}
}

func TestLoadStateString(t *testing.T) {
	tests := map[LoadState]string{
		StateLoading:  "loading",
		StateReady:    "ready",
		StateError:    "error",
		LoadState(42): "LoadState(42)",
	}
	for state, expected := range tests {
		if state.String() != expected {
			t.Errorf("LoadState(%d).String() = %q, expected %q", int(state), state.String(), expected)
		}
	}
}
