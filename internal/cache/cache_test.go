package cache

import (
	"context"
	"testing"
	"time"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/shopspring/decimal"
)

func buildTable(n int) *zonetypes.BarTable {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := zonetypes.NewBarTable()
	for i := 0; i < n; i++ {
		table.Timestamps = append(table.Timestamps, t0.Add(time.Duration(i)*time.Hour))
		d := decimal.NewFromFloat(100 + float64(i))
		table.Open = append(table.Open, d)
		table.High = append(table.High, d)
		table.Low = append(table.Low, d)
		table.Close = append(table.Close, d)
	}
	return table
}

func testConfig() *zonetypes.ZoneAnalysisConfig {
	return &zonetypes.ZoneAnalysisConfig{
		ZoneDetection: zonetypes.DefaultZoneDetectionConfig("zero_crossing"),
	}
}

func TestKeyIsStableAcrossCalls(t *testing.T) {
	table := buildTable(10)
	cfg := testConfig()
	k1, err := Key(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := Key(table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 != k2 {
		t.Fatalf("expected stable key, got %q and %q", k1, k2)
	}
}

func TestKeyChangesWithData(t *testing.T) {
	cfg := testConfig()
	k1, _ := Key(buildTable(10), cfg)
	k2, _ := Key(buildTable(11), cfg)
	if k1 == k2 {
		t.Fatalf("expected different keys for different data")
	}
}

func TestNonSerializableRulesFailKeyComputation(t *testing.T) {
	cfg := testConfig()
	cfg.ZoneDetection.Rules = map[string]interface{}{
		"conditions": []func(*zonetypes.BarTable) ([]bool, error){
			func(*zonetypes.BarTable) ([]bool, error) { return nil, nil },
		},
	}
	if _, err := Key(buildTable(5), cfg); err == nil {
		t.Fatalf("expected error for non-serializable rule value")
	}
}

func TestLoadSaveRoundTripWithMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	c := New(store, nil)
	table := buildTable(10)
	cfg := testConfig()
	ctx := context.Background()

	if _, found, err := c.Load(ctx, table, cfg); err != nil || found {
		t.Fatalf("expected miss before save, found=%v err=%v", found, err)
	}

	result := zonetypes.Empty()
	if err := c.Save(ctx, table, cfg, result, time.Hour); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, found, err := c.Load(ctx, table, cfg)
	if err != nil || !found {
		t.Fatalf("expected hit after save, found=%v err=%v", found, err)
	}
	if loaded == nil {
		t.Fatalf("expected non-nil loaded result")
	}
}

func TestLoadInvalidatesStaleVersion(t *testing.T) {
	store := NewMemoryStore()
	c := New(store, nil)
	table := buildTable(5)
	cfg := testConfig()
	ctx := context.Background()

	key, _ := Key(table, cfg)
	stalePayload := Payload{CacheVersion: CurrentVersion - 1, Result: zonetypes.Empty()}
	_ = store.Put(ctx, key, stalePayload, 0)

	_, found, err := c.Load(ctx, table, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected stale version to be treated as a miss")
	}
	if _, stillFound, _ := store.Get(ctx, key); stillFound {
		t.Fatalf("expected stale entry to be invalidated from the store")
	}
}

func TestNilStoreDisablesCaching(t *testing.T) {
	c := New(nil, nil)
	ctx := context.Background()
	table := buildTable(5)
	cfg := testConfig()

	if err := c.Save(ctx, table, cfg, zonetypes.Empty(), time.Hour); err != nil {
		t.Fatalf("expected no-op save with nil store, got %v", err)
	}
	if _, found, err := c.Load(ctx, table, cfg); err != nil || found {
		t.Fatalf("expected miss with nil store, found=%v err=%v", found, err)
	}
}
