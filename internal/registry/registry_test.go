package registry

import (
	"testing"
	"time"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

type stubStrategy struct{ name string }

func (s stubStrategy) Name() string               { return s.name }
func (s stubStrategy) Description() string        { return "stub" }
func (s stubStrategy) SupportedZoneTypes() []string { return []string{"bull", "bear"} }
func (s stubStrategy) RequiredRuleKeys() []string { return nil }
func (s stubStrategy) DetectZones(*zonetypes.BarTable, *zonetypes.ZoneDetectionConfig) (zonetypes.ZoneList, error) {
	return nil, nil
}

func TestRegisterAndCreate(t *testing.T) {
	reg := New(nil)
	reg.Register("stub", func() DetectionStrategy { return stubStrategy{name: "stub"} })

	strategy, err := reg.Create("stub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy.Name() != "stub" {
		t.Fatalf("expected stub strategy, got %q", strategy.Name())
	}
}

func TestCreateUnknownStrategyListsKnownNames(t *testing.T) {
	reg := New(nil)
	reg.Register("a", func() DetectionStrategy { return stubStrategy{name: "a"} })
	reg.Register("b", func() DetectionStrategy { return stubStrategy{name: "b"} })

	_, err := reg.Create("missing")
	if err == nil {
		t.Fatalf("expected an error for unknown strategy")
	}
	msg := err.Error()
	if !containsAll(msg, "a", "b") {
		t.Fatalf("expected error to list known strategies, got %q", msg)
	}
}

func TestRegisterReplacesExisting(t *testing.T) {
	reg := New(nil)
	reg.Register("stub", func() DetectionStrategy { return stubStrategy{name: "first"} })
	reg.Register("stub", func() DetectionStrategy { return stubStrategy{name: "second"} })

	strategy, err := reg.Create("stub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy.Name() != "second" {
		t.Fatalf("expected replacement registration to win, got %q", strategy.Name())
	}
}

func TestListIsSorted(t *testing.T) {
	reg := New(nil)
	reg.Register("zebra", func() DetectionStrategy { return stubStrategy{name: "zebra"} })
	reg.Register("alpha", func() DetectionStrategy { return stubStrategy{name: "alpha"} })

	names := reg.List()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zebra" {
		t.Fatalf("expected sorted [alpha zebra], got %v", names)
	}
}

func TestValidateRulesReportsMissingKey(t *testing.T) {
	rules := map[string]interface{}{"present": true}
	err := ValidateRules("stub", []string{"present", "missing"}, rules)
	if err == nil {
		t.Fatalf("expected an error for missing rule key")
	}
}

func TestValidateColumnsReportsMissingColumn(t *testing.T) {
	table := zonetypes.NewBarTable()
	table.Timestamps = []time.Time{time.Now()}
	if err := table.SetColumn("present", []float64{1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ValidateColumns(table, "present"); err != nil {
		t.Fatalf("expected present column to validate, got %v", err)
	}
	if err := ValidateColumns(table, "missing"); err == nil {
		t.Fatalf("expected an error for missing column")
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !contains(s, sub) {
			return false
		}
	}
	return true
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
