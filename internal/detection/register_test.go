package detection

import (
	"testing"

	"github.com/atlas-quant/zoneengine/internal/registry"
)

func TestRegisterDefaultsInstallsAllFiveStrategies(t *testing.T) {
	reg := registry.New(nil)
	RegisterDefaults(reg, nil)

	names := reg.List()
	want := []string{"combined", "line_crossing", "preloaded", "threshold", "zero_crossing"}
	if len(names) != len(want) {
		t.Fatalf("expected %d strategies, got %d: %v", len(want), len(names), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected strategy %q at position %d, got %q", name, i, names[i])
		}
	}
}
