package zonetypes

import (
	"time"

	"github.com/atlas-quant/zoneengine/pkg/zerrors"
)

// ZoneDetectionConfig configures a single detection strategy run. Rules
// is a free-form keyed collection whose required keys depend on the
// chosen strategy (spec.md §4.2); it is intentionally untyped (like
// the teacher's StrategyConfig.Parameters map[string]any) so each
// detection strategy can define its own rule surface without forcing a
// shared schema.
type ZoneDetectionConfig struct {
	MinDuration  int
	ZoneTypes    map[string]bool
	Rules        map[string]interface{}
	StrategyName string
	Metadata     map[string]interface{}
}

// DefaultZoneDetectionConfig returns the spec.md §3 defaults.
func DefaultZoneDetectionConfig(strategyName string) *ZoneDetectionConfig {
	return &ZoneDetectionConfig{
		MinDuration:  2,
		ZoneTypes:    map[string]bool{"bull": true, "bear": true},
		Rules:        make(map[string]interface{}),
		StrategyName: strategyName,
		Metadata:     make(map[string]interface{}),
	}
}

// AllowsType reports whether the given zone tag is accepted by this
// config, honoring the Preloaded strategy's "any" wildcard.
func (c *ZoneDetectionConfig) AllowsType(zoneType string) bool {
	if c.ZoneTypes["any"] {
		return true
	}
	return c.ZoneTypes[zoneType]
}

// IndicatorContext documents how a zone was detected: the sole
// mechanism (spec.md §3, §9) by which downstream feature extraction
// learns which column(s) to analyze.
type IndicatorContext struct {
	DetectionStrategy  string
	DetectionIndicator string // primary column name, "" if none
	SignalLine         string // secondary column name, "" if none
	DetectionRules     map[string]interface{}
	Extra              map[string]interface{} // strategy-specific extras (thresholds, logic, source, ...)
}

// ZoneInfo is one detected zone.
type ZoneInfo struct {
	ZoneID    int
	Type      string
	StartIdx  int
	EndIdx    int
	StartTime time.Time
	EndTime   time.Time
	Duration  int

	Data *BarTable // slice of the input table over [StartIdx, EndIdx]

	Features *ZoneFeatures // nil until feature extraction runs

	IndicatorContext IndicatorContext

	// SwingContext is an optional non-owning handle into a shared swing
	// context. The pipeline and analyzer do not set it: they pass the
	// shared context to feature extraction directly, so it is nil on the
	// zones they return. See spec.md §9: borrowed reference.
	SwingContext *SwingContext
}

// ZoneList is a slice of detected zones, kept in strictly increasing
// start_idx order per spec.md §8 property 2.
type ZoneList []*ZoneInfo

// Validate checks the structural invariants from spec.md §8, properties
// 1-3, against the table length n and the config that produced the list.
func (zs ZoneList) Validate(n int, cfg *ZoneDetectionConfig) error {
	prevEnd := -1
	for i, z := range zs {
		if z.ZoneID != i {
			return zerrors.Internal("zone_id out of order: want %d, got %d", i, z.ZoneID)
		}
		if z.StartIdx < 0 || z.StartIdx > z.EndIdx || z.EndIdx >= n {
			return zerrors.Internal("zone %d has invalid bounds [%d,%d) for table of length %d", z.ZoneID, z.StartIdx, z.EndIdx, n)
		}
		wantDuration := z.EndIdx - z.StartIdx + 1
		if z.Duration != wantDuration {
			return zerrors.Internal("zone %d duration %d does not match bounds (want %d)", z.ZoneID, z.Duration, wantDuration)
		}
		if cfg != nil && z.Duration < cfg.MinDuration {
			return zerrors.Internal("zone %d duration %d below min_duration %d", z.ZoneID, z.Duration, cfg.MinDuration)
		}
		if cfg != nil && !cfg.AllowsType(z.Type) {
			return zerrors.Internal("zone %d has type %q not in configured zone_types", z.ZoneID, z.Type)
		}
		if z.StartIdx <= prevEnd {
			return zerrors.Internal("zone %d overlaps or is out of order (start_idx %d <= previous end_idx %d)", z.ZoneID, z.StartIdx, prevEnd)
		}
		prevEnd = z.EndIdx
	}
	return nil
}
