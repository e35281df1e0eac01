// Package pipeline wires detection, swing context construction, and
// analysis into one ZoneAnalysisPipeline.Run call, plus a fluent
// builder surface over it (spec.md §4.6). Grounded on the teacher's
// internal/orchestrator.TradingOrchestrator.Start/Stop lifecycle
// wiring, which assembles independently-built components (event bus,
// regime detector, position sizer, ...) into one coordinated run the
// same way this pipeline assembles detection + swing + analysis.
package pipeline

import "github.com/atlas-quant/zoneengine/pkg/zonetypes"

// IndicatorResult is what the external indicator factory returns:
// columns aligned to input rows, plus free-form metadata (spec.md §6).
type IndicatorResult struct {
	Columns  map[string][]float64
	Metadata map[string]interface{}
}

// Indicator is produced by the factory and knows how to realize itself
// over a bar table.
type Indicator interface {
	Calculate(table *zonetypes.BarTable) (IndicatorResult, error)
}

// IndicatorFactory creates an Indicator from a source/name/params
// triple (spec.md §4.6, §6). The core never introspects params; it
// only joins the resulting columns.
type IndicatorFactory interface {
	Create(source zonetypes.IndicatorSource, name string, params map[string]interface{}) (Indicator, error)
}
