// Package features implements the per-zone feature extraction pipeline
// (spec.md §4.4): basic price metrics, oscillator amplitude/slope, ATR
// normalization, price-indicator correlation, peak/trough counting,
// type-specific timing metrics, and the five pluggable sub-strategies.
// Grounded on the teacher's internal/strategy package, whose
// BaseStrategy + per-strategy-type split is mirrored here as one
// interface per sub-strategy kind instead of one big Strategy
// interface, since each kind produces an independently optional metric
// block.
package features

import "github.com/atlas-quant/zoneengine/pkg/zonetypes"

// ZoneView is the read-only input every sub-strategy receives: the
// zone itself, the primary/secondary column names resolved by the
// extractor, and the shared swing context (nil if not configured).
type ZoneView struct {
	Zone             *zonetypes.ZoneInfo
	PrimaryIndicator string
	SignalLine       string
	SwingContext     *zonetypes.SwingContext
}

// SwingSubStrategy produces SwingMetrics for a zone.
type SwingSubStrategy interface {
	Name() string
	Compute(view ZoneView) (zonetypes.SwingMetrics, error)
}

// ShapeSubStrategy produces ShapeMetrics from the primary oscillator.
type ShapeSubStrategy interface {
	Name() string
	Compute(view ZoneView) (zonetypes.ShapeMetrics, error)
}

// DivergenceSubStrategy produces DivergenceMetrics from primary +
// optional signal line.
type DivergenceSubStrategy interface {
	Name() string
	Compute(view ZoneView) (zonetypes.DivergenceMetrics, error)
}

// VolatilitySubStrategy produces VolatilityMetrics over the zone
// window.
type VolatilitySubStrategy interface {
	Name() string
	Compute(view ZoneView) (zonetypes.VolatilityMetrics, error)
}

// VolumeSubStrategy produces VolumeMetrics using the volume column and
// optionally the primary indicator.
type VolumeSubStrategy interface {
	Name() string
	Compute(view ZoneView) (zonetypes.VolumeMetrics, error)
}

// SubStrategySet bundles whichever sub-strategies are configured; a nil
// field means that sub-strategy was not configured (spec.md §4.4 item
// 8).
type SubStrategySet struct {
	Swing      SwingSubStrategy
	Shape      ShapeSubStrategy
	Divergence DivergenceSubStrategy
	Volatility VolatilitySubStrategy
	Volume     VolumeSubStrategy
}
