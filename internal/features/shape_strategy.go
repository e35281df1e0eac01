package features

import (
	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/atlas-quant/zoneengine/pkg/zstats"
)

// DefaultShapeStrategy summarizes the shape of the primary oscillator
// column across a zone window: distribution shape (skew/kurtosis) plus
// two bar-level shape ratios (SPEC_FULL.md §4 supplement).
type DefaultShapeStrategy struct {
	plateauTolerancePct float64
}

func NewDefaultShapeStrategy(params *zonetypes.ShapeStrategyParams) ShapeSubStrategy {
	tol := 0.001
	if params != nil && params.PlateauTolerancePct > 0 {
		tol = params.PlateauTolerancePct
	}
	return DefaultShapeStrategy{plateauTolerancePct: tol}
}

func (DefaultShapeStrategy) Name() string { return "shape_default" }

func (s DefaultShapeStrategy) Compute(view ZoneView) (zonetypes.ShapeMetrics, error) {
	col, ok := view.Zone.Data.Column(view.PrimaryIndicator)
	if !ok || len(col) == 0 {
		return zonetypes.ShapeMetrics{}, zerrors.FeatureExtraction("shape strategy: column %q not found in zone data", view.PrimaryIndicator)
	}

	scale := zstats.MaxAbs(col)
	if scale == 0 {
		scale = 1
	}
	plateauCount := 0
	monotonicCount := 0
	for i := 1; i < len(col); i++ {
		d := col[i] - col[i-1]
		if absF(d) <= s.plateauTolerancePct*scale {
			plateauCount++
		}
		if d >= 0 {
			monotonicCount++
		}
	}
	n := len(col) - 1
	var plateauRatio, monotonicRunPct float64
	if n > 0 {
		plateauRatio = float64(plateauCount) / float64(n)
		up := float64(monotonicCount) / float64(n)
		down := 1 - up
		monotonicRunPct = up
		if down > up {
			monotonicRunPct = down
		}
	}

	return zonetypes.ShapeMetrics{
		Skewness:        zstats.Skewness(col),
		Kurtosis:        zstats.Kurtosis(col),
		PlateauRatio:    plateauRatio,
		MonotonicRunPct: monotonicRunPct,
	}, nil
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
