package features

import (
	"github.com/atlas-quant/zoneengine/internal/swing"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// ZigZagSwingStrategy delegates to the shared swing package's zone
// aggregation over the run's precomputed SwingContext.
type ZigZagSwingStrategy struct{}

func NewZigZagSwingStrategy() SwingSubStrategy { return ZigZagSwingStrategy{} }

func (ZigZagSwingStrategy) Name() string { return "zigzag" }

func (ZigZagSwingStrategy) Compute(view ZoneView) (zonetypes.SwingMetrics, error) {
	if view.SwingContext == nil {
		return zonetypes.SwingMetrics{NoSwingContext: true}, nil
	}
	return swing.AggregateForZone(view.SwingContext, view.Zone.StartIdx, view.Zone.EndIdx), nil
}
