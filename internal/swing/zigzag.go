// Package swing builds the shared SwingContext (spec.md §4.3) and
// aggregates per-zone swing metrics (spec.md §4.4.1). The pivot
// algorithm is a ZigZag-style reversal detector: opaque to callers per
// the contract, grounded on the teacher's internal/regime package,
// which classifies market structure from the same high/low/close
// inputs using comparable threshold-crossing logic.
package swing

import (
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// BuildZigZag constructs a SwingContext over the full table: a pivot is
// confirmed once price reverses by at least deviation (a fraction, e.g.
// 0.01 for 1%) from the last pivot in the opposite direction. This is
// the standard ZigZag formulation (spec.md §4.3 names it as an
// acceptable opaque algorithm).
func BuildZigZag(table *zonetypes.BarTable, deviation float64) *zonetypes.SwingContext {
	n := table.Len()
	if n == 0 {
		return zonetypes.NewSwingContext(nil, 0, "zigzag", map[string]interface{}{"deviation": deviation})
	}
	high := table.HighFloats()
	low := table.LowFloats()

	points := make([]zonetypes.SwingPoint, 0)
	nextID := 0

	// Seed with the first bar's high as the first peak candidate; the
	// first confirmed pivot is therefore always a peak.
	lastPivotIdx := 0
	lastPivotPrice := high[0]
	trackingHigh := true // true while searching for the next peak

	for i := 1; i < n; i++ {
		if trackingHigh {
			if high[i] > lastPivotPrice {
				lastPivotPrice = high[i]
				lastPivotIdx = i
				continue
			}
			if lastPivotPrice > 0 && (lastPivotPrice-low[i])/lastPivotPrice >= deviation {
				points = append(points, zonetypes.SwingPoint{
					PointID: nextID, Timestamp: table.Timestamps[lastPivotIdx], Index: lastPivotIdx,
					Price: lastPivotPrice, Kind: zonetypes.SwingPeak,
				})
				nextID++
				trackingHigh = false
				lastPivotPrice = low[i]
				lastPivotIdx = i
			}
			continue
		}
		if low[i] < lastPivotPrice {
			lastPivotPrice = low[i]
			lastPivotIdx = i
			continue
		}
		if lastPivotPrice > 0 && (high[i]-lastPivotPrice)/lastPivotPrice >= deviation {
			points = append(points, zonetypes.SwingPoint{
				PointID: nextID, Timestamp: table.Timestamps[lastPivotIdx], Index: lastPivotIdx,
				Price: lastPivotPrice, Kind: zonetypes.SwingTrough,
			})
			nextID++
			trackingHigh = true
			lastPivotPrice = high[i]
			lastPivotIdx = i
		}
	}

	// Trailing provisional pivot: include it so a zone at the very end
	// of the table still sees its nearest structure.
	kind := zonetypes.SwingTrough
	if trackingHigh {
		kind = zonetypes.SwingPeak
	}
	points = append(points, zonetypes.SwingPoint{
		PointID: nextID, Timestamp: table.Timestamps[lastPivotIdx], Index: lastPivotIdx,
		Price: lastPivotPrice, Kind: kind,
	})

	params := map[string]interface{}{"deviation": deviation}
	for i := range points {
		points[i].StrategyName = "zigzag"
		points[i].StrategyParams = params
	}
	return zonetypes.NewSwingContext(points, n, "zigzag", params)
}

// AutoThresholds computes the per-zone scaling factors spec.md §4.3
// defines: relative_range = (max(high)-min(low))/mid_price, then
// swing/peak-prominence/pivot deviations scaled off it. Degenerate
// zones (empty, zero mid-price) fall back to baseDeviation for all
// three.
func AutoThresholds(zone *zonetypes.BarTable, baseDeviation float64) (swingDeviation, peakProminence, pivotDeviation float64) {
	if baseDeviation <= 0 {
		baseDeviation = 0.01
	}
	if zone.Len() == 0 {
		return baseDeviation, baseDeviation, baseDeviation
	}
	high := zone.HighFloats()
	low := zone.LowFloats()
	maxHigh, minLow := high[0], low[0]
	for i := 1; i < len(high); i++ {
		if high[i] > maxHigh {
			maxHigh = high[i]
		}
		if low[i] < minLow {
			minLow = low[i]
		}
	}
	midPrice := (maxHigh + minLow) / 2
	if midPrice == 0 {
		return baseDeviation, baseDeviation, baseDeviation
	}
	relativeRange := (maxHigh - minLow) / midPrice

	swingDeviation = maxF(baseDeviation, relativeRange*0.5)
	peakProminence = maxF(baseDeviation, relativeRange*0.3)
	pivotDeviation = maxF(baseDeviation, relativeRange*0.25)
	return swingDeviation, peakProminence, pivotDeviation
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
