package swing

import "github.com/atlas-quant/zoneengine/pkg/zonetypes"

// AggregateForZone computes SwingMetrics from the pivots sliced out of
// ctx for [startIdx, endIdx] (spec.md §4.4.1). A nil ctx, or a zone with
// fewer than two pivots, yields the all-zero/null form.
func AggregateForZone(ctx *zonetypes.SwingContext, startIdx, endIdx int) zonetypes.SwingMetrics {
	if ctx == nil {
		return zonetypes.SwingMetrics{NoSwingContext: true}
	}
	points := ctx.Slice(startIdx, endIdx)
	metrics := zonetypes.SwingMetrics{
		StrategyName:   ctx.StrategyName,
		StrategyParams: ctx.StrategyParams,
	}
	if len(points) < 2 {
		return metrics
	}

	var rallySum, dropSum float64
	var rallyDurSum, dropDurSum float64
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if prev.Price == 0 {
			continue
		}
		legReturn := cur.Price/prev.Price - 1
		duration := float64(cur.Index - prev.Index)
		metrics.NumSwings++
		if cur.Kind == zonetypes.SwingPeak {
			metrics.RallyCount++
			rallySum += legReturn
			rallyDurSum += duration
		} else {
			metrics.DropCount++
			dropSum += legReturn
			dropDurSum += duration
		}
	}

	if metrics.RallyCount > 0 {
		metrics.AvgRally = rallySum / float64(metrics.RallyCount)
		metrics.AvgRallyDuration = rallyDurSum / float64(metrics.RallyCount)
	}
	if metrics.DropCount > 0 {
		metrics.AvgDrop = dropSum / float64(metrics.DropCount)
		metrics.AvgDropDuration = dropDurSum / float64(metrics.DropCount)
	}
	if metrics.DropCount > 0 {
		metrics.RallyToDropRatio = float64(metrics.RallyCount) / float64(metrics.DropCount)
	}
	return metrics
}
