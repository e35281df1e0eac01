package features

import (
	"fmt"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/atlas-quant/zoneengine/pkg/zstats"
	"go.uber.org/zap"
)

var ohlcvTimeColumns = map[string]bool{
	"open": true, "high": true, "low": true, "close": true,
	"volume": true, "timestamp": true, "time": true, "atr": true,
}

// Extractor runs the per-zone feature pipeline (spec.md §4.4). It is
// stateless aside from its logger and configured sub-strategies, so a
// single instance is safe to reuse (and to call concurrently) across
// zones of the same run.
type Extractor struct {
	logger     *zap.Logger
	strategies SubStrategySet
}

// NewExtractor builds an extractor with the given sub-strategy set
// (any field may be nil to skip that sub-strategy).
func NewExtractor(logger *zap.Logger, strategies SubStrategySet) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger, strategies: strategies}
}

// Extract runs the full pipeline for one zone. Every step is
// best-effort: a failure leaves the corresponding field null/zero and
// appends a debug note rather than aborting (spec.md §4.4 preamble),
// except step 1 (duration below min_duration), which fails the zone.
func (e *Extractor) Extract(zone *zonetypes.ZoneInfo, swingCtx *zonetypes.SwingContext, minDuration int) (*zonetypes.ZoneFeatures, error) {
	data := zone.Data
	if data.Len() < minDuration {
		return nil, fmt.Errorf("zone %d duration %d below min_duration %d", zone.ZoneID, data.Len(), minDuration)
	}

	result := &zonetypes.ZoneFeatures{
		ZoneID:   zone.ZoneID,
		ZoneType: zone.Type,
		Duration: zone.Duration,
	}

	close := data.CloseFloats()
	high := data.HighFloats()
	low := data.LowFloats()

	// Step 1: basic price metrics.
	startPrice, endPrice := close[0], close[len(close)-1]
	result.StartPrice = startPrice
	result.EndPrice = endPrice
	if startPrice != 0 {
		result.PriceReturn = endPrice/startPrice - 1
	}
	minLow := zstats.Min(low)
	if minLow != 0 {
		result.PriceRangePct = zstats.Max(high)/minLow - 1
	}

	// Step 2: primary indicator resolution.
	primary, wasFallback := resolvePrimaryIndicator(data, zone.IndicatorContext.DetectionIndicator)
	result.Metadata.ResolvedIndicatorName = primary
	result.Metadata.IndicatorWasFallback = wasFallback

	var osc []float64
	if primary != "" {
		osc, _ = data.Column(primary)
	}

	// Step 3: oscillator amplitude & slope.
	if len(osc) > 0 {
		result.HistAmplitude = zstats.Max(osc) - zstats.Min(osc)
		if diffs := zstats.Diff(osc); len(diffs) > 0 {
			result.HistSlope = zstats.MaxAbs(diffs)
		}
		result.Metadata.OscillatorSummary = &zonetypes.OscillatorSummary{
			Count: len(osc), Mean: zstats.Mean(osc), Median: zstats.Median(osc),
			Std: zstats.StdDev(osc), Min: zstats.Min(osc), Max: zstats.Max(osc),
		}
	} else {
		result.Metadata.DebugNotes = append(result.Metadata.DebugNotes, "no primary oscillator column available")
	}

	// Step 4: ATR normalization (optional).
	if atr, ok := data.Column("atr"); ok && len(atr) > 0 && atr[0] > 0 {
		v := result.PriceReturn / atr[0]
		result.AtrNormalizedReturn = &v
	}

	// Step 5: price-indicator correlation.
	if data.Len() >= 3 && len(osc) == len(close) {
		if corr, ok := zstats.PearsonCorrelation(close, osc); ok {
			result.CorrelationPriceHist = &corr
		}
	}

	// Step 6: peak/trough count (peaks on highs, troughs on lows).
	peaks, _ := zstats.PeakTroughCount(high)
	_, troughs := zstats.PeakTroughCount(low)
	result.PeakCount = &peaks
	result.TroughCount = &troughs

	// Step 7: type-specific timing metrics.
	switch zone.Type {
	case "bull":
		maxHigh := zstats.Max(high)
		if maxHigh != 0 {
			v := endPrice/maxHigh - 1
			result.DrawdownFromPeak = &v
		}
		if data.Len() > 0 {
			v := float64(zstats.ArgMax(high)) / float64(data.Len())
			result.PeakTimeRatio = &v
		}
	case "bear":
		minLow := zstats.Min(low)
		if minLow != 0 {
			v := endPrice/minLow - 1
			result.RallyFromTrough = &v
		}
		if data.Len() > 0 {
			v := float64(zstats.ArgMin(low)) / float64(data.Len())
			result.TroughTimeRatio = &v
		}
	}

	// Step 8: sub-strategies.
	view := ZoneView{
		Zone:             zone,
		PrimaryIndicator: primary,
		SignalLine:       zone.IndicatorContext.SignalLine,
		SwingContext:     swingCtx,
	}
	e.runSubStrategies(result, view)

	return result, nil
}

func (e *Extractor) runSubStrategies(result *zonetypes.ZoneFeatures, view ZoneView) {
	if e.strategies.Swing != nil {
		m, err := e.strategies.Swing.Compute(view)
		if err != nil {
			e.noteFailure(result, "swing", err)
		} else {
			result.Metadata.SwingMetrics = &m
		}
	}
	if e.strategies.Shape != nil {
		m, err := e.strategies.Shape.Compute(view)
		if err != nil {
			e.noteFailure(result, "shape", err)
		} else {
			result.Metadata.ShapeMetrics = &m
		}
	}
	if e.strategies.Divergence != nil {
		m, err := e.strategies.Divergence.Compute(view)
		if err != nil {
			e.noteFailure(result, "divergence", err)
		} else {
			result.Metadata.DivergenceMetrics = &m
		}
	}
	if e.strategies.Volatility != nil {
		m, err := e.strategies.Volatility.Compute(view)
		if err != nil {
			e.noteFailure(result, "volatility", err)
		} else {
			result.Metadata.VolatilityMetrics = &m
		}
	}
	if e.strategies.Volume != nil {
		m, err := e.strategies.Volume.Compute(view)
		if err != nil {
			e.noteFailure(result, "volume", err)
		} else {
			result.Metadata.VolumeMetrics = &m
		}
	}
}

func (e *Extractor) noteFailure(result *zonetypes.ZoneFeatures, subStrategy string, err error) {
	note := fmt.Sprintf("%s sub-strategy failed: %v", subStrategy, err)
	result.Metadata.DebugNotes = append(result.Metadata.DebugNotes, note)
	e.logger.Debug("sub-strategy failed, leaving metric null", zap.String("sub_strategy", subStrategy), zap.Int("zone_id", result.ZoneID), zap.Error(err))
}

// resolvePrimaryIndicator reads detection_indicator, falling back to
// the first numeric column that is not OHLCV/time/ATR (spec.md §4.4
// step 2).
func resolvePrimaryIndicator(data *zonetypes.BarTable, detectionIndicator string) (name string, wasFallback bool) {
	if detectionIndicator != "" {
		if _, ok := data.Column(detectionIndicator); ok {
			return detectionIndicator, false
		}
	}
	for _, name := range sortedColumnNames(data) {
		if ohlcvTimeColumns[name] {
			continue
		}
		return name, true
	}
	return "", true
}

func sortedColumnNames(data *zonetypes.BarTable) []string {
	names := data.ColumnNames()
	// simple insertion sort: column counts are small and this avoids an
	// extra sort import for what is already a short list
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}
