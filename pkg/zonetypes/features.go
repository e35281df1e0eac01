package zonetypes

// SwingMetrics is the sub-strategy output defined in spec.md §4.4.1.
type SwingMetrics struct {
	NumSwings         int
	RallyCount        int
	DropCount         int
	AvgRally          float64
	AvgDrop           float64
	RallyToDropRatio  float64
	AvgRallyDuration  float64
	AvgDropDuration   float64
	StrategyName      string
	StrategyParams    map[string]interface{}
	NoSwingContext    bool // true when no SwingContext was available (spec.md §9)
}

// ShapeMetrics describes the shape of the primary oscillator column
// across the zone window (SPEC_FULL.md §4 supplement).
type ShapeMetrics struct {
	Skewness        float64
	Kurtosis        float64
	PlateauRatio    float64
	MonotonicRunPct float64
}

// DivergenceMetrics captures price/oscillator divergence, computed from
// the primary indicator and optional signal line.
type DivergenceMetrics struct {
	Detected        bool
	Direction       string // "bullish", "bearish", ""
	PriceSlope      float64
	IndicatorSlope  float64
	SignalLineUsed  bool
}

// VolatilityMetrics captures realized volatility over the zone window
// (SPEC_FULL.md §4 supplement).
type VolatilityMetrics struct {
	RealizedVol   float64
	TrueRangeAvg  float64
	VolOfVol      float64
}

// VolumeMetrics captures volume behavior over the zone window
// (SPEC_FULL.md §4 supplement).
type VolumeMetrics struct {
	AvgVolume              float64
	VolumeTrend            float64
	VolumePriceCorrelation float64
	ClimaxRatio            float64
}

// OscillatorSummary holds distributional stats of the primary
// oscillator across the zone, stored alongside the sub-strategy
// metadata (spec.md §3, ZoneFeatures.metadata).
type OscillatorSummary struct {
	Count  int
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Max    float64
}

// ZoneFeatureMetadata nests all sub-strategy outputs and bookkeeping
// fields. Fields are nil pointers when the corresponding sub-strategy
// was not configured or returned an error (spec.md §8 property 16). A
// configured sub-strategy whose inputs are missing (e.g. no volume
// column, no swing context) may instead report zero-valued metrics.
type ZoneFeatureMetadata struct {
	ResolvedIndicatorName string
	IndicatorWasFallback  bool

	SwingMetrics      *SwingMetrics
	ShapeMetrics      *ShapeMetrics
	DivergenceMetrics *DivergenceMetrics
	VolatilityMetrics *VolatilityMetrics
	VolumeMetrics     *VolumeMetrics

	OscillatorSummary *OscillatorSummary

	// DebugNotes records best-effort-step failures (spec.md §4.4
	// preamble: "a debug note recorded").
	DebugNotes []string
}

// ZoneFeatures is the per-zone feature record (spec.md §3).
type ZoneFeatures struct {
	ZoneID   int
	ZoneType string

	Duration      int
	StartPrice    float64
	EndPrice      float64
	PriceReturn   float64
	PriceRangePct float64

	HistAmplitude         float64
	HistSlope             float64
	CorrelationPriceHist  *float64 // nil if duration < 3

	PeakCount   *int
	TroughCount *int

	// Bull-only
	DrawdownFromPeak *float64
	PeakTimeRatio    *float64

	// Bear-only
	RallyFromTrough *float64
	TroughTimeRatio *float64

	AtrNormalizedReturn *float64

	Metadata ZoneFeatureMetadata
}
