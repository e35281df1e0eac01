package zonetypes

// IndicatorSource enumerates where an indicator's values come from
// (spec.md §4.6).
type IndicatorSource string

const (
	IndicatorSourcePreloaded IndicatorSource = "preloaded"
	IndicatorSourceCustom    IndicatorSource = "custom"
	IndicatorSourcePandasTA  IndicatorSource = "pandas_ta"
	IndicatorSourceTALib     IndicatorSource = "talib"
)

// IndicatorConfig describes an indicator to realize before detection
// runs. A nil *IndicatorConfig in ZoneAnalysisConfig means "columns
// already present in the input table" (spec.md §4.6).
type IndicatorConfig struct {
	Source IndicatorSource
	Name   string
	Params map[string]interface{}
}

// SwingScope controls the swing context — spec.md §4.3, §4.6. With
// "global" (and a swing sub-strategy configured) one context is computed
// over the whole table. "per_zone" and "none" build no swing context:
// no per-zone swing detection runs, and the swing sub-strategy reports
// NoSwingContext for every zone.
type SwingScope string

const (
	SwingScopeGlobal  SwingScope = "global"
	SwingScopePerZone SwingScope = "per_zone"
	SwingScopeNone    SwingScope = "none"
)

// SubStrategyConfig configures which of the five feature-extraction
// sub-strategies run, and with what parameters (spec.md §4.4 item 8).
type SubStrategyConfig struct {
	Swing      *SwingStrategyParams
	Shape      *ShapeStrategyParams
	Divergence *DivergenceStrategyParams
	Volatility *VolatilityStrategyParams
	Volume     *VolumeStrategyParams
}

// SwingStrategyParams configures the swing sub-strategy.
type SwingStrategyParams struct {
	StrategyName   string // e.g. "zigzag"
	BaseDeviation  float64
	AutoThresholds bool
}

// ShapeStrategyParams configures the shape sub-strategy.
type ShapeStrategyParams struct {
	PlateauTolerancePct float64
}

// DivergenceStrategyParams configures the divergence sub-strategy.
type DivergenceStrategyParams struct {
	MinLegBars int
}

// VolatilityStrategyParams configures the volatility sub-strategy.
type VolatilityStrategyParams struct {
	VolOfVolWindow int
}

// VolumeStrategyParams configures the volume sub-strategy.
type VolumeStrategyParams struct{}

// ZoneAnalysisConfig is the top-level pipeline configuration (spec.md
// §4.6).
type ZoneAnalysisConfig struct {
	Indicator        *IndicatorConfig
	ZoneDetection    *ZoneDetectionConfig
	SubStrategies    SubStrategyConfig
	PerformClustering bool
	NClusters        int
	RunRegression    bool
	RunValidation    bool
	SwingScope       SwingScope
}

// Validator is the external collaborator for spec.md §4.5 step 7
// ("validation (definition deferred to external collaborators)"). One
// may be passed to analyzer.New; when validation is requested on more
// than 20 zones and none was passed, validation is skipped and a
// warning is recorded (SPEC_FULL.md §7).
type Validator interface {
	Validate(result *ZoneAnalysisResult) (map[string]interface{}, error)
}
