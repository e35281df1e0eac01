package zonetypes

import "time"

// Distribution reports the standard set of distributional fields
// spec.md §4.5 step 2 requires for every population statistic.
type Distribution struct {
	Count    int
	Mean     float64
	Median   float64
	Std      float64
	Min      float64
	Max      float64
	Q25      float64
	Q75      float64
	Skewness float64
	Kurtosis float64
}

// TypeStatistics holds the per-zone-type slice of population statistics.
type TypeStatistics struct {
	Count              int
	Duration           Distribution
	Return             Distribution
	Amplitude          Distribution
	CorrelationSummary Distribution
	PeakCounts         Distribution
	TroughCounts       Distribution
}

// PopulationStatistics is the aggregate statistics map (spec.md §3,
// ZoneAnalysisResult.statistics): overall plus per zone-type.
type PopulationStatistics struct {
	Overall  TypeStatistics
	ByType   map[string]TypeStatistics
}

// HypothesisTestResult is one named hypothesis test's outcome.
type HypothesisTestResult struct {
	Name       string
	Statistic  float64
	PValue     float64
	Reject     bool
	Detail     string
}

// SequenceAnalysis is the sequence-level analysis of zone-type ordering
// (spec.md §4.5 step 4): transition counts and cluster labels over the
// ordered type sequence.
type SequenceAnalysis struct {
	Skipped         bool
	SkipReason      string
	TransitionCounts map[string]map[string]int
	ClusterLabels   []int
}

// ClusteringResult is the outcome of feature-vector clustering (spec.md
// §4.5 step 5).
type ClusteringResult struct {
	NClusters int
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// RegressionResult is one regression analysis's outcome (spec.md §4.5
// step 6): e.g. duration predictor, return predictor.
type RegressionResult struct {
	Target       string
	Coefficients map[string]float64
	Intercept    float64
	RSquared     float64
}

// ResultMetadata carries run-level bookkeeping.
type ResultMetadata struct {
	RunID             string
	AnalysisTimestamp time.Time
	InputRows         int
	ZoneTypesSeen     []string
	ConfigEcho        *ZoneAnalysisConfig
	Warnings          []string
	AnalysesRun       map[string]bool
}

// ZoneAnalysisResult is the top-level output of a pipeline run (spec.md
// §3, §4.5 step 8).
type ZoneAnalysisResult struct {
	Zones             ZoneList
	Statistics        PopulationStatistics
	HypothesisTests   []HypothesisTestResult
	Clustering        *ClusteringResult
	SequenceAnalysis  *SequenceAnalysis
	RegressionResults []RegressionResult
	ValidationResults map[string]interface{}
	InputTable        *BarTable // retained only if the caller asked for it
	Metadata          ResultMetadata
}

// Empty returns an empty, zero-count result — never an error, per
// spec.md §4.5 ("Empty input (no zones) yields an empty result").
func Empty() *ZoneAnalysisResult {
	return &ZoneAnalysisResult{
		Zones: ZoneList{},
		Statistics: PopulationStatistics{
			ByType: make(map[string]TypeStatistics),
		},
		Metadata: ResultMetadata{
			AnalysesRun: make(map[string]bool),
		},
	}
}
