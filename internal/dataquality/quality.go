// Package dataquality validates a BarTable before it enters the zone
// detection pipeline. Zone boundaries and extracted features are only
// as trustworthy as the bars they're built from, so this runs the
// same class of garbage-in checks the teacher's internal/data package
// ran before backtesting: OHLC consistency, duplicate/out-of-order
// timestamps, extreme moves, and volume anomalies.
package dataquality

import (
	"math"
	"sort"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// Validator checks a BarTable's structural and statistical integrity.
// Thresholds default to crypto-like 24/7 markets; NewEquityValidator
// tightens them for session-based markets.
type Validator struct {
	MaxIntradayMove   float64 // e.g. 0.30 for a 30% high/low range in one bar
	MaxGapMove        float64 // e.g. 0.20 for a 20% open-vs-prior-close jump
	MinVolume         float64
	MaxVolumeMultiple float64 // volume above this multiple of the average is a spike
}

// NewValidator returns thresholds suited to continuously-traded assets.
func NewValidator() *Validator {
	return &Validator{
		MaxIntradayMove:   0.30,
		MaxGapMove:        0.20,
		MinVolume:         100,
		MaxVolumeMultiple: 20.0,
	}
}

// NewEquityValidator returns thresholds suited to session-based assets
// with circuit breakers, where large intraday moves are rarer.
func NewEquityValidator() *Validator {
	return &Validator{
		MaxIntradayMove:   0.20,
		MaxGapMove:        0.15,
		MinVolume:         1000,
		MaxVolumeMultiple: 10.0,
	}
}

// Severity classifies how serious an Issue is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Issue describes a single data quality problem found at a bar index.
type Issue struct {
	Type     string
	Severity Severity
	BarIndex int
	Message  string
}

// Report summarizes a validation run. Score is 0-100; Usable reports
// whether the table is fit for zone detection (score >= 70 and no
// critical issues).
type Report struct {
	TotalBars          int
	Issues             []Issue
	Score              int
	Usable             bool
	MissingDataCount   int
	PriceAnomalyCount  int
	VolumeAnomalyCount int
	OHLCErrorCount     int
	Recommendations    []string
}

// Validate runs every check against table and returns a Report.
func (v *Validator) Validate(table *zonetypes.BarTable) *Report {
	n := table.Len()
	if n == 0 {
		return &Report{
			Issues: []Issue{{Type: "NO_DATA", Severity: SeverityCritical, Message: "no bars provided"}},
			Score:  0,
		}
	}

	var issues []Issue
	issues = append(issues, v.checkGaps(table)...)
	issues = append(issues, v.checkPriceAnomalies(table)...)
	if table.HasVolume() {
		issues = append(issues, v.checkVolumeAnomalies(table)...)
	}
	issues = append(issues, v.checkOHLCConsistency(table)...)
	issues = append(issues, v.checkDuplicates(table)...)
	issues = append(issues, v.checkChronologicalOrder(table)...)

	score := v.score(n, issues)
	return &Report{
		TotalBars:          n,
		Issues:             issues,
		Score:              score,
		Usable:             score >= 70 && !hasCritical(issues),
		MissingDataCount:   countByType(issues, "GAP_DETECTED"),
		PriceAnomalyCount:  countByType(issues, "EXTREME_MOVE", "GAP_MOVE", "ZERO_PRICE", "NEGATIVE_PRICE"),
		VolumeAnomalyCount: countByType(issues, "ZERO_VOLUME", "LOW_VOLUME", "VOLUME_SPIKE"),
		OHLCErrorCount:     countByType(issues, "OHLC_INCONSISTENT"),
		Recommendations:    recommendations(issues, n),
	}
}

func (v *Validator) checkGaps(table *zonetypes.BarTable) []Issue {
	n := table.Len()
	if n < 3 {
		return nil
	}

	limit := 10
	if limit > n-1 {
		limit = n - 1
	}
	intervals := make([]int64, 0, limit)
	for i := 1; i <= limit; i++ {
		intervals = append(intervals, table.Timestamps[i].Sub(table.Timestamps[i-1]).Nanoseconds())
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i] < intervals[j] })
	expected := intervals[len(intervals)/2]
	if expected <= 0 {
		return nil
	}

	var issues []Issue
	maxGap := expected + expected/2
	for i := 1; i < n; i++ {
		actual := table.Timestamps[i].Sub(table.Timestamps[i-1]).Nanoseconds()
		if actual > maxGap*3 {
			sev := SeverityHigh
			if actual > maxGap*10 {
				sev = SeverityCritical
			}
			issues = append(issues, Issue{Type: "GAP_DETECTED", Severity: sev, BarIndex: i - 1,
				Message: "data gap detected between consecutive bars"})
		}
	}
	return issues
}

func (v *Validator) checkPriceAnomalies(table *zonetypes.BarTable) []Issue {
	var issues []Issue
	n := table.Len()
	for i := 0; i < n; i++ {
		open, _ := table.Open[i].Float64()
		high, _ := table.High[i].Float64()
		low, _ := table.Low[i].Float64()
		cl, _ := table.Close[i].Float64()

		if open == 0 || high == 0 || low == 0 || cl == 0 {
			issues = append(issues, Issue{Type: "ZERO_PRICE", Severity: SeverityCritical, BarIndex: i, Message: "zero price"})
			continue
		}
		if open < 0 || high < 0 || low < 0 || cl < 0 {
			issues = append(issues, Issue{Type: "NEGATIVE_PRICE", Severity: SeverityCritical, BarIndex: i, Message: "negative price"})
			continue
		}
		if low > 0 {
			if move := (high - low) / low; move > v.MaxIntradayMove {
				issues = append(issues, Issue{Type: "EXTREME_MOVE", Severity: SeverityHigh, BarIndex: i,
					Message: "extreme intraday move"})
			}
		}
		if i > 0 {
			prevClose, _ := table.Close[i-1].Float64()
			if prevClose > 0 {
				if move := math.Abs(open-prevClose) / prevClose; move > v.MaxGapMove {
					issues = append(issues, Issue{Type: "GAP_MOVE", Severity: SeverityMedium, BarIndex: i, Message: "large open-vs-prior-close gap"})
				}
			}
		}
	}
	return issues
}

func (v *Validator) checkVolumeAnomalies(table *zonetypes.BarTable) []Issue {
	var issues []Issue
	var total float64
	nonZero := 0
	for _, vol := range table.Volume {
		f, _ := vol.Float64()
		if f > 0 {
			total += f
			nonZero++
		}
	}
	var avg float64
	if nonZero > 0 {
		avg = total / float64(nonZero)
	}

	for i, vol := range table.Volume {
		f, _ := vol.Float64()
		switch {
		case f == 0:
			issues = append(issues, Issue{Type: "ZERO_VOLUME", Severity: SeverityLow, BarIndex: i, Message: "zero volume bar"})
		case f < v.MinVolume:
			issues = append(issues, Issue{Type: "LOW_VOLUME", Severity: SeverityLow, BarIndex: i, Message: "volume below threshold"})
		case avg > 0 && f > avg*v.MaxVolumeMultiple:
			issues = append(issues, Issue{Type: "VOLUME_SPIKE", Severity: SeverityLow, BarIndex: i, Message: "volume spike vs. average"})
		}
	}
	return issues
}

func (v *Validator) checkOHLCConsistency(table *zonetypes.BarTable) []Issue {
	var issues []Issue
	for i := 0; i < table.Len(); i++ {
		open := table.Open[i]
		high := table.High[i]
		low := table.Low[i]
		cl := table.Close[i]

		if high.LessThan(open) || high.LessThan(cl) || high.LessThan(low) {
			issues = append(issues, Issue{Type: "OHLC_INCONSISTENT", Severity: SeverityCritical, BarIndex: i,
				Message: "high is not the highest price in the bar"})
		}
		if low.GreaterThan(open) || low.GreaterThan(cl) || low.GreaterThan(high) {
			issues = append(issues, Issue{Type: "OHLC_INCONSISTENT", Severity: SeverityCritical, BarIndex: i,
				Message: "low is not the lowest price in the bar"})
		}
	}
	return issues
}

func (v *Validator) checkDuplicates(table *zonetypes.BarTable) []Issue {
	var issues []Issue
	seen := make(map[int64]int, table.Len())
	for i, ts := range table.Timestamps {
		key := ts.UnixNano()
		if _, ok := seen[key]; ok {
			issues = append(issues, Issue{Type: "DUPLICATE_TIMESTAMP", Severity: SeverityHigh, BarIndex: i, Message: "duplicate timestamp"})
			continue
		}
		seen[key] = i
	}
	return issues
}

func (v *Validator) checkChronologicalOrder(table *zonetypes.BarTable) []Issue {
	var issues []Issue
	for i := 1; i < table.Len(); i++ {
		if table.Timestamps[i].Before(table.Timestamps[i-1]) {
			issues = append(issues, Issue{Type: "OUT_OF_ORDER", Severity: SeverityCritical, BarIndex: i, Message: "bar out of chronological order"})
		}
	}
	return issues
}

func (v *Validator) score(totalBars int, issues []Issue) int {
	penalty := 0.0
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			penalty += 10.0
		case SeverityHigh:
			penalty += 5.0
		case SeverityMedium:
			penalty += 2.0
		case SeverityLow:
			penalty += 0.5
		}
	}
	normalized := penalty / math.Max(1, float64(totalBars)/100) * 10
	score := 100.0 - math.Min(normalized, 100)
	return int(math.Max(0, math.Min(100, score)))
}

func hasCritical(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

func countByType(issues []Issue, types ...string) int {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	count := 0
	for _, issue := range issues {
		if set[issue.Type] {
			count++
		}
	}
	return count
}

func recommendations(issues []Issue, totalBars int) []string {
	counts := make(map[string]int)
	for _, issue := range issues {
		counts[issue.Type]++
	}

	var recs []string
	if counts["GAP_DETECTED"] > 0 {
		recs = append(recs, "fill or exclude periods with detected data gaps before detecting zones")
	}
	if counts["OHLC_INCONSISTENT"] > 0 {
		recs = append(recs, "OHLC inconsistencies found — verify the upstream data source")
	}
	if counts["EXTREME_MOVE"] > totalBars/100 {
		recs = append(recs, "many extreme moves found — consider outlier filtering before detection")
	}
	if counts["ZERO_VOLUME"] > totalBars/10 {
		recs = append(recs, "high proportion of zero-volume bars — volume-gated detectors may misbehave")
	}
	if counts["DUPLICATE_TIMESTAMP"] > 0 {
		recs = append(recs, "remove duplicate timestamps before detection")
	}
	if counts["OUT_OF_ORDER"] > 0 {
		recs = append(recs, "sort bars by timestamp before detection")
	}
	if len(recs) == 0 {
		recs = append(recs, "data quality is acceptable for zone detection")
	}
	return recs
}
