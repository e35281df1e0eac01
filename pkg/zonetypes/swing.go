package zonetypes

import (
	"sort"
	"time"
)

// SwingKind distinguishes a peak from a trough.
type SwingKind string

const (
	SwingPeak   SwingKind = "peak"
	SwingTrough SwingKind = "trough"
)

// SwingPoint is a single pivot in price.
type SwingPoint struct {
	PointID        int
	Timestamp      time.Time
	Index          int
	Price          float64
	Kind           SwingKind
	StrategyName   string
	StrategyParams map[string]interface{}
}

// SwingContext is the precomputed set of swing pivots over a full bar
// table (spec.md §3, §4.3). It is immutable once constructed and is
// shared read-only across all zones in a run (spec.md §5).
type SwingContext struct {
	Points         []SwingPoint
	positions      []int // Points[i].Index, kept parallel for binary search
	FullDataLength int
	StrategyName   string
	StrategyParams map[string]interface{}
}

// NewSwingContext builds a context from an already-sorted-by-index list
// of points.
func NewSwingContext(points []SwingPoint, fullDataLength int, strategyName string, params map[string]interface{}) *SwingContext {
	sort.Slice(points, func(i, j int) bool { return points[i].Index < points[j].Index })
	positions := make([]int, len(points))
	for i, p := range points {
		positions[i] = p.Index
	}
	return &SwingContext{
		Points:         points,
		positions:      positions,
		FullDataLength: fullDataLength,
		StrategyName:   strategyName,
		StrategyParams: params,
	}
}

// Slice returns all points whose Index lies in [startIdx, endIdx], plus
// at most one neighbour on each side, per spec.md §4.3's boundary-context
// contract. The returned slice is sorted by Index.
func (sc *SwingContext) Slice(startIdx, endIdx int) []SwingPoint {
	if sc == nil || len(sc.Points) == 0 {
		return nil
	}
	lo := sort.SearchInts(sc.positions, startIdx)
	hi := sort.Search(len(sc.positions), func(i int) bool { return sc.positions[i] > endIdx })

	extLo := lo
	if extLo > 0 {
		extLo--
	}
	extHi := hi
	if extHi < len(sc.Points) {
		extHi++
	}

	out := make([]SwingPoint, extHi-extLo)
	copy(out, sc.Points[extLo:extHi])
	return out
}
