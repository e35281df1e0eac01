// Package zonetypes provides the shared data model for the zone
// analysis engine: the bar table, zone records, swing context and
// analysis results. It mirrors the shape of the teacher's pkg/types
// package (OHLCV, config structs) but generalizes the fixed OHLCV
// struct into a column table that also carries arbitrary indicator
// columns, since the engine treats indicator production as an
// external collaborator.
package zonetypes

import (
	"time"

	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/shopspring/decimal"
)

// Bar is a single OHLCV row, kept decimal like the teacher's OHLCV
// struct. Prices are stored as decimal; the feature and statistics code
// converts them to float64 (e.g. via CloseFloats) before computing
// returns and drawdowns.
type Bar struct {
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
}

// BarTable is an ordered, finite sequence of bars plus zero or more
// named indicator columns aligned 1:1 to rows. Indicator columns are
// float64: they are derived numeric series (oscillators, moving
// averages) and the statistical machinery downstream (correlation,
// skewness, kurtosis) operates on floats throughout, matching how the
// teacher's backtester.MetricsCalculator converts decimal equity
// curves to []float64 before running Sharpe/Sortino math.
type BarTable struct {
	Timestamps []time.Time
	Open       []decimal.Decimal
	High       []decimal.Decimal
	Low        []decimal.Decimal
	Close      []decimal.Decimal
	Volume     []decimal.Decimal

	// Indicators holds arbitrary additional numeric columns, keyed by
	// name. Absent volume or indicator columns are simply missing
	// keys/nil slices; callers must check before use.
	Indicators map[string][]float64
}

// NewBarTable allocates an empty table with an indicator map ready to
// populate.
func NewBarTable() *BarTable {
	return &BarTable{Indicators: make(map[string][]float64)}
}

// Len returns the row count N.
func (t *BarTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Timestamps)
}

// HasVolume reports whether the volume column is present and aligned.
func (t *BarTable) HasVolume() bool {
	return len(t.Volume) == t.Len() && t.Len() > 0
}

// Column returns an indicator column by name, or (nil, false) if absent.
func (t *BarTable) Column(name string) ([]float64, bool) {
	col, ok := t.Indicators[name]
	return col, ok
}

// SetColumn installs (or overwrites) an indicator column. It fails if
// the column's length does not match the table's row count.
func (t *BarTable) SetColumn(name string, values []float64) error {
	if len(values) != t.Len() {
		return zerrors.Data("column %q has length %d, expected %d", name, len(values), t.Len())
	}
	if t.Indicators == nil {
		t.Indicators = make(map[string][]float64)
	}
	t.Indicators[name] = values
	return nil
}

// ColumnNames returns the set of available indicator column names in
// map iteration order. Order is not guaranteed; callers needing a
// deterministic order should sort.
func (t *BarTable) ColumnNames() []string {
	names := make([]string, 0, len(t.Indicators))
	for name := range t.Indicators {
		names = append(names, name)
	}
	return names
}

// Validate checks the structural invariants from spec.md §3: all
// columns share length N, and timestamps are non-decreasing. Equal
// consecutive timestamps are accepted here; the data-quality validator
// reports them as duplicates.
func (t *BarTable) Validate() error {
	n := t.Len()
	if n == 0 {
		return zerrors.Data("bar table is empty")
	}
	if len(t.Open) != n || len(t.High) != n || len(t.Low) != n || len(t.Close) != n {
		return zerrors.Data("OHLC columns must all have length %d", n)
	}
	if len(t.Volume) != 0 && len(t.Volume) != n {
		return zerrors.Data("volume column has length %d, expected %d or 0", len(t.Volume), n)
	}
	for name, col := range t.Indicators {
		if len(col) != n {
			return zerrors.Data("indicator column %q has length %d, expected %d", name, len(col), n)
		}
	}
	for i := 1; i < n; i++ {
		if t.Timestamps[i].Before(t.Timestamps[i-1]) {
			return zerrors.Data("timestamps must be monotonically non-decreasing: row %d (%s) precedes row %d (%s)",
				i, t.Timestamps[i], i-1, t.Timestamps[i-1])
		}
	}
	return nil
}

// Slice returns a view over [start, end] inclusive. The engine may
// realize this as a copy; here it always copies, which keeps ZoneInfo
// data independent of the original table's lifetime (see spec.md §5's
// "implementation choice" on ZoneInfo.data ownership).
func (t *BarTable) Slice(start, end int) *BarTable {
	if start < 0 {
		start = 0
	}
	if end >= t.Len() {
		end = t.Len() - 1
	}
	if start > end {
		return NewBarTable()
	}
	out := &BarTable{
		Timestamps: append([]time.Time(nil), t.Timestamps[start:end+1]...),
		Open:       append([]decimal.Decimal(nil), t.Open[start:end+1]...),
		High:       append([]decimal.Decimal(nil), t.High[start:end+1]...),
		Low:        append([]decimal.Decimal(nil), t.Low[start:end+1]...),
		Close:      append([]decimal.Decimal(nil), t.Close[start:end+1]...),
		Indicators: make(map[string][]float64, len(t.Indicators)),
	}
	if t.HasVolume() {
		out.Volume = append([]decimal.Decimal(nil), t.Volume[start:end+1]...)
	}
	for name, col := range t.Indicators {
		out.Indicators[name] = append([]float64(nil), col[start:end+1]...)
	}
	return out
}

// CloseFloats returns the close column as float64, for statistics code
// that does not need decimal precision.
func (t *BarTable) CloseFloats() []float64 {
	return decimalsToFloats(t.Close)
}

// HighFloats returns the high column as float64.
func (t *BarTable) HighFloats() []float64 { return decimalsToFloats(t.High) }

// LowFloats returns the low column as float64.
func (t *BarTable) LowFloats() []float64 { return decimalsToFloats(t.Low) }

// VolumeFloats returns the volume column as float64, or nil if absent.
func (t *BarTable) VolumeFloats() []float64 {
	if !t.HasVolume() {
		return nil
	}
	return decimalsToFloats(t.Volume)
}

func decimalsToFloats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		f, _ := d.Float64()
		out[i] = f
	}
	return out
}
