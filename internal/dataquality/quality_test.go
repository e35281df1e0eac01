package dataquality

import (
	"testing"
	"time"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/shopspring/decimal"
)

func buildTable(n int) *zonetypes.BarTable {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	table := zonetypes.NewBarTable()
	for i := 0; i < n; i++ {
		table.Timestamps = append(table.Timestamps, t0.Add(time.Duration(i)*time.Hour))
		d := decimal.NewFromFloat(100 + float64(i))
		table.Open = append(table.Open, d)
		table.High = append(table.High, d.Add(decimal.NewFromFloat(1)))
		table.Low = append(table.Low, d.Sub(decimal.NewFromFloat(1)))
		table.Close = append(table.Close, d)
		table.Volume = append(table.Volume, decimal.NewFromFloat(1000))
	}
	return table
}

func TestValidateCleanTableIsUsable(t *testing.T) {
	report := NewValidator().Validate(buildTable(50))
	if !report.Usable {
		t.Fatalf("expected clean table to be usable, got score %d issues %v", report.Score, report.Issues)
	}
	if report.OHLCErrorCount != 0 {
		t.Fatalf("expected no OHLC errors, got %d", report.OHLCErrorCount)
	}
}

func TestValidateFlagsInconsistentOHLC(t *testing.T) {
	table := buildTable(10)
	table.High[3] = table.Low[3].Sub(decimal.NewFromFloat(5))

	report := NewValidator().Validate(table)
	if report.OHLCErrorCount == 0 {
		t.Fatalf("expected an OHLC consistency issue to be detected")
	}
	if report.Usable {
		t.Fatalf("expected a critical OHLC error to make the table unusable")
	}
}

func TestValidateFlagsDuplicateTimestamp(t *testing.T) {
	table := buildTable(10)
	table.Timestamps[5] = table.Timestamps[4]

	report := NewValidator().Validate(table)
	found := false
	for _, issue := range report.Issues {
		if issue.Type == "DUPLICATE_TIMESTAMP" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate timestamp issue, got %v", report.Issues)
	}
}

func TestValidateEmptyTableIsUnusable(t *testing.T) {
	report := NewValidator().Validate(zonetypes.NewBarTable())
	if report.Usable {
		t.Fatalf("expected empty table to be unusable")
	}
	if report.Score != 0 {
		t.Fatalf("expected score 0 for empty table, got %d", report.Score)
	}
}
