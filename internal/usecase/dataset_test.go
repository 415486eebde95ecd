package usecase

import (
	"context"
	"testing"

	"FinRisk/internal/domain/models"
)

func TestBuildDatasetSkipsFailedSymbols(t *testing.T) {
	src := &fakeSource{data: map[string]models.PriceSeries{
		"AAPL": testSeries(100, 101, 102, 101.5, 103),
		"MSFT": testSeries(200, 190, 180, 185, 170),
	}}
	b := NewDatasetBuilder(src, nil)

	rows, failed := b.Build(context.Background(), []string{"AAPL", "GONE", "MSFT"}, 90)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(failed) != 1 {
		t.Fatalf("expected 1 failure, got %v", failed)
	}
	if !models.IsNoData(failed["GONE"]) {
		t.Fatalf("expected NoDataError for GONE, got %v", failed["GONE"])
	}
	if rows[0].Symbol != "AAPL" || rows[1].Symbol != "MSFT" {
		t.Fatalf("unexpected row order: %v", rows)
	}
	for _, r := range rows {
		if r.Label == "" {
			t.Fatalf("row %s missing label", r.Symbol)
		}
	}
}

func TestBuildDatasetLabelsMatchRule(t *testing.T) {
	// MSFT loses ~15% peak-to-trough with moderate swings -> not LOW
	src := &fakeSource{data: map[string]models.PriceSeries{
		"MSFT": testSeries(200, 196, 192, 188, 184, 180, 176, 172, 170),
	}}
	b := NewDatasetBuilder(src, nil)

	rows, failed := b.Build(context.Background(), []string{"MSFT"}, 180)
	if len(failed) != 0 {
		t.Fatalf("unexpected failures: %v", failed)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Label == models.RiskLow {
		t.Fatalf("expected non-LOW label for drawdown %v", rows[0].MaxDrawdown)
	}
}
