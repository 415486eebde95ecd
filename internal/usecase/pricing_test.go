package usecase

import (
	"context"
	"testing"
	"time"

	"FinRisk/internal/domain/models"
	"FinRisk/internal/services/mlmodel"
)

// fakeSource serves canned series per symbol and records requested windows.
type fakeSource struct {
	data     map[string]models.PriceSeries
	lastDays int
}

func (f *fakeSource) FetchDailyCloses(_ context.Context, symbol string, days int) (models.PriceSeries, error) {
	f.lastDays = days
	series, ok := f.data[symbol]
	if !ok || len(series) == 0 {
		return nil, &models.NoDataError{Symbol: symbol, Days: days}
	}
	if len(series) > days {
		series = series[len(series)-days:]
	}
	return series, nil
}

func testSeries(closes ...float64) models.PriceSeries {
	base := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	out := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		out[i] = models.PricePoint{Date: base.AddDate(0, 0, i), Close: c}
	}
	return out
}

func TestCurrentPriceUsesOneDayWindow(t *testing.T) {
	src := &fakeSource{data: map[string]models.PriceSeries{"AAPL": testSeries(100, 101, 102.5)}}
	p := NewPricing(src, nil, nil)

	price, err := p.CurrentPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("current price: %v", err)
	}
	if price != 102.5 {
		t.Fatalf("expected most recent close 102.5, got %v", price)
	}
	if src.lastDays != 1 {
		t.Fatalf("expected 1-day window, got %d", src.lastDays)
	}
}

func TestCurrentPriceNoData(t *testing.T) {
	p := NewPricing(&fakeSource{data: map[string]models.PriceSeries{}}, nil, nil)
	if _, err := p.CurrentPrice(context.Background(), "NOPE"); !models.IsNoData(err) {
		t.Fatalf("expected NoDataError, got %v", err)
	}
}

func TestRiskProfileClassifies(t *testing.T) {
	// gentle drift: tiny volatility, no drawdown -> LOW
	src := &fakeSource{data: map[string]models.PriceSeries{
		"STEADY": testSeries(100, 100.1, 100.2, 100.3, 100.4, 100.5),
	}}
	p := NewPricing(src, nil, nil)

	features, label, err := p.RiskProfile(context.Background(), "STEADY", 90)
	if err != nil {
		t.Fatalf("risk profile: %v", err)
	}
	if label != models.RiskLow {
		t.Fatalf("expected LOW, got %s", label)
	}
	if features.MaxDrawdown != 0 {
		t.Fatalf("expected zero drawdown, got %v", features.MaxDrawdown)
	}
}

func TestPredictProfileWithoutModel(t *testing.T) {
	src := &fakeSource{data: map[string]models.PriceSeries{"AAPL": testSeries(100, 101)}}
	p := NewPricing(src, nil, nil)
	if _, _, err := p.PredictProfile(context.Background(), "AAPL", 90); err != models.ErrModelNotLoaded {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
}

func TestPredictProfileWithModel(t *testing.T) {
	// model trained to echo the rule-based labels on well-separated points
	X := [][]float64{
		{0.005, -0.02, 0.001},
		{0.004, -0.03, 0.002},
		{0.02, -0.15, 0.0},
		{0.018, -0.12, -0.001},
		{0.05, -0.4, -0.01},
		{0.06, -0.35, -0.02},
	}
	labels := []models.RiskLabel{
		models.RiskLow, models.RiskLow,
		models.RiskMedium, models.RiskMedium,
		models.RiskHigh, models.RiskHigh,
	}
	enc := mlmodel.FitLabelEncoder(labels)
	y := make([]float64, len(labels))
	for i, l := range labels {
		code, err := enc.Transform(l)
		if err != nil {
			t.Fatalf("transform: %v", err)
		}
		y[i] = float64(code)
	}
	forest, err := mlmodel.FitForest(X, y, mlmodel.ForestConfig{Trees: 30, MaxDepth: 5, MinLeaf: 1, Seed: 3})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	// steep repeated drawdowns: clearly the HIGH cluster
	src := &fakeSource{data: map[string]models.PriceSeries{
		"WILD": testSeries(100, 60, 95, 55, 90, 50),
	}}
	p := NewPricing(src, mlmodel.NewRiskModel(forest, enc), nil)

	_, label, err := p.PredictProfile(context.Background(), "WILD", 90)
	if err != nil {
		t.Fatalf("predict profile: %v", err)
	}
	if label != models.RiskHigh {
		t.Fatalf("expected HIGH, got %s", label)
	}
}
