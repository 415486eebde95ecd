package risk

import (
	"math"
	"testing"
	"time"

	"FinRisk/internal/domain/models"
)

func series(closes ...float64) models.PriceSeries {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		out[i] = models.PricePoint{Date: base.AddDate(0, 0, i), Close: c}
	}
	return out
}

func TestComputeReturns(t *testing.T) {
	rets := ComputeReturns(series(100, 110, 99))
	if len(rets) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(rets))
	}
	if math.Abs(rets[0]-0.1) > 1e-12 {
		t.Fatalf("unexpected first return %v", rets[0])
	}
	if math.Abs(rets[1]-(-0.1)) > 1e-12 {
		t.Fatalf("unexpected second return %v", rets[1])
	}
}

func TestComputeReturnsTooShort(t *testing.T) {
	if rets := ComputeReturns(series(100)); rets != nil {
		t.Fatalf("expected nil, got %v", rets)
	}
}

func TestVolatilitySingleReturnIsNaN(t *testing.T) {
	if v := Volatility([]float64{0.01}); !math.IsNaN(v) {
		t.Fatalf("expected NaN, got %v", v)
	}
}

func TestVolatilityKnownValue(t *testing.T) {
	// sample stddev of {0.1, -0.1} is 0.1*sqrt(2)
	v := Volatility([]float64{0.1, -0.1})
	want := 0.1 * math.Sqrt2
	if math.Abs(v-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, v)
	}
}

func TestVolatilityConstantReturns(t *testing.T) {
	if v := Volatility([]float64{0.02, 0.02, 0.02}); v != 0 {
		t.Fatalf("expected 0, got %v", v)
	}
}

func TestMaxDrawdownStrictlyIncreasing(t *testing.T) {
	if dd := MaxDrawdown(series(1, 2, 3, 4, 5)); dd != 0 {
		t.Fatalf("expected 0, got %v", dd)
	}
}

func TestMaxDrawdownHalved(t *testing.T) {
	if dd := MaxDrawdown(series(100, 50)); dd != -0.5 {
		t.Fatalf("expected -0.5, got %v", dd)
	}
}

func TestMaxDrawdownRecovery(t *testing.T) {
	// peak 120, trough 90 -> -0.25 even though the series recovers
	dd := MaxDrawdown(series(100, 120, 90, 130))
	if math.Abs(dd-(-0.25)) > 1e-12 {
		t.Fatalf("expected -0.25, got %v", dd)
	}
}

func TestMeanReturn(t *testing.T) {
	m := MeanReturn([]float64{0.1, -0.05, 0.01})
	if math.Abs(m-0.02) > 1e-12 {
		t.Fatalf("expected 0.02, got %v", m)
	}
	if !math.IsNaN(MeanReturn(nil)) {
		t.Fatalf("expected NaN for empty returns")
	}
}

func TestFeaturesTwoPointSeries(t *testing.T) {
	f := Features(series(100, 50))
	if !math.IsNaN(f.Volatility) {
		t.Fatalf("expected NaN volatility, got %v", f.Volatility)
	}
	if f.MaxDrawdown != -0.5 {
		t.Fatalf("expected -0.5 drawdown, got %v", f.MaxDrawdown)
	}
	if f.MeanReturn != -0.5 {
		t.Fatalf("expected -0.5 mean return, got %v", f.MeanReturn)
	}
}
