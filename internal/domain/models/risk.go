package models

// RiskLabel is a discrete risk tier.
type RiskLabel string

const (
	RiskLow    RiskLabel = "LOW"
	RiskMedium RiskLabel = "MEDIUM"
	RiskHigh   RiskLabel = "HIGH"
)

// RiskFeatures holds the scalar risk metrics derived from a price series.
// Computed fresh on every request, never cached. Volatility may be NaN when
// the series has fewer than two returns; NaN flows through as a value and
// serializes as JSON null.
type RiskFeatures struct {
	Volatility  float64
	MaxDrawdown float64 // worst peak-to-trough fractional decline, <= 0
	MeanReturn  float64
}

// Vector returns the features in the fixed order the model was trained on:
// [volatility, max_drawdown, mean_return].
func (f RiskFeatures) Vector() []float64 {
	return []float64{f.Volatility, f.MaxDrawdown, f.MeanReturn}
}

// TrainingRow is one labeled example in an offline training dataset.
type TrainingRow struct {
	Symbol      string
	WindowDays  int
	Volatility  float64
	MaxDrawdown float64
	MeanReturn  float64
	Label       RiskLabel
}

// FeatureVector returns the row's features in model input order.
func (r TrainingRow) FeatureVector() []float64 {
	return []float64{r.Volatility, r.MaxDrawdown, r.MeanReturn}
}
