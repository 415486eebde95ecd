package risk

import (
	"math"

	"FinRisk/internal/domain/models"
)

// ComputeReturns computes simple percentage returns r_i = (C_i - C_{i-1}) / C_{i-1}.
// It returns a slice of length len(series)-1; the undefined first-period
// return is dropped rather than carried as NaN. Returns nil for fewer than
// two points.
func ComputeReturns(series models.PriceSeries) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		out = append(out, (series[i].Close-prev)/prev)
	}
	return out
}

// Volatility computes the sample standard deviation (ddof=1) of the returns.
// Fewer than two returns yields NaN; NaN is a valid value here, not an
// error, and is passed through to callers unchanged.
func Volatility(returns []float64) float64 {
	n := len(returns)
	if n < 2 {
		return math.NaN()
	}
	sum := 0.0
	sum2 := 0.0
	for _, r := range returns {
		sum += r
		sum2 += r * r
	}
	mean := sum / float64(n)
	variance := (sum2 - float64(n)*mean*mean) / float64(n-1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// MeanReturn computes the arithmetic mean of the returns, NaN when empty.
func MeanReturn(returns []float64) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, r := range returns {
		sum += r
	}
	return sum / float64(len(returns))
}

// MaxDrawdown computes the worst peak-to-trough fractional decline of the
// close prices: the minimum over the series of (close - running_max) /
// running_max. Always <= 0; a strictly increasing series yields exactly 0.
func MaxDrawdown(series models.PriceSeries) float64 {
	if len(series) == 0 {
		return 0
	}
	runMax := series[0].Close
	worst := 0.0
	for _, p := range series {
		if p.Close > runMax {
			runMax = p.Close
		}
		dd := (p.Close - runMax) / runMax
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// Features computes the full feature record from a price series.
func Features(series models.PriceSeries) models.RiskFeatures {
	returns := ComputeReturns(series)
	return models.RiskFeatures{
		Volatility:  Volatility(returns),
		MaxDrawdown: MaxDrawdown(series),
		MeanReturn:  MeanReturn(returns),
	}
}
