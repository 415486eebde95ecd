package scoring

import "FinRisk/internal/domain/models"

// Threshold rule for mapping (volatility, max drawdown) to a risk tier.
// Order matters: LOW is checked first, then MEDIUM; a point failing the LOW
// volatility test can still land in MEDIUM through the second check.
const (
	lowVolatility = 0.01
	lowDrawdown   = -0.1
	medVolatility = 0.025
	medDrawdown   = -0.2
)

// Classify maps volatility and max drawdown to a risk tier. Pure function;
// the same inputs always produce the same label. NaN volatility fails every
// threshold comparison and classifies HIGH.
func Classify(volatility, maxDrawdown float64) models.RiskLabel {
	if volatility < lowVolatility && maxDrawdown > lowDrawdown {
		return models.RiskLow
	}
	if volatility < medVolatility && maxDrawdown > medDrawdown {
		return models.RiskMedium
	}
	return models.RiskHigh
}
