package models

import (
	"encoding/json"
	"math"
)

// Requests for the market/risk HTTP endpoints. Defined in domain for
// consistency and reuse. Symbol binds from the path, days from the query.

type PriceRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}

type HistoryRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	Days   int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=3650"`
}

type RiskRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	Days   int    `query:"days" json:"days" default:"90" validate:"gte=1,lte=3650"`
}

// JSONFloat is a float64 that serializes NaN and infinities as null instead
// of failing encoding. Volatility is NaN when a window yields fewer than two
// returns, and that value is passed through to the client unchanged.
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// Response bodies. Shapes are part of the public contract.

type PriceResponse struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

type HistoryPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

type HistoryResponse struct {
	Symbol string         `json:"symbol"`
	Days   int            `json:"days"`
	Prices []HistoryPoint `json:"prices"`
}

type RiskMetricsBody struct {
	Volatility  JSONFloat `json:"volatility"`
	MaxDrawdown JSONFloat `json:"max_drawdown"`
	MeanReturn  JSONFloat `json:"mean_return"`
}

type RiskResponse struct {
	Symbol  string          `json:"symbol"`
	Days    int             `json:"days"`
	Metrics RiskMetricsBody `json:"metrics"`
}

type RiskProfileBody struct {
	Volatility  JSONFloat `json:"volatility"`
	MaxDrawdown JSONFloat `json:"max_drawdown"`
	RiskLevel   RiskLabel `json:"risk_level"`
}

type RiskProfileResponse struct {
	Symbol  string          `json:"symbol"`
	Days    int             `json:"days"`
	Profile RiskProfileBody `json:"profile"`
}

type PredictionBody struct {
	Volatility  JSONFloat `json:"volatility"`
	MaxDrawdown JSONFloat `json:"max_drawdown"`
	MeanReturn  JSONFloat `json:"mean_return"`
	RiskLevel   RiskLabel `json:"risk_level"`
}

type PredictionResponse struct {
	Symbol     string         `json:"symbol"`
	Days       int            `json:"days"`
	Prediction PredictionBody `json:"prediction"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
