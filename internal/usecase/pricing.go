package usecase

import (
	"context"
	"time"

	"FinRisk/internal/domain/models"
	drepo "FinRisk/internal/domain/repository"
	"FinRisk/internal/services/mlmodel"
	"FinRisk/internal/services/risk"
	"FinRisk/internal/services/scoring"
)

// Pricing provides the business logic behind the market endpoints: fetch a
// price window, derive risk features, classify or predict a tier. Features
// are computed fresh on every call; nothing is cached.
type Pricing struct {
	source  drepo.PriceSource
	model   *mlmodel.RiskModel // nil when no trained model is configured
	metrics drepo.Metrics
}

// NewPricing creates the pricing use case. model may be nil; metrics may be
// nil (recording is then skipped).
func NewPricing(source drepo.PriceSource, model *mlmodel.RiskModel, metrics drepo.Metrics) *Pricing {
	return &Pricing{source: source, model: model, metrics: metrics}
}

// HasModel reports whether the ML prediction path is available.
func (p *Pricing) HasModel() bool { return p.model != nil }

func (p *Pricing) fetch(ctx context.Context, symbol string, days int) (models.PriceSeries, error) {
	start := time.Now()
	series, err := p.source.FetchDailyCloses(ctx, symbol, days)
	if p.metrics != nil {
		p.metrics.RecordLatency("fetch", time.Since(start).Seconds())
		if err != nil {
			if models.IsNoData(err) {
				p.metrics.RecordError("no_data")
			} else {
				p.metrics.RecordError("provider")
			}
		} else {
			p.metrics.RecordFetch(symbol)
			p.metrics.RecordLastPrice(symbol, series.Last().Close)
		}
	}
	return series, err
}

// CurrentPrice returns the most recent close from a 1-day window.
func (p *Pricing) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	series, err := p.fetch(ctx, symbol, 1)
	if err != nil {
		return 0, err
	}
	return series.Last().Close, nil
}

// History returns the trailing close-price window for a symbol.
func (p *Pricing) History(ctx context.Context, symbol string, days int) (models.PriceSeries, error) {
	return p.fetch(ctx, symbol, days)
}

// RiskMetrics computes volatility, max drawdown, and mean return over the
// trailing window.
func (p *Pricing) RiskMetrics(ctx context.Context, symbol string, days int) (models.RiskFeatures, error) {
	series, err := p.fetch(ctx, symbol, days)
	if err != nil {
		return models.RiskFeatures{}, err
	}
	return risk.Features(series), nil
}

// RiskProfile computes risk features and classifies them with the fixed
// threshold rule.
func (p *Pricing) RiskProfile(ctx context.Context, symbol string, days int) (models.RiskFeatures, models.RiskLabel, error) {
	features, err := p.RiskMetrics(ctx, symbol, days)
	if err != nil {
		return models.RiskFeatures{}, "", err
	}
	return features, scoring.Classify(features.Volatility, features.MaxDrawdown), nil
}

// PredictProfile computes risk features and predicts the tier with the
// trained model. Returns ErrModelNotLoaded when no model is configured; a
// decode failure from the model indicates a train/serve mismatch.
func (p *Pricing) PredictProfile(ctx context.Context, symbol string, days int) (models.RiskFeatures, models.RiskLabel, error) {
	if p.model == nil {
		return models.RiskFeatures{}, "", models.ErrModelNotLoaded
	}
	features, err := p.RiskMetrics(ctx, symbol, days)
	if err != nil {
		return models.RiskFeatures{}, "", err
	}
	label, err := p.model.Predict(features)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordError("model")
		}
		return models.RiskFeatures{}, "", err
	}
	return features, label, nil
}
