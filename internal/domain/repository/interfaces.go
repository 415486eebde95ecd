package repository

import (
	"context"

	"FinRisk/internal/domain/models"
)

// PriceSource fetches daily close-price history from an external provider.
// One outbound call per invocation; implementations must be safe for
// concurrent independent calls. Returns *models.NoDataError when the
// provider has nothing for the symbol/window.
type PriceSource interface {
	// FetchDailyCloses returns the trailing `days` calendar-day window of
	// daily closes, ascending by date. Weekends and holidays mean the
	// result may hold fewer than `days` points.
	FetchDailyCloses(ctx context.Context, symbol string, days int) (models.PriceSeries, error)
}

// TrainingStore persists labeled training rows built offline.
type TrainingStore interface {
	Init(ctx context.Context) error // ensure tables exist
	InsertRows(ctx context.Context, rows []models.TrainingRow) error
	Close() error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordFetch(symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
