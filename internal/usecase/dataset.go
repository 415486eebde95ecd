package usecase

import (
	"context"

	"FinRisk/internal/domain/models"
	drepo "FinRisk/internal/domain/repository"
	"FinRisk/internal/services/risk"
	"FinRisk/internal/services/scoring"
	applogger "FinRisk/pkg/logger"
)

// DatasetBuilder assembles a labeled training table across symbols. Labels
// come from the rule-based classifier, never from the trained model, so the
// training pipeline has no circular dependency on its own output.
type DatasetBuilder struct {
	source drepo.PriceSource
	l      *applogger.Logger
}

func NewDatasetBuilder(source drepo.PriceSource, l *applogger.Logger) *DatasetBuilder {
	return &DatasetBuilder{source: source, l: l}
}

// Build fetches each symbol's trailing window and derives one training row
// per symbol. A failed fetch skips that symbol and continues; failures are
// returned per symbol so the caller can report partial batches.
func (b *DatasetBuilder) Build(ctx context.Context, symbols []string, days int) ([]models.TrainingRow, map[string]error) {
	rows := make([]models.TrainingRow, 0, len(symbols))
	failed := make(map[string]error)

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			failed[symbol] = err
			continue
		}
		series, err := b.source.FetchDailyCloses(ctx, symbol, days)
		if err != nil {
			failed[symbol] = err
			if b.l != nil {
				b.l.Warn("dataset: symbol skipped",
					applogger.String("symbol", symbol),
					applogger.Int("days", days),
					applogger.Error(err),
				)
			}
			continue
		}

		features := risk.Features(series)
		rows = append(rows, models.TrainingRow{
			Symbol:      symbol,
			WindowDays:  days,
			Volatility:  features.Volatility,
			MaxDrawdown: features.MaxDrawdown,
			MeanReturn:  features.MeanReturn,
			Label:       scoring.Classify(features.Volatility, features.MaxDrawdown),
		})
	}
	return rows, failed
}
