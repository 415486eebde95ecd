package di

import (
	"FinRisk/internal/domain/repository"
	"FinRisk/internal/handler/api"
	"FinRisk/internal/service/yahoo"
	"FinRisk/internal/services/mlmodel"
	"FinRisk/internal/usecase"
	"FinRisk/pkg/config"
	xhttp "FinRisk/pkg/http"
	applogger "FinRisk/pkg/logger"
	"FinRisk/pkg/metrics"
	"FinRisk/pkg/server"
)

// ProvideLogger creates the structured application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePriceSource creates the Yahoo-backed price source.
func ProvidePriceSource(cfg *config.Config) repository.PriceSource {
	return yahoo.New(cfg.Provider.BaseURL, cfg.Provider.Timeout)
}

// ProvideRiskModel loads the trained risk model if one is configured. A
// missing or unreadable model is not fatal: the prediction endpoint then
// reports 503 while the rule-based endpoints keep working.
func ProvideRiskModel(cfg *config.Config, l *applogger.Logger) *mlmodel.RiskModel {
	if cfg.Model.Path == "" {
		return nil
	}
	model, err := mlmodel.Load(cfg.Model.Path)
	if err != nil {
		l.Warn("risk model not loaded",
			applogger.String("path", cfg.Model.Path),
			applogger.Error(err),
		)
		return nil
	}
	l.Info("risk model loaded", applogger.String("path", cfg.Model.Path))
	return model
}

// ProvidePricing creates the pricing use case.
func ProvidePricing(source repository.PriceSource, model *mlmodel.RiskModel, m repository.Metrics) *usecase.Pricing {
	return usecase.NewPricing(source, model, m)
}

// ProvideMarketHandler creates the HTTP handler for the market endpoints.
func ProvideMarketHandler(l *applogger.Logger, pricing *usecase.Pricing) xhttp.Handler {
	return api.NewMarketHandler(l, pricing)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, l, handler)
}
