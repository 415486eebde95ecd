//go:build wireinject
// +build wireinject

package di

import (
	"FinRisk/pkg/config"
	"FinRisk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// External services
		ProvidePriceSource,
		ProvideRiskModel,

		// Use cases
		ProvidePricing,

		// HTTP
		ProvideMarketHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
