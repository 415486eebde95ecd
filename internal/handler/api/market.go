package api

import (
	"errors"

	models "FinRisk/internal/domain/models"
	"FinRisk/internal/usecase"
	xhttp "FinRisk/pkg/http"
	xlogger "FinRisk/pkg/logger"
	"FinRisk/pkg/util"

	"github.com/labstack/echo/v4"
)

// MarketHandler exposes the price and risk endpoints over Echo.
type MarketHandler struct {
	logger  *xlogger.Logger
	pricing *usecase.Pricing
}

func NewMarketHandler(logger *xlogger.Logger, pricing *usecase.Pricing) *MarketHandler {
	return &MarketHandler{logger: logger, pricing: pricing}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/price/:symbol", h.Price)
	e.GET("/history/:symbol", h.History)
	e.GET("/risk/:symbol", h.Risk)
	e.GET("/risk-profile/:symbol", h.RiskProfile)
	e.GET("/predict/:symbol", h.Predict)
}

func (h *MarketHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.HealthResponse{Status: "ok"})
}

func (h *MarketHandler) Price(c echo.Context) error {
	req := &models.PriceRequest{}
	if verr := xhttp.BindRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	price, err := h.pricing.CurrentPrice(c.Request().Context(), req.Symbol)
	if err != nil {
		if models.IsNoData(err) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
		}
		h.logger.Error("price lookup failed", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, models.PriceResponse{Symbol: req.Symbol, Price: price})
}

func (h *MarketHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.BindRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	series, err := h.pricing.History(c.Request().Context(), req.Symbol, req.Days)
	if err != nil {
		if models.IsNoData(err) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
		}
		h.logger.Error("history lookup failed", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	points := make([]models.HistoryPoint, 0, len(series))
	for _, p := range series {
		points = append(points, models.HistoryPoint{Date: util.FormatDay(p.Date), Close: p.Close})
	}
	return xhttp.SuccessResponse(c, models.HistoryResponse{
		Symbol: req.Symbol,
		Days:   req.Days,
		Prices: points,
	})
}

func (h *MarketHandler) Risk(c echo.Context) error {
	req := &models.RiskRequest{}
	if verr := xhttp.BindRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	features, err := h.pricing.RiskMetrics(c.Request().Context(), req.Symbol, req.Days)
	if err != nil {
		if models.IsNoData(err) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
		}
		h.logger.Error("risk metrics failed", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, models.RiskResponse{
		Symbol: req.Symbol,
		Days:   req.Days,
		Metrics: models.RiskMetricsBody{
			Volatility:  models.JSONFloat(features.Volatility),
			MaxDrawdown: models.JSONFloat(features.MaxDrawdown),
			MeanReturn:  models.JSONFloat(features.MeanReturn),
		},
	})
}

// RiskProfile reports a missing symbol as 400 rather than 404. Clients
// depend on this status, so it stays even though the sibling endpoints
// use 404 for the same condition.
func (h *MarketHandler) RiskProfile(c echo.Context) error {
	req := &models.RiskRequest{}
	if verr := xhttp.BindRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	features, level, err := h.pricing.RiskProfile(c.Request().Context(), req.Symbol, req.Days)
	if err != nil {
		if models.IsNoData(err) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
		}
		h.logger.Error("risk profile failed", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, models.RiskProfileResponse{
		Symbol: req.Symbol,
		Days:   req.Days,
		Profile: models.RiskProfileBody{
			Volatility:  models.JSONFloat(features.Volatility),
			MaxDrawdown: models.JSONFloat(features.MaxDrawdown),
			RiskLevel:   level,
		},
	})
}

func (h *MarketHandler) Predict(c echo.Context) error {
	req := &models.RiskRequest{}
	if verr := xhttp.BindRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	features, level, err := h.pricing.PredictProfile(c.Request().Context(), req.Symbol, req.Days)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrModelNotLoaded):
			return xhttp.AppErrorResponse(c, xhttp.UnavailableError(err.Error()))
		case models.IsNoData(err):
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
		default:
			h.logger.Error("prediction failed", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.InternalError("prediction failed"))
		}
	}
	return xhttp.SuccessResponse(c, models.PredictionResponse{
		Symbol: req.Symbol,
		Days:   req.Days,
		Prediction: models.PredictionBody{
			Volatility:  models.JSONFloat(features.Volatility),
			MaxDrawdown: models.JSONFloat(features.MaxDrawdown),
			MeanReturn:  models.JSONFloat(features.MeanReturn),
			RiskLevel:   level,
		},
	})
}
