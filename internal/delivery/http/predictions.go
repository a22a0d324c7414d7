package http

import (
	"net/http"

	"hotstock/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPredictions(base *echo.Group) {
	predictions := base.Group("/predictions")
	{
		predictions.POST("", h.RecordPrediction)
		predictions.GET("/stats/:symbol", h.PredictionStats)
	}
}

func (h *HttpAPIHandler) RecordPrediction(c echo.Context) error {
	var req dto.RecordPredictionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	prediction, err := h.service.PredictionService.Record(c.Request().Context(), req.UserID, req.StockSymbol, req.Direction)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("prediction recorded", prediction))
}

func (h *HttpAPIHandler) PredictionStats(c echo.Context) error {
	stats, err := h.service.PredictionService.Stats(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
