package http

import (
	"net/http"

	"hotstock/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStocks(base *echo.Group) {
	stocks := base.Group("/stocks")
	{
		stocks.GET("", h.ListStocks)
		stocks.GET("/:symbol", h.GetStock)
		stocks.GET("/:symbol/attribution", h.GetAttribution)
	}
}

func (h *HttpAPIHandler) ListStocks(c echo.Context) error {
	var param dto.ListStocksParam
	if err := c.Bind(&param); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(&param); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	listing, err := h.service.StockService.List(c.Request().Context(), param)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *HttpAPIHandler) GetStock(c echo.Context) error {
	stock, err := h.service.StockService.Get(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

func (h *HttpAPIHandler) GetAttribution(c echo.Context) error {
	result, err := h.service.SentimentService.Attribution(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
