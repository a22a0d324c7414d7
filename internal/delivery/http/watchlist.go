package http

import (
	"net/http"
	"strconv"

	"hotstock/internal/dto"
	"hotstock/pkg/common"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupWatchlist(base *echo.Group) {
	watchlist := base.Group("/watchlist")
	{
		watchlist.GET("/:user_id", h.GetWatchlist)
		watchlist.POST("", h.AddToWatchlist)
		watchlist.DELETE("", h.RemoveFromWatchlist)
		watchlist.GET("/check/:user_id/:symbol", h.CheckWatchlist)
	}
}

func (h *HttpAPIHandler) GetWatchlist(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(common.ErrInvalidInput.Error()))
	}

	stocks, err := h.service.StockService.Watchlist(c.Request().Context(), uint(userID))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, stocks)
}

func (h *HttpAPIHandler) AddToWatchlist(c echo.Context) error {
	var req dto.WatchlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	if err := h.service.StockService.AddToWatchlist(c.Request().Context(), req.UserID, req.StockSymbol); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("added to watchlist", nil))
}

func (h *HttpAPIHandler) RemoveFromWatchlist(c echo.Context) error {
	var req dto.WatchlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	if err := h.service.StockService.RemoveFromWatchlist(c.Request().Context(), req.UserID, req.StockSymbol); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("removed from watchlist", nil))
}

func (h *HttpAPIHandler) CheckWatchlist(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(common.ErrInvalidInput.Error()))
	}

	exists, err := h.service.StockService.InWatchlist(c.Request().Context(), uint(userID), c.Param("symbol"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.WatchlistCheckResponse{Exists: exists})
}
