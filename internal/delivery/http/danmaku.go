package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupDanmaku(base *echo.Group) {
	base.GET("/danmaku/:symbol", h.DanmakuHistory)
}

func (h *HttpAPIHandler) DanmakuHistory(c echo.Context) error {
	history, err := h.service.DanmakuService.History(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, history)
}
