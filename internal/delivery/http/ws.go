package http

import (
	"context"

	"hotstock/internal/dto"
	"hotstock/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SetupWS exposes the live channel. The hub owns the connection lifecycle;
// inbound danmaku submissions flow through the same service path as any other
// mutation.
func (h *HttpAPIHandler) SetupWS() {
	h.echo.GET("/ws", echo.WrapHandler(h.hub.ServeWS(h.handleDanmaku)))
}

func (h *HttpAPIHandler) handleDanmaku(ctx context.Context, msg dto.InboundMessage) {
	// Errors stop here: a bad submission never tears down the connection or
	// the broadcast loop.
	if _, err := h.service.DanmakuService.Publish(ctx, msg.StockSymbol, msg.UserID, msg.Content); err != nil {
		h.log.WarnContext(ctx, "danmaku submission dropped",
			logger.StringField("symbol", msg.StockSymbol),
			logger.ErrorField(err),
		)
	}
}
