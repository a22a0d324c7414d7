package http

import (
	"context"
	"errors"
	"net/http"

	"hotstock/internal/dto"
	"hotstock/internal/hub"
	"hotstock/internal/service"
	"hotstock/pkg/common"
	"hotstock/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	hub       *hub.Hub
	log       *logger.Logger
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service, hub *hub.Hub, log *logger.Logger) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		hub:       hub,
		log:       log,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api")
	h.SetupStocks(base)
	h.SetupTags(base)
	h.SetupDanmaku(base)
	h.SetupPredictions(base)
	h.SetupWatchlist(base)
	h.SetupUsers(base)
	h.SetupWS()
}

// errorResponse maps service error kinds onto HTTP codes.
func (h *HttpAPIHandler) errorResponse(c echo.Context, err error) error {
	if rejected, ok := common.AsContentRejected(err); ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(rejected.Reason))
	}

	switch {
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, err.Error(), nil))
	case errors.Is(err, common.ErrDuplicate):
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	case errors.Is(err, common.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	case errors.Is(err, common.ErrUpstreamUnavailable):
		return c.JSON(http.StatusBadGateway, dto.NewBaseResponse(http.StatusBadGateway, err.Error(), nil))
	default:
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
}
