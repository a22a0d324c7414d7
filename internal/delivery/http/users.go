package http

import (
	"net/http"
	"strconv"

	"hotstock/internal/dto"
	"hotstock/pkg/common"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupUsers(base *echo.Group) {
	base.GET("/users/:id", h.GetUser)
}

func (h *HttpAPIHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(common.ErrInvalidInput.Error()))
	}

	user, err := h.service.StockService.GetUser(c.Request().Context(), uint(id))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
