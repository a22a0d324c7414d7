package http

import (
	"net/http"
	"strconv"

	"hotstock/internal/dto"
	"hotstock/pkg/common"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupTags(base *echo.Group) {
	base.GET("/stocks/:symbol/tags", h.ListTags)
	base.POST("/stocks/:symbol/tags", h.CreateTag)
	base.GET("/stocks/:symbol/suggest-tags", h.SuggestTags)
	base.GET("/tags/:id", h.GetTag)
	base.POST("/tags/:id/vote", h.VoteTag)
}

func (h *HttpAPIHandler) ListTags(c echo.Context) error {
	tags, err := h.service.TagService.ListVisible(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *HttpAPIHandler) CreateTag(c echo.Context) error {
	var req dto.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	tag, err := h.service.TagService.Create(c.Request().Context(), c.Param("symbol"), req.Content)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("tag created", tag))
}

func (h *HttpAPIHandler) SuggestTags(c echo.Context) error {
	tags, err := h.service.TagService.Suggest(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *HttpAPIHandler) GetTag(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(common.ErrInvalidInput.Error()))
	}

	tag, err := h.service.TagService.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, tag)
}

func (h *HttpAPIHandler) VoteTag(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(common.ErrInvalidInput.Error()))
	}

	var req dto.VoteTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	if err := h.service.TagService.Vote(c.Request().Context(), uint(id), req.Type); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("vote recorded", nil))
}
