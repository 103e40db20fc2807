package handler

import (
	"fmt"
	"net/http"

	"titlerate/backend/internal/modules/title/dto"
	title "titlerate/backend/internal/modules/title/service"
	"titlerate/backend/pkg/apperror"
	"titlerate/backend/pkg/response"
	pkgvalidator "titlerate/backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TitleHandler struct {
	service title.TitleService
}

func NewTitleHandler(service title.TitleService) *TitleHandler {
	return &TitleHandler{service: service}
}

func titleID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("title_id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid title id", apperror.ErrInvalidInput)
	}
	return id, nil
}

func (h *TitleHandler) CreateTitle(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.CreateTitle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *TitleHandler) GetTitle(c *gin.Context) {
	id, err := titleID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.GetTitle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) GetAllTitles(c *gin.Context) {
	var filter dto.TitleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.service.GetAllTitles(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) UpdateTitle(c *gin.Context) {
	id, err := titleID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.UpdateTitle(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) DeleteTitle(c *gin.Context) {
	id, err := titleID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteTitle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
