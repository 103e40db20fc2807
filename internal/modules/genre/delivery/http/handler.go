package handler

import (
	"fmt"
	"net/http"

	"titlerate/backend/internal/modules/genre/dto"
	genre "titlerate/backend/internal/modules/genre/service"
	"titlerate/backend/pkg/apperror"
	"titlerate/backend/pkg/response"
	pkgvalidator "titlerate/backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	service genre.GenreService
}

func NewGenreHandler(service genre.GenreService) *GenreHandler {
	return &GenreHandler{service: service}
}

func (h *GenreHandler) CreateGenre(c *gin.Context) {
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.CreateGenre(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *GenreHandler) GetAllGenres(c *gin.Context) {
	var filter dto.GenreFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.service.GetAllGenres(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	if err := h.service.DeleteGenre(c.Request.Context(), c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
