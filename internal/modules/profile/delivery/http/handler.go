package handler

import (
	"fmt"
	"net/http"

	profileDto "titlerate/backend/internal/modules/profile/dto"
	profile "titlerate/backend/internal/modules/profile/service"
	"titlerate/backend/pkg/apperror"
	"titlerate/backend/pkg/response"
	pkgvalidator "titlerate/backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service profile.ProfileService
}

func NewProfileHandler(service profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	user, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.GetMe(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	user, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input profileDto.UpdateMeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.UpdateMe(c.Request.Context(), user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
