package handler

import (
	"fmt"
	"net/http"

	adminDto "titlerate/backend/internal/modules/admin/dto"
	admin "titlerate/backend/internal/modules/admin/service"
	"titlerate/backend/pkg/apperror"
	commonDto "titlerate/backend/pkg/dto"
	"titlerate/backend/pkg/response"
	pkgvalidator "titlerate/backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service admin.AdminService
}

func NewAdminHandler(service admin.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page commonDto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.service.ListUsers(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input adminDto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.CreateUser(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	resp, err := h.service.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var input adminDto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.UpdateUser(c.Request.Context(), c.Param("username"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
