package handler

import (
	"fmt"
	"net/http"

	"titlerate/backend/internal/modules/review/dto"
	review "titlerate/backend/internal/modules/review/service"
	"titlerate/backend/pkg/apperror"
	commonDto "titlerate/backend/pkg/dto"
	"titlerate/backend/pkg/response"
	pkgvalidator "titlerate/backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service review.ReviewService
}

func NewReviewHandler(service review.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", apperror.ErrInvalidInput, name)
	}
	return id, nil
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	user, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.CreateReview(c.Request.Context(), user, titleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.GetReview(c.Request.Context(), titleID, reviewID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) GetReviewsByTitle(c *gin.Context) {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var page commonDto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.service.GetReviewsByTitle(c.Request.Context(), titleID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	user, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.UpdateReview(c.Request.Context(), user, titleID, reviewID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	user, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	titleID, err := pathID(c, "title_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), user, titleID, reviewID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
