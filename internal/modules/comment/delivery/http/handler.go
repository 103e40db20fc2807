package handler

import (
	"fmt"
	"net/http"

	"titlerate/backend/internal/modules/comment/dto"
	comment "titlerate/backend/internal/modules/comment/service"
	"titlerate/backend/pkg/apperror"
	commonDto "titlerate/backend/pkg/dto"
	"titlerate/backend/pkg/response"
	pkgvalidator "titlerate/backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(service comment.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func pathIDs(c *gin.Context, names ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, err := uuid.Parse(c.Param(name))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s", apperror.ErrInvalidInput, name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	user, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ids, err := pathIDs(c, "title_id", "review_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.CreateComment(c.Request.Context(), user, ids[0], ids[1], req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	ids, err := pathIDs(c, "title_id", "review_id", "comment_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.GetComment(c.Request.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) GetCommentsByReview(c *gin.Context) {
	ids, err := pathIDs(c, "title_id", "review_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var page commonDto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.service.GetCommentsByReview(c.Request.Context(), ids[0], ids[1], page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	user, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ids, err := pathIDs(c, "title_id", "review_id", "comment_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, pkgvalidator.FormatValidationError(err)))
		return
	}

	resp, err := h.service.UpdateComment(c.Request.Context(), user, ids[0], ids[1], ids[2], req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	user, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ids, err := pathIDs(c, "title_id", "review_id", "comment_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), user, ids[0], ids[1], ids[2]); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
