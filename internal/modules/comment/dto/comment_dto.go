package dto

import (
	"time"

	"titlerate/backend/internal/entity"
	commonDto "titlerate/backend/pkg/dto"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID       uuid.UUID `json:"id"`
	ReviewID uuid.UUID `json:"review_id"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

type PaginatedCommentResponse struct {
	Data []CommentResponse        `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

func NewCommentResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:       comment.ID,
		ReviewID: comment.ReviewID,
		Author:   comment.Author.Username,
		Text:     comment.Text,
		PubDate:  comment.PubDate,
	}
}
