package dto

import (
	"time"

	"titlerate/backend/internal/entity"
	commonDto "titlerate/backend/pkg/dto"

	"github.com/google/uuid"
)

// Author and title are never taken from the payload; they come from the
// authenticated session and the URL path.
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,gte=1,lte=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,gte=1,lte=10"`
}

type ReviewResponse struct {
	ID      uuid.UUID `json:"id"`
	TitleID uuid.UUID `json:"title_id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type PaginatedReviewResponse struct {
	Data []ReviewResponse         `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

func NewReviewResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		TitleID: review.TitleID,
		Author:  review.Author.Username,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}
