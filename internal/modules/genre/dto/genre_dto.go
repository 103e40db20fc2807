package dto

import (
	commonDto "titlerate/backend/pkg/dto"

	"github.com/google/uuid"
)

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type GenreResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type GenreFilter struct {
	Search string `form:"search"`
	commonDto.PageQuery
}

type PaginatedGenreResponse struct {
	Data []GenreResponse          `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
