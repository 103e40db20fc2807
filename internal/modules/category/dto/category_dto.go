package dto

import (
	commonDto "titlerate/backend/pkg/dto"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type CategoryFilter struct {
	Search string `form:"search"`
	commonDto.PageQuery
}

type PaginatedCategoryResponse struct {
	Data []CategoryResponse       `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
