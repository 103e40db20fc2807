package dto

import (
	"titlerate/backend/internal/entity"
	categoryDto "titlerate/backend/internal/modules/category/dto"
	genreDto "titlerate/backend/internal/modules/genre/dto"
	commonDto "titlerate/backend/pkg/dto"

	"github.com/google/uuid"
)

type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Genres      []string `json:"genre" binding:"required,min=1,dive,max=50"`
	Category    string   `json:"category" binding:"omitempty,max=50"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Genres      *[]string `json:"genre" binding:"omitempty,min=1,dive,max=50"`
	Category    *string   `json:"category" binding:"omitempty,max=50"`
}

type TitleFilter struct {
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Name     string `form:"name"`
	Year     int    `form:"year"`
	commonDto.PageQuery
}

// Rating is the mean review score, null while the title has no reviews.
type TitleResponse struct {
	ID          uuid.UUID                     `json:"id"`
	Name        string                        `json:"name"`
	Year        int                           `json:"year"`
	Rating      *float64                      `json:"rating"`
	Description string                        `json:"description"`
	Category    *categoryDto.CategoryResponse `json:"category"`
	Genres      []genreDto.GenreResponse      `json:"genre"`
}

type PaginatedTitleResponse struct {
	Data []TitleResponse          `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

func NewTitleResponse(title *entity.Title, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
	}

	if title.Category != nil {
		resp.Category = &categoryDto.CategoryResponse{
			ID:   title.Category.ID,
			Name: title.Category.Name,
			Slug: title.Category.Slug,
		}
	}

	for _, g := range title.Genres {
		resp.Genres = append(resp.Genres, genreDto.GenreResponse{
			ID:   g.ID,
			Name: g.Name,
			Slug: g.Slug,
		})
	}

	return resp
}
