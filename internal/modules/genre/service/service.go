package genre

import (
	"context"
	"errors"
	"fmt"

	"titlerate/backend/internal/entity"
	"titlerate/backend/internal/modules/genre/dto"
	"titlerate/backend/internal/modules/genre/repository"
	"titlerate/backend/pkg/apperror"
	commonDto "titlerate/backend/pkg/dto"
	pkgvalidator "titlerate/backend/pkg/validator"

	"gorm.io/gorm"
)

type GenreService interface {
	CreateGenre(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error)
	GetAllGenres(ctx context.Context, filter dto.GenreFilter) (*dto.PaginatedGenreResponse, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) CreateGenre(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error) {
	if err := pkgvalidator.ValidateSlug(req.Slug); err != nil {
		return nil, err
	}

	genre := &entity.Genre{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: genre slug %q already exists", apperror.ErrConflict, req.Slug)
		}
		return nil, err
	}

	return &dto.GenreResponse{ID: genre.ID, Name: genre.Name, Slug: genre.Slug}, nil
}

func (s *genreService) GetAllGenres(ctx context.Context, filter dto.GenreFilter) (*dto.PaginatedGenreResponse, error) {
	filter.Normalize()

	genres, total, err := s.repo.FindAll(ctx, filter.Search, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	var responses []dto.GenreResponse
	for _, g := range genres {
		responses = append(responses, dto.GenreResponse{
			ID:   g.ID,
			Name: g.Name,
			Slug: g.Slug,
		})
	}

	return &dto.PaginatedGenreResponse{
		Data: responses,
		Meta: commonDto.PaginationMeta{
			TotalItems: total,
			Page:       filter.Page,
			PageSize:   filter.PageSize,
		},
	}, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, slug string) error {
	if _, err := s.repo.FindBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: genre %q", apperror.ErrNotFound, slug)
		}
		return err
	}

	return s.repo.DeleteBySlug(ctx, slug)
}
