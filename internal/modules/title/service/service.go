package title

import (
	"context"
	"errors"
	"fmt"
	"time"

	"titlerate/backend/internal/entity"
	categoryRepo "titlerate/backend/internal/modules/category/repository"
	genreRepo "titlerate/backend/internal/modules/genre/repository"
	"titlerate/backend/internal/modules/title/dto"
	"titlerate/backend/internal/modules/title/repository"
	"titlerate/backend/pkg/apperror"
	commonDto "titlerate/backend/pkg/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TitleService interface {
	CreateTitle(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error)
	GetTitle(ctx context.Context, id uuid.UUID) (*dto.TitleResponse, error)
	GetAllTitles(ctx context.Context, filter dto.TitleFilter) (*dto.PaginatedTitleResponse, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, req dto.UpdateTitleRequest) (*dto.TitleResponse, error)
	DeleteTitle(ctx context.Context, id uuid.UUID) error
}

type titleService struct {
	repo         repository.TitleRepository
	genreRepo    genreRepo.GenreRepository
	categoryRepo categoryRepo.CategoryRepository
}

func NewTitleService(repo repository.TitleRepository, genreRepo genreRepo.GenreRepository, categoryRepo categoryRepo.CategoryRepository) TitleService {
	return &titleService{
		repo:         repo,
		genreRepo:    genreRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *titleService) CreateTitle(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	title := &entity.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Genres:      genres,
	}

	if req.Category != "" {
		category, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.repo.Create(ctx, title); err != nil {
		return nil, err
	}

	resp := dto.NewTitleResponse(title, nil)
	return &resp, nil
}

func (s *titleService) GetTitle(ctx context.Context, id uuid.UUID) (*dto.TitleResponse, error) {
	title, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := s.repo.AverageScore(ctx, title.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewTitleResponse(title, rating)
	return &resp, nil
}

func (s *titleService) GetAllTitles(ctx context.Context, filter dto.TitleFilter) (*dto.PaginatedTitleResponse, error) {
	filter.Normalize()

	titles, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}
	scores, err := s.repo.AverageScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	var responses []dto.TitleResponse
	for _, t := range titles {
		var rating *float64
		if avg, ok := scores[t.ID]; ok {
			value := avg
			rating = &value
		}
		responses = append(responses, dto.NewTitleResponse(t, rating))
	}

	return &dto.PaginatedTitleResponse{
		Data: responses,
		Meta: commonDto.PaginationMeta{
			TotalItems: total,
			Page:       filter.Page,
			PageSize:   filter.PageSize,
		},
	}, nil
}

func (s *titleService) UpdateTitle(ctx context.Context, id uuid.UUID, req dto.UpdateTitleRequest) (*dto.TitleResponse, error) {
	title, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}

	var genres []entity.Genre
	if req.Genres != nil {
		genres, err = s.resolveGenres(ctx, *req.Genres)
		if err != nil {
			return nil, err
		}
	}

	if req.Category != nil {
		if *req.Category == "" {
			title.CategoryID = nil
			title.Category = nil
		} else {
			category, err := s.resolveCategory(ctx, *req.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
			title.Category = category
		}
	}

	if err := s.repo.Update(ctx, title, genres); err != nil {
		return nil, err
	}

	updated, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := s.repo.AverageScore(ctx, updated.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewTitleResponse(updated, rating)
	return &resp, nil
}

func (s *titleService) DeleteTitle(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *titleService) findByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	title, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: title %s", apperror.ErrNotFound, id)
		}
		return nil, err
	}
	return title, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]entity.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		for _, slug := range slugs {
			if !found[slug] {
				return nil, fmt.Errorf("%w: unknown genre %q", apperror.ErrInvalidInput, slug)
			}
		}
	}

	return genres, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown category %q", apperror.ErrInvalidInput, slug)
		}
		return nil, err
	}
	return category, nil
}

func validateYear(year int) error {
	if year > time.Now().Year() {
		return fmt.Errorf("%w: release year cannot be in the future", apperror.ErrInvalidInput)
	}
	return nil
}
