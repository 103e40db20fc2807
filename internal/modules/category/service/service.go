package category

import (
	"context"
	"errors"
	"fmt"

	"titlerate/backend/internal/entity"
	"titlerate/backend/internal/modules/category/dto"
	"titlerate/backend/internal/modules/category/repository"
	"titlerate/backend/pkg/apperror"
	commonDto "titlerate/backend/pkg/dto"
	pkgvalidator "titlerate/backend/pkg/validator"

	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetAllCategories(ctx context.Context, filter dto.CategoryFilter) (*dto.PaginatedCategoryResponse, error)
	DeleteCategory(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := pkgvalidator.ValidateSlug(req.Slug); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category slug %q already exists", apperror.ErrConflict, req.Slug)
		}
		return nil, err
	}

	return &dto.CategoryResponse{ID: category.ID, Name: category.Name, Slug: category.Slug}, nil
}

func (s *categoryService) GetAllCategories(ctx context.Context, filter dto.CategoryFilter) (*dto.PaginatedCategoryResponse, error) {
	filter.Normalize()

	categories, total, err := s.repo.FindAll(ctx, filter.Search, filter.Page, filter.PageSize)
	if err != nil {
		return nil, err
	}

	var responses []dto.CategoryResponse
	for _, cat := range categories {
		responses = append(responses, dto.CategoryResponse{
			ID:   cat.ID,
			Name: cat.Name,
			Slug: cat.Slug,
		})
	}

	return &dto.PaginatedCategoryResponse{
		Data: responses,
		Meta: commonDto.PaginationMeta{
			TotalItems: total,
			Page:       filter.Page,
			PageSize:   filter.PageSize,
		},
	}, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, slug string) error {
	if _, err := s.repo.FindBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %q", apperror.ErrNotFound, slug)
		}
		return err
	}

	return s.repo.DeleteBySlug(ctx, slug)
}
