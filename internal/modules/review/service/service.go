package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"titlerate/backend/internal/entity"
	"titlerate/backend/internal/modules/review/dto"
	"titlerate/backend/internal/modules/review/repository"
	titleRepo "titlerate/backend/internal/modules/title/repository"
	"titlerate/backend/internal/permission"
	"titlerate/backend/pkg/apperror"
	commonDto "titlerate/backend/pkg/dto"
	"titlerate/backend/pkg/ratelimiter"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, actor *entity.User, titleID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*dto.ReviewResponse, error)
	GetReviewsByTitle(ctx context.Context, titleID uuid.UUID, page commonDto.PageQuery) (*dto.PaginatedReviewResponse, error)
	UpdateReview(ctx context.Context, actor *entity.User, titleID, reviewID uuid.UUID, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, actor *entity.User, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	repo           repository.ReviewRepository
	titleRepo      titleRepo.TitleRepository
	redisClient    *redis.Client
	reviewCooldown time.Duration
	sanitizer      *bluemonday.Policy
}

func NewReviewService(repo repository.ReviewRepository, titleRepo titleRepo.TitleRepository, redisClient *redis.Client, reviewCooldown time.Duration) ReviewService {
	return &reviewService{
		repo:           repo,
		titleRepo:      titleRepo,
		redisClient:    redisClient,
		reviewCooldown: reviewCooldown,
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

// CreateReview stamps author and title server-side and enforces the
// one-review-per-user-per-title invariant. The read-check is a fast path;
// the composite unique index catches concurrent duplicates.
func (s *reviewService) CreateReview(ctx context.Context, actor *entity.User, titleID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := s.titleRepo.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: title %s", apperror.ErrNotFound, titleID)
		}
		return nil, err
	}

	if _, err := s.repo.FindByTitleAndAuthor(ctx, titleID, actor.ID); err == nil {
		return nil, fmt.Errorf("%w: user has already reviewed this title", apperror.ErrInvalidInput)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	allowed, err := ratelimiter.CheckAndSet(ctx, s.redisClient, actor.ID.String(), "review", s.reviewCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimiter.TTL(ctx, s.redisClient, actor.ID.String(), "review")
		return nil, fmt.Errorf("%w: try again in %.0f seconds", apperror.ErrRateLimitExceeded, ttl.Seconds())
	}

	review := &entity.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Author:   *actor,
		Text:     s.sanitizer.Sanitize(req.Text),
		Score:    req.Score,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		_ = ratelimiter.Clear(ctx, s.redisClient, actor.ID.String(), "review")
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user has already reviewed this title", apperror.ErrInvalidInput)
		}
		return nil, err
	}

	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*dto.ReviewResponse, error) {
	review, err := s.findByIDAndTitle(ctx, reviewID, titleID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) GetReviewsByTitle(ctx context.Context, titleID uuid.UUID, page commonDto.PageQuery) (*dto.PaginatedReviewResponse, error) {
	if _, err := s.titleRepo.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: title %s", apperror.ErrNotFound, titleID)
		}
		return nil, err
	}

	page.Normalize()

	reviews, total, err := s.repo.FindAllByTitle(ctx, titleID, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}

	var responses []dto.ReviewResponse
	for _, review := range reviews {
		responses = append(responses, dto.NewReviewResponse(review))
	}

	return &dto.PaginatedReviewResponse{
		Data: responses,
		Meta: commonDto.PaginationMeta{
			TotalItems: total,
			Page:       page.Page,
			PageSize:   page.PageSize,
		},
	}, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, actor *entity.User, titleID, reviewID uuid.UUID, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.findByIDAndTitle(ctx, reviewID, titleID)
	if err != nil {
		return nil, err
	}

	if !permission.CanModify(actor, review.AuthorID) {
		return nil, fmt.Errorf("%w: not the author of this review", apperror.ErrForbidden)
	}

	if req.Text != nil {
		review.Text = s.sanitizer.Sanitize(*req.Text)
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	resp := dto.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor *entity.User, titleID, reviewID uuid.UUID) error {
	review, err := s.findByIDAndTitle(ctx, reviewID, titleID)
	if err != nil {
		return err
	}

	if !permission.CanModify(actor, review.AuthorID) {
		return fmt.Errorf("%w: not the author of this review", apperror.ErrForbidden)
	}

	return s.repo.Delete(ctx, review.ID)
}

func (s *reviewService) findByIDAndTitle(ctx context.Context, reviewID, titleID uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.FindByIDAndTitle(ctx, reviewID, titleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review %s", apperror.ErrNotFound, reviewID)
		}
		return nil, err
	}
	return review, nil
}
