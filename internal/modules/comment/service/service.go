package comment

import (
	"context"
	"errors"
	"fmt"

	"titlerate/backend/internal/entity"
	"titlerate/backend/internal/modules/comment/dto"
	"titlerate/backend/internal/modules/comment/repository"
	reviewRepo "titlerate/backend/internal/modules/review/repository"
	"titlerate/backend/internal/permission"
	"titlerate/backend/pkg/apperror"
	commonDto "titlerate/backend/pkg/dto"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, actor *entity.User, titleID, reviewID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*dto.CommentResponse, error)
	GetCommentsByReview(ctx context.Context, titleID, reviewID uuid.UUID, page commonDto.PageQuery) (*dto.PaginatedCommentResponse, error)
	UpdateComment(ctx context.Context, actor *entity.User, titleID, reviewID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actor *entity.User, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	repo       repository.CommentRepository
	reviewRepo reviewRepo.ReviewRepository
	sanitizer  *bluemonday.Policy
}

func NewCommentService(repo repository.CommentRepository, reviewRepo reviewRepo.ReviewRepository) CommentService {
	return &commentService{
		repo:       repo,
		reviewRepo: reviewRepo,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

func (s *commentService) CreateComment(ctx context.Context, actor *entity.User, titleID, reviewID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := s.ensureReview(ctx, reviewID, titleID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Author:   *actor,
		Text:     s.sanitizer.Sanitize(req.Text),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*dto.CommentResponse, error) {
	if err := s.ensureReview(ctx, reviewID, titleID); err != nil {
		return nil, err
	}

	comment, err := s.findComment(ctx, commentID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) GetCommentsByReview(ctx context.Context, titleID, reviewID uuid.UUID, page commonDto.PageQuery) (*dto.PaginatedCommentResponse, error) {
	if err := s.ensureReview(ctx, reviewID, titleID); err != nil {
		return nil, err
	}

	page.Normalize()

	comments, total, err := s.repo.FindAllByReview(ctx, reviewID, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}

	var responses []dto.CommentResponse
	for _, comment := range comments {
		responses = append(responses, dto.NewCommentResponse(comment))
	}

	return &dto.PaginatedCommentResponse{
		Data: responses,
		Meta: commonDto.PaginationMeta{
			TotalItems: total,
			Page:       page.Page,
			PageSize:   page.PageSize,
		},
	}, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor *entity.User, titleID, reviewID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	if err := s.ensureReview(ctx, reviewID, titleID); err != nil {
		return nil, err
	}

	comment, err := s.findComment(ctx, commentID, reviewID)
	if err != nil {
		return nil, err
	}

	if !permission.CanModify(actor, comment.AuthorID) {
		return nil, fmt.Errorf("%w: not the author of this comment", apperror.ErrForbidden)
	}

	comment.Text = s.sanitizer.Sanitize(req.Text)

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor *entity.User, titleID, reviewID, commentID uuid.UUID) error {
	if err := s.ensureReview(ctx, reviewID, titleID); err != nil {
		return err
	}

	comment, err := s.findComment(ctx, commentID, reviewID)
	if err != nil {
		return err
	}

	if !permission.CanModify(actor, comment.AuthorID) {
		return fmt.Errorf("%w: not the author of this comment", apperror.ErrForbidden)
	}

	return s.repo.Delete(ctx, comment.ID)
}

// ensureReview checks that the review exists under the title named in the
// URL, so comments cannot be reached through a foreign title path.
func (s *commentService) ensureReview(ctx context.Context, reviewID, titleID uuid.UUID) error {
	if _, err := s.reviewRepo.FindByIDAndTitle(ctx, reviewID, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: review %s", apperror.ErrNotFound, reviewID)
		}
		return err
	}
	return nil
}

func (s *commentService) findComment(ctx context.Context, commentID, reviewID uuid.UUID) (*entity.Comment, error) {
	comment, err := s.repo.FindByIDAndReview(ctx, commentID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %s", apperror.ErrNotFound, commentID)
		}
		return nil, err
	}
	return comment, nil
}
