package profile

import (
	"context"
	"errors"
	"fmt"

	"titlerate/backend/internal/entity"
	profileDto "titlerate/backend/internal/modules/profile/dto"
	userRepo "titlerate/backend/internal/modules/user/repository"
	"titlerate/backend/internal/permission"
	"titlerate/backend/pkg/apperror"
	pkgvalidator "titlerate/backend/pkg/validator"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetMe(ctx context.Context, actor *entity.User) (*profileDto.UserResponse, error)
	UpdateMe(ctx context.Context, actor *entity.User, input profileDto.UpdateMeInput) (*profileDto.UserResponse, error)
}

type profileService struct {
	repo userRepo.UserRepository
}

func NewProfileService(repo userRepo.UserRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) GetMe(ctx context.Context, actor *entity.User) (*profileDto.UserResponse, error) {
	return profileDto.NewUserResponse(actor), nil
}

func (s *profileService) UpdateMe(ctx context.Context, actor *entity.User, input profileDto.UpdateMeInput) (*profileDto.UserResponse, error) {
	if input.Username != nil && *input.Username != actor.Username {
		if err := pkgvalidator.ValidateUsername(*input.Username); err != nil {
			return nil, err
		}
		if err := s.ensureUsernameFree(ctx, *input.Username); err != nil {
			return nil, err
		}
		actor.Username = *input.Username
	}

	if input.Email != nil && *input.Email != actor.Email {
		if err := s.ensureEmailFree(ctx, *input.Email); err != nil {
			return nil, err
		}
		actor.Email = *input.Email
	}

	if input.FirstName != nil {
		actor.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		actor.LastName = *input.LastName
	}
	if input.Bio != nil {
		actor.Bio = *input.Bio
	}

	// A role field from a non-admin never escalates; it is dropped, not
	// rejected.
	if input.Role != nil && permission.CanSetRole(actor) {
		role := entity.Role(*input.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperror.ErrInvalidInput, *input.Role)
		}
		actor.Role = role
	}

	if err := s.repo.Update(ctx, actor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email is already taken", apperror.ErrConflict)
		}
		return nil, err
	}

	return profileDto.NewUserResponse(actor), nil
}

func (s *profileService) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return fmt.Errorf("%w: username is already taken", apperror.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *profileService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return fmt.Errorf("%w: email is already taken", apperror.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
