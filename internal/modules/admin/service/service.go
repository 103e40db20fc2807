package admin

import (
	"context"
	"errors"
	"fmt"

	"titlerate/backend/internal/entity"
	adminDto "titlerate/backend/internal/modules/admin/dto"
	profileDto "titlerate/backend/internal/modules/profile/dto"
	userRepo "titlerate/backend/internal/modules/user/repository"
	userService "titlerate/backend/internal/modules/user/service"
	"titlerate/backend/pkg/apperror"
	commonDto "titlerate/backend/pkg/dto"
	"titlerate/backend/pkg/mailer"
	pkgvalidator "titlerate/backend/pkg/validator"

	"gorm.io/gorm"
)

type AdminService interface {
	ListUsers(ctx context.Context, page commonDto.PageQuery) (*adminDto.ListUsersResponse, error)
	CreateUser(ctx context.Context, input adminDto.CreateUserInput) (*profileDto.UserResponse, error)
	GetUser(ctx context.Context, username string) (*profileDto.UserResponse, error)
	UpdateUser(ctx context.Context, username string, input adminDto.UpdateUserInput) (*profileDto.UserResponse, error)
	DeleteUser(ctx context.Context, username string) error
}

type adminService struct {
	repo  userRepo.UserRepository
	sink  mailer.Sink
	codes userService.CodeSource
}

func NewAdminService(repo userRepo.UserRepository, sink mailer.Sink, codes userService.CodeSource) AdminService {
	return &adminService{
		repo:  repo,
		sink:  sink,
		codes: codes,
	}
}

func (s *adminService) ListUsers(ctx context.Context, page commonDto.PageQuery) (*adminDto.ListUsersResponse, error) {
	page.Normalize()

	users, total, err := s.repo.FindAll(ctx, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}

	return adminDto.NewListUsersResponse(users, commonDto.PaginationMeta{
		TotalItems: total,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}), nil
}

// CreateUser registers an identity on behalf of an admin. The new identity
// still confirms by email: a code is issued and sent the same way as on
// self sign-up.
func (s *adminService) CreateUser(ctx context.Context, input adminDto.CreateUserInput) (*profileDto.UserResponse, error) {
	if err := pkgvalidator.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	role := entity.RoleUser
	if input.Role != "" {
		role = entity.Role(input.Role)
	}

	user := &entity.User{
		Username:         input.Username,
		Email:            input.Email,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Bio:              input.Bio,
		Role:             role,
		ConfirmationCode: s.codes.Code(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email is already taken", apperror.ErrConflict)
		}
		return nil, err
	}

	body := fmt.Sprintf("Your confirmation code: %s", user.ConfirmationCode)
	if err := s.sink.Send(ctx, user.Email, "Confirmation code", body); err != nil {
		return nil, err
	}

	return profileDto.NewUserResponse(user), nil
}

func (s *adminService) GetUser(ctx context.Context, username string) (*profileDto.UserResponse, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return profileDto.NewUserResponse(user), nil
}

func (s *adminService) UpdateUser(ctx context.Context, username string, input adminDto.UpdateUserInput) (*profileDto.UserResponse, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if err := pkgvalidator.ValidateUsername(*input.Username); err != nil {
			return nil, err
		}
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		user.Role = entity.Role(*input.Role)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email is already taken", apperror.ErrConflict)
		}
		return nil, err
	}

	return profileDto.NewUserResponse(user), nil
}

func (s *adminService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, user.ID)
}

func (s *adminService) findByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", apperror.ErrNotFound, username)
		}
		return nil, err
	}
	return user, nil
}
