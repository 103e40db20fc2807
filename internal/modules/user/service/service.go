package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"titlerate/backend/internal/entity"
	"titlerate/backend/internal/modules/user/dto"
	"titlerate/backend/internal/modules/user/repository"
	"titlerate/backend/internal/token"
	"titlerate/backend/pkg/apperror"
	"titlerate/backend/pkg/mailer"
	"titlerate/backend/pkg/ratelimiter"
	pkgvalidator "titlerate/backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const confirmationSubject = "Confirmation code"

type AuthService interface {
	SignUp(ctx context.Context, input dto.SignUpInput) (*dto.SignUpResponse, error)
	ExchangeToken(ctx context.Context, input dto.TokenInput) (*dto.TokenResponse, error)
}

type authService struct {
	repo           repository.UserRepository
	sink           mailer.Sink
	tokens         *token.Manager
	codes          CodeSource
	redisClient    *redis.Client
	signupCooldown time.Duration
}

func NewAuthService(repo repository.UserRepository, sink mailer.Sink, tokens *token.Manager, codes CodeSource, redisClient *redis.Client, signupCooldown time.Duration) AuthService {
	return &authService{
		repo:           repo,
		sink:           sink,
		tokens:         tokens,
		codes:          codes,
		redisClient:    redisClient,
		signupCooldown: signupCooldown,
	}
}

// SignUp issues a confirmation code for a (username, email) pair. Repeating
// the exact same pair is the resend path: a fresh code replaces the stored
// one and the identity is untouched, so clients can safely retry lost
// emails. Binding either field to a different identity is a conflict.
func (s *authService) SignUp(ctx context.Context, input dto.SignUpInput) (*dto.SignUpResponse, error) {
	if err := pkgvalidator.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	allowed, err := ratelimiter.CheckAndSet(ctx, s.redisClient, input.Email, "signup", s.signupCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimiter.TTL(ctx, s.redisClient, input.Email, "signup")
		return nil, fmt.Errorf("%w: try again in %.0f seconds", apperror.ErrRateLimitExceeded, ttl.Seconds())
	}

	byUsername, err := s.findIgnoreMissing(func() (*entity.User, error) {
		return s.repo.FindByUsername(ctx, input.Username)
	})
	if err != nil {
		return nil, err
	}
	byEmail, err := s.findIgnoreMissing(func() (*entity.User, error) {
		return s.repo.FindByEmail(ctx, input.Email)
	})
	if err != nil {
		return nil, err
	}

	var user *entity.User
	switch {
	case byUsername == nil && byEmail == nil:
		user = &entity.User{
			Username: input.Username,
			Email:    input.Email,
			Role:     entity.RoleUser,
		}
		user.ConfirmationCode = s.codes.Code()
		if err := s.repo.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race with a concurrent sign-up for the same pair.
				return nil, fmt.Errorf("%w: username or email is already taken", apperror.ErrConflict)
			}
			return nil, err
		}

	case byUsername != nil && byEmail != nil && byUsername.ID == byEmail.ID:
		// Resend: same pair, fresh code.
		user = byUsername
		user.ConfirmationCode = s.codes.Code()
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}

	case byUsername != nil && byEmail != nil:
		return nil, fmt.Errorf("%w: email is already taken; username is already taken", apperror.ErrConflict)
	case byEmail != nil:
		return nil, fmt.Errorf("%w: email is already taken", apperror.ErrConflict)
	default:
		return nil, fmt.Errorf("%w: username is already taken", apperror.ErrConflict)
	}

	body := fmt.Sprintf("Your confirmation code: %s", user.ConfirmationCode)
	if err := s.sink.Send(ctx, user.Email, confirmationSubject, body); err != nil {
		// The identity stays committed; the client retries and lands on
		// the resend path.
		return nil, err
	}

	return &dto.SignUpResponse{
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

// ExchangeToken trades a confirmation code for an access token. Codes are
// single-use: a successful exchange clears the stored code, a mismatch
// leaves it in place so the owner can retry.
func (s *authService) ExchangeToken(ctx context.Context, input dto.TokenInput) (*dto.TokenResponse, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", apperror.ErrNotFound, input.Username)
		}
		return nil, err
	}

	// An empty stored code never matches, even against an empty submission.
	if user.ConfirmationCode == "" || user.ConfirmationCode != input.ConfirmationCode {
		return nil, fmt.Errorf("%w: invalid confirmation code", apperror.ErrInvalidInput)
	}

	user.ConfirmationCode = ""
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	signed, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{Token: signed}, nil
}

func (s *authService) findIgnoreMissing(find func() (*entity.User, error)) (*entity.User, error) {
	user, err := find()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
