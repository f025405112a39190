package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
	portsrepo "github.com/finnconnect/finnconnect/internal/core/ports/repositories"
	"github.com/finnconnect/finnconnect/internal/platform/clock"
	"github.com/finnconnect/finnconnect/internal/platform/config"
	"github.com/finnconnect/finnconnect/internal/utils"
)

// UserService provides business logic for user registration and login.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
	clock    clock.Clock
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config, clk clock.Clock) *UserService {
	return &UserService{
		userRepo: userRepo,
		cfg:      cfg,
		clock:    clk,
	}
}

// RegisterUser hashes the password and upserts the user. Registering the
// same username and email again replaces the stored profile.
func (s *UserService) RegisterUser(ctx context.Context, user domain.User, password string) (*domain.User, error) {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if !user.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, user.Role)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.CreatedAt = s.clock.Now()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	id, err := s.userRepo.UpsertUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	user.ID = id
	return &user, nil
}

// LoginUser verifies the password against the stored bcrypt hash and, on
// success, records the login and returns a signed JWT with the user. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) LoginUser(ctx context.Context, username, password string, rememberMe bool) (string, *domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	expiry := s.cfg.JWTExpiryDuration
	if rememberMe {
		expiry = s.cfg.JWTRememberDuration
	}
	now := s.clock.Now()
	token, err := utils.GenerateJWT(user.Username, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTAudience, expiry, now)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	// The login itself must not fail over an audit column.
	if err := s.userRepo.UpdateLastLoginAt(ctx, user.ID, now); err != nil {
		slog.WarnContext(ctx, "Failed to record login time", slog.String("user_id", user.ID), slog.Any("error", err))
	} else {
		user.LastLoginAt = &now
	}

	return token, user, nil
}

// GetUserByUsername returns the stored user.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
