package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
	portsrepo "github.com/finnconnect/finnconnect/internal/core/ports/repositories"
	"github.com/finnconnect/finnconnect/internal/platform/clock"
)

// OAuthTokenService manages the provider tokens stored per provider user.
// Writes are best effort: a storage failure is logged and reported as false,
// never propagated, because losing a token only forces the user back through
// the consent flow.
type OAuthTokenService struct {
	tokenRepo portsrepo.OAuthTokenRepositoryFacade
	clock     clock.Clock
}

// NewOAuthTokenService creates a new OAuthTokenService.
func NewOAuthTokenService(tokenRepo portsrepo.OAuthTokenRepositoryFacade, clk clock.Clock) *OAuthTokenService {
	return &OAuthTokenService{
		tokenRepo: tokenRepo,
		clock:     clk,
	}
}

// SaveToken stores the token exactly as given, replacing any existing token
// for the same provider user. IssuedAt is the caller's to set; the code
// exchange path stamps it when the token is received.
func (s *OAuthTokenService) SaveToken(ctx context.Context, token domain.TokenResponse) bool {
	if token.UserID == "" {
		slog.WarnContext(ctx, "Refusing to save token without a user id")
		return false
	}
	if err := s.tokenRepo.UpsertToken(ctx, token); err != nil {
		slog.ErrorContext(ctx, "Failed to save oauth token", slog.String("user_id", token.UserID), slog.Any("error", err))
		return false
	}
	return true
}

// GetToken returns the stored token for the provider user.
func (s *OAuthTokenService) GetToken(ctx context.Context, userID string) (*domain.TokenResponse, error) {
	token, err := s.tokenRepo.GetTokenByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the stored token for the provider user.
func (s *OAuthTokenService) DeleteToken(ctx context.Context, userID string) bool {
	if err := s.tokenRepo.DeleteTokenByUserID(ctx, userID); err != nil {
		slog.ErrorContext(ctx, "Failed to delete oauth token", slog.String("user_id", userID), slog.Any("error", err))
		return false
	}
	return true
}

// IsTokenExpired reports whether the token has passed its lifetime. The
// boundary second counts as expired.
func (s *OAuthTokenService) IsTokenExpired(token domain.TokenResponse) bool {
	return s.clock.Now().Unix() >= token.ExpiresAt()
}

// GetValidAccessToken returns the access token for the provider user if one
// is stored and still valid.
func (s *OAuthTokenService) GetValidAccessToken(ctx context.Context, userID string) (string, error) {
	token, err := s.GetToken(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: no token stored for user", apperrors.ErrUnauthorized)
		}
		return "", err
	}
	if s.IsTokenExpired(*token) {
		return "", fmt.Errorf("%w: stored token has expired", apperrors.ErrUnauthorized)
	}
	return token.AccessToken, nil
}
