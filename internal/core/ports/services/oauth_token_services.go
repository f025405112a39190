package services

import (
	"context"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// OAuthTokenSvcFacade defines the interface for provider token management.
// Save and delete report success as a bool rather than an error; callers
// treat storage as best effort and the failure is logged where it happens.
type OAuthTokenSvcFacade interface {
	// SaveToken stores the token exactly as given, replacing any existing
	// token for the same provider user. IssuedAt is the caller's to set.
	SaveToken(ctx context.Context, token domain.TokenResponse) bool
	// GetToken returns the stored token for the provider user, or
	// apperrors.ErrNotFound when none exists.
	GetToken(ctx context.Context, userID string) (*domain.TokenResponse, error)
	// DeleteToken removes the stored token for the provider user.
	DeleteToken(ctx context.Context, userID string) bool
	// GetValidAccessToken returns the access token for the provider user if
	// one is stored and not expired, apperrors.ErrUnauthorized otherwise.
	GetValidAccessToken(ctx context.Context, userID string) (string, error)
	// IsTokenExpired reports whether the token has passed its lifetime. A
	// token is expired the moment the current second equals issue time plus
	// lifetime, not one second after.
	IsTokenExpired(token domain.TokenResponse) bool
}
