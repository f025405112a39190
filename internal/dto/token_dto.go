package dto

import "github.com/finnconnect/finnconnect/internal/core/domain"

// SaveTokenRequest defines the structure for storing a provider token
// directly, mirroring the provider's own field names. IssuedAt is taken from
// the caller so an externally obtained token keeps its real issue time.
type SaveTokenRequest struct {
	AccessToken  string `json:"access_token" binding:"required"`
	ClientID     string `json:"client_id"`
	ExpiresIn    int    `json:"expires_in" binding:"required,gt=0"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	UserID       string `json:"user_id" binding:"required"`
	IssuedAt     int64  `json:"issuedAt" binding:"required,gt=0"`
}

// ToDomainToken converts the request to a domain token.
func (r SaveTokenRequest) ToDomainToken() domain.TokenResponse {
	return domain.TokenResponse{
		AccessToken:  r.AccessToken,
		ClientID:     r.ClientID,
		ExpiresIn:    r.ExpiresIn,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		UserID:       r.UserID,
		IssuedAt:     r.IssuedAt,
	}
}

// TokenExpiryResponse reports whether a stored token has expired.
type TokenExpiryResponse struct {
	UserID  string `json:"user_id"`
	Expired bool   `json:"expired"`
}

// OAuthCallbackResponse is the summary returned after a successful code
// exchange. The access token itself is never echoed back.
type OAuthCallbackResponse struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}
