package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// PgxOAuthTokenRepository implements the token repository ports using pgxpool.
type PgxOAuthTokenRepository struct {
	db *pgxpool.Pool
}

// NewOAuthTokenRepository creates a new PgxOAuthTokenRepository.
func NewOAuthTokenRepository(db *pgxpool.Pool) *PgxOAuthTokenRepository {
	return &PgxOAuthTokenRepository{db: db}
}

// UpsertToken stores the token for its provider user. All columns are
// replaced on conflict so a stale refresh token never survives a new grant.
func (r *PgxOAuthTokenRepository) UpsertToken(ctx context.Context, token domain.TokenResponse) error {
	query := `
		INSERT INTO oauth_tokens (
			user_id, access_token, client_id, expires_in, refresh_token, token_type, issued_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			client_id = EXCLUDED.client_id,
			expires_in = EXCLUDED.expires_in,
			refresh_token = EXCLUDED.refresh_token,
			token_type = EXCLUDED.token_type,
			issued_at = EXCLUDED.issued_at
	`
	_, err := r.db.Exec(ctx, query,
		token.UserID, token.AccessToken, token.ClientID, token.ExpiresIn,
		token.RefreshToken, token.TokenType, token.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting oauth token: %w", err)
	}
	return nil
}

// GetTokenByUserID retrieves the stored token for the provider user.
func (r *PgxOAuthTokenRepository) GetTokenByUserID(ctx context.Context, userID string) (*domain.TokenResponse, error) {
	query := `
		SELECT user_id, access_token, client_id, expires_in, refresh_token, token_type, issued_at
		FROM oauth_tokens
		WHERE user_id = $1
	`
	token := &domain.TokenResponse{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&token.UserID, &token.AccessToken, &token.ClientID, &token.ExpiresIn,
		&token.RefreshToken, &token.TokenType, &token.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding oauth token: %w", err)
	}
	return token, nil
}

// DeleteTokenByUserID removes the stored token for the provider user.
// Deleting a token that does not exist is not an error.
func (r *PgxOAuthTokenRepository) DeleteTokenByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM oauth_tokens WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("error deleting oauth token: %w", err)
	}
	return nil
}
