package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// PgxUserRepository implements the user repository ports using pgxpool.
type PgxUserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new PgxUserRepository.
func NewUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// UpsertUser inserts the user or, when the same username and email already
// exist, refreshes the mutable columns. The id of the stored row is returned
// either way. A username or email already registered under a different pair
// hits one of the unique indexes instead of the conflict target and is
// reported as apperrors.ErrDuplicate.
func (r *PgxUserRepository) UpsertUser(ctx context.Context, user domain.User) (string, error) {
	query := `
		INSERT INTO users (
			id, username, email, full_name, password_hash, role, remember_me, created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (username, email) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role,
			remember_me = EXCLUDED.remember_me,
			last_updated_at = EXCLUDED.last_updated_at
		RETURNING id
	`
	var id string
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.FullName,
		user.PasswordHash, user.Role, user.RememberMe, user.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fmt.Errorf("username or email already registered: %w", apperrors.ErrDuplicate)
		}
		return "", fmt.Errorf("error upserting user: %w", err)
	}
	return id, nil
}

// UpdateLastLoginAt records a successful login for the user.
func (r *PgxUserRepository) UpdateLastLoginAt(ctx context.Context, userID string, at time.Time) error {
	query := `UPDATE users SET last_login_at = $2 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, userID, at); err != nil {
		return fmt.Errorf("error updating last login time: %w", err)
	}
	return nil
}

// GetUserByUsername retrieves a user by their username.
func (r *PgxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, full_name, password_hash, role, remember_me,
			created_at, last_updated_at, last_login_at
		FROM users
		WHERE username = $1
	`
	user := &domain.User{}
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &user.Role, &user.RememberMe,
		&user.CreatedAt, &user.LastUpdatedAt, &user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	return user, nil
}
