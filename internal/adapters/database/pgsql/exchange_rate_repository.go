package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{db: db}
}

// InsertExchangeRates upserts a batch of rates keyed by currency and
// effective date. Re-running an ingestion for the same day overwrites the
// rate instead of adding a second row. Rows are written independently, with
// no wrapping transaction; each one is meaningful on its own.
func (r *PgxExchangeRateRepository) InsertExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	query := `
		INSERT INTO curr_exch_rate (curr_cd, exch_rate, eff_dt)
		VALUES ($1, $2, $3)
		ON CONFLICT (curr_cd, eff_dt) DO UPDATE SET exch_rate = EXCLUDED.exch_rate
	`
	var affected int64
	for _, rate := range rates {
		tag, err := r.db.Exec(ctx, query, rate.CurrencyCode, rate.Rate, rate.EffectiveDate)
		if err != nil {
			return fmt.Errorf("error inserting exchange rate for %s: %w", rate.CurrencyCode, err)
		}
		affected += tag.RowsAffected()
	}
	if affected == 0 {
		return fmt.Errorf("inserting %d exchange rates affected no rows", len(rates))
	}
	return nil
}

// FindExchangeRate retrieves the rate for an exact currency and effective date.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, currencyCode string, effectiveDate time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT curr_cd, exch_rate, eff_dt
		FROM curr_exch_rate
		WHERE curr_cd = $1 AND eff_dt = $2
	`
	rate := &domain.ExchangeRate{}
	err := r.db.QueryRow(ctx, query, currencyCode, effectiveDate).Scan(
		&rate.CurrencyCode, &rate.Rate, &rate.EffectiveDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	return rate, nil
}

// DeleteExchangeRate removes the rate for an exact currency and effective
// date. Deleting a missing rate is not an error.
func (r *PgxExchangeRateRepository) DeleteExchangeRate(ctx context.Context, currencyCode string, effectiveDate time.Time) error {
	query := `DELETE FROM curr_exch_rate WHERE curr_cd = $1 AND eff_dt = $2`
	if _, err := r.db.Exec(ctx, query, currencyCode, effectiveDate); err != nil {
		return fmt.Errorf("error deleting exchange rate: %w", err)
	}
	return nil
}

// GetLatestExchangeRates returns one rate per currency, choosing for each the
// newest effective date that is on or before asOf.
func (r *PgxExchangeRateRepository) GetLatestExchangeRates(ctx context.Context, asOf time.Time) ([]domain.ExchangeRate, error) {
	query := `
		WITH ranked AS (
			SELECT curr_cd, exch_rate, eff_dt,
				ROW_NUMBER() OVER (PARTITION BY curr_cd ORDER BY eff_dt DESC) AS rn
			FROM curr_exch_rate
			WHERE eff_dt <= $1
		)
		SELECT curr_cd, exch_rate, eff_dt
		FROM ranked
		WHERE rn = 1
		ORDER BY curr_cd
	`
	rows, err := r.db.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying latest exchange rates: %w", err)
	}
	defer rows.Close()

	rates := []domain.ExchangeRate{}
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(&rate.CurrencyCode, &rate.Rate, &rate.EffectiveDate); err != nil {
			return nil, fmt.Errorf("error scanning exchange rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading exchange rate rows: %w", err)
	}
	return rates, nil
}
