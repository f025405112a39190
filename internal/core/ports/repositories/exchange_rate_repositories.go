package repositories

import (
	"context"
	"time"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// GetLatestExchangeRates returns, for every currency present, the rate
	// with the newest effective date that is on or before asOf.
	GetLatestExchangeRates(ctx context.Context, asOf time.Time) ([]domain.ExchangeRate, error)
	// FindExchangeRate returns the rate for an exact currency and effective
	// date, or apperrors.ErrNotFound.
	FindExchangeRate(ctx context.Context, currencyCode string, effectiveDate time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// InsertExchangeRates persists a batch of rates, replacing any existing
	// row with the same currency and effective date.
	InsertExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error
	// DeleteExchangeRate removes the rate for an exact currency and
	// effective date. Deleting a missing rate is not an error.
	DeleteExchangeRate(ctx context.Context, currencyCode string, effectiveDate time.Time) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
