package services

import (
	"context"
	"time"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// ExchangeRateSvcFacade defines the interface for exchange rate operations.
type ExchangeRateSvcFacade interface {
	// FetchAndStoreRates fetches current rates for the given currencies from
	// the external provider, rounds them to two decimal places and persists
	// them dated today. An empty symbols slice is a no-op returning an empty
	// slice; a non-empty request that yields nothing from the provider
	// returns apperrors.ErrEmptyResult.
	FetchAndStoreRates(ctx context.Context, symbols []string) ([]domain.ExchangeRate, error)
	// FetchAndStoreAllRates fetches every rate the provider prices, rounds
	// them to two decimal places and persists them dated today. A provider
	// answer with no rates at all returns apperrors.ErrEmptyResult.
	FetchAndStoreAllRates(ctx context.Context) ([]domain.ExchangeRate, error)
	// GetLatestRates returns the most recent stored rate per currency
	// effective on or before asOf. When nothing qualifies it returns
	// apperrors.ErrEmptyResult.
	GetLatestRates(ctx context.Context, asOf time.Time) ([]domain.ExchangeRate, error)
}
