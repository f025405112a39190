package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
	portsprov "github.com/finnconnect/finnconnect/internal/core/ports/providers"
	portsrepo "github.com/finnconnect/finnconnect/internal/core/ports/repositories"
	"github.com/finnconnect/finnconnect/internal/platform/clock"
)

// ExchangeRateService provides business logic for exchange rate ingestion
// and queries.
type ExchangeRateService struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	provider portsprov.RateProvider
	clock    clock.Clock
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, provider portsprov.RateProvider, clk clock.Clock) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo: rateRepo,
		provider: provider,
		clock:    clk,
	}
}

// FetchAndStoreRates fetches current rates for the given currencies, rounds
// them to two decimal places and persists them dated today. Requesting
// nothing is a no-op; requesting something and getting nothing back is
// ErrEmptyResult, which callers can tell apart from a provider failure.
func (s *ExchangeRateService) FetchAndStoreRates(ctx context.Context, symbols []string) ([]domain.ExchangeRate, error) {
	if len(symbols) == 0 {
		return []domain.ExchangeRate{}, nil
	}

	fetched, err := s.provider.FetchLatestRates(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates from provider: %w", err)
	}

	today := s.clock.Today()
	rates := make([]domain.ExchangeRate, 0, len(symbols))
	for _, code := range symbols {
		rate, ok := fetched[code]
		if !ok {
			// The provider does not price this currency; omit it rather
			// than storing a zero rate.
			continue
		}
		rates = append(rates, domain.ExchangeRate{
			CurrencyCode:  code,
			Rate:          rate.Round(2),
			EffectiveDate: today,
		})
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: provider returned no rates for the requested currencies", apperrors.ErrEmptyResult)
	}

	if err := s.rateRepo.InsertExchangeRates(ctx, rates); err != nil {
		return nil, fmt.Errorf("failed to store exchange rates: %w", err)
	}
	return rates, nil
}

// FetchAndStoreAllRates fetches every rate the provider prices and persists
// the full set dated today.
func (s *ExchangeRateService) FetchAndStoreAllRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	fetched, err := s.provider.FetchAllRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates from provider: %w", err)
	}
	if len(fetched) == 0 {
		return nil, fmt.Errorf("%w: provider returned no rates", apperrors.ErrEmptyResult)
	}

	codes := make([]string, 0, len(fetched))
	for code := range fetched {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	today := s.clock.Today()
	rates := make([]domain.ExchangeRate, 0, len(codes))
	for _, code := range codes {
		rates = append(rates, domain.ExchangeRate{
			CurrencyCode:  code,
			Rate:          fetched[code].Round(2),
			EffectiveDate: today,
		})
	}

	if err := s.rateRepo.InsertExchangeRates(ctx, rates); err != nil {
		return nil, fmt.Errorf("failed to store exchange rates: %w", err)
	}
	return rates, nil
}

// GetLatestRates returns the most recent stored rate per currency effective
// on or before asOf.
func (s *ExchangeRateService) GetLatestRates(ctx context.Context, asOf time.Time) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.GetLatestExchangeRates(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest exchange rates: %w", err)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no exchange rates stored on or before %s", apperrors.ErrEmptyResult, asOf.Format("2006-01-02"))
	}
	return rates, nil
}
