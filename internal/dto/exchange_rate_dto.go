package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// ExchangeRateResponse defines the structure for API responses containing a
// single dated rate. The effective date is rendered as a plain calendar date.
type ExchangeRateResponse struct {
	CurrencyCode  string          `json:"currencyCode"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	EffectiveDate string          `json:"effectiveDate"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		CurrencyCode:  rate.CurrencyCode,
		ExchangeRate:  rate.Rate,
		EffectiveDate: rate.EffectiveDate.Format("2006-01-02"),
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToExchangeRateResponse(rate)
	}
	return responses
}
