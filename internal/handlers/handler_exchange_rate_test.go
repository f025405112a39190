package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
	portssvc "github.com/finnconnect/finnconnect/internal/core/ports/services"
	"github.com/finnconnect/finnconnect/internal/dto"
	"github.com/finnconnect/finnconnect/internal/handlers"
	"github.com/finnconnect/finnconnect/internal/platform/config"
)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) FetchAndStoreRates(ctx context.Context, symbols []string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) FetchAndStoreAllRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) GetLatestRates(ctx context.Context, asOf time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Test Suite ---
type ExchangeRateHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockSvc  *MockExchangeRateService
	services *portssvc.ServiceContainer
}

func (suite *ExchangeRateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockSvc = new(MockExchangeRateService)
	suite.services = &portssvc.ServiceContainer{ExchangeRate: suite.mockSvc}

	// IsProduction skips the swagger routes, which the tests never touch.
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, suite.services)
}

func (suite *ExchangeRateHandlerTestSuite) TestRunClient_IngestsEveryPricedCurrency() {
	stored := []domain.ExchangeRate{
		{CurrencyCode: "EUR", Rate: decimal.RequireFromString("0.92"), EffectiveDate: time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)},
		{CurrencyCode: "GBP", Rate: decimal.RequireFromString("0.76"), EffectiveDate: time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)},
		{CurrencyCode: "JPY", Rate: decimal.RequireFromString("149.12"), EffectiveDate: time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)},
	}
	suite.mockSvc.On("FetchAndStoreAllRates", mock.Anything).Return(stored, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/runClient", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 3)
	suite.Equal("EUR", body[0].CurrencyCode)
	suite.True(body[0].ExchangeRate.Equal(decimal.RequireFromString("0.92")))
	suite.Equal("2024-10-10", body[0].EffectiveDate)

	// A triggered run ingests the provider's full answer, never a fixed
	// symbol list.
	suite.mockSvc.AssertNotCalled(suite.T(), "FetchAndStoreRates", mock.Anything, mock.Anything)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestRunClient_ServiceFailure() {
	suite.mockSvc.On("FetchAndStoreAllRates", mock.Anything).
		Return(nil, errors.New("provider unreachable")).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/runClient", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestGetLatestRates_PassesParsedCutoff() {
	asOf := time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)
	stored := []domain.ExchangeRate{
		{CurrencyCode: "GBP", Rate: decimal.RequireFromString("0.76"), EffectiveDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)},
	}
	suite.mockSvc.On("GetLatestRates", mock.Anything, asOf).Return(stored, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/exchangeRate/latest?asOfDate=2024-10-05", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestGetLatestRates_MalformedDate() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/exchangeRate/latest?asOfDate=05-10-2024", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "GetLatestRates")
}

func (suite *ExchangeRateHandlerTestSuite) TestGetLatestRates_MissingDate() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/exchangeRate/latest", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("asOfDate is required", body.Error)

	suite.mockSvc.AssertNotCalled(suite.T(), "GetLatestRates")
}

func (suite *ExchangeRateHandlerTestSuite) TestGetLatestRates_EmptyStore() {
	suite.mockSvc.On("GetLatestRates", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrEmptyResult).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/exchangeRate/latest?asOfDate=2024-10-05", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)

	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("No exchange rates available", body.Error)

	suite.mockSvc.AssertExpectations(suite.T())
}

func TestExchangeRateHandler(t *testing.T) {
	suite.Run(t, new(ExchangeRateHandlerTestSuite))
}
