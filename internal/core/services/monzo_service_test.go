package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
	"github.com/finnconnect/finnconnect/internal/core/services"
	"github.com/finnconnect/finnconnect/internal/platform/clock"
)

// --- Mock MonzoAPI ---
type MockMonzoAPI struct {
	mock.Mock
}

func (m *MockMonzoAPI) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockMonzoAPI) ExchangeCode(ctx context.Context, code string) (*domain.TokenResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenResponse), args.Error(1)
}

func (m *MockMonzoAPI) WhoAmI(ctx context.Context, accessToken string) (*domain.WhoAmIResponse, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WhoAmIResponse), args.Error(1)
}

func (m *MockMonzoAPI) Accounts(ctx context.Context, accessToken string) (*domain.MonzoAccountsResponse, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonzoAccountsResponse), args.Error(1)
}

func (m *MockMonzoAPI) Balance(ctx context.Context, accessToken, accountID string) (*domain.BalanceResponse, error) {
	args := m.Called(ctx, accessToken, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceResponse), args.Error(1)
}

// --- Mock OAuthTokenSvcFacade ---
type MockOAuthTokenService struct {
	mock.Mock
}

func (m *MockOAuthTokenService) SaveToken(ctx context.Context, token domain.TokenResponse) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

func (m *MockOAuthTokenService) GetToken(ctx context.Context, userID string) (*domain.TokenResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenResponse), args.Error(1)
}

func (m *MockOAuthTokenService) DeleteToken(ctx context.Context, userID string) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}

func (m *MockOAuthTokenService) GetValidAccessToken(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockOAuthTokenService) IsTokenExpired(token domain.TokenResponse) bool {
	args := m.Called(token)
	return args.Bool(0)
}

// --- Test Suite ---
type MonzoServiceTestSuite struct {
	suite.Suite
	mockAPI    *MockMonzoAPI
	mockTokens *MockOAuthTokenService
	fixedNow   time.Time
	service    *services.MonzoService
}

func (suite *MonzoServiceTestSuite) SetupTest() {
	suite.mockAPI = new(MockMonzoAPI)
	suite.mockTokens = new(MockOAuthTokenService)
	suite.fixedNow = time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewMonzoService(suite.mockAPI, suite.mockTokens, clock.Fixed{Instant: suite.fixedNow}, "user_1", "acc_1")
}

// --- Test Cases ---

func (suite *MonzoServiceTestSuite) TestGenerateStateString_IsUnpredictable() {
	first, err := suite.service.GenerateStateString()
	suite.Require().NoError(err)
	second, err := suite.service.GenerateStateString()
	suite.Require().NoError(err)

	suite.NotEmpty(first)
	suite.NotEqual(first, second)
}

func (suite *MonzoServiceTestSuite) TestHandleCallback_ExchangesAndStores() {
	ctx := context.Background()
	token := &domain.TokenResponse{UserID: "user_1", AccessToken: "tok", ExpiresIn: 3600}
	suite.mockAPI.On("ExchangeCode", ctx, "auth-code").Return(token, nil).Once()
	stamped := *token
	stamped.IssuedAt = suite.fixedNow.Unix()
	suite.mockTokens.On("SaveToken", ctx, stamped).Return(true).Once()

	got, err := suite.service.HandleCallback(ctx, "auth-code")

	suite.Require().NoError(err)
	suite.Equal(&stamped, got)
	suite.mockAPI.AssertExpectations(suite.T())
	suite.mockTokens.AssertExpectations(suite.T())
}

func (suite *MonzoServiceTestSuite) TestHandleCallback_StampsIssueTimeAtReceipt() {
	ctx := context.Background()
	// The provider does not report an issue time; the exchange path is where
	// it gets stamped.
	token := &domain.TokenResponse{UserID: "user_1", AccessToken: "tok", ExpiresIn: 3600}
	suite.mockAPI.On("ExchangeCode", ctx, "auth-code").Return(token, nil).Once()
	suite.mockTokens.On("SaveToken", ctx, mock.MatchedBy(func(t domain.TokenResponse) bool {
		return t.IssuedAt == suite.fixedNow.Unix()
	})).Return(true).Once()

	got, err := suite.service.HandleCallback(ctx, "auth-code")

	suite.Require().NoError(err)
	suite.Equal(suite.fixedNow.Unix(), got.IssuedAt)
	suite.mockTokens.AssertExpectations(suite.T())
}

func (suite *MonzoServiceTestSuite) TestHandleCallback_FillsMissingUserID() {
	ctx := context.Background()
	token := &domain.TokenResponse{AccessToken: "tok", ExpiresIn: 3600}
	suite.mockAPI.On("ExchangeCode", ctx, "auth-code").Return(token, nil).Once()
	suite.mockTokens.On("SaveToken", ctx, mock.MatchedBy(func(t domain.TokenResponse) bool {
		return t.UserID == "user_1"
	})).Return(true).Once()

	got, err := suite.service.HandleCallback(ctx, "auth-code")

	suite.Require().NoError(err)
	suite.Equal("user_1", got.UserID)
}

func (suite *MonzoServiceTestSuite) TestHandleCallback_StorageFailureStillReturnsToken() {
	ctx := context.Background()
	token := &domain.TokenResponse{UserID: "user_1", AccessToken: "tok", ExpiresIn: 3600}
	suite.mockAPI.On("ExchangeCode", ctx, "auth-code").Return(token, nil).Once()
	stamped := *token
	stamped.IssuedAt = suite.fixedNow.Unix()
	suite.mockTokens.On("SaveToken", ctx, stamped).Return(false).Once()

	got, err := suite.service.HandleCallback(ctx, "auth-code")

	suite.Require().NoError(err)
	suite.Equal(&stamped, got)
}

func (suite *MonzoServiceTestSuite) TestHandleCallback_ExchangeFailure() {
	ctx := context.Background()
	suite.mockAPI.On("ExchangeCode", ctx, "bad-code").Return(nil, fmt.Errorf("invalid grant")).Once()

	got, err := suite.service.HandleCallback(ctx, "bad-code")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.mockTokens.AssertNotCalled(suite.T(), "SaveToken", mock.Anything, mock.Anything)
}

func (suite *MonzoServiceTestSuite) TestWhoAmI_UsesStoredToken() {
	ctx := context.Background()
	suite.mockTokens.On("GetValidAccessToken", ctx, "user_1").Return("tok", nil).Once()
	identity := &domain.WhoAmIResponse{Authenticated: true, UserID: "user_1"}
	suite.mockAPI.On("WhoAmI", ctx, "tok").Return(identity, nil).Once()

	got, err := suite.service.WhoAmI(ctx)

	suite.Require().NoError(err)
	suite.Equal(identity, got)
}

func (suite *MonzoServiceTestSuite) TestWhoAmI_NoStoredTokenIsUnauthorized() {
	ctx := context.Background()
	suite.mockTokens.On("GetValidAccessToken", ctx, "user_1").
		Return("", fmt.Errorf("%w: no token stored for user", apperrors.ErrUnauthorized)).Once()

	got, err := suite.service.WhoAmI(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(got)
	suite.mockAPI.AssertNotCalled(suite.T(), "WhoAmI", mock.Anything, mock.Anything)
}

func (suite *MonzoServiceTestSuite) TestBalance_QueriesConfiguredAccount() {
	ctx := context.Background()
	suite.mockTokens.On("GetValidAccessToken", ctx, "user_1").Return("tok", nil).Once()
	balance := &domain.BalanceResponse{Balance: 4200, Currency: "GBP"}
	suite.mockAPI.On("Balance", ctx, "tok", "acc_1").Return(balance, nil).Once()

	got, err := suite.service.Balance(ctx)

	suite.Require().NoError(err)
	suite.Equal(balance, got)
}

func (suite *MonzoServiceTestSuite) TestBalance_ProviderRejectionPassesThrough() {
	ctx := context.Background()
	suite.mockTokens.On("GetValidAccessToken", ctx, "user_1").Return("tok", nil).Once()
	apiErr := &domain.MonzoAPIError{Code: "forbidden.insufficient_permissions", Message: "insufficient permissions"}
	suite.mockAPI.On("Balance", ctx, "tok", "acc_1").Return(nil, apiErr).Once()

	got, err := suite.service.Balance(ctx)

	suite.Require().Error(err)
	var target *domain.MonzoAPIError
	suite.ErrorAs(err, &target)
	suite.Nil(got)
}

func TestMonzoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MonzoServiceTestSuite))
}
