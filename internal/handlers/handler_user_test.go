package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finnconnect/finnconnect/internal/apperrors"
	"github.com/finnconnect/finnconnect/internal/core/domain"
	portssvc "github.com/finnconnect/finnconnect/internal/core/ports/services"
	"github.com/finnconnect/finnconnect/internal/dto"
	"github.com/finnconnect/finnconnect/internal/handlers"
	"github.com/finnconnect/finnconnect/internal/platform/config"
)

// --- Mock UserService ---
type MockUserHandlerService struct {
	mock.Mock
}

func (m *MockUserHandlerService) RegisterUser(ctx context.Context, user domain.User, password string) (*domain.User, error) {
	args := m.Called(ctx, user, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserHandlerService) LoginUser(ctx context.Context, username, password string, rememberMe bool) (string, *domain.User, error) {
	args := m.Called(ctx, username, password, rememberMe)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockUserHandlerService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserHandlerService)(nil)

// --- Test Suite ---
type UserHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	mockSvc *MockUserHandlerService
}

func (suite *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockSvc = new(MockUserHandlerService)

	services := &portssvc.ServiceContainer{User: suite.mockSvc}
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, services)
}

func (suite *UserHandlerTestSuite) TestCreateUser_Created() {
	req := dto.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Password: "s3cret-password",
		Role:     "USER",
	}
	stored := &domain.User{
		ID:        uuid.NewString(),
		Username:  "alice",
		Email:     "alice@example.com",
		FullName:  "Alice Doe",
		Role:      domain.RoleUser,
		CreatedAt: time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC),
	}
	suite.mockSvc.On("RegisterUser", mock.Anything, req.ToDomainUser(), "s3cret-password").
		Return(stored, nil).Once()

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	httpReq, _ := http.NewRequest(http.MethodPost, "/user", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(stored.ID, resp.ID)
	suite.Equal("alice", resp.Username)
	// The hash never leaves the service layer.
	suite.NotContains(w.Body.String(), "password")

	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestCreateUser_ShortPassword() {
	req := dto.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Password: "short",
	}

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	httpReq, _ := http.NewRequest(http.MethodPost, "/user", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "RegisterUser")
}

func (suite *UserHandlerTestSuite) TestCreateUser_UnknownRoleRejectedByBinding() {
	req := dto.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Password: "s3cret-password",
		Role:     "SUPERADMIN",
	}

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	httpReq, _ := http.NewRequest(http.MethodPost, "/user", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "RegisterUser")
}

func (suite *UserHandlerTestSuite) TestCreateUser_ValidationFailure() {
	req := dto.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Password: "s3cret-password",
	}
	suite.mockSvc.On("RegisterUser", mock.Anything, req.ToDomainUser(), "s3cret-password").
		Return(nil, apperrors.ErrValidation).Once()

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	httpReq, _ := http.NewRequest(http.MethodPost, "/user", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestCreateUser_UsernameTaken() {
	req := dto.CreateUserRequest{
		Username: "alice",
		Email:    "other@example.com",
		FullName: "Alice Doe",
		Password: "s3cret-password",
	}
	suite.mockSvc.On("RegisterUser", mock.Anything, req.ToDomainUser(), "s3cret-password").
		Return(nil, apperrors.ErrDuplicate).Once()

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	httpReq, _ := http.NewRequest(http.MethodPost, "/user", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestLogin_Success() {
	stored := &domain.User{
		ID:       uuid.NewString(),
		Username: "alice",
		Role:     domain.RoleUser,
	}
	suite.mockSvc.On("LoginUser", mock.Anything, "alice", "s3cret-password", false).
		Return("signed.jwt.token", stored, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/user?username=alice&password=s3cret-password", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Bearer signed.jwt.token", w.Header().Get("Authorization"))

	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("alice", resp.Username)

	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestLogin_RememberMeExtendsSession() {
	stored := &domain.User{ID: uuid.NewString(), Username: "alice", Role: domain.RoleUser}
	suite.mockSvc.On("LoginUser", mock.Anything, "alice", "s3cret-password", true).
		Return("signed.jwt.token", stored, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/user?username=alice&password=s3cret-password&rememberMe=true", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestLogin_MissingCredentials() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/user?username=alice", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "LoginUser")
}

func (suite *UserHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockSvc.On("LoginUser", mock.Anything, "alice", "wrong-password", false).
		Return("", nil, apperrors.ErrUnauthorized).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/user?username=alice&password=wrong-password", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Empty(w.Header().Get("Authorization"))
	suite.mockSvc.AssertExpectations(suite.T())
}

func TestUserHandler(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
