package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/handlers"
	"github.com/smirnov-vv/ipledger/internal/platform/config"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetOrCreateUser(ctx context.Context, userID int64, username string, inviteCode string) (*domain.User, error) {
	args := m.Called(ctx, userID, username, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) ListUsersFull(ctx context.Context, actingUserID int64) ([]domain.User, error) {
	args := m.Called(ctx, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) SetUserRole(ctx context.Context, actingUserID int64, targetUserID int64, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, actingUserID, targetUserID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AdjustUserCash(ctx context.Context, actingUserID int64, targetUserID int64, delta int64) (*domain.User, error) {
	args := m.Called(ctx, actingUserID, targetUserID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type UserHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	userSvc *MockUserService
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.userSvc = new(MockUserService)

	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	sc := &portssvc.ServiceContainer{User: s.userSvc}
	limiterInstance := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 100})

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, &stubStore{uow: &stubUnitOfWork{}}, sc, limiterInstance)
}

func (s *UserHandlerTestSuite) TestListUsersFullForbiddenForMember() {
	s.userSvc.On("ListUsersFull", mock.Anything, int64(42)).
		Return(nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", bearerToken(s.T(), 42))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusForbidden, w.Code)
	s.userSvc.AssertExpectations(s.T())
}

func (s *UserHandlerTestSuite) TestListUsersFullAsAdmin() {
	s.userSvc.On("ListUsersFull", mock.Anything, int64(100)).
		Return([]domain.User{{UserID: 7, Role: domain.RoleMember, CashBalance: 500}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", bearerToken(s.T(), 100))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var resp []dto.UserResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp, 1)
	s.Equal(int64(500), resp[0].CashBalance)
}

func (s *UserHandlerTestSuite) TestAdjustUserCash() {
	s.userSvc.On("AdjustUserCash", mock.Anything, int64(100), int64(7), int64(-500)).
		Return(&domain.User{UserID: 7, Role: domain.RoleMember, CashBalance: 1_500}, nil).Once()

	body, err := json.Marshal(dto.AdjustUserCashRequest{Delta: -500})
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/users/7/cash", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(s.T(), 100))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var resp dto.UserResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(int64(1_500), resp.CashBalance)
	s.userSvc.AssertExpectations(s.T())
}

func (s *UserHandlerTestSuite) TestAdjustUserCashInsufficient() {
	s.userSvc.On("AdjustUserCash", mock.Anything, int64(100), int64(7), int64(-500)).
		Return(nil, apperrors.NewInsufficientFunds(300)).Once()

	body, err := json.Marshal(dto.AdjustUserCashRequest{Delta: -500})
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/users/7/cash", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(s.T(), 100))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
