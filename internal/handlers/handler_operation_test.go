package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/handlers"
	"github.com/smirnov-vv/ipledger/internal/platform/config"
)

const testJWTSecret = "test-secret"

// --- Mock OperationService ---
type MockOperationService struct {
	mock.Mock
}

var _ portssvc.OperationSvcFacade = (*MockOperationService)(nil)

func (m *MockOperationService) Execute(ctx context.Context, uow portsrepo.UnitOfWork, actingUserID int64, req dto.OperationRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, uow, actingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockOperationService) RepayDebt(ctx context.Context, uow portsrepo.UnitOfWork, debtID string, actingUserID int64, amount int64) (*domain.Transaction, error) {
	args := m.Called(ctx, uow, debtID, actingUserID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) ListTransactions(ctx context.Context, filter portsrepo.LedgerFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// stubRepos satisfies the repository accessors; the engine is mocked so they
// are never reached.
type stubRepos struct{}

func (stubRepos) Users() portsrepo.UserRepository          { return nil }
func (stubRepos) Entities() portsrepo.EntityRepository     { return nil }
func (stubRepos) Ledger() portsrepo.LedgerRepository       { return nil }
func (stubRepos) Debts() portsrepo.DebtRepository          { return nil }
func (stubRepos) Reporting() portsrepo.ReportingRepository { return nil }

type stubUnitOfWork struct {
	stubRepos
	committed  bool
	rolledBack bool
}

func (u *stubUnitOfWork) Commit(ctx context.Context) error   { u.committed = true; return nil }
func (u *stubUnitOfWork) Rollback(ctx context.Context) error { u.rolledBack = true; return nil }

type stubStore struct {
	stubRepos
	uow *stubUnitOfWork
}

func (s *stubStore) Begin(ctx context.Context) (portsrepo.UnitOfWork, error) {
	return s.uow, nil
}

type OperationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	store        *stubStore
	operationSvc *MockOperationService
	ledgerSvc    *MockLedgerService
}

func (s *OperationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.store = &stubStore{uow: &stubUnitOfWork{}}
	s.operationSvc = new(MockOperationService)
	s.ledgerSvc = new(MockLedgerService)

	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	sc := &portssvc.ServiceContainer{Operation: s.operationSvc, Ledger: s.ledgerSvc}

	limiterInstance := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 100})

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, s.store, sc, limiterInstance)
}

// bearerToken issues a signed test JWT the way the auth handler does.
func bearerToken(t *testing.T, userID int64) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *OperationHandlerTestSuite) postOperation(body any, authorized bool) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", bearerToken(s.T(), 42))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *OperationHandlerTestSuite) TestExecuteOperationSuccess() {
	entityID := "ent-1"
	txn := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        42,
		EntityID:      &entityID,
		Kind:          domain.OpPurchase,
		Amount:        2_500,
		CreatedAt:     time.Now(),
	}
	s.operationSvc.On("Execute", mock.Anything, s.store.uow, int64(42), mock.MatchedBy(func(req dto.OperationRequest) bool {
		return req.Kind == domain.OpPurchase && req.Amount == 2_500
	})).Return(txn, nil).Once()

	w := s.postOperation(dto.OperationRequest{Kind: domain.OpPurchase, Amount: 2_500, EntityID: &entityID}, true)

	s.Equal(http.StatusCreated, w.Code)
	s.True(s.store.uow.committed)

	var resp dto.OperationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("txn-1", resp.Transaction.TransactionID)
	s.operationSvc.AssertExpectations(s.T())
}

func (s *OperationHandlerTestSuite) TestExecuteOperationInsufficientFunds() {
	entityID := "ent-1"
	s.operationSvc.On("Execute", mock.Anything, mock.Anything, int64(42), mock.Anything).
		Return(nil, apperrors.NewInsufficientFunds(100)).Once()

	w := s.postOperation(dto.OperationRequest{Kind: domain.OpPurchase, Amount: 2_500, EntityID: &entityID}, true)

	s.Equal(http.StatusBadRequest, w.Code)
	s.False(s.store.uow.committed)
}

func (s *OperationHandlerTestSuite) TestExecuteOperationValidationError() {
	entityID := "ent-1"
	s.operationSvc.On("Execute", mock.Anything, mock.Anything, int64(42), mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	w := s.postOperation(dto.OperationRequest{Kind: domain.OpLoan, Amount: 100, EntityID: &entityID, TargetEntityID: &entityID}, true)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.False(s.store.uow.committed)
}

func (s *OperationHandlerTestSuite) TestExecuteOperationBadBody() {
	w := s.postOperation(map[string]any{"kind": "zakup", "amount": "not-a-number"}, true)

	s.Equal(http.StatusBadRequest, w.Code)
	s.operationSvc.AssertNotCalled(s.T(), "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OperationHandlerTestSuite) TestExecuteOperationUnauthorized() {
	entityID := "ent-1"
	w := s.postOperation(dto.OperationRequest{Kind: domain.OpPurchase, Amount: 100, EntityID: &entityID}, false)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *OperationHandlerTestSuite) TestListTransactions() {
	s.ledgerSvc.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f portsrepo.LedgerFilter) bool {
		return f.EntityID != nil && *f.EntityID == "ent-1" && f.Limit == 10
	})).Return([]domain.Transaction{{TransactionID: "txn-1", Kind: domain.OpPurchase}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?entityID=ent-1&limit=10", nil)
	req.Header.Set("Authorization", bearerToken(s.T(), 42))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Transactions, 1)
	s.Equal("txn-1", resp.Transactions[0].TransactionID)
}

func TestOperationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OperationHandlerTestSuite))
}
