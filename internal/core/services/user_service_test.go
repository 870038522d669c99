package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/core/services"
)

const testInviteCode = "sesame"

type UserServiceTestSuite struct {
	suite.Suite
	store *mockStore
	svc   portssvc.UserSvcFacade
	ctx   context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.store = newMockStore()
	s.svc = services.NewUserService(s.store, []int64{100}, testInviteCode)
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestGetOrCreateUserMemberByDefault() {
	s.store.users.On("UpsertUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == 7 && u.Role == domain.RoleMember && u.Username == "alice"
	})).Return(&domain.User{UserID: 7, Username: "alice", Role: domain.RoleMember}, nil).Once()

	user, err := s.svc.GetOrCreateUser(s.ctx, 7, "alice", "")

	s.Require().NoError(err)
	s.Equal(domain.RoleMember, user.Role)
	s.store.users.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestGetOrCreateUserConfiguredAdmin() {
	s.store.users.On("UpsertUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == 100 && u.Role == domain.RoleAdmin
	})).Return(&domain.User{UserID: 100, Role: domain.RoleAdmin}, nil).Once()

	user, err := s.svc.GetOrCreateUser(s.ctx, 100, "boss", "")

	s.Require().NoError(err)
	s.True(user.IsAdmin())
}

func (s *UserServiceTestSuite) TestGetOrCreateUserInviteCodePromotesExistingMember() {
	// The store still holds the member role from first registration.
	s.store.users.On("UpsertUser", s.ctx, mock.AnythingOfType("domain.User")).
		Return(&domain.User{UserID: 7, Role: domain.RoleMember}, nil).Once()
	s.store.users.On("UpdateUserRole", s.ctx, int64(7), domain.RoleAdmin).Return(nil).Once()

	user, err := s.svc.GetOrCreateUser(s.ctx, 7, "alice", testInviteCode)

	s.Require().NoError(err)
	s.True(user.IsAdmin())
	s.store.users.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestGetOrCreateUserWrongInviteCodeStaysMember() {
	s.store.users.On("UpsertUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleMember
	})).Return(&domain.User{UserID: 7, Role: domain.RoleMember}, nil).Once()

	user, err := s.svc.GetOrCreateUser(s.ctx, 7, "alice", "open sesame")

	s.Require().NoError(err)
	s.False(user.IsAdmin())
	s.store.users.AssertNotCalled(s.T(), "UpdateUserRole", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestSetUserRoleRequiresAdmin() {
	s.store.users.On("FindUserByID", s.ctx, int64(7)).
		Return(&domain.User{UserID: 7, Role: domain.RoleMember}, nil).Once()

	_, err := s.svc.SetUserRole(s.ctx, 7, 8, domain.RoleAdmin)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.store.users.AssertNotCalled(s.T(), "UpdateUserRole", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestSetUserRoleSelfDemotionRejected() {
	s.store.users.On("FindUserByID", s.ctx, int64(100)).
		Return(&domain.User{UserID: 100, Role: domain.RoleAdmin}, nil).Once()

	_, err := s.svc.SetUserRole(s.ctx, 100, 100, domain.RoleMember)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestSetUserRolePromotes() {
	s.store.users.On("FindUserByID", s.ctx, int64(100)).
		Return(&domain.User{UserID: 100, Role: domain.RoleAdmin}, nil).Once()
	s.store.users.On("FindUserByID", s.ctx, int64(8)).
		Return(&domain.User{UserID: 8, Role: domain.RoleMember}, nil).Once()
	s.store.users.On("UpdateUserRole", s.ctx, int64(8), domain.RoleAdmin).Return(nil).Once()

	user, err := s.svc.SetUserRole(s.ctx, 100, 8, domain.RoleAdmin)

	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, user.Role)
	s.store.users.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestSetUserRoleUnknownTarget() {
	s.store.users.On("FindUserByID", s.ctx, int64(100)).
		Return(&domain.User{UserID: 100, Role: domain.RoleAdmin}, nil).Once()
	s.store.users.On("FindUserByID", s.ctx, int64(404)).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.svc.SetUserRole(s.ctx, 100, 404, domain.RoleAdmin)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserServiceTestSuite) TestListUsersFullRequiresAdmin() {
	s.store.users.On("FindUserByID", s.ctx, int64(7)).
		Return(&domain.User{UserID: 7, Role: domain.RoleMember}, nil).Once()

	_, err := s.svc.ListUsersFull(s.ctx, 7)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.store.users.AssertNotCalled(s.T(), "ListUsers", mock.Anything)
}

func (s *UserServiceTestSuite) TestListUsersFullAsAdmin() {
	s.store.users.On("FindUserByID", s.ctx, int64(100)).
		Return(&domain.User{UserID: 100, Role: domain.RoleAdmin}, nil).Once()
	s.store.users.On("ListUsers", s.ctx).
		Return([]domain.User{{UserID: 7, Role: domain.RoleMember, CashBalance: 500}}, nil).Once()

	users, err := s.svc.ListUsersFull(s.ctx, 100)

	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal(int64(500), users[0].CashBalance)
	s.store.users.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAdjustUserCashRequiresAdmin() {
	s.store.users.On("FindUserByID", s.ctx, int64(7)).
		Return(&domain.User{UserID: 7, Role: domain.RoleMember}, nil).Once()

	_, err := s.svc.AdjustUserCash(s.ctx, 7, 8, 1_000)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.store.users.AssertNotCalled(s.T(), "AdjustUserCash", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestAdjustUserCash() {
	s.store.users.On("FindUserByID", s.ctx, int64(100)).
		Return(&domain.User{UserID: 100, Role: domain.RoleAdmin}, nil).Once()
	s.store.users.On("FindUserByIDForUpdate", s.ctx, int64(8)).
		Return(&domain.User{UserID: 8, Role: domain.RoleMember, CashBalance: 2_000}, nil).Once()
	s.store.users.On("AdjustUserCash", s.ctx, int64(8), int64(-500)).Return(nil).Once()

	user, err := s.svc.AdjustUserCash(s.ctx, 100, 8, -500)

	s.Require().NoError(err)
	s.Equal(int64(1_500), user.CashBalance)
	s.True(s.store.uow.committed)
	s.store.users.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAdjustUserCashOverdrawRejected() {
	s.store.users.On("FindUserByID", s.ctx, int64(100)).
		Return(&domain.User{UserID: 100, Role: domain.RoleAdmin}, nil).Once()
	s.store.users.On("FindUserByIDForUpdate", s.ctx, int64(8)).
		Return(&domain.User{UserID: 8, Role: domain.RoleMember, CashBalance: 300}, nil).Once()

	_, err := s.svc.AdjustUserCash(s.ctx, 100, 8, -500)

	s.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	var insufficient *apperrors.InsufficientFundsError
	s.Require().ErrorAs(err, &insufficient)
	s.Equal(int64(300), insufficient.Current)
	s.False(s.store.uow.committed)
	s.store.users.AssertNotCalled(s.T(), "AdjustUserCash", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestAdjustUserCashUnknownTarget() {
	s.store.users.On("FindUserByID", s.ctx, int64(100)).
		Return(&domain.User{UserID: 100, Role: domain.RoleAdmin}, nil).Once()
	s.store.users.On("FindUserByIDForUpdate", s.ctx, int64(404)).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.svc.AdjustUserCash(s.ctx, 100, 404, 1_000)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.False(s.store.uow.committed)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
