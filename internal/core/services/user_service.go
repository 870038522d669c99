package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/middleware"
)

// userService manages registration and roles. The admin id list and invite
// code come from configuration at startup; nothing here reads global state.
type userService struct {
	store           portsrepo.Store
	adminIDs        []int64
	adminInviteCode string
}

// NewUserService creates a new UserService.
func NewUserService(store portsrepo.Store, adminIDs []int64, adminInviteCode string) portssvc.UserSvcFacade {
	return &userService{
		store:           store,
		adminIDs:        adminIDs,
		adminInviteCode: adminInviteCode,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetOrCreateUser registers the user on first contact, or refreshes the
// username of an existing one. The admin role is granted when the id is in
// the configured admin list or a valid invite code is presented.
func (s *userService) GetOrCreateUser(ctx context.Context, userID int64, username string, inviteCode string) (*domain.User, error) {
	role := domain.RoleMember
	if slices.Contains(s.adminIDs, userID) || s.inviteCodeValid(inviteCode) {
		role = domain.RoleAdmin
	}

	user, err := s.store.Users().UpsertUser(ctx, domain.User{
		UserID:    userID,
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %d: %w", userID, err)
	}

	// An existing member presenting a valid invite code is promoted.
	if user.Role != domain.RoleAdmin && role == domain.RoleAdmin {
		if err := s.store.Users().UpdateUserRole(ctx, userID, domain.RoleAdmin); err != nil {
			return nil, fmt.Errorf("failed to promote user %d: %w", userID, err)
		}
		user.Role = domain.RoleAdmin
		middleware.GetLoggerFromCtx(ctx).Info("user promoted to admin via invite code", slog.Int64("user_id", userID))
	}
	return user, nil
}

func (s *userService) inviteCodeValid(code string) bool {
	if code == "" || s.adminInviteCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.adminInviteCode)) == 1
}

// requireAdmin resolves the acting user and fails unless they hold the admin
// role.
func (s *userService) requireAdmin(ctx context.Context, actingUserID int64) (*domain.User, error) {
	actor, err := s.store.Users().FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("acting user %d: %w", actingUserID, err)
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return actor, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.store.Users().FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().ListUsers(ctx)
}

// ListUsersFull returns every user including role and cash balance. Admin
// only; members use ListUsers, which exposes the public view.
func (s *userService) ListUsersFull(ctx context.Context, actingUserID int64) ([]domain.User, error) {
	if _, err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}
	return s.store.Users().ListUsers(ctx)
}

// AdjustUserCash corrects a user's personal cash balance by delta. Admin
// only. The target row is locked so the overdraw check and the adjustment see
// the same balance.
func (s *userService) AdjustUserCash(ctx context.Context, actingUserID int64, targetUserID int64, delta int64) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open unit of work: %w", err)
	}
	defer uow.Rollback(ctx) //nolint:errcheck // no-op after commit

	target, err := uow.Users().FindUserByIDForUpdate(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("target user %d: %w", targetUserID, err)
	}
	if target.CashBalance+delta < 0 {
		return nil, apperrors.NewInsufficientFunds(target.CashBalance)
	}
	if err := uow.Users().AdjustUserCash(ctx, targetUserID, delta); err != nil {
		return nil, fmt.Errorf("failed to adjust cash of user %d: %w", targetUserID, err)
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit cash adjustment: %w", err)
	}
	target.CashBalance += delta

	logger.Info("user cash adjusted",
		slog.Int64("target_user_id", targetUserID),
		slog.Int64("delta", delta),
		slog.Int64("acting_user_id", actingUserID),
	)
	return target, nil
}

// SetUserRole changes a user's role. Only admins may do this, and an admin
// cannot demote themself.
func (s *userService) SetUserRole(ctx context.Context, actingUserID int64, targetUserID int64, role domain.UserRole) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}
	if actingUserID == targetUserID && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot demote yourself", apperrors.ErrValidation)
	}

	target, err := s.store.Users().FindUserByID(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("target user %d: %w", targetUserID, err)
	}
	if err := s.store.Users().UpdateUserRole(ctx, targetUserID, role); err != nil {
		return nil, fmt.Errorf("failed to update role of user %d: %w", targetUserID, err)
	}
	target.Role = role

	logger.Info("user role changed",
		slog.Int64("target_user_id", targetUserID),
		slog.String("role", string(role)),
		slog.Int64("acting_user_id", actingUserID),
	)
	return target, nil
}
