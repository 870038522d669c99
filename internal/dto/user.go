package dto

import (
	"time"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
)

// UserResponse is the full user view, used by /me and admin listings.
type UserResponse struct {
	UserID      int64     `json:"userID"`
	Username    string    `json:"username,omitempty"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CashBalance int64     `json:"cashBalance"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublicUserResponse exposes only what other members may see.
type PublicUserResponse struct {
	UserID      int64  `json:"userID"`
	DisplayName string `json:"displayName"`
}

// SetRoleRequest changes a user's role.
type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin member"`
}

// AdjustUserCashRequest corrects a user's personal cash balance by a signed
// delta in minor units.
type AdjustUserCashRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

// ToUserResponse maps a domain user to its API shape.
func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName(),
		Role:        string(u.Role),
		CashBalance: u.CashBalance,
		CreatedAt:   u.CreatedAt,
	}
}

// ToPublicUserResponses maps users to the public picker shape.
func ToPublicUserResponses(users []domain.User) []PublicUserResponse {
	out := make([]PublicUserResponse, len(users))
	for i, u := range users {
		out[i] = PublicUserResponse{UserID: u.UserID, DisplayName: u.DisplayName()}
	}
	return out
}
