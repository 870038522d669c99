package domain

import (
	"fmt"
	"time"
)

// UserRole defines the authorization level of a user.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// User represents a person operating the ledger. The ID is the stable
// external identity (Telegram user id); users are created on first contact
// and never deleted.
type User struct {
	UserID      int64     `json:"userID"`
	Username    string    `json:"username,omitempty"`
	Role        UserRole  `json:"role"`
	CashBalance int64     `json:"cashBalance"` // personal cash, minor units
	CreatedAt   time.Time `json:"createdAt"`
}

// DisplayName returns a human readable handle for the user.
func (u User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return fmt.Sprintf("ID:%d", u.UserID)
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
