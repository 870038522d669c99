package dto

// TelegramAuthRequest carries the raw initData query string produced by the
// Telegram WebApp client.
type TelegramAuthRequest struct {
	InitData   string `json:"initData" binding:"required"`
	InviteCode string `json:"inviteCode,omitempty"`
}

// AuthResponse is the issued session token plus the resolved user.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
