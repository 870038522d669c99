package middleware

import "github.com/gin-gonic/gin"

const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user's id set by the auth
// middleware. The second return value reports whether it was present.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(int64)
	return userID, ok
}
