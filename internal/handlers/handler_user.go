package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/middleware"
)

// userHandler serves user profiles and role management.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers the member-visible user routes.
func registerUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade) {
	h := newUserHandler(us)
	rg.GET("/me", h.getMe)
	rg.GET("/users", h.listUsers)
}

// registerUserAdminRoutes registers the admin-only user routes.
func registerUserAdminRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade) {
	h := newUserHandler(us)
	users := rg.Group("/users")
	{
		users.GET("", h.listUsersFull)
		users.PATCH("/:userID/role", h.setUserRole)
		users.PATCH("/:userID/cash", h.adjustUserCash)
	}
}

// getMe godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to get profile"
// @Security BearerAuth
// @Router /me [get]
func (h *userHandler) getMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

// listUsers godoc
// @Summary List users
// @Description Returns the public view of every registered user, for pickers
// @Tags users
// @Produce  json
// @Success 200 {array} dto.PublicUserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list users"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToPublicUserResponses(users))
}

// listUsersFull godoc
// @Summary List users with roles and balances
// @Description Full user listing; admin only
// @Tags users
// @Produce  json
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 500 {object} map[string]string "Failed to list users"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *userHandler) listUsersFull(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	users, err := h.userService.ListUsersFull(c.Request.Context(), actingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list users")
		return
	}
	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = dto.ToUserResponse(u)
	}
	c.JSON(http.StatusOK, out)
}

// setUserRole godoc
// @Summary Change a user's role
// @Description Promotes or demotes a user; admin only, self-demotion rejected
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path int true "Target user ID"
// @Param   role body dto.SetRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 422 {object} map[string]string "Self-demotion rejected"
// @Failure 500 {object} map[string]string "Failed to set role"
// @Security BearerAuth
// @Router /admin/users/{userID}/role [patch]
func (h *userHandler) setUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	targetUserID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetUserRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("acting_user_id", actingUserID), slog.Int64("target_user_id", targetUserID))

	user, err := h.userService.SetUserRole(c.Request.Context(), actingUserID, targetUserID, domain.UserRole(req.Role))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to set role")
		return
	}

	logger.Info("User role changed", slog.String("role", string(user.Role)))
	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

// adjustUserCash godoc
// @Summary Correct a user's personal cash balance
// @Description Shifts the target user's cash balance by a signed delta; admin only
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path int true "Target user ID"
// @Param   adjustment body dto.AdjustUserCashRequest true "Signed delta in minor units"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input or balance would go negative"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to adjust cash balance"
// @Security BearerAuth
// @Router /admin/users/{userID}/cash [patch]
func (h *userHandler) adjustUserCash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	targetUserID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	var req dto.AdjustUserCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cash adjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("acting_user_id", actingUserID), slog.Int64("target_user_id", targetUserID))

	user, err := h.userService.AdjustUserCash(c.Request.Context(), actingUserID, targetUserID, req.Delta)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to adjust cash balance")
		return
	}

	logger.Info("User cash adjusted", slog.Int64("delta", req.Delta))
	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}
