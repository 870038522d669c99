package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/middleware"
	"github.com/smirnov-vv/ipledger/internal/platform/telegram"
)

// authHandler exchanges Telegram WebApp initData for a session token.
type authHandler struct {
	botToken     string
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(botToken string, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{botToken: botToken, userService: us, tokenService: ts}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, botToken string, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) {
	h := newAuthHandler(botToken, us, ts)
	rg.POST("/telegram", h.loginTelegram)
}

// loginTelegram godoc
// @Summary Authenticate with Telegram WebApp initData
// @Description Verifies the initData signature, registers the user on first contact and returns a JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.TelegramAuthRequest true "Raw initData and optional admin invite code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Invalid or stale initData"
// @Failure 500 {object} map[string]string "Failed to authenticate"
// @Router /auth/telegram [post]
func (h *authHandler) loginTelegram(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TelegramAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Telegram login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	webAppUser, err := telegram.ValidateInitData(req.InitData, h.botToken)
	if err != nil {
		if errors.Is(err, telegram.ErrStaleInitData) {
			logger.Warn("Stale initData presented")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "initData expired, please reopen the app"})
			return
		}
		logger.Warn("Invalid initData presented", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid initData"})
		return
	}

	logger = logger.With(slog.Int64("user_id", webAppUser.ID))

	user, err := h.userService.GetOrCreateUser(c.Request.Context(), webAppUser.ID, webAppUser.Username, req.InviteCode)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to authenticate")
		return
	}

	token, err := h.tokenService.IssueToken(*user)
	if err != nil {
		logger.Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
		return
	}

	logger.Info("User authenticated", slog.String("role", string(user.Role)))
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: dto.ToUserResponse(*user)})
}
