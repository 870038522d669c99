package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/middleware"
)

// entityHandler serves entity management and the balance dashboard.
type entityHandler struct {
	entityService portssvc.EntitySvcFacade
}

func newEntityHandler(es portssvc.EntitySvcFacade) *entityHandler {
	return &entityHandler{entityService: es}
}

// registerEntityRoutes registers the member-visible entity routes.
func registerEntityRoutes(rg *gin.RouterGroup, es portssvc.EntitySvcFacade) {
	h := newEntityHandler(es)
	rg.GET("/balance", h.getBalance)
	entities := rg.Group("/entities")
	{
		entities.GET("", h.listEntities)
		entities.GET("/:entityID", h.getEntity)
	}
}

// registerEntityAdminRoutes registers the admin-only entity routes.
func registerEntityAdminRoutes(rg *gin.RouterGroup, es portssvc.EntitySvcFacade) {
	h := newEntityHandler(es)
	entities := rg.Group("/entities")
	{
		entities.POST("", h.createEntity)
		entities.PUT("/:entityID/balances", h.updateEntityBalances)
	}
}

// getBalance godoc
// @Summary Get the balance dashboard
// @Description Returns every entity with its sub-balances plus bank and cash totals
// @Tags entities
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to get balances"
// @Security BearerAuth
// @Router /balance [get]
func (h *entityHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entities, err := h.entityService.ListEntities(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(entities))
}

// listEntities godoc
// @Summary List entities
// @Tags entities
// @Produce  json
// @Success 200 {array} dto.EntityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entities"
// @Security BearerAuth
// @Router /entities [get]
func (h *entityHandler) listEntities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entities, err := h.entityService.ListEntities(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list entities")
		return
	}
	out := make([]dto.EntityResponse, len(entities))
	for i, e := range entities {
		out[i] = dto.ToEntityResponse(e)
	}
	c.JSON(http.StatusOK, out)
}

// getEntity godoc
// @Summary Get an entity by ID
// @Tags entities
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to get entity"
// @Security BearerAuth
// @Router /entities/{entityID} [get]
func (h *entityHandler) getEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entity, err := h.entityService.GetEntity(c.Request.Context(), c.Param("entityID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get entity")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntityResponse(*entity))
}

// createEntity godoc
// @Summary Create a new entity
// @Description Creates an entity with its opening balances; admin only
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   entity body dto.CreateEntityRequest true "Entity details"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 422 {object} map[string]string "Entity name already taken"
// @Failure 500 {object} map[string]string "Failed to create entity"
// @Security BearerAuth
// @Router /admin/entities [post]
func (h *entityHandler) createEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("acting_user_id", actingUserID), slog.String("entity_name", req.Name))

	entity, err := h.entityService.CreateEntity(c.Request.Context(), actingUserID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create entity")
		return
	}

	logger.Info("Entity created", slog.String("entity_id", entity.EntityID))
	c.JSON(http.StatusCreated, dto.ToEntityResponse(*entity))
}

// updateEntityBalances godoc
// @Summary Correct an entity's balances
// @Description Overwrites the bank and cash balances of an entity; admin only
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   balances body dto.UpdateEntityBalancesRequest true "New balances"
// @Success 200 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to update balances"
// @Security BearerAuth
// @Router /admin/entities/{entityID}/balances [put]
func (h *entityHandler) updateEntityBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.UpdateEntityBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntityBalances", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("acting_user_id", actingUserID), slog.String("entity_id", entityID))

	entity, err := h.entityService.UpdateEntityBalances(c.Request.Context(), actingUserID, entityID, req.BankBalance, req.CashBalance)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update balances")
		return
	}

	logger.Info("Entity balances corrected")
	c.JSON(http.StatusOK, dto.ToEntityResponse(*entity))
}
