package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/middleware"
)

// operationHandler executes money-moving operations and serves the ledger
// history. It owns the transaction boundary: each operation runs inside one
// unit of work that is committed only after the engine succeeds.
type operationHandler struct {
	store            portsrepo.Store
	operationService portssvc.OperationSvcFacade
	ledgerService    portssvc.LedgerSvcFacade
}

func newOperationHandler(store portsrepo.Store, os portssvc.OperationSvcFacade, ls portssvc.LedgerSvcFacade) *operationHandler {
	return &operationHandler{store: store, operationService: os, ledgerService: ls}
}

// registerOperationRoutes registers the operation and history routes.
func registerOperationRoutes(rg *gin.RouterGroup, store portsrepo.Store, os portssvc.OperationSvcFacade, ls portssvc.LedgerSvcFacade) {
	h := newOperationHandler(store, os, ls)
	rg.POST("/operations", h.executeOperation)
	rg.GET("/transactions", h.listTransactions)
}

// executeOperation godoc
// @Summary Execute a money-moving operation
// @Description Runs one operation (purchase, income, withdrawal, deposit or loan) atomically
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   operation body dto.OperationRequest true "Operation to execute"
// @Success 201 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient funds"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User or entity not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Failed to execute operation"
// @Security BearerAuth
// @Router /operations [post]
func (h *operationHandler) executeOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for operation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("acting_user_id", actingUserID), slog.String("kind", string(req.Kind)))

	uow, err := h.store.Begin(c.Request.Context())
	if err != nil {
		logger.Error("Failed to open unit of work", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute operation"})
		return
	}
	defer uow.Rollback(c.Request.Context()) //nolint:errcheck // no-op after commit

	txn, err := h.operationService.Execute(c.Request.Context(), uow, actingUserID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to execute operation")
		return
	}
	if err := uow.Commit(c.Request.Context()); err != nil {
		logger.Error("Failed to commit operation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute operation"})
		return
	}

	logger.Info("Operation executed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.OperationResponse{Transaction: dto.ToTransactionResponse(*txn)})
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Returns operation history newest first, optionally filtered
// @Tags operations
// @Produce  json
// @Param   userID query int false "Filter by acting user"
// @Param   entityID query string false "Filter by entity (as source or target)"
// @Param   since query string false "Only entries at or after this RFC 3339 time"
// @Param   limit query int false "Max entries to return" default(50)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *operationHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var filter portsrepo.LedgerFilter
	if raw := c.Query("userID"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userID"})
			return
		}
		filter.UserID = &userID
	}
	if raw := c.Query("entityID"); raw != "" {
		entityID := raw
		filter.EntityID = &entityID
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since, expected RFC 3339"})
			return
		}
		filter.Since = &since
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}

	entries, err := h.ledgerService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(entries)})
}
