package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/middleware"
)

// debtHandler serves debt listings and drives repayments through the engine.
type debtHandler struct {
	store            portsrepo.Store
	debtService      portssvc.DebtSvcFacade
	operationService portssvc.OperationSvcFacade
}

func newDebtHandler(store portsrepo.Store, ds portssvc.DebtSvcFacade, os portssvc.OperationSvcFacade) *debtHandler {
	return &debtHandler{store: store, debtService: ds, operationService: os}
}

// registerDebtRoutes registers the debt routes.
func registerDebtRoutes(rg *gin.RouterGroup, store portsrepo.Store, ds portssvc.DebtSvcFacade, os portssvc.OperationSvcFacade) {
	h := newDebtHandler(store, ds, os)
	debts := rg.Group("/debts")
	{
		debts.GET("", h.listDebts)
		debts.POST("/:debtID/repay", h.repayDebt)
	}
}

// listDebts godoc
// @Summary List open debts
// @Description Lists all open debts, or an entity's open debts split by role when entityID is given
// @Tags debts
// @Produce  json
// @Param   entityID query string false "Filter by entity"
// @Success 200 {object} dto.ListDebtsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list debts"
// @Security BearerAuth
// @Router /debts [get]
func (h *debtHandler) listDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if entityID := c.Query("entityID"); entityID != "" {
		owedTo, owedBy, err := h.debtService.ListDebtsByEntity(c.Request.Context(), entityID)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to list debts")
			return
		}
		c.JSON(http.StatusOK, dto.ListDebtsResponse{
			OwedToEntity: dto.ToDebtResponses(owedTo),
			OwedByEntity: dto.ToDebtResponses(owedBy),
		})
		return
	}

	debts, err := h.debtService.ListActiveDebts(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list debts")
		return
	}
	c.JSON(http.StatusOK, dto.ListDebtsResponse{All: dto.ToDebtResponses(debts)})
}

// repayDebt godoc
// @Summary Repay part or all of an open debt
// @Description Moves funds from the debtor entity to the creditor entity and shrinks the debt atomically
// @Tags debts
// @Accept  json
// @Produce  json
// @Param   debtID path string true "Debt ID"
// @Param   repayment body dto.RepayDebtRequest true "Amount to repay"
// @Success 200 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient funds"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Debt not found"
// @Failure 409 {object} map[string]string "Debt already settled"
// @Failure 422 {object} map[string]string "Repayment exceeds the open amount"
// @Failure 500 {object} map[string]string "Failed to repay debt"
// @Security BearerAuth
// @Router /debts/{debtID}/repay [post]
func (h *debtHandler) repayDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtID := c.Param("debtID")

	var req dto.RepayDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for debt repayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("acting_user_id", actingUserID), slog.String("debt_id", debtID))

	uow, err := h.store.Begin(c.Request.Context())
	if err != nil {
		logger.Error("Failed to open unit of work", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to repay debt"})
		return
	}
	defer uow.Rollback(c.Request.Context()) //nolint:errcheck // no-op after commit

	txn, err := h.operationService.RepayDebt(c.Request.Context(), uow, debtID, actingUserID, req.Amount)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to repay debt")
		return
	}
	if err := uow.Commit(c.Request.Context()); err != nil {
		logger.Error("Failed to commit repayment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to repay debt"})
		return
	}

	logger.Info("Debt repayment executed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.OperationResponse{Transaction: dto.ToTransactionResponse(*txn)})
}
