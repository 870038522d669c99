package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/middleware"
)

// reportingHandler serves period summary reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs)
	rg.GET("/reports/:period", h.getSummary)
}

// getSummary godoc
// @Summary Get a period summary report
// @Description Returns income and expense totals for the period plus current balances and open debts
// @Tags reports
// @Produce  json
// @Param   period path string true "Report period" Enums(today, week, month, all)
// @Success 200 {object} dto.SummaryReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Unknown period"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/{period} [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.Summary(c.Request.Context(), domain.ReportPeriod(c.Param("period")))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build report")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryReportResponse(*report))
}
