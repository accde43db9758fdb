package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/dto"
	"github.com/awqafio/waqf_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fiscalYearHandler handles HTTP requests for fiscal years.
type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
}

func newFiscalYearHandler(fiscalYearService portssvc.FiscalYearSvcFacade) *fiscalYearHandler {
	return &fiscalYearHandler{fiscalYearService: fiscalYearService}
}

func registerFiscalYearRoutes(v1 *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvcFacade) {
	h := newFiscalYearHandler(fiscalYearService)

	fiscalYears := v1.Group("/fiscal-years")
	{
		fiscalYears.GET("/active", h.getActiveFiscalYear)
	}
}

// getActiveFiscalYear returns the fiscal year currently accepting entries.
// 404 means no fiscal year is open; entry creation still works, uncategorized.
func (h *fiscalYearHandler) getActiveFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fy, err := h.fiscalYearService.GetActiveOpenFiscalYear(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get active fiscal year", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fiscal year"})
		return
	}
	if fy == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No open fiscal year"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}
