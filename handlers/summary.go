package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/granaapp/grana-api/middleware"
	"github.com/granaapp/grana-api/services"
)

type SummaryHandler struct {
	Service *services.SummaryService
}

func NewSummaryHandler(service *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{Service: service}
}

// GetMonthlySummary returns the dashboard totals and the spending-by-category
// breakdown for one month.
func (h *SummaryHandler) GetMonthlySummary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now()
	month, year, ok := parsePeriod(c, int(now.Month()), now.Year())
	if !ok {
		return
	}

	summary, err := h.Service.GetMonthly(c.Request.Context(), userID, month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetUpcomingExpenses lists the month's unpaid fixed expenses, soonest due
// first.
func (h *SummaryHandler) GetUpcomingExpenses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now()
	month, year, ok := parsePeriod(c, int(now.Month()), now.Year())
	if !ok {
		return
	}

	upcoming, err := h.Service.UpcomingExpenses(c.Request.Context(), userID, month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, upcoming)
}
