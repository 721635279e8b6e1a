package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/granaapp/grana-api/middleware"
	"github.com/granaapp/grana-api/models"
	"github.com/granaapp/grana-api/services"
	"github.com/granaapp/grana-api/utils"
)

type FixedExpenseHandler struct {
	Service *services.FixedExpenseService
	WS      *WSHandler
}

func NewFixedExpenseHandler(service *services.FixedExpenseService, ws *WSHandler) *FixedExpenseHandler {
	return &FixedExpenseHandler{Service: service, WS: ws}
}

// GetMonthly returns the materialized fixed expenses for one period.
// Defaults to the current month when no period is given.
func (h *FixedExpenseHandler) GetMonthly(c *gin.Context) {
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

	expenses, err := h.Service.GetMonthly(c.Request.Context(), userID, month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetYearly returns twelve {month, amount} totals for a year.
func (h *FixedExpenseHandler) GetYearly(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	totals, err := h.Service.GetYearly(c.Request.Context(), userID, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

func (h *FixedExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "expenses_changed")
	c.JSON(http.StatusCreated, expense)
}

// UpdateTemplate is the "edit standard expense" action: it changes the
// template for the current and future months while past months keep any
// overridden amounts.
func (h *FixedExpenseHandler) UpdateTemplate(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.UpdateTemplate(c.Request.Context(), userID, c.Param("id"), req); err != nil {
		respondServiceError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "expenses_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Fixed expense updated"})
}

func (h *FixedExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Service.DeleteTemplate(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "expenses_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Fixed expense deleted"})
}

// UpdateMonthly applies an amount override and paid flag for one period only.
func (h *FixedExpenseHandler) UpdateMonthly(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateMonthlyExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fixedExpenseID := c.Param("id")
	if err := h.Service.UpdateMonthly(c.Request.Context(), userID, fixedExpenseID, req); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.LogExpenseAction("monthly edit", fixedExpenseID, userID, req.Month, req.Year)
	h.WS.BroadcastUpdate(userID, "expenses_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Monthly expense updated"})
}

// SetPaid toggles the paid flag for one period.
func (h *FixedExpenseHandler) SetPaid(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.SetPaidStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fixedExpenseID := c.Param("id")
	err := h.Service.SetPaidStatus(c.Request.Context(), userID, fixedExpenseID, req.Month, req.Year, req.IsPaid)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "expenses_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
}

// Copy duplicates a source month's effective fixed expenses into destination
// overrides.
func (h *FixedExpenseHandler) Copy(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CopyMonthlyExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Service.CopyMonth(c.Request.Context(), userID,
		req.SourceMonth, req.SourceYear, req.DestMonth, req.DestYear)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "expenses_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Expenses copied"})
}

// parsePeriod reads month/year query params, falling back to the given
// defaults. Writes a 400 response and returns ok=false on malformed input.
func parsePeriod(c *gin.Context, defaultMonth, defaultYear int) (month, year int, ok bool) {
	month, year = defaultMonth, defaultYear

	if monthStr := c.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return 0, 0, false
		}
		month = parsed
	}
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return 0, 0, false
		}
		year = parsed
	}

	return month, year, true
}

// respondServiceError maps service errors to HTTP statuses: validation
// sentinels become 400s, missing rows 404s, anything else a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrInvalidPeriod),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrSamePeriod),
		errors.Is(err, services.ErrEmptyCategoryName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateCategory):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		utils.SafeError("service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
