package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/granaapp/grana-api/middleware"
	"github.com/granaapp/grana-api/models"
)

type TransactionHandler struct {
	DB *sql.DB
	WS *WSHandler
}

// GetTransactions lists the user's transactions, optionally filtered by
// month/year and by kind (expense = negative amounts, revenue = positive).
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := `
		SELECT t.id, t.account_id, a.name, t.name, t.amount, t.category, t.date, t.created_at
		FROM transactions t
		LEFT JOIN accounts a ON t.account_id = a.id
		WHERE t.user_id = $1
	`
	args := []interface{}{userID}

	if monthStr := c.Query("month"); monthStr != "" {
		month, err1 := strconv.Atoi(monthStr)
		year, err2 := strconv.Atoi(c.Query("year"))
		if err1 != nil || err2 != nil || month < 1 || month > 12 || year < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or year"})
			return
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		args = append(args, start, end)
		query += ` AND t.date >= $2 AND t.date < $3`
	}

	switch c.Query("kind") {
	case "expense":
		query += ` AND t.amount < 0`
	case "revenue":
		query += ` AND t.amount > 0`
	case "":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be expense or revenue"})
		return
	}

	query += ` ORDER BY t.date DESC, t.created_at DESC`

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t := models.Transaction{UserID: userID}
		if err := rows.Scan(&t.ID, &t.AccountID, &t.AccountName, &t.Name, &t.Amount, &t.Category, &t.Date, &t.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read transactions"})
			return
		}
		transactions = append(transactions, t)
	}

	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction := models.Transaction{
		UserID:    userID,
		AccountID: req.AccountID,
		Name:      req.Name,
		Amount:    req.Amount,
		Category:  req.Category,
		Date:      req.Date,
	}

	err := h.DB.QueryRow(`
		INSERT INTO transactions (user_id, account_id, name, amount, category, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, userID, req.AccountID, req.Name, req.Amount, req.Category, req.Date,
	).Scan(&transaction.ID, &transaction.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	h.WS.BroadcastUpdate(userID, "transactions_changed")
	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transactionID := c.Param("id")

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(`
		UPDATE transactions
		SET account_id = $1, name = $2, amount = $3, category = $4, date = $5
		WHERE id = $6 AND user_id = $7
	`, req.AccountID, req.Name, req.Amount, req.Category, req.Date, transactionID, userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	h.WS.BroadcastUpdate(userID, "transactions_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated"})
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transactionID := c.Param("id")

	result, err := h.DB.Exec(`
		DELETE FROM transactions WHERE id = $1 AND user_id = $2
	`, transactionID, userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	h.WS.BroadcastUpdate(userID, "transactions_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
