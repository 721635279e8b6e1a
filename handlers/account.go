package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/granaapp/grana-api/middleware"
	"github.com/granaapp/grana-api/models"
)

type AccountHandler struct {
	DB *sql.DB
	WS *WSHandler
}

func (h *AccountHandler) GetAccounts(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, name, type, balance, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
		return
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		a := models.Account{UserID: userID}
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Balance, &a.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read accounts"})
			return
		}
		accounts = append(accounts, a)
	}

	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type == "" {
		req.Type = "checking"
	}

	account := models.Account{
		UserID:  userID,
		Name:    req.Name,
		Type:    req.Type,
		Balance: req.Balance,
	}

	err := h.DB.QueryRow(`
		INSERT INTO accounts (user_id, name, type, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, userID, req.Name, req.Type, req.Balance).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	h.WS.BroadcastUpdate(userID, "accounts_changed")
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accountID := c.Param("id")

	var req models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type == "" {
		req.Type = "checking"
	}

	result, err := h.DB.Exec(`
		UPDATE accounts
		SET name = $1, type = $2, balance = $3
		WHERE id = $4 AND user_id = $5
	`, req.Name, req.Type, req.Balance, accountID, userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	h.WS.BroadcastUpdate(userID, "accounts_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Account updated"})
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accountID := c.Param("id")

	result, err := h.DB.Exec(`
		DELETE FROM accounts WHERE id = $1 AND user_id = $2
	`, accountID, userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	h.WS.BroadcastUpdate(userID, "accounts_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
