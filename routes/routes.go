package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/granaapp/grana-api/handlers"
	"github.com/granaapp/grana-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
	rg.POST("/auth/logout", authHandler.Logout)
}

// SetupUserRoutes sets up protected user/profile routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
	rg.DELETE("/user/account", userHandler.DeleteAccount)
}

// SetupAccountRoutes sets up protected account CRUD routes.
func SetupAccountRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	accountHandler := &handlers.AccountHandler{DB: db, WS: ws}

	rg.GET("/accounts", accountHandler.GetAccounts)
	rg.POST("/accounts", accountHandler.CreateAccount)
	rg.PUT("/accounts/:id", accountHandler.UpdateAccount)
	rg.DELETE("/accounts/:id", accountHandler.DeleteAccount)
}

// SetupTransactionRoutes sets up protected transaction CRUD routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	transactionHandler := &handlers.TransactionHandler{DB: db, WS: ws}

	rg.GET("/transactions", transactionHandler.GetTransactions)
	rg.POST("/transactions", transactionHandler.CreateTransaction)
	rg.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	rg.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)
}

// SetupFixedExpenseRoutes sets up the recurring-expense routes: template
// CRUD, the materialized monthly/yearly views, per-month edits and the
// month-copy operation.
func SetupFixedExpenseRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	fixedExpenseService := services.NewFixedExpenseService(db)
	h := handlers.NewFixedExpenseHandler(fixedExpenseService, ws)

	rg.GET("/fixed-expenses", h.GetMonthly)
	rg.GET("/fixed-expenses/yearly", h.GetYearly)
	rg.POST("/fixed-expenses", h.Create)
	rg.POST("/fixed-expenses/copy", h.Copy)
	rg.PUT("/fixed-expenses/:id", h.UpdateTemplate)
	rg.PUT("/fixed-expenses/:id/monthly", h.UpdateMonthly)
	rg.PUT("/fixed-expenses/:id/paid", h.SetPaid)
	rg.DELETE("/fixed-expenses/:id", h.Delete)
}

// SetupCategoryRoutes sets up category management routes.
func SetupCategoryRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	categoryService := services.NewCategoryService(db)
	h := handlers.NewCategoryHandler(categoryService, ws)

	rg.GET("/categories", h.GetCategories)
	rg.POST("/categories", h.CreateCategory)
	rg.PUT("/categories/rename", h.RenameCategory)
	rg.DELETE("/categories/:name", h.DeleteCategory)
}

// SetupSummaryRoutes sets up the dashboard summary routes.
func SetupSummaryRoutes(rg *gin.RouterGroup, db *sql.DB) {
	fixedExpenseService := services.NewFixedExpenseService(db)
	summaryService := services.NewSummaryService(db, fixedExpenseService)
	h := handlers.NewSummaryHandler(summaryService)

	rg.GET("/summary", h.GetMonthlySummary)
	rg.GET("/summary/upcoming", h.GetUpcomingExpenses)
}
