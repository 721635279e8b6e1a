package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/granaapp/grana-api/middleware"
	"github.com/granaapp/grana-api/models"
	"github.com/granaapp/grana-api/services"
)

type CategoryHandler struct {
	Service *services.CategoryService
	WS      *WSHandler
}

func NewCategoryHandler(service *services.CategoryService, ws *WSHandler) *CategoryHandler {
	return &CategoryHandler{Service: service, WS: ws}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	categories, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Service.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "categories_changed")
	c.JSON(http.StatusCreated, category)
}

// RenameCategory renames a category and every transaction and fixed expense
// still pointing at the old name.
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.Rename(c.Request.Context(), userID, req.OldName, req.NewName); err != nil {
		respondServiceError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "categories_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Category renamed"})
}

// DeleteCategory removes a category and uncategorizes its referencing rows.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Service.DeleteAndUncategorize(c.Request.Context(), userID, c.Param("name")); err != nil {
		respondServiceError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "categories_changed")
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
