package models

import "time"

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// RenameCategoryRequest renames a category and bulk-updates every
// transaction and fixed expense that references the old name.
type RenameCategoryRequest struct {
	OldName string `json:"old_name" binding:"required"`
	NewName string `json:"new_name" binding:"required,max=100"`
}
