package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/granaapp/grana-api/models"
	"github.com/granaapp/grana-api/utils"
)

var (
	ErrEmptyCategoryName = errors.New("category name cannot be empty")
	ErrDuplicateCategory = errors.New("category already exists")
)

// CategoryService manages the category list. Category names are free text
// duplicated onto transactions and fixed expenses, so rename and delete are
// explicit bulk maintenance routines over the referencing rows.
type CategoryService struct {
	db *sql.DB
}

func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

// NormalizeCategoryName trims surrounding whitespace and rejects empty names.
func NormalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyCategoryName
	}
	return name, nil
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	query := `
		SELECT id, name, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c := models.Category{UserID: userID}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, userID, name string) (*models.Category, error) {
	name, err := NormalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, category.ID, userID, name).Scan(&category.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// Rename renames a category and bulk-updates every transaction and fixed
// expense that references the old name, all in one transaction.
func (s *CategoryService) Rename(ctx context.Context, userID, oldName, newName string) error {
	newName, err := NormalizeCategoryName(newName)
	if err != nil {
		return err
	}

	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE categories SET name = $1 WHERE user_id = $2 AND name = $3`,
			newName, userID, oldName)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return ErrDuplicateCategory
			}
			return fmt.Errorf("failed to rename category: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE transactions SET category = $1 WHERE user_id = $2 AND category = $3`,
			newName, userID, oldName); err != nil {
			return fmt.Errorf("failed to update transactions: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE fixed_expenses SET category = $1 WHERE user_id = $2 AND category = $3`,
			newName, userID, oldName); err != nil {
			return fmt.Errorf("failed to update fixed expenses: %w", err)
		}

		return nil
	})
}

// DeleteAndUncategorize removes a category and clears it from every
// referencing transaction and fixed expense.
func (s *CategoryService) DeleteAndUncategorize(ctx context.Context, userID, name string) error {
	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM categories WHERE user_id = $1 AND name = $2`, userID, name)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE transactions SET category = NULL WHERE user_id = $1 AND category = $2`,
			userID, name); err != nil {
			return fmt.Errorf("failed to uncategorize transactions: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE fixed_expenses SET category = NULL WHERE user_id = $1 AND category = $2`,
			userID, name); err != nil {
			return fmt.Errorf("failed to uncategorize fixed expenses: %w", err)
		}

		return nil
	})
}
