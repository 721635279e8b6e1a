package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granaapp/grana-api/models"
	"github.com/granaapp/grana-api/utils"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidPeriod = errors.New("month must be between 1 and 12 and year must be positive")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrSamePeriod    = errors.New("source and destination period must differ")
)

// FixedExpenseService owns the recurring-expense core: the monthly
// materializer, the per-month override/status writer and the month-copy
// operator. Every query is scoped to the owning user.
type FixedExpenseService struct {
	db *sql.DB
}

func NewFixedExpenseService(db *sql.DB) *FixedExpenseService {
	return &FixedExpenseService{db: db}
}

func validPeriod(month, year int) bool {
	return month >= 1 && month <= 12 && year > 0
}

// execer lets the upsert helpers run on the pool or inside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// ============================================================================
// TEMPLATE CRUD
// ============================================================================

func (s *FixedExpenseService) Create(ctx context.Context, userID string, req models.CreateFixedExpenseRequest) (*models.FixedExpense, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	expense := &models.FixedExpense{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       req.Name,
		Amount:     req.Amount,
		Category:   req.Category,
		DayOfMonth: req.DayOfMonth,
	}

	query := `
		INSERT INTO fixed_expenses (id, user_id, name, amount, category, day_of_month)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		expense.ID, userID, expense.Name, expense.Amount, expense.Category, expense.DayOfMonth,
	).Scan(&expense.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create fixed expense: %w", err)
	}

	return expense, nil
}

// UpdateTemplate edits the standard definition of a recurring expense. It
// writes only the template row: months that already carry an override keep
// their overridden amount no matter what the template now says.
func (s *FixedExpenseService) UpdateTemplate(ctx context.Context, userID, id string, req models.UpdateFixedExpenseRequest) error {
	if !req.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	query := `
		UPDATE fixed_expenses
		SET name = $1, amount = $2, category = $3, day_of_month = $4
		WHERE id = $5 AND user_id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		req.Name, req.Amount, req.Category, req.DayOfMonth, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update fixed expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteTemplate removes a template. Overrides and status rows cascade at
// the database layer.
func (s *FixedExpenseService) DeleteTemplate(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM fixed_expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete fixed expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ============================================================================
// MATERIALIZER
// ============================================================================

// GetMonthly returns the effective fixed expenses for one period: template
// defaults merged with that period's overrides and paid statuses. Any fetch
// error fails the whole read.
func (s *FixedExpenseService) GetMonthly(ctx context.Context, userID string, month, year int) ([]models.MonthlyExpense, error) {
	if !validPeriod(month, year) {
		return nil, ErrInvalidPeriod
	}

	templates, err := s.fetchTemplates(ctx, userID)
	if err != nil {
		return nil, err
	}

	overrides, err := s.fetchOverrides(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	statuses, err := s.fetchStatuses(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	return materializeMonthly(templates, overrides, statuses), nil
}

// GetYearly returns twelve {month, amount} totals for a year, each month
// materialized with its own overrides.
func (s *FixedExpenseService) GetYearly(ctx context.Context, userID string, year int) ([]models.MonthlyTotal, error) {
	if year <= 0 {
		return nil, ErrInvalidPeriod
	}

	templates, err := s.fetchTemplates(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, fixed_expense_id, month, year, amount
		FROM expense_overrides
		WHERE user_id = $1 AND year = $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overrides: %w", err)
	}
	defer rows.Close()

	var overrides []models.ExpenseOverride
	for rows.Next() {
		var o models.ExpenseOverride
		if err := rows.Scan(&o.ID, &o.FixedExpenseID, &o.Month, &o.Year, &o.Amount); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return yearlyTotals(templates, overrides), nil
}

func (s *FixedExpenseService) fetchTemplates(ctx context.Context, userID string) ([]models.FixedExpense, error) {
	query := `
		SELECT id, name, amount, category, day_of_month, created_at
		FROM fixed_expenses
		WHERE user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixed expenses: %w", err)
	}
	defer rows.Close()

	var templates []models.FixedExpense
	for rows.Next() {
		t := models.FixedExpense{UserID: userID}
		if err := rows.Scan(&t.ID, &t.Name, &t.Amount, &t.Category, &t.DayOfMonth, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (s *FixedExpenseService) fetchOverrides(ctx context.Context, userID string, month, year int) (map[string]models.ExpenseOverride, error) {
	query := `
		SELECT id, fixed_expense_id, month, year, amount
		FROM expense_overrides
		WHERE user_id = $1 AND month = $2 AND year = $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]models.ExpenseOverride)
	for rows.Next() {
		var o models.ExpenseOverride
		if err := rows.Scan(&o.ID, &o.FixedExpenseID, &o.Month, &o.Year, &o.Amount); err != nil {
			return nil, err
		}
		overrides[o.FixedExpenseID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

func (s *FixedExpenseService) fetchStatuses(ctx context.Context, userID string, month, year int) (map[string]models.MonthlyExpenseStatus, error) {
	query := `
		SELECT fixed_expense_id, month, year, is_paid
		FROM monthly_expense_status
		WHERE user_id = $1 AND month = $2 AND year = $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]models.MonthlyExpenseStatus)
	for rows.Next() {
		var st models.MonthlyExpenseStatus
		if err := rows.Scan(&st.FixedExpenseID, &st.Month, &st.Year, &st.IsPaid); err != nil {
			return nil, err
		}
		statuses[st.FixedExpenseID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// ============================================================================
// OVERRIDE / STATUS WRITER
// ============================================================================

// SetOverride upserts the amount exception for one exact period. Calling it
// again for the same period replaces the amount (last write wins).
func (s *FixedExpenseService) SetOverride(ctx context.Context, userID, fixedExpenseID string, month, year int, amount decimal.Decimal) error {
	if !validPeriod(month, year) {
		return ErrInvalidPeriod
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := s.ensureOwned(ctx, userID, fixedExpenseID); err != nil {
		return err
	}

	return upsertOverride(ctx, s.db, userID, fixedExpenseID, month, year, amount)
}

// SetPaidStatus upserts the paid flag for one exact period.
func (s *FixedExpenseService) SetPaidStatus(ctx context.Context, userID, fixedExpenseID string, month, year int, isPaid bool) error {
	if !validPeriod(month, year) {
		return ErrInvalidPeriod
	}
	if err := s.ensureOwned(ctx, userID, fixedExpenseID); err != nil {
		return err
	}

	return upsertStatus(ctx, s.db, userID, fixedExpenseID, month, year, isPaid)
}

// UpdateMonthly is the "edit this month only" action: a new amount and paid
// flag for one period, applied as two upserts inside a single transaction so
// they cannot half-apply. The template is never touched.
func (s *FixedExpenseService) UpdateMonthly(ctx context.Context, userID, fixedExpenseID string, req models.UpdateMonthlyExpenseRequest) error {
	if !validPeriod(req.Month, req.Year) {
		return ErrInvalidPeriod
	}
	if !req.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := s.ensureOwned(ctx, userID, fixedExpenseID); err != nil {
		return err
	}

	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		if err := upsertOverride(ctx, tx, userID, fixedExpenseID, req.Month, req.Year, req.Amount); err != nil {
			return err
		}
		return upsertStatus(ctx, tx, userID, fixedExpenseID, req.Month, req.Year, req.IsPaid)
	})
}

func (s *FixedExpenseService) ensureOwned(ctx context.Context, userID, fixedExpenseID string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM fixed_expenses WHERE id = $1 AND user_id = $2)`,
		fixedExpenseID, userID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func upsertOverride(ctx context.Context, ex execer, userID, fixedExpenseID string, month, year int, amount decimal.Decimal) error {
	query := `
		INSERT INTO expense_overrides (user_id, fixed_expense_id, month, year, amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, fixed_expense_id, month, year)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
	`
	if _, err := ex.ExecContext(ctx, query, userID, fixedExpenseID, month, year, amount); err != nil {
		return fmt.Errorf("failed to upsert override: %w", err)
	}
	return nil
}

func upsertStatus(ctx context.Context, ex execer, userID, fixedExpenseID string, month, year int, isPaid bool) error {
	query := `
		INSERT INTO monthly_expense_status (user_id, fixed_expense_id, month, year, is_paid)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, fixed_expense_id, month, year)
		DO UPDATE SET is_paid = EXCLUDED.is_paid, updated_at = NOW()
	`
	if _, err := ex.ExecContext(ctx, query, userID, fixedExpenseID, month, year, isPaid); err != nil {
		return fmt.Errorf("failed to upsert payment status: %w", err)
	}
	return nil
}

// ============================================================================
// MONTH COPY
// ============================================================================

// CopyMonth snapshots the source period's effective amounts into destination
// overrides. Destination overrides for the same templates are overwritten,
// destination paid statuses are left alone (everything starts pending), and
// the source period is never modified. All writes run in one transaction.
func (s *FixedExpenseService) CopyMonth(ctx context.Context, userID string, srcMonth, srcYear, destMonth, destYear int) error {
	if !validPeriod(srcMonth, srcYear) || !validPeriod(destMonth, destYear) {
		return ErrInvalidPeriod
	}
	if srcMonth == destMonth && srcYear == destYear {
		return ErrSamePeriod
	}

	materialized, err := s.GetMonthly(ctx, userID, srcMonth, srcYear)
	if err != nil {
		return err
	}
	if len(materialized) == 0 {
		return nil
	}

	snapshot := snapshotOverrides(materialized, destMonth, destYear)

	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		for _, row := range snapshot {
			if err := upsertOverride(ctx, tx, userID, row.FixedExpenseID, row.Month, row.Year, row.Amount); err != nil {
				return err
			}
		}
		return nil
	})
}
