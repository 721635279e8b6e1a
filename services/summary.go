package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/granaapp/grana-api/models"
)

// SummaryService aggregates accounts, variable transactions and materialized
// fixed expenses into the dashboard view for one month.
type SummaryService struct {
	db    *sql.DB
	fixed *FixedExpenseService
}

func NewSummaryService(db *sql.DB, fixed *FixedExpenseService) *SummaryService {
	return &SummaryService{db: db, fixed: fixed}
}

func (s *SummaryService) GetMonthly(ctx context.Context, userID string, month, year int) (*models.MonthlySummary, error) {
	if !validPeriod(month, year) {
		return nil, ErrInvalidPeriod
	}

	var balance decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE user_id = $1`, userID,
	).Scan(&balance)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance: %w", err)
	}

	transactions, err := s.fetchMonthTransactions(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	fixed, err := s.fixed.GetMonthly(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	summary := buildMonthlySummary(month, year, transactions, fixed)
	summary.TotalBalance = balance
	return summary, nil
}

func (s *SummaryService) fetchMonthTransactions(ctx context.Context, userID string, month, year int) ([]models.Transaction, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT id, name, amount, category, date
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t := models.Transaction{UserID: userID}
		if err := rows.Scan(&t.ID, &t.Name, &t.Amount, &t.Category, &t.Date); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// buildMonthlySummary folds one month's variable transactions and
// materialized fixed expenses into the stat-card totals and the
// spending-by-category chart rows. Revenues are positive transaction
// amounts; expenses are negative ones plus every fixed expense.
func buildMonthlySummary(month, year int, transactions []models.Transaction, fixed []models.MonthlyExpense) *models.MonthlySummary {
	summary := &models.MonthlySummary{
		Month:         month,
		Year:          year,
		TotalExpenses: decimal.Zero,
		TotalRevenues: decimal.Zero,
		FixedExpenses: decimal.Zero,
	}

	byCategory := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		if t.Amount.IsNegative() {
			spent := t.Amount.Neg()
			summary.TotalExpenses = summary.TotalExpenses.Add(spent)
			key := ""
			if t.Category != nil {
				key = *t.Category
			}
			byCategory[key] = byCategory[key].Add(spent)
		} else {
			summary.TotalRevenues = summary.TotalRevenues.Add(t.Amount)
		}
	}

	for _, e := range fixed {
		summary.FixedExpenses = summary.FixedExpenses.Add(e.Amount)
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		if e.IsPaid {
			summary.PaidFixed++
		} else {
			summary.PendingFixed++
		}
		key := ""
		if e.Category != nil {
			key = *e.Category
		}
		byCategory[key] = byCategory[key].Add(e.Amount)
	}

	summary.ByCategory = make([]models.CategorySpending, 0, len(byCategory))
	for category, amount := range byCategory {
		summary.ByCategory = append(summary.ByCategory, models.CategorySpending{
			Category: category,
			Amount:   amount,
		})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if !summary.ByCategory[i].Amount.Equal(summary.ByCategory[j].Amount) {
			return summary.ByCategory[i].Amount.GreaterThan(summary.ByCategory[j].Amount)
		}
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	return summary
}

// UpcomingExpenses returns the current month's unpaid fixed expenses with a
// resolved due date, soonest first. Day-of-month values past the month's end
// clamp to its last day.
func (s *SummaryService) UpcomingExpenses(ctx context.Context, userID string, month, year int) ([]models.MonthlyExpense, error) {
	materialized, err := s.fixed.GetMonthly(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	upcoming := make([]models.MonthlyExpense, 0, len(materialized))
	for _, e := range materialized {
		if e.IsPaid {
			continue
		}
		if e.DayOfMonth != nil {
			day := dueDayIn(month, year, *e.DayOfMonth)
			e.DayOfMonth = &day
		}
		upcoming = append(upcoming, e)
	}

	return upcoming, nil
}
