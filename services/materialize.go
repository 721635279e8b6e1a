package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/granaapp/grana-api/models"
)

// materializeMonthly merges the recurring-expense templates with one period's
// override and paid-status rows into the month view. It is the single
// authoritative merge: the monthly endpoint, the yearly totals and the
// month-copy snapshot all go through it.
//
// Rules:
//   - amount is the override amount when an override row exists, otherwise
//     the template default
//   - id is the override row id when present, otherwise the template id
//   - is_paid defaults to false when no status row exists
//
// Results are ordered by due day ascending, entries without a due day last.
func materializeMonthly(templates []models.FixedExpense, overrides map[string]models.ExpenseOverride, statuses map[string]models.MonthlyExpenseStatus) []models.MonthlyExpense {
	result := make([]models.MonthlyExpense, 0, len(templates))

	for _, t := range templates {
		entry := models.MonthlyExpense{
			ID:             t.ID,
			Name:           t.Name,
			Amount:         t.Amount,
			FixedExpenseID: t.ID,
			Category:       t.Category,
			DayOfMonth:     t.DayOfMonth,
		}

		if o, ok := overrides[t.ID]; ok {
			entry.ID = o.ID
			entry.Amount = o.Amount
			entry.IsOverride = true
		}

		if s, ok := statuses[t.ID]; ok {
			entry.IsPaid = s.IsPaid
		}

		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		di, dj := result[i].DayOfMonth, result[j].DayOfMonth
		switch {
		case di == nil && dj == nil:
			return result[i].Name < result[j].Name
		case di == nil:
			return false
		case dj == nil:
			return true
		case *di != *dj:
			return *di < *dj
		default:
			return result[i].Name < result[j].Name
		}
	})

	return result
}

// yearlyTotals computes the twelve {month, amount} rows for a year by
// materializing each month with that month's overrides. Paid status does not
// affect totals.
func yearlyTotals(templates []models.FixedExpense, overrides []models.ExpenseOverride) []models.MonthlyTotal {
	byMonth := make(map[int]map[string]models.ExpenseOverride)
	for _, o := range overrides {
		if byMonth[o.Month] == nil {
			byMonth[o.Month] = make(map[string]models.ExpenseOverride)
		}
		byMonth[o.Month][o.FixedExpenseID] = o
	}

	totals := make([]models.MonthlyTotal, 0, 12)
	for month := 1; month <= 12; month++ {
		sum := decimal.Zero
		for _, e := range materializeMonthly(templates, byMonth[month], nil) {
			sum = sum.Add(e.Amount)
		}
		totals = append(totals, models.MonthlyTotal{Month: month, Amount: sum})
	}

	return totals
}

// snapshotOverrides turns a materialized source month into the override rows
// the month-copy operator writes at the destination. Every entry becomes an
// override carrying the source's effective amount, whether or not the source
// amount was itself an override. Paid statuses are never part of the
// snapshot.
func snapshotOverrides(materialized []models.MonthlyExpense, destMonth, destYear int) []models.ExpenseOverride {
	rows := make([]models.ExpenseOverride, 0, len(materialized))
	for _, e := range materialized {
		rows = append(rows, models.ExpenseOverride{
			FixedExpenseID: e.FixedExpenseID,
			Month:          destMonth,
			Year:           destYear,
			Amount:         e.Amount,
		})
	}
	return rows
}

// dueDayIn resolves a template's day_of_month against a concrete month,
// clamping to the month's last day when the month is shorter (day 31 in
// February resolves to the 28th or 29th).
func dueDayIn(month, year, day int) int {
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		return lastDay
	}
	if day < 1 {
		return 1
	}
	return day
}
