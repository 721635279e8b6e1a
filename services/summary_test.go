package services

import (
	"errors"
	"testing"

	"github.com/granaapp/grana-api/models"
)

func TestBuildMonthlySummary(t *testing.T) {
	food := strPtr("Food")
	housing := strPtr("Housing")

	transactions := []models.Transaction{
		{Name: "Salary", Amount: dec("5000.00")},
		{Name: "Groceries", Amount: dec("-320.50"), Category: food},
		{Name: "Restaurant", Amount: dec("-80.00"), Category: food},
		{Name: "Cash gift", Amount: dec("-50.00")},
	}
	fixed := []models.MonthlyExpense{
		{FixedExpenseID: "rent", Amount: dec("1200.00"), Category: housing, IsPaid: true},
		{FixedExpenseID: "internet", Amount: dec("89.90"), Category: housing},
	}

	summary := buildMonthlySummary(3, 2024, transactions, fixed)

	if !summary.TotalRevenues.Equal(dec("5000.00")) {
		t.Errorf("revenues = %s, want 5000.00", summary.TotalRevenues)
	}
	// 320.50 + 80 + 50 variable, plus 1289.90 fixed
	if !summary.TotalExpenses.Equal(dec("1740.40")) {
		t.Errorf("expenses = %s, want 1740.40", summary.TotalExpenses)
	}
	if !summary.FixedExpenses.Equal(dec("1289.90")) {
		t.Errorf("fixed total = %s, want 1289.90", summary.FixedExpenses)
	}
	if summary.PaidFixed != 1 || summary.PendingFixed != 1 {
		t.Errorf("paid/pending = %d/%d, want 1/1", summary.PaidFixed, summary.PendingFixed)
	}

	want := []struct {
		category string
		amount   string
	}{
		{"Housing", "1289.90"},
		{"Food", "400.50"},
		{"", "50.00"}, // uncategorized
	}
	if len(summary.ByCategory) != len(want) {
		t.Fatalf("got %d category rows, want %d", len(summary.ByCategory), len(want))
	}
	for i, w := range want {
		got := summary.ByCategory[i]
		if got.Category != w.category || !got.Amount.Equal(dec(w.amount)) {
			t.Errorf("row %d = {%q %s}, want {%q %s}", i, got.Category, got.Amount, w.category, w.amount)
		}
	}
}

func TestBuildMonthlySummary_Empty(t *testing.T) {
	summary := buildMonthlySummary(1, 2024, nil, nil)

	if !summary.TotalExpenses.IsZero() || !summary.TotalRevenues.IsZero() || !summary.FixedExpenses.IsZero() {
		t.Error("empty month should produce zero totals")
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("empty month produced %d category rows", len(summary.ByCategory))
	}
}

func TestNormalizeCategoryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain name", "Food", "Food", nil},
		{"trims whitespace", "  Housing  ", "Housing", nil},
		{"empty", "", "", ErrEmptyCategoryName},
		{"whitespace only", "   ", "", ErrEmptyCategoryName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCategoryName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
