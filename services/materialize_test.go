package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/granaapp/grana-api/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func template(id, name, amount string, day *int) models.FixedExpense {
	return models.FixedExpense{
		ID:         id,
		Name:       name,
		Amount:     dec(amount),
		DayOfMonth: day,
	}
}

func TestMaterializeMonthly_OverridePrecedence(t *testing.T) {
	templates := []models.FixedExpense{
		template("rent", "Rent", "1200.00", intPtr(5)),
		template("internet", "Internet", "89.90", intPtr(10)),
	}

	tests := []struct {
		name         string
		overrides    map[string]models.ExpenseOverride
		wantAmount   string
		wantID       string
		wantOverride bool
	}{
		{
			name:         "no override uses template default",
			overrides:    nil,
			wantAmount:   "1200.00",
			wantID:       "rent",
			wantOverride: false,
		},
		{
			name: "override shadows template amount",
			overrides: map[string]models.ExpenseOverride{
				"rent": {ID: "ov-1", FixedExpenseID: "rent", Month: 3, Year: 2024, Amount: dec("1350.00")},
			},
			wantAmount:   "1350.00",
			wantID:       "ov-1",
			wantOverride: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := materializeMonthly(templates, tt.overrides, nil)
			if len(result) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(result))
			}

			rent := result[0] // day 5 sorts before day 10
			if rent.FixedExpenseID != "rent" {
				t.Fatalf("expected rent first, got %s", rent.FixedExpenseID)
			}
			if !rent.Amount.Equal(dec(tt.wantAmount)) {
				t.Errorf("amount = %s, want %s", rent.Amount, tt.wantAmount)
			}
			if rent.ID != tt.wantID {
				t.Errorf("id = %s, want %s", rent.ID, tt.wantID)
			}
			if rent.IsOverride != tt.wantOverride {
				t.Errorf("is_override = %v, want %v", rent.IsOverride, tt.wantOverride)
			}
		})
	}
}

func TestMaterializeMonthly_TemplateEditDoesNotTouchOverride(t *testing.T) {
	overrides := map[string]models.ExpenseOverride{
		"rent": {ID: "ov-1", FixedExpenseID: "rent", Month: 3, Year: 2024, Amount: dec("1350.00")},
	}

	before := materializeMonthly([]models.FixedExpense{
		template("rent", "Rent", "1200.00", intPtr(5)),
	}, overrides, nil)

	// Edit the standard amount; the override row is untouched.
	after := materializeMonthly([]models.FixedExpense{
		template("rent", "Rent", "1250.00", intPtr(5)),
	}, overrides, nil)

	if !before[0].Amount.Equal(dec("1350.00")) || !after[0].Amount.Equal(dec("1350.00")) {
		t.Errorf("overridden month changed after template edit: before=%s after=%s",
			before[0].Amount, after[0].Amount)
	}

	// A month with no override picks up the new default.
	april := materializeMonthly([]models.FixedExpense{
		template("rent", "Rent", "1250.00", intPtr(5)),
	}, nil, nil)
	if !april[0].Amount.Equal(dec("1250.00")) {
		t.Errorf("non-overridden month = %s, want 1250.00", april[0].Amount)
	}
}

func TestMaterializeMonthly_StatusDefault(t *testing.T) {
	templates := []models.FixedExpense{
		template("rent", "Rent", "1200.00", intPtr(5)),
		template("gym", "Gym", "50.00", intPtr(15)),
	}
	statuses := map[string]models.MonthlyExpenseStatus{
		"gym": {FixedExpenseID: "gym", Month: 3, Year: 2024, IsPaid: true},
	}

	result := materializeMonthly(templates, nil, statuses)

	if result[0].IsPaid {
		t.Error("rent has no status row, expected is_paid = false")
	}
	if !result[1].IsPaid {
		t.Error("gym has a paid status row, expected is_paid = true")
	}
}

func TestMaterializeMonthly_Ordering(t *testing.T) {
	templates := []models.FixedExpense{
		template("c", "Streaming", "30.00", nil),
		template("a", "Rent", "1200.00", intPtr(20)),
		template("b", "Internet", "89.90", intPtr(5)),
		template("d", "Donation", "10.00", nil),
	}

	result := materializeMonthly(templates, nil, nil)

	got := []string{result[0].FixedExpenseID, result[1].FixedExpenseID, result[2].FixedExpenseID, result[3].FixedExpenseID}
	want := []string{"b", "a", "d", "c"} // day 5, day 20, then no-day sorted by name
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestMaterializeMonthly_EndToEndScenario(t *testing.T) {
	// The persisted state, simulated as the maps the service fetches.
	rent := template("rent", "Rent", "1200.00", intPtr(5))
	overrides := map[string]models.ExpenseOverride{}
	statuses := map[string]models.MonthlyExpenseStatus{}

	march := func() models.MonthlyExpense {
		return materializeMonthly([]models.FixedExpense{rent}, overrides, statuses)[0]
	}

	// March 2024, nothing recorded yet
	got := march()
	if !got.Amount.Equal(dec("1200.00")) || got.IsOverride || got.IsPaid {
		t.Fatalf("fresh month = {%s override=%v paid=%v}, want {1200.00 false false}",
			got.Amount, got.IsOverride, got.IsPaid)
	}

	// Override March to 1350
	overrides["rent"] = models.ExpenseOverride{ID: "ov-1", FixedExpenseID: "rent", Month: 3, Year: 2024, Amount: dec("1350.00")}
	got = march()
	if !got.Amount.Equal(dec("1350.00")) || !got.IsOverride {
		t.Fatalf("after override = {%s override=%v}, want {1350.00 true}", got.Amount, got.IsOverride)
	}

	// Mark March paid
	statuses["rent"] = models.MonthlyExpenseStatus{FixedExpenseID: "rent", Month: 3, Year: 2024, IsPaid: true}
	if got = march(); !got.IsPaid {
		t.Fatal("after status upsert, expected is_paid = true")
	}

	// Edit the standard amount to 1250: March keeps its override,
	// April (no override) follows the template.
	rent.Amount = dec("1250.00")
	if got = march(); !got.Amount.Equal(dec("1350.00")) {
		t.Errorf("March after template edit = %s, want 1350.00", got.Amount)
	}
	april := materializeMonthly([]models.FixedExpense{rent}, nil, nil)[0]
	if !april.Amount.Equal(dec("1250.00")) {
		t.Errorf("April after template edit = %s, want 1250.00", april.Amount)
	}
}

func TestYearlyTotals(t *testing.T) {
	templates := []models.FixedExpense{
		template("rent", "Rent", "1000.00", intPtr(5)),
		template("internet", "Internet", "100.00", intPtr(10)),
	}
	overrides := []models.ExpenseOverride{
		{ID: "ov-1", FixedExpenseID: "rent", Month: 6, Year: 2024, Amount: dec("1200.00")},
	}

	totals := yearlyTotals(templates, overrides)

	if len(totals) != 12 {
		t.Fatalf("expected 12 months, got %d", len(totals))
	}
	for _, mt := range totals {
		want := dec("1100.00")
		if mt.Month == 6 {
			want = dec("1300.00")
		}
		if !mt.Amount.Equal(want) {
			t.Errorf("month %d total = %s, want %s", mt.Month, mt.Amount, want)
		}
	}
}

func TestDueDayIn(t *testing.T) {
	tests := []struct {
		name  string
		month int
		year  int
		day   int
		want  int
	}{
		{"regular day", 3, 2024, 5, 5},
		{"day 31 in a 30-day month clamps", 4, 2024, 31, 30},
		{"day 31 in leap February clamps to 29", 2, 2024, 31, 29},
		{"day 30 in non-leap February clamps to 28", 2, 2023, 30, 28},
		{"day 29 in leap February is valid", 2, 2024, 29, 29},
		{"last of december", 12, 2024, 31, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dueDayIn(tt.month, tt.year, tt.day); got != tt.want {
				t.Errorf("dueDayIn(%d, %d, %d) = %d, want %d", tt.month, tt.year, tt.day, got, tt.want)
			}
		})
	}
}
