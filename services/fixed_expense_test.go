package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/granaapp/grana-api/models"
)

// Validation happens before any database access, so a nil pool is enough to
// exercise the rejection paths.
func TestFixedExpenseService_Validation(t *testing.T) {
	svc := NewFixedExpenseService(nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{
			name: "copy into the same period",
			call: func() error {
				return svc.CopyMonth(ctx, "u1", 3, 2024, 3, 2024)
			},
			wantErr: ErrSamePeriod,
		},
		{
			name: "copy with month out of range",
			call: func() error {
				return svc.CopyMonth(ctx, "u1", 13, 2024, 4, 2024)
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "copy with non-positive destination year",
			call: func() error {
				return svc.CopyMonth(ctx, "u1", 3, 2024, 4, 0)
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "override with month zero",
			call: func() error {
				return svc.SetOverride(ctx, "u1", "fe1", 0, 2024, dec("100.00"))
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "override with negative amount",
			call: func() error {
				return svc.SetOverride(ctx, "u1", "fe1", 3, 2024, dec("-10.00"))
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "override with zero amount",
			call: func() error {
				return svc.SetOverride(ctx, "u1", "fe1", 3, 2024, decimal.Zero)
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "paid status with invalid period",
			call: func() error {
				return svc.SetPaidStatus(ctx, "u1", "fe1", 3, -1, true)
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "monthly edit with invalid period",
			call: func() error {
				return svc.UpdateMonthly(ctx, "u1", "fe1", models.UpdateMonthlyExpenseRequest{
					Month: 14, Year: 2024, Amount: dec("100.00"),
				})
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "monthly edit with non-positive amount",
			call: func() error {
				return svc.UpdateMonthly(ctx, "u1", "fe1", models.UpdateMonthlyExpenseRequest{
					Month: 3, Year: 2024, Amount: decimal.Zero,
				})
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "monthly read with invalid period",
			call: func() error {
				_, err := svc.GetMonthly(ctx, "u1", 0, 2024)
				return err
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "yearly read with non-positive year",
			call: func() error {
				_, err := svc.GetYearly(ctx, "u1", 0)
				return err
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "create with non-positive amount",
			call: func() error {
				_, err := svc.Create(ctx, "u1", models.CreateFixedExpenseRequest{
					Name: "Rent", Amount: dec("-1.00"),
				})
				return err
			},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotOverrides(t *testing.T) {
	source := []models.MonthlyExpense{
		{FixedExpenseID: "rent", Amount: dec("1350.00"), IsOverride: true, IsPaid: true},
		{FixedExpenseID: "internet", Amount: dec("89.90"), IsOverride: false, IsPaid: false},
	}

	rows := snapshotOverrides(source, 4, 2024)

	if len(rows) != 2 {
		t.Fatalf("expected 2 override rows, got %d", len(rows))
	}

	for i, want := range []struct {
		id     string
		amount string
	}{
		{"rent", "1350.00"},
		{"internet", "89.90"},
	} {
		row := rows[i]
		if row.FixedExpenseID != want.id {
			t.Errorf("row %d fixed_expense_id = %s, want %s", i, row.FixedExpenseID, want.id)
		}
		if !row.Amount.Equal(dec(want.amount)) {
			t.Errorf("row %d amount = %s, want %s", i, row.Amount, want.amount)
		}
		if row.Month != 4 || row.Year != 2024 {
			t.Errorf("row %d period = %d/%d, want 4/2024", i, row.Month, row.Year)
		}
	}
}

// A copied month carries the source's effective amounts but never its paid
// statuses, so materializing the destination from the snapshot shows
// everything pending.
func TestSnapshotOverrides_DestinationStartsPending(t *testing.T) {
	rentTemplate := template("rent", "Rent", "1200.00", intPtr(5))
	source := materializeMonthly(
		[]models.FixedExpense{rentTemplate},
		map[string]models.ExpenseOverride{
			"rent": {ID: "ov-1", FixedExpenseID: "rent", Month: 3, Year: 2024, Amount: dec("1350.00")},
		},
		map[string]models.MonthlyExpenseStatus{
			"rent": {FixedExpenseID: "rent", Month: 3, Year: 2024, IsPaid: true},
		},
	)

	snapshot := snapshotOverrides(source, 4, 2024)

	destOverrides := make(map[string]models.ExpenseOverride)
	for _, row := range snapshot {
		row.ID = "ov-dest"
		destOverrides[row.FixedExpenseID] = row
	}

	dest := materializeMonthly([]models.FixedExpense{rentTemplate}, destOverrides, nil)

	if !dest[0].Amount.Equal(dec("1350.00")) {
		t.Errorf("destination amount = %s, want the source effective 1350.00", dest[0].Amount)
	}
	if !dest[0].IsOverride {
		t.Error("destination entry should be an override")
	}
	if dest[0].IsPaid {
		t.Error("paid status must not travel with the copy")
	}
}
