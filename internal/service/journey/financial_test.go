package journey

import (
	"testing"
	"time"

	"github.com/ignite/rentops/internal/domain"
)

func TestSummarizeFinancial_StatusRules(t *testing.T) {
	due := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	bills := []domain.Bill{
		{ID: "paid", Amount: 8500, PaidAmount: 8500, Status: domain.BillPaid, ChargeTypeCode: "rent", ChargeTypeName: "Monthly Rent", DueDate: due},
		{ID: "partial", Amount: 1200, PaidAmount: 500, Status: domain.BillPartial, ChargeTypeCode: "electricity", ChargeTypeName: "Electricity", DueDate: due.AddDate(0, 0, 10)},
		{ID: "overdue", Amount: 8500, PaidAmount: 0, Status: domain.BillOverdue, ChargeTypeCode: "rent", ChargeTypeName: "Monthly Rent", DueDate: due.AddDate(0, -1, 0)},
		{ID: "cancelled", Amount: 999, Status: domain.BillCancelled, DueDate: due},
		{ID: "waived", Amount: 400, Status: domain.BillWaived, DueDate: due},
	}
	refunds := []domain.Refund{
		{ID: "r-1", Amount: 3000, Status: domain.RefundProcessed},
		{ID: "r-2", Amount: 500, Status: domain.RefundInitiated},
		{ID: "r-3", Amount: 100, Status: domain.RefundFailed},
	}

	tenant := activeTenant()
	f := summarizeFinancial(tenant, bills, refunds)

	// Cancelled and waived bills stay out of every total.
	if f.TotalBilled != 18200 {
		t.Errorf("TotalBilled = %.2f, want 18200", f.TotalBilled)
	}
	if f.TotalPaid != 9000 {
		t.Errorf("TotalPaid = %.2f, want 9000", f.TotalPaid)
	}
	// Outstanding covers every payable status; overdue only the overdue one.
	if f.TotalOutstanding != 9200 {
		t.Errorf("TotalOutstanding = %.2f, want 700 + 8500 = 9200", f.TotalOutstanding)
	}
	if f.TotalOverdue != 8500 {
		t.Errorf("TotalOverdue = %.2f, want 8500", f.TotalOverdue)
	}

	// Only processed refunds count.
	if f.TotalRefunded != 3000 || f.RefundCount != 1 {
		t.Errorf("refunds = (%.2f, %d), want (3000, 1)", f.TotalRefunded, f.RefundCount)
	}

	if f.DepositAmount != tenant.DepositAmount || f.AdvanceAmount != tenant.AdvanceAmount {
		t.Error("deposit/advance must be carried from the tenant record")
	}
}

func TestSummarizeFinancial_ChargeBreakdown(t *testing.T) {
	bills := []domain.Bill{
		{ID: "b-1", Amount: 8500, PaidAmount: 8500, Status: domain.BillPaid, ChargeTypeCode: "rent", ChargeTypeName: "Monthly Rent"},
		{ID: "b-2", Amount: 8500, PaidAmount: 4000, Status: domain.BillPartial, ChargeTypeCode: "rent", ChargeTypeName: "Monthly Rent"},
		{ID: "b-3", Amount: 900, PaidAmount: 900, Status: domain.BillPaid, ChargeTypeCode: "electricity", ChargeTypeName: "Electricity"},
		{ID: "b-4", Amount: 300, PaidAmount: 0, Status: domain.BillPending},
	}

	f := summarizeFinancial(activeTenant(), bills, nil)

	if len(f.ChargeBreakdown) != 3 {
		t.Fatalf("breakdown rows = %d, want 3", len(f.ChargeBreakdown))
	}
	// Sorted by code: electricity, other, rent.
	if f.ChargeBreakdown[0].Code != "electricity" || f.ChargeBreakdown[1].Code != chargeTypeOther || f.ChargeBreakdown[2].Code != "rent" {
		t.Errorf("breakdown order = %q, %q, %q",
			f.ChargeBreakdown[0].Code, f.ChargeBreakdown[1].Code, f.ChargeBreakdown[2].Code)
	}

	rent := f.ChargeBreakdown[2]
	if rent.Billed != 17000 || rent.Paid != 12500 || rent.Balance != 4500 {
		t.Errorf("rent row = (%.2f, %.2f, %.2f), want (17000, 12500, 4500)", rent.Billed, rent.Paid, rent.Balance)
	}
}

func TestSummarizeFinancial_NextDue(t *testing.T) {
	early := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	later := early.AddDate(0, 1, 0)

	bills := []domain.Bill{
		{ID: "later", Amount: 500, Status: domain.BillPending, DueDate: later},
		{ID: "earliest-but-overdue", Amount: 800, Status: domain.BillOverdue, DueDate: early.AddDate(0, -1, 0)},
		{ID: "next", Amount: 1200, PaidAmount: 200, Status: domain.BillPartial, DueDate: early},
	}

	f := summarizeFinancial(activeTenant(), bills, nil)
	if f.NextDue == nil {
		t.Fatal("NextDue should be set")
	}
	// Overdue bills are not "next due"; only pending and partial qualify.
	if f.NextDue.BillID != "next" {
		t.Errorf("NextDue.BillID = %q, want %q", f.NextDue.BillID, "next")
	}
	if f.NextDue.Amount != 1000 {
		t.Errorf("NextDue.Amount = %.2f, want outstanding balance 1000", f.NextDue.Amount)
	}

	f = summarizeFinancial(activeTenant(), []domain.Bill{
		{ID: "done", Amount: 100, PaidAmount: 100, Status: domain.BillPaid, DueDate: early},
	}, nil)
	if f.NextDue != nil {
		t.Error("NextDue should be nil when nothing is awaiting payment")
	}
}
