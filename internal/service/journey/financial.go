package journey

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ignite/rentops/internal/domain"
	"github.com/ignite/rentops/internal/pkg/logger"
)

// chargeTypeOther buckets charges that carry no typed classification.
const chargeTypeOther = "other"

// ChargeTypeBreakdown is one row of the per-charge-type ledger.
type ChargeTypeBreakdown struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Billed  float64 `json:"billed"`
	Paid    float64 `json:"paid"`
	Balance float64 `json:"balance"`
}

// NextDueBill points at the soonest bill still awaiting payment.
type NextDueBill struct {
	BillID  string    `json:"bill_id"`
	DueDate time.Time `json:"due_date"`
	Amount  float64   `json:"amount"`
}

// FinancialSummary is the tenant's money position at a glance. Outstanding
// trusts bill status, never recomputes it from due dates.
type FinancialSummary struct {
	DepositAmount float64 `json:"deposit_amount"`
	DepositPaid   float64 `json:"deposit_paid"`
	AdvanceAmount float64 `json:"advance_amount"`

	TotalBilled      float64 `json:"total_billed"`
	TotalPaid        float64 `json:"total_paid"`
	TotalOutstanding float64 `json:"total_outstanding"`
	TotalOverdue     float64 `json:"total_overdue"`

	TotalRefunded float64 `json:"total_refunded"`
	RefundCount   int     `json:"refund_count"`

	ChargeBreakdown []ChargeTypeBreakdown `json:"charge_breakdown"`
	NextDue         *NextDueBill          `json:"next_due,omitempty"`
}

// computeFinancial summarizes bills and refunds for one tenant. Source reads
// degrade to empty on failure, matching the timeline policy.
func (s *Service) computeFinancial(ctx context.Context, tenant *domain.Tenant) (*FinancialSummary, error) {
	var (
		wg      sync.WaitGroup
		bills   []domain.Bill
		refunds []domain.Refund
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if bills, err = s.sources.BillsByTenant(ctx, tenant.ID); err != nil {
			logger.Warn("financial source fetch failed, degrading to empty",
				"source", tableBills, "tenant_id", tenant.ID, "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if refunds, err = s.sources.RefundsByTenant(ctx, tenant.ID); err != nil {
			logger.Warn("financial source fetch failed, degrading to empty",
				"source", tableRefunds, "tenant_id", tenant.ID, "error", err)
		}
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return summarizeFinancial(tenant, bills, refunds), nil
}

func summarizeFinancial(tenant *domain.Tenant, bills []domain.Bill, refunds []domain.Refund) *FinancialSummary {
	f := &FinancialSummary{
		DepositAmount: tenant.DepositAmount,
		DepositPaid:   tenant.DepositPaid,
		AdvanceAmount: tenant.AdvanceAmount,
	}

	breakdown := make(map[string]*ChargeTypeBreakdown)
	var nextDue *domain.Bill

	for i := range bills {
		b := &bills[i]
		switch b.Status {
		case domain.BillCancelled, domain.BillWaived:
			// terminal non-payable, kept out of every total
			continue
		}

		f.TotalBilled += b.Amount
		f.TotalPaid += b.PaidAmount
		if b.Status.IsPayable() {
			f.TotalOutstanding += b.Balance()
		}
		if b.Status == domain.BillOverdue {
			f.TotalOverdue += b.Balance()
		}

		code := b.ChargeTypeCode
		if code == "" {
			code = chargeTypeOther
		}
		row, ok := breakdown[code]
		if !ok {
			name := b.ChargeTypeName
			if name == "" {
				name = "Other"
			}
			row = &ChargeTypeBreakdown{Code: code, Name: name}
			breakdown[code] = row
		}
		row.Billed += b.Amount
		row.Paid += b.PaidAmount

		if b.Status == domain.BillPending || b.Status == domain.BillPartial {
			if nextDue == nil || b.DueDate.Before(nextDue.DueDate) {
				nextDue = b
			}
		}
	}

	for _, r := range refunds {
		if r.Status != domain.RefundProcessed {
			continue
		}
		f.TotalRefunded += r.Amount
		f.RefundCount++
	}

	f.ChargeBreakdown = make([]ChargeTypeBreakdown, 0, len(breakdown))
	for _, row := range breakdown {
		row.Balance = row.Billed - row.Paid
		f.ChargeBreakdown = append(f.ChargeBreakdown, *row)
	}
	sort.Slice(f.ChargeBreakdown, func(i, j int) bool {
		return f.ChargeBreakdown[i].Code < f.ChargeBreakdown[j].Code
	})

	if nextDue != nil {
		f.NextDue = &NextDueBill{
			BillID:  nextDue.ID,
			DueDate: nextDue.DueDate,
			Amount:  nextDue.Balance(),
		}
	}
	return f
}
