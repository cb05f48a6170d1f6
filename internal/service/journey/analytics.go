package journey

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ignite/rentops/internal/domain"
	"github.com/ignite/rentops/internal/pkg/logger"
)

// Analytics holds longitudinal counters over a tenant's history. Counts are
// raw, never pre-divided: callers derive rates so stored values can't drift.
type Analytics struct {
	TotalStayDays   int `json:"total_stay_days"`
	AverageStayDays int `json:"average_stay_days"`
	StayCount       int `json:"stay_count"`

	TotalRevenue float64 `json:"total_revenue"`
	TotalBills   int     `json:"total_bills"`
	PaidBills    int     `json:"paid_bills"`
	PaymentCount int     `json:"payment_count"`

	OnTimePayments int `json:"on_time_payments"`
	LatePayments   int `json:"late_payments"`
	AvgDaysToPay   int `json:"avg_days_to_pay"`

	TotalComplaints    int `json:"total_complaints"`
	ResolvedComplaints int `json:"resolved_complaints"`

	TransferCount int `json:"transfer_count"`
	VisitorCount  int `json:"visitor_count"`

	PoliceVerification domain.VerificationStatus `json:"police_verification"`
	AgreementSigned    bool                      `json:"agreement_signed"`
}

// daysBetween returns the whole-day difference between two instants,
// truncating the absolute millisecond gap. No time-of-day or timezone
// sensitivity beyond that.
func daysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

// computeAnalytics builds the longitudinal counters from the raw sources.
// Each source read degrades to empty on failure, same as the timeline.
func (s *Service) computeAnalytics(ctx context.Context, tenant *domain.Tenant, now time.Time) (*Analytics, error) {
	var (
		wg         sync.WaitGroup
		stays      []domain.Stay
		bills      []domain.Bill
		payments   []domain.Payment
		complaints []domain.Complaint
		transfers  []domain.RoomTransfer
		visits     []domain.Visit
	)

	fetch := func(name string, load func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := load(); err != nil {
				logger.Warn("analytics source fetch failed, degrading to empty",
					"source", name, "tenant_id", tenant.ID, "error", err)
			}
		}()
	}

	fetch(tableStays, func() (err error) { stays, err = s.sources.StaysByTenant(ctx, tenant.ID); return })
	fetch(tableBills, func() (err error) { bills, err = s.sources.BillsByTenant(ctx, tenant.ID); return })
	fetch(tablePayments, func() (err error) { payments, err = s.sources.PaymentsByTenant(ctx, tenant.ID); return })
	fetch(tableComplaints, func() (err error) { complaints, err = s.sources.ComplaintsByTenant(ctx, tenant.ID); return })
	fetch(tableTransfers, func() (err error) { transfers, err = s.sources.TransfersByTenant(ctx, tenant.ID); return })
	fetch(tableVisits, func() (err error) { visits, err = s.sources.VisitsByTenant(ctx, tenant.ID); return })
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a := &Analytics{
		PoliceVerification: tenant.PoliceVerification,
		AgreementSigned:    tenant.AgreementSigned,
		TransferCount:      len(transfers),
		VisitorCount:       len(visits),
		TotalBills:         len(bills),
		PaymentCount:       len(payments),
		TotalComplaints:    len(complaints),
	}

	a.StayCount, a.TotalStayDays, a.AverageStayDays = stayDurations(stays, tenant.CheckInDate, now)

	for _, p := range payments {
		a.TotalRevenue += p.Amount
	}

	a.PaidBills, a.OnTimePayments, a.LatePayments, a.AvgDaysToPay = classifyPayments(bills, payments)

	for _, c := range complaints {
		if c.Status.IsResolved() {
			a.ResolvedComplaints++
		}
	}

	return a, nil
}

// stayDurations measures each stay from its join date to its exit date,
// defaulting the still-active stay's exit to now. A tenant with no stay
// records but a check-in date counts as one implicit stay.
func stayDurations(stays []domain.Stay, checkIn *time.Time, now time.Time) (count, totalDays, avgDays int) {
	if len(stays) == 0 {
		if checkIn == nil || checkIn.IsZero() {
			return 0, 0, 0
		}
		d := daysBetween(*checkIn, now)
		return 1, d, d
	}

	for _, st := range stays {
		end := now
		if st.ExitDate != nil && !st.ExitDate.IsZero() {
			end = *st.ExitDate
		}
		totalDays += daysBetween(st.JoinDate, end)
	}
	count = len(stays)
	avgDays = int(math.Round(float64(totalDays) / float64(count)))
	return count, totalDays, avgDays
}

// classifyPayments applies the on-time heuristic: for each paid bill, the
// earliest payment recorded on or after the bill's creation date decides
// the classification against the due date. Bills with no matching payment
// are excluded from the ratio rather than counted late.
//
// The match can attribute a payment to the wrong bill when several bills
// are paid in a short window; the workflow tolerates that imprecision.
func classifyPayments(bills []domain.Bill, payments []domain.Payment) (paid, onTime, late, avgDaysToPay int) {
	var daySamples []int

	for _, b := range bills {
		if b.Status != domain.BillPaid {
			continue
		}
		paid++

		match := earliestPaymentOnOrAfter(payments, b.CreatedAt)
		if match == nil {
			continue
		}

		if !match.PaymentDate.After(b.DueDate) {
			onTime++
		} else {
			late++
		}
		daySamples = append(daySamples, daysBetween(b.CreatedAt, match.PaymentDate))
	}

	if len(daySamples) > 0 {
		sum := 0
		for _, d := range daySamples {
			sum += d
		}
		avgDaysToPay = int(math.Round(float64(sum) / float64(len(daySamples))))
	}
	return paid, onTime, late, avgDaysToPay
}

func earliestPaymentOnOrAfter(payments []domain.Payment, from time.Time) *domain.Payment {
	var best *domain.Payment
	for i := range payments {
		p := &payments[i]
		if p.PaymentDate.Before(from) {
			continue
		}
		if best == nil || p.PaymentDate.Before(best.PaymentDate) {
			best = p
		}
	}
	return best
}
