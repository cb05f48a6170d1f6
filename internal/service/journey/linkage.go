package journey

import (
	"context"
	"strings"
	"sync"

	"github.com/ignite/rentops/internal/domain"
	"github.com/ignite/rentops/internal/pkg/logger"
)

// PreTenantVisit is a visitor-log entry matched to the tenant by phone
// identity that predates their check-in, evidence of a scouting visit.
type PreTenantVisit struct {
	Visit             domain.Visit `json:"visit"`
	DaysBeforeJoining int          `json:"days_before_joining"`
}

// NormalizePhone canonicalizes a phone number to its 10-digit identity form.
// Non-digits are stripped, then a 12-digit number loses a leading "91"
// country prefix, an 11-digit number loses a leading trunk "0", and the last
// 10 digits are kept. Total and idempotent: garbage input yields a
// best-effort digit string, never an error.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

// linkVisitors splits the visitor log into visits explicitly tagged to the
// tenant and untagged visits that predate check-in but match the tenant's
// phone identity set. Linkage degrades silently: without a check-in date or
// a usable phone, the pre-tenant list is just empty.
func (s *Service) linkVisitors(ctx context.Context, tenant *domain.Tenant) ([]domain.Visit, []PreTenantVisit, error) {
	var (
		wg       sync.WaitGroup
		linked   []domain.Visit
		unlinked []domain.Visit
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if linked, err = s.sources.VisitsByTenant(ctx, tenant.ID); err != nil {
			logger.Warn("visitor linkage fetch failed, degrading to empty",
				"source", tableVisits, "tenant_id", tenant.ID, "error", err)
		}
	}()

	identity := phoneIdentitySet(tenant.Phones())
	if tenant.CheckInDate != nil && !tenant.CheckInDate.IsZero() && len(identity) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			if unlinked, err = s.sources.UnlinkedVisitsBefore(ctx, *tenant.CheckInDate); err != nil {
				logger.Warn("visitor linkage fetch failed, degrading to empty",
					"source", tableVisits, "tenant_id", tenant.ID, "error", err)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if linked == nil {
		linked = []domain.Visit{}
	}

	preTenant := []PreTenantVisit{}
	for _, v := range unlinked {
		if !identity[NormalizePhone(v.VisitorPhone)] {
			continue
		}
		preTenant = append(preTenant, PreTenantVisit{
			Visit:             v,
			DaysBeforeJoining: daysBetween(v.VisitDate, *tenant.CheckInDate),
		})
	}
	return linked, preTenant, nil
}

func phoneIdentitySet(raw []string) map[string]bool {
	set := make(map[string]bool, len(raw))
	for _, p := range raw {
		if n := NormalizePhone(p); n != "" {
			set[n] = true
		}
	}
	return set
}
