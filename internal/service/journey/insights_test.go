package journey

import (
	"strings"
	"testing"

	"github.com/ignite/rentops/internal/domain"
)

func TestPaymentScore_NewTenantPrior(t *testing.T) {
	cfg := DefaultInsightConfig()
	score, factors := paymentScore(cfg, &Analytics{TotalBills: 0}, &FinancialSummary{})
	if score != 60 {
		t.Errorf("score = %d, want the neutral new-tenant 60", score)
	}
	if len(factors) == 0 {
		t.Error("new-tenant prior should be explained")
	}
}

func TestPaymentScore_MonotonicInOnTimeRate(t *testing.T) {
	cfg := DefaultInsightConfig()
	f := &FinancialSummary{}

	prev := -1
	for onTime := 0; onTime <= 10; onTime++ {
		a := &Analytics{
			TotalBills:     10,
			PaidBills:      10,
			OnTimePayments: onTime,
			LatePayments:   10 - onTime,
		}
		score, _ := paymentScore(cfg, a, f)
		if score < 0 || score > 100 {
			t.Fatalf("score %d out of [0,100]", score)
		}
		if score < prev {
			t.Fatalf("score decreased from %d to %d as on-time rate rose", prev, score)
		}
		prev = score
	}
}

func TestPaymentScore_Clamped(t *testing.T) {
	cfg := DefaultInsightConfig()

	// Heavy overdue and slow payment push the raw score below zero.
	worst, _ := paymentScore(cfg, &Analytics{
		TotalBills:     5,
		PaidBills:      5,
		LatePayments:   5,
		OnTimePayments: 0,
		AvgDaysToPay:   90,
	}, &FinancialSummary{TotalOverdue: 100000})
	if worst < 0 || worst > 100 {
		t.Errorf("worst-case score %d out of [0,100]", worst)
	}

	best, _ := paymentScore(cfg, &Analytics{
		TotalBills:     10,
		PaidBills:      10,
		OnTimePayments: 10,
	}, &FinancialSummary{})
	if best < 0 || best > 100 {
		t.Errorf("best-case score %d out of [0,100]", best)
	}
}

func TestInsights_GoodPayerScenario(t *testing.T) {
	tenant := activeTenant()
	a := &Analytics{
		TotalBills:     3,
		PaidBills:      3,
		OnTimePayments: 3,
		StayCount:      1,
		TotalStayDays:  120,
	}
	f := &FinancialSummary{}

	out := computeInsights(DefaultInsightConfig(), tenant, a, f)

	if out.PaymentScore < 70 {
		t.Errorf("PaymentScore = %d, want >= 70 for a clean payer", out.PaymentScore)
	}
	if out.PaymentLevel != "excellent" && out.PaymentLevel != "good" {
		t.Errorf("PaymentLevel = %q", out.PaymentLevel)
	}
	if out.ChurnRiskScore >= 30 {
		t.Errorf("ChurnRiskScore = %d, want < 30", out.ChurnRiskScore)
	}
	if out.ChurnRiskLevel != "low" {
		t.Errorf("ChurnRiskLevel = %q, want low", out.ChurnRiskLevel)
	}
	if out.SatisfactionLevel == "low" {
		t.Errorf("SatisfactionLevel = %q, want high or medium", out.SatisfactionLevel)
	}
	if out.Confidence != "high" {
		t.Errorf("Confidence = %q, want high with 3 paid bills", out.Confidence)
	}
	if len(out.Alerts) != 0 {
		t.Errorf("unexpected alerts: %+v", out.Alerts)
	}
}

func TestInsights_NoticePeriodDominatesChurn(t *testing.T) {
	tenant := activeTenant()
	tenant.Status = domain.TenantNoticePeriod

	out := computeInsights(DefaultInsightConfig(), tenant, &Analytics{TotalBills: 1, PaidBills: 1, OnTimePayments: 1}, &FinancialSummary{})

	if out.ChurnRiskScore < 80 {
		t.Errorf("ChurnRiskScore = %d, want >= 80 during notice period", out.ChurnRiskScore)
	}
	found := false
	for _, factor := range out.ChurnRiskFactors {
		if strings.Contains(factor, "notice period") {
			found = true
		}
	}
	if !found {
		t.Errorf("ChurnRiskFactors = %v, want a notice-period explanation", out.ChurnRiskFactors)
	}
	// Still in residence, so a high churn score triggers retention advice.
	hasRetention := false
	for _, r := range out.Recommendations {
		if r.Type == "retention" && r.Priority == "high" {
			hasRetention = true
		}
	}
	if !hasRetention {
		t.Errorf("Recommendations = %+v, want a high-priority retention entry", out.Recommendations)
	}
}

func TestSatisfactionScore_ComplaintBranches(t *testing.T) {
	cfg := DefaultInsightConfig()

	none, _ := satisfactionScore(cfg, &Analytics{})
	allResolved, _ := satisfactionScore(cfg, &Analytics{TotalComplaints: 2, ResolvedComplaints: 2})
	someOpen, _ := satisfactionScore(cfg, &Analytics{TotalComplaints: 2, ResolvedComplaints: 1})

	if !(none > allResolved && allResolved > someOpen) {
		t.Errorf("expected none(%d) > allResolved(%d) > someOpen(%d)", none, allResolved, someOpen)
	}
	if satisfactionLevel(someOpen) == "" {
		t.Error("level must always map")
	}
}

func TestBuildAlerts(t *testing.T) {
	cfg := DefaultInsightConfig()
	tenant := activeTenant()
	tenant.DepositPaid = 5000 // below monthly rent

	alerts := buildAlerts(cfg, tenant, &Analytics{LatePayments: 3}, &FinancialSummary{TotalOverdue: 6000})

	types := map[string]Alert{}
	for _, a := range alerts {
		types[a.Type] = a
	}

	if a, ok := types["consecutive_late_payments"]; !ok || a.Severity != "high" {
		t.Errorf("late-payment alert = %+v", a)
	}
	if a, ok := types["overdue_balance"]; !ok || a.Severity != "high" || a.ActionURL == "" {
		t.Errorf("overdue alert = %+v", a)
	}
	if a, ok := types["low_deposit"]; !ok || a.Severity != "low" {
		t.Errorf("deposit alert = %+v", a)
	}

	// A small overdue amount only warrants medium severity.
	alerts = buildAlerts(cfg, activeTenant(), &Analytics{}, &FinancialSummary{TotalOverdue: 800})
	if len(alerts) != 1 || alerts[0].Severity != "medium" {
		t.Errorf("small-overdue alerts = %+v", alerts)
	}
}

func TestBuildRecommendations_Verification(t *testing.T) {
	tenant := activeTenant()
	tenant.PoliceVerification = domain.VerificationPending
	tenant.AgreementSigned = false

	recs := buildRecommendations(DefaultInsightConfig(), tenant, &FinancialSummary{}, 10)

	verification := 0
	for _, r := range recs {
		if r.Type == "verification" {
			verification++
			if r.Priority != "medium" {
				t.Errorf("verification priority = %q, want medium", r.Priority)
			}
		}
	}
	if verification != 2 {
		t.Errorf("verification recommendations = %d, want 2", verification)
	}
}

func TestConfidenceLabels(t *testing.T) {
	cfg := DefaultInsightConfig()
	tenant := activeTenant()
	f := &FinancialSummary{}

	cases := []struct {
		paid int
		want string
	}{
		{0, "low"},
		{1, "medium"},
		{2, "medium"},
		{3, "high"},
		{10, "high"},
	}
	for _, tc := range cases {
		out := computeInsights(cfg, tenant, &Analytics{TotalBills: tc.paid, PaidBills: tc.paid}, f)
		if out.Confidence != tc.want {
			t.Errorf("paid=%d confidence = %q, want %q", tc.paid, out.Confidence, tc.want)
		}
	}
}
