package journey

import (
	"fmt"
	"math"

	"github.com/ignite/rentops/internal/domain"
)

// InsightConfig carries the scoring weights for the heuristic insight
// engine. Qualitative level cutoffs are fixed; only the additive weights
// and rule thresholds are tunable so operators can rebalance triage
// without shifting the meaning of "good" or "high risk".
type InsightConfig struct {
	// Payment reliability
	PaymentBaseline       float64 `yaml:"payment_baseline"`
	NewTenantScore        float64 `yaml:"new_tenant_score"`
	OnTimeWeight          float64 `yaml:"on_time_weight"`
	GraceDays             int     `yaml:"grace_days"`
	LatePenaltyMax        float64 `yaml:"late_penalty_max"`
	PerfectPayerBonus     float64 `yaml:"perfect_payer_bonus"`
	OverduePenaltyDivisor float64 `yaml:"overdue_penalty_divisor"`
	OverduePenaltyMax     float64 `yaml:"overdue_penalty_max"`

	// Churn risk
	ChurnBaseline             float64 `yaml:"churn_baseline"`
	NoticePeriodWeight        float64 `yaml:"notice_period_weight"`
	UnresolvedComplaintWeight float64 `yaml:"unresolved_complaint_weight"`
	TransferWeight            float64 `yaml:"transfer_weight"`
	LowPaymentWeight          float64 `yaml:"low_payment_weight"`
	ShortStayWeight           float64 `yaml:"short_stay_weight"`
	ShortStayDays             int     `yaml:"short_stay_days"`

	// Satisfaction
	SatisfactionBaseline  float64 `yaml:"satisfaction_baseline"`
	NoComplaintsBonus     float64 `yaml:"no_complaints_bonus"`
	AllResolvedBonus      float64 `yaml:"all_resolved_bonus"`
	OpenComplaintsPenalty float64 `yaml:"open_complaints_penalty"`
	LongStayBonus         float64 `yaml:"long_stay_bonus"`
	LongStayDays          int     `yaml:"long_stay_days"`
	RejoinBonus           float64 `yaml:"rejoin_bonus"`

	// Alerts
	LatePaymentAlertCount int     `yaml:"late_payment_alert_count"`
	HighOverdueAmount     float64 `yaml:"high_overdue_amount"`
}

// DefaultInsightConfig returns the stock weights.
func DefaultInsightConfig() InsightConfig {
	return InsightConfig{
		PaymentBaseline:       50,
		NewTenantScore:        60,
		OnTimeWeight:          30,
		GraceDays:             15,
		LatePenaltyMax:        15,
		PerfectPayerBonus:     10,
		OverduePenaltyDivisor: 1000,
		OverduePenaltyMax:     20,

		ChurnBaseline:             20,
		NoticePeriodWeight:        60,
		UnresolvedComplaintWeight: 15,
		TransferWeight:            10,
		LowPaymentWeight:          10,
		ShortStayWeight:           15,
		ShortStayDays:             90,

		SatisfactionBaseline:  70,
		NoComplaintsBonus:     15,
		AllResolvedBonus:      10,
		OpenComplaintsPenalty: 10,
		LongStayBonus:         10,
		LongStayDays:          365,
		RejoinBonus:           10,

		LatePaymentAlertCount: 3,
		HighOverdueAmount:     5000,
	}
}

// Alert is an active rule-triggered warning, independent of the scores.
type Alert struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	ActionURL string `json:"action_url,omitempty"`
}

// Recommendation is a prioritized suggested action for the operator.
type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// PredictiveInsights bundles the three heuristic scores with their
// explanations, active alerts, and prioritized recommendations. The scores
// are deterministic triage heuristics, not statistical predictions.
type PredictiveInsights struct {
	PaymentScore   int      `json:"payment_score"`
	PaymentLevel   string   `json:"payment_level"`
	PaymentFactors []string `json:"payment_factors"`

	ChurnRiskScore   int      `json:"churn_risk_score"`
	ChurnRiskLevel   string   `json:"churn_risk_level"`
	ChurnRiskFactors []string `json:"churn_risk_factors"`

	SatisfactionScore   int      `json:"satisfaction_score"`
	SatisfactionLevel   string   `json:"satisfaction_level"`
	SatisfactionFactors []string `json:"satisfaction_factors"`

	Alerts          []Alert          `json:"alerts"`
	Recommendations []Recommendation `json:"recommendations"`
	Confidence      string           `json:"confidence"`
}

// computeInsights is a pure function of its inputs; it performs no I/O and
// runs strictly after the aggregation group it consumes.
func computeInsights(cfg InsightConfig, tenant *domain.Tenant, a *Analytics, f *FinancialSummary) *PredictiveInsights {
	out := &PredictiveInsights{
		Alerts:          []Alert{},
		Recommendations: []Recommendation{},
	}

	out.PaymentScore, out.PaymentFactors = paymentScore(cfg, a, f)
	out.PaymentLevel = paymentLevel(out.PaymentScore)

	out.ChurnRiskScore, out.ChurnRiskFactors = churnScore(cfg, tenant, a, out.PaymentScore)
	out.ChurnRiskLevel = churnLevel(out.ChurnRiskScore)

	out.SatisfactionScore, out.SatisfactionFactors = satisfactionScore(cfg, a)
	out.SatisfactionLevel = satisfactionLevel(out.SatisfactionScore)

	out.Alerts = buildAlerts(cfg, tenant, a, f)
	out.Recommendations = buildRecommendations(cfg, tenant, f, out.ChurnRiskScore)

	switch {
	case a.PaidBills >= 3:
		out.Confidence = "high"
	case a.PaidBills >= 1:
		out.Confidence = "medium"
	default:
		out.Confidence = "low"
	}
	return out
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

func paymentScore(cfg InsightConfig, a *Analytics, f *FinancialSummary) (int, []string) {
	var factors []string

	if a.TotalBills == 0 {
		factors = append(factors, "no billing history yet, neutral new-tenant score")
		return clampScore(cfg.NewTenantScore), factors
	}

	score := cfg.PaymentBaseline

	classified := a.OnTimePayments + a.LatePayments
	if classified > 0 {
		rate := float64(a.OnTimePayments) / float64(classified)
		score += math.Round(cfg.OnTimeWeight * rate)
		factors = append(factors, fmt.Sprintf("%d of %d classified payments on time", a.OnTimePayments, classified))
	}

	if a.AvgDaysToPay > cfg.GraceDays {
		penalty := math.Min(float64(a.AvgDaysToPay-cfg.GraceDays), cfg.LatePenaltyMax)
		score -= penalty
		factors = append(factors, fmt.Sprintf("average %d days to pay exceeds %d-day grace window", a.AvgDaysToPay, cfg.GraceDays))
	}

	if a.PaidBills >= 3 && a.LatePayments == 0 {
		score += cfg.PerfectPayerBonus
		factors = append(factors, "consistent on-time payment record")
	}

	if f.TotalOverdue > 0 {
		penalty := math.Min(f.TotalOverdue/cfg.OverduePenaltyDivisor, cfg.OverduePenaltyMax)
		score -= penalty
		factors = append(factors, fmt.Sprintf("₹%.2f currently overdue", f.TotalOverdue))
	}

	return clampScore(score), factors
}

func paymentLevel(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 50:
		return "fair"
	case score >= 30:
		return "poor"
	default:
		return "critical"
	}
}

func churnScore(cfg InsightConfig, tenant *domain.Tenant, a *Analytics, paymentScore int) (int, []string) {
	var factors []string
	score := cfg.ChurnBaseline

	if tenant.Status == domain.TenantNoticePeriod {
		score += cfg.NoticePeriodWeight
		factors = append(factors, "tenant is serving notice period")
	}

	if a.TotalComplaints > 2 {
		unresolved := a.TotalComplaints - a.ResolvedComplaints
		if float64(unresolved)/float64(a.TotalComplaints) > 0.5 {
			score += cfg.UnresolvedComplaintWeight
			factors = append(factors, fmt.Sprintf("%d of %d complaints unresolved", unresolved, a.TotalComplaints))
		}
	}

	if a.TransferCount >= 2 {
		score += cfg.TransferWeight
		factors = append(factors, fmt.Sprintf("%d room transfers recorded", a.TransferCount))
	}

	if paymentScore < 40 {
		score += cfg.LowPaymentWeight
		factors = append(factors, "poor payment reliability")
	}

	if a.StayCount > 1 && a.AverageStayDays < cfg.ShortStayDays {
		score += cfg.ShortStayWeight
		factors = append(factors, fmt.Sprintf("short average stay of %d days across %d stays", a.AverageStayDays, a.StayCount))
	}

	return clampScore(score), factors
}

func churnLevel(score int) string {
	switch {
	case score < 30:
		return "low"
	case score < 50:
		return "medium"
	case score < 75:
		return "high"
	default:
		return "critical"
	}
}

func satisfactionScore(cfg InsightConfig, a *Analytics) (int, []string) {
	var factors []string
	score := cfg.SatisfactionBaseline

	switch {
	case a.TotalComplaints == 0:
		score += cfg.NoComplaintsBonus
		factors = append(factors, "no complaints filed")
	case a.ResolvedComplaints == a.TotalComplaints:
		score += cfg.AllResolvedBonus
		factors = append(factors, "all complaints resolved")
	default:
		score -= cfg.OpenComplaintsPenalty
		factors = append(factors, fmt.Sprintf("%d complaints still open", a.TotalComplaints-a.ResolvedComplaints))
	}

	if a.TotalStayDays > cfg.LongStayDays {
		score += cfg.LongStayBonus
		factors = append(factors, fmt.Sprintf("long tenure of %d total stay days", a.TotalStayDays))
	}

	if a.StayCount > 1 {
		score += cfg.RejoinBonus
		factors = append(factors, "tenant has rejoined after a previous stay")
	}

	return clampScore(score), factors
}

func satisfactionLevel(score int) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}

func buildAlerts(cfg InsightConfig, tenant *domain.Tenant, a *Analytics, f *FinancialSummary) []Alert {
	alerts := []Alert{}

	if a.LatePayments >= cfg.LatePaymentAlertCount {
		alerts = append(alerts, Alert{
			Type:     "consecutive_late_payments",
			Severity: "high",
			Message:  fmt.Sprintf("%d bills were paid late", a.LatePayments),
		})
	}

	if f.TotalOverdue > 0 {
		severity := "medium"
		if f.TotalOverdue > cfg.HighOverdueAmount {
			severity = "high"
		}
		alerts = append(alerts, Alert{
			Type:      "overdue_balance",
			Severity:  severity,
			Message:   fmt.Sprintf("₹%.2f overdue across unpaid bills", f.TotalOverdue),
			ActionURL: fmt.Sprintf("/tenants/%s/payments/new", tenant.ID),
		})
	}

	if tenant.DepositPaid < tenant.MonthlyRent {
		alerts = append(alerts, Alert{
			Type:     "low_deposit",
			Severity: "low",
			Message:  fmt.Sprintf("deposit paid ₹%.2f is below monthly rent ₹%.2f", tenant.DepositPaid, tenant.MonthlyRent),
		})
	}

	return alerts
}

func buildRecommendations(cfg InsightConfig, tenant *domain.Tenant, f *FinancialSummary, churn int) []Recommendation {
	recs := []Recommendation{}

	if f.TotalOverdue > 0 {
		priority := "medium"
		if f.TotalOverdue > cfg.HighOverdueAmount {
			priority = "high"
		}
		recs = append(recs, Recommendation{
			Type:     "collection",
			Priority: priority,
			Message:  fmt.Sprintf("Follow up on ₹%.2f overdue balance", f.TotalOverdue),
		})
	}

	if churn > 60 && tenant.IsActive() {
		recs = append(recs, Recommendation{
			Type:     "retention",
			Priority: "high",
			Message:  "High churn risk for an active tenant, consider a retention conversation",
		})
	}

	if tenant.PoliceVerification == domain.VerificationPending {
		recs = append(recs, Recommendation{
			Type:     "verification",
			Priority: "medium",
			Message:  "Police verification is still pending",
		})
	}

	if !tenant.AgreementSigned {
		recs = append(recs, Recommendation{
			Type:     "verification",
			Priority: "medium",
			Message:  "Rental agreement has not been signed",
		})
	}

	return recs
}
