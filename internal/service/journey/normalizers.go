package journey

import (
	"fmt"
	"time"

	"github.com/ignite/rentops/internal/domain"
)

// Source table names. Event ids are derived from these, so they are part of
// the engine's stable output contract.
const (
	tableStays          = "tenant_stays"
	tableBills          = "bills"
	tablePayments       = "payments"
	tableCharges        = "charges"
	tableComplaints     = "complaints"
	tableTransfers      = "room_transfers"
	tableExitClearances = "exit_clearances"
	tableRefunds        = "refunds"
	tableVisits         = "visits"
	tableMeterReadings  = "meter_readings"
)

// eventID builds the deterministic event id: source table + record id, plus
// an optional phase suffix for records that yield more than one event.
func eventID(table, recordID string, phase string) string {
	if phase == "" {
		return table + "_" + recordID
	}
	return table + "_" + recordID + "_" + phase
}

// eventTime picks the first non-zero timestamp. Every event carries a valid
// instant; records without a natural one fall back to their creation time.
func eventTime(candidates ...time.Time) time.Time {
	for _, t := range candidates {
		if !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func amount(v float64) *float64 { return &v }

// colorOr looks up a status in a color table, falling back to a default for
// unrecognized values. Lookup tables never reject a status.
func colorOr[K comparable](table map[K]StatusColor, status K, def StatusColor) StatusColor {
	if c, ok := table[status]; ok {
		return c
	}
	return def
}

func labelOr(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// --- stays ---

var stayStatusColors = map[domain.StayStatus]StatusColor{
	domain.StayActive:     ColorSuccess,
	domain.StayCompleted:  ColorMuted,
	domain.StayTerminated: ColorWarning,
}

// normalizeStay yields a check-in event and, for ended stays, a separate
// checkout event. A stay with no exit date never produces a checkout.
func normalizeStay(s domain.Stay) []Event {
	room := labelOr(s.RoomNumber, "unassigned room")
	related := map[string]any{
		"stay_id":  s.ID,
		"room_id":  s.RoomID,
		"property": s.PropertyID,
	}

	events := []Event{{
		ID:          eventID(tableStays, s.ID, "checkin"),
		Timestamp:   eventTime(s.JoinDate, s.CreatedAt),
		Category:    CategoryOnboarding,
		Type:        "check_in",
		Title:       "Checked in",
		Description: fmt.Sprintf("Moved into %s at %s", room, labelOr(s.PropertyName, "property")),
		SourceTable: tableStays,
		SourceID:    s.ID,
		Status:      string(s.Status),
		StatusColor: colorOr(stayStatusColors, s.Status, ColorInfo),
		RelatedEntities: related,
		Metadata: map[string]any{
			"monthly_rent": s.MonthlyRent,
		},
		Icon: "login",
	}}

	if s.ExitDate != nil && s.Status.IsTerminal() {
		events = append(events, Event{
			ID:          eventID(tableStays, s.ID, "checkout"),
			Timestamp:   eventTime(*s.ExitDate, s.CreatedAt),
			Category:    CategoryExit,
			Type:        "check_out",
			Title:       "Checked out",
			Description: fmt.Sprintf("Vacated %s", room),
			SourceTable: tableStays,
			SourceID:    s.ID,
			Status:      string(s.Status),
			StatusColor: colorOr(stayStatusColors, s.Status, ColorMuted),
			RelatedEntities: related,
			Icon:            "logout",
		})
	}
	return events
}

// --- bills ---

var billStatusColors = map[domain.BillStatus]StatusColor{
	domain.BillPaid:      ColorSuccess,
	domain.BillPartial:   ColorWarning,
	domain.BillPending:   ColorInfo,
	domain.BillOverdue:   ColorError,
	domain.BillCancelled: ColorMuted,
	domain.BillWaived:    ColorMuted,
}

func normalizeBill(b domain.Bill) []Event {
	name := labelOr(b.ChargeTypeName, "Charges")
	desc := fmt.Sprintf("%s bill of ₹%.2f due %s", name, b.Amount, b.DueDate.Format("02 Jan 2006"))
	if b.DueDate.IsZero() {
		desc = fmt.Sprintf("%s bill of ₹%.2f", name, b.Amount)
	}
	return []Event{{
		ID:          eventID(tableBills, b.ID, ""),
		Timestamp:   eventTime(b.CreatedAt),
		Category:    CategoryFinancial,
		Type:        "bill_generated",
		Title:       fmt.Sprintf("%s bill generated", name),
		Description: desc,
		SourceTable: tableBills,
		SourceID:    b.ID,
		Amount:      amount(b.Amount),
		AmountType:  AmountDebit,
		Status:      string(b.Status),
		StatusColor: colorOr(billStatusColors, b.Status, ColorInfo),
		RelatedEntities: map[string]any{
			"bill_id":     b.ID,
			"bill_number": b.BillNumber,
		},
		Metadata: map[string]any{
			"charge_type": b.ChargeTypeCode,
			"due_date":    b.DueDate,
			"paid_amount": b.PaidAmount,
		},
		Icon:      "receipt",
		ActionURL: "/bills/" + b.ID,
	}}
}

// --- payments ---

func normalizePayment(p domain.Payment) []Event {
	related := map[string]any{"payment_id": p.ID}
	if p.BillID != nil {
		related["bill_id"] = *p.BillID
	}
	return []Event{{
		ID:          eventID(tablePayments, p.ID, ""),
		Timestamp:   eventTime(p.PaymentDate, p.CreatedAt),
		Category:    CategoryFinancial,
		Type:        "payment_received",
		Title:       "Payment received",
		Description: fmt.Sprintf("₹%.2f received via %s", p.Amount, labelOr(string(p.Method), "unknown method")),
		SourceTable: tablePayments,
		SourceID:    p.ID,
		Amount:      amount(p.Amount),
		AmountType:  AmountCredit,
		Status:      "received",
		StatusColor: ColorSuccess,
		RelatedEntities: related,
		Metadata: map[string]any{
			"method":    string(p.Method),
			"reference": p.Reference,
		},
		Icon: "payments",
	}}
}

// --- charges ---

func normalizeCharge(c domain.Charge) []Event {
	typ := "charge_applied"
	title := fmt.Sprintf("%s applied", labelOr(c.ChargeType, "Charge"))
	if c.ChargeType == "late_fee" {
		typ = "late_fee_applied"
		title = "Late fee applied"
	}
	return []Event{{
		ID:          eventID(tableCharges, c.ID, ""),
		Timestamp:   eventTime(c.AppliedAt, c.CreatedAt),
		Category:    CategoryFinancial,
		Type:        typ,
		Title:       title,
		Description: fmt.Sprintf("₹%.2f - %s", c.Amount, labelOr(c.Description, "one-off charge")),
		SourceTable: tableCharges,
		SourceID:    c.ID,
		Amount:      amount(c.Amount),
		AmountType:  AmountDebit,
		Status:      "applied",
		StatusColor: ColorWarning,
		Metadata: map[string]any{
			"charge_type": c.ChargeType,
		},
		Icon: "request_quote",
	}}
}

// --- complaints ---

var complaintStatusColors = map[domain.ComplaintStatus]StatusColor{
	domain.ComplaintOpen:       ColorError,
	domain.ComplaintInProgress: ColorWarning,
	domain.ComplaintResolved:   ColorSuccess,
	domain.ComplaintClosed:     ColorMuted,
	domain.ComplaintRejected:   ColorMuted,
}

// normalizeComplaint yields a raised event and, once settled, a separate
// resolved event.
func normalizeComplaint(c domain.Complaint) []Event {
	title := labelOr(c.Title, "Complaint")
	related := map[string]any{"complaint_id": c.ID}

	events := []Event{{
		ID:          eventID(tableComplaints, c.ID, "raised"),
		Timestamp:   eventTime(c.RaisedAt, c.CreatedAt),
		Category:    CategoryComplaint,
		Type:        "complaint_raised",
		Title:       fmt.Sprintf("Complaint raised: %s", title),
		Description: labelOr(c.Description, "No description provided"),
		SourceTable: tableComplaints,
		SourceID:    c.ID,
		Status:      string(c.Status),
		StatusColor: colorOr(complaintStatusColors, c.Status, ColorInfo),
		RelatedEntities: related,
		Metadata: map[string]any{
			"category": c.Category,
			"priority": c.Priority,
		},
		Icon:      "report_problem",
		ActionURL: "/complaints/" + c.ID,
	}}

	if c.ResolvedAt != nil && c.Status.IsResolved() {
		events = append(events, Event{
			ID:          eventID(tableComplaints, c.ID, "resolved"),
			Timestamp:   eventTime(*c.ResolvedAt, c.CreatedAt),
			Category:    CategoryComplaint,
			Type:        "complaint_resolved",
			Title:       fmt.Sprintf("Complaint resolved: %s", title),
			Description: labelOr(c.Resolution, "Marked resolved"),
			SourceTable: tableComplaints,
			SourceID:    c.ID,
			Status:      string(c.Status),
			StatusColor: ColorSuccess,
			RelatedEntities: related,
			Icon:            "task_alt",
		})
	}
	return events
}

// --- room transfers ---

func normalizeTransfer(t domain.RoomTransfer) []Event {
	meta := map[string]any{"reason": t.Reason}
	if t.RentChange != 0 {
		meta["rent_change"] = t.RentChange
	}
	return []Event{{
		ID:        eventID(tableTransfers, t.ID, ""),
		Timestamp: eventTime(t.TransferDate, t.CreatedAt),
		Category:  CategoryAccommodation,
		Type:      "room_transfer",
		Title:     "Room transfer",
		Description: fmt.Sprintf("Moved from %s to %s",
			labelOr(t.FromRoom, "previous room"), labelOr(t.ToRoom, "new room")),
		SourceTable: tableTransfers,
		SourceID:    t.ID,
		Status:      "completed",
		StatusColor: ColorInfo,
		RelatedEntities: map[string]any{
			"from_room_id": t.FromRoomID,
			"to_room_id":   t.ToRoomID,
		},
		Metadata: meta,
		Icon:     "swap_horiz",
	}}
}

// --- exit clearances ---

var exitStatusColors = map[domain.ExitClearanceStatus]StatusColor{
	domain.ExitInitiated:  ColorWarning,
	domain.ExitInProgress: ColorWarning,
	domain.ExitCompleted:  ColorSuccess,
	domain.ExitCancelled:  ColorMuted,
}

// normalizeExitClearance yields an initiated event and, once the clearance
// is done, a separate completed event.
func normalizeExitClearance(e domain.ExitClearance) []Event {
	related := map[string]any{"exit_clearance_id": e.ID}

	events := []Event{{
		ID:          eventID(tableExitClearances, e.ID, "initiated"),
		Timestamp:   eventTime(e.InitiatedAt, e.CreatedAt),
		Category:    CategoryExit,
		Type:        "exit_initiated",
		Title:       "Exit clearance initiated",
		Description: fmt.Sprintf("Dues ₹%.2f, deductions ₹%.2f", e.DuesAmount, e.DeductionAmount),
		SourceTable: tableExitClearances,
		SourceID:    e.ID,
		Status:      string(e.Status),
		StatusColor: colorOr(exitStatusColors, e.Status, ColorInfo),
		RelatedEntities: related,
		Icon:            "exit_to_app",
	}}

	if e.CompletedAt != nil && e.Status == domain.ExitCompleted {
		events = append(events, Event{
			ID:          eventID(tableExitClearances, e.ID, "completed"),
			Timestamp:   eventTime(*e.CompletedAt, e.CreatedAt),
			Category:    CategoryExit,
			Type:        "exit_completed",
			Title:       "Exit clearance completed",
			Description: fmt.Sprintf("Refund settled at ₹%.2f", e.RefundAmount),
			SourceTable: tableExitClearances,
			SourceID:    e.ID,
			Status:      string(e.Status),
			StatusColor: ColorSuccess,
			RelatedEntities: related,
			Metadata: map[string]any{
				"refund_amount": e.RefundAmount,
			},
			Icon: "done_all",
		})
	}
	return events
}

// --- refunds ---

var refundStatusColors = map[domain.RefundStatus]StatusColor{
	domain.RefundInitiated: ColorWarning,
	domain.RefundProcessed: ColorSuccess,
	domain.RefundFailed:    ColorError,
}

func normalizeRefund(r domain.Refund) []Event {
	return []Event{{
		ID:          eventID(tableRefunds, r.ID, ""),
		Timestamp:   eventTime(derefTime(r.ProcessedAt), r.CreatedAt),
		Category:    CategoryFinancial,
		Type:        "refund_processed",
		Title:       "Refund",
		Description: fmt.Sprintf("₹%.2f - %s", r.Amount, labelOr(r.Reason, "refund")),
		SourceTable: tableRefunds,
		SourceID:    r.ID,
		Amount:      amount(r.Amount),
		AmountType:  AmountCredit,
		Status:      string(r.Status),
		StatusColor: colorOr(refundStatusColors, r.Status, ColorInfo),
		Icon:        "currency_exchange",
	}}
}

// --- visits ---

func normalizeVisit(v domain.Visit) []Event {
	return []Event{{
		ID:          eventID(tableVisits, v.ID, ""),
		Timestamp:   eventTime(v.VisitDate, v.CreatedAt),
		Category:    CategoryVisitor,
		Type:        "visitor_checked_in",
		Title:       fmt.Sprintf("Visitor: %s", labelOr(v.VisitorName, "Visitor")),
		Description: labelOr(v.Purpose, "Visit logged at the gate"),
		SourceTable: tableVisits,
		SourceID:    v.ID,
		Status:      "logged",
		StatusColor: ColorInfo,
		RelatedEntities: map[string]any{
			"property": v.PropertyID,
		},
		Metadata: map[string]any{
			"visitor_phone": v.VisitorPhone,
		},
		Icon: "group",
	}}
}

// --- meter readings ---

func normalizeMeterReading(m domain.MeterReading) []Event {
	return []Event{{
		ID:        eventID(tableMeterReadings, m.ID, ""),
		Timestamp: eventTime(m.ReadingDate, m.CreatedAt),
		Category:  CategoryAccommodation,
		Type:      "meter_reading_recorded",
		Title:     fmt.Sprintf("%s meter reading", labelOr(m.MeterType, "Utility")),
		Description: fmt.Sprintf("Reading %.1f (%.1f units used)",
			m.Reading, m.UnitsUsed),
		SourceTable: tableMeterReadings,
		SourceID:    m.ID,
		Status:      "recorded",
		StatusColor: ColorMuted,
		RelatedEntities: map[string]any{
			"room_id": m.RoomID,
		},
		Metadata: map[string]any{
			"meter_type":   m.MeterType,
			"prev_reading": m.PrevReading,
			"recorded_by":  m.RecordedBy,
		},
		Icon: "speed",
	}}
}
