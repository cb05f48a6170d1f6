package domain

import "time"

// BillStatus enumerates the lifecycle states of a bill.
type BillStatus string

const (
	BillPending   BillStatus = "pending"
	BillPartial   BillStatus = "partial"
	BillPaid      BillStatus = "paid"
	BillOverdue   BillStatus = "overdue"
	BillCancelled BillStatus = "cancelled"
	BillWaived    BillStatus = "waived"
)

// IsPayable reports whether the bill can still receive payments.
// Cancelled and waived bills are terminal non-payable states.
func (s BillStatus) IsPayable() bool {
	return s == BillPending || s == BillPartial || s == BillOverdue
}

// Bill is a single invoice raised against a tenant for a billing period.
type Bill struct {
	ID             string     `json:"id" db:"id"`
	TenantID       string     `json:"tenant_id" db:"tenant_id"`
	BillNumber     string     `json:"bill_number" db:"bill_number"`
	ChargeTypeCode string     `json:"charge_type_code" db:"charge_type_code"`
	ChargeTypeName string     `json:"charge_type_name" db:"charge_type_name"`
	PeriodStart    *time.Time `json:"period_start" db:"period_start"`
	PeriodEnd      *time.Time `json:"period_end" db:"period_end"`
	Amount         float64    `json:"amount" db:"amount"`
	PaidAmount     float64    `json:"paid_amount" db:"paid_amount"`
	DueDate        time.Time  `json:"due_date" db:"due_date"`
	Status         BillStatus `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// Balance returns the unpaid remainder of the bill.
func (b *Bill) Balance() float64 {
	bal := b.Amount - b.PaidAmount
	if bal < 0 {
		return 0
	}
	return bal
}

// PaymentMethod enumerates how a payment was collected.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentUPI          PaymentMethod = "upi"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCard         PaymentMethod = "card"
)

// Payment records money received from a tenant.
type Payment struct {
	ID          string        `json:"id" db:"id"`
	TenantID    string        `json:"tenant_id" db:"tenant_id"`
	BillID      *string       `json:"bill_id" db:"bill_id"`
	Amount      float64       `json:"amount" db:"amount"`
	Method      PaymentMethod `json:"method" db:"method"`
	Reference   string        `json:"reference" db:"reference"`
	PaymentDate time.Time     `json:"payment_date" db:"payment_date"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// Charge is a one-off amount applied outside the regular billing cycle
// (late fee, damage charge, cleaning charge).
type Charge struct {
	ID          string    `json:"id" db:"id"`
	TenantID    string    `json:"tenant_id" db:"tenant_id"`
	ChargeType  string    `json:"charge_type" db:"charge_type"`
	Description string    `json:"description" db:"description"`
	Amount      float64   `json:"amount" db:"amount"`
	AppliedAt   time.Time `json:"applied_at" db:"applied_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RefundStatus enumerates refund processing states.
type RefundStatus string

const (
	RefundInitiated RefundStatus = "initiated"
	RefundProcessed RefundStatus = "processed"
	RefundFailed    RefundStatus = "failed"
)

// Refund records money returned to a tenant, usually a deposit refund
// during exit clearance.
type Refund struct {
	ID          string       `json:"id" db:"id"`
	TenantID    string       `json:"tenant_id" db:"tenant_id"`
	Amount      float64      `json:"amount" db:"amount"`
	Reason      string       `json:"reason" db:"reason"`
	Status      RefundStatus `json:"status" db:"status"`
	ProcessedAt *time.Time   `json:"processed_at" db:"processed_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}
