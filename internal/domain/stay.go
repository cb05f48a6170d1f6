package domain

import "time"

// StayStatus enumerates the lifecycle states of a single stay.
type StayStatus string

const (
	StayActive     StayStatus = "active"
	StayCompleted  StayStatus = "completed"
	StayTerminated StayStatus = "terminated"
)

// IsTerminal returns true if the stay has ended.
func (s StayStatus) IsTerminal() bool {
	return s == StayCompleted || s == StayTerminated
}

// Stay is one continuous occupancy of a room by a tenant. A tenant who
// leaves and rejoins has multiple stay records.
type Stay struct {
	ID           string     `json:"id" db:"id"`
	TenantID     string     `json:"tenant_id" db:"tenant_id"`
	PropertyID   *string    `json:"property_id" db:"property_id"`
	PropertyName string     `json:"property_name" db:"property_name"`
	RoomID       *string    `json:"room_id" db:"room_id"`
	RoomNumber   string     `json:"room_number" db:"room_number"`
	JoinDate     time.Time  `json:"join_date" db:"join_date"`
	ExitDate     *time.Time `json:"exit_date" db:"exit_date"`
	MonthlyRent  float64    `json:"monthly_rent" db:"monthly_rent"`
	Status       StayStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// RoomTransfer records a tenant moving between rooms mid-tenancy.
type RoomTransfer struct {
	ID           string    `json:"id" db:"id"`
	TenantID     string    `json:"tenant_id" db:"tenant_id"`
	FromRoomID   *string   `json:"from_room_id" db:"from_room_id"`
	FromRoom     string    `json:"from_room" db:"from_room"`
	ToRoomID     *string   `json:"to_room_id" db:"to_room_id"`
	ToRoom       string    `json:"to_room" db:"to_room"`
	Reason       string    `json:"reason" db:"reason"`
	TransferDate time.Time `json:"transfer_date" db:"transfer_date"`
	RentChange   float64   `json:"rent_change" db:"rent_change"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ExitClearanceStatus enumerates exit-clearance workflow states.
type ExitClearanceStatus string

const (
	ExitInitiated  ExitClearanceStatus = "initiated"
	ExitInProgress ExitClearanceStatus = "in_progress"
	ExitCompleted  ExitClearanceStatus = "completed"
	ExitCancelled  ExitClearanceStatus = "cancelled"
)

// ExitClearance tracks the checkout workflow: dues settlement, deposit
// reconciliation and handover.
type ExitClearance struct {
	ID              string              `json:"id" db:"id"`
	TenantID        string              `json:"tenant_id" db:"tenant_id"`
	Status          ExitClearanceStatus `json:"status" db:"status"`
	InitiatedAt     time.Time           `json:"initiated_at" db:"initiated_at"`
	CompletedAt     *time.Time          `json:"completed_at" db:"completed_at"`
	DuesAmount      float64             `json:"dues_amount" db:"dues_amount"`
	DeductionAmount float64             `json:"deduction_amount" db:"deduction_amount"`
	RefundAmount    float64             `json:"refund_amount" db:"refund_amount"`
	Notes           string              `json:"notes" db:"notes"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
}
