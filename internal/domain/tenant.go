package domain

import (
	"time"
)

// TenantStatus enumerates the lifecycle states of a tenant.
type TenantStatus string

const (
	TenantActive       TenantStatus = "active"
	TenantNoticePeriod TenantStatus = "notice_period"
	TenantExited       TenantStatus = "exited"
	TenantSuspended    TenantStatus = "suspended"
)

// VerificationStatus enumerates police-verification workflow states.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Tenant is the identity record for a person renting a room. Phone and
// AlternatePhone together form the identity set used for visitor linkage.
type Tenant struct {
	ID             string       `json:"id" db:"id"`
	WorkspaceID    string       `json:"workspace_id" db:"workspace_id"`
	Name           string       `json:"name" db:"name"`
	Status         TenantStatus `json:"status" db:"status"`
	Phone          string       `json:"phone" db:"phone"`
	AlternatePhone string       `json:"alternate_phone" db:"alternate_phone"`
	Email          string       `json:"email" db:"email"`

	PropertyID   *string `json:"property_id" db:"property_id"`
	PropertyName string  `json:"property_name" db:"property_name"`
	RoomID       *string `json:"room_id" db:"room_id"`
	RoomNumber   string  `json:"room_number" db:"room_number"`

	CheckInDate    *time.Time `json:"check_in_date" db:"check_in_date"`
	NoticeDate     *time.Time `json:"notice_date" db:"notice_date"`
	ExpectedExitAt *time.Time `json:"expected_exit_at" db:"expected_exit_at"`

	// Financial terms
	MonthlyRent   float64 `json:"monthly_rent" db:"monthly_rent"`
	DepositAmount float64 `json:"deposit_amount" db:"deposit_amount"`
	DepositPaid   float64 `json:"deposit_paid" db:"deposit_paid"`
	AdvanceAmount float64 `json:"advance_amount" db:"advance_amount"`

	PoliceVerification VerificationStatus `json:"police_verification" db:"police_verification"`
	AgreementSigned    bool               `json:"agreement_signed" db:"agreement_signed"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the tenant currently occupies a room.
// Notice-period tenants are still in residence.
func (t *Tenant) IsActive() bool {
	return t.Status == TenantActive || t.Status == TenantNoticePeriod
}

// Phones returns the tenant's raw phone numbers, skipping empties.
func (t *Tenant) Phones() []string {
	var out []string
	if t.Phone != "" {
		out = append(out, t.Phone)
	}
	if t.AlternatePhone != "" {
		out = append(out, t.AlternatePhone)
	}
	return out
}
