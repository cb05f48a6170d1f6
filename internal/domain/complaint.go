package domain

import "time"

// ComplaintStatus enumerates the lifecycle states of a complaint.
type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "open"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
	ComplaintClosed     ComplaintStatus = "closed"
	ComplaintRejected   ComplaintStatus = "rejected"
)

// IsResolved reports whether the complaint reached a settled state.
func (s ComplaintStatus) IsResolved() bool {
	return s == ComplaintResolved || s == ComplaintClosed
}

// Complaint is a maintenance or service issue raised by a tenant.
type Complaint struct {
	ID          string          `json:"id" db:"id"`
	TenantID    string          `json:"tenant_id" db:"tenant_id"`
	Category    string          `json:"category" db:"category"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Priority    string          `json:"priority" db:"priority"`
	Status      ComplaintStatus `json:"status" db:"status"`
	RaisedAt    time.Time       `json:"raised_at" db:"raised_at"`
	ResolvedAt  *time.Time      `json:"resolved_at" db:"resolved_at"`
	Resolution  string          `json:"resolution" db:"resolution"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
