package journey

import (
	"context"
	"time"

	"github.com/ignite/rentops/internal/domain"
)

// TenantRepository resolves tenant identity records.
// Implementations must be safe for concurrent use.
type TenantRepository interface {
	// Get returns a single tenant scoped to a workspace.
	// Returns ErrTenantNotFound if the id doesn't resolve.
	Get(ctx context.Context, workspaceID, tenantID string) (*domain.Tenant, error)
}

// SourceRepository is the read contract for the ten record sources the
// engine aggregates. Each method returns every record scoped to one tenant
// (or, for meter readings, one room); result order is irrelevant since the
// aggregator re-sorts the merged timeline.
//
// Implementations must be safe for concurrent use: the engine issues these
// reads from concurrent goroutines.
type SourceRepository interface {
	StaysByTenant(ctx context.Context, tenantID string) ([]domain.Stay, error)
	BillsByTenant(ctx context.Context, tenantID string) ([]domain.Bill, error)
	PaymentsByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error)
	ChargesByTenant(ctx context.Context, tenantID string) ([]domain.Charge, error)
	ComplaintsByTenant(ctx context.Context, tenantID string) ([]domain.Complaint, error)
	TransfersByTenant(ctx context.Context, tenantID string) ([]domain.RoomTransfer, error)
	ExitClearancesByTenant(ctx context.Context, tenantID string) ([]domain.ExitClearance, error)
	RefundsByTenant(ctx context.Context, tenantID string) ([]domain.Refund, error)

	// VisitsByTenant returns visits explicitly tagged to the tenant.
	VisitsByTenant(ctx context.Context, tenantID string) ([]domain.Visit, error)

	// UnlinkedVisitsBefore returns visits with no tenant tag dated before the
	// given instant. The linkage matcher filters them by phone identity.
	UnlinkedVisitsBefore(ctx context.Context, before time.Time) ([]domain.Visit, error)

	// MeterReadingsByRoom returns meter readings for one room.
	MeterReadingsByRoom(ctx context.Context, roomID string) ([]domain.MeterReading, error)
}
