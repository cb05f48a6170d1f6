package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ignite/rentops/internal/domain"
)

// unlinkedVisitLimit caps the walk-in scan for phone-identity matching.
const unlinkedVisitLimit = 500

// SourceRepo implements journey.SourceRepository against PostgreSQL. One
// read query per source; ordering is best-effort since the journey engine
// re-sorts the merged timeline anyway.
type SourceRepo struct{ db *sql.DB }

// NewSourceRepo creates a Postgres-backed source repository.
func NewSourceRepo(db *sql.DB) *SourceRepo { return &SourceRepo{db: db} }

func (r *SourceRepo) StaysByTenant(ctx context.Context, tenantID string) ([]domain.Stay, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, property_id, COALESCE(property_name,''),
		       room_id, COALESCE(room_number,''),
		       join_date, exit_date, monthly_rent, status, created_at
		FROM tenant_stays
		WHERE tenant_id = $1
		ORDER BY join_date DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list stays: %w", err)
	}
	defer rows.Close()

	var out []domain.Stay
	for rows.Next() {
		var s domain.Stay
		if err := rows.Scan(
			&s.ID, &s.TenantID, &s.PropertyID, &s.PropertyName,
			&s.RoomID, &s.RoomNumber,
			&s.JoinDate, &s.ExitDate, &s.MonthlyRent, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stay: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SourceRepo) BillsByTenant(ctx context.Context, tenantID string) ([]domain.Bill, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, COALESCE(bill_number,''),
		       COALESCE(charge_type_code,''), COALESCE(charge_type_name,''),
		       period_start, period_end, amount, paid_amount, due_date, status, created_at
		FROM bills
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var out []domain.Bill
	for rows.Next() {
		var b domain.Bill
		if err := rows.Scan(
			&b.ID, &b.TenantID, &b.BillNumber,
			&b.ChargeTypeCode, &b.ChargeTypeName,
			&b.PeriodStart, &b.PeriodEnd, &b.Amount, &b.PaidAmount, &b.DueDate, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SourceRepo) PaymentsByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, bill_id, amount, COALESCE(method,''),
		       COALESCE(reference,''), payment_date, created_at
		FROM payments
		WHERE tenant_id = $1
		ORDER BY payment_date DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.BillID, &p.Amount, &p.Method,
			&p.Reference, &p.PaymentDate, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SourceRepo) ChargesByTenant(ctx context.Context, tenantID string) ([]domain.Charge, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, COALESCE(charge_type,''), COALESCE(description,''),
		       amount, applied_at, created_at
		FROM charges
		WHERE tenant_id = $1
		ORDER BY applied_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	defer rows.Close()

	var out []domain.Charge
	for rows.Next() {
		var c domain.Charge
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.ChargeType, &c.Description,
			&c.Amount, &c.AppliedAt, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan charge: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SourceRepo) ComplaintsByTenant(ctx context.Context, tenantID string) ([]domain.Complaint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, COALESCE(category,''), COALESCE(title,''),
		       COALESCE(description,''), COALESCE(priority,''),
		       status, raised_at, resolved_at, COALESCE(resolution,''), created_at
		FROM complaints
		WHERE tenant_id = $1
		ORDER BY raised_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	var out []domain.Complaint
	for rows.Next() {
		var c domain.Complaint
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Category, &c.Title,
			&c.Description, &c.Priority,
			&c.Status, &c.RaisedAt, &c.ResolvedAt, &c.Resolution, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SourceRepo) TransfersByTenant(ctx context.Context, tenantID string) ([]domain.RoomTransfer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, from_room_id, COALESCE(from_room,''),
		       to_room_id, COALESCE(to_room,''), COALESCE(reason,''),
		       transfer_date, rent_change, created_at
		FROM room_transfers
		WHERE tenant_id = $1
		ORDER BY transfer_date DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []domain.RoomTransfer
	for rows.Next() {
		var t domain.RoomTransfer
		if err := rows.Scan(
			&t.ID, &t.TenantID, &t.FromRoomID, &t.FromRoom,
			&t.ToRoomID, &t.ToRoom, &t.Reason,
			&t.TransferDate, &t.RentChange, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SourceRepo) ExitClearancesByTenant(ctx context.Context, tenantID string) ([]domain.ExitClearance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, status, initiated_at, completed_at,
		       dues_amount, deduction_amount, refund_amount, COALESCE(notes,''), created_at
		FROM exit_clearances
		WHERE tenant_id = $1
		ORDER BY initiated_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list exit clearances: %w", err)
	}
	defer rows.Close()

	var out []domain.ExitClearance
	for rows.Next() {
		var e domain.ExitClearance
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.Status, &e.InitiatedAt, &e.CompletedAt,
			&e.DuesAmount, &e.DeductionAmount, &e.RefundAmount, &e.Notes, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan exit clearance: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SourceRepo) RefundsByTenant(ctx context.Context, tenantID string) ([]domain.Refund, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, amount, COALESCE(reason,''), status, processed_at, created_at
		FROM refunds
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	defer rows.Close()

	var out []domain.Refund
	for rows.Next() {
		var f domain.Refund
		if err := rows.Scan(
			&f.ID, &f.TenantID, &f.Amount, &f.Reason, &f.Status, &f.ProcessedAt, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan refund: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *SourceRepo) VisitsByTenant(ctx context.Context, tenantID string) ([]domain.Visit, error) {
	return r.visits(ctx, `
		SELECT id, tenant_id, property_id, COALESCE(visitor_name,''),
		       COALESCE(visitor_phone,''), COALESCE(purpose,''),
		       visit_date, check_out_at, created_at
		FROM visits
		WHERE tenant_id = $1
		ORDER BY visit_date DESC
	`, tenantID)
}

func (r *SourceRepo) UnlinkedVisitsBefore(ctx context.Context, before time.Time) ([]domain.Visit, error) {
	return r.visits(ctx, `
		SELECT id, tenant_id, property_id, COALESCE(visitor_name,''),
		       COALESCE(visitor_phone,''), COALESCE(purpose,''),
		       visit_date, check_out_at, created_at
		FROM visits
		WHERE tenant_id IS NULL AND visit_date < $1
		ORDER BY visit_date DESC
		LIMIT $2
	`, before, unlinkedVisitLimit)
}

func (r *SourceRepo) visits(ctx context.Context, query string, args ...interface{}) ([]domain.Visit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var out []domain.Visit
	for rows.Next() {
		var v domain.Visit
		if err := rows.Scan(
			&v.ID, &v.TenantID, &v.PropertyID, &v.VisitorName,
			&v.VisitorPhone, &v.Purpose,
			&v.VisitDate, &v.CheckOutAt, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *SourceRepo) MeterReadingsByRoom(ctx context.Context, roomID string) ([]domain.MeterReading, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, room_id, COALESCE(meter_type,''), reading, prev_reading,
		       units_used, reading_date, COALESCE(recorded_by,''), created_at
		FROM meter_readings
		WHERE room_id = $1
		ORDER BY reading_date DESC
	`, roomID)
	if err != nil {
		return nil, fmt.Errorf("list meter readings: %w", err)
	}
	defer rows.Close()

	var out []domain.MeterReading
	for rows.Next() {
		var m domain.MeterReading
		if err := rows.Scan(
			&m.ID, &m.RoomID, &m.MeterType, &m.Reading, &m.PrevReading,
			&m.UnitsUsed, &m.ReadingDate, &m.RecordedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan meter reading: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
