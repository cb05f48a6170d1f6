package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/rentops/internal/domain"
	"github.com/ignite/rentops/internal/service/journey"
)

// TenantRepo implements journey.TenantRepository against PostgreSQL.
type TenantRepo struct{ db *sql.DB }

// NewTenantRepo creates a Postgres-backed tenant repository.
func NewTenantRepo(db *sql.DB) *TenantRepo { return &TenantRepo{db: db} }

func (r *TenantRepo) Get(ctx context.Context, workspaceID, id string) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, name, status,
		       COALESCE(phone,''), COALESCE(alternate_phone,''), COALESCE(email,''),
		       property_id, COALESCE(property_name,''), room_id, COALESCE(room_number,''),
		       check_in_date, notice_date, expected_exit_at,
		       monthly_rent, deposit_amount, deposit_paid, advance_amount,
		       COALESCE(police_verification,'pending'), agreement_signed,
		       created_at, updated_at
		FROM tenants
		WHERE id = $1 AND workspace_id = $2
	`, id, workspaceID).Scan(
		&t.ID, &t.WorkspaceID, &t.Name, &t.Status,
		&t.Phone, &t.AlternatePhone, &t.Email,
		&t.PropertyID, &t.PropertyName, &t.RoomID, &t.RoomNumber,
		&t.CheckInDate, &t.NoticeDate, &t.ExpectedExitAt,
		&t.MonthlyRent, &t.DepositAmount, &t.DepositPaid, &t.AdvanceAmount,
		&t.PoliceVerification, &t.AgreementSigned,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, journey.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}
