package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/studio-scheduler/internal/domain"
)

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	ListByStudioAndRoles(ctx context.Context, studioID string, roles []domain.StaffRole) ([]domain.StaffMember, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, display_name, role, employment_type, license_verified,
        studio_id, location_id, has_all_location_access, created_at, updated_at`

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	const query = `
        SELECT ` + staffColumns + `
        FROM staff_members WHERE id=$1`

	var staff domain.StaffMember
	var rawRole, rawEmployment string
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&staff.ID,
		&staff.DisplayName,
		&rawRole,
		&rawEmployment,
		&staff.LicenseVerified,
		&staff.StudioID,
		&staff.LocationID,
		&staff.HasAllLocationAccess,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	staff.Role = domain.NormalizeRole(rawRole)
	staff.EmploymentType = domain.NormalizeEmployment(rawEmployment)
	return &staff, nil
}

func (r *staffRepository) ListByStudioAndRoles(ctx context.Context, studioID string, roles []domain.StaffRole) ([]domain.StaffMember, error) {
	const query = `
        SELECT ` + staffColumns + `
        FROM staff_members
        WHERE studio_id=$1 AND LOWER(role) = ANY($2)
        ORDER BY display_name ASC`

	roleStrs := make([]string, 0, len(roles))
	for _, role := range roles {
		roleStrs = append(roleStrs, string(role))
	}

	rows, err := r.pool.Query(ctx, query, studioID, roleStrs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffMember
	for rows.Next() {
		var staff domain.StaffMember
		var rawRole, rawEmployment string
		if err := rows.Scan(
			&staff.ID,
			&staff.DisplayName,
			&rawRole,
			&rawEmployment,
			&staff.LicenseVerified,
			&staff.StudioID,
			&staff.LocationID,
			&staff.HasAllLocationAccess,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		); err != nil {
			return nil, err
		}
		staff.Role = domain.NormalizeRole(rawRole)
		staff.EmploymentType = domain.NormalizeEmployment(rawEmployment)
		result = append(result, staff)
	}
	return result, rows.Err()
}
