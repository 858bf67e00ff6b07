package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/studio-scheduler/internal/domain"
)

// AssignmentRepository handles persistence for service assignment edges.
type AssignmentRepository interface {
	Upsert(ctx context.Context, assignment *domain.ServiceAssignment) error
	Delete(ctx context.Context, serviceID, staffID string) error
	ListByStudio(ctx context.Context, studioID string) ([]domain.ServiceAssignment, error)
	IsEligible(ctx context.Context, staffID, serviceID string) (bool, error)
	ListAssignedServiceIDs(ctx context.Context, staffID string) ([]string, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) Upsert(ctx context.Context, assignment *domain.ServiceAssignment) error {
	const query = `
        INSERT INTO service_assignments (service_id, staff_id, assigned, assigned_by, updated_at)
        VALUES ($1,$2,$3,$4,NOW())
        ON CONFLICT (service_id, staff_id)
        DO UPDATE SET assigned=EXCLUDED.assigned, assigned_by=EXCLUDED.assigned_by, updated_at=NOW()
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		assignment.ServiceID,
		assignment.StaffID,
		assignment.Assigned,
		assignment.AssignedBy,
	).Scan(&assignment.UpdatedAt)
}

func (r *assignmentRepository) Delete(ctx context.Context, serviceID, staffID string) error {
	const query = `DELETE FROM service_assignments WHERE service_id=$1 AND staff_id=$2`

	cmd, err := r.pool.Exec(ctx, query, serviceID, staffID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) ListByStudio(ctx context.Context, studioID string) ([]domain.ServiceAssignment, error) {
	const query = `
        SELECT a.service_id, a.staff_id, a.assigned, a.assigned_by, a.updated_at
        FROM service_assignments a
        JOIN services s ON s.id = a.service_id
        WHERE s.studio_id=$1
        ORDER BY a.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, studioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceAssignment
	for rows.Next() {
		var a domain.ServiceAssignment
		if err := rows.Scan(&a.ServiceID, &a.StaffID, &a.Assigned, &a.AssignedBy, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *assignmentRepository) IsEligible(ctx context.Context, staffID, serviceID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM service_assignments
            WHERE staff_id=$1 AND service_id=$2 AND assigned
        )`

	var eligible bool
	if err := r.pool.QueryRow(ctx, query, staffID, serviceID).Scan(&eligible); err != nil {
		return false, err
	}
	return eligible, nil
}

func (r *assignmentRepository) ListAssignedServiceIDs(ctx context.Context, staffID string) ([]string, error) {
	const query = `
        SELECT service_id FROM service_assignments
        WHERE staff_id=$1 AND assigned`

	rows, err := r.pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
