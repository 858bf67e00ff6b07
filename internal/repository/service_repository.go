package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/studio-scheduler/internal/domain"
)

// ServiceRepository handles persistence for studio service offerings.
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	ListActiveByStudio(ctx context.Context, studioID string) ([]domain.Service, error)
}

type serviceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository instantiates the repository.
func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{pool: pool}
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	const query = `
        SELECT id, studio_id, name, category, default_duration_minutes, is_active, created_at, updated_at
        FROM services WHERE id=$1`

	var svc domain.Service
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&svc.ID,
		&svc.StudioID,
		&svc.Name,
		&svc.Category,
		&svc.DefaultDurationMinutes,
		&svc.IsActive,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) ListActiveByStudio(ctx context.Context, studioID string) ([]domain.Service, error) {
	const query = `
        SELECT id, studio_id, name, category, default_duration_minutes, is_active, created_at, updated_at
        FROM services
        WHERE studio_id=$1 AND is_active
        ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, studioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Service
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(
			&svc.ID,
			&svc.StudioID,
			&svc.Name,
			&svc.Category,
			&svc.DefaultDurationMinutes,
			&svc.IsActive,
			&svc.CreatedAt,
			&svc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, svc)
	}
	return result, rows.Err()
}
