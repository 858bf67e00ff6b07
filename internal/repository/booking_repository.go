package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/studio-scheduler/internal/domain"
)

// ErrBookingOverlap is returned by Create when the room_bookings
// exclusion constraint rejects the insert. It is how the losing side of
// two concurrent create calls learns about the conflict the preceding
// application-level check could not see.
var ErrBookingOverlap = errors.New("booking overlaps a confirmed booking")

const pgExclusionViolation = "23P01"

// BookingRepository handles persistence for room bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.RoomBooking) error
	GetByID(ctx context.Context, id string) (*domain.RoomBooking, error)
	ListByStudio(ctx context.Context, studioID string) ([]domain.RoomBooking, error)
	ListConfirmedByRoom(ctx context.Context, studioID, roomName string) ([]domain.RoomBooking, error)
	Delete(ctx context.Context, id string) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates the repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `b.id, b.studio_id, b.room_name, b.booking_date, b.start_at, b.end_at,
        b.service_type, b.client_name, b.notes, b.status, b.owner_staff_id, s.display_name, b.created_at`

func (r *bookingRepository) Create(ctx context.Context, booking *domain.RoomBooking) error {
	const query = `
        INSERT INTO room_bookings
            (id, studio_id, room_name, booking_date, start_at, end_at,
             service_type, client_name, notes, status, owner_staff_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		booking.ID,
		booking.StudioID,
		booking.RoomName,
		booking.BookingDate,
		booking.StartAt,
		booking.EndAt,
		booking.ServiceType,
		booking.ClientName,
		booking.Notes,
		booking.Status,
		booking.OwnerStaffID,
	).Scan(&booking.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return ErrBookingOverlap
		}
		return err
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.RoomBooking, error) {
	const query = `
        SELECT ` + bookingColumns + `
        FROM room_bookings b
        JOIN staff_members s ON s.id = b.owner_staff_id
        WHERE b.id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *bookingRepository) ListByStudio(ctx context.Context, studioID string) ([]domain.RoomBooking, error) {
	const query = `
        SELECT ` + bookingColumns + `
        FROM room_bookings b
        JOIN staff_members s ON s.id = b.owner_staff_id
        WHERE b.studio_id=$1 AND b.status='confirmed'
        ORDER BY b.start_at ASC`

	return r.scanMany(ctx, query, studioID)
}

func (r *bookingRepository) ListConfirmedByRoom(ctx context.Context, studioID, roomName string) ([]domain.RoomBooking, error) {
	const query = `
        SELECT ` + bookingColumns + `
        FROM room_bookings b
        JOIN staff_members s ON s.id = b.owner_staff_id
        WHERE b.studio_id=$1 AND b.room_name=$2 AND b.status='confirmed'
        ORDER BY b.start_at ASC`

	return r.scanMany(ctx, query, studioID, roomName)
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM room_bookings WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) scanOne(row pgx.Row) (*domain.RoomBooking, error) {
	var b domain.RoomBooking
	if err := row.Scan(
		&b.ID,
		&b.StudioID,
		&b.RoomName,
		&b.BookingDate,
		&b.StartAt,
		&b.EndAt,
		&b.ServiceType,
		&b.ClientName,
		&b.Notes,
		&b.Status,
		&b.OwnerStaffID,
		&b.OwnerDisplayName,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.RoomBooking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoomBooking
	for rows.Next() {
		var b domain.RoomBooking
		if err := rows.Scan(
			&b.ID,
			&b.StudioID,
			&b.RoomName,
			&b.BookingDate,
			&b.StartAt,
			&b.EndAt,
			&b.ServiceType,
			&b.ClientName,
			&b.Notes,
			&b.Status,
			&b.OwnerStaffID,
			&b.OwnerDisplayName,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}
