package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/studio-scheduler/internal/config"
	"github.com/spec-kit/studio-scheduler/internal/domain"
	"github.com/spec-kit/studio-scheduler/internal/events"
	"github.com/spec-kit/studio-scheduler/internal/repository"
	apperrors "github.com/spec-kit/studio-scheduler/pkg/util"
)

const (
	bookingDateLayout = "2006-01-02"
	bookingTimeLayout = "15:04"
)

// BookingService creates and cancels room bookings, enforcing room
// access rules and the no-overlap invariant per (studio, room).
type BookingService struct {
	bookings   repository.BookingRepository
	dispatcher events.Dispatcher
	scheduling config.SchedulingConfig
}

// BookingDependencies bundles repositories.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	Dispatcher  events.Dispatcher
	Scheduling  config.SchedulingConfig
}

// NewBookingService creates the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:   deps.BookingRepo,
		dispatcher: deps.Dispatcher,
		scheduling: deps.Scheduling,
	}
}

// BookingCreateInput carries the client-supplied booking fields. The
// studio is always taken from the resolved tenant context.
type BookingCreateInput struct {
	RoomName    string
	BookingDate string
	StartTime   string
	EndTime     string
	ServiceType string
	ClientName  string
	Notes       string
}

// Create reserves a room slot. Access checks run first: studio scope,
// then the room-access role gate, then the student service-type gate.
// The interval is validated after the gates, then checked against the
// room's confirmed bookings. The storage-level exclusion constraint is
// the authoritative overlap guard: when two concurrent calls both pass
// the read-side check, the losing insert surfaces as the same Conflict
// error.
func (s *BookingService) Create(ctx context.Context, actor *domain.TenantContext, input BookingCreateInput) (*domain.RoomBooking, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff identity required")
	}
	if actor.StudioID == "" {
		return nil, apperrors.NewForbidden("staff member has no studio scope")
	}
	if err := s.checkRoomAccess(actor, input.ServiceType); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.RoomName) == "" {
		return nil, apperrors.NewValidationError("room_name required", nil)
	}
	startAt, endAt, bookingDate, err := parseBookingInterval(input.BookingDate, input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.bookings.ListConfirmedByRoom(ctx, actor.StudioID, input.RoomName)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range existing {
		if existing[i].Overlaps(startAt, endAt) {
			return nil, conflictError(&existing[i])
		}
	}

	booking := &domain.RoomBooking{
		ID:               uuid.NewString(),
		StudioID:         actor.StudioID,
		RoomName:         input.RoomName,
		BookingDate:      bookingDate,
		StartAt:          startAt,
		EndAt:            endAt,
		ServiceType:      input.ServiceType,
		ClientName:       input.ClientName,
		Notes:            input.Notes,
		Status:           domain.BookingStatusConfirmed,
		OwnerStaffID:     actor.StaffID,
		OwnerDisplayName: actor.DisplayName,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrBookingOverlap) {
			return nil, s.conflictFromRace(ctx, actor.StudioID, input.RoomName, startAt, endAt)
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventBookingCreated, events.BookingCreatedPayload{
		BookingID: booking.ID,
		RoomName:  booking.RoomName,
		StartAt:   booking.StartAt,
		EndAt:     booking.EndAt,
	})
	return booking, nil
}

// Cancel frees a booked slot. Permitted for the booking owner or studio
// management; the row is hard-deleted, cancellation keeps no history.
func (s *BookingService) Cancel(ctx context.Context, actor *domain.TenantContext, bookingID string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("staff identity required")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("booking", map[string]any{"booking_id": bookingID})
		}
		return apperrors.MapError(err)
	}
	if booking.StudioID != actor.StudioID {
		return apperrors.NewForbidden("booking belongs to a different studio")
	}
	if booking.OwnerStaffID != actor.StaffID && !actor.Role.IsManagement() {
		return apperrors.NewForbidden("only the booking owner or studio management may cancel")
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("booking", map[string]any{"booking_id": bookingID})
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventBookingCancelled, events.BookingCancelledPayload{
		BookingID: booking.ID,
		RoomName:  booking.RoomName,
	})
	return nil
}

// ListForStudio returns the studio's confirmed bookings ordered by
// start time ascending.
func (s *BookingService) ListForStudio(ctx context.Context, actor *domain.TenantContext, studioID string) ([]domain.RoomBooking, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff identity required")
	}
	if actor.StudioID != studioID {
		return nil, apperrors.NewForbidden("studio scope mismatch")
	}

	bookings, err := s.bookings.ListByStudio(ctx, studioID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return bookings, nil
}

// checkRoomAccess enforces who may reserve a room at all. Room access
// is a rentable privilege, not a default: non-management staff only get
// it through a booth rental, and students only for the allow-listed
// service types.
func (s *BookingService) checkRoomAccess(actor *domain.TenantContext, serviceType string) error {
	if actor.Role.IsManagement() {
		return nil
	}
	if actor.Role == domain.RoleStudent {
		if s.studentServiceAllowed(serviceType) {
			return nil
		}
		return apperrors.NewForbidden("students may only book rooms for approved service types")
	}
	if actor.Role == domain.RoleLicensed || actor.Role == domain.RoleInstructor {
		if actor.EmploymentType == domain.EmploymentBoothRenter {
			return nil
		}
		return apperrors.NewForbidden("room booking requires a booth rental")
	}
	return apperrors.NewForbidden("role does not permit room booking")
}

func (s *BookingService) studentServiceAllowed(serviceType string) bool {
	normalized := strings.ToLower(strings.TrimSpace(serviceType))
	if normalized == "" {
		return false
	}
	for _, keyword := range s.scheduling.StudentServiceKeywords {
		if strings.Contains(normalized, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// conflictFromRace rebuilds the Conflict error after the exclusion
// constraint rejected an insert that had already passed the read-side
// check.
func (s *BookingService) conflictFromRace(ctx context.Context, studioID, roomName string, startAt, endAt time.Time) error {
	existing, err := s.bookings.ListConfirmedByRoom(ctx, studioID, roomName)
	if err == nil {
		for i := range existing {
			if existing[i].Overlaps(startAt, endAt) {
				return conflictError(&existing[i])
			}
		}
	}
	return apperrors.NewConflict("room is already booked for this interval", nil)
}

func (s *BookingService) publish(ctx context.Context, actor *domain.TenantContext, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		StudioID:     actor.StudioID,
		ActorStaffID: actor.StaffID,
		Timestamp:    time.Now().UTC(),
		Payload:      payload,
	})
}

func conflictError(existing *domain.RoomBooking) error {
	return apperrors.NewConflict("room is already booked for this interval", map[string]any{
		"booking_id": existing.ID,
		"room_name":  existing.RoomName,
		"start_at":   existing.StartAt,
		"end_at":     existing.EndAt,
		"owner_name": existing.OwnerDisplayName,
	})
}

func parseBookingInterval(date, start, end string) (time.Time, time.Time, time.Time, error) {
	var zero time.Time
	if date == "" || start == "" || end == "" {
		return zero, zero, zero, apperrors.NewValidationError("booking_date, start_time and end_time required", nil)
	}

	bookingDate, err := time.Parse(bookingDateLayout, date)
	if err != nil {
		return zero, zero, zero, apperrors.NewValidationError("booking_date must be YYYY-MM-DD", nil)
	}
	startClock, err := time.Parse(bookingTimeLayout, start)
	if err != nil {
		return zero, zero, zero, apperrors.NewValidationError("start_time must be HH:MM", nil)
	}
	endClock, err := time.Parse(bookingTimeLayout, end)
	if err != nil {
		return zero, zero, zero, apperrors.NewValidationError("end_time must be HH:MM", nil)
	}

	startAt := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(),
		startClock.Hour(), startClock.Minute(), 0, 0, time.UTC)
	endAt := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(),
		endClock.Hour(), endClock.Minute(), 0, 0, time.UTC)
	if !endAt.After(startAt) {
		return zero, zero, zero, apperrors.NewValidationError("end_time must be after start_time", nil)
	}
	return startAt, endAt, bookingDate, nil
}
