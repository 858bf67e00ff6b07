package service

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/studio-scheduler/internal/domain"
	"github.com/spec-kit/studio-scheduler/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeStaffRepo struct {
	members map[string]*domain.StaffMember
}

func newFakeStaffRepo(members ...*domain.StaffMember) *fakeStaffRepo {
	repo := &fakeStaffRepo{members: make(map[string]*domain.StaffMember)}
	for _, m := range members {
		repo.members[m.ID] = m
	}
	return repo
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *member
	return &copied, nil
}

func (r *fakeStaffRepo) ListByStudioAndRoles(ctx context.Context, studioID string, roles []domain.StaffRole) ([]domain.StaffMember, error) {
	roleSet := make(map[domain.StaffRole]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}
	var result []domain.StaffMember
	for _, member := range r.members {
		if member.StudioID != studioID {
			continue
		}
		if _, ok := roleSet[member.Role]; !ok {
			continue
		}
		result = append(result, *member)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayName < result[j].DisplayName })
	return result, nil
}

type fakeServiceRepo struct {
	services map[string]*domain.Service
}

func newFakeServiceRepo(services ...*domain.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{services: make(map[string]*domain.Service)}
	for _, svc := range services {
		repo.services[svc.ID] = svc
	}
	return repo
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *svc
	return &copied, nil
}

func (r *fakeServiceRepo) ListActiveByStudio(ctx context.Context, studioID string) ([]domain.Service, error) {
	var result []domain.Service
	for _, svc := range r.services {
		if svc.StudioID == studioID && svc.IsActive {
			result = append(result, *svc)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type fakeAssignmentRepo struct {
	rows map[string]*domain.ServiceAssignment
	// serviceStudio mirrors the services table join used by
	// ListByStudio.
	serviceStudio map[string]string
}

func newFakeAssignmentRepo(services *fakeServiceRepo) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{
		rows:          make(map[string]*domain.ServiceAssignment),
		serviceStudio: make(map[string]string),
	}
	for id, svc := range services.services {
		repo.serviceStudio[id] = svc.StudioID
	}
	return repo
}

func assignmentKey(serviceID, staffID string) string {
	return serviceID + "|" + staffID
}

func (r *fakeAssignmentRepo) Upsert(ctx context.Context, assignment *domain.ServiceAssignment) error {
	assignment.UpdatedAt = time.Now().UTC()
	copied := *assignment
	r.rows[assignmentKey(assignment.ServiceID, assignment.StaffID)] = &copied
	return nil
}

func (r *fakeAssignmentRepo) Delete(ctx context.Context, serviceID, staffID string) error {
	key := assignmentKey(serviceID, staffID)
	if _, ok := r.rows[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows, key)
	return nil
}

func (r *fakeAssignmentRepo) ListByStudio(ctx context.Context, studioID string) ([]domain.ServiceAssignment, error) {
	var result []domain.ServiceAssignment
	for _, row := range r.rows {
		if r.serviceStudio[row.ServiceID] == studioID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (r *fakeAssignmentRepo) IsEligible(ctx context.Context, staffID, serviceID string) (bool, error) {
	row, ok := r.rows[assignmentKey(serviceID, staffID)]
	return ok && row.Assigned, nil
}

func (r *fakeAssignmentRepo) ListAssignedServiceIDs(ctx context.Context, staffID string) ([]string, error) {
	var ids []string
	for _, row := range r.rows {
		if row.StaffID == staffID && row.Assigned {
			ids = append(ids, row.ServiceID)
		}
	}
	return ids, nil
}

type fakeBookingRepo struct {
	bookings map[string]*domain.RoomBooking

	// hideFromListOnce makes the next ListConfirmedByRoom return
	// nothing, simulating a concurrent create that passes the
	// application-level conflict check before the competing row lands.
	hideFromListOnce bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*domain.RoomBooking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *domain.RoomBooking) error {
	// Mirror the exclusion constraint the real table carries.
	for _, existing := range r.bookings {
		if existing.Status != domain.BookingStatusConfirmed {
			continue
		}
		if existing.StudioID == booking.StudioID && existing.RoomName == booking.RoomName &&
			existing.Overlaps(booking.StartAt, booking.EndAt) {
			return repository.ErrBookingOverlap
		}
	}
	booking.CreatedAt = time.Now().UTC()
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.RoomBooking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) ListByStudio(ctx context.Context, studioID string) ([]domain.RoomBooking, error) {
	var result []domain.RoomBooking
	for _, booking := range r.bookings {
		if booking.StudioID == studioID && booking.Status == domain.BookingStatusConfirmed {
			result = append(result, *booking)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (r *fakeBookingRepo) ListConfirmedByRoom(ctx context.Context, studioID, roomName string) ([]domain.RoomBooking, error) {
	if r.hideFromListOnce {
		r.hideFromListOnce = false
		return nil, nil
	}
	var result []domain.RoomBooking
	for _, booking := range r.bookings {
		if booking.StudioID == studioID && booking.RoomName == roomName &&
			booking.Status == domain.BookingStatusConfirmed {
			result = append(result, *booking)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.bookings, id)
	return nil
}
