package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/studio-scheduler/internal/config"
	"github.com/spec-kit/studio-scheduler/internal/domain"
	apperrors "github.com/spec-kit/studio-scheduler/pkg/util"
)

func testSchedulingConfig() config.SchedulingConfig {
	return config.SchedulingConfig{
		StudentServiceKeywords: []string{"hydrafacial", "hydra facial", "hydra-facial"},
	}
}

func newBookingService(repo *fakeBookingRepo) *BookingService {
	return NewBookingService(BookingDependencies{
		BookingRepo: repo,
		Scheduling:  testSchedulingConfig(),
	})
}

func tenant(staffID, studioID string, role domain.StaffRole, employment domain.EmploymentType) *domain.TenantContext {
	return &domain.TenantContext{
		StaffID:        staffID,
		DisplayName:    "Staff " + staffID,
		Role:           role,
		StudioID:       studioID,
		EmploymentType: employment,
	}
}

func bookingInput(room, date, start, end string) BookingCreateInput {
	return BookingCreateInput{
		RoomName:    room,
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
	}
}

func assertErrorCode(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if domainErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, domainErr.Code, domainErr.Message)
	}
	return domainErr
}

func TestCreateBookingOverlapScenarios(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newBookingService(repo)
	owner := tenant("staff-1", "studio-1", domain.RoleOwner, domain.EmploymentEmployee)

	seeded, err := svc.Create(ctx, owner, bookingInput("Suite A", "2026-09-01", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	t.Run("partial overlap conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, bookingInput("Suite A", "2026-09-01", "10:30", "11:30"))
		domainErr := assertErrorCode(t, err, "CONFLICT")
		if got := domainErr.Details["booking_id"]; got != seeded.ID {
			t.Fatalf("conflict should carry the offending booking, got %v", got)
		}
	})

	t.Run("back to back before is allowed", func(t *testing.T) {
		if _, err := svc.Create(ctx, owner, bookingInput("Suite A", "2026-09-01", "09:00", "10:00")); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})

	t.Run("touching boundary after is allowed", func(t *testing.T) {
		if _, err := svc.Create(ctx, owner, bookingInput("Suite A", "2026-09-01", "11:00", "12:00")); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})

	t.Run("containment conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, bookingInput("Suite A", "2026-09-01", "10:15", "10:45"))
		assertErrorCode(t, err, "CONFLICT")
	})

	t.Run("other room is independent", func(t *testing.T) {
		if _, err := svc.Create(ctx, owner, bookingInput("Suite B", "2026-09-01", "10:00", "11:00")); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})
}

func TestCreateBookingIdenticalIntervalTwice(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newBookingService(repo)
	owner := tenant("staff-1", "studio-1", domain.RoleOwner, domain.EmploymentEmployee)

	input := bookingInput("Suite A", "2026-09-01", "10:00", "11:00")
	if _, err := svc.Create(ctx, owner, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(ctx, owner, input)
	assertErrorCode(t, err, "CONFLICT")

	bookings, err := svc.ListForStudio(ctx, owner, "studio-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected exactly one confirmed booking, got %d", len(bookings))
	}
}

func TestCreateBookingLostRaceMapsToConflict(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newBookingService(repo)
	owner := tenant("staff-1", "studio-1", domain.RoleOwner, domain.EmploymentEmployee)

	seeded, err := svc.Create(ctx, owner, bookingInput("Suite A", "2026-09-01", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	// The competing row is invisible to the read-side check, so the
	// insert itself trips the exclusion constraint.
	repo.hideFromListOnce = true
	_, err = svc.Create(ctx, owner, bookingInput("Suite A", "2026-09-01", "10:30", "11:30"))
	domainErr := assertErrorCode(t, err, "CONFLICT")
	if got := domainErr.Details["booking_id"]; got != seeded.ID {
		t.Fatalf("conflict should carry the winning booking, got %v", got)
	}
}

func TestCreateBookingRoomAccessGates(t *testing.T) {
	cases := []struct {
		name        string
		role        domain.StaffRole
		employment  domain.EmploymentType
		serviceType string
		wantCode    string
	}{
		{"owner books freely", domain.RoleOwner, domain.EmploymentEmployee, "", ""},
		{"manager books freely", domain.RoleManager, domain.EmploymentEmployee, "", ""},
		{"director books freely", domain.RoleDirector, domain.EmploymentEmployee, "", ""},
		{"licensed booth renter books", domain.RoleLicensed, domain.EmploymentBoothRenter, "", ""},
		{"instructor booth renter books", domain.RoleInstructor, domain.EmploymentBoothRenter, "", ""},
		{"licensed commissioned forbidden", domain.RoleLicensed, domain.EmploymentCommissioned, "", "FORBIDDEN"},
		{"licensed employee forbidden", domain.RoleLicensed, domain.EmploymentEmployee, "", "FORBIDDEN"},
		{"instructor employee forbidden", domain.RoleInstructor, domain.EmploymentEmployee, "", "FORBIDDEN"},
		{"student with botox forbidden", domain.RoleStudent, domain.EmploymentCommissioned, "Botox", "FORBIDDEN"},
		{"student with allow-listed keyword books", domain.RoleStudent, domain.EmploymentCommissioned, "HydraFacial Deluxe", ""},
		{"student with spelling variant books", domain.RoleStudent, domain.EmploymentCommissioned, "hydra-facial touch up", ""},
		{"student without service type forbidden", domain.RoleStudent, domain.EmploymentCommissioned, "", "FORBIDDEN"},
		{"plain staff forbidden", domain.RoleStaff, domain.EmploymentEmployee, "", "FORBIDDEN"},
		{"apprentice forbidden", domain.RoleApprentice, domain.EmploymentEmployee, "", "FORBIDDEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newBookingService(newFakeBookingRepo())
			actor := tenant("staff-1", "studio-1", tc.role, tc.employment)
			input := bookingInput("Suite A", "2026-09-01", "10:00", "11:00")
			input.ServiceType = tc.serviceType

			_, err := svc.Create(context.Background(), actor, input)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			assertErrorCode(t, err, tc.wantCode)
		})
	}
}

func TestCreateBookingGateRunsBeforeIntervalValidation(t *testing.T) {
	svc := newBookingService(newFakeBookingRepo())
	actor := tenant("staff-1", "studio-1", domain.RoleLicensed, domain.EmploymentCommissioned)

	// end before start would be a validation error, but the role gate
	// rejects first.
	_, err := svc.Create(context.Background(), actor, bookingInput("Suite A", "2026-09-01", "11:00", "10:00"))
	assertErrorCode(t, err, "FORBIDDEN")
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newBookingService(newFakeBookingRepo())
	owner := tenant("staff-1", "studio-1", domain.RoleOwner, domain.EmploymentEmployee)
	ctx := context.Background()

	cases := []struct {
		name  string
		input BookingCreateInput
	}{
		{"missing room", bookingInput("", "2026-09-01", "10:00", "11:00")},
		{"missing date", bookingInput("Suite A", "", "10:00", "11:00")},
		{"end equals start", bookingInput("Suite A", "2026-09-01", "10:00", "10:00")},
		{"end before start", bookingInput("Suite A", "2026-09-01", "11:00", "10:00")},
		{"bad date format", bookingInput("Suite A", "01/09/2026", "10:00", "11:00")},
		{"bad time format", bookingInput("Suite A", "2026-09-01", "10am", "11:00")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, owner, tc.input)
			assertErrorCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestCancelBookingPermissions(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newBookingService(repo)

	renter := tenant("staff-renter", "studio-1", domain.RoleLicensed, domain.EmploymentBoothRenter)
	booking, err := svc.Create(ctx, renter, bookingInput("Suite A", "2026-09-01", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	t.Run("unrelated staff forbidden", func(t *testing.T) {
		other := tenant("staff-other", "studio-1", domain.RoleLicensed, domain.EmploymentBoothRenter)
		assertErrorCode(t, svc.Cancel(ctx, other, booking.ID), "FORBIDDEN")
	})

	t.Run("management of another studio forbidden", func(t *testing.T) {
		foreign := tenant("staff-foreign", "studio-2", domain.RoleOwner, domain.EmploymentEmployee)
		assertErrorCode(t, svc.Cancel(ctx, foreign, booking.ID), "FORBIDDEN")
	})

	t.Run("manager cancels any studio booking", func(t *testing.T) {
		manager := tenant("staff-mgr", "studio-1", domain.RoleManager, domain.EmploymentEmployee)
		if err := svc.Cancel(ctx, manager, booking.ID); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})

	t.Run("cancel frees the slot", func(t *testing.T) {
		if _, err := svc.Create(ctx, renter, bookingInput("Suite A", "2026-09-01", "10:00", "11:00")); err != nil {
			t.Fatalf("expected freed slot to be bookable, got %v", err)
		}
	})

	t.Run("owner cancels own booking", func(t *testing.T) {
		again, err := svc.Create(ctx, renter, bookingInput("Suite A", "2026-09-01", "12:00", "13:00"))
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		if err := svc.Cancel(ctx, renter, again.ID); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})

	t.Run("missing booking not found", func(t *testing.T) {
		assertErrorCode(t, svc.Cancel(ctx, renter, "missing-id"), "NOT_FOUND")
	})
}

func TestListBookingsOrderedByStart(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newBookingService(repo)
	owner := tenant("staff-1", "studio-1", domain.RoleOwner, domain.EmploymentEmployee)

	for _, slot := range [][2]string{{"14:00", "15:00"}, {"09:00", "10:00"}, {"11:00", "12:00"}} {
		if _, err := svc.Create(ctx, owner, bookingInput("Suite A", "2026-09-01", slot[0], slot[1])); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	bookings, err := svc.ListForStudio(ctx, owner, "studio-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bookings) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(bookings))
	}
	for i := 1; i < len(bookings); i++ {
		if bookings[i].StartAt.Before(bookings[i-1].StartAt) {
			t.Fatalf("bookings not ordered by start time: %v before %v", bookings[i].StartAt, bookings[i-1].StartAt)
		}
	}

	t.Run("foreign studio forbidden", func(t *testing.T) {
		_, err := svc.ListForStudio(ctx, owner, "studio-2")
		assertErrorCode(t, err, "FORBIDDEN")
	})
}
