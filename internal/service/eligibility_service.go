package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/studio-scheduler/internal/domain"
	"github.com/spec-kit/studio-scheduler/internal/events"
	"github.com/spec-kit/studio-scheduler/internal/repository"
	apperrors "github.com/spec-kit/studio-scheduler/pkg/util"
)

// eligibilityRosterRoles are the roles shown on the assignment board:
// staff that can appear on the supervised path plus the licensed and
// instructor tiers a studio assigns services to.
var eligibilityRosterRoles = []domain.StaffRole{
	domain.RoleStudent,
	domain.RoleLicensed,
	domain.RoleInstructor,
}

// EligibilityService maintains the service eligibility matrix: the
// many-to-many edges stating which staff member may perform which
// service.
type EligibilityService struct {
	services    repository.ServiceRepository
	staff       repository.StaffRepository
	assignments repository.AssignmentRepository
	dispatcher  events.Dispatcher
}

// EligibilityDependencies bundles repositories.
type EligibilityDependencies struct {
	ServiceRepo    repository.ServiceRepository
	StaffRepo      repository.StaffRepository
	AssignmentRepo repository.AssignmentRepository
	Dispatcher     events.Dispatcher
}

// NewEligibilityService creates the service.
func NewEligibilityService(deps EligibilityDependencies) *EligibilityService {
	return &EligibilityService{
		services:    deps.ServiceRepo,
		staff:       deps.StaffRepo,
		assignments: deps.AssignmentRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// EligibilityBoard is the full matrix view for a studio.
type EligibilityBoard struct {
	Services     []domain.Service
	StaffMembers []domain.StaffMember
	Assignments  []domain.ServiceAssignment
}

// AssignmentInput is one edge in a bulk upsert.
type AssignmentInput struct {
	ServiceID string
	StaffID   string
	Assigned  bool
}

// AssignmentRowResult reports the outcome of a single row in a bulk
// upsert. Rows are independent authorization edges, so a bad row is
// skipped and reported instead of aborting the batch.
type AssignmentRowResult struct {
	ServiceID string
	StaffID   string
	OK        bool
	Reason    string
}

// UpsertSummary is the success envelope for a bulk upsert.
type UpsertSummary struct {
	UpdatedCount int
	Rows         []AssignmentRowResult
}

// ListForStudio returns the studio's active services, assignable staff
// roster and current assignment edges.
func (s *EligibilityService) ListForStudio(ctx context.Context, actor *domain.TenantContext, studioID string) (*EligibilityBoard, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff identity required")
	}
	if actor.StudioID != studioID {
		return nil, apperrors.NewForbidden("studio scope mismatch")
	}

	services, err := s.services.ListActiveByStudio(ctx, studioID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	roster, err := s.staff.ListByStudioAndRoles(ctx, studioID, eligibilityRosterRoles)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	assignments, err := s.assignments.ListByStudio(ctx, studioID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &EligibilityBoard{
		Services:     services,
		StaffMembers: roster,
		Assignments:  assignments,
	}, nil
}

// UpsertAssignments applies a batch of assignment edges with
// last-write-wins semantics. Rows referencing staff or services outside
// the actor's studio are skipped and reported per row; the batch itself
// never aborts on them, since a manager may legitimately submit edges
// for staff removed from the studio concurrently.
func (s *EligibilityService) UpsertAssignments(ctx context.Context, actor *domain.TenantContext, rows []AssignmentInput) (*UpsertSummary, error) {
	if err := requireMatrixEditor(actor); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("at least one assignment row required", nil)
	}

	summary := &UpsertSummary{Rows: make([]AssignmentRowResult, 0, len(rows))}
	for _, row := range rows {
		result := AssignmentRowResult{ServiceID: row.ServiceID, StaffID: row.StaffID}
		if reason := s.checkRowScope(ctx, actor, row); reason != "" {
			result.Reason = reason
			summary.Rows = append(summary.Rows, result)
			continue
		}

		assignment := &domain.ServiceAssignment{
			ServiceID:  row.ServiceID,
			StaffID:    row.StaffID,
			Assigned:   row.Assigned,
			AssignedBy: actor.StaffID,
		}
		if err := s.assignments.Upsert(ctx, assignment); err != nil {
			return nil, apperrors.MapError(err)
		}
		result.OK = true
		summary.UpdatedCount++
		summary.Rows = append(summary.Rows, result)
	}

	s.publish(ctx, actor, events.AssignmentsUpdatedPayload{
		UpdatedCount: summary.UpdatedCount,
		SkippedCount: len(summary.Rows) - summary.UpdatedCount,
	})
	return summary, nil
}

// DeleteAssignment removes a single edge. Both ends must belong to the
// actor's studio; cross-studio references are rejected outright.
func (s *EligibilityService) DeleteAssignment(ctx context.Context, actor *domain.TenantContext, serviceID, staffID string) error {
	if err := requireMatrixEditor(actor); err != nil {
		return err
	}

	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("assignment", map[string]any{
				"service_id": serviceID,
				"staff_id":   staffID,
			})
		}
		return apperrors.MapError(err)
	}
	if staff.StudioID != actor.StudioID {
		return apperrors.NewForbidden("staff member belongs to a different studio")
	}

	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("assignment", map[string]any{
				"service_id": serviceID,
				"staff_id":   staffID,
			})
		}
		return apperrors.MapError(err)
	}
	if svc.StudioID != actor.StudioID {
		return apperrors.NewForbidden("service belongs to a different studio")
	}

	if err := s.assignments.Delete(ctx, serviceID, staffID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("assignment", map[string]any{
				"service_id": serviceID,
				"staff_id":   staffID,
			})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// IsEligible reports whether the staff member holds an assigned=true
// edge for the service.
func (s *EligibilityService) IsEligible(ctx context.Context, staffID, serviceID string) (bool, error) {
	eligible, err := s.assignments.IsEligible(ctx, staffID, serviceID)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	return eligible, nil
}

// checkRowScope verifies both ends of an edge belong to the actor's
// studio. A non-empty return is the per-row skip reason.
func (s *EligibilityService) checkRowScope(ctx context.Context, actor *domain.TenantContext, row AssignmentInput) string {
	if row.ServiceID == "" || row.StaffID == "" {
		return "service_id and staff_id required"
	}

	staff, err := s.staff.GetByID(ctx, row.StaffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "staff member not found"
		}
		return "staff lookup failed"
	}
	if staff.StudioID != actor.StudioID {
		return "staff member belongs to a different studio"
	}

	svc, err := s.services.GetByID(ctx, row.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "service not found"
		}
		return "service lookup failed"
	}
	if svc.StudioID != actor.StudioID {
		return "service belongs to a different studio"
	}
	return ""
}

func (s *EligibilityService) publish(ctx context.Context, actor *domain.TenantContext, payload events.AssignmentsUpdatedPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         events.EventAssignmentsUpdated,
		StudioID:     actor.StudioID,
		ActorStaffID: actor.StaffID,
		Timestamp:    time.Now().UTC(),
		Payload:      payload,
	})
}

func requireMatrixEditor(actor *domain.TenantContext) error {
	if actor == nil {
		return apperrors.NewUnauthorized("staff identity required")
	}
	if !actor.Role.IsManagement() {
		return apperrors.NewForbidden("editing service assignments requires an owner, manager or director role")
	}
	return nil
}
