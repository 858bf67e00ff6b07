package service

import (
	"context"

	"github.com/spec-kit/studio-scheduler/internal/domain"
	"github.com/spec-kit/studio-scheduler/internal/repository"
	apperrors "github.com/spec-kit/studio-scheduler/pkg/util"
)

// RoutingService resolves which booking workflow applies to a staff
// member and, on the supervised path, which services they may offer.
type RoutingService struct {
	services    repository.ServiceRepository
	assignments repository.AssignmentRepository
}

// NewRoutingService creates the service.
func NewRoutingService(services repository.ServiceRepository, assignments repository.AssignmentRepository) *RoutingService {
	return &RoutingService{services: services, assignments: assignments}
}

// RouteResult is the routing decision plus, for the supervised path,
// the services the staff member is eligible to offer.
type RouteResult struct {
	Decision          domain.RouteDecision
	OfferableServices []domain.Service
}

// Route decides the booking workflow for the actor. The decision is
// recomputed from the freshly resolved tenant context on every call;
// nothing here is cached.
func (s *RoutingService) Route(ctx context.Context, actor *domain.TenantContext) (*RouteResult, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff identity required")
	}

	result := &RouteResult{Decision: domain.RouteBooking(actor.Role, actor.LicenseVerified)}
	if result.Decision.Route != domain.RouteSupervised {
		return result, nil
	}

	services, err := s.services.ListActiveByStudio(ctx, actor.StudioID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	assignedIDs, err := s.assignments.ListAssignedServiceIDs(ctx, actor.StaffID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	assigned := make(map[string]struct{}, len(assignedIDs))
	for _, id := range assignedIDs {
		assigned[id] = struct{}{}
	}
	result.OfferableServices = make([]domain.Service, 0, len(services))
	for _, svc := range services {
		if _, ok := assigned[svc.ID]; ok {
			result.OfferableServices = append(result.OfferableServices, svc)
		}
	}
	return result, nil
}
