package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studio-scheduler/internal/api/dto"
	"github.com/spec-kit/studio-scheduler/internal/auth"
	"github.com/spec-kit/studio-scheduler/internal/domain"
	"github.com/spec-kit/studio-scheduler/internal/service"
	apperrors "github.com/spec-kit/studio-scheduler/pkg/util"
)

// BookingsHandler manages room booking endpoints.
type BookingsHandler struct {
	bookings *service.BookingService
	routing  *service.RoutingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookings *service.BookingService, routing *service.RoutingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings, routing: routing}
}

// Create POST /bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.TenantFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff identity required")
	}
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	booking, err := h.bookings.Create(c.Context(), actor, service.BookingCreateInput{
		RoomName:    req.RoomName,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ServiceType: req.ServiceType,
		ClientName:  req.ClientName,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": bookingSummary(booking)})
}

// List GET /bookings?studio_id=.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.TenantFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff identity required")
	}
	studioID := c.Query("studio_id")
	if studioID == "" {
		studioID = actor.StudioID
	}

	bookings, err := h.bookings.ListForStudio(c.Context(), actor, studioID)
	if err != nil {
		return err
	}
	items := make([]dto.BookingSummary, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingSummary(&bookings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Cancel DELETE /bookings/:id.
func (h *BookingsHandler) Cancel(c *fiber.Ctx) error {
	actor, ok := auth.TenantFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff identity required")
	}
	if err := h.bookings.Cancel(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// Route GET /bookings/route.
func (h *BookingsHandler) Route(c *fiber.Ctx) error {
	actor, ok := auth.TenantFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff identity required")
	}
	result, err := h.routing.Route(c.Context(), actor)
	if err != nil {
		return err
	}

	resp := dto.RouteResponse{
		Decision: string(result.Decision.Route),
		Hint:     result.Decision.Hint,
	}
	for _, svc := range result.OfferableServices {
		resp.OfferableServices = append(resp.OfferableServices, dto.ServiceSummary{
			ID:                     svc.ID,
			Name:                   svc.Name,
			Category:               svc.Category,
			DefaultDurationMinutes: svc.DefaultDurationMinutes,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

func bookingSummary(b *domain.RoomBooking) dto.BookingSummary {
	return dto.BookingSummary{
		ID:               b.ID,
		StudioID:         b.StudioID,
		RoomName:         b.RoomName,
		BookingDate:      b.BookingDate.Format("2006-01-02"),
		StartAt:          b.StartAt,
		EndAt:            b.EndAt,
		ServiceType:      b.ServiceType,
		ClientName:       b.ClientName,
		Notes:            b.Notes,
		Status:           string(b.Status),
		OwnerStaffID:     b.OwnerStaffID,
		OwnerDisplayName: b.OwnerDisplayName,
	}
}
