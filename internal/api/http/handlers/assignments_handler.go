package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studio-scheduler/internal/api/dto"
	"github.com/spec-kit/studio-scheduler/internal/auth"
	"github.com/spec-kit/studio-scheduler/internal/service"
	apperrors "github.com/spec-kit/studio-scheduler/pkg/util"
)

// AssignmentsHandler manages service eligibility matrix endpoints.
type AssignmentsHandler struct {
	eligibility *service.EligibilityService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(eligibility *service.EligibilityService) *AssignmentsHandler {
	return &AssignmentsHandler{eligibility: eligibility}
}

// ListForStudio GET /studios/:studio_id/assignments.
func (h *AssignmentsHandler) ListForStudio(c *fiber.Ctx) error {
	actor, ok := auth.TenantFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff identity required")
	}
	board, err := h.eligibility.ListForStudio(c.Context(), actor, c.Params("studio_id"))
	if err != nil {
		return err
	}

	resp := dto.AssignmentBoardResponse{
		Services:     make([]dto.ServiceSummary, 0, len(board.Services)),
		StaffMembers: make([]dto.StaffSummary, 0, len(board.StaffMembers)),
		Assignments:  make([]dto.AssignmentSummary, 0, len(board.Assignments)),
	}
	for _, svc := range board.Services {
		resp.Services = append(resp.Services, dto.ServiceSummary{
			ID:                     svc.ID,
			Name:                   svc.Name,
			Category:               svc.Category,
			DefaultDurationMinutes: svc.DefaultDurationMinutes,
		})
	}
	for _, staff := range board.StaffMembers {
		resp.StaffMembers = append(resp.StaffMembers, dto.StaffSummary{
			ID:          staff.ID,
			DisplayName: staff.DisplayName,
			Role:        string(staff.Role),
		})
	}
	for _, a := range board.Assignments {
		resp.Assignments = append(resp.Assignments, dto.AssignmentSummary{
			ServiceID:  a.ServiceID,
			StaffID:    a.StaffID,
			Assigned:   a.Assigned,
			AssignedBy: a.AssignedBy,
			UpdatedAt:  a.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// BulkUpsert POST /assignments/bulk.
func (h *AssignmentsHandler) BulkUpsert(c *fiber.Ctx) error {
	actor, ok := auth.TenantFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff identity required")
	}
	var req dto.BulkUpsertAssignmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	rows := make([]service.AssignmentInput, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, service.AssignmentInput{
			ServiceID: row.ServiceID,
			StaffID:   row.StaffID,
			Assigned:  row.Assigned,
		})
	}
	summary, err := h.eligibility.UpsertAssignments(c.Context(), actor, rows)
	if err != nil {
		return err
	}

	resp := dto.BulkUpsertAssignmentsResponse{
		UpdatedCount:  summary.UpdatedCount,
		PerRowResults: make([]dto.AssignmentRowResult, 0, len(summary.Rows)),
	}
	for _, row := range summary.Rows {
		resp.PerRowResults = append(resp.PerRowResults, dto.AssignmentRowResult{
			ServiceID: row.ServiceID,
			StaffID:   row.StaffID,
			OK:        row.OK,
			Reason:    row.Reason,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Delete DELETE /assignments/:service_id/:staff_id.
func (h *AssignmentsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.TenantFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff identity required")
	}
	if err := h.eligibility.DeleteAssignment(c.Context(), actor, c.Params("service_id"), c.Params("staff_id")); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}
