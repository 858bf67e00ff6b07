package dto

import "time"

// AssignmentRow is one eligibility edge in a bulk upsert request.
type AssignmentRow struct {
	ServiceID string `json:"service_id"`
	StaffID   string `json:"staff_id"`
	Assigned  bool   `json:"assigned"`
}

// BulkUpsertAssignmentsRequest payload.
type BulkUpsertAssignmentsRequest struct {
	Rows []AssignmentRow `json:"rows"`
}

// AssignmentRowResult reports a single row outcome.
type AssignmentRowResult struct {
	ServiceID string `json:"service_id"`
	StaffID   string `json:"staff_id"`
	OK        bool   `json:"ok"`
	Reason    string `json:"reason,omitempty"`
}

// BulkUpsertAssignmentsResponse is the partial-success envelope.
type BulkUpsertAssignmentsResponse struct {
	UpdatedCount  int                   `json:"updated_count"`
	PerRowResults []AssignmentRowResult `json:"per_row_results"`
}

// ServiceSummary for the assignment board.
type ServiceSummary struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Category               string `json:"category"`
	DefaultDurationMinutes int    `json:"default_duration_minutes"`
}

// StaffSummary for the assignment board.
type StaffSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// AssignmentSummary for the assignment board.
type AssignmentSummary struct {
	ServiceID  string    `json:"service_id"`
	StaffID    string    `json:"staff_id"`
	Assigned   bool      `json:"assigned"`
	AssignedBy string    `json:"assigned_by"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AssignmentBoardResponse is the full matrix view for a studio.
type AssignmentBoardResponse struct {
	Services     []ServiceSummary    `json:"services"`
	StaffMembers []StaffSummary      `json:"staff_members"`
	Assignments  []AssignmentSummary `json:"assignments"`
}
