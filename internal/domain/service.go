package domain

import "time"

// Service is an offering a studio sells (e.g. a treatment). The studio
// id is denormalized from the owning staff member at creation so matrix
// queries stay single-table.
type Service struct {
	ID                     string
	StudioID               string
	Name                   string
	Category               string
	DefaultDurationMinutes int
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ServiceAssignment is a single authorization edge "staff may perform
// service". Exactly one row exists per (service, staff) pair; upserts
// overwrite in place, no history is kept.
type ServiceAssignment struct {
	ServiceID  string
	StaffID    string
	Assigned   bool
	AssignedBy string
	UpdatedAt  time.Time
}
