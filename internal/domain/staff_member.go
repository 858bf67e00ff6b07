package domain

import (
	"strings"
	"time"
)

// StaffRole enumerates studio roles. Raw role strings coming from
// storage or identity tokens are normalized exactly once, at the tenant
// context boundary; downstream code only ever compares enum values.
type StaffRole string

const (
	RoleOwner      StaffRole = "owner"
	RoleDirector   StaffRole = "director"
	RoleManager    StaffRole = "manager"
	RoleInstructor StaffRole = "instructor"
	RoleLicensed   StaffRole = "licensed"
	RoleStudent    StaffRole = "student"
	RoleApprentice StaffRole = "apprentice"
	RoleStaff      StaffRole = "staff"

	// RoleArtist is a legacy role still present on older accounts.
	// Routing treats it as licensed or student depending on license
	// verification.
	RoleArtist StaffRole = "artist"
)

// NormalizeRole maps a raw role string onto the closed role set.
// Unrecognized values fall back to the unprivileged staff role.
func NormalizeRole(raw string) StaffRole {
	switch StaffRole(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleOwner:
		return RoleOwner
	case RoleDirector:
		return RoleDirector
	case RoleManager:
		return RoleManager
	case RoleInstructor:
		return RoleInstructor
	case RoleLicensed:
		return RoleLicensed
	case RoleStudent:
		return RoleStudent
	case RoleApprentice:
		return RoleApprentice
	case RoleArtist:
		return RoleArtist
	default:
		return RoleStaff
	}
}

// IsManagement reports whether the role carries studio administration
// rights (matrix edits, booking on behalf of the studio, cancelling any
// booking).
func (r StaffRole) IsManagement() bool {
	return r == RoleOwner || r == RoleDirector || r == RoleManager
}

// EmploymentType classifies how a staff member is engaged by the studio.
type EmploymentType string

const (
	EmploymentBoothRenter  EmploymentType = "booth_renter"
	EmploymentCommissioned EmploymentType = "commissioned"
	EmploymentEmployee     EmploymentType = "employee"
)

// NormalizeEmployment maps a raw employment string onto the closed set,
// defaulting to employee.
func NormalizeEmployment(raw string) EmploymentType {
	switch EmploymentType(strings.ToLower(strings.TrimSpace(raw))) {
	case EmploymentBoothRenter:
		return EmploymentBoothRenter
	case EmploymentCommissioned:
		return EmploymentCommissioned
	default:
		return EmploymentEmployee
	}
}

// StaffMember models a studio staff record. Rows are created at
// onboarding and never hard-deleted; role and license flags are mutated
// only by administrative workflows outside this service.
type StaffMember struct {
	ID                   string
	DisplayName          string
	Role                 StaffRole
	EmploymentType       EmploymentType
	LicenseVerified      bool
	StudioID             string
	LocationID           *string
	HasAllLocationAccess bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TenantContext is the resolved identity every operation trusts instead
// of caller-supplied role or studio fields. It is rebuilt on every
// request; role and license flags are never cached across calls.
type TenantContext struct {
	StaffID              string
	DisplayName          string
	Role                 StaffRole
	StudioID             string
	LocationID           *string
	HasAllLocationAccess bool
	EmploymentType       EmploymentType
	LicenseVerified      bool
}
