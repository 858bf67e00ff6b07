package domain

// BookingRoute identifies which booking workflow a staff member may use.
type BookingRoute string

const (
	// RouteDirect is the unrestricted path for fully licensed staff.
	RouteDirect BookingRoute = "DIRECT"
	// RouteSupervised is the training path; offerable services are
	// filtered through the eligibility matrix.
	RouteSupervised BookingRoute = "SUPERVISED"
	// RouteBoth grants access to either path.
	RouteBoth BookingRoute = "BOTH"
	// RouteDenied means no booking workflow applies to the role.
	RouteDenied BookingRoute = "DENIED"
)

// RouteDecision is the outcome of routing a staff member. Hint is only
// set on denial, pointing a mis-navigated user at the right workflow.
type RouteDecision struct {
	Route BookingRoute
	Hint  string
}

// RouteBooking decides the booking workflow for a role and license
// state. It is a pure function of its inputs and must be re-evaluated
// on every request: roles and license verification are mutated by
// administrative workflows outside this service, so a cached decision
// can go stale at any time.
func RouteBooking(role StaffRole, licenseVerified bool) RouteDecision {
	switch {
	case role == RoleLicensed,
		role == RoleArtist && licenseVerified:
		return RouteDecision{Route: RouteDirect}
	case role == RoleStudent,
		role == RoleApprentice,
		role == RoleArtist && !licenseVerified:
		return RouteDecision{Route: RouteSupervised}
	case role == RoleInstructor, role.IsManagement():
		return RouteDecision{Route: RouteBoth}
	default:
		return RouteDecision{
			Route: RouteDenied,
			Hint:  "no booking workflow is enabled for this role; ask a studio owner or manager to update your account",
		}
	}
}
