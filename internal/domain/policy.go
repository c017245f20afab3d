package domain

// Reason explains a non-allow access decision to the user. It is a
// renderable value, not an error condition.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonUnauthenticated   Reason = "unauthenticated"
	ReasonWrongRole         Reason = "wrong-role"
	ReasonRoleNotApplicable Reason = "role-not-applicable"
	ReasonPrivacyRestricted Reason = "privacy-restricted"
	ReasonPrivacyLoading    Reason = "privacy-loading"
	ReasonUnknownResource   Reason = "unknown-resource"
)

// AccessDecision is the outcome of evaluating a resource for the current
// identity. It is computed fresh on every evaluation and never cached.
type AccessDecision struct {
	Allow    bool   `json:"allow"`
	Fallback Route  `json:"fallback,omitempty"`
	Reason   Reason `json:"reason,omitempty"`
}

// studentResources are the screens and actions allowed for students and
// redirected away from for professors.
var studentResources = map[Resource]bool{
	ResourceSubmitReport:  true,
	ResourceViewHistory:   true,
	ResourceManageFriends: true,
	ResourceJoinClass:     true,
	ResourceNotifyFriends: true,
}

// professorResources are the screens allowed for professors and
// redirected away from for students.
var professorResources = map[Resource]bool{
	ResourceClassAggregate: true,
	ResourceManageRoster:   true,
}

// Decide maps (role, resource) to an access decision. This table is the
// only place role-based branching lives; consumers query it instead of
// re-implementing role checks.
//
// An absent identity (RoleNone) dominates every role-based outcome: the
// decision is always a redirect to login. Authenticated-but-wrong-role
// redirects target the role's own home screen, so a fallback is always
// itself allowed for that role and redirect loops cannot form. The
// notify-friends action is the one resource that is additionally subject
// to the privacy preference; that overlay is applied by the feature
// gate, not here.
func Decide(role Role, resource Resource) AccessDecision {
	if role == RoleNone {
		return AccessDecision{Fallback: RouteLogin, Reason: ReasonUnauthenticated}
	}

	switch {
	case studentResources[resource]:
		if role == RoleStudent {
			return AccessDecision{Allow: true}
		}
		if resource == ResourceNotifyFriends {
			// Professors never notify a student's friends; there is no
			// professor-side equivalent to redirect toward.
			return AccessDecision{Reason: ReasonRoleNotApplicable}
		}
		return AccessDecision{Fallback: role.Home(), Reason: ReasonWrongRole}

	case professorResources[resource]:
		if role == RoleProfessor {
			return AccessDecision{Allow: true}
		}
		return AccessDecision{Fallback: role.Home(), Reason: ReasonWrongRole}

	default:
		// Unknown tags fail closed toward the caller's own home screen.
		return AccessDecision{Fallback: role.Home(), Reason: ReasonUnknownResource}
	}
}

// HomeResource maps a home route to the resource that represents its
// screen, used to verify that redirect targets are themselves reachable.
func HomeResource(route Route) (Resource, bool) {
	switch route {
	case RouteStudentHome:
		return ResourceSubmitReport, true
	case RouteProfessorHome:
		return ResourceClassAggregate, true
	default:
		return "", false
	}
}
