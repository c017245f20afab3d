package domain

import "fmt"

// Role is the closed set of user roles issued by the campus backend.
type Role string

const (
	// RoleNone marks the absence of an authenticated identity.
	RoleNone      Role = ""
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

// ParseRole validates a role string from an external payload.
// Unknown roles are rejected rather than passed through.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleProfessor:
		return Role(s), nil
	default:
		return RoleNone, fmt.Errorf("%w: unknown role %q", ErrMalformedResponse, s)
	}
}

// Home returns the role's own home route, used as the redirect target
// when a screen is denied for that role.
func (r Role) Home() Route {
	if r == RoleProfessor {
		return RouteProfessorHome
	}
	return RouteStudentHome
}

// Identity is the authenticated user held as one atomic unit: either all
// three fields are present and issued together, or no Identity exists.
type Identity struct {
	Token  string
	Role   Role
	UserID int64
}

// Valid reports whether the identity is fully populated. A partially
// populated identity must never be surfaced to consumers.
func (i Identity) Valid() bool {
	if i.Token == "" || i.UserID <= 0 {
		return false
	}
	_, err := ParseRole(string(i.Role))
	return err == nil
}

// PrivacyPreference is the student-controlled setting limiting who may
// be notified about their status. Owned by the server; the in-process
// copy is a per-session shadow.
type PrivacyPreference string

const (
	PrivacyEveryone   PrivacyPreference = "everyone"
	PrivacyFriends    PrivacyPreference = "friends"
	PrivacyProfessors PrivacyPreference = "professors"
)

// ParsePrivacyPreference validates a preference value from an external
// payload against the closed enum.
func ParsePrivacyPreference(s string) (PrivacyPreference, error) {
	switch PrivacyPreference(s) {
	case PrivacyEveryone, PrivacyFriends, PrivacyProfessors:
		return PrivacyPreference(s), nil
	default:
		return "", fmt.Errorf("%w: unknown privacy preference %q", ErrMalformedResponse, s)
	}
}

// PrivacyState describes the privacy shadow's cache state machine:
// Empty -> Loading -> Resolved | Failed; Resolved and Failed return to
// Empty on invalidation.
type PrivacyState int

const (
	PrivacyEmpty PrivacyState = iota
	PrivacyLoading
	PrivacyResolved
	PrivacyFailed
)

func (s PrivacyState) String() string {
	switch s {
	case PrivacyEmpty:
		return "empty"
	case PrivacyLoading:
		return "loading"
	case PrivacyResolved:
		return "resolved"
	case PrivacyFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Registration is the payload for creating a new account before the
// first credential exchange.
type Registration struct {
	Email    string
	Password string
	FullName string
	Role     Role
}
