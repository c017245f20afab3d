package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide_NoIdentityAlwaysRedirectsToLogin(t *testing.T) {
	for _, resource := range Resources {
		decision := Decide(RoleNone, resource)
		assert.False(t, decision.Allow, "resource %s", resource)
		assert.Equal(t, RouteLogin, decision.Fallback, "resource %s", resource)
		assert.Equal(t, ReasonUnauthenticated, decision.Reason, "resource %s", resource)
	}
}

func TestDecide_StudentOutcomes(t *testing.T) {
	allowed := []Resource{
		ResourceSubmitReport,
		ResourceViewHistory,
		ResourceManageFriends,
		ResourceJoinClass,
		ResourceNotifyFriends,
	}
	for _, resource := range allowed {
		decision := Decide(RoleStudent, resource)
		assert.True(t, decision.Allow, "resource %s", resource)
		assert.Empty(t, decision.Reason, "resource %s", resource)
	}

	for _, resource := range []Resource{ResourceClassAggregate, ResourceManageRoster} {
		decision := Decide(RoleStudent, resource)
		assert.False(t, decision.Allow, "resource %s", resource)
		assert.Equal(t, RouteStudentHome, decision.Fallback, "resource %s", resource)
		assert.Equal(t, ReasonWrongRole, decision.Reason, "resource %s", resource)
	}
}

func TestDecide_ProfessorOutcomes(t *testing.T) {
	for _, resource := range []Resource{ResourceClassAggregate, ResourceManageRoster} {
		decision := Decide(RoleProfessor, resource)
		assert.True(t, decision.Allow, "resource %s", resource)
	}

	redirected := []Resource{
		ResourceSubmitReport,
		ResourceViewHistory,
		ResourceManageFriends,
		ResourceJoinClass,
	}
	for _, resource := range redirected {
		decision := Decide(RoleProfessor, resource)
		assert.False(t, decision.Allow, "resource %s", resource)
		assert.Equal(t, RouteProfessorHome, decision.Fallback, "resource %s", resource)
		assert.Equal(t, ReasonWrongRole, decision.Reason, "resource %s", resource)
	}
}

func TestDecide_NotifyFriendsDeniedForProfessorWithoutRedirect(t *testing.T) {
	decision := Decide(RoleProfessor, ResourceNotifyFriends)
	assert.False(t, decision.Allow)
	assert.Empty(t, decision.Fallback)
	assert.Equal(t, ReasonRoleNotApplicable, decision.Reason)
}

// Every redirect target must itself be allowed for the redirected role,
// verified exhaustively over the policy table so loops cannot form.
func TestDecide_NoRedirectLoops(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleProfessor} {
		for _, resource := range Resources {
			decision := Decide(role, resource)
			if decision.Allow || decision.Fallback == "" {
				continue
			}

			target, ok := HomeResource(decision.Fallback)
			require.True(t, ok, "fallback %s for role %s has no screen resource", decision.Fallback, role)

			redirected := Decide(role, target)
			assert.True(t, redirected.Allow,
				"role %s denied on %s is redirected to %s, which is itself denied",
				role, resource, decision.Fallback)
		}
	}
}

func TestDecide_TableIsTotal(t *testing.T) {
	for _, role := range []Role{RoleNone, RoleStudent, RoleProfessor} {
		for _, resource := range Resources {
			decision := Decide(role, resource)
			if !decision.Allow {
				assert.True(t, decision.Fallback != "" || decision.Reason != "",
					"role %q resource %q produced an empty denial", role, resource)
			}
		}
	}
}

func TestDecide_UnknownResourceFailsClosed(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleProfessor} {
		decision := Decide(role, Resource("made-up"))
		assert.False(t, decision.Allow, "role %s", role)
		assert.Equal(t, ReasonUnknownResource, decision.Reason, "role %s", role)
		assert.Equal(t, role.Home(), decision.Fallback, "role %s", role)
	}
}
