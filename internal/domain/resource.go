package domain

// Resource tags every gated screen or action. They are the keys into the
// access-policy table; screens query the gate with a tag instead of
// branching on role themselves.
type Resource string

const (
	ResourceSubmitReport   Resource = "submit-report"
	ResourceViewHistory    Resource = "view-history"
	ResourceManageFriends  Resource = "manage-friends"
	ResourceJoinClass      Resource = "join-class"
	ResourceClassAggregate Resource = "class-aggregate-view"
	ResourceManageRoster   Resource = "manage-class-roster"
	ResourceNotifyFriends  Resource = "notify-friends"
)

// Resources lists every known resource tag.
var Resources = []Resource{
	ResourceSubmitReport,
	ResourceViewHistory,
	ResourceManageFriends,
	ResourceJoinClass,
	ResourceClassAggregate,
	ResourceManageRoster,
	ResourceNotifyFriends,
}

// ParseResource validates a resource tag from an external payload.
func ParseResource(s string) (Resource, error) {
	for _, r := range Resources {
		if Resource(s) == r {
			return r, nil
		}
	}
	return "", ErrUnknownResource
}

// Route identifies a UI screen used as a redirect target.
type Route string

const (
	RouteLogin         Route = "/login"
	RouteStudentHome   Route = "/"
	RouteProfessorHome Route = "/summary"
)
