package domain

import "strings"

// Route identifies a console page, written without leading or trailing slash.
// Segments starting with ':' are parameters.
type Route string

const (
	RouteDashboard      Route = "dashboard/default"
	RouteVisitor        Route = "dashboard/visitor"
	RouteAdmission      Route = "dashboard/admission"
	RouteStudentDetails Route = "dashboard/sdetails"
	RouteStudentProfile Route = "dashboard/sprofile/:id"
	RouteAlumni         Route = "dashboard/alumni"
	RouteAlumniDetails  Route = "dashboard/alumniDetails"
	RouteFees           Route = "dashboard/fees"
	RouteUserDetails    Route = "dashboard/userDetails"
	RouteCourseName     Route = "dashboard/courseName"
	RouteAccounts       Route = "dashboard/accounts"
	RouteSupport        Route = "dashboard/support"

	// RouteLogin is handled by the login collaborator and is not in the
	// permission table.
	RouteLogin Route = "login"
)

// Path renders the route as an absolute URL path.
func (r Route) Path() string {
	return "/" + string(r)
}

// staffRoutes is the fixed subset Staff may view. Admin may view every route.
var staffRoutes = []Route{
	RouteVisitor,
	RouteAdmission,
	RouteStudentDetails,
	RouteFees,
	RouteAlumni,
	RouteAlumniDetails,
}

// routeOrder fixes the iteration order of the permission table.
var routeOrder = []Route{
	RouteDashboard,
	RouteVisitor,
	RouteAdmission,
	RouteStudentDetails,
	RouteStudentProfile,
	RouteAlumni,
	RouteAlumniDetails,
	RouteFees,
	RouteUserDetails,
	RouteCourseName,
	RouteAccounts,
	RouteSupport,
}

var permissionTable = buildPermissionTable()

func buildPermissionTable() map[Route]map[Role]struct{} {
	table := make(map[Route]map[Role]struct{}, len(routeOrder))
	for _, r := range routeOrder {
		table[r] = map[Role]struct{}{RoleAdmin: {}}
	}
	for _, r := range staffRoutes {
		table[r][RoleStaff] = struct{}{}
	}
	return table
}

// Routes returns every route in the permission table in canonical order.
func Routes() []Route {
	out := make([]Route, len(routeOrder))
	copy(out, routeOrder)
	return out
}

// Permits reports whether the permission table grants role access to route.
// Routes absent from the table and unknown roles are never permitted.
func Permits(role Role, route Route) bool {
	if !role.Known() {
		return false
	}
	roles, ok := permissionTable[route]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}

// PermittedRoutes lists the table routes granted to role, in canonical order.
func PermittedRoutes(role Role) []Route {
	var out []Route
	for _, r := range routeOrder {
		if Permits(role, r) {
			out = append(out, r)
		}
	}
	return out
}

// NormalizeRoute strips the query string, fragment and surrounding slashes
// from a requested path. Case is preserved.
func NormalizeRoute(requested string) string {
	s := strings.TrimSpace(requested)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(s, "/")
}

// MatchRoute resolves a requested path to its permission table entry.
func MatchRoute(requested string) (Route, bool) {
	path := NormalizeRoute(requested)
	if path == "" {
		return "", false
	}
	if _, ok := permissionTable[Route(path)]; ok {
		return Route(path), true
	}

	segments := strings.Split(path, "/")
	for _, r := range routeOrder {
		if !strings.Contains(string(r), ":") {
			continue
		}
		if matchPattern(strings.Split(string(r), "/"), segments) {
			return r, true
		}
	}
	return "", false
}

func matchPattern(pattern, segments []string) bool {
	if len(pattern) != len(segments) {
		return false
	}
	for i, p := range pattern {
		if segments[i] == "" {
			return false
		}
		if strings.HasPrefix(p, ":") {
			continue
		}
		if p != segments[i] {
			return false
		}
	}
	return true
}
