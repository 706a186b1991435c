package service

import (
	"github.com/learnhub/institute-console/internal/core/domain"
)

// Authorize decides whether session may view requestedRoute.
//
//   - no session, or a role that is not exactly Admin or Staff: redirect to
//     login, keeping the requested route so login can return there.
//   - recognised role granted the route by the permission table: allow.
//   - recognised role refused, or route not in the table: redirect to the
//     role's default page.
//
// Authorize is pure and total.
func Authorize(session *domain.Session, requestedRoute string) domain.Decision {
	if !session.Authenticated() {
		return domain.RedirectToLogin(requestedRoute)
	}

	role := session.Role
	if route, ok := domain.MatchRoute(requestedRoute); ok && domain.Permits(role, route) {
		return domain.Allow(requestedRoute)
	}

	target, _ := domain.DefaultRoute(role)
	return domain.RedirectToDefault(requestedRoute, role, target)
}

// AuthorizeStored is Authorize over a persisted session record. Missing or
// malformed records are treated as no session.
func AuthorizeStored(record []byte, requestedRoute string) domain.Decision {
	session, err := domain.DecodeSession(record)
	if err != nil {
		return domain.RedirectToLogin(requestedRoute)
	}
	return Authorize(session, requestedRoute)
}
