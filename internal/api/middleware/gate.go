package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/institute-console/internal/api/metrics"
	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
)

const contextDecisionKey = "decision"

// DecisionFrom returns the Gate decision stored for an allowed request.
func DecisionFrom(c echo.Context) (domain.Decision, bool) {
	d, ok := c.Get(contextDecisionKey).(domain.Decision)
	return d, ok
}

// Gate guards console pages. It must run after Session. Allowed requests
// reach next; refused ones are redirected with 302 to the login page, which
// receives the original route in "from", or to the role's default page.
func Gate(nav ports.NavigationService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFrom(c)
			route := c.Request().URL.RequestURI()

			d := nav.Authorize(c.Request().Context(), session, route)
			metrics.GateDecisionsTotal.WithLabelValues(string(d.Kind), metrics.RoleLabel(session.RoleOrEmpty())).Inc()

			switch d.Kind {
			case domain.DecisionAllow:
				c.Set(contextDecisionKey, d)
				return next(c)
			case domain.DecisionRedirectLogin:
				return c.Redirect(http.StatusFound, LoginLocation(d.From))
			default:
				return c.Redirect(http.StatusFound, d.Location())
			}
		}
	}
}

// LoginLocation is the login page URL carrying the route to return to.
func LoginLocation(from string) string {
	if from == "" {
		return domain.RouteLogin.Path()
	}
	return domain.RouteLogin.Path() + "?from=" + url.QueryEscape(from)
}
