package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/institute-console/internal/api/metrics"
	"github.com/learnhub/institute-console/internal/api/middleware"
	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
)

// NavigationHandler serves menus, route decisions and gated console pages.
type NavigationHandler struct {
	nav ports.NavigationService
}

func NewNavigationHandler(nav ports.NavigationService) *NavigationHandler {
	return &NavigationHandler{nav: nav}
}

// Menu returns the navigation menu for the caller's role.
//
// @Summary      Navigation menu
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  menuResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/navigation/menu [get]
func (h *NavigationHandler) Menu(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	groups := h.nav.Menu(session)
	metrics.MenuBuildsTotal.WithLabelValues(metrics.RoleLabel(session.Role)).Inc()
	return c.JSON(http.StatusOK, menuResponse{Role: session.Role, Groups: groups})
}

// Authorize evaluates a route for the caller without navigating to it.
// Anonymous callers get a redirect_login decision rather than an error.
//
// @Summary      Evaluate a route
// @Tags         navigation
// @Produce      json
// @Param        route  query     string  true  "Route to evaluate, e.g. /dashboard/fees"
// @Success      200    {object}  authorizeResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/navigation/authorize [get]
func (h *NavigationHandler) Authorize(c echo.Context) error {
	route := c.QueryParam("route")
	if route == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "route is required")
	}

	session := middleware.SessionFrom(c)
	d := h.nav.Authorize(c.Request().Context(), session, route)
	metrics.GateDecisionsTotal.WithLabelValues(string(d.Kind), metrics.RoleLabel(session.RoleOrEmpty())).Inc()

	location := d.Location()
	if d.Kind == domain.DecisionRedirectLogin {
		location = middleware.LoginLocation(d.From)
	}
	return c.JSON(http.StatusOK, authorizeResponse{Decision: d, Location: location})
}

// Page renders a console page the Gate has already allowed. It returns the
// page identity and the menu the shell draws around it.
//
// @Summary      Console page
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pageResponse
// @Success      302
// @Router       /dashboard/{page} [get]
func (h *NavigationHandler) Page(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	route := domain.NormalizeRoute(c.Request().URL.Path)
	if d, ok := middleware.DecisionFrom(c); ok {
		route = domain.NormalizeRoute(d.Route)
	}

	title := ""
	if matched, ok := domain.MatchRoute(route); ok {
		if entry, ok := domain.EntryFor(matched); ok {
			title = entry.Title
		}
	}

	menu := h.nav.Menu(session)
	metrics.MenuBuildsTotal.WithLabelValues(metrics.RoleLabel(session.Role)).Inc()
	return c.JSON(http.StatusOK, pageResponse{
		Route: route,
		Title: title,
		Role:  session.Role,
		Menu:  menu,
	})
}
