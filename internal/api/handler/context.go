package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/institute-console/internal/api/middleware"
	"github.com/learnhub/institute-console/internal/core/domain"
)

// ctxSession returns the session resolved by the Session middleware, failing
// fast with 401 when the request is anonymous or carries an unknown role.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session := middleware.SessionFrom(c)
	if !session.Authenticated() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return session, nil
}
